// ABOUTME: Static portfolio content embedded in the binary as YAML
// ABOUTME: A profile.yaml in the data directory replaces the embedded copy when present

package content

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mishurahman616/portfolio/core/domain"
)

//go:embed profile.yaml
var embeddedProfile []byte

// Embedded returns the profile compiled into the binary
func Embedded() (domain.Profile, error) {
	return Parse(embeddedProfile)
}

// Load reads the profile at path, falling back to the embedded profile when
// the file does not exist. A file that exists but does not parse is an error.
func Load(path string) (domain.Profile, error) {
	if path == "" {
		return Embedded()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Embedded()
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML profile
func Parse(data []byte) (domain.Profile, error) {
	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return domain.Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	if strings.TrimSpace(profile.Name) == "" {
		return domain.Profile{}, errors.New("profile name is required")
	}
	if strings.TrimSpace(profile.Contact.Email) == "" {
		return domain.Profile{}, errors.New("profile contact email is required")
	}
	return profile, nil
}
