// ABOUTME: Theme mode carried explicitly from the request to the root layout
// ABOUTME: Nothing is persisted; every page load starts from the default mode

package theme

import "strings"

// Mode is the page colour scheme
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"

	// Default is the mode every fresh page load starts in
	Default = Dark

	// QueryParam carries the mode between requests
	QueryParam = "theme"
)

// Parse reads a mode, falling back to the default for anything unknown
func Parse(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light
	case Dark:
		return Dark
	}
	return Default
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m.IsDark() {
		return Light
	}
	return Dark
}

// IsDark reports whether m renders dark. Unknown values count as the default.
func (m Mode) IsDark() bool {
	return Parse(string(m)) == Dark
}

// RootClass is the class the root layout puts on the document element
func (m Mode) RootClass() string {
	if m.IsDark() {
		return "dark"
	}
	return ""
}

// String implements fmt.Stringer
func (m Mode) String() string {
	return string(Parse(string(m)))
}
