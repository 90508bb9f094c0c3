// ABOUTME: Local challenge document and remote badge sources for the quest log
// ABOUTME: Builds the ordered strategies the fallback chain tries for each source

package quest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/mishurahman616/portfolio/core/fallback"
	"github.com/mishurahman616/portfolio/core/relay"
)

// challengeDocument is the shape of data/challenges.json
type challengeDocument struct {
	Challenges *[]challengeRecord `json:"challenges"`
}

type challengeRecord struct {
	ID             interface{} `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Status         string      `json:"status"`
	Type           string      `json:"type"`
	Color          string      `json:"color"`
	CurrentDay     int         `json:"currentDay"`
	TotalDays      int         `json:"totalDays"`
	ScheduledDate  string      `json:"scheduledDate"`
	CompletionDate string      `json:"completionDate"`
	Streak         int         `json:"streak"`
	Details        string      `json:"details"`
	ImageURL       string      `json:"imageUrl"`
}

// parseChallengeDocument decodes the local document. A document without a
// challenges key is treated as unparseable so the next candidate is tried.
func parseChallengeDocument(data []byte) ([]challengeRecord, error) {
	var doc challengeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding challenge document: %w", err)
	}
	if doc.Challenges == nil {
		return nil, errors.New("challenge document has no challenges key")
	}
	return *doc.Challenges, nil
}

// CandidateURLs returns the ordered local document locations for a deployment.
// Duplicates produced by different base paths are dropped.
func CandidateURLs(publicURL, basePath string, paths []string, cacheBuster string) []string {
	if len(paths) == 0 {
		paths = DefaultCandidatePaths(basePath)
	}

	base, err := url.Parse(publicURL)
	if err != nil || base.Scheme == "" {
		base = nil
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		ref, err := url.Parse(p)
		if err != nil {
			continue
		}
		resolved := ref
		if base != nil {
			resolved = base.ResolveReference(ref)
		}
		if cacheBuster != "" {
			q := resolved.Query()
			q.Set("t", cacheBuster)
			resolved.RawQuery = q.Encode()
		}
		s := resolved.String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// DefaultCandidatePaths covers the deployment roots the site has been served from
func DefaultCandidatePaths(basePath string) []string {
	base := normalizeBasePath(basePath)
	return []string{
		base + "data/challenges.json",
		"/data/challenges.json",
		"/portfolio/data/challenges.json",
		"data/challenges.json",
	}
}

func normalizeBasePath(basePath string) string {
	if basePath == "" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

// localStrategies builds the disk and URL candidates for the challenge document
func (s *Service) localStrategies() []fallback.Strategy[[]challengeRecord] {
	strategies := make([]fallback.Strategy[[]challengeRecord], 0, 5)

	if s.cfg.DataFile != "" {
		path := s.cfg.DataFile
		strategies = append(strategies, fallback.Strategy[[]challengeRecord]{
			Name: "file:" + path,
			Attempt: func(ctx context.Context) ([]challengeRecord, error) {
				data, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				return parseChallengeDocument(data)
			},
		})
	}

	if s.deps.HTTPClient == nil {
		return strategies
	}

	buster := strconv.FormatInt(s.now().UnixMilli(), 10)
	for _, candidate := range CandidateURLs(s.cfg.PublicURL, s.cfg.BasePath, s.cfg.CandidatePaths, buster) {
		target := candidate
		strategies = append(strategies, fallback.Strategy[[]challengeRecord]{
			Name: target,
			Attempt: func(ctx context.Context) ([]challengeRecord, error) {
				resp, err := s.deps.HTTPClient.Get(ctx, target)
				data, err := relay.Body("challenges", resp, err)
				if err != nil {
					return nil, err
				}
				return parseChallengeDocument(data)
			},
		})
	}
	return strategies
}
