// ABOUTME: LeetCode badge source delivered through public request relays
// ABOUTME: Maps each earned badge into a completed quest

package quest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mishurahman616/portfolio/core/domain"
	"github.com/mishurahman616/portfolio/core/fallback"
	"github.com/mishurahman616/portfolio/core/relay"
)

const (
	// BadgeType is the category label shown on badge cards
	BadgeType = "LeetCode Badge"

	// BadgeColorMilestone marks streak milestone badges
	BadgeColorMilestone = domain.ColorOrange

	// BadgeColorDefault is used for every other badge
	BadgeColorDefault = domain.ColorPurple

	leetCodeOrigin = "https://leetcode.com"
)

// badgeQuery is the single query sent to the achievement API
const badgeQuery = `query userBadges($username: String!) {
  matchedUser(username: $username) {
    badges {
      id
      name
      shortName
      displayName
      icon
      hoverText
      creationDate
      category
    }
  }
}`

// Badge is one earned achievement as reported by the API
type Badge struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ShortName    string `json:"shortName"`
	DisplayName  string `json:"displayName"`
	Icon         string `json:"icon"`
	HoverText    string `json:"hoverText"`
	CreationDate string `json:"creationDate"`
	Category     string `json:"category"`
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type badgeResponse struct {
	Data *struct {
		MatchedUser *struct {
			Badges []Badge `json:"badges"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// parseBadgeResponse validates the GraphQL payload
func parseBadgeResponse(data []byte) ([]Badge, error) {
	var resp badgeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding badge payload: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("badge query error: %s", resp.Errors[0].Message)
	}
	if resp.Data == nil || resp.Data.MatchedUser == nil {
		return nil, errors.New("badge payload has no matched user")
	}
	return resp.Data.MatchedUser.Badges, nil
}

// badgeStrategies returns the primary relay then the fallback relay
func (s *Service) badgeStrategies() []fallback.Strategy[[]Badge] {
	if s.deps.HTTPClient == nil || s.cfg.LeetCodeUser == "" {
		return nil
	}

	variables := map[string]interface{}{"username": s.cfg.LeetCodeUser}
	strategies := make([]fallback.Strategy[[]Badge], 0, 2)

	if s.cfg.PrimaryProxy != "" {
		target := relay.Via(s.cfg.PrimaryProxy, s.cfg.GraphQLEndpoint)
		strategies = append(strategies, fallback.Strategy[[]Badge]{
			Name: "primary-proxy",
			Attempt: func(ctx context.Context) ([]Badge, error) {
				body, err := json.Marshal(graphQLRequest{Query: badgeQuery, Variables: variables})
				if err != nil {
					return nil, err
				}
				resp, err := s.deps.HTTPClient.Post(ctx, target, bytes.NewReader(body))
				data, err := relay.Body("badges", resp, err)
				if err != nil {
					return nil, err
				}
				return parseBadgeResponse(data)
			},
		})
	}

	if s.cfg.FallbackProxy != "" {
		strategies = append(strategies, fallback.Strategy[[]Badge]{
			Name: "fallback-proxy",
			Attempt: func(ctx context.Context) ([]Badge, error) {
				vars, err := json.Marshal(variables)
				if err != nil {
					return nil, err
				}
				query := url.Values{}
				query.Set("query", badgeQuery)
				query.Set("variables", string(vars))
				relayed := s.cfg.GraphQLEndpoint + "?" + query.Encode()
				resp, err := s.deps.HTTPClient.Get(ctx, relay.Via(s.cfg.FallbackProxy, relayed))
				data, err := relay.Body("badges", resp, err)
				if err != nil {
					return nil, err
				}
				contents, err := relay.Unwrap(data)
				if err != nil {
					return nil, err
				}
				return parseBadgeResponse(contents)
			},
		})
	}

	return strategies
}

// BadgeColor picks the accent for a badge title
func BadgeColor(title string) domain.Color {
	if strings.Contains(title, "100 Days") || strings.Contains(title, "50 Days") {
		return BadgeColorMilestone
	}
	return BadgeColorDefault
}

// BadgeToQuest maps an earned badge into a completed quest
func BadgeToQuest(b Badge) domain.Quest {
	title := b.DisplayName
	if title == "" {
		title = b.Name
	}
	description := b.HoverText
	if description == "" {
		description = "Earned the " + title + " badge on LeetCode."
	}

	base := domain.Quest{
		ID:          "badge-" + b.ID,
		Title:       title,
		Description: description,
		Details:     b.HoverText,
		Type:        BadgeType,
		Color:       BadgeColor(title),
		IconURL:     absoluteIcon(b.Icon),
		Source:      domain.SourceBadge,
	}
	return domain.NewCompletedQuest(base, domain.CompletedRecord{CompletionDate: b.CreationDate})
}

func absoluteIcon(icon string) string {
	switch {
	case icon == "":
		return ""
	case strings.HasPrefix(icon, "http://"), strings.HasPrefix(icon, "https://"):
		return icon
	case strings.HasPrefix(icon, "//"):
		return "https:" + icon
	case strings.HasPrefix(icon, "/"):
		return leetCodeOrigin + icon
	}
	return leetCodeOrigin + "/" + icon
}
