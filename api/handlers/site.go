// ABOUTME: Site handlers for navigation, theme, profile and health
// ABOUTME: Pure lookups over the navigator, theme and the static profile

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mishurahman616/portfolio/api/dto/mappers"
	"github.com/mishurahman616/portfolio/api/dto/requests"
	"github.com/mishurahman616/portfolio/api/dto/responses"
	"github.com/mishurahman616/portfolio/core/domain"
	"github.com/mishurahman616/portfolio/core/navigator"
	"github.com/mishurahman616/portfolio/core/theme"
)

// SiteHandler handles the stateless site endpoints
type SiteHandler struct {
	profile domain.Profile
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(profile domain.Profile) *SiteHandler {
	return &SiteHandler{profile: profile}
}

// RegisterRoutes registers site routes
func (h *SiteHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "resolveNavigation",
		Method:      http.MethodPost,
		Path:        "/api/navigation/resolve",
		Summary:     "Resolve the active section",
		Description: "Picks the topmost section intersecting the viewport band; nothing intersecting keeps the current section",
		Tags:        []string{"Site"},
	}, h.ResolveNavigation)

	huma.Register(api, huma.Operation{
		OperationID: "toggleTheme",
		Method:      http.MethodGet,
		Path:        "/api/theme/toggle",
		Summary:     "Toggle a theme mode",
		Tags:        []string{"Site"},
	}, h.ToggleTheme)

	huma.Register(api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/profile",
		Summary:     "Get the static profile content",
		Tags:        []string{"Site"},
	}, h.GetProfile)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"Site"},
	}, h.Health)
}

// NavigationInput is a batch of observer entries
type NavigationInput struct {
	Body requests.NavigationRequest
}

// NavigationOutput is the resolved navigation
type NavigationOutput struct {
	Body responses.NavigationResponse
}

// ResolveNavigation handles POST /api/navigation/resolve
func (h *SiteHandler) ResolveNavigation(ctx context.Context, input *NavigationInput) (*NavigationOutput, error) {
	observations := make([]navigator.Observation, 0, len(input.Body.Observations))
	for _, o := range input.Body.Observations {
		observations = append(observations, navigator.Observation{ID: o.ID, Intersecting: o.Intersecting, Top: o.Top})
	}
	active := navigator.Resolve(input.Body.Current, observations)
	return &NavigationOutput{Body: mappers.ToNavigationResponse(active)}, nil
}

// ThemeInput carries the current mode
type ThemeInput struct {
	Theme string `query:"theme" enum:"dark,light" doc:"Current theme, dark when omitted"`
}

// ThemeOutput is the toggled mode
type ThemeOutput struct {
	Body responses.ThemeResponse
}

// ToggleTheme handles GET /api/theme/toggle
func (h *SiteHandler) ToggleTheme(ctx context.Context, input *ThemeInput) (*ThemeOutput, error) {
	return &ThemeOutput{Body: mappers.ToThemeResponse(theme.Parse(input.Theme).Toggle())}, nil
}

// ProfileOutput is the static profile
type ProfileOutput struct {
	Body domain.Profile
}

// GetProfile handles GET /api/profile
func (h *SiteHandler) GetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	return &ProfileOutput{Body: h.profile}, nil
}

// HealthOutput is the liveness response
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /healthz
func (h *SiteHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: responses.HealthResponse{Status: "ok"}}, nil
}
