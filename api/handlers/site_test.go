package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishurahman616/portfolio/api/dto/responses"
	"github.com/mishurahman616/portfolio/content"
	"github.com/mishurahman616/portfolio/core/domain"
)

func newSiteAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	profile, err := content.Embedded()
	require.NoError(t, err)
	_, api := humatest.New(t)
	NewSiteHandler(profile).RegisterRoutes(api)
	return api
}

func TestSiteHandler_ResolveNavigation(t *testing.T) {
	api := newSiteAPI(t)

	resp := api.Post("/api/navigation/resolve", map[string]interface{}{
		"current": "about",
		"observations": []map[string]interface{}{
			{"id": "projects", "intersecting": true, "top": 180},
			{"id": "skills", "intersecting": true, "top": 120},
			{"id": "about", "intersecting": false, "top": 10},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.NavigationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "skills", body.Active)

	active := 0
	for _, l := range body.Links {
		if l.Active {
			active++
			assert.Equal(t, "skills", l.ID)
		}
	}
	assert.Equal(t, 1, active)
}

func TestSiteHandler_ResolveNavigation_NothingIntersectingKeepsCurrent(t *testing.T) {
	api := newSiteAPI(t)

	resp := api.Post("/api/navigation/resolve", map[string]interface{}{
		"current":      "quests",
		"observations": []map[string]interface{}{{"id": "contact", "intersecting": false, "top": 900}},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"active":"quests"`)
}

func TestSiteHandler_ToggleTheme(t *testing.T) {
	api := newSiteAPI(t)

	tests := []struct {
		query string
		want  string
		class string
	}{
		{query: "", want: "light", class: ""},
		{query: "?theme=dark", want: "light", class: ""},
		{query: "?theme=light", want: "dark", class: "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := api.Get("/api/theme/toggle" + tt.query)
			require.Equal(t, http.StatusOK, resp.Code)

			var body responses.ThemeResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Theme)
			assert.Equal(t, tt.class, body.RootClass)
		})
	}
}

func TestSiteHandler_GetProfile(t *testing.T) {
	api := newSiteAPI(t)

	resp := api.Get("/api/profile")
	require.Equal(t, http.StatusOK, resp.Code)

	var body domain.Profile
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Mishu Rahman", body.Name)
	assert.Equal(t, "mishu.cse616@gmail.com", body.Contact.Email)
}

func TestSiteHandler_Health(t *testing.T) {
	api := newSiteAPI(t)

	resp := api.Get("/healthz")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"ok"`)
}
