package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishurahman616/portfolio/api/dto/responses"
	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/quest"
	"github.com/mishurahman616/portfolio/core/workers"
)

func TestQuestHandler_RegisterRoutes(t *testing.T) {
	handler := NewQuestHandler(&mockQuestService{}, &mockSyncer{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	paths := api.OpenAPI().Paths
	require.NotNil(t, paths["/api/quests"])
	assert.NotNil(t, paths["/api/quests"].Get)
	require.NotNil(t, paths["/api/quests/{id}"])
	assert.NotNil(t, paths["/api/quests/{id}"].Get)
	require.NotNil(t, paths["/api/quests/sync"])
	assert.NotNil(t, paths["/api/quests/sync"].Post)
}

func TestQuestHandler_ListQuests(t *testing.T) {
	handler := NewQuestHandler(&mockQuestService{state: readyState()}, &mockSyncer{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/quests")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.QuestLogResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Phase)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Board.Running, 1)
	assert.Equal(t, "local-1", body.Board.Running[0].ID)
	require.Len(t, body.Board.Completed, 1)
	assert.Equal(t, "2023-12-31", body.Board.Completed[0].CompletionDate)
	assert.Empty(t, body.Board.Upcoming)
}

func TestQuestHandler_ListQuests_Pending(t *testing.T) {
	handler := NewQuestHandler(&mockQuestService{state: quest.State{Phase: quest.PhasePending}}, &mockSyncer{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/quests")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"phase":"pending"`)
}

func TestQuestHandler_GetQuest(t *testing.T) {
	handler := NewQuestHandler(&mockQuestService{state: readyState()}, &mockSyncer{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/quests/badge-7")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.QuestResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Annual Badge 2023", body.Title)
	assert.Equal(t, "badge", body.Source)
	assert.Equal(t, "completed", body.Status)
}

func TestQuestHandler_GetQuest_NotFound(t *testing.T) {
	handler := NewQuestHandler(&mockQuestService{state: readyState()}, &mockSyncer{})
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/quests/local-99")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestQuestHandler_SyncQuests(t *testing.T) {
	syncer := &mockSyncer{}
	handler := NewQuestHandler(&mockQuestService{state: readyState()}, syncer)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Post("/api/quests/sync", map[string]interface{}{})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{workers.JobQuests}, syncer.called())
	assert.Contains(t, resp.Body.String(), `"phase":"ready"`)
}

func TestQuestHandler_SyncQuests_Failure(t *testing.T) {
	syncer := &mockSyncer{err: &coreerrors.AggregateError{Operation: "quest sync", Err: assert.AnError}}
	handler := NewQuestHandler(&mockQuestService{state: quest.State{Phase: quest.PhaseFailed, Error: quest.SyncFailedMessage}}, syncer)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Post("/api/quests/sync", map[string]interface{}{})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "Sync failed, please retry")
}
