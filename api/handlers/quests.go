// ABOUTME: Quest log handlers for the Huma API
// ABOUTME: Exposes the aggregated quest board, single quests and the manual sync action

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mishurahman616/portfolio/api/dto/mappers"
	"github.com/mishurahman616/portfolio/api/dto/responses"
	"github.com/mishurahman616/portfolio/core/domain"
	"github.com/mishurahman616/portfolio/core/quest"
	"github.com/mishurahman616/portfolio/core/workers"
)

// QuestService defines the methods needed from the quest service
type QuestService interface {
	State(ctx context.Context) quest.State
	Find(ctx context.Context, id string) (domain.Quest, error)
}

// Syncer runs a named refresh job right away
type Syncer interface {
	RefreshNow(ctx context.Context, name string) error
}

// QuestHandler handles quest log requests
type QuestHandler struct {
	quests QuestService
	syncer Syncer
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(quests QuestService, syncer Syncer) *QuestHandler {
	return &QuestHandler{
		quests: quests,
		syncer: syncer,
	}
}

// RegisterRoutes registers all quest routes
func (h *QuestHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listQuests",
		Method:      http.MethodGet,
		Path:        "/api/quests",
		Summary:     "Get the quest log",
		Description: "Returns the latest quest board partitioned into running, upcoming and completed",
		Tags:        []string{"Quests"},
	}, h.ListQuests)

	huma.Register(api, huma.Operation{
		OperationID: "getQuest",
		Method:      http.MethodGet,
		Path:        "/api/quests/{id}",
		Summary:     "Get a single quest",
		Tags:        []string{"Quests"},
	}, h.GetQuest)

	huma.Register(api, huma.Operation{
		OperationID: "syncQuests",
		Method:      http.MethodPost,
		Path:        "/api/quests/sync",
		Summary:     "Re-run the quest log sync",
		Description: "Runs the whole resolution sequence from scratch and returns the new state",
		Tags:        []string{"Quests"},
	}, h.SyncQuests)
}

// QuestLogOutput defines the output for quest log operations
type QuestLogOutput struct {
	Body responses.QuestLogResponse
}

// ListQuests handles GET /api/quests
func (h *QuestHandler) ListQuests(ctx context.Context, _ *struct{}) (*QuestLogOutput, error) {
	return &QuestLogOutput{Body: mappers.ToQuestLogResponse(h.quests.State(ctx))}, nil
}

// GetQuestInput identifies a quest
type GetQuestInput struct {
	ID string `path:"id" maxLength:"200" doc:"Quest id, e.g. local-1 or badge-7"`
}

// GetQuestOutput is a single quest
type GetQuestOutput struct {
	Body responses.QuestResponse
}

// GetQuest handles GET /api/quests/{id}
func (h *QuestHandler) GetQuest(ctx context.Context, input *GetQuestInput) (*GetQuestOutput, error) {
	q, err := h.quests.Find(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetQuestOutput{Body: mappers.ToQuestResponse(q)}, nil
}

// SyncQuests handles POST /api/quests/sync
func (h *QuestHandler) SyncQuests(ctx context.Context, _ *struct{}) (*QuestLogOutput, error) {
	if err := h.syncer.RefreshNow(ctx, workers.JobQuests); err != nil {
		return nil, toHumaError(err)
	}
	return &QuestLogOutput{Body: mappers.ToQuestLogResponse(h.quests.State(ctx))}, nil
}
