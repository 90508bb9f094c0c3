// ABOUTME: Stats handler for the problem solving section
// ABOUTME: Serves the latest snapshot; sources that failed are marked unavailable in the body

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mishurahman616/portfolio/api/dto/mappers"
	"github.com/mishurahman616/portfolio/api/dto/responses"
	"github.com/mishurahman616/portfolio/core/domain"
)

// StatsService defines the methods needed from the stats service
type StatsService interface {
	Snapshot(ctx context.Context) domain.StatsSnapshot
}

// StatsHandler handles stats requests
type StatsHandler struct {
	stats StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Get coding profile statistics",
		Description: "Returns LeetCode and Codeforces statistics; each source may be unavailable on its own",
		Tags:        []string{"Stats"},
	}, h.GetStats)
}

// StatsOutput is the stats snapshot
type StatsOutput struct {
	Body responses.StatsResponse
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	return &StatsOutput{Body: mappers.ToStatsResponse(h.stats.Snapshot(ctx))}, nil
}
