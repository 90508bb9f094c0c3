package handlers

import (
	"context"
	"sync"

	"github.com/mishurahman616/portfolio/core/contact"
	"github.com/mishurahman616/portfolio/core/domain"
	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/quest"
)

// mockQuestService is a mock implementation of QuestService
type mockQuestService struct {
	state quest.State
}

func (m *mockQuestService) State(ctx context.Context) quest.State {
	return m.state
}

func (m *mockQuestService) Find(ctx context.Context, id string) (domain.Quest, error) {
	if q, ok := m.state.Board.Find(id); ok {
		return q, nil
	}
	return domain.Quest{}, &coreerrors.NotFoundError{Resource: "quest", ID: id}
}

// mockSyncer records RefreshNow calls
type mockSyncer struct {
	err error

	mu    sync.Mutex
	calls []string
}

func (m *mockSyncer) RefreshNow(ctx context.Context, name string) error {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
	return m.err
}

func (m *mockSyncer) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// mockStatsService is a mock implementation of StatsService
type mockStatsService struct {
	snapshot domain.StatsSnapshot
}

func (m *mockStatsService) Snapshot(ctx context.Context) domain.StatsSnapshot {
	return m.snapshot
}

// mockContactService is a mock implementation of ContactService
type mockContactService struct {
	submitFunc func(ctx context.Context, fields contact.Fields) contact.Result
	received   []contact.Fields
}

func (m *mockContactService) Submit(ctx context.Context, fields contact.Fields) contact.Result {
	m.received = append(m.received, fields)
	if m.submitFunc != nil {
		return m.submitFunc(ctx, fields)
	}
	return contact.Result{Status: contact.StatusSuccess, Notice: contact.SentMessage}
}

func runningQuest(id string) domain.Quest {
	return domain.NewRunningQuest(domain.Quest{ID: id, Title: "Quest " + id, Color: domain.ColorGreen, Source: domain.SourceLocal},
		domain.RunningProgress{CurrentDay: 12, TotalDays: 100, Streak: 4})
}

func badgeQuest(id string) domain.Quest {
	return domain.NewCompletedQuest(domain.Quest{ID: id, Title: "Annual Badge 2023", Color: domain.ColorPurple, Source: domain.SourceBadge, Type: "LeetCode Badge"},
		domain.CompletedRecord{CompletionDate: "2023-12-31"})
}

func readyState() quest.State {
	return quest.State{
		Phase: quest.PhaseReady,
		Board: quest.Merge([]domain.Quest{runningQuest("local-1")}, []domain.Quest{badgeQuest("badge-7")}),
	}
}
