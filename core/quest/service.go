// ABOUTME: Quest log service aggregates local challenges and remote badges
// ABOUTME: Per-source failures degrade to empty lists; anything else becomes one aggregate error

package quest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mishurahman616/portfolio/core/domain"
	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/fallback"
	"github.com/mishurahman616/portfolio/core/interfaces"
	"github.com/mishurahman616/portfolio/core/relay"
)

const (
	stateCacheKey = "questlog:state"

	// SyncFailedMessage is the banner shown when a sync fails as a whole
	SyncFailedMessage = "Could not sync with the Quest Log."
)

// Phase is where the quest log is in its load cycle
type Phase string

const (
	PhasePending Phase = "pending"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// State is the renderable view of the quest log
type State struct {
	Phase    Phase        `json:"phase"`
	Board    domain.Board `json:"board"`
	Error    string       `json:"error,omitempty"`
	SyncedAt time.Time    `json:"syncedAt"`
}

// Config controls where the quest log pulls from
type Config struct {
	LeetCodeUser    string
	PublicURL       string
	BasePath        string
	DataFile        string
	CandidatePaths  []string
	AttemptTimeout  time.Duration
	ProxyTimeout    time.Duration
	GraphQLEndpoint string
	PrimaryProxy    string
	FallbackProxy   string
	StateTTL        time.Duration
}

// DefaultConfig returns the production endpoints
func DefaultConfig() Config {
	return Config{
		BasePath:        "/portfolio/",
		AttemptTimeout:  3 * time.Second,
		ProxyTimeout:    8 * time.Second,
		GraphQLEndpoint: "https://leetcode.com/graphql",
		PrimaryProxy:    "https://corsproxy.io/?url=",
		FallbackProxy:   relay.AllOriginsGet,
	}
}

// Service aggregates the quest log
type Service struct {
	deps interfaces.Dependencies
	cfg  Config
	now  func() time.Time

	mu   sync.RWMutex
	last *State
}

// NewQuestService creates a new quest log service
func NewQuestService(deps interfaces.Dependencies, cfg Config) *Service {
	return &Service{
		deps: deps,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *Service) logger() interfaces.Logger {
	return interfaces.LoggerOrNop(s.deps.Logger)
}

// ResolveLocal returns the quests from the first readable challenge document.
// When no candidate works the result is empty, not an error. A panicking
// candidate is re-raised so Sync records it as an aggregate failure.
func (s *Service) ResolveLocal(ctx context.Context) []domain.Quest {
	chain := &fallback.Chain[[]challengeRecord]{
		Strategies: s.localStrategies(),
		Timeout:    s.cfg.AttemptTimeout,
		Logger:     s.deps.Logger,
	}

	records, source, err := chain.Run(ctx)
	if fallback.IsPanic(err) {
		panic(err)
	}
	if err != nil {
		s.logger().Warn("Local challenges unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return []domain.Quest{}
	}

	quests := make([]domain.Quest, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		q, err := recordToQuest(r, i)
		if err != nil {
			s.logger().Warn("Skipping challenge record", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		// Ids must be unique within one load so every detail page is reachable
		for base := q.ID; seen[q.ID]; base = q.ID {
			q.ID = fmt.Sprintf("%s-%d", base, i)
		}
		seen[q.ID] = true
		quests = append(quests, q)
	}

	s.logger().Debug("Local challenges loaded", map[string]interface{}{
		"source": source,
		"count":  len(quests),
	})
	return quests
}

// ResolveBadges returns earned badges as completed quests, or an empty list
// when both relays fail.
func (s *Service) ResolveBadges(ctx context.Context) []domain.Quest {
	chain := &fallback.Chain[[]Badge]{
		Strategies: s.badgeStrategies(),
		Timeout:    s.cfg.ProxyTimeout,
		Logger:     s.deps.Logger,
	}

	badges, proxy, err := chain.Run(ctx)
	if fallback.IsPanic(err) {
		panic(err)
	}
	if err != nil {
		s.logger().Warn("Badge source unavailable", map[string]interface{}{
			"error": (&coreerrors.SourceError{Source: "leetcode-badges", Err: err}).Error(),
		})
		return []domain.Quest{}
	}

	quests := make([]domain.Quest, 0, len(badges))
	for _, b := range badges {
		quests = append(quests, BadgeToQuest(b))
	}

	s.logger().Debug("Badges loaded", map[string]interface{}{
		"proxy": proxy,
		"count": len(quests),
	})
	return quests
}

// Sync runs the whole resolution sequence from scratch and records the outcome
func (s *Service) Sync(ctx context.Context) (board domain.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &coreerrors.AggregateError{Operation: "quest sync", Err: fmt.Errorf("panic: %v", r)}
		}
		s.record(ctx, board, err)
	}()

	local := s.ResolveLocal(ctx)
	badges := s.ResolveBadges(ctx)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.Board{}, &coreerrors.AggregateError{Operation: "quest sync", Err: ctxErr}
	}

	board = Merge(local, badges)
	s.logger().Info("Quest log synced", map[string]interface{}{
		"local":     len(local),
		"badges":    len(badges),
		"running":   len(board.Running),
		"upcoming":  len(board.Upcoming),
		"completed": len(board.Completed),
	})
	return board, nil
}

// record stores the latest state in memory and in the snapshot cache.
// A failed sync keeps the last good board next to the error.
func (s *Service) record(ctx context.Context, board domain.Board, err error) {
	state := State{Phase: PhaseReady, Board: board, SyncedAt: s.now()}
	if err != nil {
		s.logger().Error("Quest log sync failed", map[string]interface{}{
			"error": err.Error(),
		})
		state = State{Phase: PhaseFailed, Error: SyncFailedMessage, SyncedAt: s.now()}
		if prev := s.memoryState(); prev != nil {
			state.Board = prev.Board
		}
	}

	s.mu.Lock()
	s.last = &state
	s.mu.Unlock()

	if s.deps.Cache == nil {
		return
	}
	data, mErr := json.Marshal(state)
	if mErr != nil {
		return
	}
	// A cancelled sync still records its failure
	cacheCtx := context.WithoutCancel(ctx)
	if cErr := s.deps.Cache.Set(cacheCtx, stateCacheKey, data, s.cfg.StateTTL); cErr != nil {
		s.logger().Warn("Failed to cache quest log state", map[string]interface{}{
			"error": cErr.Error(),
		})
	}
}

func (s *Service) memoryState() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// State returns the latest quest log state, pending until the first sync finishes
func (s *Service) State(ctx context.Context) State {
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, stateCacheKey); err == nil && len(data) > 0 {
			var state State
			if err := json.Unmarshal(data, &state); err == nil {
				return state
			}
		}
	}
	if last := s.memoryState(); last != nil {
		return *last
	}
	return State{
		Phase: PhasePending,
		Board: domain.Board{Running: []domain.Quest{}, Upcoming: []domain.Quest{}, Completed: []domain.Quest{}},
	}
}

// Find looks up a single quest in the latest state
func (s *Service) Find(ctx context.Context, id string) (domain.Quest, error) {
	state := s.State(ctx)
	if q, ok := state.Board.Find(id); ok {
		return q, nil
	}
	return domain.Quest{}, &coreerrors.NotFoundError{Resource: "quest", ID: id}
}
