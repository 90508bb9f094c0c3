// ABOUTME: Stats aggregator for the problem solving section
// ABOUTME: Fetches LeetCode directly and Codeforces through a relay, each failing on its own

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mishurahman616/portfolio/core/domain"
	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/interfaces"
	"github.com/mishurahman616/portfolio/core/relay"
)

const (
	snapshotCacheKey = "stats:snapshot"

	// UnavailableMessage is what a card shows when its source failed
	UnavailableMessage = "Stats unavailable"
)

// Config controls the stats sources
type Config struct {
	LeetCodeUser       string
	CodeforcesUser     string
	LeetCodeEndpoint   string
	CodeforcesEndpoint string
	Proxy              string
	Timeout            time.Duration
	SnapshotTTL        time.Duration
}

// DefaultConfig returns the production endpoints
func DefaultConfig() Config {
	return Config{
		LeetCodeEndpoint:   "https://leetcode-stats-api.herokuapp.com/",
		CodeforcesEndpoint: "https://codeforces.com/api/user.info?handles=",
		Proxy:              relay.AllOriginsGet,
		Timeout:            10 * time.Second,
	}
}

type codeforcesResponse struct {
	Status  string                   `json:"status"`
	Comment string                   `json:"comment"`
	Result  []domain.CodeforcesStats `json:"result"`
}

type leetCodeResponse struct {
	domain.LeetCodeStats
	Message string `json:"message"`
}

// Service aggregates coding-profile statistics
type Service struct {
	deps interfaces.Dependencies
	cfg  Config
	now  func() time.Time

	mu   sync.RWMutex
	last *domain.StatsSnapshot
}

// NewStatsService creates a new stats service
func NewStatsService(deps interfaces.Dependencies, cfg Config) *Service {
	return &Service{
		deps: deps,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *Service) logger() interfaces.Logger {
	return interfaces.LoggerOrNop(s.deps.Logger)
}

// FetchLeetCode reads the LeetCode profile summary
func (s *Service) FetchLeetCode(ctx context.Context) (*domain.LeetCodeStats, error) {
	if s.cfg.LeetCodeUser == "" {
		return nil, errors.New("no LeetCode user configured")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	target := strings.TrimSuffix(s.cfg.LeetCodeEndpoint, "/") + "/" + s.cfg.LeetCodeUser
	resp, err := s.deps.HTTPClient.Get(ctx, target)
	data, err := relay.Body("leetcode", resp, err)
	if err != nil {
		return nil, err
	}

	var payload leetCodeResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding leetcode stats: %w", err)
	}
	if strings.EqualFold(payload.Status, "error") {
		return nil, fmt.Errorf("leetcode stats error: %s", payload.Message)
	}
	stats := payload.LeetCodeStats
	return &stats, nil
}

// FetchCodeforces reads the Codeforces user info through the relay
func (s *Service) FetchCodeforces(ctx context.Context) (*domain.CodeforcesStats, error) {
	if s.cfg.CodeforcesUser == "" {
		return nil, errors.New("no Codeforces user configured")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	target := relay.Via(s.cfg.Proxy, s.cfg.CodeforcesEndpoint+s.cfg.CodeforcesUser)
	resp, err := s.deps.HTTPClient.Get(ctx, target)
	data, err := relay.Body("codeforces", resp, err)
	if err != nil {
		return nil, err
	}
	contents, err := relay.Unwrap(data)
	if err != nil {
		return nil, err
	}

	var payload codeforcesResponse
	if err := json.Unmarshal(contents, &payload); err != nil {
		return nil, fmt.Errorf("decoding codeforces user info: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("codeforces status %q: %s", payload.Status, payload.Comment)
	}
	if len(payload.Result) == 0 {
		return nil, errors.New("codeforces returned no users")
	}
	user := payload.Result[0]
	return &user, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

// Refresh fetches both sources concurrently and stores the snapshot.
// A source failure only marks that source unavailable.
func (s *Service) Refresh(ctx context.Context) (domain.StatsSnapshot, error) {
	if s.deps.HTTPClient == nil {
		return domain.StatsSnapshot{}, errors.New("stats service has no HTTP client")
	}

	var (
		g          errgroup.Group
		leetcode   *domain.LeetCodeStats
		codeforces *domain.CodeforcesStats
		lcErr      error
		cfErr      error
	)
	g.Go(func() error {
		leetcode, lcErr = s.FetchLeetCode(ctx)
		return nil
	})
	g.Go(func() error {
		codeforces, cfErr = s.FetchCodeforces(ctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.StatsSnapshot{}, &coreerrors.AggregateError{Operation: "stats refresh", Err: err}
	}

	snapshot := domain.StatsSnapshot{
		LeetCode:   leetcode,
		Codeforces: codeforces,
		FetchedAt:  s.now(),
	}
	if lcErr != nil {
		snapshot.LeetCode = nil
		snapshot.LeetCodeError = UnavailableMessage
		s.logger().Warn("LeetCode stats unavailable", map[string]interface{}{
			"error": (&coreerrors.SourceError{Source: "leetcode", Err: lcErr}).Error(),
		})
	}
	if cfErr != nil {
		snapshot.Codeforces = nil
		snapshot.CodeforcesError = UnavailableMessage
		s.logger().Warn("Codeforces stats unavailable", map[string]interface{}{
			"error": (&coreerrors.SourceError{Source: "codeforces", Err: cfErr}).Error(),
		})
	}

	s.store(ctx, snapshot)
	s.logger().Info("Stats refreshed", map[string]interface{}{
		"leetcode":   snapshot.LeetCode != nil,
		"codeforces": snapshot.Codeforces != nil,
	})
	return snapshot, nil
}

func (s *Service) store(ctx context.Context, snapshot domain.StatsSnapshot) {
	s.mu.Lock()
	s.last = &snapshot
	s.mu.Unlock()

	if s.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, snapshotCacheKey, data, s.cfg.SnapshotTTL); err != nil {
		s.logger().Warn("Failed to cache stats snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Snapshot returns the latest stats, Loading until the first refresh finishes
func (s *Service) Snapshot(ctx context.Context) domain.StatsSnapshot {
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, snapshotCacheKey); err == nil && len(data) > 0 {
			var snapshot domain.StatsSnapshot
			if err := json.Unmarshal(data, &snapshot); err == nil {
				return snapshot
			}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last != nil {
		return *s.last
	}
	return domain.StatsSnapshot{Loading: true}
}
