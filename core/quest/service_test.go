package quest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishurahman616/portfolio/core/domain"
	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/interfaces"
)

const challengesJSON = `{
  "challenges": [
    {"id": 1, "title": "100 Days of Code", "description": "Daily practice", "status": "running", "type": "Streak", "color": "blue", "currentDay": 42, "totalDays": 100, "streak": 12},
    {"id": 2, "title": "System Design Primer", "status": "upcoming", "type": "Study", "color": "green", "scheduledDate": "2025-03-01"},
    {"id": 3, "title": "SQL 50", "status": "completed", "type": "Study Plan", "color": "purple", "completionDate": "2024-05-01"},
    {"id": 4, "title": "Mystery", "status": "paused"}
  ]
}`

const badgesJSON = `{"data":{"matchedUser":{"badges":[
  {"id":"1","name":"Annual Badge 2023","displayName":"Annual Badge 2023","icon":"/static/annual.png","hoverText":"Active 365 days","creationDate":"2023-12-31"},
  {"id":"2","name":"100 Days Badge 2024","displayName":"100 Days Badge 2024","icon":"/static/100.png","creationDate":"2024-06-01"}
]}}}`

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.LeetCodeUser = "mishurahman"
	cfg.PublicURL = "https://example.com"
	cfg.AttemptTimeout = time.Second
	cfg.ProxyTimeout = time.Second
	return cfg
}

func newTestService(client interfaces.HTTPClient, cache interfaces.Cache, cfg Config) *Service {
	svc := NewQuestService(interfaces.Dependencies{HTTPClient: client, Cache: cache}, cfg)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCandidateURLs(t *testing.T) {
	urls := CandidateURLs("https://example.com", "/portfolio/", nil, "123")

	assert.Equal(t, []string{
		"https://example.com/portfolio/data/challenges.json?t=123",
		"https://example.com/data/challenges.json?t=123",
	}, urls)
}

func TestCandidateURLs_RootDeployment(t *testing.T) {
	urls := CandidateURLs("https://me.dev/", "", nil, "")

	assert.Equal(t, []string{
		"https://me.dev/data/challenges.json",
		"https://me.dev/portfolio/data/challenges.json",
	}, urls)
}

func TestResolveLocal_FirstSuccessfulCandidateWins(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			if strings.Contains(url, "/portfolio/") {
				return &mockResponse{statusCode: 404, body: "not found"}, nil
			}
			return &mockResponse{statusCode: 200, body: challengesJSON}, nil
		},
	}
	svc := newTestService(client, nil, testConfig())

	quests := svc.ResolveLocal(context.Background())

	require.Len(t, quests, 3, "record with unknown status is skipped")
	assert.Equal(t, "local-1", quests[0].ID)
	assert.Equal(t, domain.StatusRunning, quests[0].Status())
	progress, ok := quests[0].Running()
	require.True(t, ok)
	assert.Equal(t, 42, progress.CurrentDay)
	assert.Equal(t, 12, progress.Streak)
	assert.Len(t, client.calls(), 2)
}

func TestResolveLocal_MalformedContentTriesNextCandidate(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			if strings.Contains(url, "/portfolio/") {
				return &mockResponse{statusCode: 200, body: "<html>index</html>"}, nil
			}
			return &mockResponse{statusCode: 200, body: challengesJSON}, nil
		},
	}
	svc := newTestService(client, nil, testConfig())

	quests := svc.ResolveLocal(context.Background())

	assert.Len(t, quests, 3)
}

func TestResolveLocal_StopsAfterFirstSuccess(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: challengesJSON}, nil
		},
	}
	svc := newTestService(client, nil, testConfig())

	svc.ResolveLocal(context.Background())

	assert.Len(t, client.calls(), 1)
}

func TestResolveLocal_AllCandidatesFail(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("network down")
		},
	}
	svc := newTestService(client, nil, testConfig())

	quests := svc.ResolveLocal(context.Background())

	assert.NotNil(t, quests)
	assert.Empty(t, quests)
}

func TestResolveLocal_PrefersDataFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "challenges.json")
	require.NoError(t, os.WriteFile(path, []byte(challengesJSON), 0o644))

	client := &mockHTTPClient{}
	cfg := testConfig()
	cfg.DataFile = path
	svc := newTestService(client, nil, cfg)

	quests := svc.ResolveLocal(context.Background())

	assert.Len(t, quests, 3)
	assert.Empty(t, client.calls(), "no HTTP candidate is tried after the file succeeds")
}

func TestResolveBadges_PrimaryProxy(t *testing.T) {
	var postedTo string
	var posted graphQLRequest
	client := &mockHTTPClient{
		postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
			postedTo = url
			require.NoError(t, json.NewDecoder(body).Decode(&posted))
			return &mockResponse{statusCode: 200, body: badgesJSON}, nil
		},
	}
	svc := newTestService(client, nil, testConfig())

	quests := svc.ResolveBadges(context.Background())

	require.Len(t, quests, 2)
	assert.Equal(t, "https://corsproxy.io/?url=https%3A%2F%2Fleetcode.com%2Fgraphql", postedTo)
	assert.Equal(t, "mishurahman", posted.Variables["username"])
	assert.Contains(t, posted.Query, "matchedUser")
	assert.Empty(t, client.calls(), "fallback proxy is not used when the primary works")
	assert.Equal(t, BadgeColorMilestone, quests[1].Color)
}

func TestResolveBadges_FallsBackToSecondProxy(t *testing.T) {
	envelope, err := json.Marshal(map[string]interface{}{
		"contents": badgesJSON,
		"status":   map[string]int{"http_code": 200},
	})
	require.NoError(t, err)

	client := &mockHTTPClient{
		postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
			return &mockResponse{statusCode: 403, body: "forbidden"}, nil
		},
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: string(envelope)}, nil
		},
	}
	svc := newTestService(client, nil, testConfig())

	quests := svc.ResolveBadges(context.Background())

	require.Len(t, quests, 2)
	calls := client.calls()
	require.Len(t, calls, 1)
	assert.True(t, strings.HasPrefix(calls[0], "https://api.allorigins.win/get?url="))
}

func TestResolveBadges_BothProxiesFail(t *testing.T) {
	client := &mockHTTPClient{
		postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: `{"data":{"matchedUser":null}}`}, nil
		},
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: `{"contents":""}`}, nil
		},
	}
	svc := newTestService(client, nil, testConfig())

	quests := svc.ResolveBadges(context.Background())

	assert.NotNil(t, quests)
	assert.Empty(t, quests)
}

func TestState_PendingBeforeFirstSync(t *testing.T) {
	svc := newTestService(&mockHTTPClient{}, newMapCache(), testConfig())

	state := svc.State(context.Background())

	assert.Equal(t, PhasePending, state.Phase)
	assert.Equal(t, 0, state.Board.Total())
}

func TestSync_MergesBothSources(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: challengesJSON}, nil
		},
		postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: badgesJSON}, nil
		},
	}
	cache := newMapCache()
	svc := newTestService(client, cache, testConfig())

	board, err := svc.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, board.Total())
	require.Len(t, board.Completed, 3)
	assert.Equal(t, "Annual Badge 2023", board.Completed[0].Title)
	assert.Equal(t, "100 Days Badge 2024", board.Completed[1].Title)
	assert.Equal(t, "SQL 50", board.Completed[2].Title)

	// A fresh service sharing the cache sees the same state
	other := newTestService(&mockHTTPClient{}, cache, testConfig())
	state := other.State(context.Background())
	assert.Equal(t, PhaseReady, state.Phase)
	assert.Equal(t, 5, state.Board.Total())
	assert.True(t, fixedNow.Equal(state.SyncedAt))

	q, err := other.Find(context.Background(), "badge-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, q.Status())
}

func TestSync_EverythingDownStillRenders(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("offline")
		},
		postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
			return nil, errors.New("offline")
		},
	}
	svc := newTestService(client, nil, testConfig())

	board, err := svc.Sync(context.Background())

	require.NoError(t, err, "per-source failures are not aggregate failures")
	assert.Equal(t, 0, board.Total())
	assert.Equal(t, PhaseReady, svc.State(context.Background()).Phase)
}

func TestSync_CancelledContextIsAggregateFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(&mockHTTPClient{}, newMapCache(), testConfig())

	_, err := svc.Sync(ctx)

	require.Error(t, err)
	assert.True(t, coreerrors.IsAggregate(err))

	state := svc.State(context.Background())
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, SyncFailedMessage, state.Error)
}

func TestSync_RetryRecoversFromFailure(t *testing.T) {
	cache := newMapCache()
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: challengesJSON}, nil
		},
	}
	svc := newTestService(client, cache, testConfig())
	svc.cfg.PrimaryProxy = ""
	svc.cfg.FallbackProxy = ""

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Sync(ctx)
	require.Error(t, err)

	board, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, board.Total())
	assert.Equal(t, PhaseReady, svc.State(context.Background()).Phase)
}

func TestFind_Unknown(t *testing.T) {
	svc := newTestService(&mockHTTPClient{}, nil, testConfig())

	_, err := svc.Find(context.Background(), "missing")

	assert.True(t, coreerrors.IsNotFound(err))
}

func TestSync_PanickingSourceIsAggregateFailure(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			panic("relay blew up")
		},
		postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
			panic("relay blew up")
		},
	}
	svc := newTestService(client, newMapCache(), testConfig())

	_, err := svc.Sync(context.Background())

	require.Error(t, err)
	assert.True(t, coreerrors.IsAggregate(err))
	assert.Contains(t, err.Error(), "relay blew up")

	state := svc.State(context.Background())
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, SyncFailedMessage, state.Error)
}

func TestResolveLocal_DuplicateIDsStayReachable(t *testing.T) {
	doc := `{"challenges":[
  {"id": 1, "title": "A", "status": "running", "currentDay": 1, "totalDays": 10},
  {"id": 1, "title": "B", "status": "completed", "completionDate": "2024-01-01"},
  {"id": "1-1", "title": "C", "status": "upcoming", "scheduledDate": "2025-01-01"}
]}`
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: doc}, nil
		},
	}
	svc := newTestService(client, nil, testConfig())
	svc.cfg.PrimaryProxy = ""
	svc.cfg.FallbackProxy = ""

	quests := svc.ResolveLocal(context.Background())
	require.Len(t, quests, 3)

	ids := map[string]bool{}
	for _, q := range quests {
		assert.False(t, ids[q.ID], "duplicate id %s", q.ID)
		ids[q.ID] = true
	}

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	for _, title := range []string{"A", "B", "C"} {
		found := false
		for id := range ids {
			q, err := svc.Find(context.Background(), id)
			require.NoError(t, err)
			if q.Title == title {
				found = true
			}
		}
		assert.True(t, found, "quest %s reachable through Find", title)
	}

	first, err := svc.Find(context.Background(), "local-1")
	require.NoError(t, err)
	assert.Equal(t, "A", first.Title)
}
