// ABOUTME: Load tests for the portfolio pages and JSON endpoints
// ABOUTME: Hammers the full router while the quest log is re-synced underneath it

package loadtest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishurahman616/portfolio/api"
	"github.com/mishurahman616/portfolio/api/handlers"
	"github.com/mishurahman616/portfolio/content"
	"github.com/mishurahman616/portfolio/core/interfaces"
	"github.com/mishurahman616/portfolio/core/quest"
	"github.com/mishurahman616/portfolio/core/stats"
	"github.com/mishurahman616/portfolio/core/workers"
	"github.com/mishurahman616/portfolio/infrastructure/cache/memory"
	"github.com/mishurahman616/portfolio/web"
)

const challengeDoc = `{"challenges":[
	{"id":1,"title":"100 Days of LeetCode","status":"running","color":"orange","currentDay":42,"totalDays":100,"streak":42},
	{"id":2,"title":"Contest Marathon","status":"upcoming","color":"green","scheduledDate":"2025-03-01"},
	{"id":3,"title":"SQL 50","status":"completed","color":"purple","completionDate":"2024-08-15"}
]}`

// stubClient answers every source from memory after a small delay
type stubClient struct {
	delay time.Duration
}

func (c *stubClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	switch {
	case strings.Contains(url, "challenges.json"):
		return &stubResponse{status: http.StatusOK, body: challengeDoc}, nil
	case strings.Contains(url, "leetcode-stats"):
		return &stubResponse{status: http.StatusOK, body: `{"status":"success","totalSolved":612,"acceptanceRate":61.2}`}, nil
	}
	return nil, errors.New("source unavailable")
}

func (c *stubClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, errors.New("source unavailable")
}

type stubResponse struct {
	status int
	body   string
}

func (r *stubResponse) StatusCode() int          { return r.status }
func (r *stubResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(r.body)) }
func (r *stubResponse) Header(key string) string { return "" }

// LoadTestMetrics tracks performance metrics
type LoadTestMetrics struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	TotalDuration  time.Duration
	P95Latency     time.Duration
	RequestsPerSec float64
}

func newSite(t testing.TB) (*httptest.Server, *workers.Refresher) {
	t.Helper()

	deps := interfaces.Dependencies{
		Cache:      memory.NewMemoryCache(time.Minute),
		HTTPClient: &stubClient{delay: 2 * time.Millisecond},
	}
	questService := quest.NewQuestService(deps, quest.Config{
		PublicURL:      "http://portfolio.test",
		BasePath:       "/portfolio/",
		AttemptTimeout: time.Second,
		ProxyTimeout:   time.Second,
	})
	statsService := stats.NewStatsService(deps, stats.Config{
		LeetCodeUser:     "mishurahman",
		LeetCodeEndpoint: "http://leetcode-stats.test/",
		Timeout:          time.Second,
	})
	refresher := workers.NewRefresher(nil, workers.DefaultRefresherConfig(),
		workers.Job{Name: workers.JobQuests, Run: func(ctx context.Context) error {
			_, err := questService.Sync(ctx)
			return err
		}},
		workers.Job{Name: workers.JobStats, Run: func(ctx context.Context) error {
			_, err := statsService.Refresh(ctx)
			return err
		}},
	)

	profile, err := content.Embedded()
	require.NoError(t, err)
	rendered, err := content.NewMarkdown("").RenderProfile(profile)
	require.NoError(t, err)
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	humaAPI, router := api.NewAPI(api.APIConfig{})
	handlers.NewQuestHandler(questService, refresher).RegisterRoutes(humaAPI)
	handlers.NewStatsHandler(statsService).RegisterRoutes(humaAPI)
	handlers.NewPageHandler(renderer, handlers.PageConfig{Content: rendered}, questService, statsService, nil, refresher).Mount(router)

	require.NoError(t, refresher.RefreshNow(context.Background(), workers.JobQuests))
	require.NoError(t, refresher.RefreshNow(context.Background(), workers.JobStats))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, refresher
}

func TestSite_ConcurrentReadsDuringSync(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping load test in short mode")
	}

	server, refresher := newSite(t)

	concurrency := 50
	requestsPerWorker := 10
	paths := []string{"/", "/api/quests", "/api/stats", "/quests/running", "/quests/item/local-1"}

	var (
		successCount int64
		failCount    int64
		latencies    []time.Duration
		mu           sync.Mutex
		wg           sync.WaitGroup
	)

	stopSync := make(chan struct{})
	syncDone := make(chan struct{})
	go func() {
		defer close(syncDone)
		for {
			select {
			case <-stopSync:
				return
			default:
				_ = refresher.RefreshNow(context.Background(), workers.JobQuests)
			}
		}
	}()

	startTime := time.Now()
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{Timeout: 10 * time.Second}

			for j := 0; j < requestsPerWorker; j++ {
				path := paths[(workerID+j)%len(paths)]
				reqStart := time.Now()
				resp, err := client.Get(server.URL + path)
				latency := time.Since(reqStart)

				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				if resp.StatusCode == http.StatusOK {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
			}
		}(i)
	}
	wg.Wait()
	close(stopSync)
	<-syncDone

	metrics := summarize(latencies, successCount, failCount, time.Since(startTime))
	t.Logf("requests=%d ok=%d failed=%d p95=%v rps=%.0f",
		metrics.TotalRequests, metrics.SuccessfulReqs, metrics.FailedReqs, metrics.P95Latency, metrics.RequestsPerSec)

	assert.Equal(t, int64(concurrency*requestsPerWorker), metrics.TotalRequests)
	assert.Zero(t, metrics.FailedReqs)
}

func summarize(latencies []time.Duration, ok, failed int64, total time.Duration) LoadTestMetrics {
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	m := LoadTestMetrics{
		TotalRequests:  ok + failed,
		SuccessfulReqs: ok,
		FailedReqs:     failed,
		TotalDuration:  total,
	}
	if len(latencies) > 0 {
		m.P95Latency = latencies[len(latencies)*95/100]
	}
	if total > 0 {
		m.RequestsPerSec = float64(m.TotalRequests) / total.Seconds()
	}
	return m
}

func BenchmarkHomePage(b *testing.B) {
	server, _ := newSite(b)
	client := &http.Client{Timeout: 10 * time.Second}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Get(server.URL + "/")
		if err != nil {
			b.Fatal(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b.Fatalf("status %d", resp.StatusCode)
		}
	}
}
