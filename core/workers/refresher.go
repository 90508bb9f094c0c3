// ABOUTME: Refresher runs the aggregator refresh jobs in the background
// ABOUTME: Every job runs once at start and then on a fixed interval; jobs can also be run on demand

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/mishurahman616/portfolio/core/interfaces"
)

// Names of the refresh jobs the server registers
const (
	JobQuests = "quests"
	JobStats  = "stats"
)

// Job is one named refresh task
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// RefresherConfig holds configuration for the refresher
type RefresherConfig struct {
	Interval   time.Duration
	JobTimeout time.Duration
}

// DefaultRefresherConfig returns the default refresher configuration
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Interval:   15 * time.Minute,
		JobTimeout: 30 * time.Second,
	}
}

// Refresher manages the periodic refresh loop
type Refresher struct {
	jobs     []Job
	locks    map[string]*sync.Mutex
	interval time.Duration
	timeout  time.Duration
	logger   interfaces.Logger

	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewRefresher creates a new refresher for the given jobs
func NewRefresher(logger interfaces.Logger, config RefresherConfig, jobs ...Job) *Refresher {
	if config.Interval <= 0 {
		config.Interval = DefaultRefresherConfig().Interval
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultRefresherConfig().JobTimeout
	}

	locks := make(map[string]*sync.Mutex, len(jobs))
	for _, j := range jobs {
		locks[j.Name] = &sync.Mutex{}
	}

	return &Refresher{
		jobs:     jobs,
		locks:    locks,
		interval: config.Interval,
		timeout:  config.JobTimeout,
		logger:   interfaces.LoggerOrNop(logger),
	}
}

// Start starts the refresh loop
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	r.ctx, r.cancel = context.WithCancel(context.Background())
	r.wg.Add(1)
	go r.loop(r.ctx)

	r.running = true
	return nil
}

// Stop cancels the loop and waits for any running job to return
func (r *Refresher) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}

	r.cancel()
	r.wg.Wait()

	r.running = false
	return nil
}

// RefreshNow runs one job in the caller's goroutine. It waits for a run of
// the same job already in progress so two runs never overlap.
func (r *Refresher) RefreshNow(ctx context.Context, name string) error {
	for _, j := range r.jobs {
		if j.Name == name {
			return r.run(ctx, j)
		}
	}
	return ErrUnknownJob
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	r.runAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.runAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) runAll(ctx context.Context) {
	for _, j := range r.jobs {
		if ctx.Err() != nil {
			return
		}
		// Failures are logged by run and never stop the loop
		_ = r.run(ctx, j)
	}
}

func (r *Refresher) run(ctx context.Context, j Job) error {
	lock := r.locks[j.Name]
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := j.Run(ctx)
	fields := map[string]interface{}{
		"job":      j.Name,
		"duration": time.Since(start).String(),
	}
	if err != nil {
		fields["error"] = err.Error()
		r.logger.Error("Refresh job failed", fields)
		return err
	}
	r.logger.Debug("Refresh job finished", fields)
	return nil
}

// Error definitions
var (
	ErrUnknownJob = &WorkerError{Message: "no refresh job with that name"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
