// ABOUTME: Watches the local challenge document and triggers a quest refresh when it changes
// ABOUTME: Watches the parent directory so editors that replace the file are still seen

package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mishurahman616/portfolio/core/interfaces"
)

// DefaultDebounce batches the burst of events a single save produces
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher calls OnChange after the watched file settles
type FileWatcher struct {
	path     string
	onChange func(ctx context.Context) error
	debounce time.Duration
	logger   interfaces.Logger

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewFileWatcher creates a watcher for path
func NewFileWatcher(path string, debounce time.Duration, logger interfaces.Logger, onChange func(ctx context.Context) error) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: debounce,
		logger:   interfaces.LoggerOrNop(logger),
	}
}

// Start begins watching. It does not block.
func (w *FileWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.watcher = watcher
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true

	go w.run(ctx)

	w.logger.Info("Watching challenge document", map[string]interface{}{
		"path": w.path,
	})
	return nil
}

// Stop stops watching and waits for the event loop to exit
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.cancel()
	<-w.done
	w.running = false
	return w.watcher.Close()
}

func (w *FileWatcher) run(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Challenge document watch error", map[string]interface{}{
				"error": err.Error(),
			})

		case <-timer.C:
			w.logger.Debug("Challenge document changed", map[string]interface{}{
				"path": w.path,
			})
			if err := w.onChange(ctx); err != nil {
				w.logger.Warn("Refresh after document change failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
