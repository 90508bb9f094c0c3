// ABOUTME: Snapshot cache contract for the quest log and stats aggregators
// ABOUTME: Backed by go-cache, Redis or SQLite; entries are opaque JSON snapshots

package interfaces

import (
	"context"
	"time"
)

// Cache holds the latest aggregator snapshots under fixed keys such as
// questlog:state and stats:snapshot. Pages read from it so a render never
// waits on the network. It is a memo of the last refresh, never a source of
// truth: a miss means "not synced yet".
type Cache interface {
	// Get returns the snapshot stored under key, or an error on a miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the snapshot under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete drops a snapshot. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
