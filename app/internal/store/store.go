// Package store persists monitor state behind a small key-value
// interface. The aggregation job is the sole writer; the read API only
// reads, and stale reads are acceptable.
package store

import "context"

// KV is the persistence contract the core depends on. Values are JSON
// or plain strings; implementations may back it with a file, an
// embedded database, or a managed service.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores the value for key, overwriting any previous value.
	Put(ctx context.Context, key, value string) error
}
