package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"statuspage/app/internal/models"
)

const (
	monitorsKey   = "monitors"
	lastUpdateKey = "lastUpdate"
)

// RecordStore owns the persisted monitor-record map and the global
// last-update instant. Updates are serialized so an overlapping
// aggregation run cannot lose a read-modify-write.
type RecordStore struct {
	kv KV
	mu sync.Mutex
}

// NewRecordStore wraps a KV.
func NewRecordStore(kv KV) *RecordStore {
	return &RecordStore{kv: kv}
}

// Records loads the record map. An empty store yields an empty map; a
// persistence failure yields an error, so "no monitors yet" and "store
// unavailable" stay distinguishable.
func (s *RecordStore) Records(ctx context.Context) (map[string]models.MonitorRecord, error) {
	raw, ok, err := s.kv.Get(ctx, monitorsKey)
	if err != nil {
		return nil, fmt.Errorf("load monitor records: %w", err)
	}
	records := map[string]models.MonitorRecord{}
	if !ok || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode monitor records: %w", err)
	}
	return records, nil
}

// LastUpdate returns the instant of the last completed pass, or the
// zero time when no pass has run yet.
func (s *RecordStore) LastUpdate(ctx context.Context) (time.Time, error) {
	raw, ok, err := s.kv.Get(ctx, lastUpdateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("load last update: %w", err)
	}
	if !ok || raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode last update: %w", err)
	}
	return t, nil
}

// Update applies fn to the current record map under the store lock and
// persists the result along with the pass timestamp. fn receives a map
// it may mutate and return.
func (s *RecordStore) Update(ctx context.Context, now time.Time, fn func(map[string]models.MonitorRecord) map[string]models.MonitorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Records(ctx)
	if err != nil {
		return err
	}
	records = fn(records)

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode monitor records: %w", err)
	}
	if err := s.kv.Put(ctx, monitorsKey, string(data)); err != nil {
		return fmt.Errorf("persist monitor records: %w", err)
	}
	if err := s.kv.Put(ctx, lastUpdateKey, now.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("persist last update: %w", err)
	}
	return nil
}
