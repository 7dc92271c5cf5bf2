package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"statuspage/app/internal/history"
	"statuspage/app/internal/models"
	"statuspage/app/internal/probe"
	"statuspage/app/internal/status"
	"statuspage/app/internal/store"
)

// ErrPassInProgress is returned when a pass is requested while the
// previous one is still running. Passes never overlap; a slow pass
// makes the next tick a no-op instead of racing it.
var ErrPassInProgress = errors.New("scheduler: pass already in progress")

// Scheduler runs aggregation passes: probe every monitor in parallel,
// classify, fold into history, persist once.
type Scheduler struct {
	monitors    []models.MonitorConfig
	records     *store.RecordStore
	probes      *probe.Executor
	interval    time.Duration
	thresholdMs int

	passMu sync.Mutex
}

// New creates a scheduler. interval is the tick period, also used to
// size each monitor's recent-checks buffer. thresholdMs <= 0 uses the
// classifier default.
func New(monitors []models.MonitorConfig, records *store.RecordStore, probes *probe.Executor, interval time.Duration, thresholdMs int) *Scheduler {
	return &Scheduler{
		monitors:    monitors,
		records:     records,
		probes:      probes,
		interval:    interval,
		thresholdMs: thresholdMs,
	}
}

// PassResult summarizes one completed aggregation pass.
type PassResult struct {
	RunID     string    `json:"runId"`
	Checked   int       `json:"checked"`
	Timestamp time.Time `json:"timestamp"`
}

// Run executes a pass immediately, then one per interval until ctx is
// done.
func (s *Scheduler) Run(ctx context.Context) {
	if _, err := s.RunPass(ctx); err != nil {
		log.Printf("scheduler: initial pass failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunPass(ctx); err != nil {
				if errors.Is(err, ErrPassInProgress) {
					log.Printf("scheduler: skipping tick, previous pass still running")
					continue
				}
				log.Printf("scheduler: pass failed: %v", err)
			}
		}
	}
}

// RunPass executes one aggregation pass. Probes run concurrently and
// the pass waits for all of them; a failing probe only affects its own
// monitor. The pass fails as a whole only when persisting the result
// fails, in which case the stored records are left untouched.
func (s *Scheduler) RunPass(ctx context.Context) (*PassResult, error) {
	if !s.passMu.TryLock() {
		return nil, ErrPassInProgress
	}
	defer s.passMu.Unlock()

	runID := uuid.NewString()
	log.Printf("pass %s: checking %d monitors", runID, len(s.monitors))

	results := make([]history.Result, len(s.monitors))
	var wg sync.WaitGroup
	for i, m := range s.monitors {
		wg.Add(1)
		go func(i int, m models.MonitorConfig) {
			defer wg.Done()
			results[i] = s.checkMonitor(ctx, runID, m)
		}(i, m)
	}
	wg.Wait()

	now := time.Now().UTC()
	err := s.records.Update(ctx, now, func(records map[string]models.MonitorRecord) map[string]models.MonitorRecord {
		for i, m := range s.monitors {
			var prev *models.MonitorRecord
			if rec, ok := records[m.ID]; ok {
				prev = &rec
			}
			records[m.ID] = history.Fold(prev, results[i], s.interval, m.DegradedIsDown())
		}
		return records
	})
	if err != nil {
		return nil, fmt.Errorf("pass %s: %w", runID, err)
	}

	log.Printf("pass %s: completed, %d monitors checked", runID, len(s.monitors))
	return &PassResult{RunID: runID, Checked: len(s.monitors), Timestamp: now}, nil
}

func (s *Scheduler) checkMonitor(ctx context.Context, runID string, m models.MonitorConfig) history.Result {
	out := s.probes.Execute(ctx, m)
	accepted := out.Success && status.IsAccepted(out.StatusCode, m.AcceptedStatusCodes)
	st := status.Classify(accepted, out.ResponseTime, out.Body, s.thresholdMs)

	if out.Err != "" {
		log.Printf("pass %s: %s: %s (%dms) err=%s", runID, m.ID, st, out.ResponseTime, out.Err)
	} else {
		log.Printf("pass %s: %s: %s status=%d (%dms)", runID, m.ID, st, out.StatusCode, out.ResponseTime)
	}

	return history.Result{
		Status:       st,
		Timestamp:    time.Now().UTC(),
		ResponseTime: out.ResponseTime,
	}
}
