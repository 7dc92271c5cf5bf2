package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"statuspage/app/internal/cache"
	"statuspage/app/internal/config"
	"statuspage/app/internal/history"
	"statuspage/app/internal/maintenance"
	"statuspage/app/internal/models"
	"statuspage/app/internal/scheduler"
	"statuspage/app/internal/status"
	"statuspage/app/internal/store"
)

const statusCacheKey = "monitors_status"

// HandleStatus returns the persisted monitor records, active
// maintenance windows and the last global update instant. The payload
// is cached briefly; a store failure is an explicit error, never an
// empty record set.
func HandleStatus(records *store.RecordStore, windows []models.MaintenanceWindow, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if body, ok := c.Get(statusCacheKey); ok {
			writeStatusBody(w, body)
			return
		}

		recs, err := records.Records(r.Context())
		if err != nil {
			log.Printf("status: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch monitor status")
			return
		}
		lastUpdate, err := records.LastUpdate(r.Context())
		if err != nil {
			log.Printf("status: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch monitor status")
			return
		}
		if lastUpdate.IsZero() {
			lastUpdate = time.Now().UTC()
		}

		resp := models.StatusResponse{
			Monitors:     recs,
			Maintenances: maintenance.ActiveWindows(windows, time.Now().UTC()),
			LastUpdate:   lastUpdate,
		}
		body, err := json.Marshal(resp)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode monitor status")
			return
		}
		c.Set(statusCacheKey, body)
		writeStatusBody(w, body)
	}
}

func writeStatusBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=5")
	_, _ = w.Write(body)
}

// OverallResponse is the site-wide status payload. Monitors without a
// record yet report "unknown" and are excluded from the reduction, so a
// fresh monitor never shows up as an incident.
type OverallResponse struct {
	Overall  status.Status            `json:"overall"`
	Monitors map[string]status.Status `json:"monitors"`
}

// HandleOverall reduces per-monitor statuses to one site-wide status.
func HandleOverall(records *store.RecordStore, monitors []models.MonitorConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		recs, err := records.Records(r.Context())
		if err != nil {
			log.Printf("overall: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch monitor status")
			return
		}

		resp := OverallResponse{Monitors: make(map[string]status.Status, len(monitors))}
		var known []status.Status
		for _, m := range monitors {
			rec, ok := recs[m.ID]
			if !ok {
				resp.Monitors[m.ID] = status.Unknown
				continue
			}
			resp.Monitors[m.ID] = rec.Status
			known = append(known, rec.Status)
		}
		resp.Overall = status.Overall(known)

		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleUptime reports uptime percentages per look-back period. With
// ?id= it answers for one monitor, otherwise for all; ?period= narrows
// to a single window.
func HandleUptime(records *store.RecordStore, monitors []models.MonitorConfig) http.HandlerFunc {
	type monitorUptime map[history.Period]float64

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		periods := history.Periods
		if q := r.URL.Query().Get("period"); q != "" {
			p, err := history.ParsePeriod(q)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			periods = []history.Period{p}
		}

		selected := monitors
		if id := r.URL.Query().Get("id"); id != "" {
			selected = nil
			for _, m := range monitors {
				if m.ID == id {
					selected = []models.MonitorConfig{m}
					break
				}
			}
			if selected == nil {
				writeError(w, http.StatusNotFound, "unknown monitor id")
				return
			}
		}

		recs, err := records.Records(r.Context())
		if err != nil {
			log.Printf("uptime: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch monitor status")
			return
		}

		now := time.Now().UTC()
		out := make(map[string]monitorUptime, len(selected))
		for _, m := range selected {
			rec, ok := recs[m.ID]
			if !ok {
				// No record yet: distinct from down, reported as null.
				out[m.ID] = nil
				continue
			}
			u := make(monitorUptime, len(periods))
			for _, p := range periods {
				u[p] = history.UptimeForPeriod(rec, p, now, m.DegradedIsDown())
			}
			out[m.ID] = u
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// HandleTrigger runs one aggregation pass on demand, authenticated by
// the X-Cron-Auth header. It reuses the scheduler's pass so manual and
// scheduled checks share one code path.
func HandleTrigger(cfg *config.Config, sched *scheduler.Scheduler, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !cfg.VerifyCronAuth(r.Header.Get("X-Cron-Auth")) {
			http.Error(w, "access denied", http.StatusUnauthorized)
			return
		}

		result, err := sched.RunPass(r.Context())
		if err != nil {
			if errors.Is(err, scheduler.ErrPassInProgress) {
				writeError(w, http.StatusConflict, "a pass is already running")
				return
			}
			log.Printf("trigger: %v", err)
			writeError(w, http.StatusInternalServerError, "pass failed")
			return
		}

		c.Delete(statusCacheKey)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"checked":   result.Checked,
			"runId":     result.RunID,
			"timestamp": result.Timestamp,
		})
	}
}

// HandleHealthz is a plain liveness probe.
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}
