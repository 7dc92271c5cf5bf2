package handlers

import (
	"net/http"
	"time"

	"statuspage/app/internal/cache"
	"statuspage/app/internal/config"
	"statuspage/app/internal/scheduler"
	"statuspage/app/internal/security"
	"statuspage/app/internal/store"
)

// SetupRoutes configures all HTTP routes and middlewares.
func SetupRoutes(cfg *config.Config, records *store.RecordStore, sched *scheduler.Scheduler) http.Handler {
	statusCache := cache.New(5 * time.Second)
	limiter := security.NewLimiter(30, time.Second)

	api := http.NewServeMux()
	api.HandleFunc("/api/monitors/status", HandleStatus(records, cfg.Maintenances, statusCache))
	api.HandleFunc("/api/monitors/uptime", HandleUptime(records, cfg.Monitors))
	api.HandleFunc("/api/overall", HandleOverall(records, cfg.Monitors))
	api.HandleFunc("/api/cron/check", HandleTrigger(cfg, sched, statusCache))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/healthz", HandleHealthz())
	mux.Handle("/api/", limiter.Middleware(api))

	return security.Headers(mux)
}
