package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"statuspage/app/internal/config"
	"statuspage/app/internal/handlers"
	"statuspage/app/internal/probe"
	"statuspage/app/internal/scheduler"
	"statuspage/app/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if len(cfg.Monitors) == 0 {
		log.Println("No monitors configured; the status API will report an empty set")
	}

	kv, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	records := store.NewRecordStore(kv)
	executor := probe.NewExecutor(cfg.ProbeTimeout, cfg.UserAgent)
	sched := scheduler.New(cfg.Monitors, records, executor, cfg.PollInterval, cfg.DegradedThresholdMs)

	if cfg.EnableScheduler {
		go sched.Run(context.Background())
		log.Printf("Scheduler started with %v interval", cfg.PollInterval)
	}

	handler := handlers.SetupRoutes(cfg, records, sched)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
