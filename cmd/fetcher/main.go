package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketFetch/internal/collector"
	"MarketFetch/internal/config"
	"MarketFetch/internal/recorder"
	"MarketFetch/internal/runner"
	"MarketFetch/internal/scheduler"
	"MarketFetch/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketFetch starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewAlphaVantageFetcher(
		cfg.DataSource.BaseURL,
		cfg.DataSource.APIKey,
		cfg.DataSource.Function,
		cfg.DataSource.OutputSize,
		cfg.Proxy,
	)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init store
	st := store.NewStore(cfg.OutputDir)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] init sqlite recorder: %v", err)
		}
		rec = sr
		defer sr.Close()
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	run := runner.NewRunner(fetcher, st, rec, cfg.Symbols, cfg.CallInterval())

	// One-shot mode: a single pass, then exit 0 regardless of how many
	// symbols failed. Only pre-loop setup errors are fatal.
	if cfg.Schedule.FetchCron == "" {
		if _, err := run.Run(ctx); err != nil {
			log.Fatalf("[FATAL] run: %v", err)
		}
		return
	}

	// Scheduled mode
	sched := scheduler.NewScheduler(ctx, run)
	if err := sched.Register(cfg.Schedule.FetchCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing fetch now")
		go sched.RunNow()
	}

	log.Println("[INFO] MarketFetch is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketFetch stopped")
}
