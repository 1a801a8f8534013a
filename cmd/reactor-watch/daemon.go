package main

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// runDaemon runs the daily cycle on the configured cron schedule until
// the context is cancelled.
func runDaemon(ctx context.Context, t *Tracker, cfg *Config) {
	log.Printf("Database: %s", cfg.DBPath)
	log.Printf("Schedule: %s (UTC)", cfg.CronSpec)
	log.Printf("Threshold: > %d days", cfg.ThresholdDays)

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(cfg.CronSpec, func() {
		if err := t.RunOnce(ctx); err != nil {
			log.Printf("Scheduled run error: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Invalid cron schedule %q: %v", cfg.CronSpec, err)
	}

	c.Start()
	<-ctx.Done()

	// Let an in-flight run finish before exiting.
	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Println("Daemon stopped")
}
