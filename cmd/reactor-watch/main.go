// reactor-watch tracks daily reactor power output in an SQLite ledger
// and flags plants with long consecutive zero-power streaks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reactorwatch/reactorwatch/pkg/ledger"
	"github.com/reactorwatch/reactorwatch/pkg/nrc"
)

const usage = `reactor-watch - Nuclear unit zero-power streak tracker

Usage:
  reactor-watch <command> [arguments]

Commands:
  run                  Fetch today's status page, store the snapshot and
                       write the flagged-plant report

  daemon               Run the daily cycle on a cron schedule (Ctrl+C to stop)

  report [date]        Recompute the report for a recorded day (default: today)
                       Example: reactor-watch report 2026-08-20

  streak <unit>        Show a unit's current consecutive zero-power streak
                       Example: reactor-watch streak "Browns Ferry 3"

  units [date]         List units recorded for a day (default: today)

  runs                 List recent ingest runs

Environment Variables:
  REACTORWATCH_DB              SQLite database path (default: data/reactor_power.db)
  REACTORWATCH_THRESHOLD_DAYS  Flagging threshold in days (default: 40)
  REACTORWATCH_OUT_JSON        Report output path (default: out/flagged.json)
  REACTORWATCH_STATUS_URL      Status page URL (default: NRC reactor status report)
  REACTORWATCH_FETCH_TIMEOUT   Status page fetch timeout (default: 30s)
  REACTORWATCH_CRON            Daemon cron schedule, UTC (default: 0 9 * * *)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	// Load configuration
	cfg := LoadConfig()

	// Initialize database
	repo, err := ledger.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()

	// Create tracker
	client := nrc.NewClient(cfg.StatusURL, nrc.WithTimeout(cfg.FetchTimeout))
	tracker := NewTracker(repo, client, cfg)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Received shutdown signal...")
		cancel()
	}()

	// Dispatch command
	cmd := os.Args[1]
	switch cmd {
	case "run":
		runOnce(ctx, tracker)
	case "daemon":
		runDaemon(ctx, tracker, cfg)
	case "report":
		runReport(ctx, tracker)
	case "streak":
		runStreak(ctx, tracker)
	case "units":
		runUnits(ctx, tracker)
	case "runs":
		runRuns(ctx, tracker)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, t *Tracker) {
	start := time.Now()
	if err := t.RunOnce(ctx); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Run completed in %s", time.Since(start).Round(time.Millisecond))
}

func runReport(ctx context.Context, t *Tracker) {
	day := ledger.DayOf(time.Now())
	if len(os.Args) >= 3 {
		var err error
		day, err = parseDay(os.Args[2])
		if err != nil {
			log.Fatalf("Invalid date: %v", err)
		}
	}
	if err := t.Report(ctx, day); err != nil {
		log.Fatalf("Report failed: %v", err)
	}
}

func runStreak(ctx context.Context, t *Tracker) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: unit label required")
		fmt.Fprintln(os.Stderr, "Usage: reactor-watch streak <unit>")
		os.Exit(1)
	}
	if err := t.Streak(ctx, os.Args[2], ledger.DayOf(time.Now())); err != nil {
		log.Fatalf("Streak failed: %v", err)
	}
}

func runUnits(ctx context.Context, t *Tracker) {
	day := ledger.DayOf(time.Now())
	if len(os.Args) >= 3 {
		var err error
		day, err = parseDay(os.Args[2])
		if err != nil {
			log.Fatalf("Invalid date: %v", err)
		}
	}
	if err := t.ListUnits(ctx, day); err != nil {
		log.Fatalf("Units failed: %v", err)
	}
}

func runRuns(ctx context.Context, t *Tracker) {
	if err := t.ListRuns(ctx, 20); err != nil {
		log.Fatalf("Runs failed: %v", err)
	}
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
