package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/reactorwatch/reactorwatch/pkg/ledger"
	"github.com/reactorwatch/reactorwatch/pkg/nrc"
	"github.com/reactorwatch/reactorwatch/pkg/plant"
	"github.com/reactorwatch/reactorwatch/pkg/report"
	"github.com/reactorwatch/reactorwatch/pkg/streak"
)

// Tracker orchestrates a daily tracking cycle: fetch the status page,
// persist the snapshot, compute streaks and emit the flagged report.
type Tracker struct {
	repo     ledger.Repository
	client   *nrc.Client
	resolver plant.Resolver
	config   *Config
}

// NewTracker creates a new tracker.
func NewTracker(repo ledger.Repository, client *nrc.Client, cfg *Config) *Tracker {
	return &Tracker{
		repo:     repo,
		client:   client,
		resolver: plant.SuffixResolver{},
		config:   cfg,
	}
}

// RunOnce executes one full daily cycle. Any failure aborts the cycle
// before a report is written; the ledger keeps its pre-run state for
// the day thanks to the transactional upsert.
func (t *Tracker) RunOnce(ctx context.Context) error {
	day := ledger.DayOf(time.Now())

	run := &ledger.IngestRun{
		ID:        uuid.NewString(),
		ReportDay: day,
		StartedAt: time.Now().UTC(),
	}
	if err := t.repo.StartIngestRun(ctx, run); err != nil {
		log.Printf("Warning: failed to record ingest run: %v", err)
	}

	rep, err := t.ingestAndReport(ctx, day)

	status := ledger.RunStatusOK
	errMsg := ""
	if err != nil {
		status = ledger.RunStatusFailed
		errMsg = err.Error()
	}
	if ferr := t.repo.FinishIngestRun(ctx, run.ID, time.Now().UTC(), status, errMsg); ferr != nil {
		log.Printf("Warning: failed to finish ingest run: %v", ferr)
	}
	if err != nil {
		return err
	}

	if err := t.writeJSON(rep); err != nil {
		return err
	}
	t.printReport(rep)
	return nil
}

// ingestAndReport fetches and stores today's snapshot, then builds the
// flagged-plant report for it.
func (t *Tracker) ingestAndReport(ctx context.Context, day time.Time) (*report.Report, error) {
	log.Printf("Fetching status page %s...", t.config.StatusURL)
	page, err := t.client.FetchStatusPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status page: %w", err)
	}

	readings, err := nrc.ParseUnits(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status page: %w", err)
	}
	log.Printf("Parsed %d unit readings", len(readings))

	if err := t.repo.UpsertDay(ctx, day, readings); err != nil {
		return nil, fmt.Errorf("failed to store snapshot for %s: %w", ledger.DayKey(day), err)
	}

	return t.buildReport(ctx, day)
}

// buildReport computes per-unit streaks for day from the ledger and
// rolls them up into the flagged-plant report.
func (t *Tracker) buildReport(ctx context.Context, day time.Time) (*report.Report, error) {
	units, err := t.repo.UnitsOn(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list units for %s: %w", ledger.DayKey(day), err)
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no units recorded for %s", ledger.DayKey(day))
	}

	unitStreaks := make(map[string]int, len(units))
	for _, unit := range units {
		days, err := streak.ZeroDays(ctx, t.repo, unit, day)
		if err != nil {
			return nil, fmt.Errorf("failed to compute streak for %q: %w", unit, err)
		}
		unitStreaks[unit] = days
	}

	return report.Build(day, t.config.ThresholdDays, unitStreaks, t.resolver), nil
}

// Report recomputes the flagged-plant report for a day already in the
// ledger, without fetching, and prints it.
func (t *Tracker) Report(ctx context.Context, day time.Time) error {
	rep, err := t.buildReport(ctx, day)
	if err != nil {
		return err
	}
	t.printReport(rep)
	return nil
}

// Streak prints one unit's current zero-power streak.
func (t *Tracker) Streak(ctx context.Context, unit string, day time.Time) error {
	days, err := streak.ZeroDays(ctx, t.repo, unit, day)
	if err != nil {
		return fmt.Errorf("failed to compute streak: %w", err)
	}
	fmt.Printf("%s: %d day(s) at 0%% as of %s\n", unit, days, ledger.DayKey(day))
	return nil
}

// ListUnits prints the units recorded for a day with their power.
func (t *Tracker) ListUnits(ctx context.Context, day time.Time) error {
	units, err := t.repo.UnitsOn(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list units: %w", err)
	}
	if len(units) == 0 {
		fmt.Printf("No units recorded for %s\n", ledger.DayKey(day))
		return nil
	}

	fmt.Printf("%-50s %s\n", "UNIT", "POWER")
	fmt.Println("--------------------------------------------------------")
	for _, unit := range units {
		pct, ok, err := t.repo.PowerOn(ctx, unit, day)
		if err != nil {
			return fmt.Errorf("failed to read power for %q: %w", unit, err)
		}
		if !ok {
			continue
		}
		fmt.Printf("%-50s %3d%%\n", truncate(unit, 50), pct)
	}
	return nil
}

// ListRuns prints recent ingest runs.
func (t *Tracker) ListRuns(ctx context.Context, limit int) error {
	runs, err := t.repo.ListIngestRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list ingest runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No ingest runs recorded")
		return nil
	}

	fmt.Printf("%-36s %-12s %-7s %-6s %-20s %s\n", "ID", "DAY", "STATUS", "UNITS", "STARTED", "ERROR")
	fmt.Println("---------------------------------------------------------------------------------------------")
	for _, run := range runs {
		fmt.Printf("%-36s %-12s %-7s %-6d %-20s %s\n",
			run.ID,
			ledger.DayKey(run.ReportDay),
			run.Status,
			run.UnitCount,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			truncate(run.Error, 40),
		)
	}
	return nil
}

// writeJSON serializes the report to the configured output path.
func (t *Tracker) writeJSON(rep *report.Report) error {
	if dir := filepath.Dir(t.config.OutJSON); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(t.config.OutJSON, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Printf("Report written to %s", t.config.OutJSON)
	return nil
}

// printReport prints a human-readable report summary for logs.
func (t *Tracker) printReport(rep *report.Report) {
	fmt.Printf("Report date: %s\n", rep.ReportDate)
	fmt.Printf("Threshold: > %d days at 0%%\n", rep.ThresholdDays)
	if len(rep.FlaggedPlants) == 0 {
		fmt.Println("FLAGGED: none")
		return
	}
	fmt.Println("FLAGGED:")
	for _, p := range rep.FlaggedPlants {
		fmt.Printf("- %s: %d day(s)\n", p.Plant, p.MaxZeroDays)
		for _, u := range p.Units {
			fmt.Printf("    %s: %d day(s)\n", u.Unit, u.ZeroDays)
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
