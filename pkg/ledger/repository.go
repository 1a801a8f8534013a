package ledger

import (
	"context"
	"time"
)

// Repository defines the interface for the daily power ledger.
type Repository interface {
	// Database lifecycle
	Close() error

	// Daily records
	//
	// UpsertDay writes one day's snapshot in a single transaction.
	// Re-running it with identical input leaves the ledger unchanged.
	// It returns ErrEmptySnapshot for a zero-reading snapshot and
	// ErrNoBackfill when day is older than the newest recorded day.
	UpsertDay(ctx context.Context, day time.Time, readings []Reading) error

	// UnitsOn returns the unit labels recorded for day, in
	// lexicographic order.
	UnitsOn(ctx context.Context, day time.Time) ([]string, error)

	// PowerOn returns the recorded power for (unit, day). The second
	// result reports whether a record exists; absence is distinct from
	// a recorded zero.
	PowerOn(ctx context.Context, unit string, day time.Time) (int, bool, error)

	// LatestDay returns the newest day in the ledger, if any.
	LatestDay(ctx context.Context) (time.Time, bool, error)

	// Ingest runs
	StartIngestRun(ctx context.Context, run *IngestRun) error
	FinishIngestRun(ctx context.Context, id string, finished time.Time, status, errMsg string) error
	ListIngestRuns(ctx context.Context, limit int) ([]*IngestRun, error)
}
