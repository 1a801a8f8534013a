package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository.
// The dbPath can be a file path or ":memory:" for in-memory database.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// migrate runs database migrations. Safe to call repeatedly; existing
// data is never destroyed.
func (r *SQLiteRepository) migrate() error {
	// Get current schema version
	var currentVersion int
	err := r.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		// Table doesn't exist, run initial schema
		if _, err := r.db.Exec(Schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		_, err = r.db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	// Run any pending migrations
	for v := currentVersion + 1; v <= SchemaVersion; v++ {
		migration, ok := Migrations[v]
		if !ok {
			continue
		}
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", v, err)
		}
		if _, err := r.db.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", v, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// =============================================================================
// Daily records
// =============================================================================

func (r *SQLiteRepository) UpsertDay(ctx context.Context, day time.Time, readings []Reading) error {
	if len(readings) == 0 {
		return ErrEmptySnapshot
	}

	d := DayKey(day)

	latest, ok, err := r.LatestDay(ctx)
	if err != nil {
		return fmt.Errorf("failed to check newest ledger day: %w", err)
	}
	if ok && d < DayKey(latest) {
		return fmt.Errorf("%w: %s < %s", ErrNoBackfill, d, DayKey(latest))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_power (d, unit, power_pct)
		VALUES (?, ?, ?)
		ON CONFLICT(d, unit) DO UPDATE SET power_pct = excluded.power_pct`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, reading := range readings {
		if _, err := stmt.ExecContext(ctx, d, reading.Unit, reading.PowerPct); err != nil {
			return fmt.Errorf("failed to upsert %q on %s: %w", reading.Unit, d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit day %s: %w", d, err)
	}
	return nil
}

func (r *SQLiteRepository) UnitsOn(ctx context.Context, day time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT unit FROM daily_power WHERE d = ? ORDER BY unit", DayKey(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *SQLiteRepository) PowerOn(ctx context.Context, unit string, day time.Time) (int, bool, error) {
	var pct int
	err := r.db.QueryRowContext(ctx,
		"SELECT power_pct FROM daily_power WHERE unit = ? AND d = ?",
		unit, DayKey(day)).Scan(&pct)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return pct, true, nil
}

func (r *SQLiteRepository) LatestDay(ctx context.Context) (time.Time, bool, error) {
	var d sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT MAX(d) FROM daily_power").Scan(&d)
	if err != nil {
		return time.Time{}, false, err
	}
	if !d.Valid {
		return time.Time{}, false, nil
	}
	day, err := time.ParseInLocation("2006-01-02", d.String, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed day key %q: %w", d.String, err)
	}
	return day, true, nil
}

// =============================================================================
// Ingest runs
// =============================================================================

func (r *SQLiteRepository) StartIngestRun(ctx context.Context, run *IngestRun) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	run.Status = RunStatusRunning
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, report_day, unit_count, status, error, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, DayKey(run.ReportDay), run.UnitCount, run.Status, run.Error, run.StartedAt)
	return err
}

func (r *SQLiteRepository) FinishIngestRun(ctx context.Context, id string, finished time.Time, status, errMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE ingest_runs
		SET finished_at = ?, status = ?, error = ?,
			unit_count = (SELECT COUNT(*) FROM daily_power WHERE d = ingest_runs.report_day)
		WHERE id = ?`,
		finished, status, errMsg, id)
	return err
}

func (r *SQLiteRepository) ListIngestRuns(ctx context.Context, limit int) ([]*IngestRun, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, report_day, unit_count, status, error, started_at, finished_at
		FROM ingest_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*IngestRun
	for rows.Next() {
		run := &IngestRun{}
		var day string
		var errMsg sql.NullString
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &day, &run.UnitCount, &run.Status,
			&errMsg, &run.StartedAt, &finished); err != nil {
			return nil, err
		}
		run.ReportDay, err = time.ParseInLocation("2006-01-02", day, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("malformed day key %q: %w", day, err)
		}
		run.Error = errMsg.String
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)
