package ledger

// Schema contains the SQLite database schema.
const Schema = `
-- Daily power ledger: one row per (day, unit)
-- d is an ISO date string so lexicographic order equals calendar order
CREATE TABLE IF NOT EXISTS daily_power (
    d TEXT NOT NULL,
    unit TEXT NOT NULL,
    power_pct INTEGER NOT NULL,
    PRIMARY KEY (d, unit)
);

-- Supports the backward per-unit streak walk
CREATE INDEX IF NOT EXISTS idx_daily_power_unit_d ON daily_power(unit, d);

-- Audit trail of ingestion cycles
CREATE TABLE IF NOT EXISTS ingest_runs (
    id TEXT PRIMARY KEY,              -- UUID
    report_day TEXT NOT NULL,
    unit_count INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,             -- 'running', 'ok', 'failed'
    error TEXT,
    started_at DATETIME NOT NULL,
    finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_ingest_runs_started ON ingest_runs(started_at);

-- Schema version for migrations
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// Migrations contains SQL migrations indexed by version.
// Each migration upgrades from version N-1 to version N.
var Migrations = map[int]string{
	1: Schema, // Initial schema
}
