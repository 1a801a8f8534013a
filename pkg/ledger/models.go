// Package ledger provides SQLite storage for daily reactor power records.
package ledger

import "time"

// Reading is one (unit, power) observation from a daily status snapshot.
type Reading struct {
	Unit     string `json:"unit"`
	PowerPct int    `json:"power_pct"` // Percent of rated power, 0-100
}

// UnitDay is a persisted power record for one unit on one calendar day.
type UnitDay struct {
	Day      time.Time `json:"day"` // UTC calendar day
	Unit     string    `json:"unit"`
	PowerPct int       `json:"power_pct"`
}

// IngestRun is an audit record for one ingestion cycle.
type IngestRun struct {
	ID         string     `json:"id"` // UUID
	ReportDay  time.Time  `json:"report_day"`
	UnitCount  int        `json:"unit_count"`
	Status     string     `json:"status"` // "running", "ok", "failed"
	Error      string     `json:"error"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// Ingest run statuses.
const (
	RunStatusRunning = "running"
	RunStatusOK      = "ok"
	RunStatusFailed  = "failed"
)

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a day as the ISO date string used as the ledger key.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
