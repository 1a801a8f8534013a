package streak_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactorwatch/reactorwatch/pkg/ledger"
	"github.com/reactorwatch/reactorwatch/pkg/streak"
)

// mapReader serves recorded power keyed by unit and ISO day.
type mapReader map[string]map[string]int

func (m mapReader) PowerOn(_ context.Context, unit string, day time.Time) (int, bool, error) {
	pct, ok := m[unit][ledger.DayKey(day)]
	return pct, ok, nil
}

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func TestZeroDaysContiguous(t *testing.T) {
	r := mapReader{"Browns Ferry 2": {
		"2026-08-22": 95, // nonzero the day before the streak began
		"2026-08-23": 0,
		"2026-08-24": 0,
		"2026-08-25": 0,
		"2026-08-26": 0,
		"2026-08-27": 0,
	}}

	days, err := streak.ZeroDays(context.Background(), r, "Browns Ferry 2", day("2026-08-27"))
	require.NoError(t, err)
	assert.Equal(t, 5, days)
}

func TestZeroDaysGapBreaksStreak(t *testing.T) {
	r := mapReader{"Browns Ferry 2": {
		// 2026-08-25 missing: scrape gap, must not be assumed zero
		"2026-08-24": 0,
		"2026-08-26": 0,
		"2026-08-27": 0,
	}}

	days, err := streak.ZeroDays(context.Background(), r, "Browns Ferry 2", day("2026-08-27"))
	require.NoError(t, err)
	assert.Equal(t, 2, days)
}

func TestZeroDaysNonzeroCurrentDay(t *testing.T) {
	r := mapReader{"Browns Ferry 2": {
		"2026-08-25": 0,
		"2026-08-26": 0,
		"2026-08-27": 17,
	}}

	days, err := streak.ZeroDays(context.Background(), r, "Browns Ferry 2", day("2026-08-27"))
	require.NoError(t, err)
	assert.Equal(t, 0, days, "current day must itself be zero for any streak")
}

func TestZeroDaysAbsentCurrentDay(t *testing.T) {
	r := mapReader{"Browns Ferry 2": {
		"2026-08-25": 0,
		"2026-08-26": 0,
	}}

	days, err := streak.ZeroDays(context.Background(), r, "Browns Ferry 2", day("2026-08-27"))
	require.NoError(t, err)
	assert.Equal(t, 0, days)
}

func TestZeroDaysStopsAtLedgerStart(t *testing.T) {
	r := mapReader{"Browns Ferry 2": {
		"2026-08-25": 0,
		"2026-08-26": 0,
		"2026-08-27": 0,
	}}

	days, err := streak.ZeroDays(context.Background(), r, "Browns Ferry 2", day("2026-08-27"))
	require.NoError(t, err)
	assert.Equal(t, 3, days)
}

// The calculator must behave identically over the real SQLite ledger.
func TestZeroDaysOverSQLiteLedger(t *testing.T) {
	repo, err := ledger.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	history := []struct {
		d   string
		pct int
	}{
		{"2026-08-24", 80},
		{"2026-08-25", 0},
		{"2026-08-26", 0},
		{"2026-08-27", 0},
	}
	for _, h := range history {
		require.NoError(t, repo.UpsertDay(ctx, day(h.d), []ledger.Reading{{Unit: "Grand Gulf 1", PowerPct: h.pct}}))
	}

	days, err := streak.ZeroDays(ctx, repo, "Grand Gulf 1", day("2026-08-27"))
	require.NoError(t, err)
	assert.Equal(t, 3, days)
}
