// Package streak computes consecutive zero-power streaks from the ledger.
package streak

import (
	"context"
	"time"
)

// PowerReader is the read-side of the ledger the calculator needs.
// ledger.Repository satisfies it.
type PowerReader interface {
	PowerOn(ctx context.Context, unit string, day time.Time) (int, bool, error)
}

// ZeroDays returns the number of consecutive days, ending at and
// including asof, on which unit was recorded at exactly 0% power.
//
// A missing observation breaks the streak exactly like a nonzero
// reading. Gaps from outages in the data source must never inflate a
// streak, so absence is treated conservatively rather than assumed
// zero. If the record on asof is absent or nonzero the streak is 0.
//
// The walk is iterative and terminates at the ledger's earliest day at
// the latest.
func ZeroDays(ctx context.Context, r PowerReader, unit string, asof time.Time) (int, error) {
	days := 0
	for cursor := asof; ; cursor = cursor.AddDate(0, 0, -1) {
		pct, ok, err := r.PowerOn(ctx, unit, cursor)
		if err != nil {
			return 0, err
		}
		if !ok || pct != 0 {
			return days, nil
		}
		days++
	}
}
