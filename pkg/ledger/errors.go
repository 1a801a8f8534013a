package ledger

import "errors"

var (
	// ErrEmptySnapshot indicates a day was submitted with zero readings.
	// An empty snapshot is indistinguishable from an upstream parsing
	// failure and must never be recorded as "no data".
	ErrEmptySnapshot = errors.New("snapshot contains no unit readings")

	// ErrNoBackfill indicates an attempt to write a day older than the
	// newest day already in the ledger. History is immutable once a
	// later day has been ingested.
	ErrNoBackfill = errors.New("day is older than the newest ledger day")
)
