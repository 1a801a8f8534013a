package nrc

import "errors"

var (
	// ErrNoUnits indicates no unit rows could be parsed from the status
	// page. Usually means the page structure changed.
	ErrNoUnits = errors.New("parsed zero unit rows from status page")

	// ErrUnexpectedStatus indicates the status page request returned a
	// non-200 response.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
