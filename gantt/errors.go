package gantt

import "errors"

var (
	// ErrMalformedTimestamp is returned when a fixed-width yyyymmddhhmmss
	// value does not describe a valid calendar date.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMissingCalendarData marks an absent or empty holiday list. It is
	// never fatal: the calendar is built with zero declared holidays.
	ErrMissingCalendarData = errors.New("missing calendar data")

	// ErrEmptyRowSet is returned by Build when the binding carries no records.
	ErrEmptyRowSet = errors.New("empty row set")

	// ErrMalformedValue is returned when a numeric slot is bound to a
	// dimension whose label is not a number.
	ErrMalformedValue = errors.New("malformed value")
)
