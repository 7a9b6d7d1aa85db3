package dataset

import "errors"

var (
	// ErrMalformedTimestamp is returned when a collection timestamp cannot
	// be parsed in any supported layout.
	ErrMalformedTimestamp = errors.New("dataset: malformed collection timestamp")
	// ErrUnknownMonth is returned when a month is not covered by the
	// activity table. The table has no fallback: this is a fatal input error.
	ErrUnknownMonth = errors.New("dataset: month not covered by activity table")
	// ErrIncompleteActivityTable is returned when the activity table does
	// not map every month 1 through 12.
	ErrIncompleteActivityTable = errors.New("dataset: activity table must cover months 1 through 12")
	// ErrUnknownActivity is returned when an activity label is not recognised.
	ErrUnknownActivity = errors.New("dataset: unknown teaching activity label")
	// ErrNilHierarchy is returned when joining against a nil hierarchy table.
	ErrNilHierarchy = errors.New("dataset: nil hierarchy table")
)
