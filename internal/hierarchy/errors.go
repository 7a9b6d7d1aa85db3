package hierarchy

import "errors"

var (
	// ErrMalformedHierarchy is returned when the source table does not carry
	// the four leading tier-identifier columns.
	ErrMalformedHierarchy = errors.New("hierarchy: source table lacks the four tier identifier columns")
	// ErrEmptyMeterID is returned when a hierarchy row has no meter serial number.
	ErrEmptyMeterID = errors.New("hierarchy: empty meter serial number")
)
