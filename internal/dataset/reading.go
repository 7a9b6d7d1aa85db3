package dataset

import (
	"fmt"
	"strings"
	"time"

	"campus-waterworks/internal/hierarchy"
)

// RawReading is one timestamped volume observation as loaded from the
// main reading source, before any enrichment.
type RawReading struct {
	MeterID     string
	DisplayName string
	CollectedAt time.Time
	Volume      float64
}

// Reading is a raw observation enriched with hierarchy, zone and
// calendar fields. Rows are never mutated after the join, except for
// the Zone column added by the zone mapper.
type Reading struct {
	MeterID     string
	DisplayName string
	CollectedAt time.Time
	Volume      float64

	Tier hierarchy.Tier
	Code string
	Zone string

	Month     time.Month
	Hour      int
	Date      time.Time
	Quarter   int
	DayOfYear int
	Activity  Activity
	SixHour   int
}

// timestampLayouts are the source representations accepted for the
// collection timestamp column.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a collection timestamp from its source
// representation into a true date-time value.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
}
