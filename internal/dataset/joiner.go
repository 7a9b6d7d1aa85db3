package dataset

import (
	"time"

	"campus-waterworks/internal/hierarchy"
)

// JoinResult is the feature-joined dataset plus join diagnostics.
// Valid holds only readings that resolved to a non-empty hierarchy
// code; Dropped counts the readings excluded by that filter.
type JoinResult struct {
	Valid   []Reading
	Dropped int
}

// Join left-joins raw readings to the resolved hierarchy on meter
// serial number and derives the calendar features. Readings with no
// hierarchy match (or an empty code) are counted in Dropped and kept
// out of the valid set consumed by the analyzers.
func Join(raw []RawReading, table *hierarchy.Table, activities ActivityTable) (JoinResult, error) {
	if table == nil {
		return JoinResult{}, ErrNilHierarchy
	}
	if err := activities.Validate(); err != nil {
		return JoinResult{}, err
	}

	result := JoinResult{Valid: make([]Reading, 0, len(raw))}
	for _, r := range raw {
		resolved, ok := table.Lookup(r.MeterID)
		if !ok || resolved.Code == "" {
			result.Dropped++
			continue
		}

		activity, err := activities.ForMonth(r.CollectedAt.Month())
		if err != nil {
			return JoinResult{}, err
		}

		result.Valid = append(result.Valid, Reading{
			MeterID:     r.MeterID,
			DisplayName: r.DisplayName,
			CollectedAt: r.CollectedAt,
			Volume:      r.Volume,
			Tier:        resolved.Tier,
			Code:        resolved.Code,
			Month:       r.CollectedAt.Month(),
			Hour:        r.CollectedAt.Hour(),
			Date:        truncateToDay(r.CollectedAt),
			Quarter:     Quarter(r.CollectedAt),
			DayOfYear:   r.CollectedAt.YearDay(),
			Activity:    activity,
			SixHour:     SixHourIndex(r.CollectedAt),
		})
	}
	return result, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
