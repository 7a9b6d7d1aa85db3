package aggregate

import (
	"fmt"
	"strconv"

	"campus-waterworks/internal/dataset"
)

// Standard dimensions shared by the chart-ready views. Encodings are
// chosen so lexicographic order matches chronological/numeric order.

// DimTier groups by hierarchy tier.
func DimTier() Dimension {
	return Dimension{Name: "tier", Value: func(r dataset.Reading) string { return string(r.Tier) }}
}

// DimTimestamp groups by the raw 15-minute collection timestamp.
func DimTimestamp() Dimension {
	return Dimension{Name: "timestamp", Value: func(r dataset.Reading) string {
		return r.CollectedAt.Format("2006-01-02 15:04:05")
	}}
}

// DimSixHour groups by the global 6-hour bucket index.
func DimSixHour() Dimension {
	return Dimension{Name: "six_hour", Value: func(r dataset.Reading) string {
		return fmt.Sprintf("%06d", r.SixHour)
	}}
}

// DimDate groups by calendar date.
func DimDate() Dimension {
	return Dimension{Name: "date", Value: func(r dataset.Reading) string {
		return r.Date.Format("2006-01-02")
	}}
}

// DimZone groups by functional zone.
func DimZone() Dimension {
	return Dimension{Name: "zone", Value: func(r dataset.Reading) string { return r.Zone }}
}

// DimQuarter groups by calendar quarter.
func DimQuarter() Dimension {
	return Dimension{Name: "quarter", Value: func(r dataset.Reading) string { return strconv.Itoa(r.Quarter) }}
}

// DimHour groups by hour of day.
func DimHour() Dimension {
	return Dimension{Name: "hour", Value: func(r dataset.Reading) string {
		return fmt.Sprintf("%02d", r.Hour)
	}}
}

// DimActivity groups by teaching activity.
func DimActivity() Dimension {
	return Dimension{Name: "activity", Value: func(r dataset.Reading) string { return string(r.Activity) }}
}

// DimDisplayName groups by meter display name.
func DimDisplayName() Dimension {
	return Dimension{Name: "meter", Value: func(r dataset.Reading) string { return r.DisplayName }}
}
