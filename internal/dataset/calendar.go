package dataset

import "time"

// Activity is the coarse teaching-calendar period derived from month.
type Activity string

const (
	ActivityWinterBreak Activity = "WINTER_BREAK"
	ActivitySpringTerm  Activity = "SPRING_TERM"
	ActivitySummerBreak Activity = "SUMMER_BREAK"
	ActivityAutumnTerm  Activity = "AUTUMN_TERM"
)

// ParseActivity converts a configured label to an Activity.
func ParseActivity(label string) (Activity, error) {
	switch Activity(label) {
	case ActivityWinterBreak, ActivitySpringTerm, ActivitySummerBreak, ActivityAutumnTerm:
		return Activity(label), nil
	default:
		return "", ErrUnknownActivity
	}
}

// ActivityTable maps every month 1..12 to exactly one activity.
type ActivityTable map[time.Month]Activity

// DefaultActivityTable is the campus teaching calendar: January and
// February are winter break, March through June spring term, July and
// August summer break, September through December autumn term.
func DefaultActivityTable() ActivityTable {
	return ActivityTable{
		time.January:   ActivityWinterBreak,
		time.February:  ActivityWinterBreak,
		time.March:     ActivitySpringTerm,
		time.April:     ActivitySpringTerm,
		time.May:       ActivitySpringTerm,
		time.June:      ActivitySpringTerm,
		time.July:      ActivitySummerBreak,
		time.August:    ActivitySummerBreak,
		time.September: ActivityAutumnTerm,
		time.October:   ActivityAutumnTerm,
		time.November:  ActivityAutumnTerm,
		time.December:  ActivityAutumnTerm,
	}
}

// Validate ensures the table is total over months 1..12.
func (t ActivityTable) Validate() error {
	for month := time.January; month <= time.December; month++ {
		if _, ok := t[month]; !ok {
			return ErrIncompleteActivityTable
		}
	}
	return nil
}

// ForMonth resolves the activity for a month. There is no default label.
func (t ActivityTable) ForMonth(month time.Month) (Activity, error) {
	activity, ok := t[month]
	if !ok {
		return "", ErrUnknownMonth
	}
	return activity, nil
}

// Quarter returns the calendar quarter (1..4) of a timestamp.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// SixHourIndex returns the global 6-hour bucket index of a timestamp:
// the in-day slot (1..4) offset by (dayOfYear-1)*4 so indices increase
// monotonically across the whole dataset.
func SixHourIndex(t time.Time) int {
	return sixHourSlot(t.Hour()) + (t.YearDay()-1)*4
}

// sixHourSlot buckets an hour into (0,6], (6,12], (12,18], (18,24).
func sixHourSlot(hour int) int {
	switch {
	case hour <= 6:
		return 1
	case hour <= 12:
		return 2
	case hour <= 18:
		return 3
	default:
		return 4
	}
}
