package hierarchy

import "strings"

// LevelCount is the number of nested metering tiers in the source table.
const LevelCount = 4

// Tier identifies a meter's position in the parent/child metering tree.
// LEVEL_1 is the coarsest aggregation, LEVEL_4 the finest submeter.
type Tier string

const (
	TierFirst   Tier = "LEVEL_1"
	TierSecond  Tier = "LEVEL_2"
	TierThird   Tier = "LEVEL_3"
	TierFourth  Tier = "LEVEL_4"
	TierUnknown Tier = "UNKNOWN"
)

// IsValid checks if the tier is one of the known levels.
func (t Tier) IsValid() bool {
	switch t {
	case TierFirst, TierSecond, TierThird, TierFourth, TierUnknown:
		return true
	default:
		return false
	}
}

// TierByLevel maps a zero-based level column index to its tier.
func TierByLevel(index int) Tier {
	switch index {
	case 0:
		return TierFirst
	case 1:
		return TierSecond
	case 2:
		return TierThird
	case 3:
		return TierFourth
	default:
		return TierUnknown
	}
}

// MeterRow is one raw row of the hierarchy source: a meter serial number
// plus up to four tier identifiers, coarsest first. Absent identifiers
// are empty strings.
type MeterRow struct {
	MeterID string
	Levels  [LevelCount]string
}

// ResolvedMeter places a meter in the tree. Tier is the position of the
// first populated level column; Code is the concatenation of every
// populated level value in level order, with no separator and no
// placeholder text for absent values.
type ResolvedMeter struct {
	MeterID string
	Tier    Tier
	Code    string
}

// Resolve derives the tier and composite code for one hierarchy row.
// A row with no populated level resolves to TierUnknown with an empty
// code; it never panics.
func Resolve(row MeterRow) ResolvedMeter {
	resolved := ResolvedMeter{MeterID: strings.TrimSpace(row.MeterID), Tier: TierUnknown}

	var code strings.Builder
	for i := 0; i < LevelCount; i++ {
		value := strings.TrimSpace(row.Levels[i])
		if value == "" {
			continue
		}
		if resolved.Tier == TierUnknown {
			resolved.Tier = TierByLevel(i)
		}
		code.WriteString(value)
	}
	resolved.Code = code.String()
	return resolved
}

// Table is the resolved hierarchy keyed by meter serial number.
type Table struct {
	byMeterID map[string]ResolvedMeter
	unknown   int
}

// ResolveAll resolves every row and indexes the result by meter serial
// number. Rows without a serial number or without any populated level
// are kept out of the index but counted as unknown-tier rows.
func ResolveAll(rows []MeterRow) *Table {
	table := &Table{byMeterID: make(map[string]ResolvedMeter, len(rows))}
	for _, row := range rows {
		resolved := Resolve(row)
		if resolved.Tier == TierUnknown || resolved.MeterID == "" {
			table.unknown++
			continue
		}
		table.byMeterID[resolved.MeterID] = resolved
	}
	return table
}

// Lookup finds the resolved meter for a serial number.
func (t *Table) Lookup(meterID string) (ResolvedMeter, bool) {
	resolved, ok := t.byMeterID[strings.TrimSpace(meterID)]
	return resolved, ok
}

// Len returns the number of indexed meters.
func (t *Table) Len() int { return len(t.byMeterID) }

// UnknownTierCount reports rows that could not be placed in the tree.
func (t *Table) UnknownTierCount() int { return t.unknown }
