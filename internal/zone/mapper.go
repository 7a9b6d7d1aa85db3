package zone

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"campus-waterworks/internal/dataset"
)

// Zone is a coarse campus-usage category assigned to a meter's location.
type Zone string

const (
	ZoneDormitory  Zone = "DORMITORY"
	ZoneDining     Zone = "DINING"
	ZoneTeaching   Zone = "TEACHING"
	ZoneOffice     Zone = "OFFICE"
	ZoneLogistics  Zone = "LOGISTICS"
	ZoneRecreation Zone = "RECREATION"
	ZoneGreening   Zone = "GREENING"
)

var (
	// ErrDuplicateDisplayName is returned when a display name appears under
	// more than one zone in the forward table.
	ErrDuplicateDisplayName = errors.New("zone: display name mapped to more than one zone")
	// ErrEmptyTable is returned when the forward table has no entries.
	ErrEmptyTable = errors.New("zone: empty mapping table")
	// ErrUnknownZone is returned when a configured zone label is not recognised.
	ErrUnknownZone = errors.New("zone: unknown zone label")
)

// Parse converts a configured label to a Zone.
func Parse(label string) (Zone, error) {
	switch Zone(label) {
	case ZoneDormitory, ZoneDining, ZoneTeaching, ZoneOffice, ZoneLogistics, ZoneRecreation, ZoneGreening:
		return Zone(label), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownZone, label)
	}
}

// Entry is one flat (zone, display name) row of the forward table,
// exported for reporting.
type Entry struct {
	Zone        Zone
	DisplayName string
}

// Mapper resolves meter display names to functional zones through a
// reverse lookup built from the static forward table.
type Mapper struct {
	byName  map[string]Zone
	entries []Entry
}

// NewMapper builds the reverse lookup. Display names are whitespace
// trimmed before indexing; a name appearing under two zones is a
// configuration error, never silently overwritten.
func NewMapper(forward map[Zone][]string) (*Mapper, error) {
	if len(forward) == 0 {
		return nil, ErrEmptyTable
	}

	zones := make([]Zone, 0, len(forward))
	for z := range forward {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })

	mapper := &Mapper{byName: make(map[string]Zone)}
	for _, z := range zones {
		for _, name := range forward[z] {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				continue
			}
			if existing, ok := mapper.byName[trimmed]; ok && existing != z {
				return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateDisplayName, trimmed, existing, z)
			}
			mapper.byName[trimmed] = z
			mapper.entries = append(mapper.entries, Entry{Zone: z, DisplayName: trimmed})
		}
	}
	if len(mapper.byName) == 0 {
		return nil, ErrEmptyTable
	}
	return mapper, nil
}

// Lookup resolves a display name, trimming surrounding whitespace first.
func (m *Mapper) Lookup(displayName string) (Zone, bool) {
	zone, ok := m.byName[strings.TrimSpace(displayName)]
	return zone, ok
}

// ApplyResult carries the zone-annotated rows plus unmapped diagnostics.
// Unmapped holds each unresolved display name once, in encounter order.
type ApplyResult struct {
	Rows     []dataset.Reading
	Unmapped []string
}

// Apply annotates every reading with its functional zone. Display names
// absent from the table keep an empty zone and are surfaced in the
// diagnostics, never coerced to a default.
func (m *Mapper) Apply(rows []dataset.Reading) ApplyResult {
	result := ApplyResult{Rows: make([]dataset.Reading, len(rows))}
	seen := make(map[string]struct{})
	for i, row := range rows {
		if zone, ok := m.Lookup(row.DisplayName); ok {
			row.Zone = string(zone)
		} else {
			name := strings.TrimSpace(row.DisplayName)
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				result.Unmapped = append(result.Unmapped, name)
			}
		}
		result.Rows[i] = row
	}
	return result
}

// Entries returns the forward table as flat rows, zones in stable order.
func (m *Mapper) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
