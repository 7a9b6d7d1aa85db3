package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"campus-waterworks/internal/aggregate"
	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/report"
	"campus-waterworks/internal/zone"
)

const maxUnmappedLogged = 10
const maxMeterViews = 10

// AreaResult carries the zone-mapping diagnostics of an area run.
type AreaResult struct {
	Unmapped []string
}

// runArea annotates readings with their functional zone, writes the
// zone consumption views and per-zone usage profiles, and surfaces
// unmapped display names instead of silently dropping them.
func (a *App) runArea(prepared Prepared, summary *Summary) (AreaResult, error) {
	mapper, err := a.mapper()
	if err != nil {
		return AreaResult{}, err
	}

	applied := mapper.Apply(prepared.Rows)
	a.metrics.AddUnmappedNames(len(applied.Unmapped))
	for i, name := range applied.Unmapped {
		if i == maxUnmappedLogged {
			a.logger.Printf("unmapped display names truncated shown=%d total=%d", maxUnmappedLogged, len(applied.Unmapped))
			break
		}
		a.logger.Printf("unmapped display name=%q", name)
	}

	if err := a.writeZoneMapping(mapper); err != nil {
		return AreaResult{}, err
	}

	zoned := keepZoned(applied.Rows)

	daily, err := aggregate.GroupBy(zoned, []aggregate.Dimension{aggregate.DimZone(), aggregate.DimDate()}, aggregate.FuncSum)
	if err != nil {
		return AreaResult{}, fmt.Errorf("group area daily: %w", err)
	}
	dailyPath := filepath.Join(a.tablesDir(), "area_daily.csv")
	if err := report.WriteGroupedCSV(dailyPath, daily); err != nil {
		return AreaResult{}, fmt.Errorf("write %s: %w", dailyPath, err)
	}

	for _, entry := range zoneNames(zoned) {
		if err := a.writeZoneProfiles(entry, zoned); err != nil {
			summary.Add(ItemResult{Analysis: "area", Item: entry, Outcome: OutcomeFailed, Err: err})
			a.metrics.IncItemFailed("area")
			continue
		}
		summary.Add(ItemResult{Analysis: "area", Item: entry, Outcome: OutcomeOK})
	}

	a.writeMeterViews(zoned, summary)

	return AreaResult{Unmapped: applied.Unmapped}, nil
}

// writeZoneProfiles renders the mean hourly usage of one zone, broken
// down by quarter and by teaching activity. Zone profiles are totals;
// the per-meter activity view is the only averaged one.
func (a *App) writeZoneProfiles(zoneName string, rows []dataset.Reading) error {
	subset := make([]dataset.Reading, 0)
	for _, row := range rows {
		if row.Zone == zoneName {
			subset = append(subset, row)
		}
	}

	profiles := []hourProfile{
		{suffix: "quarter_hour", dim: aggregate.DimQuarter(), fn: aggregate.FuncSum},
		{suffix: "activity_hour", dim: aggregate.DimActivity(), fn: aggregate.FuncSum},
	}
	for _, p := range profiles {
		path := filepath.Join(a.tablesDir(), fmt.Sprintf("area_%s_%s.csv", sanitizeName(zoneName), p.suffix))
		if err := writeHourProfile(path, subset, p); err != nil {
			return fmt.Errorf("zone %s: %w", zoneName, err)
		}
	}
	return nil
}

// hourProfile is one hour-of-day breakdown of a meter or zone subset.
type hourProfile struct {
	suffix string
	dim    aggregate.Dimension
	fn     aggregate.Func
}

// writeHourProfile renders one dim-by-hour wide table for a subset.
func writeHourProfile(path string, rows []dataset.Reading, p hourProfile) error {
	grouped, err := aggregate.GroupBy(rows, []aggregate.Dimension{p.dim, aggregate.DimHour()}, p.fn)
	if err != nil {
		return fmt.Errorf("group %s: %w", p.suffix, err)
	}
	wide, err := grouped.Pivot("hour")
	if err != nil {
		return fmt.Errorf("pivot %s: %w", p.suffix, err)
	}
	if err := report.WriteWideCSV(path, wide); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeMeterViews renders the hourly usage profiles of the first
// meters seen, one pair of files per display name: quarter-by-hour
// totals and activity-by-hour means.
func (a *App) writeMeterViews(rows []dataset.Reading, summary *Summary) {
	seen := make(map[string]struct{})
	names := make([]string, 0, maxMeterViews)
	for _, row := range rows {
		if row.DisplayName == "" {
			continue
		}
		if _, ok := seen[row.DisplayName]; ok {
			continue
		}
		seen[row.DisplayName] = struct{}{}
		names = append(names, row.DisplayName)
		if len(names) == maxMeterViews {
			break
		}
	}

	profiles := []hourProfile{
		{suffix: "quarter_hour", dim: aggregate.DimQuarter(), fn: aggregate.FuncSum},
		{suffix: "activity_hour", dim: aggregate.DimActivity(), fn: aggregate.FuncMean},
	}
	for _, name := range names {
		subset := make([]dataset.Reading, 0)
		for _, row := range rows {
			if row.DisplayName == name {
				subset = append(subset, row)
			}
		}
		failed := false
		for _, p := range profiles {
			path := filepath.Join(a.tablesDir(), fmt.Sprintf("meter_%s_%s.csv", sanitizeName(name), p.suffix))
			if err := writeHourProfile(path, subset, p); err != nil {
				summary.Add(ItemResult{Analysis: "area", Item: name, Outcome: OutcomeFailed, Err: err})
				a.metrics.IncItemFailed("area")
				failed = true
				break
			}
		}
		if !failed {
			summary.Add(ItemResult{Analysis: "area", Item: name, Outcome: OutcomeOK})
		}
	}
}

func (a *App) writeZoneMapping(mapper *zone.Mapper) error {
	payload, err := report.BuildZoneMappingXLSX(mapper.Entries())
	if err != nil {
		return fmt.Errorf("build zone mapping workbook: %w", err)
	}
	path := filepath.Join(a.reportsDir(), "zone_mapping.xlsx")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func keepZoned(rows []dataset.Reading) []dataset.Reading {
	out := make([]dataset.Reading, 0, len(rows))
	for _, row := range rows {
		if row.Zone != "" {
			out = append(out, row)
		}
	}
	return out
}

// zoneNames lists the distinct zones present, in first-seen order.
func zoneNames(rows []dataset.Reading) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range rows {
		if _, ok := seen[row.Zone]; ok {
			continue
		}
		seen[row.Zone] = struct{}{}
		out = append(out, row.Zone)
	}
	return out
}

// sanitizeName makes a display name safe to embed in a file name.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r > 127:
			return r
		default:
			return '_'
		}
	}, name)
}
