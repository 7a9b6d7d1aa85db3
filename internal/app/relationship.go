package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"campus-waterworks/internal/aggregate"
	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/reconcile"
	"campus-waterworks/internal/report"
)

// granularity names one time resolution of the tier comparison views.
type granularity struct {
	name string
	dim  func() aggregate.Dimension
}

var granularities = []granularity{
	{name: "15min", dim: aggregate.DimTimestamp},
	{name: "6hour", dim: aggregate.DimSixHour},
	{name: "daily", dim: aggregate.DimDate},
}

// RelationshipResult carries the per-prefix reconciliation outcomes.
type RelationshipResult struct {
	Reconciliation []reconcile.Result
}

// runRelationship writes the tier-by-time comparison tables and the
// per-prefix cumulative views, then reconciles first against second
// tier totals for each target prefix.
func (a *App) runRelationship(prepared Prepared, summary *Summary) (RelationshipResult, error) {
	var out RelationshipResult

	for _, g := range granularities {
		grouped, err := aggregate.GroupBy(prepared.Rows, []aggregate.Dimension{g.dim(), aggregate.DimTier()}, aggregate.FuncSum)
		if err != nil {
			return out, fmt.Errorf("group %s: %w", g.name, err)
		}
		wide, err := grouped.Pivot("tier")
		if err != nil {
			return out, fmt.Errorf("pivot %s: %w", g.name, err)
		}
		path := filepath.Join(a.tablesDir(), fmt.Sprintf("relationship_%s.csv", g.name))
		if err := report.WriteWideCSV(path, wide); err != nil {
			return out, fmt.Errorf("write %s: %w", path, err)
		}
		a.logger.Printf("relationship view written granularity=%s rows=%d path=%s", g.name, len(wide.RowKeys), path)
	}

	analyzer := reconcile.NewAnalyzer(a.cfg.ExcludeNames)
	for _, prefix := range a.cfg.TargetPrefixes {
		subset := filterByCodePrefix(prepared.Rows, prefix)

		if err := a.writeCumulative(prefix, subset); err != nil {
			summary.Add(ItemResult{Analysis: "relationship", Item: prefix, Outcome: OutcomeFailed, Err: err})
			a.metrics.IncItemFailed("relationship")
			continue
		}

		result, err := analyzer.Analyze(prepared.Rows, prefix)
		if err != nil {
			summary.Add(ItemResult{Analysis: "relationship", Item: prefix, Outcome: OutcomeSkipped, Err: err})
			a.logger.Printf("reconciliation skipped prefix=%s err=%v", prefix, err)
			continue
		}
		summary.Add(ItemResult{Analysis: "relationship", Item: prefix, Outcome: OutcomeOK})
		a.logger.Printf("reconciliation prefix=%s first=%s second=%s error_pct=%.2f",
			result.Prefix,
			formatVolume(result.FirstTierTotal),
			formatVolume(result.SecondTierTotal),
			result.ErrorPercent())
		out.Reconciliation = append(out.Reconciliation, result)
	}

	return out, nil
}

// writeCumulative renders the running total over time per tier for
// one code prefix.
func (a *App) writeCumulative(prefix string, rows []dataset.Reading) error {
	wide, err := cumulativeView(rows)
	if err != nil {
		return fmt.Errorf("cumulative prefix %s: %w", prefix, err)
	}
	path := filepath.Join(a.tablesDir(), fmt.Sprintf("relationship_%s_cumulative.csv", prefix))
	if err := report.WriteWideCSV(path, wide); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// cumulativeView builds one row per tier with the collection
// timestamps as columns, each cell holding the running sum of the
// tier's volume up to that time. Accumulation runs along the time
// axis, never across tiers.
func cumulativeView(rows []dataset.Reading) (aggregate.Wide, error) {
	grouped, err := aggregate.GroupBy(rows, []aggregate.Dimension{aggregate.DimTier(), aggregate.DimTimestamp()}, aggregate.FuncSum)
	if err != nil {
		return aggregate.Wide{}, err
	}
	wide, err := grouped.Pivot("timestamp")
	if err != nil {
		return aggregate.Wide{}, err
	}
	return wide.Cumulative(), nil
}

func filterByCodePrefix(rows []dataset.Reading, prefix string) []dataset.Reading {
	out := make([]dataset.Reading, 0)
	for _, row := range rows {
		if strings.HasPrefix(row.Code, prefix) {
			out = append(out, row)
		}
	}
	return out
}

func formatVolume(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
