package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"campus-waterworks/internal/leakage"
	"campus-waterworks/internal/report"
)

// LeakageResult carries the ranking plus its distribution statistics.
type LeakageResult struct {
	Rates []leakage.Rate
	Stats *leakage.Stats
}

// runLeakage ranks every meter user in the auxiliary dataset by its
// estimated leakage rate, writes the ranking, and renders the
// spotlight meter's fine-granularity series.
func (a *App) runLeakage(summary *Summary) (LeakageResult, error) {
	rows, err := a.sources.AuxReadings()
	if err != nil {
		return LeakageResult{}, fmt.Errorf("load aux readings: %w", err)
	}

	a.spotlight(rows, summary)

	ranked := leakage.Rank(rows)
	for _, user := range ranked.Skipped {
		a.metrics.IncMeterSkipped()
		summary.Add(ItemResult{Analysis: "leakage", Item: user, Outcome: OutcomeSkipped})
	}
	a.logger.Printf("leakage ranking computed users=%d skipped=%d", len(ranked.Rates), len(ranked.Skipped))

	ratesPath := filepath.Join(a.tablesDir(), "leakage_rates.csv")
	if err := report.WriteRatesCSV(ratesPath, ranked.Rates); err != nil {
		return LeakageResult{}, fmt.Errorf("write %s: %w", ratesPath, err)
	}

	result := LeakageResult{Rates: ranked.Rates}
	if stats, err := leakage.Summarize(ranked.Rates); err == nil {
		result.Stats = &stats
		a.logger.Printf("leakage stats count=%d mean=%.2f median=%.2f max=%.2f min=%.2f",
			stats.Count, stats.Mean, stats.Median, stats.Max, stats.Min)
	}

	payload, err := report.BuildLeakageXLSX(ranked.Rates, result.Stats)
	if err != nil {
		return LeakageResult{}, fmt.Errorf("build leakage workbook: %w", err)
	}
	workbookPath := filepath.Join(a.reportsDir(), "leakage_rates.xlsx")
	if err := os.WriteFile(workbookPath, payload, 0o644); err != nil {
		return LeakageResult{}, fmt.Errorf("write %s: %w", workbookPath, err)
	}

	summary.Add(ItemResult{Analysis: "leakage", Item: "ranking", Outcome: OutcomeOK})
	return result, nil
}

// spotlight renders the configured case-study meter: its resampled
// series as a CSV plus its leakage ratio in the log.
func (a *App) spotlight(rows []leakage.Reading, summary *Summary) {
	code := a.cfg.SpotlightCode
	if code == "" {
		return
	}

	buckets, err := leakage.SeriesForCode(rows, code)
	if err != nil {
		outcome := OutcomeFailed
		if errors.Is(err, leakage.ErrCodeNotFound) || errors.Is(err, leakage.ErrInsufficientData) {
			outcome = OutcomeSkipped
		} else {
			a.metrics.IncItemFailed("leakage")
		}
		summary.Add(ItemResult{Analysis: "leakage", Item: code, Outcome: outcome, Err: err})
		a.logger.Printf("spotlight unavailable code=%s err=%v", code, err)
		return
	}

	path := filepath.Join(a.tablesDir(), fmt.Sprintf("spotlight_%s.csv", sanitizeName(code)))
	if err := report.WriteSeriesCSV(path, buckets); err != nil {
		summary.Add(ItemResult{Analysis: "leakage", Item: code, Outcome: OutcomeFailed, Err: err})
		a.metrics.IncItemFailed("leakage")
		return
	}

	// RatioForCode already reports a rounded percentage.
	if rate, err := leakage.RatioForCode(rows, code); err == nil {
		a.logger.Printf("spotlight code=%s buckets=%d rate_pct=%.2f", code, len(buckets), rate)
	}
	summary.Add(ItemResult{Analysis: "leakage", Item: code, Outcome: OutcomeOK})
}
