package reconcile

import (
	"errors"
	"strings"

	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/hierarchy"
)

// ErrInsufficientData is returned when a prefix does not carry both the
// first and second metering tiers, or when the first-tier total is zero.
// It covers the division-by-zero guard: the analyzer never emits NaN/Inf.
var ErrInsufficientData = errors.New("reconcile: insufficient data for tier comparison")

// Result quantifies the volume discrepancy between adjacent metering
// tiers under one code prefix. RelativeError is signed: positive means
// the second tier over-reports relative to the first, suggesting
// leakage upstream of the submeters or miscalibration.
type Result struct {
	Prefix          string
	FirstTierTotal  float64
	SecondTierTotal float64
	RelativeError   float64
}

// ErrorPercent is the relative error as a percentage.
func (r Result) ErrorPercent() float64 { return r.RelativeError * 100 }

// Analyzer compares parent and child tier totals per code prefix,
// excluding a configured set of known-anomalous display names.
type Analyzer struct {
	exclude map[string]struct{}
}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer(excludeDisplayNames []string) *Analyzer {
	exclude := make(map[string]struct{}, len(excludeDisplayNames))
	for _, name := range excludeDisplayNames {
		name = strings.TrimSpace(name)
		if name != "" {
			exclude[name] = struct{}{}
		}
	}
	return &Analyzer{exclude: exclude}
}

// Analyze computes the reconciliation error for one code prefix over
// the valid dataset.
func (a *Analyzer) Analyze(rows []dataset.Reading, prefix string) (Result, error) {
	result := Result{Prefix: prefix}

	totals := make(map[hierarchy.Tier]float64)
	for _, row := range rows {
		if !strings.HasPrefix(row.Code, prefix) {
			continue
		}
		if _, skip := a.exclude[strings.TrimSpace(row.DisplayName)]; skip {
			continue
		}
		totals[row.Tier] += row.Volume
	}

	first, hasFirst := totals[hierarchy.TierFirst]
	second, hasSecond := totals[hierarchy.TierSecond]
	if !hasFirst || !hasSecond {
		return result, ErrInsufficientData
	}
	if first == 0 {
		return result, ErrInsufficientData
	}

	result.FirstTierTotal = first
	result.SecondTierTotal = second
	result.RelativeError = (second - first) / first
	return result, nil
}
