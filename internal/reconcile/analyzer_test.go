package reconcile

import (
	"errors"
	"math"
	"testing"

	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/hierarchy"
)

func tierRow(code string, tier hierarchy.Tier, name string, volume float64) dataset.Reading {
	return dataset.Reading{Code: code, Tier: tier, DisplayName: name, Volume: volume}
}

func TestAnalyzeSignedError(t *testing.T) {
	rows := []dataset.Reading{
		tierRow("401", hierarchy.TierFirst, "总表", 60),
		tierRow("401", hierarchy.TierFirst, "总表", 40),
		tierRow("40101", hierarchy.TierSecond, "分表甲", 50),
		tierRow("40102", hierarchy.TierSecond, "分表乙", 45),
		tierRow("403", hierarchy.TierFirst, "别的片区", 999),
	}
	result, err := NewAnalyzer(nil).Analyze(rows, "401")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.FirstTierTotal != 100 || result.SecondTierTotal != 95 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if diff := math.Abs(result.ErrorPercent() - (-5.0)); diff > 1e-9 {
		t.Fatalf("expected -5.0%%, got %f", result.ErrorPercent())
	}
}

func TestAnalyzeExcludesConfiguredNames(t *testing.T) {
	rows := []dataset.Reading{
		tierRow("401", hierarchy.TierFirst, "总表", 100),
		tierRow("40101", hierarchy.TierSecond, "分表甲", 95),
		tierRow("40102", hierarchy.TierSecond, "异常馆", 500),
	}
	result, err := NewAnalyzer([]string{"异常馆"}).Analyze(rows, "401")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.SecondTierTotal != 95 {
		t.Fatalf("excluded building must not contribute, got %f", result.SecondTierTotal)
	}
}

func TestAnalyzeMissingTier(t *testing.T) {
	rows := []dataset.Reading{
		tierRow("401", hierarchy.TierFirst, "总表", 100),
	}
	if _, err := NewAnalyzer(nil).Analyze(rows, "401"); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAnalyzeZeroParentTotal(t *testing.T) {
	rows := []dataset.Reading{
		tierRow("401", hierarchy.TierFirst, "总表", 0),
		tierRow("40101", hierarchy.TierSecond, "分表甲", 12),
	}
	result, err := NewAnalyzer(nil).Analyze(rows, "401")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData on zero parent total, got %v", err)
	}
	if math.IsNaN(result.RelativeError) || math.IsInf(result.RelativeError, 0) {
		t.Fatalf("result must never carry NaN/Inf, got %f", result.RelativeError)
	}
}

func TestAnalyzeNoRowsForPrefix(t *testing.T) {
	rows := []dataset.Reading{tierRow("403", hierarchy.TierFirst, "别的片区", 50)}
	if _, err := NewAnalyzer(nil).Analyze(rows, "401"); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}
