package leakage

import (
	"errors"
	"math"
	"testing"
	"time"
)

var seriesStart = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

// flatSeries yields 15-minute samples with a constant volume.
func flatSeries(volume float64, d time.Duration) []Sample {
	var samples []Sample
	for at := seriesStart; at.Before(seriesStart.Add(d)); at = at.Add(15 * time.Minute) {
		samples = append(samples, Sample{At: at, Volume: volume})
	}
	return samples
}

// varyingSeries yields samples whose bucket sums keep changing.
func varyingSeries(d time.Duration) []Sample {
	var samples []Sample
	step := 0.5
	for at := seriesStart; at.Before(seriesStart.Add(d)); at = at.Add(15 * time.Minute) {
		samples = append(samples, Sample{At: at, Volume: step})
		step += 0.5
	}
	return samples
}

func TestRatioFlatNonZeroIsPositive(t *testing.T) {
	ratio, err := Ratio(flatSeries(5.0, 6*time.Hour))
	if err != nil {
		t.Fatalf("ratio: %v", err)
	}
	if ratio <= 0 {
		t.Fatalf("fully flat nonzero series must yield a strictly positive ratio, got %f", ratio)
	}
	// Both 3-hour windows are static but not idle: 2*12/24.
	if diff := math.Abs(ratio - 1.0); diff > 1e-9 {
		t.Fatalf("expected ratio 1.0, got %f", ratio)
	}
}

func TestRatioAllZeroContributesNothing(t *testing.T) {
	ratio, err := Ratio(flatSeries(0, 6*time.Hour))
	if err != nil {
		t.Fatalf("ratio: %v", err)
	}
	if ratio != 0 {
		t.Fatalf("all-zero span must contribute zero, got %f", ratio)
	}
}

func TestRatioVaryingSeriesIsZero(t *testing.T) {
	ratio, err := Ratio(varyingSeries(6 * time.Hour))
	if err != nil {
		t.Fatalf("ratio: %v", err)
	}
	if ratio != 0 {
		t.Fatalf("continuously varying series must not look leaky, got %f", ratio)
	}
}

func TestRatioInsufficientReadings(t *testing.T) {
	if _, err := Ratio(nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := Ratio([]Sample{{At: seriesStart, Volume: 1}}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for single reading, got %v", err)
	}
}

func TestResampleZeroFillsGaps(t *testing.T) {
	samples := []Sample{
		{At: seriesStart, Volume: 2},
		{At: seriesStart.Add(time.Hour), Volume: 3},
	}
	buckets := Resample(samples)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 buckets spanning the hour, got %d", len(buckets))
	}
	if buckets[0].Sum != 2 || buckets[4].Sum != 3 {
		t.Fatalf("unexpected edge sums: %+v", buckets)
	}
	for i := 1; i < 4; i++ {
		if buckets[i].Sum != 0 {
			t.Fatalf("bucket %d must be zero-filled, got %f", i, buckets[i].Sum)
		}
	}
}

func TestResampleSumsWithinBucket(t *testing.T) {
	samples := []Sample{
		{At: seriesStart.Add(2 * time.Minute), Volume: 1},
		{At: seriesStart.Add(9 * time.Minute), Volume: 2.5},
	}
	buckets := Resample(samples)
	if len(buckets) != 1 {
		t.Fatalf("expected single bucket, got %d", len(buckets))
	}
	if buckets[0].Sum != 3.5 {
		t.Fatalf("expected in-bucket sum 3.5, got %f", buckets[0].Sum)
	}
}

func TestRankStableDescending(t *testing.T) {
	var rows []Reading
	add := func(user string, samples []Sample) {
		for _, s := range samples {
			rows = append(rows, Reading{Code: user, User: user, At: s.At, Volume: s.Volume})
		}
	}
	// Encounter order A, B, C, D; B and C tie at the top, A and D tie at zero.
	add("A", varyingSeries(6*time.Hour))
	add("B", flatSeries(5, 6*time.Hour))
	add("C", flatSeries(7, 6*time.Hour))
	add("D", flatSeries(0, 6*time.Hour))

	result := Rank(rows)
	if len(result.Rates) != 4 {
		t.Fatalf("expected 4 ranked users, got %d", len(result.Rates))
	}
	got := []string{result.Rates[0].Code, result.Rates[1].Code, result.Rates[2].Code, result.Rates[3].Code}
	want := []string{"B", "C", "A", "D"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if result.Rates[0].Rate != 100.00 {
		t.Fatalf("expected 100.00%%, got %f", result.Rates[0].Rate)
	}
}

func TestRankSkipsSparseUsers(t *testing.T) {
	rows := []Reading{
		{Code: "X", User: "X", At: seriesStart, Volume: 1},
	}
	rows = append(rows, func() []Reading {
		var out []Reading
		for _, s := range flatSeries(5, 6*time.Hour) {
			out = append(out, Reading{Code: "Y", User: "Y", At: s.At, Volume: s.Volume})
		}
		return out
	}()...)

	result := Rank(rows)
	if len(result.Rates) != 1 || result.Rates[0].Code != "Y" {
		t.Fatalf("expected only Y ranked, got %+v", result.Rates)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "X" {
		t.Fatalf("expected X skipped, got %v", result.Skipped)
	}
}

func TestSeriesForCode(t *testing.T) {
	var rows []Reading
	for _, s := range flatSeries(5, time.Hour) {
		rows = append(rows, Reading{Code: "40404T", User: "u", At: s.At, Volume: s.Volume})
	}
	buckets, err := SeriesForCode(rows, "40404T")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(buckets))
	}
	if _, err := SeriesForCode(rows, "nope"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	rates := []Rate{{Code: "A", Rate: 10}, {Code: "B", Rate: 30}, {Code: "C", Rate: 20}, {Code: "D", Rate: 40}}
	stats, err := Summarize(rates)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if stats.Count != 4 || stats.Mean != 25 || stats.Median != 25 || stats.Min != 10 || stats.Max != 40 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if _, err := Summarize(nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}
