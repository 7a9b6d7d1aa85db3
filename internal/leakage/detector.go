package leakage

import (
	"errors"
	"sort"
	"time"
)

const (
	fineStep   = 15 * time.Minute
	coarseStep = 3 * time.Hour
	// fine buckets inside one coarse window; normalizes window counts
	// back to a per-bucket rate.
	bucketsPerWindow = int(coarseStep / fineStep)
)

// ErrInsufficientData is returned when a meter has fewer than two raw
// readings or its resampled series is empty. Such meters are skipped,
// not reported with a placeholder ratio.
var ErrInsufficientData = errors.New("leakage: insufficient readings for ratio")

// Sample is one timestamped volume observation for a single meter.
type Sample struct {
	At     time.Time
	Volume float64
}

// Bucket is one fine-grained resample bucket.
type Bucket struct {
	Start time.Time
	Sum   float64
}

// Resample sums samples into dense 15-minute buckets spanning the first
// through last observation; buckets with no readings hold zero. Input
// order does not matter, the series is indexed by genuine timestamps.
func Resample(samples []Sample) []Bucket {
	if len(samples) == 0 {
		return nil
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	start := sorted[0].At.Truncate(fineStep)
	end := sorted[len(sorted)-1].At.Truncate(fineStep)
	n := int(end.Sub(start)/fineStep) + 1

	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i].Start = start.Add(time.Duration(i) * fineStep)
	}
	for _, s := range sorted {
		idx := int(s.At.Truncate(fineStep).Sub(start) / fineStep)
		buckets[idx].Sum += s.Volume
	}
	return buckets
}

type window struct {
	diffSum float64
	diffN   int
	sumSum  float64
	sumN    int
}

// Ratio estimates the fraction of time a meter shows a stuck non-idle
// reading pattern. Over 3-hour windows of the resampled series it
// counts "static" windows (mean change between consecutive buckets
// exactly zero) and "idle" windows (mean bucket sum exactly zero);
// the difference, normalized per fine bucket, is the ratio. The value
// is a heuristic estimator and is deliberately not clamped: noisy or
// sparse series may produce negative values or values above one.
func Ratio(samples []Sample) (float64, error) {
	if len(samples) < 2 {
		return 0, ErrInsufficientData
	}
	buckets := Resample(samples)
	if len(buckets) == 0 {
		return 0, ErrInsufficientData
	}

	windows := make(map[time.Time]*window)
	order := make([]time.Time, 0)
	for i, b := range buckets {
		key := b.Start.Truncate(coarseStep)
		w, ok := windows[key]
		if !ok {
			w = &window{}
			windows[key] = w
			order = append(order, key)
		}
		w.sumSum += b.Sum
		w.sumN++
		// The first bucket has no predecessor; its change is undefined
		// and excluded from the window mean.
		if i > 0 {
			w.diffSum += b.Sum - buckets[i-1].Sum
			w.diffN++
		}
	}

	var static, idle int
	for _, key := range order {
		w := windows[key]
		if w.diffN > 0 && w.diffSum == 0 {
			static++
		}
		if w.sumN > 0 && w.sumSum == 0 {
			idle++
		}
	}

	return float64(static-idle) * float64(bucketsPerWindow) / float64(len(buckets)), nil
}
