package leakage

import "sort"

// Stats summarizes a leakage ranking.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Max    float64
	Min    float64
}

// Summarize computes distribution statistics over a ranking.
func Summarize(rates []Rate) (Stats, error) {
	if len(rates) == 0 {
		return Stats{}, ErrInsufficientData
	}

	values := make([]float64, len(rates))
	var sum float64
	for i, r := range rates {
		values[i] = r.Rate
		sum += r.Rate
	}
	sort.Float64s(values)

	stats := Stats{
		Count: len(values),
		Mean:  sum / float64(len(values)),
		Min:   values[0],
		Max:   values[len(values)-1],
	}
	mid := len(values) / 2
	if len(values)%2 == 0 {
		stats.Median = (values[mid-1] + values[mid]) / 2
	} else {
		stats.Median = values[mid]
	}
	return stats, nil
}
