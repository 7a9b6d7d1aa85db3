package leakage

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrCodeNotFound is returned when a requested meter code is absent
// from the auxiliary dataset.
var ErrCodeNotFound = errors.New("leakage: meter code not found")

// Reading is one auxiliary-source observation carrying the meter code
// and the meter-user identity the batch ranking is keyed by.
type Reading struct {
	Code   string
	User   string
	At     time.Time
	Volume float64
}

// Rate is one ranked leakage estimate. Code is the meter-user
// identifier; Rate is a percentage rounded to two decimals.
type Rate struct {
	Code string
	Rate float64
}

// RankResult carries the ranking plus per-user skip diagnostics.
type RankResult struct {
	Rates   []Rate
	Skipped []string
}

// Rank computes the leakage ratio for every distinct meter user and
// sorts the result descending by rate. The sort is stable: ties keep
// the original encounter order of the identifiers. Users with too few
// readings are skipped and simply absent from the ranking.
func Rank(rows []Reading) RankResult {
	byUser := make(map[string][]Sample)
	order := make([]string, 0)
	for _, row := range rows {
		if row.User == "" {
			continue
		}
		if _, ok := byUser[row.User]; !ok {
			order = append(order, row.User)
		}
		byUser[row.User] = append(byUser[row.User], Sample{At: row.At, Volume: row.Volume})
	}

	var result RankResult
	for _, user := range order {
		ratio, err := Ratio(byUser[user])
		if err != nil {
			result.Skipped = append(result.Skipped, user)
			continue
		}
		result.Rates = append(result.Rates, Rate{Code: user, Rate: roundPercent(ratio)})
	}

	sort.SliceStable(result.Rates, func(i, j int) bool {
		return result.Rates[i].Rate > result.Rates[j].Rate
	})
	return result
}

// SeriesForCode resamples the series of one meter code from the
// auxiliary dataset, for chart-ready export.
func SeriesForCode(rows []Reading, code string) ([]Bucket, error) {
	var samples []Sample
	for _, row := range rows {
		if row.Code == code {
			samples = append(samples, Sample{At: row.At, Volume: row.Volume})
		}
	}
	if len(samples) == 0 {
		return nil, ErrCodeNotFound
	}
	if len(samples) < 2 {
		return nil, ErrInsufficientData
	}
	return Resample(samples), nil
}

// RatioForCode computes the leakage ratio of one meter code, as a
// percentage rounded to two decimals.
func RatioForCode(rows []Reading, code string) (float64, error) {
	var samples []Sample
	for _, row := range rows {
		if row.Code == code {
			samples = append(samples, Sample{At: row.At, Volume: row.Volume})
		}
	}
	if len(samples) == 0 {
		return 0, ErrCodeNotFound
	}
	ratio, err := Ratio(samples)
	if err != nil {
		return 0, err
	}
	return roundPercent(ratio), nil
}

func roundPercent(ratio float64) float64 {
	return math.Round(ratio*100*100) / 100
}
