package aggregate

import (
	"errors"
	"sort"
	"strings"

	"campus-waterworks/internal/dataset"
)

// Func selects the aggregation applied to volume within a group.
type Func string

const (
	FuncSum  Func = "SUM"
	FuncMean Func = "MEAN"
)

var (
	// ErrUnknownFunc is returned for an unsupported aggregation func.
	ErrUnknownFunc = errors.New("aggregate: unknown aggregation func")
	// ErrNoDimensions is returned when the grouping key is empty.
	ErrNoDimensions = errors.New("aggregate: at least one grouping dimension required")
	// ErrUnknownDimension is returned when the pivot dimension is not part
	// of the grouping key.
	ErrUnknownDimension = errors.New("aggregate: pivot dimension not in grouping key")
)

// Dimension extracts one grouping-key component from a reading. Values
// must be encoded so that lexicographic order matches natural order
// (timestamps in layout order, numbers zero-padded).
type Dimension struct {
	Name  string
	Value func(r dataset.Reading) string
}

// GroupRow is one aggregated row of a long view.
type GroupRow struct {
	Key   []string
	Value float64
}

// Grouped is a long aggregate view, rows sorted by composite key. An
// empty input produces an empty-but-valid view, never an error.
type Grouped struct {
	Dims []string
	Rows []GroupRow
}

const keySep = "\x1f"

type accumulator struct {
	key   []string
	sum   float64
	count int
}

// GroupBy aggregates volume by the given dimensions.
func GroupBy(rows []dataset.Reading, dims []Dimension, fn Func) (Grouped, error) {
	if len(dims) == 0 {
		return Grouped{}, ErrNoDimensions
	}
	if fn != FuncSum && fn != FuncMean {
		return Grouped{}, ErrUnknownFunc
	}

	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}

	groups := make(map[string]*accumulator)
	for _, row := range rows {
		key := make([]string, len(dims))
		for i, d := range dims {
			key[i] = d.Value(row)
		}
		joined := strings.Join(key, keySep)
		acc, ok := groups[joined]
		if !ok {
			acc = &accumulator{key: key}
			groups[joined] = acc
		}
		acc.sum += row.Volume
		acc.count++
	}

	joinedKeys := make([]string, 0, len(groups))
	for joined := range groups {
		joinedKeys = append(joinedKeys, joined)
	}
	sort.Strings(joinedKeys)

	result := Grouped{Dims: names, Rows: make([]GroupRow, 0, len(groups))}
	for _, joined := range joinedKeys {
		acc := groups[joined]
		value := acc.sum
		if fn == FuncMean {
			value = acc.sum / float64(acc.count)
		}
		result.Rows = append(result.Rows, GroupRow{Key: acc.key, Value: value})
	}
	return result, nil
}

// IsEmpty reports whether the view has no rows. Callers treat empty
// views as "nothing to report", not as an error.
func (g Grouped) IsEmpty() bool { return len(g.Rows) == 0 }
