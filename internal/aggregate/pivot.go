package aggregate

import (
	"sort"
	"strings"
)

// Wide is a dense matrix view: one key dimension expanded into columns,
// the remaining dimensions forming the row key, and absent combinations
// filled with zero rather than left null.
type Wide struct {
	RowDims []string
	ColDim  string
	RowKeys [][]string
	Cols    []string
	Values  [][]float64
}

// Pivot expands colDim of a long view into columns. An empty view
// pivots to an empty-but-valid wide view.
func (g Grouped) Pivot(colDim string) (Wide, error) {
	colIdx := -1
	for i, name := range g.Dims {
		if name == colDim {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return Wide{}, ErrUnknownDimension
	}

	rowDims := make([]string, 0, len(g.Dims)-1)
	for i, name := range g.Dims {
		if i != colIdx {
			rowDims = append(rowDims, name)
		}
	}

	type cell struct {
		rowKey []string
		col    string
		value  float64
	}
	cells := make([]cell, 0, len(g.Rows))
	rowIndex := make(map[string][]string)
	colSet := make(map[string]struct{})
	for _, row := range g.Rows {
		rowKey := make([]string, 0, len(row.Key)-1)
		for i, part := range row.Key {
			if i != colIdx {
				rowKey = append(rowKey, part)
			}
		}
		rowIndex[strings.Join(rowKey, keySep)] = rowKey
		colSet[row.Key[colIdx]] = struct{}{}
		cells = append(cells, cell{rowKey: rowKey, col: row.Key[colIdx], value: row.Value})
	}

	rowJoined := make([]string, 0, len(rowIndex))
	for joined := range rowIndex {
		rowJoined = append(rowJoined, joined)
	}
	sort.Strings(rowJoined)

	cols := make([]string, 0, len(colSet))
	for col := range colSet {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	rowPos := make(map[string]int, len(rowJoined))
	wide := Wide{RowDims: rowDims, ColDim: colDim, Cols: cols}
	for i, joined := range rowJoined {
		rowPos[joined] = i
		wide.RowKeys = append(wide.RowKeys, rowIndex[joined])
		wide.Values = append(wide.Values, make([]float64, len(cols)))
	}
	colPos := make(map[string]int, len(cols))
	for i, col := range cols {
		colPos[col] = i
	}

	for _, c := range cells {
		wide.Values[rowPos[strings.Join(c.rowKey, keySep)]][colPos[c.col]] = c.value
	}
	return wide, nil
}

// IsEmpty reports whether the wide view has no cells.
func (w Wide) IsEmpty() bool { return len(w.RowKeys) == 0 || len(w.Cols) == 0 }

// Total returns the sum of every cell.
func (w Wide) Total() float64 {
	var total float64
	for _, row := range w.Values {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Cumulative returns a copy with each row replaced by its running sum
// across columns, zero-filled gaps included.
func (w Wide) Cumulative() Wide {
	out := Wide{RowDims: w.RowDims, ColDim: w.ColDim, Cols: w.Cols, RowKeys: w.RowKeys}
	out.Values = make([][]float64, len(w.Values))
	for i, row := range w.Values {
		acc := make([]float64, len(row))
		var running float64
		for j, v := range row {
			running += v
			acc[j] = running
		}
		out.Values[i] = acc
	}
	return out
}

// Row returns the values for a single-dimension row key, if present.
func (w Wide) Row(key string) ([]float64, bool) {
	for i, rowKey := range w.RowKeys {
		if strings.Join(rowKey, keySep) == key {
			return w.Values[i], true
		}
	}
	return nil, false
}
