package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"campus-waterworks/internal/hierarchy"
)

// ReadHierarchyXLSX loads the meter-hierarchy workbook. The first four
// columns of the first sheet must be the tier identifier columns,
// coarsest first, followed by the meter serial-number column.
func ReadHierarchyXLSX(path string) ([]hierarchy.MeterRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", hierarchy.ErrMalformedHierarchy)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet %q", hierarchy.ErrMalformedHierarchy, sheets[0])
	}

	header := rows[0]
	if len(header) < hierarchy.LevelCount+1 {
		return nil, fmt.Errorf("%w: expected %d tier columns plus a serial column, got %d columns",
			hierarchy.ErrMalformedHierarchy, hierarchy.LevelCount, len(header))
	}

	serialIdx := findHeaderSubstring(header[hierarchy.LevelCount:], "水表号", "meter_no", "meter_id", "表号")
	if serialIdx < 0 {
		return nil, fmt.Errorf("%w: no meter serial column", hierarchy.ErrMalformedHierarchy)
	}
	serialIdx += hierarchy.LevelCount

	var meters []hierarchy.MeterRow
	for i, record := range rows[1:] {
		row := hierarchy.MeterRow{MeterID: cellAt(record, serialIdx)}
		var populated bool
		for j := 0; j < hierarchy.LevelCount; j++ {
			row.Levels[j] = cellAt(record, j)
			if row.Levels[j] != "" {
				populated = true
			}
		}
		if !populated && row.MeterID == "" {
			// fully blank rows are padding, not data
			continue
		}
		if row.MeterID == "" {
			return nil, fmt.Errorf("row %d: %w", i+2, hierarchy.ErrEmptyMeterID)
		}
		meters = append(meters, row)
	}
	return meters, nil
}
