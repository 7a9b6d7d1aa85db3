package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/leakage"
)

// ReadMainCSV loads the main reading source. The table must carry the
// meter serial number, collection timestamp and volume columns; the
// display-name column is optional.
func ReadMainCSV(path string) ([]dataset.RawReading, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseMainCSV(file)
}

func parseMainCSV(r io.Reader) ([]dataset.RawReading, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty main source", ErrMissingColumn)
		}
		return nil, err
	}

	index := headerIndex(header)
	meterIdx := findHeader(index, "水表号", "meter_no", "meter_id")
	timeIdx := findHeader(index, "采集时间", "collected_at", "time")
	volumeIdx := findHeader(index, "用量", "volume")
	nameIdx := findHeader(index, "水表名", "meter_name")
	if meterIdx < 0 {
		return nil, fmt.Errorf("%w: meter serial number", ErrMissingColumn)
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("%w: collection timestamp", ErrMissingColumn)
	}
	if volumeIdx < 0 {
		return nil, fmt.Errorf("%w: volume", ErrMissingColumn)
	}

	var readings []dataset.RawReading
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		at, err := dataset.ParseTimestamp(cellAt(record, timeIdx))
		if err != nil {
			return nil, fmt.Errorf("main source line %d: %w", line, err)
		}
		volume, err := parseVolume(cellAt(record, volumeIdx))
		if err != nil {
			return nil, fmt.Errorf("main source line %d: %w", line, err)
		}

		readings = append(readings, dataset.RawReading{
			MeterID:     cellAt(record, meterIdx),
			DisplayName: cellAt(record, nameIdx),
			CollectedAt: at,
			Volume:      volume,
		})
	}
	return readings, nil
}

// ReadAuxCSV loads the auxiliary reading source used by the leakage
// analysis. The code and user columns are inferred by substring match
// on header names when no exact match exists.
func ReadAuxCSV(path string) ([]leakage.Reading, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseAuxCSV(file)
}

func parseAuxCSV(r io.Reader) ([]leakage.Reading, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty auxiliary source", ErrMissingColumn)
		}
		return nil, err
	}

	index := headerIndex(header)
	timeIdx := findHeader(index, "采集时间", "collected_at", "time")
	volumeIdx := findHeader(index, "用量", "volume")
	codeIdx := findHeader(index, "code")
	if codeIdx < 0 {
		codeIdx = findHeaderSubstring(header, "code", "编码")
	}
	userIdx := findHeader(index, "用户名", "user")
	if userIdx < 0 {
		userIdx = findHeaderSubstring(header, "用户", "user", "名")
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("%w: collection timestamp", ErrMissingColumn)
	}
	if volumeIdx < 0 {
		return nil, fmt.Errorf("%w: volume", ErrMissingColumn)
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("%w: meter code", ErrMissingColumn)
	}
	if userIdx < 0 {
		return nil, fmt.Errorf("%w: user name", ErrMissingColumn)
	}

	var readings []leakage.Reading
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		at, err := dataset.ParseTimestamp(cellAt(record, timeIdx))
		if err != nil {
			return nil, fmt.Errorf("auxiliary source line %d: %w", line, err)
		}
		volume, err := parseVolume(cellAt(record, volumeIdx))
		if err != nil {
			return nil, fmt.Errorf("auxiliary source line %d: %w", line, err)
		}
		code := cellAt(record, codeIdx)
		if code == "" {
			// Rows without a code are outside the valid subset.
			continue
		}

		readings = append(readings, leakage.Reading{
			Code:   code,
			User:   cellAt(record, userIdx),
			At:     at,
			Volume: volume,
		})
	}
	return readings, nil
}

func parseVolume(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}
