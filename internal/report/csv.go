package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"campus-waterworks/internal/aggregate"
	"campus-waterworks/internal/leakage"
)

const timeLayout = "2006-01-02 15:04:05"

// WriteWideCSV writes a wide view: the row-key dimensions first, then
// one column per pivoted value.
func WriteWideCSV(path string, w aggregate.Wide) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append(append([]string{}, w.RowDims...), w.Cols...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i, rowKey := range w.RowKeys {
		record := append([]string{}, rowKey...)
		for _, v := range w.Values[i] {
			record = append(record, formatFloat(v))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

// WriteGroupedCSV writes a long view with a trailing volume column.
func WriteGroupedCSV(path string, g aggregate.Grouped) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append(append([]string{}, g.Dims...), "volume")
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range g.Rows {
		record := append(append([]string{}, row.Key...), formatFloat(row.Value))
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

// WriteSeriesCSV writes a resampled single-meter series.
func WriteSeriesCSV(path string, buckets []leakage.Bucket) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"bucket_start", "volume"}); err != nil {
		return err
	}
	for _, b := range buckets {
		if err := writer.Write([]string{formatTime(b.Start), formatFloat(b.Sum)}); err != nil {
			return err
		}
	}
	return writer.Error()
}

// WriteRatesCSV writes the leakage ranking, descending.
func WriteRatesCSV(path string, rates []leakage.Rate) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"code", "rate"}); err != nil {
		return err
	}
	for _, r := range rates {
		if err := writer.Write([]string{r.Code, strconv.FormatFloat(r.Rate, 'f', 2, 64)}); err != nil {
			return err
		}
	}
	return writer.Error()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatTime(value time.Time) string {
	return value.Format(timeLayout)
}
