package loader

import (
	"errors"
	"strings"
)

// ErrMissingColumn is returned when a source table lacks a required
// column even after best-effort header inference.
var ErrMissingColumn = errors.New("loader: missing required column")

// headerIndex maps lowercase, trimmed header names to their positions.
func headerIndex(record []string) map[string]int {
	index := make(map[string]int, len(record))
	for i, name := range record {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

// findHeader returns the position of the first exactly matching name.
func findHeader(index map[string]int, names ...string) int {
	for _, name := range names {
		if idx, ok := index[strings.ToLower(name)]; ok {
			return idx
		}
	}
	return -1
}

// findHeaderSubstring falls back to substring matching on the raw
// header row, used to infer auxiliary-source columns.
func findHeaderSubstring(record []string, fragments ...string) int {
	for i, name := range record {
		lowered := strings.ToLower(strings.TrimSpace(name))
		for _, fragment := range fragments {
			if strings.Contains(lowered, strings.ToLower(fragment)) {
				return i
			}
		}
	}
	return -1
}

func cellAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
