// Package app wires the loaders, analyzers and report builders into
// the runnable analyses.
package app

import (
	"errors"
	"fmt"

	"campus-waterworks/internal/config"
	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/hierarchy"
	"campus-waterworks/internal/leakage"
	"campus-waterworks/internal/loader"
)

// ErrNilSources is returned when a pipeline is built without sources.
var ErrNilSources = errors.New("app: nil sources")

// Sources abstracts where the three input datasets come from so tests
// can feed rows directly instead of going through files.
type Sources interface {
	Hierarchy() ([]hierarchy.MeterRow, error)
	MainReadings() ([]dataset.RawReading, error)
	AuxReadings() ([]leakage.Reading, error)
}

// FileSources reads the datasets from the configured files.
type FileSources struct {
	cfg config.Config
}

// NewFileSources builds file-backed sources from a configuration.
func NewFileSources(cfg config.Config) *FileSources {
	return &FileSources{cfg: cfg}
}

func (s *FileSources) Hierarchy() ([]hierarchy.MeterRow, error) {
	return loader.ReadHierarchyXLSX(s.cfg.HierarchyPath())
}

func (s *FileSources) MainReadings() ([]dataset.RawReading, error) {
	return loader.ReadMainCSV(s.cfg.MainPath())
}

func (s *FileSources) AuxReadings() ([]leakage.Reading, error) {
	return loader.ReadAuxCSV(s.cfg.AuxPath())
}

// Prepared is the enriched main dataset every analysis starts from.
type Prepared struct {
	Rows      []dataset.Reading
	Loaded    int
	Dropped   int
	Hierarchy *hierarchy.Table
}

// Prepare loads the hierarchy and the main readings, resolves each
// meter to a tier and code, and joins the calendar features in.
func Prepare(sources Sources, activities dataset.ActivityTable) (Prepared, error) {
	if sources == nil {
		return Prepared{}, ErrNilSources
	}

	meters, err := sources.Hierarchy()
	if err != nil {
		return Prepared{}, fmt.Errorf("load hierarchy: %w", err)
	}
	table := hierarchy.ResolveAll(meters)

	raw, err := sources.MainReadings()
	if err != nil {
		return Prepared{}, fmt.Errorf("load readings: %w", err)
	}

	joined, err := dataset.Join(raw, table, activities)
	if err != nil {
		return Prepared{}, fmt.Errorf("join readings: %w", err)
	}

	return Prepared{
		Rows:      joined.Valid,
		Loaded:    len(raw),
		Dropped:   joined.Dropped,
		Hierarchy: table,
	}, nil
}
