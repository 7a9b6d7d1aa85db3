package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"campus-waterworks/internal/config"
	"campus-waterworks/internal/leakage"
	"campus-waterworks/internal/observability/metrics"
	"campus-waterworks/internal/report"
	"campus-waterworks/internal/zone"
)

// Analysis selects which part of the pipeline a run executes.
type Analysis string

const (
	AnalysisFull         Analysis = "full"
	AnalysisRelationship Analysis = "relationship"
	AnalysisLeakage      Analysis = "leakage"
	AnalysisArea         Analysis = "area"
)

// ErrUnknownAnalysis is returned for an analysis name outside the
// supported set.
var ErrUnknownAnalysis = errors.New("app: unknown analysis")

// ParseAnalysis validates an analysis selector.
func ParseAnalysis(name string) (Analysis, error) {
	switch Analysis(name) {
	case AnalysisFull, AnalysisRelationship, AnalysisLeakage, AnalysisArea:
		return Analysis(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAnalysis, name)
}

// App runs the configured analyses over one set of input files.
type App struct {
	cfg     config.Config
	sources Sources
	logger  *log.Logger
	metrics *metrics.Run
	now     func() time.Time
}

// New builds an App. A nil logger falls back to the default logger
// and a nil clock to time.Now.
func New(cfg config.Config, sources Sources, logger *log.Logger) (*App, error) {
	if sources == nil {
		return nil, ErrNilSources
	}
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{
		cfg:     cfg,
		sources: sources,
		logger:  logger,
		metrics: metrics.NewRun(),
		now:     time.Now,
	}, nil
}

// Run executes the selected analysis end to end: load, analyze, write
// tables and reports, then publish the run metrics.
func (a *App) Run(analysis Analysis) error {
	started := a.now()
	if err := a.ensureOutDirs(); err != nil {
		return err
	}

	activities, err := a.cfg.ActivityTable()
	if err != nil {
		return err
	}

	summary := &Summary{}
	pdfInput := report.RunSummary{GeneratedAt: started}

	if analysis != AnalysisLeakage {
		prepared, err := Prepare(a.sources, activities)
		if err != nil {
			return err
		}
		a.metrics.AddRowsLoaded(prepared.Loaded)
		a.metrics.AddRowsDropped(prepared.Dropped)
		a.logger.Printf("dataset prepared loaded=%d valid=%d dropped=%d meters=%d",
			prepared.Loaded, len(prepared.Rows), prepared.Dropped, prepared.Hierarchy.Len())
		pdfInput.ValidRows = len(prepared.Rows)
		pdfInput.DroppedRows = prepared.Dropped

		if analysis == AnalysisFull || analysis == AnalysisRelationship {
			rel, err := a.runRelationship(prepared, summary)
			if err != nil {
				return err
			}
			pdfInput.Reconciliation = rel.Reconciliation
		}
		if analysis == AnalysisFull || analysis == AnalysisArea {
			area, err := a.runArea(prepared, summary)
			if err != nil {
				return err
			}
			pdfInput.UnmappedNames = len(area.Unmapped)
		}
	}

	if analysis == AnalysisFull || analysis == AnalysisLeakage {
		leak, err := a.runLeakage(summary)
		if err != nil {
			return err
		}
		pdfInput.TopRates = topRates(leak.Rates, 10)
		pdfInput.RateStats = leak.Stats
	}

	if err := a.writeRunSummary(pdfInput); err != nil {
		return err
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	summary.Log(a.logger)
	a.logger.Printf("run complete analysis=%s elapsed=%s", analysis, a.now().Sub(started).Round(time.Millisecond))
	return nil
}

func (a *App) writeRunSummary(s report.RunSummary) error {
	payload, err := report.BuildRunSummaryPDF(s)
	if err != nil {
		return fmt.Errorf("build run summary: %w", err)
	}
	path := filepath.Join(a.reportsDir(), "run_summary.pdf")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (a *App) mapper() (*zone.Mapper, error) {
	table, err := a.cfg.ZoneTable()
	if err != nil {
		return nil, err
	}
	return zone.NewMapper(table)
}

func (a *App) tablesDir() string  { return filepath.Join(a.cfg.OutDir, "tables") }
func (a *App) reportsDir() string { return filepath.Join(a.cfg.OutDir, "reports") }

func (a *App) ensureOutDirs() error {
	for _, dir := range []string{a.tablesDir(), a.reportsDir(), filepath.Dir(a.cfg.MetricsFile)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func topRates(rates []leakage.Rate, n int) []leakage.Rate {
	if len(rates) < n {
		n = len(rates)
	}
	return rates[:n]
}
