package app

import (
	"encoding/csv"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"campus-waterworks/internal/aggregate"
	"campus-waterworks/internal/config"
	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/hierarchy"
	"campus-waterworks/internal/leakage"
)

type stubSources struct {
	meters []hierarchy.MeterRow
	main   []dataset.RawReading
	aux    []leakage.Reading
}

func (s *stubSources) Hierarchy() ([]hierarchy.MeterRow, error)    { return s.meters, nil }
func (s *stubSources) MainReadings() ([]dataset.RawReading, error) { return s.main, nil }
func (s *stubSources) AuxReadings() ([]leakage.Reading, error)     { return s.aux, nil }

func testSources() *stubSources {
	base := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	meters := []hierarchy.MeterRow{
		{MeterID: "M1", Levels: [hierarchy.LevelCount]string{"401", "", "", ""}},
		{MeterID: "M2", Levels: [hierarchy.LevelCount]string{"", "40101", "", ""}},
		{MeterID: "M3", Levels: [hierarchy.LevelCount]string{"", "40102", "", ""}},
	}

	main := make([]dataset.RawReading, 0)
	names := map[string]string{"M1": "教学大楼总表", "M2": "图书馆", "M3": "泵站临时表"}
	for day := 0; day < 2; day++ {
		for hour := 0; hour < 24; hour++ {
			at := base.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
			main = append(main,
				dataset.RawReading{MeterID: "M1", DisplayName: names["M1"], CollectedAt: at, Volume: 10},
				dataset.RawReading{MeterID: "M2", DisplayName: names["M2"], CollectedAt: at, Volume: 6},
				dataset.RawReading{MeterID: "M3", DisplayName: names["M3"], CollectedAt: at, Volume: 3.5},
			)
		}
	}

	aux := make([]leakage.Reading, 0)
	total := 0.0
	for i := 0; i < 24; i++ {
		at := base.Add(time.Duration(i) * 15 * time.Minute)
		total += 1.5
		aux = append(aux, leakage.Reading{Code: "40404T", User: "泵站表", At: at, Volume: total})
	}
	return &stubSources{meters: meters, main: main, aux: aux}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.OutDir = dir
	cfg.MetricsFile = filepath.Join(dir, "waterworks.prom")
	return cfg
}

func TestParseAnalysis(t *testing.T) {
	for _, name := range []string{"full", "relationship", "leakage", "area"} {
		if _, err := ParseAnalysis(name); err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
	}
	if _, err := ParseAnalysis("everything"); !errors.Is(err, ErrUnknownAnalysis) {
		t.Fatalf("expected ErrUnknownAnalysis, got %v", err)
	}
}

func TestRunFullWritesOutputs(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, testSources(), log.New(os.Stderr, "", 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := a.Run(AnalysisFull); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, rel := range []string{
		filepath.Join("tables", "relationship_15min.csv"),
		filepath.Join("tables", "relationship_6hour.csv"),
		filepath.Join("tables", "relationship_daily.csv"),
		filepath.Join("tables", "relationship_401_cumulative.csv"),
		filepath.Join("tables", "area_daily.csv"),
		filepath.Join("tables", "leakage_rates.csv"),
		filepath.Join("reports", "zone_mapping.xlsx"),
		filepath.Join("reports", "leakage_rates.xlsx"),
		filepath.Join("reports", "run_summary.pdf"),
	} {
		if _, err := os.Stat(filepath.Join(cfg.OutDir, rel)); err != nil {
			t.Fatalf("expected output %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(cfg.MetricsFile); err != nil {
		t.Fatalf("expected metrics file: %v", err)
	}
}

func TestRunLeakageOnlySkipsMainDataset(t *testing.T) {
	cfg := testConfig(t)
	sources := testSources()
	sources.meters = nil
	sources.main = nil

	a, err := New(cfg, sources, log.New(os.Stderr, "", 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Run(AnalysisLeakage); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutDir, "tables", "leakage_rates.csv")); err != nil {
		t.Fatalf("expected leakage output: %v", err)
	}
}

func TestPrepareRejectsNilSources(t *testing.T) {
	if _, err := Prepare(nil, dataset.DefaultActivityTable()); !errors.Is(err, ErrNilSources) {
		t.Fatalf("expected ErrNilSources, got %v", err)
	}
}

func TestCumulativeViewAccumulatesOverTime(t *testing.T) {
	t0 := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(0, 0, 1)

	rows := []dataset.Reading{
		{Tier: hierarchy.TierFirst, CollectedAt: t0, Volume: 10},
		{Tier: hierarchy.TierSecond, CollectedAt: t0, Volume: 6},
		{Tier: hierarchy.TierFirst, CollectedAt: t1, Volume: 10},
		{Tier: hierarchy.TierSecond, CollectedAt: t1, Volume: 6},
	}

	wide, err := cumulativeView(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wide.RowKeys) != 2 || len(wide.Cols) != 2 {
		t.Fatalf("expected 2 tiers x 2 timestamps, got %dx%d", len(wide.RowKeys), len(wide.Cols))
	}

	// one row per tier, the running sum moving along the time columns
	want := map[string][]float64{
		string(hierarchy.TierFirst):  {10, 20},
		string(hierarchy.TierSecond): {6, 12},
	}
	for i, key := range wide.RowKeys {
		expected, ok := want[key[0]]
		if !ok {
			t.Fatalf("unexpected tier row %q", key[0])
		}
		for j, v := range expected {
			if wide.Values[i][j] != v {
				t.Fatalf("tier %s col %d: expected %v, got %v", key[0], j, v, wide.Values[i][j])
			}
		}
	}
}

func TestHourProfileAggregation(t *testing.T) {
	rows := []dataset.Reading{
		{Quarter: 1, Hour: 8, Activity: dataset.ActivitySpringTerm, Volume: 2},
		{Quarter: 1, Hour: 8, Activity: dataset.ActivitySpringTerm, Volume: 4},
	}
	dir := t.TempDir()

	sumPath := filepath.Join(dir, "sum.csv")
	sum := hourProfile{suffix: "quarter_hour", dim: aggregate.DimQuarter(), fn: aggregate.FuncSum}
	if err := writeHourProfile(sumPath, rows, sum); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSingleCell(t, sumPath, "quarter", "1", "6")

	meanPath := filepath.Join(dir, "mean.csv")
	mean := hourProfile{suffix: "activity_hour", dim: aggregate.DimActivity(), fn: aggregate.FuncMean}
	if err := writeHourProfile(meanPath, rows, mean); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSingleCell(t, meanPath, "activity", string(dataset.ActivitySpringTerm), "3")
}

func assertSingleCell(t *testing.T, path, dim, key, value string) {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != dim || records[0][1] != "08" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[1][0] != key || records[1][1] != value {
		t.Fatalf("expected [%s %s], got %v", key, value, records[1])
	}
}

func TestRunAreaReportsUnmapped(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, testSources(), log.New(os.Stderr, "", 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prepared, err := Prepare(testSources(), dataset.DefaultActivityTable())
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if err := a.ensureOutDirs(); err != nil {
		t.Fatalf("out dirs: %v", err)
	}

	summary := &Summary{}
	result, err := a.runArea(prepared, summary)
	if err != nil {
		t.Fatalf("area failed: %v", err)
	}
	if len(result.Unmapped) != 1 || result.Unmapped[0] != "泵站临时表" {
		t.Fatalf("expected one unmapped name, got %v", result.Unmapped)
	}

	for _, rel := range []string{
		"area_TEACHING_quarter_hour.csv",
		"area_TEACHING_activity_hour.csv",
		"meter_图书馆_quarter_hour.csv",
		"meter_图书馆_activity_hour.csv",
	} {
		if _, err := os.Stat(filepath.Join(cfg.OutDir, "tables", rel)); err != nil {
			t.Fatalf("expected profile %s: %v", rel, err)
		}
	}
}
