package loader

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"campus-waterworks/internal/hierarchy"
)

func writeHierarchyWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "hierarchy.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReadHierarchyXLSX(t *testing.T) {
	path := writeHierarchyWorkbook(t, [][]interface{}{
		{"一级表号", "二级表号", "三级表号", "四级表号", "水表号"},
		{"401", "", "", "", "M1"},
		{"", "40101", "", "", "M2"},
		{"", "", "", "", ""},
	})

	meters, err := ReadHierarchyXLSX(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meters) != 2 {
		t.Fatalf("expected 2 meters, got %d", len(meters))
	}
	if meters[0].MeterID != "M1" || meters[0].Levels[0] != "401" {
		t.Fatalf("unexpected first meter %+v", meters[0])
	}
	if meters[1].MeterID != "M2" || meters[1].Levels[1] != "40101" {
		t.Fatalf("unexpected second meter %+v", meters[1])
	}
}

func TestReadHierarchyXLSXRejectsEmptySerial(t *testing.T) {
	path := writeHierarchyWorkbook(t, [][]interface{}{
		{"一级表号", "二级表号", "三级表号", "四级表号", "水表号"},
		{"401", "", "", "", ""},
	})

	if _, err := ReadHierarchyXLSX(path); !errors.Is(err, hierarchy.ErrEmptyMeterID) {
		t.Fatalf("expected ErrEmptyMeterID, got %v", err)
	}
}

func TestReadHierarchyXLSXRejectsMissingSerialColumn(t *testing.T) {
	path := writeHierarchyWorkbook(t, [][]interface{}{
		{"一级表号", "二级表号", "三级表号", "四级表号", "备注"},
		{"401", "", "", "", "x"},
	})

	if _, err := ReadHierarchyXLSX(path); !errors.Is(err, hierarchy.ErrMalformedHierarchy) {
		t.Fatalf("expected ErrMalformedHierarchy, got %v", err)
	}
}
