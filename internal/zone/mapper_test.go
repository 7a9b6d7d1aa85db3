package zone

import (
	"errors"
	"testing"
	"time"

	"campus-waterworks/internal/dataset"
)

func testForward() map[Zone][]string {
	return map[Zone][]string{
		ZoneDormitory: {"宿舍A", "宿舍B"},
		ZoneDining:    {"第一食堂"},
	}
}

func TestLookupTrimsWhitespace(t *testing.T) {
	mapper, err := NewMapper(testForward())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}
	zone, ok := mapper.Lookup(" 宿舍A ")
	if !ok {
		t.Fatal("expected padded name to resolve after trim")
	}
	if zone != ZoneDormitory {
		t.Fatalf("expected dormitory, got %s", zone)
	}
}

func TestApplyCountsUnmappedOnce(t *testing.T) {
	mapper, err := NewMapper(testForward())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := []dataset.Reading{
		{DisplayName: "宿舍A", CollectedAt: at},
		{DisplayName: "未知泵房", CollectedAt: at},
		{DisplayName: "未知泵房", CollectedAt: at},
		{DisplayName: "第一食堂", CollectedAt: at},
	}
	result := mapper.Apply(rows)
	if result.Rows[0].Zone != string(ZoneDormitory) {
		t.Fatalf("expected dormitory zone, got %q", result.Rows[0].Zone)
	}
	if result.Rows[1].Zone != "" || result.Rows[2].Zone != "" {
		t.Fatal("unmapped rows must keep an empty zone")
	}
	if len(result.Unmapped) != 1 {
		t.Fatalf("expected unmapped name surfaced exactly once, got %v", result.Unmapped)
	}
	if result.Unmapped[0] != "未知泵房" {
		t.Fatalf("unexpected unmapped name %q", result.Unmapped[0])
	}
}

func TestNewMapperRejectsDuplicates(t *testing.T) {
	forward := testForward()
	forward[ZoneTeaching] = []string{" 宿舍A "}
	if _, err := NewMapper(forward); !errors.Is(err, ErrDuplicateDisplayName) {
		t.Fatalf("expected ErrDuplicateDisplayName, got %v", err)
	}
}

func TestNewMapperRejectsEmptyTable(t *testing.T) {
	if _, err := NewMapper(nil); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
	if _, err := NewMapper(map[Zone][]string{ZoneOffice: {"  "}}); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable for blank names, got %v", err)
	}
}

func TestEntriesFlattenForward(t *testing.T) {
	mapper, err := NewMapper(testForward())
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}
	entries := mapper.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 flat rows, got %d", len(entries))
	}
	// DINING sorts before DORMITORY.
	if entries[0].Zone != ZoneDining || entries[0].DisplayName != "第一食堂" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
}
