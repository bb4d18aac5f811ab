package pms

import (
	"testing"

	"github.com/supy-ops/pms-converter/internal/model"
)

func namedRecords(names ...string) []model.ItemRecord {
	records := make([]model.ItemRecord, len(names))
	for i, n := range names {
		records[i] = model.ItemRecord{BaseItemName: n, Index: i}
	}
	return records
}

func TestDetectDuplicates_FindsNearMatches(t *testing.T) {
	records := namedRecords("Tomato Fresh", "Tomato Fresh", "Olive Oil")

	report := DetectDuplicates(records, 90, 3000)
	if report.Skipped {
		t.Fatal("scan should not be skipped")
	}
	if len(report.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(report.Pairs))
	}

	p := report.Pairs[0]
	if p.RowA != 2 || p.RowB != 3 {
		t.Errorf("rows = (%d, %d), want (2, 3)", p.RowA, p.RowB)
	}
	if p.Score != 100 {
		t.Errorf("identical names should score 100, got %d", p.Score)
	}
	if p.ItemA != "Tomato Fresh" || p.ItemB != "Tomato Fresh" {
		t.Errorf("pair carries wrong names: %q / %q", p.ItemA, p.ItemB)
	}
}

func TestDetectDuplicates_CaseInsensitive(t *testing.T) {
	report := DetectDuplicates(namedRecords("CHICKEN BREAST", "chicken breast"), 90, 3000)
	if len(report.Pairs) != 1 {
		t.Fatalf("expected case-folded match, got %d pairs", len(report.Pairs))
	}
}

func TestDetectDuplicates_BelowThresholdIgnored(t *testing.T) {
	report := DetectDuplicates(namedRecords("Sugar White", "Basmati Rice"), 90, 3000)
	if len(report.Pairs) != 0 {
		t.Errorf("dissimilar names should not pair, got %d", len(report.Pairs))
	}
}

func TestDetectDuplicates_SkipsEmptyNames(t *testing.T) {
	report := DetectDuplicates(namedRecords("", "", "Olive Oil"), 90, 3000)
	if len(report.Pairs) != 0 {
		t.Errorf("empty names must not pair, got %d", len(report.Pairs))
	}
}

func TestDetectDuplicates_CeilingPolicy(t *testing.T) {
	atCeiling := make([]model.ItemRecord, 5)
	for i := range atCeiling {
		atCeiling[i] = model.ItemRecord{BaseItemName: "Same Name", Index: i}
	}

	report := DetectDuplicates(atCeiling, 90, 5)
	if report.Skipped {
		t.Error("scan should run when row count equals the ceiling")
	}
	if len(report.Pairs) == 0 {
		t.Error("identical names at the ceiling should still pair")
	}

	overCeiling := append(atCeiling, model.ItemRecord{BaseItemName: "Same Name", Index: 5})
	report = DetectDuplicates(overCeiling, 90, 5)
	if !report.Skipped {
		t.Error("expected scan to be skipped above the ceiling")
	}
	if len(report.Pairs) != 0 {
		t.Errorf("skipped scan must report no pairs, got %d", len(report.Pairs))
	}
}

func TestDetectDuplicates_Deterministic(t *testing.T) {
	records := namedRecords("Tomato Fresh", "Tomato Fresh Grade A", "Tomato Fresh", "Potato")

	first := DetectDuplicates(records, 85, 3000)
	second := DetectDuplicates(records, 85, 3000)
	if len(first.Pairs) != len(second.Pairs) {
		t.Fatalf("runs disagree: %d vs %d pairs", len(first.Pairs), len(second.Pairs))
	}
	for i := range first.Pairs {
		if first.Pairs[i] != second.Pairs[i] {
			t.Errorf("pair %d differs between runs", i)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a, b := "tomato fresh", "tomato fresh grade a"
	if similarity(a, b) != similarity(b, a) {
		t.Error("similarity must be symmetric")
	}
}
