package pms

import (
	"encoding/json"
	"testing"

	"github.com/supy-ops/pms-converter/internal/model"
)

func TestNeedsReview(t *testing.T) {
	tests := []struct {
		name    string
		remarks string
		match   any
		want    bool
	}{
		{"clean high confidence", "", 95, false},
		{"critical token", "CRITICAL: Missing Price", 100, true},
		{"error token", "error: bad unit", 100, true},
		{"warning token", "Warning: Check Unit", 100, true},
		{"low confidence", "", 79, true},
		{"threshold boundary", "", 80, false},
		{"missing score passes", "", nil, false},
		{"string score", "", "65", true},
		{"json number score", "", json.Number("72"), true},
		{"unparseable score passes", "", "n/a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.ItemRecord{Remarks: tt.remarks, Match: tt.match}
			if got := NeedsReview(rec, 80); got != tt.want {
				t.Errorf("NeedsReview = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyReview_RowNumbers(t *testing.T) {
	records := []model.ItemRecord{
		{Index: 0, Remarks: "ok", Match: 95},
		{Index: 1, Remarks: "CRITICAL: Missing Price", Match: 70},
		{Index: 2, Match: 50},
	}

	entries := ClassifyReview(records, 80)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RowNumber != 3 {
		t.Errorf("row number = %d, want 3", entries[0].RowNumber)
	}
	if entries[1].RowNumber != 4 {
		t.Errorf("row number = %d, want 4", entries[1].RowNumber)
	}
}

func TestClassifyReview_ZeroThresholdUsesDefault(t *testing.T) {
	records := []model.ItemRecord{{Index: 0, Match: 75}}
	if entries := ClassifyReview(records, 0); len(entries) != 1 {
		t.Errorf("expected default threshold to flag score 75, got %d entries", len(entries))
	}
}
