package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/supy-ops/pms-converter/internal/config"
	"github.com/supy-ops/pms-converter/internal/model"
)

func sampleResult() ([]model.ItemRecord, *model.PipelineResult) {
	raw := []model.ItemRecord{
		{Extra: map[string]any{"Description": "Tomato 5kg", "Price": 12.5}},
		{Extra: map[string]any{"Description": "Olive Oil 1L", "Price": 45}},
	}

	standardized := []model.ItemRecord{
		{Index: 0, Match: 95, SupplierItemName: "Tomato 5 kg", BaseItemName: "Tomato Fresh", Taxable: "No"},
		{Index: 1, Match: 60, Remarks: "CRITICAL: Missing Price", SupplierItemName: "Olive Oil 1 l", BaseItemName: "Olive Oil"},
	}

	result := &model.PipelineResult{
		Standardized: standardized,
		Review: []model.ReviewEntry{
			{ItemRecord: standardized[1], RowNumber: 3},
		},
		Duplicates: model.DuplicateReport{
			Pairs: []model.DuplicatePair{
				{RowA: 2, ItemA: "Tomato Fresh", RowB: 3, ItemB: "Tomato Fresh", Score: 100},
			},
		},
	}
	return raw, result
}

func testCfg() *config.Config {
	return &config.Config{Country: "AE", Translate: false}
}

func TestWriteWorkbook_AllSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	raw, result := sampleResult()

	require.NoError(t, WriteWorkbook(path, raw, result, testCfg()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t,
		[]string{SheetRaw, SheetComparison, SheetReview, SheetDuplicates, SheetSummary},
		f.GetSheetList(),
	)

	// Comparison sheet: canonical header order, data row present.
	header, err := f.GetCellValue(SheetComparison, "A1")
	require.NoError(t, err)
	require.Equal(t, model.FieldMatchPercent, header)

	name, err := f.GetCellValue(SheetComparison, "C2")
	require.NoError(t, err)
	require.Equal(t, "Tomato 5 kg", name)

	// Review sheet leads with the row-number column.
	reviewHeader, err := f.GetCellValue(SheetReview, "A1")
	require.NoError(t, err)
	require.Equal(t, "Row Number", reviewHeader)

	rowNum, err := f.GetCellValue(SheetReview, "A2")
	require.NoError(t, err)
	require.Equal(t, "3", rowNum)

	// Duplicate sheet carries the pair.
	score, err := f.GetCellValue(SheetDuplicates, "E2")
	require.NoError(t, err)
	require.Equal(t, "100", score)

	// Summary counts.
	metric, err := f.GetCellValue(SheetSummary, "A6")
	require.NoError(t, err)
	require.Equal(t, "Review Queue Count", metric)
	count, err := f.GetCellValue(SheetSummary, "B6")
	require.NoError(t, err)
	require.Equal(t, "1", count)
}

func TestWriteWorkbook_EmptySectionsGetPlaceholders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	raw, result := sampleResult()
	result.Review = nil
	result.Duplicates = model.DuplicateReport{}

	require.NoError(t, WriteWorkbook(path, raw, result, testCfg()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	msg, err := f.GetCellValue(SheetReview, "A2")
	require.NoError(t, err)
	require.Contains(t, msg, "No items flagged")

	msg, err = f.GetCellValue(SheetDuplicates, "A2")
	require.NoError(t, err)
	require.Contains(t, msg, "No duplicates")
}

func TestWriteWorkbook_SkippedDuplicateScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	raw, result := sampleResult()
	result.Duplicates = model.DuplicateReport{Skipped: true}

	require.NoError(t, WriteWorkbook(path, raw, result, testCfg()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	msg, err := f.GetCellValue(SheetDuplicates, "A2")
	require.NoError(t, err)
	require.Contains(t, msg, "skipped")
}

func TestHighlightStyle_UsesConfiguredThreshold(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	st, err := registerStyles(f)
	require.NoError(t, err)

	borderline := model.ItemRecord{Match: 90, SupplierItemName: "Tomato"}

	require.Equal(t, st.cell, highlightStyle(borderline, st, 80),
		"score above the threshold stays untinted")
	require.Equal(t, st.warning, highlightStyle(borderline, st, 95),
		"raising the threshold must tint the same row the classifier would flag")
	require.Equal(t, st.warning, highlightStyle(model.ItemRecord{Match: 70}, st, 0),
		"zero threshold falls back to the classifier default")

	critical := model.ItemRecord{Match: 100, Remarks: "ERROR: bad unit"}
	require.Equal(t, st.critical, highlightStyle(critical, st, 80))
}

func TestWriteRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.xlsx")
	raw, _ := sampleResult()

	require.NoError(t, WriteRaw(path, raw))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetRaw}, f.GetSheetList())
	val, err := f.GetCellValue(SheetRaw, "A2")
	require.NoError(t, err)
	require.Equal(t, "Tomato 5kg", val)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	require.Equal(t, "PMS_Export_AE_20260315_093000.xlsx", Filename("AE", ts))
}
