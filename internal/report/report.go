// Package report assembles the five-sheet export workbook: raw data, the
// standardized comparison sheet with conditional highlighting, the review
// queue, potential duplicates, and run summary.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/supy-ops/pms-converter/internal/config"
	"github.com/supy-ops/pms-converter/internal/model"
	"github.com/supy-ops/pms-converter/internal/pms"
)

// Sheet names in workbook order.
const (
	SheetRaw        = "RAW_DATA"
	SheetComparison = "PMS_Comparison"
	SheetReview     = "Review_Queue"
	SheetDuplicates = "Potential_Duplicates"
	SheetSummary    = "Summary"
)

const maxColWidth = 60

// canonicalOrder fixes the column order for standardized sheets; columns
// outside the canonical set follow alphabetically.
var canonicalOrder = []string{
	model.FieldMatchPercent,
	model.FieldRemarks,
	model.FieldSupplierItemName,
	model.FieldSupplierItemCode,
	model.FieldSupplierName,
	model.FieldBuyingUnit,
	model.FieldPricePerUnit,
	model.FieldBaseItemName,
	model.FieldMainCategory,
	model.FieldSubCategory,
	model.FieldBaseUnit,
	model.FieldQtyInBasePkg,
	model.FieldPackageName,
	model.FieldBasePkgMult,
	model.FieldLargerPackage,
	model.FieldBiggerPackaging,
	model.FieldParLevel,
	model.FieldMinLevel,
	model.FieldTaxable,
	model.FieldPrepWastage,
	model.FieldAffectsCOGS,
}

// styles holds the style IDs registered on one workbook.
type styles struct {
	header   int
	cell     int
	critical int
	warning  int
}

// Filename builds the timestamped export file name for one run.
func Filename(country string, now time.Time) string {
	return fmt.Sprintf("PMS_Export_%s_%s.xlsx", country, now.Format("20060102_150405"))
}

// WriteWorkbook writes the full export to path.
func WriteWorkbook(path string, raw []model.ItemRecord, result *model.PipelineResult, cfg *config.Config) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := registerStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SheetRaw); err != nil {
		return eris.Wrap(err, "report: rename sheet")
	}
	for _, name := range []string{SheetComparison, SheetReview, SheetDuplicates, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return eris.Wrapf(err, "report: create sheet %s", name)
		}
	}

	if err := writeRecordSheet(f, SheetRaw, raw, st, false, 0); err != nil {
		return err
	}
	if err := writeRecordSheet(f, SheetComparison, result.Standardized, st, true, cfg.Review.ConfidenceThreshold); err != nil {
		return err
	}
	if err := writeReviewSheet(f, result.Review, st); err != nil {
		return err
	}
	if err := writeDuplicateSheet(f, result.Duplicates, st); err != nil {
		return err
	}
	if err := writeSummarySheet(f, raw, result, cfg, st); err != nil {
		return err
	}

	if idx, err := f.GetSheetIndex(SheetComparison); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}

	zap.L().Info("export written",
		zap.String("file", path),
		zap.Int("standardized", len(result.Standardized)),
		zap.Int("review", len(result.Review)),
		zap.Int("duplicates", len(result.Duplicates.Pairs)),
	)
	return nil
}

// WriteRaw writes just the extracted rows, for extraction-only runs.
func WriteRaw(path string, records []model.ItemRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := registerStyles(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", SheetRaw); err != nil {
		return eris.Wrap(err, "report: rename sheet")
	}
	if err := writeRecordSheet(f, SheetRaw, records, st, false, 0); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}

	zap.L().Info("raw extraction written", zap.String("file", path), zap.Int("rows", len(records)))
	return nil
}

func registerStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var st styles
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return st, eris.Wrap(err, "report: header style")
	}

	st.cell, err = f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return st, eris.Wrap(err, "report: cell style")
	}

	st.critical, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FFCCCC"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return st, eris.Wrap(err, "report: critical style")
	}

	st.warning, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FFF4CC"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return st, eris.Wrap(err, "report: warning style")
	}

	return st, nil
}

// writeRecordSheet lays out records as a table. With highlight set, rows are
// tinted red for critical or error remarks and orange for warnings or match
// scores below the review threshold.
func writeRecordSheet(f *excelize.File, sheet string, records []model.ItemRecord, st styles, highlight bool, threshold float64) error {
	cols := columnsFor(records)
	if len(cols) == 0 {
		cols = []string{"Message"}
	}

	if err := writeHeader(f, sheet, cols, st); err != nil {
		return err
	}
	widths := newWidths(cols)

	if len(records) == 0 {
		return finishSheet(f, sheet, widths)
	}

	for i, rec := range records {
		rowStyle := st.cell
		if highlight {
			rowStyle = highlightStyle(rec, st, threshold)
		}

		values := rec.Columns()
		row := i + 2
		for c, col := range cols {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return eris.Wrap(err, "report: cell name")
			}
			val := values[col]
			if err := f.SetCellValue(sheet, cell, cellValue(val)); err != nil {
				return eris.Wrapf(err, "report: write %s", cell)
			}
			if err := f.SetCellStyle(sheet, cell, cell, rowStyle); err != nil {
				return eris.Wrapf(err, "report: style %s", cell)
			}
			widths.observe(c, val)
		}
	}

	return finishSheet(f, sheet, widths)
}

func writeReviewSheet(f *excelize.File, entries []model.ReviewEntry, st styles) error {
	if len(entries) == 0 {
		return writeMessageSheet(f, SheetReview, "No items flagged for review.", st)
	}

	records := make([]model.ItemRecord, len(entries))
	for i, e := range entries {
		records[i] = e.ItemRecord
	}
	cols := append([]string{"Row Number"}, columnsFor(records)...)

	if err := writeHeader(f, SheetReview, cols, st); err != nil {
		return err
	}
	widths := newWidths(cols)

	for i, entry := range entries {
		values := entry.Columns()
		values["Row Number"] = entry.RowNumber
		row := i + 2
		for c, col := range cols {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return eris.Wrap(err, "report: cell name")
			}
			val := values[col]
			if err := f.SetCellValue(SheetReview, cell, cellValue(val)); err != nil {
				return eris.Wrapf(err, "report: write %s", cell)
			}
			if err := f.SetCellStyle(SheetReview, cell, cell, st.cell); err != nil {
				return eris.Wrapf(err, "report: style %s", cell)
			}
			widths.observe(c, val)
		}
	}

	return finishSheet(f, SheetReview, widths)
}

func writeDuplicateSheet(f *excelize.File, report model.DuplicateReport, st styles) error {
	if report.Skipped {
		return writeMessageSheet(f, SheetDuplicates, "Duplicate detection skipped: row count exceeds ceiling.", st)
	}
	if len(report.Pairs) == 0 {
		return writeMessageSheet(f, SheetDuplicates, "No duplicates detected.", st)
	}

	cols := []string{"Original Row A", "Item A", "Original Row B", "Item B", "Similarity Score"}
	if err := writeHeader(f, SheetDuplicates, cols, st); err != nil {
		return err
	}
	widths := newWidths(cols)

	for i, p := range report.Pairs {
		values := []any{p.RowA, p.ItemA, p.RowB, p.ItemB, p.Score}
		row := i + 2
		for c, val := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return eris.Wrap(err, "report: cell name")
			}
			if err := f.SetCellValue(SheetDuplicates, cell, val); err != nil {
				return eris.Wrapf(err, "report: write %s", cell)
			}
			if err := f.SetCellStyle(SheetDuplicates, cell, cell, st.cell); err != nil {
				return eris.Wrapf(err, "report: style %s", cell)
			}
			widths.observe(c, val)
		}
	}

	return finishSheet(f, SheetDuplicates, widths)
}

func writeSummarySheet(f *excelize.File, raw []model.ItemRecord, result *model.PipelineResult, cfg *config.Config, st styles) error {
	metrics := [][2]any{
		{"Processing Date", time.Now().Format("2006-01-02 15:04")},
		{"Target Country", cfg.Country},
		{"Input Rows", len(raw)},
		{"Total Items Processed", len(result.Standardized)},
		{"Review Queue Count", len(result.Review)},
		{"Duplicate Pairs", len(result.Duplicates.Pairs)},
		{"Duplicate Scan Skipped", fmt.Sprintf("%t", result.Duplicates.Skipped)},
		{"Translation Enabled", fmt.Sprintf("%t", cfg.Translate)},
	}

	cols := []string{"Metric", "Value"}
	if err := writeHeader(f, SheetSummary, cols, st); err != nil {
		return err
	}
	widths := newWidths(cols)

	for i, m := range metrics {
		row := i + 2
		for c, val := range m {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return eris.Wrap(err, "report: cell name")
			}
			if err := f.SetCellValue(SheetSummary, cell, val); err != nil {
				return eris.Wrapf(err, "report: write %s", cell)
			}
			if err := f.SetCellStyle(SheetSummary, cell, cell, st.cell); err != nil {
				return eris.Wrapf(err, "report: style %s", cell)
			}
			widths.observe(c, val)
		}
	}

	return finishSheet(f, SheetSummary, widths)
}

func writeMessageSheet(f *excelize.File, sheet, message string, st styles) error {
	if err := writeHeader(f, sheet, []string{"Message"}, st); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A2", message); err != nil {
		return eris.Wrapf(err, "report: write %s", sheet)
	}
	if err := f.SetCellStyle(sheet, "A2", "A2", st.cell); err != nil {
		return eris.Wrapf(err, "report: style %s", sheet)
	}
	widths := newWidths([]string{"Message"})
	widths.observe(0, message)
	return finishSheet(f, sheet, widths)
}

func writeHeader(f *excelize.File, sheet string, cols []string, st styles) error {
	for c, col := range cols {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return eris.Wrap(err, "report: cell name")
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return eris.Wrapf(err, "report: write header %s", col)
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.header); err != nil {
			return eris.Wrapf(err, "report: style header %s", col)
		}
	}
	return nil
}

// highlightStyle picks the row tint for the comparison sheet. The confidence
// cutoff mirrors the review classifier so tinted rows and the review queue
// agree.
func highlightStyle(rec model.ItemRecord, st styles, threshold float64) int {
	if threshold <= 0 {
		threshold = pms.DefaultConfidenceThreshold
	}
	switch {
	case rec.HasSeverity(model.SeverityCritical) || rec.HasSeverity(model.SeverityError):
		return st.critical
	case rec.HasSeverity(model.SeverityWarning) || rec.Confidence() < threshold:
		return st.warning
	default:
		return st.cell
	}
}

// columnsFor returns the union of columns across the records: canonical
// columns in schema order, then pass-through columns alphabetically.
func columnsFor(records []model.ItemRecord) []string {
	present := make(map[string]bool)
	for _, rec := range records {
		for k := range rec.Columns() {
			present[k] = true
		}
	}

	var cols []string
	for _, c := range canonicalOrder {
		if present[c] {
			cols = append(cols, c)
			delete(present, c)
		}
	}

	var extras []string
	for c := range present {
		extras = append(extras, c)
	}
	sort.Strings(extras)
	return append(cols, extras...)
}

// cellValue reduces a loosely typed value to something excelize writes
// natively.
func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case string, bool, int, int64, float64, float32:
		return t
	default:
		return model.CoerceString(v)
	}
}

// colWidths accumulates per-column content widths, capped at maxColWidth.
type colWidths struct {
	w []float64
}

func newWidths(cols []string) *colWidths {
	cw := &colWidths{w: make([]float64, len(cols))}
	for i, c := range cols {
		cw.observe(i, c)
	}
	return cw
}

func (cw *colWidths) observe(col int, val any) {
	if col >= len(cw.w) {
		return
	}
	width := float64(len(model.CoerceString(val))) + 2
	if width > maxColWidth {
		width = maxColWidth
	}
	if width > cw.w[col] {
		cw.w[col] = width
	}
}

func finishSheet(f *excelize.File, sheet string, cw *colWidths) error {
	for i, width := range cw.w {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return eris.Wrap(err, "report: column name")
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return eris.Wrapf(err, "report: set width %s", name)
		}
	}
	return nil
}
