package model

// RowOffset converts a zero-based record index into the spreadsheet row
// number users see in the export: 1-based with one header row.
const RowOffset = 2

// ReviewEntry is a standardized record flagged for human attention,
// annotated with its export row number.
type ReviewEntry struct {
	ItemRecord
	RowNumber int
}

// DuplicatePair references two standardized rows whose canonical names are
// near-duplicates. RowA < RowB always; each unordered pair appears once.
type DuplicatePair struct {
	RowA  int
	ItemA string
	RowB  int
	ItemB string
	Score int
}

// DuplicateReport carries the detected pairs plus whether detection was
// skipped because the row count exceeded the configured ceiling. Skipped
// distinguishes "not checked" from "no duplicates found".
type DuplicateReport struct {
	Pairs   []DuplicatePair
	Skipped bool
}

// InvoiceMetadata is the per-document header block the vision extractor
// returns alongside line items.
type InvoiceMetadata struct {
	InvoiceNumber string  `json:"invoice_number"`
	InvoiceDate   string  `json:"invoice_date"`
	SupplierName  string  `json:"supplier_name"`
	TotalAmount   float64 `json:"total_amount"`
}

// PipelineResult is the output of one standardization run: three correlated
// datasets sharing the original record indices.
type PipelineResult struct {
	Standardized []ItemRecord
	Review       []ReviewEntry
	Duplicates   DuplicateReport
}

// Complete reports whether every input record produced an output record.
// A gap indicates a batch was lost to a worker crash.
func (r *PipelineResult) Complete(inputCount int) bool {
	return len(r.Standardized) == inputCount
}
