package pms

import (
	"github.com/supy-ops/pms-converter/internal/model"
)

// DefaultConfidenceThreshold flags rows whose match score falls below it.
const DefaultConfidenceThreshold = 80

// ClassifyReview filters the standardized set down to rows needing human
// attention: any severity token in the remarks, or a confidence score below
// the threshold. Records missing a score are assumed confident and pass.
func ClassifyReview(records []model.ItemRecord, confidenceThreshold float64) []model.ReviewEntry {
	if confidenceThreshold <= 0 {
		confidenceThreshold = DefaultConfidenceThreshold
	}

	var entries []model.ReviewEntry
	for _, rec := range records {
		if !NeedsReview(rec, confidenceThreshold) {
			continue
		}
		entries = append(entries, model.ReviewEntry{
			ItemRecord: rec,
			RowNumber:  rec.Index + model.RowOffset,
		})
	}
	return entries
}

// NeedsReview is the row-level review predicate.
func NeedsReview(rec model.ItemRecord, confidenceThreshold float64) bool {
	return rec.HasSeverity(model.SeverityCritical) ||
		rec.HasSeverity(model.SeverityError) ||
		rec.HasSeverity(model.SeverityWarning) ||
		rec.Confidence() < confidenceThreshold
}
