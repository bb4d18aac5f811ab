package pms

import (
	"github.com/supy-ops/pms-converter/internal/model"
)

// Markers stamped on records the oracle failed to produce. The fallback
// remark's CRITICAL token routes those rows into the review queue; the
// mismatch remark carries no severity token, so padded rows surface in the
// export but are not flagged for review.
const (
	mismatchItemName = "ERROR"
	mismatchRemark   = "API Response Count Mismatch - Failed to Process"
	fallbackRemark   = "CRITICAL: API Processing Failed"
)

// Reconcile forces a batch result back to a strict one-to-one shape with its
// input. A short result is padded with explicit mismatch markers and an
// over-long result is truncated, so the merged output always has one row per
// input row. Each surviving record is re-stamped with the input record's
// positional index.
func Reconcile(batch, results []model.ItemRecord) []model.ItemRecord {
	if len(results) > len(batch) {
		results = results[:len(batch)]
	}
	for len(results) < len(batch) {
		results = append(results, model.ItemRecord{
			SupplierItemName: mismatchItemName,
			Remarks:          mismatchRemark,
		})
	}
	for i := range results {
		results[i].Index = batch[i].Index
	}
	return results
}

// Fallback returns one record per input record, carrying the original fields
// with the remarks replaced by a critical processing-failure marker. Used
// when every retry for a batch has been exhausted.
func Fallback(batch []model.ItemRecord) []model.ItemRecord {
	out := make([]model.ItemRecord, len(batch))
	for i, rec := range batch {
		rec.Remarks = fallbackRemark
		out[i] = rec
	}
	return out
}
