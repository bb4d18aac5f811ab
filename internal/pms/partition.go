// Package pms implements the batch standardization pipeline: partitioning,
// oracle dispatch with reconciliation, the review-queue classifier, and the
// fuzzy duplicate detector.
package pms

import "github.com/supy-ops/pms-converter/internal/model"

// DefaultBatchSize is the number of records sent to the oracle per call.
const DefaultBatchSize = 10

// Partition splits records into contiguous batches of at most size records,
// preserving order. Concatenating the result reproduces the input exactly;
// every batch has length size except possibly the last. A non-positive size
// falls back to DefaultBatchSize.
func Partition(records []model.ItemRecord, size int) [][]model.ItemRecord {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if len(records) == 0 {
		return nil
	}

	batches := make([][]model.ItemRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}
