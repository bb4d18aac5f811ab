package pms

import (
	"fmt"
	"testing"

	"github.com/supy-ops/pms-converter/internal/model"
)

func makeRecords(n int) []model.ItemRecord {
	records := make([]model.ItemRecord, n)
	for i := range records {
		records[i] = model.ItemRecord{SupplierItemName: fmt.Sprintf("item-%d", i), Index: i}
	}
	return records
}

func TestPartition_ExactMultiple(t *testing.T) {
	batches := Partition(makeRecords(20), 10)
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	for i, b := range batches {
		if len(b) != 10 {
			t.Errorf("batch %d: expected 10 records, got %d", i, len(b))
		}
	}
}

func TestPartition_Remainder(t *testing.T) {
	batches := Partition(makeRecords(23), 10)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[2]) != 3 {
		t.Errorf("expected last batch of 3, got %d", len(batches[2]))
	}
}

func TestPartition_PreservesOrder(t *testing.T) {
	records := makeRecords(25)
	batches := Partition(records, 7)

	var flat []model.ItemRecord
	for _, b := range batches {
		flat = append(flat, b...)
	}
	if len(flat) != len(records) {
		t.Fatalf("concatenation lost records: %d != %d", len(flat), len(records))
	}
	for i := range flat {
		if flat[i].SupplierItemName != records[i].SupplierItemName {
			t.Fatalf("order broken at %d: %s", i, flat[i].SupplierItemName)
		}
	}
}

func TestPartition_Empty(t *testing.T) {
	if batches := Partition(nil, 10); batches != nil {
		t.Errorf("expected nil for empty input, got %d batches", len(batches))
	}
}

func TestPartition_NonPositiveSizeFallsBack(t *testing.T) {
	batches := Partition(makeRecords(15), 0)
	if len(batches) != 2 {
		t.Errorf("expected fallback batch size %d to yield 2 batches, got %d", DefaultBatchSize, len(batches))
	}
}

func TestPartition_SingleShortBatch(t *testing.T) {
	batches := Partition(makeRecords(4), 10)
	if len(batches) != 1 || len(batches[0]) != 4 {
		t.Errorf("expected one batch of 4, got %d batches", len(batches))
	}
}
