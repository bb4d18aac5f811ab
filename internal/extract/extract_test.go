package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/supy-ops/pms-converter/internal/config"
	"github.com/supy-ops/pms-converter/internal/model"
	"github.com/supy-ops/pms-converter/internal/tax"
	"github.com/supy-ops/pms-converter/pkg/claude"
)

type stubClient struct {
	mu      sync.Mutex
	reqs    []claude.MessageRequest
	respond func(req claude.MessageRequest) (*claude.MessageResponse, error)
}

func (s *stubClient) CreateMessage(_ context.Context, req claude.MessageRequest) (*claude.MessageResponse, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()
	return s.respond(req)
}

func textResponse(text string) *claude.MessageResponse {
	return &claude.MessageResponse{Content: []claude.ContentBlock{{Type: "text", Text: text}}}
}

const invoiceJSON = `{
	"invoice_metadata": {
		"invoice_number": "INV-001",
		"invoice_date": "2026-03-01",
		"supplier_name": "Gulf Foods LLC",
		"total_amount": 150.75
	},
	"line_items": [
		{"Supplier Item Name": "Tomato 5kg", "Buying Unit": "box", "Price": 30.5},
		{"Supplier Item Name": "Olive Oil 1L", "Supplier Name": "Other Trading", "Price": 45}
	]
}`

func testExtractor(client claude.Client) *Extractor {
	cfg := config.OracleConfig{
		Model:         "test-model",
		MaxTokens:     1000,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
		TimeoutSecs:   5,
	}
	return NewExtractor(client, cfg, tax.Lookup("AE"))
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractFile_Image(t *testing.T) {
	client := &stubClient{respond: func(_ claude.MessageRequest) (*claude.MessageResponse, error) {
		return textResponse(invoiceJSON), nil
	}}
	path := writeTempFile(t, "invoice.jpg", []byte("fake image bytes"))

	doc, err := testExtractor(client).ExtractFile(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if doc.Meta.InvoiceNumber != "INV-001" || doc.Meta.SupplierName != "Gulf Foods LLC" {
		t.Errorf("metadata = %+v", doc.Meta)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Items))
	}
	if doc.Items[0].SupplierName != "Gulf Foods LLC" {
		t.Errorf("header supplier should fill blank lines, got %q", doc.Items[0].SupplierName)
	}
	if doc.Items[1].SupplierName != "Other Trading" {
		t.Errorf("line-level supplier must not be overwritten, got %q", doc.Items[1].SupplierName)
	}
	if doc.Items[0].Extra["File Name"] != "invoice.jpg" {
		t.Errorf("source file not stamped: %v", doc.Items[0].Extra)
	}

	req := client.reqs[0]
	part := req.Messages[0].Parts[1]
	if part.Type != "image" || part.MediaType != "image/jpeg" {
		t.Errorf("expected jpeg image part, got %+v", part)
	}
}

func TestExtractFile_PDFUsesDocumentPart(t *testing.T) {
	client := &stubClient{respond: func(_ claude.MessageRequest) (*claude.MessageResponse, error) {
		return textResponse(invoiceJSON), nil
	}}
	path := writeTempFile(t, "invoice.PDF", []byte("%PDF-1.4 fake"))

	if _, err := testExtractor(client).ExtractFile(context.Background(), path); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if part := client.reqs[0].Messages[0].Parts[1]; part.Type != "document" {
		t.Errorf("expected document part for PDF, got %q", part.Type)
	}
}

func TestExtractFile_FencedResponse(t *testing.T) {
	client := &stubClient{respond: func(_ claude.MessageRequest) (*claude.MessageResponse, error) {
		return textResponse("```json\n" + invoiceJSON + "\n```"), nil
	}}
	path := writeTempFile(t, "invoice.png", []byte("png bytes"))

	doc, err := testExtractor(client).ExtractFile(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Errorf("fenced response not parsed, got %d items", len(doc.Items))
	}
}

func TestExtractAll_FailuresYieldEmptyDocuments(t *testing.T) {
	client := &stubClient{respond: func(req claude.MessageRequest) (*claude.MessageResponse, error) {
		return nil, errors.New("vision unavailable")
	}}
	good := writeTempFile(t, "a.jpg", []byte("x"))
	bad := filepath.Join(t.TempDir(), "missing.jpg")

	docs := testExtractor(client).ExtractAll(context.Background(), []string{good, bad}, 2)
	if len(docs) != 2 {
		t.Fatalf("expected a document per input, got %d", len(docs))
	}
	for i, doc := range docs {
		if len(doc.Items) != 0 {
			t.Errorf("doc %d should be empty on failure", i)
		}
	}
	if items := MergeItems(docs); len(items) != 0 {
		t.Errorf("merge of failed docs should be empty, got %d", len(items))
	}
}

func TestMergeItems_PreservesFileOrder(t *testing.T) {
	docs := []Document{
		{File: "b.jpg", Items: []model.ItemRecord{{SupplierItemName: "from b"}}},
		{File: "a.jpg", Items: []model.ItemRecord{{SupplierItemName: "from a"}}},
	}

	items := MergeItems(docs)
	if len(items) != 2 || items[0].SupplierItemName != "from b" {
		t.Errorf("merge order broken: %+v", items)
	}
}

func TestMediaTypeFor(t *testing.T) {
	tests := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.JPEG": "image/jpeg",
		"a.png":  "image/png",
		"a.webp": "image/webp",
		"a.bin":  "application/octet-stream",
	}
	for path, want := range tests {
		if got := mediaTypeFor(path); got != want {
			t.Errorf("mediaTypeFor(%q) = %q, want %q", path, got, want)
		}
	}
}
