// Package extract pulls line items out of invoice documents (images and
// PDFs) with a vision model. Each file is processed independently; a file
// that fails every retry yields an empty document rather than an error, so
// one bad scan never sinks a batch run.
package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/supy-ops/pms-converter/internal/config"
	"github.com/supy-ops/pms-converter/internal/model"
	"github.com/supy-ops/pms-converter/internal/pms"
	"github.com/supy-ops/pms-converter/internal/resilience"
	"github.com/supy-ops/pms-converter/internal/tax"
	"github.com/supy-ops/pms-converter/pkg/claude"
)

// Document is the result of extracting one invoice file.
type Document struct {
	File  string
	Meta  model.InvoiceMetadata
	Items []model.ItemRecord
}

// Extractor runs vision extraction over invoice files.
type Extractor struct {
	client claude.Client
	cfg    config.OracleConfig
	prompt string
}

// NewExtractor builds an extractor for one country context.
func NewExtractor(client claude.Client, cfg config.OracleConfig, country tax.Country) *Extractor {
	return &Extractor{
		client: client,
		cfg:    cfg,
		prompt: invoicePrompt(country),
	}
}

// ExtractAll processes the files on a bounded worker pool and returns one
// document per input file, in input order. Failed files come back with
// empty Items.
func (e *Extractor) ExtractAll(ctx context.Context, paths []string, workers int) []Document {
	docs, _ := pms.Dispatch(ctx, workers, paths, e.extractOne)
	return docs
}

// extractOne never fails: errors are logged and degrade to an empty
// document.
func (e *Extractor) extractOne(ctx context.Context, path string) Document {
	doc, err := e.ExtractFile(ctx, path)
	if err != nil {
		zap.L().Error("invoice extraction failed",
			zap.String("file", filepath.Base(path)),
			zap.Error(err),
		)
		return Document{File: filepath.Base(path)}
	}
	return doc
}

// ExtractFile sends one invoice document to the vision model and parses the
// line items out of the response.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (Document, error) {
	doc := Document{File: filepath.Base(path)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, eris.Wrapf(err, "extract: read %s", path)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	part := claude.ImagePart(mediaTypeFor(path), encoded)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		part = claude.DocumentPart(encoded)
	}

	req := claude.MessageRequest{
		Model:     e.cfg.Model,
		MaxTokens: e.cfg.MaxTokens,
		System:    e.prompt,
		Messages: []claude.Message{{
			Role: "user",
			Parts: []claude.ContentPart{
				claude.TextPart("Please extract all line items from this document as JSON."),
				part,
			},
		}},
	}

	retryCfg := resilience.RetryConfig{
		MaxAttempts:    e.cfg.RetryAttempts,
		InitialBackoff: e.cfg.RetryDelay,
		Strategy:       resilience.BackoffLinear,
		OnRetry:        resilience.RetryLogger("vision", "extract_invoice"),
	}

	text, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout())
		defer cancel()

		resp, err := e.client.CreateMessage(callCtx, req)
		if err != nil {
			return "", eris.Wrapf(err, "extract: vision call for %s", doc.File)
		}
		return claude.Text(resp), nil
	})
	if err != nil {
		return doc, err
	}

	meta, items, err := parseInvoice(text)
	if err != nil {
		return doc, eris.Wrapf(err, "extract: parse response for %s", doc.File)
	}

	doc.Meta = meta
	doc.Items = items
	e.stampSource(&doc)

	if len(doc.Items) == 0 {
		zap.L().Warn("no line items extracted", zap.String("file", doc.File))
	}
	return doc, nil
}

// stampSource annotates every line item with its source file and the
// supplier name from the invoice header when the line itself has none.
func (e *Extractor) stampSource(doc *Document) {
	for i := range doc.Items {
		if doc.Items[i].Extra == nil {
			doc.Items[i].Extra = make(map[string]any)
		}
		doc.Items[i].Extra["File Name"] = doc.File
		if doc.Items[i].SupplierName == "" {
			doc.Items[i].SupplierName = doc.Meta.SupplierName
		}
	}
}

// MergeItems flattens the per-file documents into one raw record set,
// preserving file order.
func MergeItems(docs []Document) []model.ItemRecord {
	var out []model.ItemRecord
	for _, doc := range docs {
		out = append(out, doc.Items...)
	}
	return out
}

func parseInvoice(text string) (model.InvoiceMetadata, []model.ItemRecord, error) {
	var payload struct {
		Meta  model.InvoiceMetadata `json:"invoice_metadata"`
		Items []model.ItemRecord    `json:"line_items"`
	}
	if err := json.Unmarshal([]byte(cleanObject(text)), &payload); err != nil {
		return model.InvoiceMetadata{}, nil, err
	}
	return payload.Meta, payload.Items, nil
}

// cleanObject strips markdown fences and extracts the JSON object.
func cleanObject(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func mediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
