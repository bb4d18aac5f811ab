// Package ingest discovers and loads input files: invoice documents for the
// vision extractor and spreadsheets of already-extracted rows, including
// either packed inside (possibly nested) ZIP archives.
package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var (
	invoiceExts     = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true}
	spreadsheetExts = map[string]bool{".xlsx": true, ".xls": true, ".csv": true}
)

// IsInvoice reports whether the path looks like an invoice document.
func IsInvoice(path string) bool {
	return invoiceExts[strings.ToLower(filepath.Ext(path))]
}

// IsSpreadsheet reports whether the path looks like a tabular data file.
func IsSpreadsheet(path string) bool {
	return spreadsheetExts[strings.ToLower(filepath.Ext(path))]
}

// IsArchive reports whether the path is a ZIP archive.
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// Sources is the classified set of input files for one run.
type Sources struct {
	Invoices     []string
	Spreadsheets []string

	// WorkDir holds archive extractions; the caller removes it when done.
	WorkDir string
}

// Collect classifies the given paths, expanding directories and unpacking
// archives into a per-run work directory. Unsupported files are logged and
// ignored. Both lists come back sorted for deterministic processing order.
func Collect(paths []string) (*Sources, error) {
	workDir := filepath.Join(os.TempDir(), "pmsconv-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "ingest: create work dir")
	}

	src := &Sources{WorkDir: workDir}
	for _, p := range paths {
		if err := src.add(p); err != nil {
			return nil, err
		}
	}

	sort.Strings(src.Invoices)
	sort.Strings(src.Spreadsheets)

	zap.L().Info("collected input files",
		zap.Int("invoices", len(src.Invoices)),
		zap.Int("spreadsheets", len(src.Spreadsheets)),
	)
	return src, nil
}

func (s *Sources) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return eris.Wrapf(err, "ingest: stat %s", path)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return eris.Wrapf(err, "ingest: read dir %s", path)
		}
		for _, e := range entries {
			if err := s.add(filepath.Join(path, e.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	switch {
	case IsArchive(path):
		dest := filepath.Join(s.WorkDir, uuid.NewString())
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return eris.Wrapf(err, "ingest: create %s", dest)
		}
		files, err := ExtractArchive(path, dest)
		if err != nil {
			return err
		}
		for _, f := range files {
			s.classify(f)
		}
	default:
		s.classify(path)
	}
	return nil
}

func (s *Sources) classify(path string) {
	switch {
	case IsInvoice(path):
		s.Invoices = append(s.Invoices, path)
	case IsSpreadsheet(path):
		s.Spreadsheets = append(s.Spreadsheets, path)
	default:
		zap.L().Debug("ignoring unsupported file", zap.String("file", filepath.Base(path)))
	}
}

// Cleanup removes the archive extraction work directory.
func (s *Sources) Cleanup() {
	if s.WorkDir != "" {
		if err := os.RemoveAll(s.WorkDir); err != nil {
			zap.L().Warn("failed to remove work dir", zap.String("dir", s.WorkDir), zap.Error(err))
		}
	}
}
