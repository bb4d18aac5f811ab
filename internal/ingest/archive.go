package ingest

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ExtractArchive unpacks a ZIP file under destDir, recursing into nested
// ZIPs, and returns the paths of every invoice or spreadsheet file found.
// A corrupt nested archive is logged and skipped rather than failing the
// whole unpack.
func ExtractArchive(path, destDir string) ([]string, error) {
	if err := unzip(path, destDir); err != nil {
		return nil, err
	}

	var files, nested []string
	err := filepath.WalkDir(destDir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch {
		case IsArchive(p):
			nested = append(nested, p)
		case IsInvoice(p) || IsSpreadsheet(p):
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: walk %s", destDir)
	}

	for _, nz := range nested {
		nestedDir := filepath.Join(filepath.Dir(nz), uuid.NewString())
		if err := os.MkdirAll(nestedDir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "ingest: create %s", nestedDir)
		}
		more, err := ExtractArchive(nz, nestedDir)
		if err != nil {
			zap.L().Warn("skipping corrupt nested archive",
				zap.String("archive", filepath.Base(nz)),
				zap.Error(err),
			)
			continue
		}
		files = append(files, more...)
	}
	return files, nil
}

// unzip extracts one archive into destDir, rejecting entries whose paths
// escape it.
func unzip(path, destDir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return eris.Wrapf(err, "ingest: open archive %s", path)
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.Clean(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return eris.Errorf("ingest: archive entry %q escapes extraction dir", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return eris.Wrapf(err, "ingest: create %s", target)
			}
			continue
		}

		if err := extractEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return eris.Wrapf(err, "ingest: create %s", filepath.Dir(target))
	}

	src, err := f.Open()
	if err != nil {
		return eris.Wrapf(err, "ingest: open entry %s", f.Name)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return eris.Wrapf(err, "ingest: create %s", target)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return eris.Wrapf(err, "ingest: extract %s", f.Name)
	}
	return nil
}
