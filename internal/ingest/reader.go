package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/supy-ops/pms-converter/internal/model"
)

// ReadRecords loads a spreadsheet into item records. The first row is the
// header; every later row becomes one record keyed by those headers. Blank
// rows are dropped.
func ReadRecords(path string) ([]model.ItemRecord, error) {
	var rows [][]string
	var err error

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSV(path)
	} else {
		rows, err = readXLSX(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	var records []model.ItemRecord
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, err := rowToRecord(headers, row)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read %s", filepath.Base(path))
		}
		records = append(records, rec)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", filepath.Base(path))
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("ingest: %s has no sheets", filepath.Base(path))
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", filepath.Base(path))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: parse %s", filepath.Base(path))
	}
	return rows, nil
}

// rowToRecord keys the row's cells by header and routes them through the
// record's canonical-field mapping.
func rowToRecord(headers, row []string) (model.ItemRecord, error) {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		if i < len(row) {
			m[h] = strings.TrimSpace(row[i])
		}
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return model.ItemRecord{}, err
	}
	var rec model.ItemRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.ItemRecord{}, err
	}
	return rec, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
