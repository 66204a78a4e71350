// Package csvio owns every flat-file contract between pipeline stages. Each
// stage reads its predecessor's file through here and writes its own the
// same way; nothing else in the repo touches CSV.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a header-indexed CSV snapshot. Discovery appends rows to it and
// validation adds columns, so it stays schema-loose on purpose; the typed
// readers below are the strict views.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

func NewTable(header []string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		t.index[h] = i
	}
}

// Col returns the column position for name, or -1 when absent.
func (t *Table) Col(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Get reads a cell by column name, tolerating short rows.
func (t *Table) Get(row []string, name string) string {
	i := t.Col(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// EnsureCols appends any missing columns and pads every row to match.
func (t *Table) EnsureCols(names ...string) {
	changed := false
	for _, n := range names {
		if t.Col(n) < 0 {
			t.Header = append(t.Header, n)
			changed = true
		}
	}
	if changed {
		t.reindex()
	}
	for i, row := range t.Rows {
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows[i] = row
	}
}

// Set writes a cell on a padded row. Call EnsureCols first for new columns.
func (t *Table) Set(row []string, name, val string) {
	i := t.Col(name)
	if i < 0 || i >= len(row) {
		return
	}
	row[i] = val
}

// Append adds a row from a name→value map; unknown names are dropped.
func (t *Table) Append(vals map[string]string) {
	row := make([]string, len(t.Header))
	for name, v := range vals {
		if i := t.Col(name); i >= 0 {
			row[i] = v
		}
	}
	t.Rows = append(t.Rows, row)
}

// ReadTable loads a CSV with a header row. Ragged rows are padded rather
// than rejected; these files get hand-edited.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	t := NewTable(records[0])
	for _, row := range records[1:] {
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

var ErrEmptyFile = errors.New("csv file has no header row")

// WriteTableAtomic replaces path with the table's contents, keeping the
// previous version as .bak. The directory files hold hand-curated data, so
// a bad write must never destroy the only copy.
func WriteTableAtomic(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := writeCSV(tmp, t.Header, t.Rows); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(bak)
		_ = os.Rename(path, bak)
	}
	return os.Rename(tmp, path)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
