package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Table is an in-memory tabular dataset: a header row plus string-valued
// data rows. Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return len(t.Rows), len(t.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the raw string values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Numeric parses the named column as float64. The second return is false if
// the column is missing or any cell fails to parse.
func (t *Table) Numeric(name string) ([]float64, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// NumericColumns returns the names of columns where every cell parses as a
// number, in table order. Tables with no rows have no numeric columns.
func (t *Table) NumericColumns() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	var out []string
	for _, name := range t.Columns {
		if _, ok := t.Numeric(name); ok {
			out = append(out, name)
		}
	}
	return out
}

// Load reads a CSV file into a cleaned Table: duplicate rows and rows with
// missing (empty) cells are dropped. A UTF-8 BOM on the header is tolerated.
// On any load failure the error is logged and an empty table is returned, so
// callers can treat a bad file like an empty one.
func Load(path string, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}

	t, err := load(path)
	if err != nil {
		logger.Error("failed to load dataset",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return &Table{}
	}

	rows, cols := t.Shape()
	logger.Info("loaded dataset",
		slog.String("path", path),
		slog.Int("rows", rows),
		slog.Int("columns", cols))
	return t
}

func load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	// Strip UTF-8 BOM so the first header cell parses cleanly.
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	t := &Table{Columns: header}
	seen := make(map[string]bool, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(rec))
		complete := true
		for i, cell := range rec {
			row[i] = strings.TrimSpace(cell)
			if row[i] == "" {
				complete = false
			}
		}
		if !complete {
			continue
		}
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// WriteCSV writes the table to path, creating parent directories. With bom
// set, a UTF-8 BOM is prefixed so Excel recognizes the encoding.
func (t *Table) WriteCSV(path string, bom bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if bom {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}
