package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// utf8BOM survives TrimSpace, so header names strip it explicitly
const utf8BOM = "\ufeff"

// ErrNoHeader is returned when the input has no header row
var ErrNoHeader = errors.New("input has no header row")

// Read parses delimited text with a header row into a Table. Header names and
// cells are normalized on the way in.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = NormalizeColumnName(strings.TrimPrefix(name, utf8BOM))
	}

	t := New(columns)
	for index := 0; ; index++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", index, err)
		}

		row := NewRow(index)
		for i, col := range columns {
			row.Set(col, NormalizeCell(record[i]))
		}
		t.Append(row)
	}

	return t, nil
}

// ReadFile opens path and parses it with Read
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Write renders t as delimited text with a header row. Null cells are written
// as empty fields. It returns the number of data rows written.
func Write(w io.Writer, t *Table) (int, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	written := 0
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row.Get(col).Text
		}
		if err := writer.Write(record); err != nil {
			return written, fmt.Errorf("failed to write row %d: %w", row.Index, err)
		}
		written++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush output: %w", err)
	}
	return written, nil
}

// WriteFile creates or truncates path and writes t to it
func WriteFile(path string, t *Table) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := Write(f, t)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		return 0, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return n, err
}
