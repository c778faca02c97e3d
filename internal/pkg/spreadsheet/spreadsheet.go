// Package spreadsheet is the tabular-import collaborator boundary. It
// turns an uploaded workbook into string-keyed row maps; absent cells come
// back as empty strings, never as an error.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by the header of its column. Header
// keys are trimmed and lowercased so callers can look up columns without
// caring how the sheet author capitalized them.
type Row map[string]string

// Get returns the cell under the given header, trimmed. Missing columns
// yield "".
func (r Row) Get(header string) string {
	return strings.TrimSpace(r[strings.ToLower(strings.TrimSpace(header))])
}

// Parse reads the first sheet of an xlsx workbook. The first row is the
// header; every following row becomes a Row. Short rows are padded with
// empty cells.
func Parse(content []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}
