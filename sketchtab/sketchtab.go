// Package sketchtab models the ranked taxonomic hit tables produced by
// sketch-based classifiers such as BBTools sendsketch.sh. A report begins
// with a fixed number of preamble lines, then a tab-delimited header, then
// one hit per line, ordered from most to least confident.
package sketchtab

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// Column names that sendsketch emits and that this toolkit knows by name.
const (
	ColTaxName = "taxName"
	ColANI     = "ANI"
	ColWKID    = "WKID"
)

// Table is one sample's hit table, held fully in memory. Row order reflects
// the upstream tool's own ranking: the most confident hit comes first. A
// table with no columns at all is the valid result of reading input that
// ended before its header.
type Table struct {
	Cols []string
	Rows [][]string
}

// Len returns the number of hit rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex reports the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Cols {
		if col == name {
			return i, true
		}
	}

	return 0, false
}

// Column returns every value of the named column, in rank order.
func (t *Table) Column(name string) ([]string, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}

	vals := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		vals = append(vals, row[idx])
	}

	return vals, true
}

// Cell returns the value of the named column in the given 0-based row.
func (t *Table) Cell(row int, name string) (string, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok || row < 0 || row >= len(t.Rows) {
		return "", false
	}

	return t.Rows[row][idx], true
}

// ReadTable loads a full sketch report. Exactly skip preamble lines are
// dropped before the header; blank lines are ignored wherever they appear.
// Input that runs out before a header appears yields a valid, column-less
// Table. A hit row whose field count differs from the header's is an error.
func ReadTable(r io.Reader, skip int) (*Table, error) {
	scanner := bufio.NewScanner(r)

	for i := 0; i < skip; i++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, pfx.Err(err)
			}
			return &Table{}, nil
		}
	}

	t := &Table{}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if t.Cols == nil {
			t.Cols = fields
			continue
		}

		if len(fields) != len(t.Cols) {
			return nil, fmt.Errorf("sketchtab: hit row %d has %d fields, but the header has %d", len(t.Rows)+1, len(fields), len(t.Cols))
		}
		t.Rows = append(t.Rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return t, nil
}
