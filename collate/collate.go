// Package collate merges per-sample species call tables into one table
// sorted by taxonomy.
package collate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/carbocation/sketchid"
)

// ColTaxonomy is the call-table column the merge is keyed on.
const ColTaxonomy = "taxonomy"

// Table is one delimited call table held fully in memory. Path is carried
// for diagnostics only.
type Table struct {
	Path string
	Cols []string
	Rows [][]string
}

// ReadTable loads the call table at path. Compressed inputs are transparently
// decompressed, and the delimiter is sniffed with tab preferred. The first
// record is the header; an input without even a header is an error.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, err := sketchid.MaybeDecompressReadCloserFromFile(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := sketchid.DetermineDelimiter(r)

	// The decompressed reader cannot seek, so rewind the file and decompress
	// again now that the delimiter is known.
	if _, err := f.Seek(0, 0); err != nil {
		return nil, pfx.Err(err)
	}
	r, err = sketchid.MaybeDecompressReadCloserFromFile(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	cr := csv.NewReader(r)
	cr.Comma = delim

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("collate: %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("collate: %s has no header row", path)
	}

	return &Table{Path: path, Cols: records[0], Rows: records[1:]}, nil
}

// Merge concatenates the given tables and sorts the combined rows ascending
// by their taxonomy value. Every table must carry exactly the first table's
// header. The sort is stable, so rows with equal taxonomy keep their
// concatenation order, and the NA sentinel sorts by its lexical value like
// any other string. Rows are never deduplicated.
func Merge(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("collate: no input tables")
	}

	first := tables[0]
	for _, t := range tables[1:] {
		if err := sameColumns(first, t); err != nil {
			return nil, err
		}
	}

	taxCol, ok := columnIndex(first.Cols, ColTaxonomy)
	if !ok {
		return nil, fmt.Errorf("collate: %s has no %q column to sort by", first.Path, ColTaxonomy)
	}

	merged := &Table{Cols: first.Cols}
	for _, t := range tables {
		merged.Rows = append(merged.Rows, t.Rows...)
	}

	sort.SliceStable(merged.Rows, func(i, j int) bool {
		return merged.Rows[i][taxCol] < merged.Rows[j][taxCol]
	})

	return merged, nil
}

// WriteTSV writes the table as tab-delimited text, header first.
func WriteTSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Cols); err != nil {
		return pfx.Err(err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func columnIndex(cols []string, name string) (int, bool) {
	for i, col := range cols {
		if col == name {
			return i, true
		}
	}

	return 0, false
}

func sameColumns(want, got *Table) error {
	if len(got.Cols) != len(want.Cols) {
		return fmt.Errorf("collate: %s has %d columns, but %s has %d", got.Path, len(got.Cols), want.Path, len(want.Cols))
	}

	for i := range want.Cols {
		if got.Cols[i] != want.Cols[i] {
			return fmt.Errorf("collate: column %d of %s is %q, but %s has %q", i, got.Path, got.Cols[i], want.Path, want.Cols[i])
		}
	}

	return nil
}
