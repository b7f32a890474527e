package sketchtab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Report reads a sketch report from disk one hit at a time, for callers that
// only need a single pass and don't want the whole table in memory.
type Report struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	cols    []string
	err     error
}

// OpenReport opens the report at path and positions the reader at its first
// hit, skipping skip preamble lines and consuming the header. A report that
// ends before its header is valid and simply has no columns and no hits.
func OpenReport(path string, skip int) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := &Report{
		path:    path,
		file:    file,
		scanner: bufio.NewScanner(file),
	}

	for i := 0; i < skip; i++ {
		if !r.scanner.Scan() {
			return r, nil
		}
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.cols = strings.Split(line, "\t")
		break
	}

	return r, nil
}

// Columns returns the report's header, nil when the input ended before a
// header appeared.
func (r *Report) Columns() []string {
	return r.cols
}

// Read returns the next hit row, or nil once the report is exhausted or a
// malformed row is encountered. Check Err after the final Read.
func (r *Report) Read() []string {
	if r.err != nil || r.cols == nil {
		return nil
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		row := strings.Split(line, "\t")
		if len(row) != len(r.cols) {
			r.err = fmt.Errorf("sketchtab: %s: hit row has %d fields, but the header has %d", r.path, len(row), len(r.cols))
			return nil
		}

		return row
	}

	return nil
}

func (r *Report) Err() error {
	if r.err != nil {
		return r.err
	}

	return r.scanner.Err()
}

func (r *Report) Close() error {
	return r.file.Close()
}
