package speciescall

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// WriteTSV writes calls as tab-delimited text with a sample/genus/taxonomy
// header row.
func WriteTSV(w io.Writer, calls []*Call) error {
	if err := gocsv.MarshalCSV(&calls, tabWriter(w)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteMetricTSV is WriteTSV for metric-augmented calls.
func WriteMetricTSV(w io.Writer, calls []*MetricCall) error {
	if err := gocsv.MarshalCSV(&calls, tabWriter(w)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Tell gocsv to use tab as the delimiter
func tabWriter(w io.Writer) *gocsv.SafeCSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return gocsv.NewSafeCSVWriter(cw)
}
