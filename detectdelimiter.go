package sketchid

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit
// the values in the reader, assuming a CSV-like file. The sketch pipeline
// writes tab-delimited files even when they carry a .csv name, so tab wins
// over comma when the detector reports both, and tab is the fallback when it
// reports nothing.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, preferred := range []string{"\t", ","} {
		for _, delim := range delimiters {
			if delim == preferred {
				return rune(delim[0])
			}
		}
	}

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return '\t'
}
