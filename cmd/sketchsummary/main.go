// sketchsummary summarizes a collated species call table by genus, reporting
// per-genus sample counts, distinct taxonomy counts, and the mean and SD of
// the optional ANI and WKID metric columns.
package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/sketchid"
	_ "github.com/carbocation/sketchid/compileinfoprint"
	"github.com/carbocation/sketchid/speciescall"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

var STDOUT = bufio.NewWriterSize(os.Stdout, 4096)

// callRow is one row of a collated call table. The metric columns are
// optional: gocsv leaves them blank when the header lacks them.
type callRow struct {
	Sample   string `csv:"sample"`
	Genus    string `csv:"genus"`
	Taxonomy string `csv:"taxonomy"`
	ANI      string `csv:"ani"`
	WKID     string `csv:"wkid"`
}

func main() {
	defer STDOUT.Flush()

	var input, histCol string

	flag.StringVar(&input, "input", "", "Collated species call table (the output of collectsketch).")
	flag.StringVar(&histCol, "hist", "", "Metric column to plot as a histogram on stderr: ani or wkid.")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --input")
	}

	if histCol != "" && histCol != "ani" && histCol != "wkid" {
		log.Fatalf("Unrecognized -hist column %q: expected ani or wkid\n", histCol)
	}

	rows, err := readCalls(sketchid.ExpandHome(input))
	if err != nil {
		log.Fatalln(err)
	}

	if err := summarize(STDOUT, rows); err != nil {
		log.Fatalln(err)
	}

	if histCol != "" {
		if err := printHistogram(os.Stderr, rows, histCol); err != nil {
			log.Fatalln(err)
		}
	}
}

func readCalls(path string) ([]*callRow, error) {
	r, err := sketchid.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Tell gocsv to use the detected delimiter. Collated tables are
	// tab-delimited by convention, but comma variants show up in practice.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = sketchid.DetermineDelimiter(bytes.NewReader(raw))
		cr.LazyQuotes = true
		return cr
	})

	records := []*callRow{}
	if err := gocsv.UnmarshalBytes(raw, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

type genusStats struct {
	n    int
	taxa map[string]struct{}
	ani  []float64
	wkid []float64
}

func summarize(w io.Writer, rows []*callRow) error {
	byGenus := make(map[string]*genusStats)
	genera := make([]string, 0)

	for _, row := range rows {
		g, ok := byGenus[row.Genus]
		if !ok {
			g = &genusStats{taxa: make(map[string]struct{})}
			byGenus[row.Genus] = g
			genera = append(genera, row.Genus)
		}

		g.n++
		g.taxa[row.Taxonomy] = struct{}{}
		if f, ok := parseMetric(row.ANI); ok {
			g.ani = append(g.ani, f)
		}
		if f, ok := parseMetric(row.WKID); ok {
			g.wkid = append(g.wkid, f)
		}
	}

	sort.Strings(genera)

	fmt.Fprintln(w, strings.Join([]string{
		"genus",
		"n_samples",
		"n_taxa",
		"ani_mean",
		"ani_sd",
		"wkid_mean",
		"wkid_sd",
	}, "\t"))

	for _, genus := range genera {
		g := byGenus[genus]
		out := []string{genus, strconv.Itoa(g.n), strconv.Itoa(len(g.taxa))}

		for _, vals := range [][]float64{g.ani, g.wkid} {
			mean, sd, err := meanSD(vals)
			if err != nil {
				return err
			}
			out = append(out, mean, sd)
		}

		fmt.Fprintln(w, strings.Join(out, "\t"))
	}

	return nil
}

// meanSD renders the mean and standard deviation of vals, or the NA sentinel
// when a genus carried no parseable values at all.
func meanSD(vals []float64) (string, string, error) {
	data := stats.LoadRawData(vals)
	if data.Len() < 1 {
		return speciescall.NA, speciescall.NA, nil
	}

	mean, err := data.Mean()
	if err != nil {
		return "", "", err
	}

	sd, err := data.StandardDeviation()
	if err != nil {
		return "", "", err
	}

	return fmt.Sprintf("%.3f", mean), fmt.Sprintf("%.3f", sd), nil
}

// parseMetric interprets one metric cell, tolerating the trailing percent
// sign that raw sendsketch values carry. NA, blank, and unparseable cells are
// excluded from the stats rather than failing the run.
func parseMetric(val string) (float64, bool) {
	val = strings.TrimSuffix(strings.TrimSpace(val), "%")
	if val == "" || val == speciescall.NA {
		return 0, false
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

func printHistogram(w io.Writer, rows []*callRow, col string) error {
	vals := make([]float64, 0, len(rows))
	for _, row := range rows {
		cell := row.ANI
		if col == "wkid" {
			cell = row.WKID
		}
		if f, ok := parseMetric(cell); ok {
			vals = append(vals, f)
		}
	}

	if len(vals) == 0 {
		log.Printf("No parseable %s values to plot\n", col)
		return nil
	}

	fmt.Fprintf(w, "%s across %d samples:\n", col, len(vals))
	hist := histogram.Hist(10, vals)

	return histogram.Fprint(w, hist, histogram.Linear(10))
}
