// collectsketch concatenates per-sample species call tables into one table
// sorted by taxonomy.
package main

import (
	"bytes"
	"flag"
	"io/ioutil"
	"log"
	"strings"

	"github.com/carbocation/sketchid"
	"github.com/carbocation/sketchid/collate"
	_ "github.com/carbocation/sketchid/compileinfoprint"
)

func main() {
	var fileList, outputFile string

	flag.StringVar(&fileList, "files", "", "Comma-separated list of call tables to collate, each with a header row.")
	flag.StringVar(&outputFile, "output", "all_species_ids.tsv", "Path for the collated tab-delimited output.")
	flag.Parse()

	if fileList == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --files")
	}

	if err := run(strings.Split(fileList, ","), outputFile); err != nil {
		log.Fatalln(err)
	}
}

func run(paths []string, outputFile string) error {
	tables := make([]*collate.Table, 0, len(paths))
	for _, path := range paths {
		t, err := collate.ReadTable(sketchid.ExpandHome(path))
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	merged, err := collate.Merge(tables)
	if err != nil {
		return err
	}

	// Assemble the full output in memory first, so a failure partway through
	// the merge or the encoding never leaves a partial file behind.
	var buf bytes.Buffer
	if err := collate.WriteTSV(&buf, merged); err != nil {
		return err
	}

	if err := ioutil.WriteFile(sketchid.ExpandHome(outputFile), buf.Bytes(), 0666); err != nil {
		return err
	}

	log.Printf("Collated %d rows from %d tables into %s\n", len(merged.Rows), len(tables), outputFile)

	return nil
}
