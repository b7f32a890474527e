// parsesketch resolves one sample's sendsketch output to its most likely
// genus and species, writing a single-row tab-delimited call table.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/carbocation/sketchid"
	_ "github.com/carbocation/sketchid/compileinfoprint"
	"github.com/carbocation/sketchid/sketchtab"
	"github.com/carbocation/sketchid/speciescall"
)

func main() {
	var inputFile, sampleID, outputFile string
	var skipLines int
	var withMetrics bool

	flag.StringVar(&inputFile, "file", "", "Path to the sendsketch output for one sample. May be gzip-, zip-, xz-, zlib-, or bzip2-compressed.")
	flag.StringVar(&sampleID, "id", "", "Sample identifier to report in the output.")
	flag.StringVar(&outputFile, "output", "species_id.csv", "Path for the output call table. Tab-delimited, despite the pipeline's historical .csv name.")
	flag.IntVar(&skipLines, "skip", 2, "Number of preamble lines before the header row of the sketch report.")
	flag.BoolVar(&withMetrics, "metrics", false, "Also report the rank-1 hit's ANI and WKID values.")
	flag.Parse()

	if inputFile == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --file")
	}

	if sampleID == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --id")
	}

	if err := run(inputFile, sampleID, outputFile, skipLines, withMetrics); err != nil {
		log.Fatalln(err)
	}
}

func run(inputFile, sampleID, outputFile string, skipLines int, withMetrics bool) error {
	r, err := sketchid.OpenMaybeCompressed(sketchid.ExpandHome(inputFile))
	if err != nil {
		return err
	}
	defer r.Close()

	tab, err := sketchtab.ReadTable(r, skipLines)
	if err != nil {
		return err
	}

	call := speciescall.Resolve(tab, sampleID)

	out, err := os.Create(sketchid.ExpandHome(outputFile))
	if err != nil {
		return err
	}
	defer out.Close()

	if withMetrics {
		m := call.WithMetrics(tab)
		if err := speciescall.WriteMetricTSV(out, []*speciescall.MetricCall{&m}); err != nil {
			return err
		}
	} else if err := speciescall.WriteTSV(out, []*speciescall.Call{&call}); err != nil {
		return err
	}

	log.Printf("Resolved sample %s from %d hits: genus %s, taxonomy %s\n", sampleID, tab.Len(), call.Genus, call.Taxonomy)

	return nil
}
