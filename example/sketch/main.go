package main

import (
	"flag"
	"log"

	"github.com/carbocation/sketchid/sketchtab"
)

func main() {
	path := flag.String("path", "", "Path to a sendsketch report")
	skip := flag.Int("skip", 2, "Preamble lines before the header row")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No path provided")
	}

	r, err := sketchtab.OpenReport(*path, *skip)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	hits := 0
	for row := r.Read(); row != nil; row = r.Read() {
		hits++
	}
	if err := r.Err(); err != nil {
		log.Fatalln(err)
	}

	log.Println(hits, "hits")
}
