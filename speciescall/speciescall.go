// Package speciescall decides a single genus and species call for one sample
// from its ranked sketch hits.
package speciescall

import (
	"strings"
	"unicode"

	"github.com/carbocation/sketchid/sketchtab"
)

// NA marks a call whose hit table carried no usable taxName column. It is a
// designed sentinel, not an error.
const NA = "NA"

// Call is the one-row decision for a single sample. Genus and Taxonomy are
// either both real values or both NA.
type Call struct {
	Sample   string `csv:"sample"`
	Genus    string `csv:"genus"`
	Taxonomy string `csv:"taxonomy"`
}

// MetricCall is a Call augmented with the rank-1 hit's identity metrics.
type MetricCall struct {
	Sample   string `csv:"sample"`
	Genus    string `csv:"genus"`
	Taxonomy string `csv:"taxonomy"`
	ANI      string `csv:"ani"`
	WKID     string `csv:"wkid"`
}

// GenusToken returns the leading whitespace-delimited token of a taxonomy
// name, conventionally the genus of a binomial species label. Names without
// whitespace are returned whole.
func GenusToken(taxName string) string {
	if i := strings.IndexFunc(taxName, unicode.IsSpace); i >= 0 {
		return taxName[:i]
	}

	return taxName
}

// Resolve picks the most likely genus and taxonomy for one sample. The
// taxonomy is the rank-1 hit's taxName. The genus is the most frequent genus
// token across all hits; a tie goes to whichever token entered the count
// first, so the ranked order of the input decides. A table without a taxName
// column, including an empty table, yields NA for both fields.
func Resolve(tab *sketchtab.Table, sampleID string) Call {
	names, ok := tab.Column(sketchtab.ColTaxName)
	if !ok || len(names) == 0 {
		return Call{Sample: sampleID, Genus: NA, Taxonomy: NA}
	}

	// Count genus tokens with an insertion-ordered structure. Iterating a
	// plain map here would make tie outcomes nondeterministic.
	counts := make(map[string]int)
	order := make([]string, 0, len(names))
	for _, name := range names {
		token := GenusToken(name)
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	genus := order[0]
	for _, token := range order[1:] {
		if counts[token] > counts[genus] {
			genus = token
		}
	}

	return Call{Sample: sampleID, Genus: genus, Taxonomy: names[0]}
}

// WithMetrics attaches the rank-1 hit's ANI and WKID values to a call, with
// any trailing percent sign stripped. A missing column or blank cell yields
// NA.
func (c Call) WithMetrics(tab *sketchtab.Table) MetricCall {
	return MetricCall{
		Sample:   c.Sample,
		Genus:    c.Genus,
		Taxonomy: c.Taxonomy,
		ANI:      topMetric(tab, sketchtab.ColANI),
		WKID:     topMetric(tab, sketchtab.ColWKID),
	}
}

func topMetric(tab *sketchtab.Table, name string) string {
	val, ok := tab.Cell(0, name)
	if !ok {
		return NA
	}

	val = strings.TrimSuffix(strings.TrimSpace(val), "%")
	if val == "" {
		return NA
	}

	return val
}
