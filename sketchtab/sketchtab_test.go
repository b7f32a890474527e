package sketchtab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sampleReport mimics sendsketch.sh output: a blank line and a query line
// before the header, then hits in rank order.
const sampleReport = "\n" +
	"Query: contigs.fasta\tDB: RefSeq\tSketchLen: 10000\n" +
	"WKID\tKID\tANI\tComplt\tTaxID\ttaxName\n" +
	"98.92%\t15.21%\t99.85%\t98.30%\t562\tEscherichia coli\n" +
	"91.44%\t11.07%\t97.61%\t90.12%\t199310\tEscherichia coli O157:H7\n" +
	"64.21%\t8.95%\t88.04%\t61.55%\t28901\tSalmonella enterica\n"

func TestReadTable(t *testing.T) {
	tab, err := ReadTable(strings.NewReader(sampleReport), 2)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := len(tab.Cols), 6; got != want {
		t.Fatalf("got %d columns, expected %d", got, want)
	}
	if got, want := tab.Len(), 3; got != want {
		t.Fatalf("got %d rows, expected %d", got, want)
	}

	names, ok := tab.Column(ColTaxName)
	if !ok {
		t.Fatalf("expected a %s column", ColTaxName)
	}
	if names[0] != "Escherichia coli" || names[2] != "Salmonella enterica" {
		t.Fatalf("taxName column out of rank order: %v", names)
	}
}

func TestReadTableNoPreamble(t *testing.T) {
	in := "TaxID\ttaxName\n562\tEscherichia coli\n"
	tab, err := ReadTable(strings.NewReader(in), 0)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := tab.Len(), 1; got != want {
		t.Fatalf("got %d rows, expected %d", got, want)
	}
	if name, _ := tab.Cell(0, ColTaxName); name != "Escherichia coli" {
		t.Fatalf("unexpected taxName: %q", name)
	}
}

func TestReadTableSkipsBlankLines(t *testing.T) {
	in := "preamble\npreamble\n\nTaxID\ttaxName\n\n562\tEscherichia coli\n\n"
	tab, err := ReadTable(strings.NewReader(in), 2)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := tab.Len(), 1; got != want {
		t.Fatalf("got %d rows, expected %d", got, want)
	}
}

func TestReadTableShortInputs(t *testing.T) {
	for _, v := range []struct {
		name string
		in   string
		skip int
	}{
		{"empty", "", 2},
		{"preamble only", "\nQuery: contigs.fasta\n", 2},
		{"shorter than skip", "\n", 2},
	} {
		tab, err := ReadTable(strings.NewReader(v.in), v.skip)
		if err != nil {
			t.Fatalf("%s: %v", v.name, err)
		}
		if tab.Cols != nil || tab.Len() != 0 {
			t.Fatalf("%s: expected a column-less empty table, got %+v", v.name, tab)
		}
		if _, ok := tab.Column(ColTaxName); ok {
			t.Fatalf("%s: column lookup should fail on an empty table", v.name)
		}
	}
}

func TestReadTableRaggedRow(t *testing.T) {
	in := "TaxID\ttaxName\n562\tEscherichia coli\textra field\n"
	if _, err := ReadTable(strings.NewReader(in), 0); err == nil {
		t.Fatal("expected an error for a row that does not match the header width")
	}
}

func TestColumnLookups(t *testing.T) {
	tab := &Table{
		Cols: []string{"WKID", "taxName"},
		Rows: [][]string{
			{"98.92%", "Escherichia coli"},
			{"64.21%", "Salmonella enterica"},
		},
	}

	if idx, ok := tab.ColumnIndex(ColTaxName); !ok || idx != 1 {
		t.Fatalf("ColumnIndex(%s) = %d, %v", ColTaxName, idx, ok)
	}
	if _, ok := tab.ColumnIndex("missing"); ok {
		t.Fatal("ColumnIndex should report absence")
	}

	if val, ok := tab.Cell(1, "WKID"); !ok || val != "64.21%" {
		t.Fatalf("Cell(1, WKID) = %q, %v", val, ok)
	}
	if _, ok := tab.Cell(2, "WKID"); ok {
		t.Fatal("Cell should report absence for an out-of-range row")
	}
}

func TestReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.txt")
	if err := os.WriteFile(path, []byte(sampleReport), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReport(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if got, want := len(r.Columns()), 6; got != want {
		t.Fatalf("got %d columns, expected %d", got, want)
	}

	hits := 0
	var first []string
	for row := r.Read(); row != nil; row = r.Read() {
		if hits == 0 {
			first = row
		}
		hits++
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}

	if hits != 3 {
		t.Fatalf("got %d hits, expected 3", hits)
	}
	if first[5] != "Escherichia coli" {
		t.Fatalf("unexpected rank-1 taxName: %q", first[5])
	}
}

func TestReportShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReport(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.Columns() != nil {
		t.Fatalf("expected no columns, got %v", r.Columns())
	}
	if row := r.Read(); row != nil {
		t.Fatalf("expected no hits, got %v", row)
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestReportRaggedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.txt")
	in := "TaxID\ttaxName\n562\tEscherichia coli\textra\n"
	if err := os.WriteFile(path, []byte(in), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReport(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if row := r.Read(); row != nil {
		t.Fatalf("expected nil row, got %v", row)
	}
	if err := r.Err(); err == nil {
		t.Fatal("expected an error for a ragged row")
	}
}
