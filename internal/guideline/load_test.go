package guideline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows into the first sheet of a new workbook.
func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "guidelines.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// TestLoadWorkbook verifies rows, expectations and skipping rules.
func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"id", "title", "exist"},
		{1, "Author byline", "Yes"},
		{2, "  Advertising ", " NO "},
		{3, "Weather section", "No Relevant"},
		{4, "Footnotes", "maybe"},
		{5, "Missing exist", ""},
		{6, "", "yes"},
	})

	items, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []Guideline{
		{Title: "Author byline", Expectation: Present, Exist: "yes"},
		{Title: "Advertising", Expectation: Absent, Exist: "no"},
		{Title: "Weather section", Expectation: NotApplicable, Exist: "no relevant"},
		{Title: "Footnotes", Expectation: Unspecified, Exist: "maybe"},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d guidelines, got %d: %+v", len(want), len(items), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("guideline %d: expected %+v, got %+v", i, want[i], items[i])
		}
	}
}

// TestLoadCSV verifies CSV sheets follow the same column rules.
func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guidelines.csv")
	payload := "Title,Exist\nSources cited,yes\nPersonal data,\nOpinion pieces,nan\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	items, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Sources cited" || items[0].Expectation != Present {
		t.Fatalf("unexpected guidelines: %+v", items)
	}
}

// TestLoadMissingColumns verifies the header must carry title and exist.
func TestLoadMissingColumns(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"title", "expected"}, {"A", "yes"}})
	_, err := Load(path)
	var columnErr *ColumnError
	if !errors.As(err, &columnErr) {
		t.Fatalf("expected column error, got %v", err)
	}
	if len(columnErr.Missing) != 1 || columnErr.Missing[0] != ColumnExist {
		t.Fatalf("unexpected missing columns: %v", columnErr.Missing)
	}
}

// TestLoadUnsupportedFormat verifies legacy formats are rejected.
func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "guidelines.xls"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

// TestParseExpectationFolding verifies exist values are case-folded.
func TestParseExpectationFolding(t *testing.T) {
	cases := map[string]Expectation{
		"YES":          Present,
		" no ":         Absent,
		"No Relevant":  NotApplicable,
		"not relevant": Unspecified,
		"":             Unspecified,
	}
	for raw, want := range cases {
		if got := ParseExpectation(raw); got != want {
			t.Fatalf("ParseExpectation(%q) = %v, want %v", raw, got, want)
		}
	}
}
