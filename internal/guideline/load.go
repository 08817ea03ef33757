package guideline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Required column headers.
const (
	ColumnTitle = "title"
	ColumnExist = "exist"
)

// ErrUnsupportedFormat is returned for spreadsheet formats that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported guideline file format")

// ErrNoSheets is returned for workbooks without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ColumnError reports required columns missing from the header row.
type ColumnError struct {
	Missing []string
}

// Error lists the missing columns.
func (err *ColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(err.Missing, ", "))
}

// Load reads guidelines from an .xlsx/.xlsm workbook or a .csv file.
func Load(path string) ([]Guideline, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		rows, err := readWorkbook(path)
		if err != nil {
			return nil, err
		}
		return FromRows(rows)
	case ".csv":
		rows, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		return FromRows(rows)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// FromRows builds guidelines from a header row followed by data rows.
// Rows with an empty title or an empty/missing exist value are skipped.
func FromRows(rows [][]string) ([]Guideline, error) {
	if len(rows) == 0 {
		return nil, &ColumnError{Missing: []string{ColumnTitle, ColumnExist}}
	}
	titleIdx, existIdx := -1, -1
	for i, header := range rows[0] {
		switch FoldExist(strings.TrimPrefix(header, "\ufeff")) {
		case ColumnTitle:
			if titleIdx < 0 {
				titleIdx = i
			}
		case ColumnExist:
			if existIdx < 0 {
				existIdx = i
			}
		}
	}
	var missing []string
	if titleIdx < 0 {
		missing = append(missing, ColumnTitle)
	}
	if existIdx < 0 {
		missing = append(missing, ColumnExist)
	}
	if len(missing) > 0 {
		return nil, &ColumnError{Missing: missing}
	}

	guidelines := make([]Guideline, 0, len(rows)-1)
	for _, row := range rows[1:] {
		title := strings.TrimSpace(cell(row, titleIdx))
		exist := FoldExist(cell(row, existIdx))
		// Spreadsheet readers surface blank cells as "nan".
		if title == "" || exist == "" || exist == "nan" {
			continue
		}
		guidelines = append(guidelines, Guideline{
			Title:       title,
			Expectation: ParseExpectation(exist),
			Exist:       exist,
		})
	}
	return guidelines, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
