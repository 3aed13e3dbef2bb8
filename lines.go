package nec

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/gocarina/gocsv"
)

// ReadLines returns the trimmed lines of r. Blank lines are kept: statement
// reducers decide what a blank line means.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// OpenLines reads a statement as a list of lines.
//
// Text exports are read line by line. Excel 97 workbooks (.xls) are
// flattened: every non-empty cell of every sheet becomes a line, row by row.
func OpenLines(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return xlsLines(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

func xlsLines(path string) ([]string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	var lines []string
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				if v := strings.TrimSpace(row.Col(c)); v != "" {
					lines = append(lines, v)
				}
			}
		}
	}
	return lines, nil
}

// DecodeCSV decodes the CSV export r into out, a pointer to a slice of
// structs whose fields carry csv tags naming the columns.
func DecodeCSV(r io.Reader, out any) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	if err := gocsv.UnmarshalCSV(reader, out); err != nil {
		return &ParseError{Kind: "csv", Value: fmt.Sprintf("%T", out), Err: err}
	}
	return nil
}

// ReduceFile opens the export at path and passes it to reduce. Errors are
// prefixed with the path.
func ReduceFile(path string, reduce func(io.Reader) (Tally, error)) (Tally, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tally{}, err
	}
	defer f.Close()
	tally, err := reduce(f)
	if err != nil {
		return tally, fmt.Errorf("%s: %w", path, err)
	}
	return tally, nil
}
