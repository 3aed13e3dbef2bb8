// Package flatrate loads fund families that publish a single interest-related
// percentage per fund for the whole year.
//
// The file is a CSV with the columns Symbol, CUSIP, Percentage. The header
// line and the CUSIP column are optional, percentages are either "12.34%" or
// a plain fraction "0.1234".
package flatrate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/nec"
)

// Provider is the name under which symbols are registered in the store.
const Provider = "flatrate"

// Rate is one line of the file.
type Rate struct {
	Symbol   string
	CUSIP    string
	Fraction nec.Fraction
}

// Load reads the file at path into the tax year's exemption store.
func Load(ty *nec.TaxYear, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rates, err := Parse(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, r := range rates {
		if err := ty.Exemptions.SetFlat(r.Symbol, r.CUSIP, r.Fraction, Provider); err != nil {
			return err
		}
	}
	ty.Log.Info("loaded flat rates", "file", path, "symbols", len(rates))
	return nil
}

// Parse reads the rates from r.
func Parse(r io.Reader) ([]Rate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var rates []Rate
	for line := 0; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if line == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "Symbol") {
			continue
		}

		var rate Rate
		switch len(record) {
		case 2:
			rate.Symbol = strings.TrimSpace(record[0])
		case 3:
			rate.Symbol, rate.CUSIP = strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		default:
			return nil, &nec.ParseError{Kind: "rate", Value: strings.Join(record, ","), Err: fmt.Errorf("want 2 or 3 columns, got %d", len(record))}
		}
		if rate.Symbol == "" {
			return nil, &nec.ParseError{Kind: "rate", Value: strings.Join(record, ","), Err: fmt.Errorf("missing symbol")}
		}
		rate.Fraction, err = nec.ParseFraction(record[len(record)-1])
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}
