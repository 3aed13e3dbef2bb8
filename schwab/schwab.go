// Package schwab reduces the 1099-B section of a Schwab tax form export
// into capital gain/loss rows.
package schwab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/nec"
)

// Broker is the name of the broker in descriptions.
const Broker = "Schwab"

// marker is the line that opens the 1099-B section. It is followed by one
// line of box numbers, then the table.
const marker = `"Form 1099 B",`

type sale struct {
	Description string `csv:"Description of property (Example 100 sh. XYZ Co.)"`
	Acquired    string `csv:"Date acquired"`
	Sold        string `csv:"Date sold or disposed"`
	Proceeds    string `csv:"Proceeds"`
	Cost        string `csv:"Cost or other basis"`
	Discount    string `csv:"Accrued market discount"`
	Wash        string `csv:"Wash sale loss disallowed"`
}

// skipToTable advances br past the 1099-DIV, 1099-INT... sections.
func skipToTable(br *bufio.Reader) error {
	for {
		line, err := br.ReadString('\n')
		if strings.TrimSpace(line) == marker {
			break
		}
		if err == io.EOF {
			return &nec.ParseError{Kind: "statement", Value: marker, Err: errors.New("1099-B section not found")}
		}
		if err != nil {
			return err
		}
	}
	_, err := br.ReadString('\n') // box numbers
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Reduce adds the 1099-B sales to the tax year's report. A sale with a
// disallowed wash sale loss adds a gain equal to that loss before the sale
// itself. The accrued market discount is added to the cost basis.
func Reduce(ty *nec.TaxYear, r io.Reader) (nec.Tally, error) {
	var tally nec.Tally
	br := bufio.NewReader(r)
	if err := skipToTable(br); err != nil {
		return tally, err
	}
	var sales []sale
	if err := nec.DecodeCSV(br, &sales); err != nil {
		return tally, err
	}

	var gains []nec.GainLoss
	for _, s := range sales {
		if strings.TrimSpace(s.Sold) == "" {
			continue // totals
		}
		g, err := s.gainsLosses()
		if err != nil {
			return tally, err
		}
		gains = append(gains, g...)
	}
	for _, g := range gains {
		ty.Report.AddGainLoss(g)
		tally.Rows++
		tally.Total = tally.Total.Add(g.Net())
	}
	ty.Log.Info("reduced Schwab 1099-B", "rows", tally.Rows, "net", tally.Total)
	return tally, nil
}

func (s sale) gainsLosses() ([]nec.GainLoss, error) {
	acquired, err := nec.ParseAcquired(s.Acquired)
	if err != nil {
		return nil, err
	}
	sold, err := nec.ParseDate(s.Sold)
	if err != nil {
		return nil, err
	}
	wash, err := nec.ParseMagnitude(s.Wash)
	if err != nil {
		return nil, err
	}
	proceeds, err := nec.ParseMoney(s.Proceeds)
	if err != nil {
		return nil, err
	}
	cost, err := nec.ParseMoney(s.Cost)
	if err != nil {
		return nil, err
	}
	discount, err := nec.ParseMoney(s.Discount)
	if err != nil {
		return nil, err
	}

	var rows []nec.GainLoss
	if !wash.IsZero() {
		desc := fmt.Sprintf("Wash sale disallowed loss (determined by %s) of %s", Broker, s.Description)
		rows = append(rows, nec.NewWashSale(desc, acquired, sold, wash))
	}
	rows = append(rows, nec.NewGainLoss(s.Description, acquired, sold, proceeds, cost.Add(discount)))
	return rows, nil
}

// Load reduces the export at path.
func Load(ty *nec.TaxYear, path string) (nec.Tally, error) {
	return nec.ReduceFile(path, func(r io.Reader) (nec.Tally, error) { return Reduce(ty, r) })
}
