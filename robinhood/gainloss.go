// Package robinhood reduces Robinhood exports: the crypto order history,
// replayed through the lot inventories, and the realized gain/loss report of
// securities, where Robinhood already matched the lots.
package robinhood

import (
	"fmt"
	"io"
	"slices"

	"github.com/etnz/nec"
)

// Broker is the default account name.
const Broker = "Robinhood"

type realized struct {
	Event    string `csv:"Event"`
	Qty      string `csv:"Qty"`
	Security string `csv:"Description"`
	Open     string `csv:"Open Date"`
	Closed   string `csv:"Closed Date"`
	Proceeds string `csv:"Proceeds"`
	Cost     string `csv:"Cost"`
	Gain     string `csv:"ST G/L"`
}

// ReduceGainLoss copies the realized gain/loss report into the tax year's
// report, oldest first. Wash rows become a gain equal to the disallowed loss.
func ReduceGainLoss(ty *nec.TaxYear, r io.Reader) (nec.Tally, error) {
	var tally nec.Tally
	var rows []realized
	if err := nec.DecodeCSV(r, &rows); err != nil {
		return tally, err
	}
	slices.Reverse(rows)

	gains := make([]nec.GainLoss, 0, len(rows))
	for _, row := range rows {
		g, err := row.gainLoss()
		if err != nil {
			return tally, err
		}
		gains = append(gains, g)
	}
	for _, g := range gains {
		ty.Report.AddGainLoss(g)
		tally.Rows++
		tally.Total = tally.Total.Add(g.Net())
	}
	ty.Log.Info("reduced Robinhood gain/loss", "rows", tally.Rows, "net", tally.Total)
	return tally, nil
}

func (row realized) gainLoss() (nec.GainLoss, error) {
	acquired, err := nec.ParseAcquired(row.Open)
	if err != nil {
		return nec.GainLoss{}, err
	}
	sold, err := nec.ParseDate(row.Closed)
	if err != nil {
		return nec.GainLoss{}, err
	}
	if row.Event == "Wash" {
		disallowed, err := nec.ParseMagnitude(row.Gain)
		if err != nil {
			return nec.GainLoss{}, err
		}
		desc := fmt.Sprintf("Wash sale disallowed loss (determined by Robinhood) of %s %s", row.Qty, row.Security)
		return nec.NewWashSale(desc, acquired, sold, disallowed), nil
	}
	proceeds, err := nec.ParseMoney(row.Proceeds)
	if err != nil {
		return nec.GainLoss{}, err
	}
	cost, err := nec.ParseMoney(row.Cost)
	if err != nil {
		return nec.GainLoss{}, err
	}
	return nec.NewGainLoss(fmt.Sprintf("%s %s %s", row.Qty, row.Security, row.Event), acquired, sold, proceeds, cost), nil
}

// LoadGainLoss reduces the gain/loss report at path.
func LoadGainLoss(ty *nec.TaxYear, path string) (nec.Tally, error) {
	return nec.ReduceFile(path, func(r io.Reader) (nec.Tally, error) { return ReduceGainLoss(ty, r) })
}
