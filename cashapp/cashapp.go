// Package cashapp reduces the Bitcoin report of Cash App into capital
// gain/loss rows.
package cashapp

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

// Broker is the default account name.
const Broker = "Cash App"

const (
	boost = "Bitcoin Boost"
	buy   = "Bitcoin Buy"
	sale  = "Bitcoin Sale"
)

type row struct {
	Date     string `csv:"Date"`
	Type     string `csv:"Transaction Type"`
	Asset    string `csv:"Asset Type"`
	Quantity string `csv:"Asset Amount"`
	Price    string `csv:"Asset Price"`
	Amount   string `csv:"Amount"`
	Net      string `csv:"Net Amount"`
	Notes    string `csv:"Notes"`
}

type transaction struct {
	row
	at time.Time
}

// Reduce replays the report in chronological order in the inventory of
// account. Sales of the tax year add one gain/loss row per consumed lot;
// earlier sales only update the inventory.
//
// The report must close the position: Cash App reports start and end with
// no Bitcoin held.
func Reduce(ty *nec.TaxYear, account string, r io.Reader) (nec.Tally, error) {
	var tally nec.Tally
	var rows []row
	if err := nec.DecodeCSV(r, &rows); err != nil {
		return tally, err
	}

	txs := make([]transaction, 0, len(rows))
	for _, rw := range rows {
		at, err := date.ParseTime(rw.Date)
		if err != nil {
			return tally, &nec.ParseError{Kind: "date", Value: rw.Date, Err: err}
		}
		txs = append(txs, transaction{row: rw, at: at})
	}
	slices.SortStableFunc(txs, func(a, b transaction) int { return a.at.Compare(b.at) })

	holding := nec.Holding{Account: account, Symbol: "BTC"}
	for _, tx := range txs {
		if tx.Asset != "BTC" {
			ty.Warn("unsupported asset", "asset", tx.Asset, "account", account, "date", tx.Date)
			continue
		}
		on := date.New(tx.at.Date())
		quantity, err := nec.ParseQuantity(tx.Quantity)
		if err != nil {
			return tally, err
		}
		net, err := nec.ParseMoney(tx.Net)
		if err != nil {
			return tally, err
		}
		if !quantity.IsPositive() {
			return tally, &nec.ParseError{Kind: "quantity", Value: tx.Quantity, Err: fmt.Errorf("must be positive")}
		}

		switch tx.Type {
		case boost, buy:
			if err := ty.Holdings.Acquire(holding, on, quantity, net.Abs().Div(quantity)); err != nil {
				return tally, err
			}
		case sale:
			consumed, err := ty.Holdings.Consume(holding, on, quantity, ty.Strategy(on))
			if err != nil {
				return tally, fmt.Errorf("sale on %s: %w", on, err)
			}
			if on.Year() != ty.Year {
				continue
			}
			gains := nec.Realize(consumed, on, net.Abs().Div(quantity), func(c nec.Consumed) string {
				return fmt.Sprintf("%s BTC (%s)", c.Quantity.Fixed(9), account)
			})
			for _, g := range gains {
				ty.Report.AddGainLoss(g)
				tally.Rows++
				tally.Total = tally.Total.Add(g.Net())
			}
		default:
			return tally, &nec.ParseError{Kind: "transaction type", Value: tx.Type}
		}
	}

	if err := ty.Holdings.CheckEmpty(holding); err != nil {
		return tally, err
	}
	ty.Log.Info("reduced Cash App report", "account", account, "rows", tally.Rows, "net", tally.Total)
	return tally, nil
}

// Load reduces the report at path.
func Load(ty *nec.TaxYear, account, path string) (nec.Tally, error) {
	return nec.ReduceFile(path, func(r io.Reader) (nec.Tally, error) { return Reduce(ty, account, r) })
}
