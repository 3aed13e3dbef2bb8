// Package transfer replays the history of assets moved between accounts.
//
// A received asset opens a lot at the cost basis given by the sending
// broker. A sent asset draws lots with the strategy elected for the year of
// the transfer. A transfer is not a sale: no gain/loss row is written.
package transfer

import (
	"fmt"
	"io"
	"slices"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

const (
	Received = "Received"
	Sent     = "Sent"
)

type row struct {
	Date     string `csv:"Date"`
	Symbol   string `csv:"Symbol"`
	Side     string `csv:"Side"`
	Quantity string `csv:"Quantity"`
	Basis    string `csv:"Cost Basis"`
}

// Transfer is one line of the history.
type Transfer struct {
	Date      date.Date
	Symbol    string
	Side      string
	Quantity  nec.Quantity
	CostBasis nec.Money
}

func (r row) transfer() (Transfer, error) {
	on, err := nec.ParseDate(r.Date)
	if err != nil {
		return Transfer{}, err
	}
	if r.Side != Received && r.Side != Sent {
		return Transfer{}, &nec.ParseError{Kind: "side", Value: r.Side}
	}
	q, err := nec.ParseQuantity(r.Quantity)
	if err != nil {
		return Transfer{}, err
	}
	if !q.IsPositive() {
		return Transfer{}, &nec.ParseError{Kind: "quantity", Value: r.Quantity, Err: fmt.Errorf("must be positive")}
	}
	basis, err := nec.ParseMoney(r.Basis)
	if err != nil {
		return Transfer{}, err
	}
	return Transfer{Date: on, Symbol: r.Symbol, Side: r.Side, Quantity: q, CostBasis: basis.Abs()}, nil
}

// Parse reads the history from r, sorted by date.
func Parse(r io.Reader) ([]Transfer, error) {
	var rows []row
	if err := nec.DecodeCSV(r, &rows); err != nil {
		return nil, err
	}
	transfers := make([]Transfer, 0, len(rows))
	for _, rw := range rows {
		t, err := rw.transfer()
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	slices.SortStableFunc(transfers, func(a, b Transfer) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
	return transfers, nil
}

// Reduce replays the history in the inventories of account. The tally
// counts the transfers, its total is the cost basis that entered the
// account minus the one that left it.
func Reduce(ty *nec.TaxYear, account string, r io.Reader) (nec.Tally, error) {
	var tally nec.Tally
	transfers, err := Parse(r)
	if err != nil {
		return tally, err
	}
	for _, t := range transfers {
		if t.Date.Year() > ty.Year {
			break
		}
		h := nec.Holding{Account: account, Symbol: t.Symbol}
		switch t.Side {
		case Received:
			if err := ty.Holdings.Acquire(h, t.Date, t.Quantity, t.CostBasis.Div(t.Quantity)); err != nil {
				return tally, err
			}
			tally.Total = tally.Total.Add(t.CostBasis)
		case Sent:
			consumed, err := ty.Holdings.Consume(h, t.Date, t.Quantity, ty.Strategy(t.Date))
			if err != nil {
				return tally, fmt.Errorf("transfer on %s: %w", t.Date, err)
			}
			for _, c := range consumed {
				tally.Total = tally.Total.Sub(c.Cost)
			}
		}
		tally.Rows++
	}
	ty.Log.Info("replayed transfers", "account", account, "transfers", tally.Rows, "basis", tally.Total)
	return tally, nil
}

// Load replays the history at path.
func Load(ty *nec.TaxYear, account, path string) (nec.Tally, error) {
	return nec.ReduceFile(path, func(r io.Reader) (nec.Tally, error) { return Reduce(ty, account, r) })
}
