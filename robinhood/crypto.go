package robinhood

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

// Coins lists the crypto currencies whose orders are replayed. Orders on
// other symbols are skipped with a warning.
var Coins = []string{"BTC", "ETH"}

type order struct {
	Time     string `csv:"Time Entered"`
	Symbol   string `csv:"Symbol"`
	Side     string `csv:"Side"`
	State    string `csv:"State"`
	Quantity string `csv:"Quantity"`
	Leaves   string `csv:"Leaves Quantity"`
	Notional string `csv:"Notional"`
}

type timedOrder struct {
	order
	at time.Time
}

// ReduceCrypto replays the crypto order history, oldest first, in the
// inventories of account. Sales of the tax year add one gain/loss row per
// consumed lot. Orders of later years are ignored; sales of earlier years
// only update the inventory, so a history covering several years gives the
// right lots for the tax year.
func ReduceCrypto(ty *nec.TaxYear, account string, r io.Reader) (nec.Tally, error) {
	var tally nec.Tally
	var rows []order
	if err := nec.DecodeCSV(r, &rows); err != nil {
		return tally, err
	}
	orders := make([]timedOrder, 0, len(rows))
	for _, o := range rows {
		at, err := date.ParseTime(o.Time)
		if err != nil {
			return tally, &nec.ParseError{Kind: "date", Value: o.Time, Err: err}
		}
		orders = append(orders, timedOrder{order: o, at: at})
	}
	// Robinhood lists the newest orders first.
	slices.SortStableFunc(orders, func(a, b timedOrder) int { return a.at.Compare(b.at) })

	for _, o := range orders {
		if o.State != "Filled" {
			continue
		}
		on := date.New(o.at.Date())
		if on.Year() > ty.Year {
			break
		}
		if !slices.Contains(Coins, o.Symbol) {
			ty.Warn("unsupported crypto currency", "symbol", o.Symbol, "account", account, "date", on)
			continue
		}
		leaves, err := nec.ParseQuantity(o.Leaves)
		if err != nil {
			return tally, err
		}
		if !leaves.IsZero() {
			return tally, &nec.ParseError{Kind: "order", Value: o.Leaves, Err: fmt.Errorf("filled %s order on %s has leaves", o.Symbol, on)}
		}
		quantity, err := nec.ParseQuantity(o.Quantity)
		if err != nil {
			return tally, err
		}
		notional, err := nec.ParseMoney(o.Notional)
		if err != nil {
			return tally, err
		}
		if !quantity.IsPositive() {
			return tally, &nec.ParseError{Kind: "quantity", Value: o.Quantity, Err: fmt.Errorf("must be positive")}
		}
		unit := notional.Abs().Div(quantity)
		holding := nec.Holding{Account: account, Symbol: o.Symbol}

		switch o.Side {
		case "Buy":
			if err := ty.Holdings.Acquire(holding, on, quantity, unit); err != nil {
				return tally, err
			}
		case "Sell":
			consumed, err := ty.Holdings.Consume(holding, on, quantity, ty.Strategy(on))
			if err != nil {
				return tally, fmt.Errorf("sale on %s: %w", on, err)
			}
			if on.Year() != ty.Year {
				continue
			}
			symbol := o.Symbol
			for _, g := range nec.Realize(consumed, on, unit, func(c nec.Consumed) string {
				return fmt.Sprintf("%s %s (%s)", c.Quantity.Fixed(9), symbol, account)
			}) {
				ty.Report.AddGainLoss(g)
				tally.Rows++
				tally.Total = tally.Total.Add(g.Net())
			}
		default:
			return tally, &nec.ParseError{Kind: "side", Value: o.Side}
		}
	}

	for _, coin := range Coins {
		h := nec.Holding{Account: account, Symbol: coin}
		if q := ty.Holdings.Position(h); !q.IsNegligible() {
			ty.Log.Info("remaining crypto", "holding", h, "year", ty.Year, "quantity", q, "cost", ty.Holdings.Inventory(h).Cost())
		}
	}
	ty.Log.Info("reduced Robinhood crypto", "account", account, "rows", tally.Rows, "net", tally.Total)
	return tally, nil
}

// LoadCrypto reduces the crypto order history at path.
func LoadCrypto(ty *nec.TaxYear, account, path string) (nec.Tally, error) {
	return nec.ReduceFile(path, func(r io.Reader) (nec.Tally, error) { return ReduceCrypto(ty, account, r) })
}
