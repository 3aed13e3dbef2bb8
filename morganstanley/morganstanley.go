// Package morganstanley reduces the dividend detail of a Morgan Stanley
// statement into exempt dividend rows.
//
// The detail is exported as one field per line. A payment is three lines:
// the CUSIP of the security, the payment date and the amount.
package morganstanley

import (
	"fmt"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

// Broker is the label appended to the symbols of the rows.
const Broker = "Morgan Stanley"

type state int

const (
	seekHolding state = iota
	payDate
	amount
)

func (s state) String() string { return [...]string{"seekHolding", "payDate", "amount"}[s] }

type reducer struct {
	ty    *nec.TaxYear
	file  string
	cusip string
	on    date.Date
	tally nec.Tally
}

var transitions = map[state]func(r *reducer, line string) (state, error){
	seekHolding: func(r *reducer, line string) (state, error) {
		if !r.ty.Exemptions.IsCUSIP(line) {
			return seekHolding, nil
		}
		r.cusip = line
		return payDate, nil
	},
	payDate: func(r *reducer, line string) (state, error) {
		on, err := nec.ParseDate(line)
		if err != nil {
			return 0, err
		}
		r.on = on
		return amount, nil
	},
	amount: func(r *reducer, line string) (state, error) {
		m, err := nec.ParseMoney(line)
		if err != nil {
			return 0, err
		}
		if m.IsZero() {
			return seekHolding, nil
		}
		if d, ok := r.ty.AddDividend(r.cusip, Broker, r.on, m); ok {
			r.tally.Rows++
			r.tally.Total = r.tally.Total.Add(d.Exempt)
		}
		return seekHolding, nil
	},
}

// Reduce walks the statement lines and adds a row to the tax year's report
// for every dividend of a security with known exemption data.
func Reduce(ty *nec.TaxYear, file string, lines []string) (nec.Tally, error) {
	r := &reducer{ty: ty, file: file}
	s := seekHolding
	for i, line := range lines {
		next, err := transitions[s](r, line)
		if err != nil {
			return r.tally, fmt.Errorf("%s:%d: in state %v: %w", file, i+1, s, err)
		}
		s = next
	}
	ty.Log.Info("reduced Morgan Stanley dividends", "file", file, "rows", r.tally.Rows, "exempt", r.tally.Total)
	return r.tally, nil
}

// Load reads the statement at path, text or .xls, and reduces it.
func Load(ty *nec.TaxYear, path string) (nec.Tally, error) {
	lines, err := nec.OpenLines(path)
	if err != nil {
		return nec.Tally{}, err
	}
	return Reduce(ty, path, lines)
}
