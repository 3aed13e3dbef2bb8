// Package fidelity reduces the dividend section of a Fidelity statement
// into exempt dividend rows.
//
// Once flattened, every holding is a block:
//
//	AGG                 ticker or CUSIP
//	03/07/2023          one or more payments
//	$100.00
//	04/06/2023
//	$90.00
//	Subtotal
//	$190.00             the block sum, printed twice
//	$190.00
package fidelity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

// Broker is the label appended to the symbols of the rows.
const Broker = "Fidelity"

type state int

const (
	seekHolding state = iota
	payDate
	amount
	afterPayment
	subtotal
	closed
)

func (s state) String() string {
	return [...]string{"seekHolding", "payDate", "amount", "afterPayment", "subtotal", "closed"}[s]
}

type reducer struct {
	ty        *nec.TaxYear
	holding   string
	on        date.Date
	sum       nec.Money
	subtotals int
	tally     nec.Tally
}

var transitions = map[state]func(r *reducer, line string) (state, error){
	seekHolding: holdingLine,
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
		r.sum = r.sum.Add(m)
		if m.IsZero() {
			return afterPayment, nil
		}
		if d, ok := r.ty.AddDividend(r.holding, Broker, r.on, m); ok {
			r.tally.Rows++
			r.tally.Total = r.tally.Total.Add(d.Exempt)
		}
		return afterPayment, nil
	},
	afterPayment: func(r *reducer, line string) (state, error) {
		if strings.EqualFold(line, "Subtotal") {
			r.subtotals = 0
			return subtotal, nil
		}
		return nextPayment(r, line)
	},
	subtotal: func(r *reducer, line string) (state, error) {
		m, err := nec.ParseMoney(line)
		if err != nil {
			return 0, err
		}
		if !m.Equal(r.sum) {
			return 0, &nec.ParseError{Kind: "subtotal", Value: line, Err: fmt.Errorf("%s payments sum to %s", r.holding, r.sum)}
		}
		r.subtotals++
		if r.subtotals == 2 {
			return closed, nil
		}
		return subtotal, nil
	},
	// right after a block: another amount would be a third subtotal.
	closed: func(r *reducer, line string) (state, error) {
		if _, ok := r.ty.Exemptions.Resolve(line); !ok {
			if _, err := nec.ParseMoney(line); err == nil {
				return 0, &nec.ParseError{Kind: "subtotal", Value: line, Err: fmt.Errorf("%s subtotal printed more than twice", r.holding)}
			}
		}
		return holdingLine(r, line)
	},
}

// holdingLine starts a block when line names a security of the store.
func holdingLine(r *reducer, line string) (state, error) {
	if _, ok := r.ty.Exemptions.Resolve(line); !ok {
		return seekHolding, nil
	}
	r.holding, r.sum = line, nec.Money{}
	return payDate, nil
}

// nextPayment reads another payment of the same holding.
func nextPayment(r *reducer, line string) (state, error) {
	on, err := nec.ParseDate(line)
	if err != nil {
		return 0, &nec.ParseError{Kind: "statement", Value: line, Err: errors.New("want a payment date or Subtotal")}
	}
	r.on = on
	return amount, nil
}

// Reduce walks the statement lines and adds a row to the tax year's report
// for every dividend of a security with known exemption data.
//
// Blocks whose subtotal lines do not confirm the payments are rejected as
// malformed.
func Reduce(ty *nec.TaxYear, file string, lines []string) (nec.Tally, error) {
	r := &reducer{ty: ty}
	s := seekHolding
	for i, line := range lines {
		if line == "" {
			continue
		}
		next, err := transitions[s](r, line)
		if err != nil {
			return r.tally, fmt.Errorf("%s:%d: in state %v: %w", file, i+1, s, err)
		}
		s = next
	}
	if s != seekHolding && s != closed {
		return r.tally, fmt.Errorf("%s: %w", file, &nec.ParseError{Kind: "statement", Value: r.holding, Err: fmt.Errorf("truncated block in state %v", s)})
	}
	ty.Log.Info("reduced Fidelity dividends", "file", file, "rows", r.tally.Rows, "exempt", r.tally.Total)
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
