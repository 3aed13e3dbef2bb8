// Package ishares loads the monthly qualified interest income (QII)
// percentages published by iShares.
//
// The publication is a table, one column per month-end payment date and one
// row per fund. Once flattened to text it reads as a list of lines:
//
//	... header ...
//	CUSIP
//	01/31/2023
//	02/28/2023
//	...
//	iShares Core U.S. Aggregate Bond ETF
//	AGG
//	464287226
//	95.12%
//	N/A
//	...
package ishares

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

// Provider is the name under which symbols are registered in the store.
const Provider = "ishares"

type state int

const (
	seekHeader state = iota // skip everything until the CUSIP column header
	dates                   // month-end dates, until the first fund name
	symbol                  // ticker of the group
	cusip                   // CUSIP of the group
	values                  // one percentage or N/A per date
	name                    // fund name of the next group
)

func (s state) String() string {
	return [...]string{"seekHeader", "dates", "symbol", "cusip", "values", "name"}[s]
}

// loader holds the progress of one file.
type loader struct {
	ty     *nec.TaxYear
	file   string
	dates  []date.Date
	symbol string
	index  int // next date to read in values
	groups int
}

// transitions is the state machine: each state handles one line and
// returns the next state.
var transitions = map[state]func(l *loader, line string) (state, error){
	seekHeader: func(l *loader, line string) (state, error) {
		if line == "CUSIP" {
			return dates, nil
		}
		return seekHeader, nil
	},
	dates: func(l *loader, line string) (state, error) {
		if !unicode.IsDigit(rune(line[0])) {
			if len(l.dates) == 0 {
				return 0, &nec.ParseError{Kind: "statement", Value: line, Err: errors.New("no date column before the first fund")}
			}
			return symbol, nil // line is the first fund name
		}
		on, err := nec.ParseDate(line)
		if err != nil {
			return 0, err
		}
		l.dates = append(l.dates, on)
		return dates, nil
	},
	symbol: func(l *loader, line string) (state, error) {
		l.symbol = line
		return cusip, nil
	},
	cusip: func(l *loader, line string) (state, error) {
		if err := l.ty.Exemptions.DeclareMonthly(l.symbol, line, Provider); err != nil {
			return 0, err
		}
		l.index = 0
		l.groups++
		return values, nil
	},
	values: func(l *loader, line string) (state, error) {
		f, err := nec.ParsePercent(line)
		switch {
		case errors.Is(err, nec.ErrNotAvailable):
			// no value for this month
		case errors.Is(err, nec.ErrParse):
			// The group is short: line is the name of the next fund.
			l.short()
			return symbol, nil
		case err != nil:
			return 0, err
		default:
			if err := l.ty.Exemptions.SetMonthly(l.symbol, "", l.dates[l.index], f, Provider); err != nil {
				return 0, err
			}
		}
		l.index++
		if l.index >= len(l.dates) {
			return name, nil
		}
		return values, nil
	},
	name: func(l *loader, line string) (state, error) {
		return symbol, nil
	},
}

// short reports the current group as missing values.
func (l *loader) short() {
	l.ty.Warn("short percentage group", "symbol", l.symbol, "values", l.index, "dates", len(l.dates), "file", l.file)
}

// Read reads the flattened table lines into the tax year's exemption store.
func Read(ty *nec.TaxYear, file string, lines []string) error {
	l := &loader{ty: ty, file: file}
	s := seekHeader
	for i, line := range lines {
		if line == "" {
			continue
		}
		next, err := transitions[s](l, line)
		if err != nil {
			return fmt.Errorf("%s:%d: in state %v: %w", file, i+1, s, err)
		}
		s = next
	}
	if s == seekHeader || s == dates {
		return &nec.ParseError{Kind: "statement", Value: file, Err: errors.New("no fund found")}
	}
	if s == values {
		l.short()
	}
	ty.Log.Info("loaded iShares percentages", "file", file, "dates", len(l.dates), "funds", l.groups)
	return nil
}

// Load reads the export at path, text or .xls.
func Load(ty *nec.TaxYear, path string) error {
	lines, err := nec.OpenLines(path)
	if err != nil {
		return err
	}
	return Read(ty, path, lines)
}
