package nec

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/etnz/nec/date"
)

// TaxYear is the state of one run: the reference data, the inventories and
// the report being built. Reducers receive it explicitly; two TaxYear values
// never share anything.
type TaxYear struct {
	Year       int
	Exemptions *Store
	Holdings   *Inventories
	Report     *Report
	Elections  Elections
	Log        *slog.Logger
}

// NewTaxYear returns an empty run for year that logs nothing.
func NewTaxYear(year int) *TaxYear {
	return &TaxYear{
		Year:       year,
		Exemptions: NewStore(),
		Holdings:   NewInventories(),
		Report:     NewReport(),
		Elections:  Elections{},
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Strategy returns the lot selection strategy elected for disposals on day.
func (t *TaxYear) Strategy(on date.Date) Strategy { return t.Elections.For(on.Year()) }

// Warn logs a recovered problem and keeps it for the summary.
// args are slog key/value pairs.
func (t *TaxYear) Warn(msg string, args ...any) {
	t.Log.Warn(msg, args...)
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	t.Report.Warn("%s", b.String())
}

// AddDividend records the exemption of a dividend of id (a ticker or a
// CUSIP) paid on day through broker. When the exempt fraction is unknown the
// dividend is skipped with a warning and ok is false.
func (t *TaxYear) AddDividend(id, broker string, on date.Date, amount Money) (d DividendExemption, ok bool) {
	f, err := t.Exemptions.Lookup(id, on)
	if err != nil {
		t.Warn("dividend skipped", "security", id, "date", on, "amount", amount, "broker", broker, "reason", err)
		return DividendExemption{}, false
	}
	symbol, _ := t.Exemptions.Resolve(id)
	d = NewDividendExemption(fmt.Sprintf("%s (%s)", symbol, broker), on, amount, f)
	t.Report.AddDividend(d)
	return d, true
}

// Tally summarizes what a reducer produced from one file.
type Tally struct {
	Rows  int
	Total Money // exempt amount for dividend reducers, net gain for the others
}

func (t Tally) String() string { return fmt.Sprintf("%d rows, total %s", t.Rows, t.Total) }
