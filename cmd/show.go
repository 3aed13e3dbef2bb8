package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/nec"
	"github.com/google/subcommands"
	"github.com/olekukonko/tablewriter"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print reference data or computed rows as a table" }
func (*showCmd) Usage() string {
	return `necgen show <references|dividends|gains|holdings>

  Runs the same computation as the dividends and gains subcommands but prints
  the result as a table instead of writing CSV files:
    references  the exemption data loaded, one row per symbol
    dividends   the line 1 rows
    gains       the line 16 rows
    holdings    the lots still open once every trade statement is reduced
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "show requires exactly one argument")
		return subcommands.ExitUsageError
	}
	what := f.Arg(0)
	switch what {
	case "references", "dividends", "gains", "holdings":
	default:
		fmt.Fprintf(os.Stderr, "cannot show %q: must be references, dividends, gains or holdings\n", what)
		return subcommands.ExitUsageError
	}

	cfg, ok := openConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	ty := newTaxYear(cfg, NewLogger())

	var err error
	switch what {
	case "references", "dividends":
		if err = loadReferences(ty, cfg); err == nil && what == "dividends" {
			_, err = reduceDividends(ty, cfg.Dividends)
		}
	case "gains", "holdings":
		_, err = reduceGains(ty, cfg.Gains)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing %s: %v\n", what, err)
		return subcommands.ExitFailure
	}

	switch what {
	case "references":
		showReferences(os.Stdout, ty.Exemptions)
	case "dividends":
		showDividends(os.Stdout, ty.Report.Dividends())
	case "gains":
		showGains(os.Stdout, ty.Report.GainsLosses())
	case "holdings":
		showHoldings(os.Stdout, ty.Holdings.Remaining())
	}
	return subcommands.ExitSuccess
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	return t
}

func showReferences(w io.Writer, s *nec.Store) {
	t := newTable(w, "Symbol", "Provider")
	for _, sym := range s.Symbols() {
		t.Append([]string{sym, s.Provider(sym)})
	}
	t.Render()
}

func showDividends(w io.Writer, rows []nec.DividendExemption) {
	t := newTable(w, "Symbol (Brokerage)", "Date", "Ordinary", "Interest %", "Exempt")
	total, exempt := nec.Money{}, nec.Money{}
	for _, d := range rows {
		t.Append([]string{d.Label, d.Date.String(), d.Ordinary.String(), d.Fraction.String(), d.Exempt.String()})
		total = total.Add(d.Ordinary)
		exempt = exempt.Add(d.Exempt)
	}
	t.SetFooter([]string{"", "Total", total.String(), "", exempt.String()})
	t.Render()
}

func showGains(w io.Writer, rows []nec.GainLoss) {
	t := newTable(w, "Description", "Acquired", "Sold", "Proceeds", "Cost", "Loss", "Gain")
	net := nec.Money{}
	for _, g := range rows {
		acquired := "VARIOUS"
		if !g.Acquired.IsZero() {
			acquired = g.Acquired.String()
		}
		t.Append([]string{g.Description, acquired, g.Sold.String(), g.Proceeds.String(), g.Cost.String(), g.Loss.String(), g.Gain.String()})
		net = net.Add(g.Net())
	}
	t.SetFooter([]string{"", "", "", "", "", "Net", net.String()})
	t.Render()
}

func showHoldings(w io.Writer, rows []nec.Remainder) {
	t := newTable(w, "Holding", "Quantity", "Cost", "Average Cost")
	for _, r := range rows {
		t.Append([]string{r.Holding.String(), r.Quantity.String(), r.Cost.String(), r.AverageCost.String()})
	}
	t.Render()
}
