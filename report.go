package nec

import (
	"fmt"
	"io"

	"github.com/etnz/nec/date"
	"github.com/gocarina/gocsv"
)

// DividendExemption is one row of the interest-related dividend detail.
type DividendExemption struct {
	Label    string // "SYM (Broker)"
	Date     date.Date
	Ordinary Money
	Fraction Fraction
	Exempt   Money
}

// NewDividendExemption computes the exempt part of an ordinary dividend.
func NewDividendExemption(label string, on date.Date, ordinary Money, f Fraction) DividendExemption {
	return DividendExemption{
		Label:    label,
		Date:     on,
		Ordinary: ordinary,
		Fraction: f,
		Exempt:   ordinary.Apply(f),
	}
}

// Report accumulates the rows of both output tables, in insertion order, and
// the warnings raised while producing them.
type Report struct {
	dividends []DividendExemption
	gains     []GainLoss
	warnings  []string
}

// NewReport returns an empty report.
func NewReport() *Report { return &Report{} }

func (r *Report) AddDividend(d DividendExemption) { r.dividends = append(r.dividends, d) }
func (r *Report) AddGainLoss(g GainLoss)          { r.gains = append(r.gains, g) }

// Warn records a recovered problem.
func (r *Report) Warn(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *Report) Dividends() []DividendExemption { return r.dividends }
func (r *Report) GainsLosses() []GainLoss        { return r.gains }
func (r *Report) Warnings() []string             { return r.warnings }

// TotalOrdinary returns the sum of the ordinary dividends.
func (r *Report) TotalOrdinary() Money {
	var total Money
	for _, d := range r.dividends {
		total = total.Add(d.Ordinary)
	}
	return total
}

// TotalExempt returns the sum of the interest-related dividends.
func (r *Report) TotalExempt() Money {
	var total Money
	for _, d := range r.dividends {
		total = total.Add(d.Exempt)
	}
	return total
}

// TotalProceeds returns the sum of the sales prices.
func (r *Report) TotalProceeds() Money {
	var total Money
	for _, g := range r.gains {
		total = total.Add(g.Proceeds)
	}
	return total
}

// NetGainLoss returns the sum of the gains minus the sum of the losses.
func (r *Report) NetGainLoss() Money {
	var total Money
	for _, g := range r.gains {
		total = total.Add(g.Net())
	}
	return total
}

type dividendRow struct {
	Label    string `csv:"Symbol (Brokerage)"`
	Date     string `csv:"Date"`
	Ordinary string `csv:"Ordinary Dividends"`
	Percent  string `csv:"Interest Percentage"`
	Exempt   string `csv:"Interest-Related Dividend"`
}

type gainLossRow struct {
	Description string `csv:"(a) Kind of property and description"`
	Acquired    string `csv:"(b) Date acquired"`
	Sold        string `csv:"(c) Date sold"`
	Proceeds    string `csv:"(d) Sales price"`
	Cost        string `csv:"(e) Cost or other basis"`
	Loss        string `csv:"(f) LOSS"`
	Gain        string `csv:"(g) GAIN"`
}

// acquired renders the acquisition date column; brokers print "VARIOUS" for
// sales covering several lots.
func acquired(d date.Date) string {
	if d.IsZero() {
		return "VARIOUS"
	}
	return d.String()
}

// WriteDividends writes the dividend detail as CSV.
func (r *Report) WriteDividends(w io.Writer) error {
	rows := make([]*dividendRow, 0, len(r.dividends))
	for _, d := range r.dividends {
		rows = append(rows, &dividendRow{
			Label:    d.Label,
			Date:     d.Date.String(),
			Ordinary: d.Ordinary.Fixed(),
			Percent:  d.Fraction.String(),
			Exempt:   d.Exempt.Fixed(),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing dividend detail: %w", err)
	}
	return nil
}

// WriteGainsLosses writes the gain/loss detail as CSV.
func (r *Report) WriteGainsLosses(w io.Writer) error {
	rows := make([]*gainLossRow, 0, len(r.gains))
	for _, g := range r.gains {
		rows = append(rows, &gainLossRow{
			Description: g.Description,
			Acquired:    acquired(g.Acquired),
			Sold:        g.Sold.String(),
			Proceeds:    g.Proceeds.Fixed(),
			Cost:        g.Cost.Fixed(),
			Loss:        g.Loss.Fixed(),
			Gain:        g.Gain.Fixed(),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing gain/loss detail: %w", err)
	}
	return nil
}
