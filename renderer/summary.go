package renderer

import (
	"github.com/etnz/nec"
)

// Input is what a reducer produced from one input file.
type Input struct {
	Broker string
	Path   string
	Tally  nec.Tally
}

// Remaining is an open position at the end of the run.
type Remaining struct {
	Holding     string
	Quantity    string
	Cost        string
	AverageCost string
}

// Summary is the view of a run printed at the end of a command.
type Summary struct {
	Title     string
	Year      int
	Inputs    []Input
	Dividends int
	Ordinary  string
	Exempt    string
	Gains     int
	Proceeds  string
	Net       string
	Warnings  []string
	Remaining []Remaining
}

// NewSummary builds the summary of ty after the inputs were reduced.
func NewSummary(title string, ty *nec.TaxYear, inputs []Input) *Summary {
	s := &Summary{
		Title:     title,
		Year:      ty.Year,
		Inputs:    inputs,
		Dividends: len(ty.Report.Dividends()),
		Ordinary:  ty.Report.TotalOrdinary().String(),
		Exempt:    ty.Report.TotalExempt().String(),
		Gains:     len(ty.Report.GainsLosses()),
		Proceeds:  ty.Report.TotalProceeds().String(),
		Net:       ty.Report.NetGainLoss().String(),
		Warnings:  ty.Report.Warnings(),
	}
	for _, r := range ty.Holdings.Remaining() {
		s.Remaining = append(s.Remaining, Remaining{
			Holding:     r.Holding.String(),
			Quantity:    r.Quantity.String(),
			Cost:        r.Cost.String(),
			AverageCost: r.AverageCost.String(),
		})
	}
	return s
}
