package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/etnz/nec"
	"github.com/etnz/nec/cashapp"
	"github.com/etnz/nec/fidelity"
	"github.com/etnz/nec/flatrate"
	"github.com/etnz/nec/ishares"
	"github.com/etnz/nec/morganstanley"
	"github.com/etnz/nec/renderer"
	"github.com/etnz/nec/robinhood"
	"github.com/etnz/nec/schwab"
	"github.com/etnz/nec/transfer"
	"github.com/etnz/nec/vanguard"
)

var dividendReducers = map[string]func(ty *nec.TaxYear, path string) (nec.Tally, error){
	"morganstanley": morganstanley.Load,
	"fidelity":      fidelity.Load,
}

type gainReducer struct {
	account string // default inventory account
	load    func(ty *nec.TaxYear, account, path string) (nec.Tally, error)
}

var gainReducers = map[string]gainReducer{
	"cashapp":          {account: cashapp.Broker, load: cashapp.Load},
	"robinhood-crypto": {account: robinhood.Broker, load: robinhood.LoadCrypto},
	"robinhood": {account: robinhood.Broker, load: func(ty *nec.TaxYear, _, path string) (nec.Tally, error) {
		return robinhood.LoadGainLoss(ty, path)
	}},
	"schwab": {account: schwab.Broker, load: func(ty *nec.TaxYear, _, path string) (nec.Tally, error) {
		return schwab.Load(ty, path)
	}},
	"transfer": {load: transfer.Load},
}

// newTaxYear returns an empty run for the year and elections of c.
func newTaxYear(c *Config, log *slog.Logger) *nec.TaxYear {
	ty := nec.NewTaxYear(c.Year)
	ty.Elections = c.Elections
	ty.Log = log
	return ty
}

// loadReferences fills the exemption store of ty with every reference file of c.
func loadReferences(ty *nec.TaxYear, c *Config) error {
	var errs []error
	for _, v := range c.References.Vanguard {
		errs = append(errs, vanguard.Load(ty, v.Path, v.History))
	}
	for _, path := range c.References.FlatRate {
		errs = append(errs, flatrate.Load(ty, path))
	}
	for _, path := range c.References.IShares {
		errs = append(errs, ishares.Load(ty, path))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	ty.Log.Info("reference data loaded", "symbols", len(ty.Exemptions.Symbols()))
	return nil
}

// reduceDividends runs the dividend reducers over inputs.
// A failing file does not prevent the others from being reduced.
func reduceDividends(ty *nec.TaxYear, inputs []Input) ([]renderer.Input, error) {
	return reduce(ty, inputs, func(in Input) (nec.Tally, error) {
		return dividendReducers[in.Broker](ty, in.Path)
	})
}

// reduceGains runs the gain reducers over inputs, in order, since lots are
// acquired in the order the files are read.
func reduceGains(ty *nec.TaxYear, inputs []Input) ([]renderer.Input, error) {
	return reduce(ty, inputs, func(in Input) (nec.Tally, error) {
		return gainReducers[in.Broker].load(ty, in.account(), in.Path)
	})
}

func reduce(ty *nec.TaxYear, inputs []Input, load func(Input) (nec.Tally, error)) ([]renderer.Input, error) {
	var done []renderer.Input
	var errs []error
	for _, in := range inputs {
		tally, err := load(in)
		if err != nil {
			ty.Log.Error("cannot reduce statement", "broker", in.Broker, "file", in.Path, "error", err)
			errs = append(errs, err)
			continue
		}
		ty.Log.Info("statement reduced", "broker", in.Broker, "file", in.Path, "rows", tally.Rows, "total", tally.Total)
		done = append(done, renderer.Input{Broker: in.Broker, Path: in.Path, Tally: tally})
	}
	return done, errors.Join(errs...)
}

// writeOutput writes a report table to path, "-" meaning stdout.
func writeOutput(path string, write func(io.Writer) error) (err error) {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
