package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/nec"
	"github.com/etnz/nec/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	output   string
	strategy string
	quiet    bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "compute the capital gains and losses of Schedule NEC line 16" }
func (*gainsCmd) Usage() string {
	return `necgen gains [-o <file>] [-strategy <strategy>] [-q]

  Reduces every transfer history and trade statement of the run file, in
  order, and writes one row per disposed lot.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output CSV file, '-' for stdout. Defaults to output.gains of the run file")
	f.StringVar(&c.strategy, "strategy", "", "Lot selection strategy (fifo, highest-cost, lowest-cost) for the tax year, overriding the run file elections")
	f.BoolVar(&c.quiet, "q", false, "Do not print the summary")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ok := openConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	if c.output != "" {
		cfg.Output.Gains = c.output
	}
	if c.strategy != "" {
		s, err := nec.ParseStrategy(c.strategy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing strategy: %v\n", err)
			return subcommands.ExitUsageError
		}
		cfg.Elections[cfg.Year] = s
	}

	ty := newTaxYear(cfg, NewLogger())
	inputs, err := reduceGains(ty, cfg.Gains)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reducing trade statements: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeOutput(cfg.Output.Gains, ty.Report.WriteGainsLosses); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing gains and losses: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.quiet && cfg.Output.Gains != "-" {
		printMarkdown(renderer.RenderSummary(renderer.NewSummary("Schedule NEC line 16", ty, inputs)))
	}
	return subcommands.ExitSuccess
}
