package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/nec/renderer"
	"github.com/google/subcommands"
)

// dividendsCmd holds the flags for the 'dividends' subcommand.
type dividendsCmd struct {
	output string
	quiet  bool
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "compute the interest-related dividends of Schedule NEC line 1" }
func (*dividendsCmd) Usage() string {
	return `necgen dividends [-o <file>] [-q]

  Loads the exemption reference data, reduces every dividend statement of the
  run file and writes one row per dividend with its interest-related part.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output CSV file, '-' for stdout. Defaults to output.dividends of the run file")
	f.BoolVar(&c.quiet, "q", false, "Do not print the summary")
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ok := openConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	if c.output != "" {
		cfg.Output.Dividends = c.output
	}

	ty := newTaxYear(cfg, NewLogger())
	if err := loadReferences(ty, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference data: %v\n", err)
		return subcommands.ExitFailure
	}

	inputs, err := reduceDividends(ty, cfg.Dividends)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reducing dividend statements: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeOutput(cfg.Output.Dividends, ty.Report.WriteDividends); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dividends: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.quiet && cfg.Output.Dividends != "-" {
		printMarkdown(renderer.RenderSummary(renderer.NewSummary("Schedule NEC line 1", ty, inputs)))
	}
	return subcommands.ExitSuccess
}
