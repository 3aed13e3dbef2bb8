// Command necgen computes the Schedule NEC inputs of a tax year from
// brokerage exports and fund family reference data.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/nec/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	global := map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
		"v":      predict.Nothing,
	}
	output := map[string]complete.Predictor{
		"o": predict.Files("*.csv"),
		"q": predict.Nothing,
	}
	gains := map[string]complete.Predictor{
		"strategy": predict.Set{"fifo", "highest-cost", "lowest-cost"},
	}
	for k, v := range output {
		gains[k] = v
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"dividends": {Flags: output},
			"gains":     {Flags: gains},
			"show":      {Args: predict.Set{"references", "dividends", "gains", "holdings"}},
			"help":      {Args: predict.Set{"dividends", "gains", "show"}},
		},
	}
}

func main() {
	// exits when invoked by the shell to complete a line.
	completion().Complete(path.Base(os.Args[0]))

	cmd.LoadEnv()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
