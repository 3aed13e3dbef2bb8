package cmd

import (
	"strings"
	"testing"

	"github.com/etnz/nec"
	"github.com/google/go-cmp/cmp"
)

func TestParseConfig(t *testing.T) {
	const run = `
year: 2023
references:
  vanguard:
    - path: NRA_2023.csv
      history: history
  flatrate: [flat.csv]
  ishares: [ishares.xls]
dividends:
  - broker: morganstanley
    path: ms.xls
  - broker: fidelity
    path: fidelity.txt
gains:
  - broker: transfer
    path: transfers.csv
    account: Cash App
  - broker: cashapp
    path: cash_app_report.csv
  - broker: robinhood
    path: gainloss.csv
elections:
  2022: fifo
  2023: highest-cost
`
	c, err := ParseConfig([]byte(run))
	if err != nil {
		t.Fatalf("ParseConfig() unexpected error: %v", err)
	}

	if c.Year != 2023 {
		t.Errorf("Year = %d, want 2023", c.Year)
	}
	if diff := cmp.Diff([]Vanguard{{Path: "NRA_2023.csv", History: "history"}}, c.References.Vanguard); diff != "" {
		t.Errorf("References.Vanguard mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(nec.Elections{2022: nec.FIFO, 2023: nec.HighestCost}, c.Elections); diff != "" {
		t.Errorf("Elections mismatch (-want +got):\n%s", diff)
	}
	if c.Output.Dividends != "line1_2023.csv" || c.Output.Gains != "line16_2023.csv" {
		t.Errorf("Output = %+v, want the default file names", c.Output)
	}

	accounts := []string{}
	for _, in := range c.Gains {
		accounts = append(accounts, in.account())
	}
	if diff := cmp.Diff([]string{"Cash App", "Cash App", "Robinhood"}, accounts); diff != "" {
		t.Errorf("accounts mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	c, err := ParseConfig([]byte("year: 2024\nreferences:\n  vanguard:\n    - path: nra.csv\n"))
	if err != nil {
		t.Fatalf("ParseConfig() unexpected error: %v", err)
	}
	if got := c.References.Vanguard[0].History; got != "." {
		t.Errorf("History = %q, want %q", got, ".")
	}
	if got := c.Elections.For(2024); got != nec.FIFO {
		t.Errorf("Elections.For(2024) = %v, want %v", got, nec.FIFO)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	testCases := []struct {
		name string
		run  string
		want string
	}{
		{name: "missing year", run: "dividends: []", want: "invalid year 0"},
		{name: "unknown dividend broker", run: "year: 2023\ndividends:\n  - broker: etrade\n    path: x", want: `dividends[0]: unknown broker "etrade"`},
		{name: "unknown gain broker", run: "year: 2023\ngains:\n  - broker: morganstanley\n    path: x", want: `gains[0]: unknown broker "morganstanley"`},
		{name: "missing path", run: "year: 2023\ngains:\n  - broker: schwab", want: "gains[0]: path cannot be empty"},
		{name: "transfer without account", run: "year: 2023\ngains:\n  - broker: transfer\n    path: t.csv", want: "needs the account"},
		{name: "bad strategy", run: "year: 2023\nelections:\n  2023: lifo", want: "unknown lot selection strategy"},
		{name: "not yaml", run: "year: [", want: "invalid run file"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.run))
			if err == nil {
				t.Fatalf("ParseConfig() expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("ParseConfig() error = %q, want it to contain %q", err, tc.want)
			}
		})
	}
}
