package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
)

func TestShowTables(t *testing.T) {
	ty := nec.NewTaxYear(2023)
	on := date.New(2023, time.June, 30)
	if err := ty.Exemptions.SetFlat("EMB", "", 0.5, "flatrate"); err != nil {
		t.Fatal(err)
	}
	ty.AddDividend("EMB", "Fidelity", on, nec.M(40))
	ty.Report.AddGainLoss(nec.NewGainLoss("10 sh. XYZ", date.Date{}, on, nec.M(900), nec.M(1000)))

	var b strings.Builder
	showReferences(&b, ty.Exemptions)
	showDividends(&b, ty.Report.Dividends())
	showGains(&b, ty.Report.GainsLosses())
	got := b.String()

	for _, want := range []string{"flatrate", "EMB (Fidelity)", "06/30/2023", "50.00%", "$20.00", "VARIOUS", "-$100.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("tables do not contain %q:\n%s", want, got)
		}
	}
}
