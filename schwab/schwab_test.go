package schwab

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
	"github.com/google/go-cmp/cmp"
)

const export = `"Form 1099 DIV",
"1a","1b"
"$12.00","$10.00"

"Form 1099 B",
"1a","1b","1c","1d","1e","1f","1g"
"Description of property (Example 100 sh. XYZ Co.)","Date acquired","Date sold or disposed","Proceeds","Cost or other basis","Accrued market discount","Wash sale loss disallowed"
"10 SH XYZ CORP","01/05/2023","03/01/2023","800.00","1000.00","$0.00","(45.00)"
"5 SH ABC INC","VARIOUS","06/01/2023","1500.00","1000.00","$10.00","$0.00"
"Total","","","2300.00","2000.00","$10.00","$45.00"
`

func TestReduce(t *testing.T) {
	ty := nec.NewTaxYear(2023)
	tally, err := Reduce(ty, strings.NewReader(export))
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	want := []nec.GainLoss{
		nec.NewWashSale("Wash sale disallowed loss (determined by Schwab) of 10 SH XYZ CORP", date.New(2023, time.January, 5), date.New(2023, time.March, 1), nec.M(45)),
		nec.NewGainLoss("10 SH XYZ CORP", date.New(2023, time.January, 5), date.New(2023, time.March, 1), nec.M(800), nec.M(1000)),
		nec.NewGainLoss("5 SH ABC INC", date.Date{}, date.New(2023, time.June, 1), nec.M(1500), nec.M(1010)),
	}
	if diff := cmp.Diff(want, ty.Report.GainsLosses()); diff != "" {
		t.Errorf("GainsLosses() mismatch (-want +got):\n%s", diff)
	}
	// 45 - 200 + 490
	if tally.Rows != 3 || !tally.Total.Equal(nec.M(335)) {
		t.Errorf("Reduce() = %v, want 3 rows, net 335", tally)
	}
}

func TestReduce_Errors(t *testing.T) {
	if _, err := Reduce(nec.NewTaxYear(2023), strings.NewReader(`"Form 1099 DIV",`+"\n")); !errors.Is(err, nec.ErrParse) {
		t.Errorf("Reduce() without 1099-B error = %v, want ErrParse", err)
	}
	bad := strings.Replace(export, `"(45.00)"`, `"lots"`, 1)
	ty := nec.NewTaxYear(2023)
	if _, err := Reduce(ty, strings.NewReader(bad)); !errors.Is(err, nec.ErrParse) {
		t.Errorf("Reduce() error = %v, want ErrParse", err)
	}
	if n := len(ty.Report.GainsLosses()); n != 0 {
		t.Errorf("Reduce() wrote %d rows", n)
	}
}
