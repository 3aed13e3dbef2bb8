package morganstanley

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
	"github.com/google/go-cmp/cmp"
)

func readLines(t *testing.T, s string) []string {
	t.Helper()
	lines, err := nec.ReadLines(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return lines
}

func newTaxYear(t *testing.T) *nec.TaxYear {
	t.Helper()
	ty := nec.NewTaxYear(2023)
	s := ty.Exemptions
	for _, err := range []error{
		s.SetMonthly("AGG", "464287226", date.New(2023, time.March, 7), 0.95, "ishares"),
		s.SetInterest("BND", "921937835", date.New(2023, time.March, 31), nec.M(0.15), "vanguard"),
		s.SetDividend("BND", date.New(2023, time.March, 31), nec.M(0.2)),
		s.DeclareMonthly("EMB", "464288281", "ishares"),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return ty
}

const statement = `Dividend detail
Security
464287226
03/07/2023
$100.00
VANGUARD TOTAL BOND
921937835
03/31/2023
$40.00
464288281
03/07/2023
$12.00
921937835
04/30/2023
$0.00
Total
$152.00
`

func TestReduce(t *testing.T) {
	ty := newTaxYear(t)
	tally, err := Reduce(ty, "ms.txt", readLines(t, statement))
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	want := []nec.DividendExemption{
		nec.NewDividendExemption("AGG (Morgan Stanley)", date.New(2023, time.March, 7), nec.M(100), 0.95),
		nec.NewDividendExemption("BND (Morgan Stanley)", date.New(2023, time.March, 31), nec.M(40), 0.75),
	}
	if diff := cmp.Diff(want, ty.Report.Dividends()); diff != "" {
		t.Errorf("Dividends() mismatch (-want +got):\n%s", diff)
	}
	if tally.Rows != 2 || !tally.Total.Equal(nec.M(125)) {
		t.Errorf("Reduce() = %v, want 2 rows, total 125", tally)
	}
	// EMB has no percentage for March: warned and skipped.
	if w := ty.Report.Warnings(); len(w) != 1 || !strings.Contains(w[0], "464288281") {
		t.Errorf("Warnings() = %q", w)
	}
}

func TestReduce_Errors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"bad date", "464287226\nsoon\n$1.00\n"},
		{"bad amount", "464287226\n03/07/2023\nlots\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ty := newTaxYear(t)
			_, err := Reduce(ty, "ms.txt", readLines(t, tc.data))
			if !errors.Is(err, nec.ErrParse) {
				t.Errorf("Reduce() error = %v, want ErrParse", err)
			}
			if n := len(ty.Report.Dividends()); n != 0 {
				t.Errorf("Reduce() wrote %d rows", n)
			}
		})
	}
}
