package cashapp

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/nec"
	"github.com/etnz/nec/date"
	"github.com/google/go-cmp/cmp"
)

const header = "Transaction ID,Date,Transaction Type,Currency,Amount,Fee,Net Amount,Asset Type,Asset Price,Asset Amount,Status,Notes\n"

// Cash App lists the newest transactions first.
const report = header + `c,2023-03-01 09:00:00 EST,Bitcoin Sale,USD,"$3,300.00",$0,"$3,300.00",BTC,"$30,000.00",0.11000000,COMPLETE,
d,2023-03-01 08:00:00 EST,Bitcoin Boost,USD,$270.00,$0,$270.00,BTC,"$30,000.00",0.00900000,COMPLETE,
b,2023-02-01 09:00:00 EST,Bitcoin Buy,USD,"-$2,000.00",$0,"-$2,000.00",BTC,"$20,000.00",0.10000000,COMPLETE,
a,2023-01-01 09:00:00 EST,Bitcoin Boost,USD,$10.00,$0,$10.00,BTC,"$10,000.00",0.00100000,COMPLETE,boost
`

func TestReduce(t *testing.T) {
	ty := nec.NewTaxYear(2023)
	tally, err := Reduce(ty, Broker, strings.NewReader(report))
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	sold := date.New(2023, time.March, 1)
	want := []nec.GainLoss{
		nec.NewGainLoss("0.001000000 BTC (Cash App)", date.New(2023, time.January, 1), sold, nec.M(30), nec.M(10)),
		nec.NewGainLoss("0.100000000 BTC (Cash App)", date.New(2023, time.February, 1), sold, nec.M(3000), nec.M(2000)),
		nec.NewGainLoss("0.009000000 BTC (Cash App)", date.New(2023, time.March, 1), sold, nec.M(270), nec.M(270)),
	}
	if diff := cmp.Diff(want, ty.Report.GainsLosses()); diff != "" {
		t.Errorf("GainsLosses() mismatch (-want +got):\n%s", diff)
	}
	if tally.Rows != 3 || !tally.Total.Equal(nec.M(1020)) {
		t.Errorf("Reduce() = %v, want 3 rows, net 1020", tally)
	}
}

func TestReduce_HighestCost(t *testing.T) {
	ty := nec.NewTaxYear(2023)
	ty.Elections[2023] = nec.HighestCost
	if _, err := Reduce(ty, Broker, strings.NewReader(report)); err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	got := ty.Report.GainsLosses()
	if len(got) != 3 || !got[0].Acquired.Equal(date.New(2023, time.March, 1)) {
		t.Errorf("GainsLosses() = %+v, want the March lot first", got)
	}
}

func TestReduce_PriorYear(t *testing.T) {
	ty := nec.NewTaxYear(2024)
	if _, err := Reduce(ty, Broker, strings.NewReader(report)); err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if n := len(ty.Report.GainsLosses()); n != 0 {
		t.Errorf("Reduce() wrote %d rows for sales of another year", n)
	}
}

func TestReduce_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		data   string
		target error
	}{
		{
			name:   "sale before buy",
			data:   header + "a,2023-01-01 09:00:00 EST,Bitcoin Sale,USD,$10.00,$0,$10.00,BTC,$1,0.1,COMPLETE,\n",
			target: nec.ErrInsufficientInventory,
		},
		{
			name:   "bad type",
			data:   header + "a,2023-01-01 09:00:00 EST,Bitcoin Gift,USD,$10.00,$0,$10.00,BTC,$1,0.1,COMPLETE,\n",
			target: nec.ErrParse,
		},
		{
			name:   "bad amount",
			data:   header + "a,2023-01-01 09:00:00 EST,Bitcoin Buy,USD,$10.00,$0,ten,BTC,$1,0.1,COMPLETE,\n",
			target: nec.ErrParse,
		},
		{
			name:   "bad date",
			data:   header + "a,someday,Bitcoin Buy,USD,$10.00,$0,$10.00,BTC,$1,0.1,COMPLETE,\n",
			target: nec.ErrParse,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ty := nec.NewTaxYear(2023)
			_, err := Reduce(ty, Broker, strings.NewReader(tc.data))
			if !errors.Is(err, tc.target) {
				t.Errorf("Reduce() error = %v, want %v", err, tc.target)
			}
			if n := len(ty.Report.GainsLosses()); n != 0 {
				t.Errorf("Reduce() wrote %d rows", n)
			}
		})
	}
}

func TestReduce_OpenPosition(t *testing.T) {
	data := header + "a,2023-01-01 09:00:00 EST,Bitcoin Buy,USD,-$10.00,$0,-$10.00,BTC,$100,0.1,COMPLETE,\n"
	if _, err := Reduce(nec.NewTaxYear(2023), Broker, strings.NewReader(data)); err == nil {
		t.Error("Reduce() should fail when the position is not closed")
	}
}
