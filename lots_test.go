package nec

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestInventory_Consume_FIFO(t *testing.T) {
	var inv Inventory
	if err := inv.Acquire(day(time.January, 1), Q(10), USD(100)); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := inv.Acquire(day(time.February, 1), Q(5), USD(300)); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	got, err := inv.Consume(Q(12), FIFO)
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	want := []Consumed{
		{Quantity: Q(10), Cost: USD(1000), Acquired: day(time.January, 1)},
		{Quantity: Q(2), Cost: USD(600), Acquired: day(time.February, 1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Consume() mismatch (-want +got):\n%s", diff)
	}

	lots := inv.Lots()
	if len(lots) != 1 {
		t.Fatalf("len(Lots()) = %d, want 1", len(lots))
	}
	if !lots[0].Quantity.Equal(Q(3)) || !lots[0].UnitCost.Equal(USD(300)) {
		t.Errorf("remaining lot = %v @ %v, want 3 @ 300", lots[0].Quantity, lots[0].UnitCost)
	}
}

func TestInventory_Consume_AverageCost(t *testing.T) {
	var inv Inventory
	inv.Acquire(day(time.January, 3), Q(4), USD(10))
	inv.Acquire(day(time.January, 4), Q(6), USD(20))
	inv.Acquire(day(time.January, 5), Q(2), USD(40))

	consumed, err := inv.Consume(Q(11), FIFO)
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	var q Quantity
	var cost Money
	for i, c := range consumed {
		q = q.Add(c.Quantity)
		cost = cost.Add(c.Cost)
		if i > 0 && c.Acquired.Before(consumed[i-1].Acquired) {
			t.Errorf("lot of %s consumed after lot of %s", c.Acquired, consumed[i-1].Acquired)
		}
	}
	if !q.Equal(Q(11)) {
		t.Errorf("consumed quantity = %v, want 11", q)
	}
	// 4*10 + 6*20 + 1*40
	if !cost.Equal(USD(200)) {
		t.Errorf("consumed cost = %v, want 200", cost)
	}
}

func TestInventory_Consume_RoundTrip(t *testing.T) {
	var inv Inventory
	inv.Acquire(day(time.March, 1), Q(0.1), USD(20000))
	inv.Acquire(day(time.March, 2), Q(0.2), USD(21000))
	inv.Acquire(day(time.March, 3), Q(0.3), USD(22000))

	for _, s := range []Strategy{FIFO, HighestCost, LowestCost} {
		var inv2 Inventory
		for _, l := range inv.Lots() {
			inv2.Acquire(l.Date, l.Quantity, l.UnitCost)
		}
		consumed, err := inv2.Consume(Q(0.6), s)
		if err != nil {
			t.Fatalf("Consume(%v) error = %v", s, err)
		}
		var total Quantity
		for _, c := range consumed {
			total = total.Add(c.Quantity)
		}
		if !total.Equal(Q(0.6)) {
			t.Errorf("Consume(%v) total = %v, want 0.6", s, total)
		}
		if !inv2.IsEmpty() || inv2.Len() != 0 {
			t.Errorf("Consume(%v) left %d lots", s, inv2.Len())
		}
	}
}

func TestInventory_Consume_Negligible(t *testing.T) {
	var inv Inventory
	inv.Acquire(day(time.March, 1), Q(1), USD(10))
	// A rounding residue below epsilon is not a shortage.
	if _, err := inv.Consume(Q(1.00000000001), FIFO); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if inv.Len() != 0 {
		t.Errorf("Len() = %d, want 0", inv.Len())
	}
}

func TestInventory_Consume_Insufficient(t *testing.T) {
	inv := Inventory{holding: Holding{Account: "Cash App", Symbol: "BTC"}}
	inv.Acquire(day(time.January, 1), Q(1), USD(100))
	inv.Acquire(day(time.January, 2), Q(1), USD(200))

	_, err := inv.Consume(Q(3), HighestCost)
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("Consume() error = %v, want ErrInsufficientInventory", err)
	}
	var ie *InsufficientInventoryError
	if !errors.As(err, &ie) {
		t.Fatalf("Consume() error is %T, want *InsufficientInventoryError", err)
	}
	if !ie.Available.Equal(Q(2)) || !ie.Requested.Equal(Q(3)) {
		t.Errorf("error = %v, want 3 requested and 2 available", ie)
	}
	if inv.Len() != 2 || !inv.Position().Equal(Q(2)) {
		t.Errorf("inventory was modified by a failed Consume: %d lots, %v units", inv.Len(), inv.Position())
	}
}

func TestInventory_Consume_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		quantity float64
		want     []Consumed
		left     []float64 // unit costs of the remaining lots in order
	}{
		{
			name:     "highest cost",
			strategy: HighestCost,
			quantity: 3,
			want: []Consumed{
				{Quantity: Q(2), Cost: USD(600), Acquired: day(time.February, 1)},
				{Quantity: Q(1), Cost: USD(200), Acquired: day(time.March, 1)},
			},
			left: []float64{100, 200, 200},
		},
		{
			name:     "lowest cost",
			strategy: LowestCost,
			quantity: 3,
			want: []Consumed{
				{Quantity: Q(2), Cost: USD(200), Acquired: day(time.January, 1)},
				{Quantity: Q(1), Cost: USD(200), Acquired: day(time.March, 1)},
			},
			left: []float64{300, 200, 200},
		},
		{
			name:     "fifo",
			strategy: FIFO,
			quantity: 3,
			want: []Consumed{
				{Quantity: Q(2), Cost: USD(200), Acquired: day(time.January, 1)},
				{Quantity: Q(1), Cost: USD(300), Acquired: day(time.February, 1)},
			},
			left: []float64{300, 200, 200},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var inv Inventory
			inv.Acquire(day(time.January, 1), Q(2), USD(100))
			inv.Acquire(day(time.February, 1), Q(2), USD(300))
			inv.Acquire(day(time.March, 1), Q(2), USD(200))
			inv.Acquire(day(time.April, 1), Q(2), USD(200))

			got, err := inv.Consume(Q(tc.quantity), tc.strategy)
			if err != nil {
				t.Fatalf("Consume() error = %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Consume() mismatch (-want +got):\n%s", diff)
			}
			var left []float64
			for _, l := range inv.Lots() {
				left = append(left, l.UnitCost.Decimal().InexactFloat64())
			}
			if diff := cmp.Diff(tc.left, left); diff != "" {
				t.Errorf("remaining lots mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestInventory_HighestCost_Monotonic checks that, consuming one unit at a
// time, a lot is never drawn while a costlier one is still open.
func TestInventory_HighestCost_Monotonic(t *testing.T) {
	var inv Inventory
	for i, c := range []float64{50, 10, 70, 30, 70, 20, 60} {
		inv.Acquire(day(time.January, i+1), Q(1.5), USD(c))
	}
	for inv.Position().GreaterThan(Q(1)) {
		consumed, err := inv.Consume(Q(1), HighestCost)
		if err != nil {
			t.Fatalf("Consume() error = %v", err)
		}
		for _, c := range consumed {
			unit := c.Cost.Div(c.Quantity)
			for _, l := range inv.Lots() {
				if l.UnitCost.GreaterThan(unit) {
					t.Fatalf("drew a lot at %v while a lot at %v is still open", unit, l.UnitCost)
				}
			}
		}
	}
}

func TestInventory_Acquire_Invalid(t *testing.T) {
	var inv Inventory
	if err := inv.Acquire(day(time.January, 1), Q(0), USD(1)); err == nil {
		t.Error("Acquire(0) should fail")
	}
	if err := inv.Acquire(day(time.January, 1), Q(-1), USD(1)); err == nil {
		t.Error("Acquire(-1) should fail")
	}
	if _, err := inv.Consume(Q(0), FIFO); err == nil {
		t.Error("Consume(0) should fail")
	}
}
