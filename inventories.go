package nec

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/nec/date"
)

// Holding identifies an inventory: one asset symbol in one account.
type Holding struct {
	Account string
	Symbol  string
}

func (h Holding) String() string {
	if h.Account == "" {
		return h.Symbol
	}
	return fmt.Sprintf("%s (%s)", h.Symbol, h.Account)
}

// Inventories holds one Inventory per holding.
//
// Events of a holding must be applied in chronological order, whatever file
// they come from: an event dated before the latest one applied to the same
// holding is rejected with ErrOutOfOrder.
type Inventories struct {
	byHolding map[Holding]*Inventory
	latest    map[Holding]date.Date
}

// NewInventories returns an empty set of inventories.
func NewInventories() *Inventories {
	return &Inventories{
		byHolding: make(map[Holding]*Inventory),
		latest:    make(map[Holding]date.Date),
	}
}

// inOrder checks that an event of h on day does not predate the events
// already applied.
func (s *Inventories) inOrder(h Holding, on date.Date) error {
	if last, ok := s.latest[h]; ok && on.Before(last) {
		return fmt.Errorf("%w: %s on %s comes after an event on %s", ErrOutOfOrder, h, on, last)
	}
	return nil
}

// Inventory returns the inventory of h, creating an empty one if needed.
func (s *Inventories) Inventory(h Holding) *Inventory {
	inv, ok := s.byHolding[h]
	if !ok {
		inv = &Inventory{holding: h}
		s.byHolding[h] = inv
	}
	return inv
}

// Acquire adds a lot bought on day to the inventory of h.
func (s *Inventories) Acquire(h Holding, on date.Date, quantity Quantity, unitCost Money) error {
	if err := s.inOrder(h, on); err != nil {
		return err
	}
	if err := s.Inventory(h).Acquire(on, quantity, unitCost); err != nil {
		return err
	}
	s.latest[h] = on
	return nil
}

// Consume removes quantity units disposed of on day from the inventory of h.
func (s *Inventories) Consume(h Holding, on date.Date, quantity Quantity, strategy Strategy) ([]Consumed, error) {
	if err := s.inOrder(h, on); err != nil {
		return nil, err
	}
	consumed, err := s.Inventory(h).Consume(quantity, strategy)
	if err != nil {
		return nil, err
	}
	s.latest[h] = on
	return consumed, nil
}

// Position returns the open quantity of h.
func (s *Inventories) Position(h Holding) Quantity {
	if inv, ok := s.byHolding[h]; ok {
		return inv.Position()
	}
	return Quantity{}
}

// CheckEmpty returns an error if h still holds units. Callers use it where
// the position is known to be closed, like the end of a year for an account
// that sold everything.
func (s *Inventories) CheckEmpty(h Holding) error {
	if q := s.Position(h); !q.IsNegligible() {
		return fmt.Errorf("%s should be closed but still holds %s units", h, q)
	}
	return nil
}

// Holdings returns all holdings with an inventory, sorted by account then symbol.
func (s *Inventories) Holdings() []Holding {
	hs := make([]Holding, 0, len(s.byHolding))
	for h := range s.byHolding {
		hs = append(hs, h)
	}
	slices.SortFunc(hs, func(a, b Holding) int {
		return cmp.Or(cmp.Compare(a.Account, b.Account), cmp.Compare(a.Symbol, b.Symbol))
	})
	return hs
}

// Remainder describes what is left in a holding.
type Remainder struct {
	Holding     Holding
	Quantity    Quantity
	Cost        Money
	AverageCost Money
}

// Remaining lists the holdings that still hold units.
func (s *Inventories) Remaining() []Remainder {
	var rs []Remainder
	for _, h := range s.Holdings() {
		inv := s.byHolding[h]
		if inv.IsEmpty() {
			continue
		}
		q, c := inv.Position(), inv.Cost()
		rs = append(rs, Remainder{Holding: h, Quantity: q, Cost: c, AverageCost: c.Div(q)})
	}
	return rs
}
