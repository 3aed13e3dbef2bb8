package nec

import (
	"fmt"
	"slices"

	"github.com/etnz/nec/date"
)

// Lot represents a single acquisition of units of an asset.
type Lot struct {
	Date     date.Date
	Quantity Quantity
	UnitCost Money
}

// Cost returns the total cost of the units still in the lot.
func (l Lot) Cost() Money { return l.UnitCost.Mul(l.Quantity) }

// Consumed is the part of one lot drawn by a disposal.
type Consumed struct {
	Quantity Quantity
	Cost     Money // total cost of Quantity units
	Acquired date.Date
}

// Inventory holds the open lots of one holding, in acquisition order.
// The zero value is an empty inventory.
type Inventory struct {
	holding Holding
	lots    []Lot
}

// Acquire appends a new lot at the tail of the inventory.
func (inv *Inventory) Acquire(on date.Date, quantity Quantity, unitCost Money) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("cannot acquire %s units of %s on %s: quantity must be positive", quantity, inv.holding, on)
	}
	inv.lots = append(inv.lots, Lot{Date: on, Quantity: quantity, UnitCost: unitCost})
	return nil
}

// Consume removes quantity units from the inventory, selecting lots with the
// given strategy, and returns what was drawn from each lot in the order
// consumed. Lots are split when they hold more than needed.
//
// When the inventory holds less than quantity, nothing is consumed and an
// *InsufficientInventoryError is returned.
func (inv *Inventory) Consume(quantity Quantity, strategy Strategy) ([]Consumed, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("cannot dispose of %s units of %s: quantity must be positive", quantity, inv.holding)
	}
	available := inv.Position()
	if quantity.Sub(available).GreaterThan(Quantity{value: epsilon}) {
		return nil, &InsufficientInventoryError{Holding: inv.holding, Requested: quantity, Available: available}
	}

	var consumed []Consumed
	remaining := quantity
	for !remaining.IsNegligible() && len(inv.lots) > 0 {
		i := inv.pick(strategy)
		lot := &inv.lots[i]
		take := MinQ(remaining, lot.Quantity)
		consumed = append(consumed, Consumed{Quantity: take, Cost: lot.UnitCost.Mul(take), Acquired: lot.Date})
		lot.Quantity = lot.Quantity.Sub(take)
		remaining = remaining.Sub(take)
		if lot.Quantity.IsNegligible() {
			inv.lots = slices.Delete(inv.lots, i, i+1)
		}
	}
	return consumed, nil
}

// pick returns the index of the next lot to draw from. Ties go to the oldest lot.
func (inv *Inventory) pick(strategy Strategy) int {
	best := 0
	for i := 1; i < len(inv.lots); i++ {
		switch strategy {
		case HighestCost:
			if inv.lots[i].UnitCost.GreaterThan(inv.lots[best].UnitCost) {
				best = i
			}
		case LowestCost:
			if inv.lots[i].UnitCost.LessThan(inv.lots[best].UnitCost) {
				best = i
			}
		default:
			return 0
		}
	}
	return best
}

// Position returns the total open quantity.
func (inv *Inventory) Position() Quantity {
	var total Quantity
	for _, l := range inv.lots {
		total = total.Add(l.Quantity)
	}
	return total
}

// Cost returns the total cost of the open lots.
func (inv *Inventory) Cost() Money {
	var total Money
	for _, l := range inv.lots {
		total = total.Add(l.Cost())
	}
	return total
}

// Lots returns a copy of the open lots, in acquisition order.
func (inv *Inventory) Lots() []Lot { return slices.Clone(inv.lots) }

// Len returns the number of open lots.
func (inv *Inventory) Len() int { return len(inv.lots) }

// IsEmpty reports whether the inventory holds nothing (within epsilon).
func (inv *Inventory) IsEmpty() bool { return inv.Position().IsNegligible() }
