package nec

import "github.com/etnz/nec/date"

// GainLoss is one row of the capital gain/loss detail.
//
// Loss and Gain are never both positive, and Gain - Loss = Proceeds - Cost.
type GainLoss struct {
	Description string
	Acquired    date.Date // zero when the broker reports "Various"
	Sold        date.Date
	Proceeds    Money
	Cost        Money
	Loss        Money
	Gain        Money
}

// NewGainLoss splits proceeds - cost into its LOSS and GAIN columns.
func NewGainLoss(description string, acquired, sold date.Date, proceeds, cost Money) GainLoss {
	return GainLoss{
		Description: description,
		Acquired:    acquired,
		Sold:        sold,
		Proceeds:    proceeds,
		Cost:        cost,
		Loss:        positive(cost.Sub(proceeds)),
		Gain:        positive(proceeds.Sub(cost)),
	}
}

// NewWashSale records a loss disallowed by the broker as a gain: the sales
// price is zero and the cost basis is the negated disallowed amount.
func NewWashSale(description string, acquired, sold date.Date, disallowed Money) GainLoss {
	return NewGainLoss(description, acquired, sold, Money{}, disallowed.Abs().Neg())
}

// Net returns Gain - Loss.
func (g GainLoss) Net() Money { return g.Gain.Sub(g.Loss) }

// Realize turns the lots consumed by a sale at unitPrice into gain/loss
// rows, one per lot. describe returns the description of each row.
func Realize(consumed []Consumed, sold date.Date, unitPrice Money, describe func(Consumed) string) []GainLoss {
	rows := make([]GainLoss, 0, len(consumed))
	for _, c := range consumed {
		rows = append(rows, NewGainLoss(describe(c), c.Acquired, sold, unitPrice.Mul(c.Quantity), c.Cost))
	}
	return rows
}
