package nec

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents an amount in U.S. dollars, the only currency on the forms.
type Money struct {
	value decimal.Decimal // as major unit value
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// String returns the amount formatted the U.S. way, e.g. $1,234.56.
func (m Money) String() string {
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, money.USD).Currency()
	return cur.Formatter().Format(m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction)).IntPart())
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value)} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value)} }
func (m Money) Decimal() decimal.Decimal        { return m.value }

// Ratio returns m/n as a fraction.
func (m Money) Ratio(n Money) Fraction { return Fraction(m.value.Div(n.value).InexactFloat64()) }

// Apply returns the part of m that the fraction f represents.
func (m Money) Apply(f Fraction) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(float64(f)))}
}

// Fixed formats the amount with two decimals and no currency sign, as the
// output tables want it.
func (m Money) Fixed() string { return m.value.StringFixed(2) }

// positive returns m when it is positive, zero otherwise.
func positive(m Money) Money {
	if m.IsPositive() {
		return m
	}
	return Money{}
}
