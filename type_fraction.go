package nec

import "fmt"

// Fraction is a ratio in [0,1], e.g. the interest-related part of a dividend.
type Fraction float64

// Equal compares two fractions up to 1e-6.
func (f Fraction) Equal(g Fraction) bool {
	const precision = 1e-6
	diff := f - g
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String renders the fraction as a percentage with two decimals (0.1234 is "12.34%").
func (f Fraction) String() string {
	return fmt.Sprintf("%.2f%%", float64(f)*100)
}
