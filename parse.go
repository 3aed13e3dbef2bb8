package nec

import (
	"fmt"
	"strings"

	"github.com/etnz/nec/date"
	"github.com/shopspring/decimal"
)

// unquote removes the spreadsheet formula marker and the quotes some exports
// wrap around cells: ="$1,234.56" is $1,234.56.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "=")
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[0] == s[len(s)-1] {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// parseNumber reads the decimal encodings found in broker exports.
// "" and "-" are zero. A parenthesized value is negative, the dollar sign
// may be inside or outside the parentheses.
func parseNumber(kind, raw string, currency bool) (decimal.Decimal, error) {
	s := unquote(raw)
	if currency && strings.HasPrefix(s, "$(") {
		s = s[1:]
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if currency {
		switch {
		case strings.HasPrefix(s, "-$"):
			s = "-" + s[2:]
		case strings.HasPrefix(s, "$-"):
			s = "-" + s[2:]
		case strings.HasPrefix(s, "$"):
			s = s[1:]
		}
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ParseError{Kind: kind, Value: raw}
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}

// ParseMoney normalizes a money cell into a signed amount.
//
// Values can already be numeric (float64, decimal.Decimal, Money) or be
// strings like "=\"$1,234.56\"", "-$12.00", "$-12.00", "(12.00)", "".
func ParseMoney(v any) (Money, error) {
	switch x := v.(type) {
	case Money:
		return x, nil
	case decimal.Decimal:
		return Money{value: x}, nil
	case float64:
		return M(x), nil
	case float32:
		return M(x), nil
	case int:
		return M(x), nil
	case int64:
		return M(x), nil
	case string:
		d, err := parseNumber("money", x, true)
		return Money{value: d}, err
	default:
		return Money{}, &ParseError{Kind: "money", Value: fmt.Sprintf("%v", v)}
	}
}

// ParseMagnitude is like ParseMoney but returns the absolute amount. Some
// columns, like Schwab's disallowed wash sale loss, print "(45.00)" to mean
// an amount of 45.00.
func ParseMagnitude(s string) (Money, error) {
	d, err := parseNumber("money", s, true)
	return Money{value: d.Abs()}, err
}

// ParseQuantity reads a number of units.
func ParseQuantity(s string) (Quantity, error) {
	d, err := parseNumber("quantity", s, false)
	return Quantity{value: d}, err
}

// ParsePercent reads a percentage cell like "12.34%" into a fraction (0.1234).
// "N/A" returns ErrNotAvailable: the value is absent, it is not zero.
func ParsePercent(s string) (Fraction, error) {
	v := unquote(s)
	if strings.EqualFold(v, "N/A") || strings.EqualFold(v, "NA") {
		return 0, ErrNotAvailable
	}
	num, ok := strings.CutSuffix(v, "%")
	if !ok {
		return 0, &ParseError{Kind: "percentage", Value: s}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(num))
	if err != nil {
		return 0, &ParseError{Kind: "percentage", Value: s, Err: err}
	}
	f := Fraction(d.Shift(-2).InexactFloat64())
	if f < 0 || f > 1 {
		return 0, &ParseError{Kind: "percentage", Value: s, Err: fmt.Errorf("out of [0%%, 100%%]")}
	}
	return f, nil
}

// ParseFraction accepts either a percentage ("12.34%") or a plain fraction
// ("0.1234").
func ParseFraction(s string) (Fraction, error) {
	v := unquote(s)
	if strings.HasSuffix(v, "%") || strings.EqualFold(v, "N/A") {
		return ParsePercent(v)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, &ParseError{Kind: "fraction", Value: s, Err: err}
	}
	f := Fraction(d.InexactFloat64())
	if f < 0 || f > 1 {
		return 0, &ParseError{Kind: "fraction", Value: s, Err: fmt.Errorf("out of [0, 1]")}
	}
	return f, nil
}

// ParseDate reads a date cell. Failures are *ParseError.
func ParseDate(s string) (date.Date, error) {
	on, err := date.Parse(unquote(s))
	if err != nil {
		return date.Date{}, &ParseError{Kind: "date", Value: s, Err: err}
	}
	return on, nil
}

// ParseAcquired reads an acquisition date column, where brokers print
// "Various" for sales covering several lots. Various is the zero date.
func ParseAcquired(s string) (date.Date, error) {
	if strings.EqualFold(unquote(s), "Various") {
		return date.Date{}, nil
	}
	return ParseDate(s)
}
