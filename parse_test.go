package nec

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{"-$1,234.56", -1234.56},
		{"$-1,234.56", -1234.56},
		{"$1,234.56", 1234.56},
		{`="$12.00"`, 12},
		{"'7.5'", 7.5},
		{"(45.00)", -45},
		{"($3.10)", -3.10},
		{"", 0},
		{"-", 0},
		{"  42 ", 42},
		{12.5, 12.5},
		{3, 3},
		{decimal.NewFromFloat(0.25), 0.25},
		{USD(9), 9},
	}
	for _, tc := range tests {
		got, err := ParseMoney(tc.in)
		if err != nil {
			t.Errorf("ParseMoney(%#v) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(USD(tc.want)) {
			t.Errorf("ParseMoney(%#v) = %v, want %v", tc.in, got.Fixed(), tc.want)
		}
	}
}

func TestParseMoney_Errors(t *testing.T) {
	for _, in := range []any{"abc", "12.3.4", "1O0", true, []byte("1")} {
		_, err := ParseMoney(in)
		if !errors.Is(err, ErrParse) {
			t.Errorf("ParseMoney(%#v) error = %v, want ErrParse", in, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseMoney(%#v) error is %T, want *ParseError", in, err)
		}
	}
}

func TestParseMagnitude(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"(45.00)", 45},
		{"($45.00)", 45},
		{"$(45.00)", 45},
		{"$45.00", 45},
		{"-$45.00", 45},
		{"", 0},
	}
	for _, tc := range tests {
		got, err := ParseMagnitude(tc.in)
		if err != nil {
			t.Errorf("ParseMagnitude(%q) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(USD(tc.want)) {
			t.Errorf("ParseMagnitude(%q) = %v, want %v", tc.in, got.Fixed(), tc.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	got, err := ParseQuantity("0.012345678")
	if err != nil {
		t.Fatalf("ParseQuantity() error = %v", err)
	}
	if !got.Equal(Q(0.012345678)) {
		t.Errorf("ParseQuantity() = %v, want 0.012345678", got)
	}
	if _, err := ParseQuantity("$1"); !errors.Is(err, ErrParse) {
		t.Errorf("ParseQuantity($1) error = %v, want ErrParse", err)
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want Fraction
	}{
		{"12.34%", 0.1234},
		{"100%", 1},
		{"0.00%", 0},
		{" 5.5 % ", 0.055},
	}
	for _, tc := range tests {
		got, err := ParsePercent(tc.in)
		if err != nil {
			t.Errorf("ParsePercent(%q) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParsePercent(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParsePercent("N/A"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("ParsePercent(N/A) error = %v, want ErrNotAvailable", err)
	}
	for _, in := range []string{"12.34", "abc%", "150%", "-1%"} {
		if _, err := ParsePercent(in); !errors.Is(err, ErrParse) {
			t.Errorf("ParsePercent(%q) error = %v, want ErrParse", in, err)
		}
	}
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in   string
		want Fraction
	}{
		{"12.5%", 0.125},
		{"0.125", 0.125},
		{"1", 1},
	}
	for _, tc := range tests {
		got, err := ParseFraction(tc.in)
		if err != nil {
			t.Errorf("ParseFraction(%q) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseFraction(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseFraction("12.5"); !errors.Is(err, ErrParse) {
		t.Errorf("ParseFraction(12.5) error = %v, want ErrParse", err)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(`="03/31/2023"`)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.String() != "03/31/2023" {
		t.Errorf("ParseDate() = %v, want 03/31/2023", got)
	}
	if _, err := ParseDate("Various"); !errors.Is(err, ErrParse) {
		t.Errorf("ParseDate(Various) error = %v, want ErrParse", err)
	}
}

func TestParseAcquired(t *testing.T) {
	got, err := ParseAcquired("VARIOUS")
	if err != nil || !got.IsZero() {
		t.Errorf("ParseAcquired(VARIOUS) = %v, %v, want zero date", got, err)
	}
	got, err = ParseAcquired("01/05/2023")
	if err != nil || got.String() != "01/05/2023" {
		t.Errorf("ParseAcquired(01/05/2023) = %v, %v", got, err)
	}
}
