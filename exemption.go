package nec

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/nec/date"
)

type rateKind int

const (
	flatRate    rateKind = iota // one fraction for the whole year
	monthlyRate                 // one fraction per payment date
	ratioRate                   // interest amount over dividend amount per payment date
)

// rate is how one symbol's exempt fraction is obtained.
type rate struct {
	kind     rateKind
	provider string
	hint     string // how to fix missing data, for ratioRate

	flat     Fraction
	monthly  date.History[float64]
	interest map[date.Date]Money
	dividend map[date.Date]Money // nil until a dividend history is loaded
}

// Store is the exemption reference data of a tax year: for each symbol the
// fraction of its dividends that is interest-related, and the CUSIP of the
// symbols that have one.
//
// A Store is filled by the provider packages before any statement is
// reduced, and only read afterwards.
type Store struct {
	rates  map[string]*rate
	cusips map[string]string // CUSIP -> symbol
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		rates:  make(map[string]*rate),
		cusips: make(map[string]string),
	}
}

// register returns the rate of symbol, creating it with kind if needed.
func (s *Store) register(symbol, cusip, provider string, kind rateKind) (*rate, error) {
	if symbol == "" {
		return nil, fmt.Errorf("cannot register an exemption rate without a symbol")
	}
	r, ok := s.rates[symbol]
	if !ok {
		r = &rate{kind: kind, provider: provider}
		s.rates[symbol] = r
	} else if r.kind != kind {
		return nil, fmt.Errorf("%s is already published by %s with another kind of rate", symbol, r.provider)
	}
	if cusip != "" {
		s.cusips[cusip] = symbol
	}
	return r, nil
}

// SetFlat records a constant fraction for symbol.
func (s *Store) SetFlat(symbol, cusip string, f Fraction, provider string) error {
	r, err := s.register(symbol, cusip, provider, flatRate)
	if err != nil {
		return err
	}
	r.flat = f
	return nil
}

// DeclareMonthly registers symbol as having a monthly schedule, even if no
// month has a value yet.
func (s *Store) DeclareMonthly(symbol, cusip, provider string) error {
	_, err := s.register(symbol, cusip, provider, monthlyRate)
	return err
}

// SetMonthly records the fraction of symbol for dividends paid on day.
func (s *Store) SetMonthly(symbol, cusip string, on date.Date, f Fraction, provider string) error {
	r, err := s.register(symbol, cusip, provider, monthlyRate)
	if err != nil {
		return err
	}
	r.monthly.Append(on, float64(f))
	return nil
}

// SetInterest records the interest-related amount per share that symbol paid on day.
func (s *Store) SetInterest(symbol, cusip string, on date.Date, amount Money, provider string) error {
	r, err := s.register(symbol, cusip, provider, ratioRate)
	if err != nil {
		return err
	}
	if r.interest == nil {
		r.interest = make(map[date.Date]Money)
	}
	r.interest[on] = amount
	return nil
}

// SetDividend records the total dividend per share that symbol paid on day.
// The symbol must have been registered with SetInterest.
func (s *Store) SetDividend(symbol string, on date.Date, amount Money) error {
	r, ok := s.rates[symbol]
	if !ok || r.kind != ratioRate {
		return fmt.Errorf("cannot record a dividend for %s: no interest data", symbol)
	}
	if r.dividend == nil {
		r.dividend = make(map[date.Date]Money)
	}
	r.dividend[on] = amount
	return nil
}

// HasDividendHistory reports whether a dividend history was loaded for symbol.
func (s *Store) HasDividendHistory(symbol string) bool {
	r, ok := s.rates[symbol]
	return ok && r.dividend != nil
}

// SetHint attaches to symbol the advice printed when its data is missing.
func (s *Store) SetHint(symbol, hint string) {
	if r, ok := s.rates[symbol]; ok {
		r.hint = hint
	}
}

// Resolve maps a CUSIP or a ticker to the symbol it designates. CUSIPs are
// tried first.
func (s *Store) Resolve(id string) (string, bool) {
	if symbol, ok := s.cusips[id]; ok {
		return symbol, true
	}
	if _, ok := s.rates[id]; ok {
		return id, true
	}
	return "", false
}

// IsCUSIP reports whether id is a known CUSIP.
func (s *Store) IsCUSIP(id string) bool {
	_, ok := s.cusips[id]
	return ok
}

// Lookup returns the exempt fraction of a dividend of id paid on day.
//
// Every failure wraps ErrMissingReference.
func (s *Store) Lookup(id string, on date.Date) (Fraction, error) {
	symbol, ok := s.Resolve(id)
	if !ok {
		return 0, fmt.Errorf("%w: no exemption data for %s", ErrMissingReference, id)
	}
	r := s.rates[symbol]
	switch r.kind {
	case flatRate:
		return r.flat, nil
	case monthlyRate:
		f, ok := r.monthly.Get(on)
		if !ok {
			return 0, fmt.Errorf("%w: no percentage for %s on %s", ErrMissingReference, symbol, on)
		}
		return Fraction(f), nil
	case ratioRate:
		if r.dividend == nil {
			err := fmt.Errorf("%w: no dividend history for %s", ErrMissingReference, symbol)
			if r.hint != "" {
				err = fmt.Errorf("%w (%s)", err, r.hint)
			}
			return 0, err
		}
		dividend, ok := r.dividend[on]
		if !ok || dividend.IsZero() {
			return 0, fmt.Errorf("%w: no dividend for %s on %s", ErrMissingReference, symbol, on)
		}
		interest, ok := r.interest[on]
		if !ok {
			return 0, fmt.Errorf("%w: no interest for %s on %s", ErrMissingReference, symbol, on)
		}
		return interest.Ratio(dividend), nil
	}
	return 0, fmt.Errorf("%w: unknown rate for %s", ErrMissingReference, symbol)
}

// Symbols returns every symbol of the store, sorted.
func (s *Store) Symbols() []string {
	return slices.Sorted(maps.Keys(s.rates))
}

// Provider returns the name of the provider that published symbol's data.
func (s *Store) Provider(symbol string) string {
	if r, ok := s.rates[symbol]; ok {
		return r.provider
	}
	return ""
}
