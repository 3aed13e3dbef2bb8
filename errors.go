package nec

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("malformed value")
	// ErrMissingReference is returned when no exemption fraction is known for
	// a security on a payment date. Callers log it and skip the record.
	ErrMissingReference = errors.New("missing reference data")
	// ErrInsufficientInventory is matched by every *InsufficientInventoryError.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrOutOfOrder is returned when an inventory event predates one already
	// applied to the same holding, typically a transfer history and a broker
	// file whose events interleave.
	ErrOutOfOrder = errors.New("inventory events out of chronological order")
	// ErrNotAvailable is returned by ParsePercent for "N/A" cells.
	ErrNotAvailable = errors.New("value not available")
)

// ParseError reports a money, percentage, quantity or date value that could
// not be read.
type ParseError struct {
	Kind  string // "money", "percentage", "quantity", "date", "statement"...
	Value string
	Err   error // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %q as %s: %v", e.Value, e.Kind, e.Err)
	}
	return fmt.Sprintf("cannot parse %q as %s", e.Value, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// InsufficientInventoryError is returned when a disposal exceeds the open
// quantity of a holding. It always denotes a gap upstream, typically a missing
// transfer-in.
type InsufficientInventoryError struct {
	Holding   Holding
	Requested Quantity
	Available Quantity
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("cannot dispose of %s units of %s: only %s held", e.Requested, e.Holding, e.Available)
}

func (e *InsufficientInventoryError) Is(target error) bool { return target == ErrInsufficientInventory }
