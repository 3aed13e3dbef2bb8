package nec

import (
	"fmt"
	"strings"
)

// Strategy defines which open lot a disposal draws from first.
type Strategy int

const (
	// FIFO (First-In, First-Out) draws from the oldest lot first.
	FIFO Strategy = iota
	// HighestCost draws from the lot with the highest unit cost first,
	// minimizing the realized gain.
	HighestCost
	// LowestCost draws from the lot with the lowest unit cost first.
	LowestCost
)

func (s Strategy) String() string {
	switch s {
	case FIFO:
		return "fifo"
	case HighestCost:
		return "highest-cost"
	case LowestCost:
		return "lowest-cost"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "fifo", "":
		return FIFO, nil
	case "highest-cost", "hifo":
		return HighestCost, nil
	case "lowest-cost", "lofo":
		return LowestCost, nil
	default:
		return 0, fmt.Errorf("unknown lot selection strategy: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler, so that strategies can be
// written by name in configuration files.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Elections holds the lot selection strategy elected for each tax year.
// Years without an election use FIFO.
type Elections map[int]Strategy

// For returns the strategy elected for year.
func (e Elections) For(year int) Strategy {
	if s, ok := e[year]; ok {
		return s
	}
	return FIFO
}
