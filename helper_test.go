package nec

import (
	"time"

	"github.com/etnz/nec/date"
)

// USD is a helper for test to create money from const
func USD(v float64) Money { return M(v) }

// day is a helper for test to create a date in 2023
func day(month time.Month, d int) date.Date { return date.New(2023, month, d) }
