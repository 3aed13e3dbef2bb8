package date

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the format used to render dates on tax forms (MM/DD/YYYY).
const DateFormat = "01/02/2006"

// ISOFormat is the ISO-8601 day format, used in configuration files.
const ISOFormat = "2006-01-02"

// readFormats lists every layout Parse accepts, tried in order. Brokers and
// fund families each export dates their own way.
var readFormats = []string{
	"1/2/2006",
	"1/2/06",
	"2006-1-2",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2-Jan-2006",
	"2-Jan-06",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
}

// Date represent a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// String format the date as MM/DD/YYYY.
func (d Date) String() string { return d.time().Format(DateFormat) }

// ISO format the date as YYYY-MM-DD.
func (d Date) ISO() string { return d.time().Format(ISOFormat) }

// Parse parses a Date from a string. It is lenient and accepts US dates
// (1/2/2006, 01/02/06), ISO dates (2006-1-2), spelled out months and
// timestamps. Timestamps keep the day as seen in their own time zone.
func Parse(str string) (Date, error) {
	t, err := ParseTime(str)
	if err != nil {
		return Date{}, err
	}
	return New(t.Date()), nil
}

// ParseTime is like Parse but keeps the time of day, for exports that need
// ordering within a day.
func ParseTime(str string) (time.Time, error) {
	s := strings.TrimSpace(str)
	for _, layout := range readFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", str)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalText implements encoding.TextUnmarshaler, used by configuration decoders.
func (d *Date) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
