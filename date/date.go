// Package date provides a day-granular Date type used for settlement dates and
// per-day value series.
package date

import (
	"cmp"
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 format dates are written in.
const DateFormat = "2006-01-02"

// readDateFormat also accepts single-digit months and days.
const readDateFormat = "2006-1-2"

const (
	secondsPerDay = 24 * 60 * 60
	// unixDay is the day number of 1970-01-01.
	unixDay = 719163
)

// Date is a calendar day, without time or location.
//
// Dates are comparable with ==. The zero value is not a valid settlement
// date, see IsZero.
type Date struct {
	n int // day number, 0001-01-01 is day 1
}

func fromTime(t time.Time) Date {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
	return Date{int(u/secondsPerDay) + unixDay}
}

// time returns the day at midnight UTC.
func (d Date) time() time.Time {
	return time.Unix(int64(d.n-unixDay)*secondsPerDay, 0).UTC()
}

// New returns the Date of year, month and day, normalized like time.Date:
// New(2025, 2, 30) is 2025-03-02.
func New(year int, month time.Month, day int) Date {
	return fromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today returns the current date in the local time zone.
func Today() Date { return fromTime(time.Now()) }

func (d Date) IsZero() bool          { return d.n == 0 }
func (d Date) Before(x Date) bool    { return d.n < x.n }
func (d Date) After(x Date) bool     { return d.n > x.n }
func (d Date) Compare(x Date) int    { return cmp.Compare(d.n, x.n) }
func (d Date) Add(days int) Date     { return Date{d.n + days} }
func (d Date) DaysSince(x Date) int  { return d.n - x.n }
func (d Date) Year() int             { return d.time().Year() }
func (d Date) Month() time.Month     { return d.time().Month() }
func (d Date) Day() int              { return d.time().Day() }
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// Format formats the date with a time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// String formats the date as 2006-01-02.
func (d Date) String() string { return d.Format(DateFormat) }

// Parse parses a date like "2025-07-01", or leniently "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return fromTime(on), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON writes the date as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON reads a date from a JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	on, err := Parse(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)
