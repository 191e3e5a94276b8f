package domain

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no timezone attached. Events record the
// day they happened on the shop floor; converting through time.Time and back
// is how the legacy exports picked up off-by-one-day drift, so all date
// arithmetic here stays on the civil triple.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the civil date from a time.Time, in that value's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare returns -1, 0 or 1 ordering d against o.
func (d Date) Compare(o Date) int {
	a := d.ordinal()
	b := o.ordinal()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// DaysUntil returns the number of calendar days from d to o (negative when
// o is earlier).
func (d Date) DaysUntil(o Date) int {
	return o.ordinal() - d.ordinal()
}

// ordinal converts the date to a day count via UTC midnight; UTC is used only
// as a fixed reference frame, the result is timezone-independent.
func (d Date) ordinal() int {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return int(t.Unix() / 86400)
}

// ClockTime is a time of day stored as seconds since midnight. It carries no
// date and no timezone; the pair (Date, ClockTime) is the only timestamp
// representation the reconstruction code works with.
type ClockTime struct {
	secs int
}

const secondsPerDay = 24 * 60 * 60

// NewClockTime builds a ClockTime from hour/minute/second components.
func NewClockTime(hour, min, sec int) ClockTime {
	return ClockTime{secs: hour*3600 + min*60 + sec}
}

// ClockOf extracts the time of day from a time.Time, in that value's location.
func ClockOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute(), t.Second())
}

// ParseClockTime parses "HH:mm" or "HH:mm:ss".
func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return ClockTime{}, fmt.Errorf("parsing time of day %q: expected HH:mm or HH:mm:ss", s)
}

func (c ClockTime) Hour() int   { return c.secs / 3600 }
func (c ClockTime) Minute() int { return (c.secs % 3600) / 60 }
func (c ClockTime) Second() int { return c.secs % 60 }

// Seconds returns the seconds elapsed since midnight.
func (c ClockTime) Seconds() int { return c.secs }

func (c ClockTime) String() string {
	if c.Second() == 0 {
		return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

// Compare returns -1, 0 or 1 ordering c against o.
func (c ClockTime) Compare(o ClockTime) int {
	switch {
	case c.secs < o.secs:
		return -1
	case c.secs > o.secs:
		return 1
	}
	return 0
}

// DurationMinutes computes the elapsed whole minutes between a start and end
// stamp, using civil dates and clock seconds only. A negative same-day span is
// treated as a midnight rollover and shifted by 24h once; if the result is
// still negative the duration cannot be explained and ok is false.
func DurationMinutes(startDate Date, start ClockTime, endDate Date, end ClockTime) (int, bool) {
	total := startDate.DaysUntil(endDate)*secondsPerDay + end.secs - start.secs
	if total < 0 {
		total += secondsPerDay
	}
	if total < 0 {
		return 0, false
	}
	return total / 60, true
}
