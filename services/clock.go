package services

import (
	"fmt"
	"time"
)

// LocalDate is a calendar day in the platform timezone, independent of any
// wall-clock instant.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String renders the date as "2006-01-02", the form stored in
// SignInRecord.LocalDay and used as map keys throughout the engine.
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays returns the date shifted by n calendar days (n may be negative).
func (d LocalDate) AddDays(n int) LocalDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// After reports whether d falls strictly after other.
func (d LocalDate) After(other LocalDate) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}

// IsZero reports whether d is the zero value.
func (d LocalDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// ParseLocalDate parses a "2006-01-02" string.
func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Clock converts instants to platform-local calendar days. The zone is
// injected at construction; there is no process-global fallback, and a zone
// that cannot be resolved is a boot failure, never a silent default to
// server-local time.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock resolves the named timezone and returns a Clock using the real
// system time.
func NewClock(zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewClockAt returns a Clock whose "now" is supplied by fn. Used by tests and
// anywhere a deterministic clock is needed.
func NewClockAt(zone string, fn func() time.Time) (*Clock, error) {
	c, err := NewClock(zone)
	if err != nil {
		return nil, err
	}
	c.now = fn
	return c, nil
}

// Now returns the current instant.
func (c *Clock) Now() time.Time {
	return c.now()
}

// LocalDay converts an instant to the platform-local calendar day it falls on.
func (c *Clock) LocalDay(t time.Time) LocalDate {
	lt := t.In(c.loc)
	return LocalDate{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()}
}

// Today returns the current platform-local calendar day.
func (c *Clock) Today() LocalDate {
	return c.LocalDay(c.now())
}

// Location exposes the platform timezone, used by the cron scheduler so jobs
// fire on the platform's midnight rather than the server's.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// LocalTime renders an instant in the platform timezone.
func (c *Clock) LocalTime(t time.Time) time.Time {
	return t.In(c.loc)
}

// UTCRange returns the half-open UTC interval [start, end) covering the given
// platform-local day.
func (c *Clock) UTCRange(d LocalDate) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, c.loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// MonthUTCRange returns the half-open UTC interval
// [firstOfMonth, firstOfNextMonth) for the given platform-local month. The
// half-open form avoids boundary leakage across local midnight.
func (c *Clock) MonthUTCRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// IsWeekend reports whether the local day is a Saturday or Sunday.
func (c *Clock) IsWeekend(d LocalDate) bool {
	wd := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, c.loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsLastDayOfMonth reports whether the local day is the final day of its month.
func (c *Clock) IsLastDayOfMonth(d LocalDate) bool {
	return d.Day == DaysInMonth(d.Year, d.Month)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
