package services

import (
	"testing"
	"time"
)

func taipeiClock(t *testing.T, now time.Time) *Clock {
	t.Helper()
	c, err := NewClockAt("Asia/Taipei", func() time.Time { return now })
	if err != nil {
		t.Fatalf("NewClockAt: %v", err)
	}
	return c
}

func TestNewClockRejectsUnknownZone(t *testing.T) {
	if _, err := NewClock("Not/AZone"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestLocalDayCrossesUTCMidnight(t *testing.T) {
	// 17:30 UTC is already 01:30 the next day in Taipei (UTC+8).
	now := time.Date(2025, time.March, 10, 17, 30, 0, 0, time.UTC)
	c := taipeiClock(t, now)

	got := c.LocalDay(now)
	want := LocalDate{Year: 2025, Month: time.March, Day: 11}
	if got != want {
		t.Fatalf("LocalDay = %v, want %v", got, want)
	}
	if c.Today() != want {
		t.Fatalf("Today = %v, want %v", c.Today(), want)
	}
}

func TestUTCRangeIsHalfOpen(t *testing.T) {
	c := taipeiClock(t, time.Now())
	day := LocalDate{Year: 2025, Month: time.June, Day: 15}

	start, end := c.UTCRange(day)
	// Local midnight in UTC+8 is 16:00 UTC the previous day.
	wantStart := time.Date(2025, time.June, 14, 16, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.June, 15, 16, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("end = %v, want %v", end, wantEnd)
	}

	if c.LocalDay(start) != day {
		t.Fatalf("start instant maps to %v, want %v", c.LocalDay(start), day)
	}
	if c.LocalDay(end) == day {
		t.Fatal("end instant must fall on the next local day")
	}
	if c.LocalDay(end.Add(-time.Second)) != day {
		t.Fatal("instant just before end must still fall on the day")
	}
}

func TestMonthUTCRange(t *testing.T) {
	c := taipeiClock(t, time.Now())
	start, end := c.MonthUTCRange(2025, time.February)

	wantStart := time.Date(2025, time.January, 31, 16, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.February, 28, 16, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Fatalf("range = [%v, %v), want [%v, %v)", start, end, wantStart, wantEnd)
	}
}

func TestIsWeekend(t *testing.T) {
	c := taipeiClock(t, time.Now())
	tests := []struct {
		day  LocalDate
		want bool
	}{
		{LocalDate{2025, time.March, 7}, false},  // Friday
		{LocalDate{2025, time.March, 8}, true},   // Saturday
		{LocalDate{2025, time.March, 9}, true},   // Sunday
		{LocalDate{2025, time.March, 10}, false}, // Monday
	}
	for _, tt := range tests {
		if got := c.IsWeekend(tt.day); got != tt.want {
			t.Errorf("IsWeekend(%v) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestIsLastDayOfMonth(t *testing.T) {
	c := taipeiClock(t, time.Now())
	if !c.IsLastDayOfMonth(LocalDate{2024, time.February, 29}) {
		t.Error("Feb 29 2024 is the last day of a leap February")
	}
	if c.IsLastDayOfMonth(LocalDate{2024, time.February, 28}) {
		t.Error("Feb 28 2024 is not the last day of a leap February")
	}
	if !c.IsLastDayOfMonth(LocalDate{2025, time.April, 30}) {
		t.Error("Apr 30 is the last day of April")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestLocalDateAddDaysAcrossBoundaries(t *testing.T) {
	d := LocalDate{2025, time.March, 1}
	if got := d.AddDays(-1); got != (LocalDate{2025, time.February, 28}) {
		t.Fatalf("AddDays(-1) = %v", got)
	}
	if got := (LocalDate{2024, time.December, 31}).AddDays(1); got != (LocalDate{2025, time.January, 1}) {
		t.Fatalf("AddDays(+1) across year = %v", got)
	}
}

func TestParseLocalDateRoundTrip(t *testing.T) {
	d, err := ParseLocalDate("2025-07-09")
	if err != nil {
		t.Fatalf("ParseLocalDate: %v", err)
	}
	if d.String() != "2025-07-09" {
		t.Fatalf("round trip = %q", d.String())
	}
	if _, err := ParseLocalDate("not-a-date"); err == nil {
		t.Fatal("expected parse error")
	}
}
