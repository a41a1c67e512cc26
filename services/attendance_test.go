package services

import (
	"testing"
	"time"

	"github.com/petopia/petopia/models"
)

func rec(day string, points, exp int) models.SignInRecord {
	return models.SignInRecord{LocalDay: day, Points: points, Experience: exp}
}

func TestBuildMonthAttendancePartialMonth(t *testing.T) {
	records := []models.SignInRecord{
		rec("2025-03-01", 20, 0),
		rec("2025-03-02", 30, 200),
		rec("2025-03-05", 20, 0),
	}
	today := day(2025, time.March, 6)

	att := BuildMonthAttendance(records, 2025, time.March, today)
	if att.TotalSignedDays != 3 || att.TotalDaysInMonth != 31 {
		t.Fatalf("days = %d/%d, want 3/31", att.TotalSignedDays, att.TotalDaysInMonth)
	}
	if att.PerfectAttendance {
		t.Fatal("three days out of 31 is not perfect")
	}
	if att.TotalPoints != 70 || att.TotalExperience != 200 {
		t.Fatalf("totals = (%d, %d), want (70, 200)", att.TotalPoints, att.TotalExperience)
	}
	want := 3.0 / 31.0
	if att.AttendanceRate != want {
		t.Fatalf("rate = %v, want %v", att.AttendanceRate, want)
	}
	if got := []string{"2025-03-01", "2025-03-02", "2025-03-05"}; len(att.SignedDays) != 3 ||
		att.SignedDays[0] != got[0] || att.SignedDays[1] != got[1] || att.SignedDays[2] != got[2] {
		t.Fatalf("signed days = %v, want %v", att.SignedDays, got)
	}
}

func TestBuildMonthAttendancePerfect(t *testing.T) {
	var records []models.SignInRecord
	for d := 1; d <= 28; d++ {
		records = append(records, rec(day(2025, time.February, d).String(), 20, 0))
	}
	att := BuildMonthAttendance(records, 2025, time.February, day(2025, time.February, 28))
	if !att.PerfectAttendance {
		t.Fatal("all 28 days signed should be perfect")
	}
	if att.AttendanceRate != 1.0 {
		t.Fatalf("rate = %v, want 1.0", att.AttendanceRate)
	}
	if att.CurrentMonthStreak != 28 {
		t.Fatalf("streak = %d, want 28", att.CurrentMonthStreak)
	}
}

func TestBuildMonthAttendanceCollapsesDuplicateDays(t *testing.T) {
	records := []models.SignInRecord{
		rec("2025-03-01", 20, 0),
		rec("2025-03-01", 20, 0),
	}
	att := BuildMonthAttendance(records, 2025, time.March, day(2025, time.March, 2))
	if att.TotalSignedDays != 1 {
		t.Fatalf("signed days = %d, want 1", att.TotalSignedDays)
	}
}

func TestBuildMonthAttendanceStreakOnlyForCurrentMonth(t *testing.T) {
	records := []models.SignInRecord{rec("2025-02-27", 20, 0), rec("2025-02-28", 20, 0)}
	att := BuildMonthAttendance(records, 2025, time.February, day(2025, time.April, 10))
	if att.CurrentMonthStreak != 0 {
		t.Fatalf("streak = %d, want 0 for a past month", att.CurrentMonthStreak)
	}
}

func TestIsMonthPerfectWithPendingToday(t *testing.T) {
	// Every day of February 2025 signed except today (the 28th): counting
	// today's pending sign-in the month is perfect.
	set := map[string]bool{}
	for d := 1; d <= 27; d++ {
		set[day(2025, time.February, d).String()] = true
	}
	today := day(2025, time.February, 28)
	if !isMonthPerfectWith(set, today) {
		t.Fatal("month should be perfect including today's pending sign-in")
	}

	delete(set, "2025-02-15")
	if isMonthPerfectWith(set, today) {
		t.Fatal("a missing mid-month day breaks perfection")
	}
}

func TestIsMonthPerfectIgnoresOtherMonths(t *testing.T) {
	set := map[string]bool{"2025-01-31": true}
	for d := 1; d <= 27; d++ {
		set[day(2025, time.February, d).String()] = true
	}
	if !isMonthPerfectWith(set, day(2025, time.February, 28)) {
		t.Fatal("keys from other months must not affect the check")
	}
}
