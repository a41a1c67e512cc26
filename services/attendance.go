package services

import (
	"sort"
	"time"

	"github.com/petopia/petopia/models"
)

// MonthAttendance summarizes a user's sign-ins for one platform-local month.
// It is derived on demand and never persisted.
type MonthAttendance struct {
	Year               int      `json:"year"`
	Month              int      `json:"month"`
	SignedDays         []string `json:"signed_days"`
	TotalSignedDays    int      `json:"total_signed_days"`
	TotalDaysInMonth   int      `json:"total_days_in_month"`
	AttendanceRate     float64  `json:"attendance_rate"`
	PerfectAttendance  bool     `json:"perfect_attendance"`
	TotalPoints        int      `json:"total_points"`
	TotalExperience    int      `json:"total_experience"`
	CurrentMonthStreak int      `json:"current_month_streak"`
}

// BuildMonthAttendance aggregates the given records (assumed to fall within
// the month's UTC window) into a summary. today bounds the current-month
// streak scan; records on duplicate days collapse to one.
func BuildMonthAttendance(records []models.SignInRecord, year int, month time.Month, today LocalDate) MonthAttendance {
	daySet := make(map[string]bool, len(records))
	totalPoints := 0
	totalExp := 0
	for _, rec := range records {
		daySet[rec.LocalDay] = true
		totalPoints += rec.Points
		totalExp += rec.Experience
	}

	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)

	daysInMonth := DaysInMonth(year, month)
	att := MonthAttendance{
		Year:             year,
		Month:            int(month),
		SignedDays:       days,
		TotalSignedDays:  len(days),
		TotalDaysInMonth: daysInMonth,
		TotalPoints:      totalPoints,
		TotalExperience:  totalExp,
	}
	if daysInMonth > 0 {
		att.AttendanceRate = float64(len(days)) / float64(daysInMonth)
	}
	att.PerfectAttendance = len(days) == daysInMonth

	// Streak within this month only; outside the current month the scan
	// anchor has no meaning, so leave it zero.
	if today.Year == year && today.Month == month {
		att.CurrentMonthStreak = StreakEndingAt(daySet, today)
	}
	return att
}

// isMonthPerfectWith reports whether every day of the month would carry a
// sign-in once today's pending sign-in is included. Used by the coordinator
// to evaluate the perfect-month bonus before the record exists.
func isMonthPerfectWith(daySet map[string]bool, today LocalDate) bool {
	daysInMonth := DaysInMonth(today.Year, today.Month)
	for day := 1; day <= daysInMonth; day++ {
		d := LocalDate{Year: today.Year, Month: today.Month, Day: day}
		if d == today {
			continue
		}
		if !daySet[d.String()] {
			return false
		}
	}
	return true
}
