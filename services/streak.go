package services

// StreakEndingAt walks backward from today one day at a time and counts
// consecutive days present in the signed-day set, stopping at the first gap.
// When today itself is absent (the usual case while computing streak-before
// during a sign-in) the scan starts at yesterday.
//
// Days after today never contribute: the scan only moves backward, so a
// future-dated record caused by clock skew or backdated data is simply
// ignored rather than extending the streak.
func StreakEndingAt(signedDays map[string]bool, today LocalDate) int {
	start := today
	if !signedDays[start.String()] {
		start = start.AddDays(-1)
	}

	streak := 0
	for d := start; signedDays[d.String()]; d = d.AddDays(-1) {
		streak++
	}
	return streak
}

// SignedDaySet builds the lookup set the streak scan runs against from
// stored local-day strings.
func SignedDaySet(localDays []string) map[string]bool {
	set := make(map[string]bool, len(localDays))
	for _, d := range localDays {
		set[d] = true
	}
	return set
}
