package services

import "testing"

func defaultPolicy() RewardPolicy {
	return RewardPolicy{
		WeekdayPoints:          20,
		WeekendPoints:          30,
		WeekendExperience:      200,
		StreakBonusPoints:      40,
		StreakBonusExperience:  300,
		PerfectMonthPoints:     200,
		PerfectMonthExperience: 2000,
	}
}

func TestRewardWeekdayBase(t *testing.T) {
	r := defaultPolicy().Compute(RewardInput{StreakAfter: 1})
	if r.Points != 20 || r.Experience != 0 {
		t.Fatalf("weekday reward = (%d, %d), want (20, 0)", r.Points, r.Experience)
	}
	if r.WeekendBonus || r.StreakBonus || r.PerfectMonthBonus {
		t.Fatalf("unexpected bonus flags: %+v", r)
	}
}

func TestRewardWeekendBase(t *testing.T) {
	r := defaultPolicy().Compute(RewardInput{Weekend: true, StreakAfter: 1})
	if r.Points != 30 || r.Experience != 200 {
		t.Fatalf("weekend reward = (%d, %d), want (30, 200)", r.Points, r.Experience)
	}
	if !r.WeekendBonus {
		t.Fatal("weekend bonus flag not set")
	}
}

func TestRewardStreakBonusFiresExactlyAtSeven(t *testing.T) {
	p := defaultPolicy()
	for _, streak := range []int{1, 6, 8, 14, 21, 70} {
		r := p.Compute(RewardInput{StreakAfter: streak})
		if r.StreakBonus {
			t.Errorf("streak %d: bonus must not fire", streak)
		}
		if r.Points != 20 {
			t.Errorf("streak %d: points = %d, want 20", streak, r.Points)
		}
	}

	r := p.Compute(RewardInput{StreakAfter: 7})
	if !r.StreakBonus {
		t.Fatal("streak bonus must fire at exactly 7")
	}
	if r.Points != 20+40 || r.Experience != 300 {
		t.Fatalf("day-7 reward = (%d, %d), want (60, 300)", r.Points, r.Experience)
	}
}

func TestRewardWeekendDaySevenStacks(t *testing.T) {
	r := defaultPolicy().Compute(RewardInput{Weekend: true, StreakAfter: 7})
	if r.Points != 30+40 || r.Experience != 200+300 {
		t.Fatalf("reward = (%d, %d), want (70, 500)", r.Points, r.Experience)
	}
}

func TestRewardPerfectMonth(t *testing.T) {
	r := defaultPolicy().Compute(RewardInput{
		StreakAfter:    3,
		LastDayOfMonth: true,
		PerfectMonth:   true,
	})
	if r.Points != 20+200 || r.Experience != 2000 {
		t.Fatalf("reward = (%d, %d), want (220, 2000)", r.Points, r.Experience)
	}
	if !r.PerfectMonthBonus {
		t.Fatal("perfect month flag not set")
	}
}

func TestRewardPerfectMonthNeedsLastDay(t *testing.T) {
	// A month that is perfect so far only pays out on its final day.
	r := defaultPolicy().Compute(RewardInput{StreakAfter: 3, PerfectMonth: true})
	if r.PerfectMonthBonus || r.Points != 20 {
		t.Fatalf("bonus fired before the last day: %+v", r)
	}
}

func TestRewardAllBonusesStack(t *testing.T) {
	r := defaultPolicy().Compute(RewardInput{
		Weekend:        true,
		StreakAfter:    7,
		LastDayOfMonth: true,
		PerfectMonth:   true,
	})
	if r.Points != 30+40+200 || r.Experience != 200+300+2000 {
		t.Fatalf("reward = (%d, %d), want (270, 2500)", r.Points, r.Experience)
	}
	if !r.WeekendBonus || !r.StreakBonus || !r.PerfectMonthBonus {
		t.Fatalf("all flags should be set: %+v", r)
	}
}
