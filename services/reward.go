package services

import "github.com/petopia/petopia/config"

// RewardInput captures everything the reward policy looks at for one sign-in.
// StreakAfter is the streak length counting today's sign-in.
type RewardInput struct {
	Weekend        bool
	StreakAfter    int
	LastDayOfMonth bool
	PerfectMonth   bool
}

// Reward is the computed outcome. The bonus flags let callers surface which
// rules fired without re-deriving them.
type Reward struct {
	Points            int  `json:"points"`
	Experience        int  `json:"experience"`
	WeekendBonus      bool `json:"weekend_bonus"`
	StreakBonus       bool `json:"streak_bonus"`
	PerfectMonthBonus bool `json:"perfect_month_bonus"`
}

// RewardPolicy maps a sign-in's calendar context to points and experience.
// All rules are additive and independent.
type RewardPolicy struct {
	WeekdayPoints          int
	WeekendPoints          int
	WeekendExperience      int
	StreakBonusPoints      int
	StreakBonusExperience  int
	PerfectMonthPoints     int
	PerfectMonthExperience int
}

// NewRewardPolicy builds a policy from configuration.
func NewRewardPolicy(cfg config.AppConfig) RewardPolicy {
	return RewardPolicy{
		WeekdayPoints:          cfg.WeekdayPoints,
		WeekendPoints:          cfg.WeekendPoints,
		WeekendExperience:      cfg.WeekendExperience,
		StreakBonusPoints:      cfg.StreakBonusPoints,
		StreakBonusExperience:  cfg.StreakBonusExperience,
		PerfectMonthPoints:     cfg.PerfectMonthPoints,
		PerfectMonthExperience: cfg.PerfectMonthExperience,
	}
}

// streakBonusDay is the one streak length that triggers the bonus. The bonus
// fires when the streak reaches exactly this value and never again (not at
// 14, 21, ...).
const streakBonusDay = 7

// Compute applies the reward rules. It is a pure function of its input.
func (p RewardPolicy) Compute(in RewardInput) Reward {
	var r Reward

	if in.Weekend {
		r.Points = p.WeekendPoints
		r.Experience = p.WeekendExperience
		r.WeekendBonus = true
	} else {
		r.Points = p.WeekdayPoints
	}

	if in.StreakAfter == streakBonusDay {
		r.Points += p.StreakBonusPoints
		r.Experience += p.StreakBonusExperience
		r.StreakBonus = true
	}

	if in.LastDayOfMonth && in.PerfectMonth {
		r.Points += p.PerfectMonthPoints
		r.Experience += p.PerfectMonthExperience
		r.PerfectMonthBonus = true
	}

	return r
}
