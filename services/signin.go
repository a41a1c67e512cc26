package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petopia/petopia/models"
	"github.com/petopia/petopia/utils"
)

// SignInService coordinates the daily sign-in: idempotency check, streak and
// reward computation and the record write happen in one transaction; wallet
// credit, pet experience and notification follow best-effort after commit.
type SignInService struct {
	db       *gorm.DB
	clock    *Clock
	policy   RewardPolicy
	wallet   *WalletService
	pets     *PetService
	notifier *Notifier
	lookback int
}

// NewSignInService wires the coordinator.
func NewSignInService(db *gorm.DB, clock *Clock, policy RewardPolicy, wallet *WalletService, pets *PetService, notifier *Notifier, lookback int) *SignInService {
	if lookback <= 0 {
		lookback = 100
	}
	return &SignInService{
		db:       db,
		clock:    clock,
		policy:   policy,
		wallet:   wallet,
		pets:     pets,
		notifier: notifier,
		lookback: lookback,
	}
}

// SignInResult reports one successful sign-in.
type SignInResult struct {
	Points            int       `json:"points"`
	Experience        int       `json:"experience"`
	StreakBefore      int       `json:"streak_before"`
	StreakAfter       int       `json:"streak_after"`
	WeekendBonus      bool      `json:"weekend_bonus"`
	StreakBonus       bool      `json:"streak_bonus"`
	PerfectMonthBonus bool      `json:"perfect_month_bonus"`
	SignedAtLocal     time.Time `json:"signed_at_local"`
	LevelUp           bool      `json:"level_up"`
}

// SignInStatus is the read-only view for UI display. Everything is recomputed
// fresh on each call; nothing is cached.
type SignInStatus struct {
	TodaySigned     bool            `json:"today_signed"`
	CurrentStreak   int             `json:"current_streak"`
	IsWeekendToday  bool            `json:"is_weekend_today"`
	MonthAttendance MonthAttendance `json:"month_attendance"`
	// PotentialReward is what signing in right now would earn; nil once
	// today's sign-in exists.
	PotentialReward *Reward `json:"potential_reward,omitempty"`
}

// PagedSignIns is one page of sign-in history, newest first.
type PagedSignIns struct {
	Items    []models.SignInRecord `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// PerformSignIn records today's sign-in for the user.
//
// The duplicate check runs inside the transaction under the user row lock,
// and the unique (user_id, local_day) index backstops it: of two racing
// requests exactly one inserts, the other sees ErrAlreadySignedIn. Wallet
// credit and the pet experience grant run after commit; their failure is
// logged but never rolls back the earned sign-in.
func (s *SignInService) PerformSignIn(userID uint) (*SignInResult, error) {
	now := s.clock.Now()
	today := s.clock.LocalDay(now)

	var result SignInResult
	var record models.SignInRecord

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		days, err := s.recentDays(tx, userID)
		if err != nil {
			return err
		}
		if days[today.String()] {
			return ErrAlreadySignedIn
		}

		streakBefore := StreakEndingAt(days, today)
		lastDay := s.clock.IsLastDayOfMonth(today)
		perfect := lastDay && isMonthPerfectWith(days, today)

		reward := s.policy.Compute(RewardInput{
			Weekend:        s.clock.IsWeekend(today),
			StreakAfter:    streakBefore + 1,
			LastDayOfMonth: lastDay,
			PerfectMonth:   perfect,
		})

		record = models.SignInRecord{
			UserID:     userID,
			LocalDay:   today.String(),
			SignedAt:   now.UTC(),
			Points:     reward.Points,
			Experience: reward.Experience,
			StreakDay:  streakBefore + 1,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySignedIn
			}
			return err
		}

		user.LastSigninAt = &record.SignedAt
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		result = SignInResult{
			Points:            reward.Points,
			Experience:        reward.Experience,
			StreakBefore:      streakBefore,
			StreakAfter:       streakBefore + 1,
			WeekendBonus:      reward.WeekendBonus,
			StreakBonus:       reward.StreakBonus,
			PerfectMonthBonus: reward.PerfectMonthBonus,
			SignedAtLocal:     s.clock.LocalTime(now),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Downstream crediting is best-effort; the sign-in record is the source
	// of truth for what was earned.
	idemKey := fmt.Sprintf("signin:%d", record.ID)
	if err := s.wallet.EarnPoints(userID, result.Points, "daily sign-in", idemKey); err != nil {
		utils.Sugar.Warnf("wallet credit failed user=%d record=%d err=%v", userID, record.ID, err)
	}
	if result.Experience > 0 {
		leveled, err := s.pets.GrantExperience(userID, result.Experience)
		if err != nil {
			utils.Sugar.Warnf("pet experience grant failed user=%d record=%d err=%v", userID, record.ID, err)
		}
		result.LevelUp = leveled
	}
	s.notifier.Publish("signin.reward", userID, result)

	return &result, nil
}

// Status returns the fresh read-only sign-in view for the user.
func (s *SignInService) Status(userID uint) (*SignInStatus, error) {
	today := s.clock.Today()

	days, err := s.recentDays(s.db, userID)
	if err != nil {
		return nil, err
	}

	att, err := s.GetMonthAttendance(userID, today.Year, today.Month)
	if err != nil {
		return nil, err
	}

	status := &SignInStatus{
		TodaySigned:     days[today.String()],
		CurrentStreak:   StreakEndingAt(days, today),
		IsWeekendToday:  s.clock.IsWeekend(today),
		MonthAttendance: *att,
	}

	if !status.TodaySigned {
		lastDay := s.clock.IsLastDayOfMonth(today)
		reward := s.policy.Compute(RewardInput{
			Weekend:        s.clock.IsWeekend(today),
			StreakAfter:    status.CurrentStreak + 1,
			LastDayOfMonth: lastDay,
			PerfectMonth:   lastDay && isMonthPerfectWith(days, today),
		})
		status.PotentialReward = &reward
	}
	return status, nil
}

// GetMonthAttendance aggregates the user's sign-ins for one platform-local
// month. The record query uses the half-open UTC window
// [firstOfMonth, firstOfNextMonth) so midnight boundaries never leak days
// across months.
func (s *SignInService) GetMonthAttendance(userID uint, year int, month time.Month) (*MonthAttendance, error) {
	startUTC, endUTC := s.clock.MonthUTCRange(year, month)

	var records []models.SignInRecord
	if err := s.db.
		Where("user_id = ? AND signed_at >= ? AND signed_at < ?", userID, startUTC, endUTC).
		Find(&records).Error; err != nil {
		return nil, err
	}

	att := BuildMonthAttendance(records, year, month, s.clock.Today())
	return &att, nil
}

// History returns one page of the user's sign-in records, newest first,
// optionally bounded by local dates (inclusive on both ends).
func (s *SignInService) History(userID uint, from, to *LocalDate, page, pageSize int) (*PagedSignIns, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := s.db.Model(&models.SignInRecord{}).Where("user_id = ?", userID)
	if from != nil {
		start, _ := s.clock.UTCRange(*from)
		q = q.Where("signed_at >= ?", start)
	}
	if to != nil {
		_, end := s.clock.UTCRange(*to)
		q = q.Where("signed_at < ?", end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.SignInRecord
	if err := q.Order("signed_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &PagedSignIns{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// recentDays loads the bounded lookback of sign-in records and collapses them
// to a local-day set. The bound is sufficient because a single missing day
// already resets any streak.
func (s *SignInService) recentDays(tx *gorm.DB, userID uint) (map[string]bool, error) {
	var localDays []string
	if err := tx.Model(&models.SignInRecord{}).
		Where("user_id = ?", userID).
		Order("signed_at DESC").
		Limit(s.lookback).
		Pluck("local_day", &localDays).Error; err != nil {
		return nil, err
	}
	return SignedDaySet(localDays), nil
}
