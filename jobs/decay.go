// Package jobs runs the scheduled background work: the daily pet decay batch.
package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/petopia/petopia/services"
	"github.com/petopia/petopia/utils"
)

// decayGuardTTL keeps the day-guard key around long past the day boundary so
// a late-restarting worker still sees it.
const decayGuardTTL = 48 * time.Hour

// DecayScheduler fires the pet decay batch at 00:00 platform-local time.
//
// Two guards keep the batch idempotent per day: a redis SETNX on the local
// day (stops a second worker before it queries anything), and the per-pet
// LastDecayDay column (correct even when redis is down).
type DecayScheduler struct {
	cron  *cron.Cron
	pets  *services.PetService
	clock *services.Clock
	rdb   *redis.Client
}

// NewDecayScheduler builds the scheduler in the clock's timezone.
func NewDecayScheduler(pets *services.PetService, clock *services.Clock, rdb *redis.Client) *DecayScheduler {
	c := cron.New(cron.WithLocation(clock.Location()))
	return &DecayScheduler{cron: c, pets: pets, clock: clock, rdb: rdb}
}

// Start registers the daily job and starts the cron loop.
func (s *DecayScheduler) Start() {
	s.cron.AddFunc("0 0 * * *", s.RunOnce)
	s.cron.Start()
	utils.Sugar.Info("decay scheduler started (daily at 00:00 local)")
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *DecayScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	utils.Sugar.Info("decay scheduler stopped")
}

// RunOnce executes one decay pass for the current local day.
func (s *DecayScheduler) RunOnce() {
	day := s.clock.Today()
	if !s.acquireDayGuard(day) {
		utils.Sugar.Infof("decay already ran for %s, skipping", day)
		return
	}

	start := time.Now()
	count, err := s.pets.DecayAll(day)
	if err != nil {
		utils.Sugar.Errorf("decay batch failed day=%s err=%v", day, err)
		return
	}
	utils.Sugar.Infof("decay batch done day=%s pets=%d took=%s", day, count, time.Since(start))
}

// acquireDayGuard claims the run for this local day. When redis is
// unavailable the batch proceeds; the per-pet LastDecayDay check still makes
// it idempotent.
func (s *DecayScheduler) acquireDayGuard(day services.LocalDate) bool {
	if s.rdb == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ok, err := s.rdb.SetNX(ctx, "petopia:decay:"+day.String(), 1, decayGuardTTL).Result()
	if err != nil {
		utils.Sugar.Warnf("decay guard unavailable day=%s err=%v, relying on per-pet check", day, err)
		return true
	}
	return ok
}
