package main

import (
	"github.com/petopia/petopia/config"
	"github.com/petopia/petopia/jobs"
	"github.com/petopia/petopia/models"
	"github.com/petopia/petopia/routes"
	"github.com/petopia/petopia/services"
	"github.com/petopia/petopia/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// The platform calendar is the backbone of the one-sign-in-per-day
	// invariant; refuse to start with an unresolved timezone rather than
	// fall back to server-local time.
	clock, err := services.NewClock(cfg.Timezone)
	if err != nil {
		utils.Sugar.Fatalf("timezone init failed: %v", err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.SignInRecord{},
		&models.Pet{},
		&models.PetInteraction{},
		&models.WalletEntry{},
	)

	rdb := utils.GetRedis()
	notifier := services.NewNotifier(rdb, cfg.NotifyChannel)
	wallet := services.NewWalletService(db)
	pets := services.NewPetService(db, clock, wallet, notifier,
		services.PetRules{
			InteractionGain:  cfg.PetInteractionGain,
			PenaltyThreshold: cfg.PetAttrThreshold,
			PenaltyAmount:    cfg.PetHealthPenalty,
		},
		services.DecayAmounts{
			Hunger:      cfg.PetDecayHunger,
			Mood:        cfg.PetDecayMood,
			Stamina:     cfg.PetDecayStamina,
			Cleanliness: cfg.PetDecayCleanliness,
		},
		cfg.PetColorChangeCost,
	)
	signins := services.NewSignInService(db, clock, services.NewRewardPolicy(cfg), wallet, pets, notifier, cfg.StreakLookback)

	decay := jobs.NewDecayScheduler(pets, clock, rdb)
	decay.Start()

	r := routes.SetupRouter(db, signins, pets)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r, decay.Stop); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
