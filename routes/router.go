package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petopia/petopia/config"
	"github.com/petopia/petopia/controllers"
	"github.com/petopia/petopia/middleware"
	"github.com/petopia/petopia/services"
	"github.com/petopia/petopia/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, signins *services.SignInService, pets *services.PetService) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log and panic recovery go to a dedicated rolling file so request
	// noise stays out of the app log.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	signController := controllers.NewSignInController(signins)
	petController := controllers.NewPetController(pets)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	signGroup := protected.Group("/signin")
	signGroup.POST("/daily", middleware.RateLimitMiddleware(), signController.DailySignIn)
	signGroup.GET("/status", signController.Status)
	signGroup.GET("/month", signController.MonthAttendance)
	signGroup.GET("/history", signController.History)

	petGroup := protected.Group("/pet")
	petGroup.GET("", petController.GetPet)
	petGroup.POST("/interact", middleware.RateLimitMiddleware(), petController.Interact)
	petGroup.POST("/color", middleware.RateLimitMiddleware(), petController.ChangeColor)
	petGroup.POST("/nickname", middleware.RateLimitMiddleware(), petController.Rename)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
