package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort     string
	JWTSecret   string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Platform calendar. Every "which local day is it" decision routes through
	// this zone; boot fails if it cannot be resolved.
	Timezone string
	// Sign-in reward amounts
	WeekdayPoints          int
	WeekendPoints          int
	WeekendExperience      int
	StreakBonusPoints      int
	StreakBonusExperience  int
	PerfectMonthPoints     int
	PerfectMonthExperience int
	StreakLookback         int
	// Pet tuning
	PetInteractionGain  int
	PetAttrThreshold    int
	PetHealthPenalty    int
	PetDecayHunger      int
	PetDecayMood        int
	PetDecayStamina     int
	PetDecayCleanliness int
	PetColorChangeCost  int
	// Notifications
	NotifyChannel      string
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Redis for decay guard / notifications
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
// Precedence: config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads a flat JSON file into cfg if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(key string) string {
		if s, ok := raw[key].(string); ok {
			return s
		}
		return ""
	}
	getInt := func(key string) int {
		switch t := raw[key].(type) {
		case float64:
			return int(t)
		case json.Number:
			i, _ := t.Int64()
			return int(i)
		}
		return 0
	}
	getBool := func(key string) bool {
		b, _ := raw[key].(bool)
		return b
	}
	getStringSlice := func(key string) []string {
		arr, ok := raw[key].([]any)
		if !ok {
			return nil
		}
		res := make([]string, 0, len(arr))
		for _, it := range arr {
			if s, ok := it.(string); ok {
				res = append(res, s)
			}
		}
		return res
	}

	out.AppPort = getString("AppPort")
	out.JWTSecret = getString("JWTSecret")
	out.DatabaseURI = getString("DatabaseURI")
	out.DBHost = getString("DBHost")
	out.DBPort = getString("DBPort")
	out.DBUser = getString("DBUser")
	out.DBPassword = getString("DBPassword")
	out.DBName = getString("DBName")
	out.Timezone = getString("Timezone")
	out.WeekdayPoints = getInt("WeekdayPoints")
	out.WeekendPoints = getInt("WeekendPoints")
	out.WeekendExperience = getInt("WeekendExperience")
	out.StreakBonusPoints = getInt("StreakBonusPoints")
	out.StreakBonusExperience = getInt("StreakBonusExperience")
	out.PerfectMonthPoints = getInt("PerfectMonthPoints")
	out.PerfectMonthExperience = getInt("PerfectMonthExperience")
	out.StreakLookback = getInt("StreakLookback")
	out.PetInteractionGain = getInt("PetInteractionGain")
	out.PetAttrThreshold = getInt("PetAttrThreshold")
	out.PetHealthPenalty = getInt("PetHealthPenalty")
	out.PetDecayHunger = getInt("PetDecayHunger")
	out.PetDecayMood = getInt("PetDecayMood")
	out.PetDecayStamina = getInt("PetDecayStamina")
	out.PetDecayCleanliness = getInt("PetDecayCleanliness")
	out.PetColorChangeCost = getInt("PetColorChangeCost")
	out.NotifyChannel = getString("NotifyChannel")
	out.RateLimitPerMinute = getInt("RateLimitPerMinute")
	out.AllowedOrigins = getStringSlice("AllowedOrigins")
	out.GinMode = getString("GinMode")
	out.GinPath = getString("GinPath")
	out.RedisHost = getString("RedisHost")
	out.RedisPort = getInt("RedisPort")
	out.RedisDB = getInt("RedisDB")
	out.RedisPassword = getString("RedisPassword")
	out.LogLevel = getString("LogLevel")
	out.LogPath = getString("LogPath")
	out.LogMaxSizeMB = getInt("LogMaxSizeMB")
	out.LogMaxBackups = getInt("LogMaxBackups")
	out.LogMaxAgeDays = getInt("LogMaxAgeDays")
	out.LogCompress = getBool("LogCompress")

	return nil
}

func applyDefaults(c *AppConfig) {
	defStr(&c.AppPort, "8080")
	defStr(&c.DBHost, "127.0.0.1")
	defStr(&c.DBPort, "3306")
	defStr(&c.DBUser, "root")
	defStr(&c.DBName, "petopia")
	defStr(&c.Timezone, "Asia/Taipei")
	defInt(&c.WeekdayPoints, 20)
	defInt(&c.WeekendPoints, 30)
	defInt(&c.WeekendExperience, 200)
	defInt(&c.StreakBonusPoints, 40)
	defInt(&c.StreakBonusExperience, 300)
	defInt(&c.PerfectMonthPoints, 200)
	defInt(&c.PerfectMonthExperience, 2000)
	defInt(&c.StreakLookback, 100)
	defInt(&c.PetInteractionGain, 10)
	defInt(&c.PetAttrThreshold, 30)
	defInt(&c.PetHealthPenalty, 20)
	defInt(&c.PetDecayHunger, 10)
	defInt(&c.PetDecayMood, 5)
	defInt(&c.PetDecayStamina, 8)
	defInt(&c.PetDecayCleanliness, 6)
	defInt(&c.PetColorChangeCost, 100)
	defStr(&c.NotifyChannel, "petopia:events")
	defInt(&c.RateLimitPerMinute, 60)
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	defStr(&c.GinMode, "release")
	defStr(&c.GinPath, "logs/gin.log")
	defStr(&c.RedisHost, "127.0.0.1")
	defInt(&c.RedisPort, 6379)
	defStr(&c.LogLevel, "info")
	defStr(&c.LogPath, "logs/app.log")
	defInt(&c.LogMaxSizeMB, 100)
	defInt(&c.LogMaxBackups, 3)
	defInt(&c.LogMaxAgeDays, 7)
}

func applyEnvOverrides(c *AppConfig) {
	envStr(&c.AppPort, "APP_PORT")
	envStr(&c.JWTSecret, "JWT_SECRET")
	envStr(&c.DatabaseURI, "DATABASE_URI")
	envStr(&c.DBHost, "DB_HOST")
	envStr(&c.DBPort, "DB_PORT")
	envStr(&c.DBUser, "DB_USER")
	envStr(&c.DBPassword, "DB_PASSWORD")
	envStr(&c.DBName, "DB_NAME")
	envStr(&c.Timezone, "PLATFORM_TIMEZONE")
	envInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	envStr(&c.GinMode, "GIN_MODE")
	envStr(&c.RedisHost, "REDIS_HOST")
	envInt(&c.RedisPort, "REDIS_PORT")
	envInt(&c.RedisDB, "REDIS_DB")
	envStr(&c.RedisPassword, "REDIS_PASSWORD")
	envStr(&c.LogLevel, "LOG_LEVEL")
	envStr(&c.LogPath, "LOG_PATH")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		res := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				res = append(res, p)
			}
		}
		if len(res) > 0 {
			c.AllowedOrigins = res
		}
	}
}

func defStr(target *string, def string) {
	if *target == "" {
		*target = def
	}
}

func defInt(target *int, def int) {
	if *target == 0 {
		*target = def
	}
}

func envStr(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func envInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
