package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/studzent/rytmox-backend-sub001/models"
	"github.com/studzent/rytmox-backend-sub001/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// AppSettings holds tunables read from the environment once at boot.
type AppSettings struct {
	// Minimum interval between automatic target recalculations for an
	// unchanged profile (the scheduled-refresh floor).
	RecalcMinInterval time.Duration
	// Request timeout for OpenAI calls.
	OpenAITimeout time.Duration
}

var Settings = AppSettings{
	RecalcMinInterval: 24 * time.Hour,
	OpenAITimeout:     60 * time.Second,
}

func LoadSettings() {
	Settings.RecalcMinInterval = time.Duration(getEnvAsInt("TARGETS_RECALC_MIN_HOURS", 24)) * time.Hour
	Settings.OpenAITimeout = time.Duration(getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		utils.Log.Warnw("invalid integer in env, using fallback", "key", key, "value", v, "fallback", fallback)
	}
	return fallback
}

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.Log.Warnw("no .env file loaded", "err", err)
	}
	LoadSettings()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		utils.Log.Fatalw("failed to connect to database", "err", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.BodyMeasurement{},
		&models.NutritionTargets{},
		&models.TargetChangeEvent{},
		&models.TrainingEnvironment{},
		&models.EnvironmentEquipment{},
		&models.WorkoutPlan{},
		&models.UserDevice{},
	)
	if err != nil {
		utils.Log.Fatalw("AutoMigrate failed", "err", err)
	}
}
