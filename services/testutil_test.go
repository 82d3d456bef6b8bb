package services

import (
	"testing"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB swaps config.DB for an in-memory sqlite database for the
// duration of one test. Max one open conn so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BodyMeasurement{},
		&models.NutritionTargets{},
		&models.TargetChangeEvent{},
		&models.TrainingEnvironment{},
		&models.EnvironmentEquipment{},
		&models.WorkoutPlan{},
		&models.UserDevice{},
	))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Email:         "test@example.com",
		Password:      "hashed",
		FirstName:     "Test",
		Sex:           "male",
		HeightCm:      180,
		WeightKg:      80,
		ActivityLevel: "moderate",
		GoalType:      "maintain",
		WeightUnit:    "kg",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func countEvents(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.TargetChangeEvent{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
