package services

import (
	"testing"

	"github.com/studzent/rytmox-backend-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserProfileWeightChangeRecalculates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	// Bootstrap the current targets row first
	_, err := EnsureFreshTargets(user.ID)
	require.NoError(t, err)

	targets, err := UpdateUserProfile(user.ID, ProfileInput{WeightKg: 82})
	require.NoError(t, err)
	require.NotNil(t, targets)
	assert.Equal(t, 82.0, targets.DerivedWeightKg)

	var events []models.TargetChangeEvent
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id asc").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.TargetEventWeightChangeRecalc, events[1].EventType)

	// The weight update also lands in the measurement history.
	var measurements []models.BodyMeasurement
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&measurements).Error)
	require.Len(t, measurements, 1)
	assert.Equal(t, 82.0, measurements[0].WeightKg)
}

func TestUpdateUserProfileUntrackedFieldsNoRecalc(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := EnsureFreshTargets(user.ID)
	require.NoError(t, err)

	targets, err := UpdateUserProfile(user.ID, ProfileInput{FirstName: "Renamed", WeightUnit: "lbs"})
	require.NoError(t, err)
	assert.Nil(t, targets)
	assert.Equal(t, int64(1), countEvents(t, db, user.ID))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Renamed", stored.FirstName)
	assert.Equal(t, "lbs", stored.WeightUnit)
}

func TestUpdateUserProfileGoalChangeRecalculates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := EnsureFreshTargets(user.ID)
	require.NoError(t, err)

	targets, err := UpdateUserProfile(user.ID, ProfileInput{GoalType: "lose_weight"})
	require.NoError(t, err)
	require.NotNil(t, targets)
	assert.Equal(t, "lose_weight", targets.GoalType)

	events, err := ListTargetEvents(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.TargetEventProfileChange, events[0].EventType)
}

func TestUpdateUserProfileRejectsBadEnums(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := UpdateUserProfile(user.ID, ProfileInput{ActivityLevel: "heroic"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = UpdateUserProfile(user.ID, ProfileInput{GoalType: "shred"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetUserProfileIncludesDerived(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	profile, err := GetUserProfile(user.ID)
	require.NoError(t, err)

	// 80kg at 180cm ≈ 24.7 BMI
	bmi := profile["bmi"].(float64)
	assert.InDelta(t, 24.69, bmi, 0.01)
	assert.Equal(t, "Normal weight", profile["bmi_category"])
	assert.Equal(t, "maintain", profile["goal_type"])
}
