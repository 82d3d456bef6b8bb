package services

import (
	"testing"

	"github.com/studzent/rytmox-backend-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertMeasurementSameDayOverwrites(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	waist := 84.0
	first, err := UpsertMeasurement(user.ID, MeasurementInput{WeightKg: 80.5, WaistCm: &waist})
	require.NoError(t, err)

	second, err := UpsertMeasurement(user.ID, MeasurementInput{WeightKg: 80.2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var rows []models.BodyMeasurement
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 80.2, rows[0].WeightKg)
}

func TestUpsertMeasurementExplicitDates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := UpsertMeasurement(user.ID, MeasurementInput{Date: "2026-08-01", WeightKg: 81})
	require.NoError(t, err)
	_, err = UpsertMeasurement(user.ID, MeasurementInput{Date: "2026-08-08", WeightKg: 80})
	require.NoError(t, err)

	history, err := ListMeasurements(user.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first
	assert.Equal(t, 80.0, history[0].WeightKg)
	assert.Equal(t, 81.0, history[1].WeightKg)
}

func TestUpsertMeasurementRejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := UpsertMeasurement(user.ID, MeasurementInput{Date: "08/01/2026", WeightKg: 81})
	assert.ErrorIs(t, err, ErrValidation)
}
