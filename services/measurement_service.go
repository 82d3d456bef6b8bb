package services

import (
	"fmt"
	"time"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"
)

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// MeasurementInput mirrors BodyMeasurement minus the bookkeeping fields.
type MeasurementInput struct {
	Date     string   `json:"date"` // YYYY-MM-DD, defaults to today
	WeightKg float64  `json:"weight_kg" binding:"required,gt=0"`
	NeckCm   *float64 `json:"neck_cm"`
	WaistCm  *float64 `json:"waist_cm"`
	HipCm    *float64 `json:"hip_cm"`
	ChestCm  *float64 `json:"chest_cm"`
	BicepCm  *float64 `json:"bicep_cm"`
	ThighCm  *float64 `json:"thigh_cm"`
}

// UpsertMeasurement stores one snapshot per user per day; a second
// submission the same day overwrites the earlier one.
func UpsertMeasurement(userID uint, input MeasurementInput) (*models.BodyMeasurement, error) {
	day := dayStartLocal(time.Now())
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date, use YYYY-MM-DD", ErrValidation)
		}
		day = dayStartLocal(parsed)
	}

	m := models.BodyMeasurement{
		UserID:   userID,
		Date:     day,
		WeightKg: input.WeightKg,
		NeckCm:   input.NeckCm,
		WaistCm:  input.WaistCm,
		HipCm:    input.HipCm,
		ChestCm:  input.ChestCm,
		BicepCm:  input.BicepCm,
		ThighCm:  input.ThighCm,
	}

	err := config.DB.
		Where("user_id = ? AND date = ?", userID, day).
		Assign(m).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &m, nil
}

// RecordWeightMeasurement is the slim variant used by the profile-update
// hook: only the weight is known.
func RecordWeightMeasurement(userID uint, weightKg float64, at time.Time) error {
	day := dayStartLocal(at)
	m := models.BodyMeasurement{
		UserID:   userID,
		Date:     day,
		WeightKg: weightKg,
	}
	return config.DB.
		Where("user_id = ? AND date = ?", userID, day).
		Assign(map[string]any{"weight_kg": weightKg}).
		FirstOrCreate(&m).Error
}

func ListMeasurements(userID uint, limit int) ([]models.BodyMeasurement, error) {
	if limit <= 0 || limit > 365 {
		limit = 90
	}
	var history []models.BodyMeasurement
	err := config.DB.
		Where("user_id = ?", userID).
		Order("date desc").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return history, nil
}
