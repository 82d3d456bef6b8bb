package models

import (
	"time"

	"gorm.io/gorm"
)

// BodyMeasurement is one snapshot per user per day (date truncated to
// local midnight). Re-submitting on the same day overwrites that day's row.
type BodyMeasurement struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"`

	WeightKg float64 `gorm:"not null"`
	NeckCm   *float64
	WaistCm  *float64
	HipCm    *float64
	ChestCm  *float64
	BicepCm  *float64
	ThighCm  *float64
}
