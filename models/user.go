package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity levels and goal types are stored as plain strings; the policy
// engine validates them against the canonical sets in services.
type User struct {
	gorm.Model
	UserID    string `gorm:"uniqueIndex;size:64"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string
	Birthday  time.Time
	Sex       string `gorm:"size:10"` // "male" | "female" | ""

	HeightCm float64
	WeightKg float64
	// Optional circumference measurements, cm
	NeckCm  *float64
	WaistCm *float64
	HipCm   *float64
	ChestCm *float64
	BicepCm *float64
	ThighCm *float64

	ActivityLevel string `gorm:"size:20;default:moderate"`
	GoalType      string `gorm:"size:20;default:maintain"`
	WeightUnit    string `gorm:"size:10;default:kg"` // display preference only; storage is metric

	ProfilePicture string
	MFAEnabled     bool
	MFACode        string
	ResetToken     string
	ResetTokenExp  time.Time
	Disabled       bool
	Onboarded      bool
}
