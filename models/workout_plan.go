package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WorkoutPlan stores one generated plan together with the request
// parameters it was generated from, so history stays reproducible.
type WorkoutPlan struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Title  string `gorm:"size:200" json:"title"`

	Params datatypes.JSON `json:"params"`
	Plan   datatypes.JSON `json:"plan"`
}
