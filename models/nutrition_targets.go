package models

import "time"

// NutritionTargets is the single current target row per user; user_id is
// the primary key so an upsert can never produce duplicates. It always
// reflects the most recent successful computation.
type NutritionTargets struct {
	UserID uint `gorm:"primaryKey" json:"user_id"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
	WaterMl  float64 `json:"water_ml"`

	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`

	// Inputs the current values were derived from
	DerivedWeightKg float64 `json:"derived_weight_kg"`
	GoalType        string  `gorm:"size:20" json:"goal_type"`
	ActivityLevel   string  `gorm:"size:20" json:"activity_level"`

	AutoUpdateEnabled bool      `gorm:"default:true" json:"auto_update_enabled"`
	LastProfileHash   string    `gorm:"size:64" json:"-"`
	LastAutoRecalcAt  time.Time `json:"last_auto_recalc_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
