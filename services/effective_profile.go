package services

import (
	"strings"

	"github.com/studzent/rytmox-backend-sub001/models"
	"github.com/studzent/rytmox-backend-sub001/utils"
)

// EffectiveProfile is the profile snapshot AI prompts are assembled from:
// the stored user profile with any request-supplied overrides applied on
// top. Overrides win field by field; absent fields fall through.
type EffectiveProfile struct {
	AgeYears      int     `json:"age_years"`
	Sex           string  `json:"sex"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	ActivityLevel string  `json:"activity_level"`
	GoalType      string  `json:"goal_type"`
	WeightUnit    string  `json:"weight_unit"`
}

type ProfileOverrides struct {
	AgeYears      *int     `json:"age_years"`
	Sex           *string  `json:"sex"`
	WeightKg      *float64 `json:"weight_kg"`
	HeightCm      *float64 `json:"height_cm"`
	ActivityLevel *string  `json:"activity_level"`
	GoalType      *string  `json:"goal_type"`
}

func EffectiveProfileFor(u *models.User, o ProfileOverrides) EffectiveProfile {
	p := EffectiveProfile{
		AgeYears:      defaultAgeYears,
		Sex:           strings.ToLower(strings.TrimSpace(u.Sex)),
		WeightKg:      u.WeightKg,
		HeightCm:      u.HeightCm,
		ActivityLevel: u.ActivityLevel,
		GoalType:      u.GoalType,
		WeightUnit:    u.WeightUnit,
	}
	if !u.Birthday.IsZero() {
		p.AgeYears = utils.CalculateAge(u.Birthday)
	}

	if o.AgeYears != nil && *o.AgeYears > 0 {
		p.AgeYears = *o.AgeYears
	}
	if o.Sex != nil {
		p.Sex = strings.ToLower(strings.TrimSpace(*o.Sex))
	}
	if o.WeightKg != nil && *o.WeightKg > 0 {
		p.WeightKg = *o.WeightKg
	}
	if o.HeightCm != nil && *o.HeightCm > 0 {
		p.HeightCm = *o.HeightCm
	}
	if o.ActivityLevel != nil && *o.ActivityLevel != "" {
		p.ActivityLevel = *o.ActivityLevel
	}
	if o.GoalType != nil && *o.GoalType != "" {
		p.GoalType = *o.GoalType
	}
	return p
}
