package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/studzent/rytmox-backend-sub001/models"
	"github.com/studzent/rytmox-backend-sub001/utils"
)

// activityMultipliers maps activity level to its TDEE multiplier. This is
// the single source of truth for valid activity levels; it doubles as
// input validation in ComputeTargets.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"high":      1.725,
	"very_high": 1.9,
}

// goalCalorieOffsets is the fractional adjustment applied to TDEE per goal.
var goalCalorieOffsets = map[string]float64{
	"lose_weight":    -0.15,
	"maintain":       0,
	"gain_muscle":    0.10,
	"recomposition":  -0.05,
	"performance":    0.05,
	"healthy_habits": 0,
}

type macroSplit struct {
	Protein, Fat, Carbs float64 // fractions of target calories; sum to 1
}

var goalMacroSplits = map[string]macroSplit{
	"lose_weight":    {Protein: 0.30, Fat: 0.30, Carbs: 0.40},
	"maintain":       {Protein: 0.25, Fat: 0.30, Carbs: 0.45},
	"gain_muscle":    {Protein: 0.30, Fat: 0.25, Carbs: 0.45},
	"recomposition":  {Protein: 0.35, Fat: 0.30, Carbs: 0.35},
	"performance":    {Protein: 0.25, Fat: 0.25, Carbs: 0.50},
	"healthy_habits": {Protein: 0.25, Fat: 0.30, Carbs: 0.45},
}

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0

	waterMlPerKg = 35.0

	// Assumed age when the profile has no date of birth.
	defaultAgeYears = 30

	// Mifflin-St Jeor sex constants. Unspecified sex uses the average of
	// the two (-78).
	bmrOffsetMale   = 5.0
	bmrOffsetFemale = -161.0
)

// ProfileInputs is the subset of a user's profile that target computation
// depends on. Everything staleness detection hashes lives here.
type ProfileInputs struct {
	WeightKg      float64
	HeightCm      float64
	AgeYears      int
	Sex           string // "male" | "female" | ""
	ActivityLevel string
	GoalType      string
}

// TargetValues is one complete computation result; never partial.
type TargetValues struct {
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
	WaterMl  float64 `json:"water_ml"`
}

func ProfileInputsFromUser(u *models.User) ProfileInputs {
	age := defaultAgeYears
	if !u.Birthday.IsZero() {
		age = utils.CalculateAge(u.Birthday)
	}
	return ProfileInputs{
		WeightKg:      u.WeightKg,
		HeightCm:      u.HeightCm,
		AgeYears:      age,
		Sex:           strings.ToLower(strings.TrimSpace(u.Sex)),
		ActivityLevel: u.ActivityLevel,
		GoalType:      u.GoalType,
	}
}

// ComputeTargets derives BMR (Mifflin-St Jeor), TDEE and daily targets
// from a profile snapshot. Pure: same input, same output.
func ComputeTargets(in ProfileInputs) (TargetValues, error) {
	if in.WeightKg <= 0 {
		return TargetValues{}, fmt.Errorf("%w: weight must be positive", ErrValidation)
	}
	if in.HeightCm <= 0 {
		return TargetValues{}, fmt.Errorf("%w: height must be positive", ErrValidation)
	}
	mult, ok := activityMultipliers[in.ActivityLevel]
	if !ok {
		return TargetValues{}, fmt.Errorf("%w: unknown activity level %q", ErrValidation, in.ActivityLevel)
	}
	offset, ok := goalCalorieOffsets[in.GoalType]
	if !ok {
		return TargetValues{}, fmt.Errorf("%w: unknown goal type %q", ErrValidation, in.GoalType)
	}
	split := goalMacroSplits[in.GoalType]

	age := in.AgeYears
	if age <= 0 {
		age = defaultAgeYears
	}

	var sexOffset float64
	switch in.Sex {
	case "male":
		sexOffset = bmrOffsetMale
	case "female":
		sexOffset = bmrOffsetFemale
	default:
		sexOffset = (bmrOffsetMale + bmrOffsetFemale) / 2
	}

	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(age) + sexOffset
	tdee := bmr * mult
	calories := math.Round(tdee * (1 + offset))

	return TargetValues{
		BMR:      math.Round(bmr),
		TDEE:     math.Round(tdee),
		Calories: calories,
		ProteinG: math.Round(calories * split.Protein / kcalPerGramProtein),
		FatG:     math.Round(calories * split.Fat / kcalPerGramFat),
		CarbsG:   math.Round(calories * split.Carbs / kcalPerGramCarbs),
		WaterMl:  math.Round(in.WeightKg * waterMlPerKg),
	}, nil
}

// ProfileHash fingerprints the fields that affect targets. Stored on the
// current row so staleness checks can skip recomputation.
func ProfileHash(in ProfileInputs) string {
	age := in.AgeYears
	if age <= 0 {
		age = defaultAgeYears
	}
	canonical := fmt.Sprintf("w=%.2f|h=%.2f|age=%d|sex=%s|activity=%s|goal=%s",
		in.WeightKg, in.HeightCm, age, in.Sex, in.ActivityLevel, in.GoalType)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// ShouldRecompute decides whether stored targets are stale. A hash change
// always wins, regardless of auto_update_enabled; the time floor only
// applies when auto-update is on (it covers drift in age-based values).
func ShouldRecompute(stored *models.NutritionTargets, in ProfileInputs, now time.Time, minInterval time.Duration) bool {
	if stored == nil {
		return true
	}
	if ProfileHash(in) != stored.LastProfileHash {
		return true
	}
	if stored.AutoUpdateEnabled && now.Sub(stored.LastAutoRecalcAt) >= minInterval {
		return true
	}
	return false
}
