package services

import (
	"testing"
	"time"

	"github.com/studzent/rytmox-backend-sub001/models"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveProfileNoOverrides(t *testing.T) {
	user := &models.User{
		Sex:           "Female",
		WeightKg:      62,
		HeightCm:      168,
		ActivityLevel: "light",
		GoalType:      "lose_weight",
		WeightUnit:    "kg",
	}

	p := EffectiveProfileFor(user, ProfileOverrides{})
	assert.Equal(t, "female", p.Sex)
	assert.Equal(t, 62.0, p.WeightKg)
	assert.Equal(t, 168.0, p.HeightCm)
	assert.Equal(t, "light", p.ActivityLevel)
	assert.Equal(t, "lose_weight", p.GoalType)
	// No birthday on file falls back to the documented default age.
	assert.Equal(t, 30, p.AgeYears)
}

func TestEffectiveProfileOverridesWin(t *testing.T) {
	user := &models.User{
		Birthday:      time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC),
		Sex:           "male",
		WeightKg:      80,
		HeightCm:      180,
		ActivityLevel: "moderate",
		GoalType:      "maintain",
	}

	weight := 77.5
	goal := "recomposition"
	age := 40

	p := EffectiveProfileFor(user, ProfileOverrides{
		WeightKg: &weight,
		GoalType: &goal,
		AgeYears: &age,
	})

	// Overridden fields take the request values...
	assert.Equal(t, 77.5, p.WeightKg)
	assert.Equal(t, "recomposition", p.GoalType)
	assert.Equal(t, 40, p.AgeYears)
	// ...everything else stays from the stored profile.
	assert.Equal(t, "male", p.Sex)
	assert.Equal(t, 180.0, p.HeightCm)
	assert.Equal(t, "moderate", p.ActivityLevel)
}

func TestEffectiveProfileIgnoresEmptyOverrides(t *testing.T) {
	user := &models.User{WeightKg: 80, HeightCm: 180, ActivityLevel: "moderate", GoalType: "maintain"}

	zero := 0.0
	empty := ""
	p := EffectiveProfileFor(user, ProfileOverrides{
		WeightKg:      &zero,
		ActivityLevel: &empty,
	})
	assert.Equal(t, 80.0, p.WeightKg)
	assert.Equal(t, "moderate", p.ActivityLevel)
}
