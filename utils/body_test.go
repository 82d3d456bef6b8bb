package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 80)
	require.NoError(t, err)
	assert.InDelta(t, 24.69, bmi, 0.01)

	_, err = CalculateBMI(0, 80)
	assert.Error(t, err)
	_, err = CalculateBMI(180, -5)
	assert.Error(t, err)
	_, err = CalculateBMI(300, 80)
	assert.Error(t, err)
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(17.0))
	assert.Equal(t, "Normal weight", BMICategory(22.0))
	assert.Equal(t, "Overweight", BMICategory(27.5))
	assert.Equal(t, "Obesity class I", BMICategory(32.0))
	assert.Equal(t, "Obesity class III", BMICategory(41.0))
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	// Birthday already passed this year
	assert.Equal(t, 30, AgeAt(time.Date(1996, 3, 10, 0, 0, 0, 0, time.UTC), now))
	// Birthday later this year
	assert.Equal(t, 29, AgeAt(time.Date(1996, 11, 2, 0, 0, 0, 0, time.UTC), now))
	// Birthday today
	assert.Equal(t, 30, AgeAt(time.Date(1996, 8, 23, 0, 0, 0, 0, time.UTC), now))
	// Future date of birth clamps to zero
	assert.Equal(t, 0, AgeAt(now.AddDate(1, 0, 0), now))
}
