package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"
	"github.com/studzent/rytmox-backend-sub001/utils"
)

// ProfileInput is a partial profile update: zero-valued fields leave the
// stored value alone, pointer fields update when present.
type ProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"` // YYYY-MM-DD
	Sex       string `json:"sex"`

	HeightCm float64  `json:"height_cm"`
	WeightKg float64  `json:"weight_kg"`
	NeckCm   *float64 `json:"neck_cm"`
	WaistCm  *float64 `json:"waist_cm"`
	HipCm    *float64 `json:"hip_cm"`
	ChestCm  *float64 `json:"chest_cm"`
	BicepCm  *float64 `json:"bicep_cm"`
	ThighCm  *float64 `json:"thigh_cm"`

	ActivityLevel string `json:"activity_level"`
	GoalType      string `json:"goal_type"`
	WeightUnit    string `json:"weight_unit"`

	ProfilePicture string `json:"profile_picture"` // base64 data URL
	Onboarded      *bool  `json:"onboarded"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	var bmi float64
	if v, err := utils.CalculateBMI(user.HeightCm, user.WeightKg); err == nil {
		bmi = v
	}

	return map[string]interface{}{
		"id":              user.ID,
		"user_id":         user.UserID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"birthday":        user.Birthday.Format("2006-01-02"),
		"age":             age,
		"sex":             user.Sex,
		"height_cm":       user.HeightCm,
		"weight_kg":       user.WeightKg,
		"neck_cm":         user.NeckCm,
		"waist_cm":        user.WaistCm,
		"hip_cm":          user.HipCm,
		"chest_cm":        user.ChestCm,
		"bicep_cm":        user.BicepCm,
		"thigh_cm":        user.ThighCm,
		"activity_level":  user.ActivityLevel,
		"goal_type":       user.GoalType,
		"weight_unit":     user.WeightUnit,
		"bmi":             bmi,
		"bmi_category":    utils.BMICategory(bmi),
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"onboarded":       user.Onboarded,
	}, nil
}

// UpdateUserProfile applies a partial update and, when a field the target
// computation tracks changed, recomputes nutrition targets. Returns the
// refreshed targets when a recomputation ran, nil otherwise.
func UpdateUserProfile(userID uint, input ProfileInput) (*models.NutritionTargets, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	weightChanged := false
	trackedChanged := false

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil && !birthday.Equal(user.Birthday) {
			user.Birthday = birthday
			trackedChanged = true
		}
	}
	if input.Sex != "" && input.Sex != user.Sex {
		user.Sex = input.Sex
		trackedChanged = true
	}
	if input.HeightCm > 0 && input.HeightCm != user.HeightCm {
		user.HeightCm = input.HeightCm
		trackedChanged = true
	}
	if input.WeightKg > 0 && input.WeightKg != user.WeightKg {
		user.WeightKg = input.WeightKg
		weightChanged = true
	}
	if input.NeckCm != nil {
		user.NeckCm = input.NeckCm
	}
	if input.WaistCm != nil {
		user.WaistCm = input.WaistCm
	}
	if input.HipCm != nil {
		user.HipCm = input.HipCm
	}
	if input.ChestCm != nil {
		user.ChestCm = input.ChestCm
	}
	if input.BicepCm != nil {
		user.BicepCm = input.BicepCm
	}
	if input.ThighCm != nil {
		user.ThighCm = input.ThighCm
	}
	if input.ActivityLevel != "" && input.ActivityLevel != user.ActivityLevel {
		if _, ok := activityMultipliers[input.ActivityLevel]; !ok {
			return nil, fmt.Errorf("%w: unknown activity level %q", ErrValidation, input.ActivityLevel)
		}
		user.ActivityLevel = input.ActivityLevel
		trackedChanged = true
	}
	if input.GoalType != "" && input.GoalType != user.GoalType {
		if _, ok := goalCalorieOffsets[input.GoalType]; !ok {
			return nil, fmt.Errorf("%w: unknown goal type %q", ErrValidation, input.GoalType)
		}
		user.GoalType = input.GoalType
		trackedChanged = true
	}
	if input.WeightUnit != "" {
		user.WeightUnit = input.WeightUnit
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		user.ProfilePicture = url
	}
	if input.Onboarded != nil {
		user.Onboarded = *input.Onboarded
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if weightChanged {
		// Keep the measurement history in step with the profile.
		if err := RecordWeightMeasurement(userID, user.WeightKg, time.Now()); err != nil {
			utils.Log.Warnw("failed to record weight measurement", "userID", userID, "err", err)
		}
	}

	if weightChanged || trackedChanged {
		eventType := models.TargetEventProfileChange
		reason := "profile fields changed"
		if weightChanged {
			eventType = models.TargetEventWeightChangeRecalc
			reason = "weight updated"
		}
		targets, err := RecalculateTargets(userID, ProfileInputsFromUser(&user), eventType, reason)
		if err != nil {
			// An incomplete profile (e.g. mid-onboarding, no height yet)
			// is not a reason to fail the profile update itself.
			if errors.Is(err, ErrValidation) {
				utils.Log.Debugw("skipping target recalc for incomplete profile", "userID", userID, "err", err)
				return nil, nil
			}
			return nil, err
		}
		return targets, nil
	}
	return nil, nil
}
