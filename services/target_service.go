package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// targetSnapshot is the before/after payload stored on change events.
type targetSnapshot struct {
	Calories      float64 `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	CarbsG        float64 `json:"carbs_g"`
	WaterMl       float64 `json:"water_ml"`
	WeightKg      float64 `json:"weight_kg"`
	GoalType      string  `json:"goal_type"`
	ActivityLevel string  `json:"activity_level"`
}

func snapshotOf(t *models.NutritionTargets) targetSnapshot {
	return targetSnapshot{
		Calories:      t.Calories,
		ProteinG:      t.ProteinG,
		FatG:          t.FatG,
		CarbsG:        t.CarbsG,
		WaterMl:       t.WaterMl,
		WeightKg:      t.DerivedWeightKg,
		GoalType:      t.GoalType,
		ActivityLevel: t.ActivityLevel,
	}
}

func sameTargets(stored *models.NutritionTargets, v TargetValues) bool {
	return stored.Calories == v.Calories &&
		stored.ProteinG == v.ProteinG &&
		stored.FatG == v.FatG &&
		stored.CarbsG == v.CarbsG &&
		stored.WaterMl == v.WaterMl &&
		stored.BMR == v.BMR &&
		stored.TDEE == v.TDEE
}

// GetTargets returns the current row, or (nil, nil) when none exists yet.
func GetTargets(userID uint) (*models.NutritionTargets, error) {
	var t models.NutritionTargets
	err := config.DB.Where("user_id = ?", userID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &t, nil
}

// EnsureFreshTargets is the opportunistic check run when targets are read:
// recompute only when the stored row is missing, the profile hash moved,
// or the auto-update floor elapsed.
func EnsureFreshTargets(userID uint) (*models.NutritionTargets, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	in := ProfileInputsFromUser(&user)

	stored, err := GetTargets(userID)
	if err != nil {
		return nil, err
	}
	if !ShouldRecompute(stored, in, time.Now(), config.Settings.RecalcMinInterval) {
		return stored, nil
	}

	eventType := models.TargetEventScheduledRecalc
	switch {
	case stored == nil:
		eventType = models.TargetEventInit
	case ProfileHash(in) != stored.LastProfileHash:
		eventType = models.TargetEventProfileChange
	}
	return RecalculateTargets(userID, in, eventType, "automatic check on read")
}

// RecalculateForUser loads the user's current profile and recomputes.
// Used by the explicit recalc endpoint and the profile-update hook.
func RecalculateForUser(userID uint, eventType, reason string) (*models.NutritionTargets, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return RecalculateTargets(userID, ProfileInputsFromUser(&user), eventType, reason)
}

// RecalculateTargets computes targets from the given snapshot and persists
// them. The read-decide-write sequence runs in one transaction so two
// interleaved recalculations cannot drop an audit event. When the computed
// values equal the stored ones, only the bookkeeping fields are refreshed
// and no event is appended; that keeps repeated checks converging.
func RecalculateTargets(userID uint, in ProfileInputs, eventType, reason string) (*models.NutritionTargets, error) {
	vals, err := ComputeTargets(in)
	if err != nil {
		return nil, err
	}
	hash := ProfileHash(in)
	now := time.Now()

	var result *models.NutritionTargets
	changed := false

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var stored models.NutritionTargets
		found := true
		if err := tx.Where("user_id = ?", userID).First(&stored).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
			} else {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
		}

		if found && sameTargets(&stored, vals) {
			if err := tx.Model(&models.NutritionTargets{}).
				Where("user_id = ?", userID).
				Updates(map[string]any{
					"last_profile_hash":   hash,
					"last_auto_recalc_at": now,
				}).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
			stored.LastProfileHash = hash
			stored.LastAutoRecalcAt = now
			result = &stored
			return nil
		}

		next := models.NutritionTargets{
			UserID:            userID,
			Calories:          vals.Calories,
			ProteinG:          vals.ProteinG,
			FatG:              vals.FatG,
			CarbsG:            vals.CarbsG,
			WaterMl:           vals.WaterMl,
			BMR:               vals.BMR,
			TDEE:              vals.TDEE,
			DerivedWeightKg:   in.WeightKg,
			GoalType:          in.GoalType,
			ActivityLevel:     in.ActivityLevel,
			AutoUpdateEnabled: true,
			LastProfileHash:   hash,
			LastAutoRecalcAt:  now,
		}
		if found {
			next.AutoUpdateEnabled = stored.AutoUpdateEnabled
			next.CreatedAt = stored.CreatedAt
			if err := tx.Save(&next).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
		} else {
			if err := tx.Create(&next).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrStorage, err)
			}
		}

		oldJSON := datatypes.JSON([]byte("null"))
		if found {
			b, _ := json.Marshal(snapshotOf(&stored))
			oldJSON = datatypes.JSON(b)
		}
		newJSON, _ := json.Marshal(snapshotOf(&next))

		event := models.TargetChangeEvent{
			EventID:   uuid.New(),
			UserID:    userID,
			EventType: eventType,
			Reason:    reason,
			OldValues: oldJSON,
			NewValues: datatypes.JSON(newJSON),
			CreatedAt: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		changed = true
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		notifyTargetsUpdated(userID, result)
	}
	return result, nil
}

// SetAutoUpdate flips the auto_update_enabled flag on the current row.
func SetAutoUpdate(userID uint, enabled bool) (*models.NutritionTargets, error) {
	stored, err := GetTargets(userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: no targets for user %d", ErrNotFound, userID)
	}
	if err := config.DB.Model(&models.NutritionTargets{}).
		Where("user_id = ?", userID).
		Update("auto_update_enabled", enabled).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	stored.AutoUpdateEnabled = enabled
	return stored, nil
}

// ListTargetEvents returns the change history, newest first.
func ListTargetEvents(userID uint, limit int) ([]models.TargetChangeEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var events []models.TargetChangeEvent
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return events, nil
}
