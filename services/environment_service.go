package services

import (
	"errors"
	"fmt"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"

	"gorm.io/gorm"
)

// EnvironmentInput carries the name plus the equipment identifiers the
// mobile client selected for this location.
type EnvironmentInput struct {
	Name      string          `json:"name" binding:"required"`
	Equipment []EquipmentItem `json:"equipment"`
}

type EquipmentItem struct {
	EquipmentID string `json:"equipment_id" binding:"required"`
	Label       string `json:"label"`
}

func CreateEnvironment(userID uint, input EnvironmentInput) (*models.TrainingEnvironment, error) {
	env := models.TrainingEnvironment{
		UserID: userID,
		Name:   input.Name,
	}
	for _, it := range input.Equipment {
		env.Equipment = append(env.Equipment, models.EnvironmentEquipment{
			EquipmentID: it.EquipmentID,
			Label:       it.Label,
		})
	}
	if err := config.DB.Create(&env).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &env, nil
}

func ListEnvironments(userID uint) ([]models.TrainingEnvironment, error) {
	var envs []models.TrainingEnvironment
	err := config.DB.
		Preload("Equipment").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&envs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return envs, nil
}

// UpdateEnvironment renames the profile and replaces its equipment set.
func UpdateEnvironment(userID, envID uint, input EnvironmentInput) (*models.TrainingEnvironment, error) {
	var env models.TrainingEnvironment
	if err := config.DB.Where("id = ? AND user_id = ?", envID, userID).First(&env).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: environment %d", ErrNotFound, envID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		env.Name = input.Name
		if err := tx.Save(&env).Error; err != nil {
			return err
		}
		if err := tx.Where("training_environment_id = ?", env.ID).
			Delete(&models.EnvironmentEquipment{}).Error; err != nil {
			return err
		}
		for _, it := range input.Equipment {
			eq := models.EnvironmentEquipment{
				TrainingEnvironmentID: env.ID,
				EquipmentID:           it.EquipmentID,
				Label:                 it.Label,
			}
			if err := tx.Create(&eq).Error; err != nil {
				return err
			}
			env.Equipment = append(env.Equipment, eq)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &env, nil
}

func DeleteEnvironment(userID, envID uint) error {
	res := config.DB.Where("id = ? AND user_id = ?", envID, userID).Delete(&models.TrainingEnvironment{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: environment %d", ErrNotFound, envID)
	}
	return nil
}

// ActivateEnvironment flags one profile active and deactivates every other
// profile of the same user in the same transaction, so at most one is
// active no matter what state it starts from.
func ActivateEnvironment(userID, envID uint) (*models.TrainingEnvironment, error) {
	var env models.TrainingEnvironment
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", envID, userID).First(&env).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: environment %d", ErrNotFound, envID)
			}
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if err := tx.Model(&models.TrainingEnvironment{}).
			Where("user_id = ? AND id <> ?", userID, envID).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if err := tx.Model(&env).Update("is_active", true).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	env.IsActive = true
	return &env, nil
}

// GetActiveEnvironment returns (nil, nil) when the user has none active.
func GetActiveEnvironment(userID uint) (*models.TrainingEnvironment, error) {
	var env models.TrainingEnvironment
	err := config.DB.
		Preload("Equipment").
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&env).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &env, nil
}
