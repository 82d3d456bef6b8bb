package services

import (
	"encoding/json"
	"fmt"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"

	"gorm.io/datatypes"
)

// SaveWorkoutPlan persists a generated plan with the parameters that
// produced it. The title is pulled from the plan JSON when present.
func SaveWorkoutPlan(userID uint, req WorkoutRequest, plan json.RawMessage) (*models.WorkoutPlan, error) {
	var head struct {
		Title string `json:"title"`
	}
	_ = json.Unmarshal(plan, &head)

	params, _ := json.Marshal(req)

	wp := models.WorkoutPlan{
		UserID: userID,
		Title:  head.Title,
		Params: datatypes.JSON(params),
		Plan:   datatypes.JSON(plan),
	}
	if err := config.DB.Create(&wp).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &wp, nil
}

func ListWorkoutPlans(userID uint, limit int) ([]models.WorkoutPlan, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var plans []models.WorkoutPlan
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return plans, nil
}
