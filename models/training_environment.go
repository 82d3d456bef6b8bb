package models

import "gorm.io/gorm"

// TrainingEnvironment is a named equipment-location profile ("home",
// "office gym", ...). At most one may be active per user; activation goes
// through services.ActivateEnvironment which deactivates the rest.
type TrainingEnvironment struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	IsActive bool   `gorm:"index" json:"is_active"`

	Equipment []EnvironmentEquipment `gorm:"constraint:OnDelete:CASCADE" json:"equipment"`
}

type EnvironmentEquipment struct {
	gorm.Model
	TrainingEnvironmentID uint   `gorm:"index;not null" json:"-"`
	EquipmentID           string `gorm:"size:64;not null" json:"equipment_id"`
	Label                 string `gorm:"size:100" json:"label"`
}
