package models

import (
	"time"

	"gorm.io/gorm"
)

type UserDevice struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Platform    string `gorm:"size:10"` // "android" | "ios"
	TokenHash   string `gorm:"size:64;index"`
	EndpointARN string `gorm:"size:256"`
	Enabled     bool   `gorm:"default:true"`
	LastSeenAt  time.Time
}
