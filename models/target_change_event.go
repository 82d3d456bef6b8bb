package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TargetEventInit               = "init"
	TargetEventProfileChange      = "profile_change"
	TargetEventScheduledRecalc    = "scheduled_recalc"
	TargetEventWeightChangeRecalc = "weight_change_recalc"
)

// TargetChangeEvent is an append-only audit record of one recomputation
// that actually changed the stored targets. Rows are never updated or
// deleted (user deletion cascades through the user's rows as a whole).
type TargetChangeEvent struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	EventID   uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"event_id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	EventType string         `gorm:"size:32;not null" json:"event_type"`
	Reason    string         `gorm:"type:text" json:"reason"`
	OldValues datatypes.JSON `json:"old_values"`
	NewValues datatypes.JSON `json:"new_values"`
	CreatedAt time.Time      `json:"created_at"`
}
