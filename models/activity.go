package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityRecord is the per-account audit trail of eco actions. Only the 50
// most recent rows are kept; the oldest are evicted on overflow.
type ActivityRecord struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Action      string    `gorm:"not null" json:"action"`
	CarbonSaved float64   `json:"carbon_saved"`
	LoggedAt    time.Time `gorm:"index;not null" json:"logged_at"`
}

// ActivityHistoryLimit caps the audit trail length per account.
const ActivityHistoryLimit = 50
