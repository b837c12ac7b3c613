package models

import (
	"time"

	"gorm.io/gorm"
)

// UserStats is the single mutable aggregate per account. It is updated
// incrementally on every meal log, never recomputed from the ledger.
type UserStats struct {
	gorm.Model
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CarbonSaved      float64   `json:"carbon_saved"` // cumulative kg CO₂
	MealsTracked     int       `json:"meals_tracked"`
	ImpactScore      int       `json:"impact_score"` // saturates at 100
	CurrentStreak    int       `json:"current_streak"`
	LastActivityDate time.Time `json:"last_activity_date"`
}
