package models

import (
	"time"

	"gorm.io/gorm"
)

// MealRecord is one logged meal. Never mutated after creation.
type MealRecord struct {
	gorm.Model
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	LoggedAt     time.Time      `gorm:"index;not null" json:"logged_at"`
	TotalCarbon  float64        `json:"total_carbon"`   // sum of snapshot footprints
	IsPlantBased bool           `json:"is_plant_based"` // true iff every snapshot is plant-based
	Foods        []FoodSnapshot `json:"foods"`
}

// FoodSnapshot freezes the menu/detection fields of one food at log time.
type FoodSnapshot struct {
	gorm.Model
	MealRecordID    uint         `gorm:"index;not null" json:"-"`
	Name            string       `gorm:"not null" json:"name"`
	Category        FoodCategory `gorm:"type:varchar(20);not null" json:"category"`
	CarbonFootprint float64      `json:"carbon_footprint"`
	IsPlantBased    bool         `json:"is_plant_based"`
}
