package models

import (
	"time"

	"gorm.io/gorm"
)

// PopularityRecord counts how often a menu item has been selected. One row
// per distinct item, selections only ever grow.
type PopularityRecord struct {
	gorm.Model
	ItemID       uint      `gorm:"uniqueIndex;not null" json:"item_id"`
	ItemName     string    `gorm:"not null" json:"item_name"`
	Selections   int       `gorm:"not null;default:0" json:"selections"`
	LastSelected time.Time `json:"last_selected"`
}
