package models

import (
	"time"

	"gorm.io/gorm"
)

// WasteQuantity is the closed set of reportable waste amounts.
type WasteQuantity string

const (
	WasteLow    WasteQuantity = "low"
	WasteMedium WasteQuantity = "medium"
	WasteHigh   WasteQuantity = "high"
)

func (q WasteQuantity) IsValid() bool {
	switch q {
	case WasteLow, WasteMedium, WasteHigh:
		return true
	}
	return false
}

// WasteRecord is one append-only waste report against a menu item.
type WasteRecord struct {
	gorm.Model
	ItemID   uint          `gorm:"index;not null" json:"item_id"`
	ItemName string        `gorm:"not null" json:"item_name"`
	Quantity WasteQuantity `gorm:"type:varchar(8);not null" json:"quantity"`
	Notes    string        `gorm:"size:255" json:"notes,omitempty"`
	LoggedAt time.Time     `gorm:"index;not null" json:"logged_at"`
}
