package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodCategory is the closed set of categories a food can carry. Everything
// downstream (detection, logging, breakdowns) speaks this vocabulary.
type FoodCategory string

const (
	CategoryProtein    FoodCategory = "protein"
	CategoryVegetables FoodCategory = "vegetables"
	CategoryGrains     FoodCategory = "grains"
	CategoryDairy      FoodCategory = "dairy"
	CategoryFruits     FoodCategory = "fruits"
	CategoryBeverages  FoodCategory = "beverages"
	CategoryDessert    FoodCategory = "dessert"
)

func (c FoodCategory) IsValid() bool {
	switch c {
	case CategoryProtein, CategoryVegetables, CategoryGrains, CategoryDairy,
		CategoryFruits, CategoryBeverages, CategoryDessert:
		return true
	}
	return false
}

// MenuItem is one entry of the cafeteria's current catalog.
type MenuItem struct {
	gorm.Model
	Name            string       `gorm:"not null" json:"name"`
	Category        FoodCategory `gorm:"type:varchar(20);not null" json:"category"`
	CarbonFootprint float64      `json:"carbon_footprint"` // kg CO₂ per serving
	IsPlantBased    bool         `json:"is_plant_based"`
	AddedDate       time.Time    `json:"added_date"`
}
