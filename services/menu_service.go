package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ecotaste-backend/models"

	"gorm.io/gorm"
)

// CommonFood is a quick-add reference entry with a typical carbon footprint.
type CommonFood struct {
	Name            string              `json:"name"`
	Category        models.FoodCategory `json:"category"`
	CarbonFootprint float64             `json:"carbon_footprint"`
	IsPlantBased    bool                `json:"is_plant_based"`
}

// MenuService owns the cafeteria catalog. Reads go through an in-memory
// snapshot cache with the database as the source of truth: every write hits
// the database first and invalidates the snapshot, so a warm cache is never
// ahead of nor behind a confirmed write.
type MenuService struct {
	db  *gorm.DB
	now func() time.Time

	mu       sync.RWMutex
	snapshot []models.MenuItem // nil means cold
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db, now: time.Now}
}

// Menu returns the current catalog in insertion order.
func (s *MenuService) Menu(ctx context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	if s.snapshot != nil {
		cached := make([]models.MenuItem, len(s.snapshot))
		copy(cached, s.snapshot)
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = items
	s.mu.Unlock()

	result := make([]models.MenuItem, len(items))
	copy(result, items)
	return result, nil
}

func (s *MenuService) invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

// Add creates a menu item. Cafeteria role only (enforced by the route).
func (s *MenuService) Add(ctx context.Context, name string, category models.FoodCategory, carbonFootprint float64, isPlantBased bool) (*models.MenuItem, error) {
	if name == "" {
		return nil, fmt.Errorf("menu item name is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if carbonFootprint < 0 {
		return nil, fmt.Errorf("carbon footprint must be >= 0")
	}

	item := &models.MenuItem{
		Name:            name,
		Category:        category,
		CarbonFootprint: carbonFootprint,
		IsPlantBased:    isPlantBased,
		AddedDate:       s.now(),
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	s.invalidate()
	return item, nil
}

func (s *MenuService) Remove(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.invalidate()
	return nil
}

// ClearToday wipes the whole catalog so staff can start a fresh menu.
func (s *MenuService) ClearToday(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.MenuItem{}).Error; err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Get returns a single item by id, bypassing the cache.
func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CommonFoods is the quick-add carbon reference table.
func (s *MenuService) CommonFoods() []CommonFood {
	return commonFoods
}

var commonFoods = []CommonFood{
	{Name: "Grilled Chicken", Category: models.CategoryProtein, CarbonFootprint: 2.5, IsPlantBased: false},
	{Name: "Beef Burger", Category: models.CategoryProtein, CarbonFootprint: 4.5, IsPlantBased: false},
	{Name: "Fish Fillet", Category: models.CategoryProtein, CarbonFootprint: 1.8, IsPlantBased: false},
	{Name: "Lentil Soup", Category: models.CategoryProtein, CarbonFootprint: 0.4, IsPlantBased: true},
	{Name: "Bean Burrito", Category: models.CategoryProtein, CarbonFootprint: 0.5, IsPlantBased: true},
	{Name: "Tofu Stir Fry", Category: models.CategoryProtein, CarbonFootprint: 0.6, IsPlantBased: true},
	{Name: "Scrambled Eggs", Category: models.CategoryProtein, CarbonFootprint: 1.5, IsPlantBased: false},
	{Name: "Garden Salad", Category: models.CategoryVegetables, CarbonFootprint: 0.2, IsPlantBased: true},
	{Name: "Steamed Broccoli", Category: models.CategoryVegetables, CarbonFootprint: 0.3, IsPlantBased: true},
	{Name: "Roasted Carrots", Category: models.CategoryVegetables, CarbonFootprint: 0.2, IsPlantBased: true},
	{Name: "Mashed Potatoes", Category: models.CategoryVegetables, CarbonFootprint: 0.3, IsPlantBased: true},
	{Name: "Corn on the Cob", Category: models.CategoryVegetables, CarbonFootprint: 0.3, IsPlantBased: true},
	{Name: "Brown Rice", Category: models.CategoryGrains, CarbonFootprint: 0.8, IsPlantBased: true},
	{Name: "Pasta", Category: models.CategoryGrains, CarbonFootprint: 0.6, IsPlantBased: true},
	{Name: "Whole Wheat Bread", Category: models.CategoryGrains, CarbonFootprint: 0.3, IsPlantBased: true},
	{Name: "Quinoa", Category: models.CategoryGrains, CarbonFootprint: 0.5, IsPlantBased: true},
	{Name: "Mac & Cheese", Category: models.CategoryDairy, CarbonFootprint: 1.8, IsPlantBased: false},
	{Name: "Cheese Pizza", Category: models.CategoryDairy, CarbonFootprint: 2.2, IsPlantBased: false},
	{Name: "Yogurt Parfait", Category: models.CategoryDairy, CarbonFootprint: 1.2, IsPlantBased: false},
	{Name: "Apple Slices", Category: models.CategoryFruits, CarbonFootprint: 0.1, IsPlantBased: true},
	{Name: "Orange Wedges", Category: models.CategoryFruits, CarbonFootprint: 0.1, IsPlantBased: true},
	{Name: "Banana", Category: models.CategoryFruits, CarbonFootprint: 0.1, IsPlantBased: true},
	{Name: "Fruit Cup", Category: models.CategoryFruits, CarbonFootprint: 0.2, IsPlantBased: true},
	{Name: "Milk", Category: models.CategoryBeverages, CarbonFootprint: 0.8, IsPlantBased: false},
	{Name: "Orange Juice", Category: models.CategoryBeverages, CarbonFootprint: 0.3, IsPlantBased: true},
	{Name: "Water", Category: models.CategoryBeverages, CarbonFootprint: 0.01, IsPlantBased: true},
}
