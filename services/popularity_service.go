package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"ecotaste-backend/models"

	"gorm.io/gorm"
)

// WastedItem is one row of the most-wasted ranking.
type WastedItem struct {
	ItemName   string `json:"item_name"`
	WasteScore int    `json:"waste_score"`
}

// PopularityService reduces raw selection and waste events into the ranked
// summaries the recommendation engine and the insights screens read.
type PopularityService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPopularityService(db *gorm.DB) *PopularityService {
	return &PopularityService{db: db, now: time.Now}
}

// RecordSelection bumps the selection counter for an item, creating the row
// on first selection.
func (s *PopularityService) RecordSelection(ctx context.Context, itemID uint, itemName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.PopularityRecord
		err := tx.Where("item_id = ?", itemID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = models.PopularityRecord{
				ItemID:       itemID,
				ItemName:     itemName,
				Selections:   1,
				LastSelected: s.now(),
			}
			return tx.Create(&rec).Error
		}
		if err != nil {
			return err
		}

		rec.Selections++
		rec.LastSelected = s.now()
		return tx.Save(&rec).Error
	})
}

// TopItems returns up to n records ordered by selections, ties kept in
// first-seen order.
func (s *PopularityService) TopItems(ctx context.Context, n int) ([]models.PopularityRecord, error) {
	var records []models.PopularityRecord
	err := s.db.WithContext(ctx).
		Order("selections DESC, id ASC").
		Limit(n).
		Find(&records).Error
	return records, err
}

// LogWaste appends a waste report. Always succeeds for a valid quantity.
func (s *PopularityService) LogWaste(ctx context.Context, itemID uint, itemName string, quantity models.WasteQuantity, notes string) (*models.WasteRecord, error) {
	if !quantity.IsValid() {
		return nil, fmt.Errorf("unknown waste quantity %q", quantity)
	}

	rec := &models.WasteRecord{
		ItemID:   itemID,
		ItemName: itemName,
		Quantity: quantity,
		Notes:    notes,
		LoggedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// WasteRecords returns the full append-only waste ledger, oldest first.
func (s *PopularityService) WasteRecords(ctx context.Context) ([]models.WasteRecord, error) {
	var records []models.WasteRecord
	err := s.db.WithContext(ctx).Order("id ASC").Find(&records).Error
	return records, err
}

// MostWastedItems ranks items by their weighted waste score, ties kept in
// first-seen order, at most n rows.
func (s *PopularityService) MostWastedItems(ctx context.Context, n int) ([]WastedItem, error) {
	records, err := s.WasteRecords(ctx)
	if err != nil {
		return nil, err
	}
	return rankWastedItems(records, n), nil
}

func rankWastedItems(records []models.WasteRecord, n int) []WastedItem {
	scores := make(map[string]int)
	var order []string // item names in first-seen order

	for _, rec := range records {
		if _, seen := scores[rec.ItemName]; !seen {
			order = append(order, rec.ItemName)
		}
		scores[rec.ItemName] += wasteWeight(rec.Quantity)
	}

	items := make([]WastedItem, 0, len(order))
	for _, name := range order {
		items = append(items, WastedItem{ItemName: name, WasteScore: scores[name]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].WasteScore > items[j].WasteScore
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func wasteWeight(q models.WasteQuantity) int {
	switch q {
	case models.WasteHigh:
		return 3
	case models.WasteMedium:
		return 2
	case models.WasteLow:
		return 1
	}
	return 0 // unreachable for records that passed validation
}
