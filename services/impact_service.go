package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecotaste-backend/models"

	"gorm.io/gorm"
)

// Savings credit rates per logged meal. Plant-based meals are credited at
// 2.5x the rate of mixed meals; a fixed business rule, not derived.
const (
	plantBasedSavingsRate = 0.5
	mixedSavingsRate      = 0.2

	impactScorePerMeal = 3
	impactScoreMax     = 100
)

var ErrEmptyMeal = errors.New("meal must contain at least one food")

// FoodInput is one food going into a meal log, either picked from the menu or
// confirmed from a photo scan.
type FoodInput struct {
	Name            string              `json:"name" binding:"required"`
	Category        models.FoodCategory `json:"category" binding:"required"`
	CarbonFootprint float64             `json:"carbon_footprint"`
	IsPlantBased    bool                `json:"is_plant_based"`
}

// ImpactService turns meal logs into carbon-savings stats: cumulative saved
// CO₂, meal count, streak and impact score, plus the activity audit trail.
type ImpactService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewImpactService(db *gorm.DB) *ImpactService {
	return &ImpactService{db: db, now: time.Now}
}

// LogMeal appends a meal record and updates the account's stats and activity
// trail in a single serializable transaction, so concurrent logs from two
// devices cannot drop a stats update.
func (s *ImpactService) LogMeal(ctx context.Context, userID uint, foods []FoodInput) (*models.MealRecord, *models.UserStats, *models.ActivityRecord, error) {
	if len(foods) == 0 {
		return nil, nil, nil, ErrEmptyMeal
	}
	for _, f := range foods {
		if f.CarbonFootprint < 0 {
			return nil, nil, nil, fmt.Errorf("food %q has negative carbon footprint", f.Name)
		}
		if !f.Category.IsValid() {
			return nil, nil, nil, fmt.Errorf("food %q has unknown category %q", f.Name, f.Category)
		}
	}

	now := s.now()

	meal := &models.MealRecord{
		UserID:       userID,
		LoggedAt:     now,
		IsPlantBased: true,
	}
	for _, f := range foods {
		meal.TotalCarbon += f.CarbonFootprint
		meal.IsPlantBased = meal.IsPlantBased && f.IsPlantBased
		meal.Foods = append(meal.Foods, models.FoodSnapshot{
			Name:            f.Name,
			Category:        f.Category,
			CarbonFootprint: f.CarbonFootprint,
			IsPlantBased:    f.IsPlantBased,
		})
	}

	rate := mixedSavingsRate
	action := "Logged eco-friendly meal"
	if meal.IsPlantBased {
		rate = plantBasedSavingsRate
		action = "Logged plant-based meal"
	}
	carbonSaved := meal.TotalCarbon * rate

	var stats models.UserStats
	var activity models.ActivityRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}

		if err := tx.Where(models.UserStats{UserID: userID}).FirstOrCreate(&stats).Error; err != nil {
			return err
		}

		stats.CurrentStreak = nextStreak(stats.CurrentStreak, stats.LastActivityDate, now)
		stats.CarbonSaved += carbonSaved
		stats.MealsTracked++
		stats.ImpactScore = min(impactScoreMax, stats.ImpactScore+impactScorePerMeal)
		stats.LastActivityDate = now
		if err := tx.Save(&stats).Error; err != nil {
			return err
		}

		activity = models.ActivityRecord{
			UserID:      userID,
			Action:      action,
			CarbonSaved: carbonSaved,
			LoggedAt:    now,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		return trimActivities(tx, userID)
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, nil, nil, err
	}

	return meal, &stats, &activity, nil
}

// nextStreak applies the consecutive-day rule: logging on the day after the
// last activity extends the streak, a same-day repeat leaves it alone, and
// anything else resets it to 1.
func nextStreak(current int, lastActivity, now time.Time) int {
	if lastActivity.IsZero() {
		return 1
	}
	yesterday := now.AddDate(0, 0, -1)
	switch {
	case sameDay(lastActivity, yesterday):
		return current + 1
	case !sameDay(lastActivity, now):
		return 1
	default:
		return current
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// trimActivities evicts everything beyond the newest ActivityHistoryLimit
// rows for the account.
func trimActivities(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&models.ActivityRecord{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	excess := count - models.ActivityHistoryLimit
	if excess <= 0 {
		return nil
	}

	var ids []uint
	if err := tx.Model(&models.ActivityRecord{}).
		Where("user_id = ?", userID).
		Order("logged_at ASC, id ASC").
		Limit(int(excess)).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&models.ActivityRecord{}, ids).Error
}

// Stats returns the account's aggregate, zero-valued if nothing was logged yet.
func (s *ImpactService) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Activities returns the audit trail, newest first, at most 50 rows.
func (s *ImpactService) Activities(ctx context.Context, userID uint) ([]models.ActivityRecord, error) {
	var activities []models.ActivityRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").
		Limit(models.ActivityHistoryLimit).
		Find(&activities).Error
	return activities, err
}

// Meals returns the account's meal history, newest first.
func (s *ImpactService) Meals(ctx context.Context, userID uint) ([]models.MealRecord, error) {
	var meals []models.MealRecord
	err := s.db.WithContext(ctx).
		Preload("Foods").
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Find(&meals).Error
	return meals, err
}
