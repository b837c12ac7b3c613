package services

import (
	"context"
	"math"

	"ecotaste-backend/models"

	"gorm.io/gorm"
)

// WeeklyGoalKg is the fixed weekly carbon-savings goal shown on the stats card.
const WeeklyGoalKg = 10.0

type CategoryShare struct {
	Category models.FoodCategory `json:"category"`
	Count    int                 `json:"count"`
	Percent  float64             `json:"percent"`
}

type StatsSummary struct {
	Stats             models.UserStats `json:"stats"`
	WeeklyGoalKg      float64          `json:"weekly_goal_kg"`
	GoalProgressPct   float64          `json:"goal_progress_pct"`
	CategoryBreakdown []CategoryShare  `json:"category_breakdown"`
}

// StatsService assembles the dashboard summary: the raw aggregate, progress
// against the weekly goal, and the share of each food category across the
// account's logged meals.
type StatsService struct {
	db     *gorm.DB
	impact *ImpactService
}

func NewStatsService(db *gorm.DB, impact *ImpactService) *StatsService {
	return &StatsService{db: db, impact: impact}
}

func (s *StatsService) Summary(ctx context.Context, userID uint) (*StatsSummary, error) {
	stats, err := s.impact.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := math.Min(100, stats.CarbonSaved/WeeklyGoalKg*100)

	type row struct {
		Category models.FoodCategory
		Count    int
	}
	var rows []row
	err = s.db.WithContext(ctx).
		Model(&models.FoodSnapshot{}).
		Select("food_snapshots.category, COUNT(*) as count").
		Joins("JOIN meal_records ON meal_records.id = food_snapshots.meal_record_id").
		Where("meal_records.user_id = ?", userID).
		Group("food_snapshots.category").
		Order("count DESC, food_snapshots.category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	total := 0
	for _, r := range rows {
		total += r.Count
	}
	if total == 0 {
		total = 1
	}

	breakdown := make([]CategoryShare, 0, len(rows))
	for _, r := range rows {
		breakdown = append(breakdown, CategoryShare{
			Category: r.Category,
			Count:    r.Count,
			Percent:  math.Round(float64(r.Count) / float64(total) * 100),
		})
	}

	return &StatsSummary{
		Stats:             *stats,
		WeeklyGoalKg:      WeeklyGoalKg,
		GoalProgressPct:   progress,
		CategoryBreakdown: breakdown,
	}, nil
}
