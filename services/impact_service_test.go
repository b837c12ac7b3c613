package services

import (
	"context"
	"testing"
	"time"

	"ecotaste-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plantMeal(carbon float64) []FoodInput {
	return []FoodInput{
		{Name: "Garden Salad", Category: models.CategoryVegetables, CarbonFootprint: carbon, IsPlantBased: true},
	}
}

func TestLogMeal_SavingsRates(t *testing.T) {
	ctx := context.Background()

	t.Run("plant-based meal credits half its footprint", func(t *testing.T) {
		svc := NewImpactService(newTestDB(t))

		_, stats, activity, err := svc.LogMeal(ctx, 1, []FoodInput{
			{Name: "Lentil Soup", Category: models.CategoryProtein, CarbonFootprint: 0.4, IsPlantBased: true},
			{Name: "Brown Rice", Category: models.CategoryGrains, CarbonFootprint: 0.8, IsPlantBased: true},
		})
		require.NoError(t, err)

		assert.InDelta(t, 1.2*0.5, stats.CarbonSaved, 1e-9)
		assert.Equal(t, "Logged plant-based meal", activity.Action)
		assert.InDelta(t, 0.6, activity.CarbonSaved, 1e-9)
	})

	t.Run("mixed meal credits a fifth", func(t *testing.T) {
		svc := NewImpactService(newTestDB(t))

		meal, stats, activity, err := svc.LogMeal(ctx, 1, []FoodInput{
			{Name: "Beef Burger", Category: models.CategoryProtein, CarbonFootprint: 4.5, IsPlantBased: false},
			{Name: "Garden Salad", Category: models.CategoryVegetables, CarbonFootprint: 0.2, IsPlantBased: true},
		})
		require.NoError(t, err)

		assert.False(t, meal.IsPlantBased, "one animal product makes the whole meal mixed")
		assert.InDelta(t, 4.7, meal.TotalCarbon, 1e-9)
		assert.InDelta(t, 4.7*0.2, stats.CarbonSaved, 1e-9)
		assert.Equal(t, "Logged eco-friendly meal", activity.Action)
	})
}

func TestLogMeal_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewImpactService(newTestDB(t))

	_, _, _, err := svc.LogMeal(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrEmptyMeal)

	_, _, _, err = svc.LogMeal(ctx, 1, []FoodInput{
		{Name: "Mystery", Category: models.CategoryGrains, CarbonFootprint: -1},
	})
	assert.Error(t, err)

	_, _, _, err = svc.LogMeal(ctx, 1, []FoodInput{
		{Name: "Mystery", Category: "snacks", CarbonFootprint: 1},
	})
	assert.Error(t, err)

	// No partial state after rejected input.
	stats, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MealsTracked)
}

func TestLogMeal_Streak(t *testing.T) {
	ctx := context.Background()
	svc := NewImpactService(newTestDB(t))

	day := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return day }

	_, stats, _, err := svc.LogMeal(ctx, 1, plantMeal(0.5))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak, "first meal starts the streak")

	// Same day again: unchanged.
	svc.now = func() time.Time { return day.Add(4 * time.Hour) }
	_, stats, _, err = svc.LogMeal(ctx, 1, plantMeal(0.5))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak, "same-day repeat keeps the streak")

	// Next day: extends.
	svc.now = func() time.Time { return day.AddDate(0, 0, 1) }
	_, stats, _, err = svc.LogMeal(ctx, 1, plantMeal(0.5))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CurrentStreak)

	// Skip a day: resets.
	svc.now = func() time.Time { return day.AddDate(0, 0, 3) }
	_, stats, _, err = svc.LogMeal(ctx, 1, plantMeal(0.5))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestLogMeal_ImpactScoreSaturates(t *testing.T) {
	ctx := context.Background()
	svc := NewImpactService(newTestDB(t))

	prev := 0
	for i := 0; i < 40; i++ {
		_, stats, _, err := svc.LogMeal(ctx, 1, plantMeal(0.1))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, stats.ImpactScore, prev, "score never decreases")
		assert.LessOrEqual(t, stats.ImpactScore, 100)
		prev = stats.ImpactScore
	}
	assert.Equal(t, 100, prev)
}

func TestLogMeal_ActivityTrailCapped(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewImpactService(db)

	for i := 0; i < 55; i++ {
		_, _, _, err := svc.LogMeal(ctx, 1, plantMeal(float64(i)))
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.ActivityRecord{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.EqualValues(t, models.ActivityHistoryLimit, count)

	// The newest entries survive the eviction.
	activities, err := svc.Activities(ctx, 1)
	require.NoError(t, err)
	require.Len(t, activities, models.ActivityHistoryLimit)
	assert.InDelta(t, 54*0.5, activities[0].CarbonSaved, 1e-9)
}

func TestLogMeal_PerUserIsolation(t *testing.T) {
	ctx := context.Background()
	svc := NewImpactService(newTestDB(t))

	_, _, _, err := svc.LogMeal(ctx, 1, plantMeal(2))
	require.NoError(t, err)
	_, _, _, err = svc.LogMeal(ctx, 2, plantMeal(4))
	require.NoError(t, err)

	s1, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	s2, err := svc.Stats(ctx, 2)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, s1.CarbonSaved, 1e-9)
	assert.InDelta(t, 2.0, s2.CarbonSaved, 1e-9)

	meals, err := svc.Meals(ctx, 1)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	require.Len(t, meals[0].Foods, 1)
	assert.Equal(t, models.CategoryVegetables, meals[0].Foods[0].Category)
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		current  int
		last     time.Time
		expected int
	}{
		{"no prior activity", 0, time.Time{}, 1},
		{"yesterday extends", 3, now.AddDate(0, 0, -1), 4},
		{"late last night still yesterday", 3, time.Date(2026, 3, 9, 23, 50, 0, 0, time.Local), 4},
		{"same day unchanged", 3, now.Add(-2 * time.Hour), 3},
		{"two days ago resets", 7, now.AddDate(0, 0, -2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextStreak(tt.current, tt.last, now))
		})
	}
}
