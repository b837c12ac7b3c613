package services

import (
	"context"
	"testing"

	"ecotaste-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsSummary(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	impact := NewImpactService(db)
	svc := NewStatsService(db, impact)

	_, _, _, err := impact.LogMeal(ctx, 1, []FoodInput{
		{Name: "Garden Salad", Category: models.CategoryVegetables, CarbonFootprint: 0.2, IsPlantBased: true},
		{Name: "Steamed Broccoli", Category: models.CategoryVegetables, CarbonFootprint: 0.3, IsPlantBased: true},
		{Name: "Brown Rice", Category: models.CategoryGrains, CarbonFootprint: 0.8, IsPlantBased: true},
		{Name: "Quinoa", Category: models.CategoryGrains, CarbonFootprint: 0.5, IsPlantBased: true},
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)

	// 1.8 kg total, plant-based → 0.9 kg saved, 9% of the 10 kg weekly goal.
	assert.InDelta(t, 0.9, summary.Stats.CarbonSaved, 1e-9)
	assert.InDelta(t, 9.0, summary.GoalProgressPct, 1e-9)
	assert.Equal(t, WeeklyGoalKg, summary.WeeklyGoalKg)

	require.Len(t, summary.CategoryBreakdown, 2)
	for _, share := range summary.CategoryBreakdown {
		assert.Equal(t, 2, share.Count)
		assert.InDelta(t, 50.0, share.Percent, 1e-9)
	}
}

func TestStatsSummary_EmptyAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, NewImpactService(db))

	summary, err := svc.Summary(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, summary.Stats.CarbonSaved)
	assert.Zero(t, summary.GoalProgressPct)
	assert.Empty(t, summary.CategoryBreakdown)
}

func TestStatsSummary_GoalProgressCaps(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	impact := NewImpactService(db)
	svc := NewStatsService(db, impact)

	// 30 kg plant-based → 15 kg saved, past the 10 kg goal.
	_, _, _, err := impact.LogMeal(ctx, 1, []FoodInput{
		{Name: "Feast", Category: models.CategoryVegetables, CarbonFootprint: 30, IsPlantBased: true},
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, summary.GoalProgressPct, 1e-9)
}
