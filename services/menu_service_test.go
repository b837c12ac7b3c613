package services

import (
	"context"
	"testing"

	"ecotaste-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMenuService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewMenuService(newTestDB(t))

	item, err := svc.Add(ctx, "Lentil Soup", models.CategoryProtein, 0.4, true)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.False(t, item.AddedDate.IsZero())

	_, err = svc.Add(ctx, "Beef Burger", models.CategoryProtein, 4.5, false)
	require.NoError(t, err)

	menu, err := svc.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Lentil Soup", menu[0].Name, "insertion order preserved")

	require.NoError(t, svc.Remove(ctx, item.ID))
	menu, err = svc.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Beef Burger", menu[0].Name)

	assert.ErrorIs(t, svc.Remove(ctx, 999), gorm.ErrRecordNotFound)

	require.NoError(t, svc.ClearToday(ctx))
	menu, err = svc.Menu(ctx)
	require.NoError(t, err)
	assert.Empty(t, menu)
}

func TestMenuService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewMenuService(newTestDB(t))

	_, err := svc.Add(ctx, "", models.CategoryGrains, 0.5, true)
	assert.Error(t, err)

	_, err = svc.Add(ctx, "Mystery Meat", "cryptids", 0.5, false)
	assert.Error(t, err)

	_, err = svc.Add(ctx, "Antimatter Salad", models.CategoryVegetables, -1, true)
	assert.Error(t, err)
}

func TestMenuService_CacheStaysFresh(t *testing.T) {
	ctx := context.Background()
	svc := NewMenuService(newTestDB(t))

	_, err := svc.Add(ctx, "Pasta", models.CategoryGrains, 0.6, true)
	require.NoError(t, err)

	// Warm the cache, then write again: the next read must see the write.
	_, err = svc.Menu(ctx)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "Quinoa", models.CategoryGrains, 0.5, true)
	require.NoError(t, err)

	menu, err := svc.Menu(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, 2)

	// A cached read returns a copy; mutating it must not poison the snapshot.
	menu[0].Name = "mutated"
	again, err := svc.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pasta", again[0].Name)
}

func TestCommonFoods(t *testing.T) {
	svc := NewMenuService(newTestDB(t))

	foods := svc.CommonFoods()
	require.NotEmpty(t, foods)
	for _, f := range foods {
		assert.True(t, f.Category.IsValid(), "catalog entry %q has a valid category", f.Name)
		assert.GreaterOrEqual(t, f.CarbonFootprint, 0.0)
	}
}
