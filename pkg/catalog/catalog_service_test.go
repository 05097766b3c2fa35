package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/testutil"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	data map[string]any
	sets int
}

func (c *countingCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.CategoryResponse:
		*d = v.([]domain.CategoryResponse)
	case *[]domain.UnitResponse:
		*d = v.([]domain.UnitResponse)
	}
	return true, nil
}

func (c *countingCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	c.data[key] = value
	return nil
}

func (c *countingCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestResolvers(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewCatalogService(NewCatalogRepository(db), nil, time.Minute, logger.Nop())

	t.Run("ingredient", func(t *testing.T) {
		want := testutil.Ingredient(t, db, "Harina")
		got, err := svc.ResolveIngredient(ctx, nil, want.ID)
		require.NoError(t, err)
		assert.Equal(t, "Harina", got.Name)

		_, err = svc.ResolveIngredient(ctx, nil, 9999)
		var ref *domain.ReferenceNotFoundError
		require.ErrorAs(t, err, &ref)
		assert.Equal(t, "ingredient", ref.Field)
		assert.Equal(t, uint(9999), ref.ID)
	})

	t.Run("unit inside a transaction", func(t *testing.T) {
		want := testutil.Unit(t, db, "gramos")
		tx := db.Begin()
		defer tx.Rollback()
		got, err := svc.ResolveUnit(ctx, tx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)

		_, err = svc.ResolveUnit(ctx, tx, 4242)
		assert.EqualError(t, err, "unit 4242 not found")
	})

	t.Run("categories", func(t *testing.T) {
		a := testutil.Category(t, db, "Cena")
		b := testutil.Category(t, db, "Italiana")
		got, err := svc.ResolveCategories(ctx, nil, []uint{a.ID, b.ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = svc.ResolveCategories(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = svc.ResolveCategories(ctx, nil, []uint{a.ID, 777})
		var ref *domain.ReferenceNotFoundError
		require.ErrorAs(t, err, &ref)
		assert.Equal(t, uint(777), ref.ID)
	})
}

func TestListingsUseCache(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	c := &countingCache{data: map[string]any{}}
	svc := NewCatalogService(NewCatalogRepository(db), c, time.Minute, logger.Nop())

	first, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.sets)

	weight := testutil.Unit(t, db, "gramos").UnitTypeID
	units, err := svc.GetUnits(ctx, weight)
	require.NoError(t, err)
	assert.Len(t, units, 2)
	for _, u := range units {
		assert.Equal(t, weight, u.UnitTypeID)
	}
}

func TestGetIngredients(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewCatalogService(NewCatalogRepository(db), nil, time.Minute, logger.Nop())

	all, total, err := svc.GetIngredients(ctx, "", domain.PaginationQuery{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(8), total)

	found, total, err := svc.GetIngredients(ctx, "arr", domain.PaginationQuery{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Arroz", found[0].Name)
	assert.Equal(t, int64(1), total)
}
