package recipe

import (
	"context"
	"testing"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecipesByCategory(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	owner := testutil.CreateUser(t, db, "owner", entities.RoleUser)
	dinner := testutil.Category(t, db, "Cena")

	tagged := &entities.Recipe{UserID: owner.ID, Name: "Soup", DurationMinutes: 10, Commensals: 2, Categories: []*entities.Category{dinner}}
	untagged := &entities.Recipe{UserID: owner.ID, Name: "Toast", DurationMinutes: 5, Commensals: 1}
	require.NoError(t, db.Create(tagged).Error)
	require.NoError(t, db.Create(untagged).Error)

	query := domain.RecipeListQuery{
		PaginationQuery: domain.PaginationQuery{Page: 1, Limit: 10},
		CategoryID:      dinner.ID,
	}

	t.Run("filters on the join table", func(t *testing.T) {
		recipes, total, err := repo.GetRecipes(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, recipes, 1)
		assert.Equal(t, tagged.ID, recipes[0].ID)
	})

	t.Run("cancelled request context stops the query", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := repo.GetRecipes(ctx, query)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
