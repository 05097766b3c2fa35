package recipe

import (
	"context"
	"errors"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.Recipe, error)
		GetRecipeForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*entities.Recipe, error)
		GetRecipeDetail(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, query domain.RecipeListQuery) ([]*entities.Recipe, int64, error)
		UpdateRecipeFields(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe, expectedVersion int) error
		ReplaceCategories(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe, categories []*entities.Category) error
		DeleteRecipe(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe) error

		AddFavorite(ctx context.Context, userID, recipeID uint) error
		RemoveFavorite(ctx context.Context, userID, recipeID uint) error
		GetFavorites(ctx context.Context, userID uint, offset, limit int) ([]*entities.Recipe, int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Categories").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Unit").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") })
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe) error {
	return r.conn(ctx, tx).Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.conn(ctx, tx).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeForUpdate loads the bare recipe row, locking it on dialects that
// support row locks.
func (r *recipeRepository) GetRecipeForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	query := r.conn(ctx, tx)
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeDetail(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withDetail(r.db.WithContext(ctx)).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query domain.RecipeListQuery) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	filter := func(db *gorm.DB) *gorm.DB {
		if query.UserID != 0 {
			db = db.Where("recipes.user_id = ?", query.UserID)
		}
		if query.CategoryID != 0 {
			db = db.Where("recipes.id IN (?)",
				r.db.WithContext(ctx).Table("categories_recipes").Select("recipe_id").Where("category_id = ?", query.CategoryID))
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Scopes(filter).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withDetail(r.db.WithContext(ctx)).
		Scopes(filter).
		Order("recipes.updated_at DESC").
		Order("recipes.id DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

// UpdateRecipeFields writes the scalar columns and bumps the version, guarded
// by the version the caller read.
func (r *recipeRepository) UpdateRecipeFields(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe, expectedVersion int) error {
	res := r.conn(ctx, tx).
		Model(&entities.Recipe{}).
		Where("id = ? AND version = ?", recipe.ID, expectedVersion).
		Updates(map[string]any{
			"name":             recipe.Name,
			"description":      recipe.Description,
			"duration_minutes": recipe.DurationMinutes,
			"commensals":       recipe.Commensals,
			"version":          expectedVersion + 1,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	recipe.Version = expectedVersion + 1
	return nil
}

func (r *recipeRepository) ReplaceCategories(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe, categories []*entities.Category) error {
	assoc := r.conn(ctx, tx).Model(recipe).Omit("Categories.*").Association("Categories")
	if len(categories) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(categories)
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe) error {
	db := r.conn(ctx, tx)
	if err := db.Model(recipe).Association("Categories").Clear(); err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", recipe.ID).Delete(&entities.Favorite{}).Error; err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", recipe.ID).Delete(&entities.Step{}).Error; err != nil {
		return err
	}
	return db.Delete(recipe).Error
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uint) error {
	favorite := entities.Favorite{UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *recipeRepository) GetFavorites(ctx context.Context, userID uint, offset, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	favorited := func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", userID)
	}

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Scopes(favorited).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withDetail(r.db.WithContext(ctx)).
		Scopes(favorited).
		Order("favorites.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}
