package shopping

import (
	"context"
	"errors"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ShoppingRepository interface {
		GetItemsByUser(ctx context.Context, userID uint) ([]*entities.ShoppingListItem, error)
		GetItemByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.ShoppingListItem, error)
		FindOpenItem(ctx context.Context, tx *gorm.DB, userID, ingredientID, unitID uint) (*entities.ShoppingListItem, error)
		CreateItem(ctx context.Context, tx *gorm.DB, item *entities.ShoppingListItem) error
		UpdateItem(ctx context.Context, tx *gorm.DB, item *entities.ShoppingListItem) error
		DeleteItem(ctx context.Context, item *entities.ShoppingListItem) error
		GetRecipeLines(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*entities.RecipeIngredient, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *shoppingRepository) GetItemsByUser(ctx context.Context, userID uint) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Preload("Unit").
		Where("user_id = ?", userID).
		Order("is_purchased ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingRepository) GetItemByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	if err := r.conn(ctx, tx).Preload("Ingredient").Preload("Unit").Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) FindOpenItem(ctx context.Context, tx *gorm.DB, userID, ingredientID, unitID uint) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	err := r.conn(ctx, tx).
		Where("user_id = ? AND ingredient_id = ? AND unit_id = ? AND is_purchased = ?", userID, ingredientID, unitID, false).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) CreateItem(ctx context.Context, tx *gorm.DB, item *entities.ShoppingListItem) error {
	return r.conn(ctx, tx).Omit(clause.Associations).Create(item).Error
}

func (r *shoppingRepository) UpdateItem(ctx context.Context, tx *gorm.DB, item *entities.ShoppingListItem) error {
	return r.conn(ctx, tx).Model(item).Updates(map[string]any{
		"quantity_needed": item.QuantityNeeded,
		"is_purchased":    item.IsPurchased,
	}).Error
}

func (r *shoppingRepository) DeleteItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *shoppingRepository) GetRecipeLines(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*entities.RecipeIngredient, error) {
	db := r.conn(ctx, tx)
	var count int64
	if err := db.Model(&entities.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrRecipeNotFound
	}

	var lines []*entities.RecipeIngredient
	if err := r.conn(ctx, tx).Where("recipe_id = ?", recipeID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
