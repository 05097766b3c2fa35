package catalog

import (
	"context"
	"errors"

	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		GetIngredientByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.Ingredient, error)
		GetUnitByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.Unit, error)
		GetCategoriesByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*entities.Category, error)
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetUnits(ctx context.Context, unitTypeID uint) ([]*entities.Unit, error)
		GetIngredients(ctx context.Context, search string, offset, limit int) ([]*entities.Ingredient, int64, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *catalogRepository) GetIngredientByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.conn(ctx, tx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *catalogRepository) GetUnitByID(ctx context.Context, tx *gorm.DB, id uint) (*entities.Unit, error) {
	var unit entities.Unit
	if err := r.conn(ctx, tx).Where("id = ?", id).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

func (r *catalogRepository) GetCategoriesByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*entities.Category, error) {
	var categories []*entities.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.conn(ctx, tx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) GetUnits(ctx context.Context, unitTypeID uint) ([]*entities.Unit, error) {
	var units []*entities.Unit
	query := r.db.WithContext(ctx).Order("name ASC")
	if unitTypeID != 0 {
		query = query.Where("unit_type_id = ?", unitTypeID)
	}
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *catalogRepository) GetIngredients(ctx context.Context, search string, offset, limit int) ([]*entities.Ingredient, int64, error) {
	var ingredients []*entities.Ingredient
	var count int64

	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_approved = ?", true)
		if search != "" {
			db = db.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&entities.Ingredient{}).Scopes(filter).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Scopes(filter).Order("name ASC").Offset(offset).Limit(limit).Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}
	return ingredients, count, nil
}
