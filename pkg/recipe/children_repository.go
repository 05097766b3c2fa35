package recipe

import (
	"context"

	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	IngredientLineRepository interface {
		GetLinesByRecipe(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*entities.RecipeIngredient, error)
		CreateLine(ctx context.Context, tx *gorm.DB, line *entities.RecipeIngredient) error
		UpdateLine(ctx context.Context, tx *gorm.DB, line *entities.RecipeIngredient) error
		DeleteLine(ctx context.Context, tx *gorm.DB, line *entities.RecipeIngredient) error
	}

	StepRepository interface {
		GetStepsByRecipe(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*entities.Step, error)
		CreateStep(ctx context.Context, tx *gorm.DB, step *entities.Step) error
		UpdateStep(ctx context.Context, tx *gorm.DB, step *entities.Step) error
		DeleteStep(ctx context.Context, tx *gorm.DB, step *entities.Step) error
	}

	ingredientLineRepository struct {
		db *gorm.DB
	}

	stepRepository struct {
		db *gorm.DB
	}
)

func NewIngredientLineRepository(db *gorm.DB) IngredientLineRepository {
	return &ingredientLineRepository{db: db}
}

func NewStepRepository(db *gorm.DB) StepRepository {
	return &stepRepository{db: db}
}

func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func (r *ingredientLineRepository) GetLinesByRecipe(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*entities.RecipeIngredient, error) {
	var lines []*entities.RecipeIngredient
	if err := conn(ctx, r.db, tx).Where("recipe_id = ?", recipeID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *ingredientLineRepository) CreateLine(ctx context.Context, tx *gorm.DB, line *entities.RecipeIngredient) error {
	return conn(ctx, r.db, tx).Omit(clause.Associations).Create(line).Error
}

func (r *ingredientLineRepository) UpdateLine(ctx context.Context, tx *gorm.DB, line *entities.RecipeIngredient) error {
	return conn(ctx, r.db, tx).Model(line).Updates(map[string]any{
		"quantity": line.Quantity,
		"unit_id":  line.UnitID,
	}).Error
}

func (r *ingredientLineRepository) DeleteLine(ctx context.Context, tx *gorm.DB, line *entities.RecipeIngredient) error {
	return conn(ctx, r.db, tx).Delete(line).Error
}

func (r *stepRepository) GetStepsByRecipe(ctx context.Context, tx *gorm.DB, recipeID uint) ([]*entities.Step, error) {
	var steps []*entities.Step
	if err := conn(ctx, r.db, tx).Where("recipe_id = ?", recipeID).Order("step_order ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *stepRepository) CreateStep(ctx context.Context, tx *gorm.DB, step *entities.Step) error {
	return conn(ctx, r.db, tx).Create(step).Error
}

func (r *stepRepository) UpdateStep(ctx context.Context, tx *gorm.DB, step *entities.Step) error {
	return conn(ctx, r.db, tx).Model(step).Update("description", step.Description).Error
}

func (r *stepRepository) DeleteStep(ctx context.Context, tx *gorm.DB, step *entities.Step) error {
	return conn(ctx, r.db, tx).Delete(step).Error
}
