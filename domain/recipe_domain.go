package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessGetFavorites    = "success get favorite recipes"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add favorite"
	MessageFailedRemoveFavorite  = "failed to remove favorite"
	MessageFailedGetFavorites    = "failed to get favorite recipes"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrFavoriteNotFound         = errors.New("favorite not found")
)

// Form part names of a recipe write.
const (
	FieldName            = "name"
	FieldDescription     = "description"
	FieldDurationMinutes = "duration_minutes"
	FieldCommensals      = "commensals"
	FieldVersion         = "version"
	FieldCategories      = "categories"
	FieldIngredientsData = "ingredients_data"
	FieldStepsData       = "steps_data"
	FieldPhoto           = "photo"
	StepImagePrefix      = "step_image_"
)

type (
	// RecipeForm is a recipe write as received from the transport: scalar
	// values by field name and file parts by part name.
	RecipeForm struct {
		Values map[string][]string
		Files  map[string]*multipart.FileHeader
	}

	RecipeIngredientItem struct {
		Ingredient uint    `json:"ingredient" validate:"required,gt=0"`
		Quantity   float64 `json:"quantity" validate:"required,gt=0"`
		Unit       uint    `json:"unit" validate:"required,gt=0"`
	}

	RecipeStepItem struct {
		Order       int    `json:"order" validate:"required,gt=0"`
		Description string `json:"description" validate:"required,max=100"`
	}

	// RecipeWriteRequest is a validated recipe write. Nil scalars and false
	// Has* flags mean the field was not sent.
	RecipeWriteRequest struct {
		Name            *string
		Description     *string
		DurationMinutes *int
		Commensals      *int
		Version         *int

		CategoryIDs    []uint
		HasCategories  bool
		Ingredients    []RecipeIngredientItem
		HasIngredients bool
		Steps          []RecipeStepItem
		HasSteps       bool

		Photo      *multipart.FileHeader
		StepImages map[int]*multipart.FileHeader
	}

	RecipeListQuery struct {
		PaginationQuery
		CategoryID uint
		UserID     uint
	}

	UserSummary struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}

	RecipeIngredientView struct {
		ID             uint    `json:"id"`
		Ingredient     uint    `json:"ingredient"`
		IngredientName string  `json:"ingredient_name"`
		Quantity       float64 `json:"quantity"`
		Unit           uint    `json:"unit"`
		UnitName       string  `json:"unit_name"`
	}

	StepView struct {
		ID          uint       `json:"id"`
		Order       int        `json:"order"`
		Description string     `json:"description"`
		Image       *ImageView `json:"image"`
	}

	RecipeView struct {
		ID              uint                   `json:"id"`
		Name            string                 `json:"name"`
		Description     string                 `json:"description"`
		User            *UserSummary           `json:"user"`
		DurationMinutes int                    `json:"duration_minutes"`
		Commensals      int                    `json:"commensals"`
		Categories      []uint                 `json:"categories"`
		Ingredients     []RecipeIngredientView `json:"ingredients"`
		Steps           []StepView             `json:"steps"`
		UpdatedAt       time.Time              `json:"updated_at"`
		Image           *ImageView             `json:"image"`

		// admin view only
		UserID    *uint      `json:"user_id,omitempty"`
		CreatedAt *time.Time `json:"created_at,omitempty"`
		Version   *int       `json:"version,omitempty"`
	}

	RecipeWriteResult struct {
		Recipe   RecipeView `json:"recipe"`
		Warnings []string   `json:"warnings,omitempty"`
	}

	RecipeListResponse struct {
		Recipes    []RecipeView       `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}
)
