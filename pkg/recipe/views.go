package recipe

import (
	"sort"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/image"
)

// ImageSet holds the current images of one or more recipes and their steps,
// keyed by owner id.
type ImageSet struct {
	Recipes map[uint]*entities.Image
	Steps   map[uint]*entities.Image
}

func BuildPublicView(recipe *entities.Recipe, images ImageSet) domain.RecipeView {
	return buildView(recipe, images, false)
}

func BuildAdminView(recipe *entities.Recipe, images ImageSet) domain.RecipeView {
	return buildView(recipe, images, true)
}

func BuildView(recipe *entities.Recipe, images ImageSet, actor domain.Actor) domain.RecipeView {
	if actor.IsAdmin() {
		return BuildAdminView(recipe, images)
	}
	return BuildPublicView(recipe, images)
}

func buildView(recipe *entities.Recipe, images ImageSet, admin bool) domain.RecipeView {
	view := domain.RecipeView{
		ID:              recipe.ID,
		Name:            recipe.Name,
		Description:     recipe.Description,
		DurationMinutes: recipe.DurationMinutes,
		Commensals:      recipe.Commensals,
		Categories:      make([]uint, 0, len(recipe.Categories)),
		Ingredients:     make([]domain.RecipeIngredientView, 0, len(recipe.Ingredients)),
		Steps:           make([]domain.StepView, 0, len(recipe.Steps)),
		UpdatedAt:       recipe.UpdatedAt,
		Image:           image.View(images.Recipes[recipe.ID], admin),
	}
	if recipe.User != nil {
		view.User = &domain.UserSummary{ID: recipe.User.ID, Username: recipe.User.Username}
	}

	for _, c := range recipe.Categories {
		view.Categories = append(view.Categories, c.ID)
	}
	sort.Slice(view.Categories, func(i, j int) bool { return view.Categories[i] < view.Categories[j] })

	for _, line := range recipe.Ingredients {
		item := domain.RecipeIngredientView{
			ID:         line.ID,
			Ingredient: line.IngredientID,
			Quantity:   line.Quantity,
			Unit:       line.UnitID,
		}
		if line.Ingredient != nil {
			item.IngredientName = line.Ingredient.Name
		}
		if line.Unit != nil {
			item.UnitName = line.Unit.Name
		}
		view.Ingredients = append(view.Ingredients, item)
	}

	steps := make([]*entities.Step, len(recipe.Steps))
	copy(steps, recipe.Steps)
	sort.Slice(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
	for _, step := range steps {
		view.Steps = append(view.Steps, domain.StepView{
			ID:          step.ID,
			Order:       step.Order,
			Description: step.Description,
			Image:       image.View(images.Steps[step.ID], admin),
		})
	}

	if admin {
		userID := recipe.UserID
		createdAt := recipe.CreatedAt
		version := recipe.Version
		view.UserID = &userID
		view.CreatedAt = &createdAt
		view.Version = &version
	}
	return view
}

func stepIDs(recipes ...*entities.Recipe) []uint {
	var ids []uint
	for _, r := range recipes {
		for _, s := range r.Steps {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func recipeIDs(recipes ...*entities.Recipe) []uint {
	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}
