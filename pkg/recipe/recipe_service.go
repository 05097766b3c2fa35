package recipe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/cache"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/catalog"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/image"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/reconcile"
	"gorm.io/gorm"
)

const viewCacheKey = "recipe:view:%d"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeWriteRequest, actor domain.Actor) (domain.RecipeWriteResult, error)
		UpdateRecipe(ctx context.Context, recipeID uint, req domain.RecipeWriteRequest, actor domain.Actor) (domain.RecipeWriteResult, error)
		GetRecipe(ctx context.Context, recipeID uint, actor domain.Actor) (domain.RecipeView, error)
		ListRecipes(ctx context.Context, query domain.RecipeListQuery, actor domain.Actor) ([]domain.RecipeView, int64, error)
		DeleteRecipe(ctx context.Context, recipeID uint, actor domain.Actor) error

		AddFavorite(ctx context.Context, recipeID uint, actor domain.Actor) error
		RemoveFavorite(ctx context.Context, recipeID uint, actor domain.Actor) error
		ListFavorites(ctx context.Context, page domain.PaginationQuery, actor domain.Actor) ([]domain.RecipeView, int64, error)
	}

	recipeService struct {
		db                       *gorm.DB
		recipeRepository         RecipeRepository
		ingredientLineRepository IngredientLineRepository
		stepRepository           StepRepository
		resolver                 catalog.Resolver
		imageService             image.ImageService
		cache                    cache.Cache
		cacheTTL                 time.Duration
		log                      *logger.Logger
	}

	// writeOutcome carries what the transactional part of a write produced
	// into the image attachment phase.
	writeOutcome struct {
		recipeID       uint
		stepIDByOrder  map[int]uint
		removedStepIDs []uint
		ingredients    reconcile.Summary
		steps          reconcile.Summary
	}
)

func NewRecipeService(
	db *gorm.DB,
	recipeRepository RecipeRepository,
	ingredientLineRepository IngredientLineRepository,
	stepRepository StepRepository,
	resolver catalog.Resolver,
	imageService image.ImageService,
	c cache.Cache,
	cacheTTL time.Duration,
	log *logger.Logger,
) RecipeService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &recipeService{
		db:                       db,
		recipeRepository:         recipeRepository,
		ingredientLineRepository: ingredientLineRepository,
		stepRepository:           stepRepository,
		resolver:                 resolver,
		imageService:             imageService,
		cache:                    c,
		cacheTTL:                 cacheTTL,
		log:                      log.With("component", "recipe"),
	}
}

func canModify(actor domain.Actor, recipe *entities.Recipe) bool {
	return actor.IsAdmin() || (actor.Authenticated() && recipe.UserID == actor.UserID)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeWriteRequest, actor domain.Actor) (domain.RecipeWriteResult, error) {
	if !actor.Authenticated() {
		return domain.RecipeWriteResult{}, domain.ErrUserNotAllowed
	}
	if req.Name == nil || req.DurationMinutes == nil || req.Commensals == nil {
		return domain.RecipeWriteResult{}, domain.NewPayloadError(domain.FieldName, "name, duration_minutes and commensals are required")
	}

	out := writeOutcome{stepIDByOrder: map[int]uint{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := &entities.Recipe{
			UserID:          actor.UserID,
			Name:            *req.Name,
			DurationMinutes: *req.DurationMinutes,
			Commensals:      *req.Commensals,
			Version:         1,
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if err := s.recipeRepository.CreateRecipe(ctx, tx, recipe); err != nil {
			return err
		}
		out.recipeID = recipe.ID
		return s.writeChildren(ctx, tx, recipe, req, true, &out)
	})
	if err != nil {
		return domain.RecipeWriteResult{}, unwrapWriteError(err)
	}

	s.log.Info("recipe created",
		"recipe_id", out.recipeID,
		"ingredients_created", out.ingredients.Created,
		"steps_created", out.steps.Created,
	)
	return s.finishWrite(ctx, out, req, actor)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID uint, req domain.RecipeWriteRequest, actor domain.Actor) (domain.RecipeWriteResult, error) {
	out := writeOutcome{recipeID: recipeID, stepIDByOrder: map[int]uint{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.recipeRepository.GetRecipeForUpdate(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		if !canModify(actor, recipe) {
			return domain.ErrUnauthorizedRecipeAccess
		}
		if req.Version != nil && *req.Version != recipe.Version {
			return domain.ErrConflict
		}

		expected := recipe.Version
		if req.Name != nil {
			recipe.Name = *req.Name
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if req.DurationMinutes != nil {
			recipe.DurationMinutes = *req.DurationMinutes
		}
		if req.Commensals != nil {
			recipe.Commensals = *req.Commensals
		}
		if err := s.recipeRepository.UpdateRecipeFields(ctx, tx, recipe, expected); err != nil {
			return err
		}
		return s.writeChildren(ctx, tx, recipe, req, false, &out)
	})
	if err != nil {
		return domain.RecipeWriteResult{}, unwrapWriteError(err)
	}

	s.log.Info("recipe updated",
		"recipe_id", recipeID,
		"ingredients_created", out.ingredients.Created,
		"ingredients_updated", out.ingredients.Updated,
		"ingredients_deleted", out.ingredients.Deleted,
		"steps_created", out.steps.Created,
		"steps_updated", out.steps.Updated,
		"steps_deleted", out.steps.Deleted,
	)
	return s.finishWrite(ctx, out, req, actor)
}

// writeChildren replaces categories and reconciles ingredient lines and steps.
// On update a collection missing from the request is left untouched.
func (s *recipeService) writeChildren(ctx context.Context, tx *gorm.DB, recipe *entities.Recipe, req domain.RecipeWriteRequest, creating bool, out *writeOutcome) error {
	if req.HasCategories {
		categories, err := s.resolver.ResolveCategories(ctx, tx, req.CategoryIDs)
		if err != nil {
			return err
		}
		if err := s.recipeRepository.ReplaceCategories(ctx, tx, recipe, categories); err != nil {
			return err
		}
	}

	if req.HasIngredients || creating {
		summary, err := s.reconcileIngredients(ctx, tx, recipe.ID, req.Ingredients, creating)
		if err != nil {
			return err
		}
		out.ingredients = summary
	}

	if req.HasSteps || creating {
		summary, err := s.reconcileSteps(ctx, tx, recipe.ID, req.Steps, creating, out)
		if err != nil {
			return err
		}
		out.steps = summary
	}
	return nil
}

func (s *recipeService) reconcileIngredients(ctx context.Context, tx *gorm.DB, recipeID uint, items []domain.RecipeIngredientItem, creating bool) (reconcile.Summary, error) {
	var current []*entities.RecipeIngredient
	if !creating {
		var err error
		if current, err = s.ingredientLineRepository.GetLinesByRecipe(ctx, tx, recipeID); err != nil {
			return reconcile.Summary{}, err
		}
	}

	position := make(map[uint]int, len(items))
	for i, item := range items {
		position[item.Ingredient] = i
	}
	resolve := func(item domain.RecipeIngredientItem) error {
		if _, err := s.resolver.ResolveIngredient(ctx, tx, item.Ingredient); err != nil {
			return withItemPath(err, domain.FieldIngredientsData, position[item.Ingredient])
		}
		if _, err := s.resolver.ResolveUnit(ctx, tx, item.Unit); err != nil {
			return withItemPath(err, domain.FieldIngredientsData, position[item.Ingredient])
		}
		return nil
	}

	r := reconcile.Reconciler[*entities.RecipeIngredient, domain.RecipeIngredientItem, uint]{
		IdentityOf:        func(item domain.RecipeIngredientItem) uint { return item.Ingredient },
		CurrentIdentityOf: func(line *entities.RecipeIngredient) uint { return line.IngredientID },
		ApplyUpdate: func(line *entities.RecipeIngredient, item domain.RecipeIngredientItem) error {
			if err := resolve(item); err != nil {
				return err
			}
			line.Quantity = item.Quantity
			line.UnitID = item.Unit
			return s.ingredientLineRepository.UpdateLine(ctx, tx, line)
		},
		ApplyCreate: func(item domain.RecipeIngredientItem) (*entities.RecipeIngredient, error) {
			if err := resolve(item); err != nil {
				return nil, err
			}
			line := &entities.RecipeIngredient{
				RecipeID:     recipeID,
				IngredientID: item.Ingredient,
				Quantity:     item.Quantity,
				UnitID:       item.Unit,
			}
			return line, s.ingredientLineRepository.CreateLine(ctx, tx, line)
		},
		ApplyDelete: func(line *entities.RecipeIngredient) error {
			return s.ingredientLineRepository.DeleteLine(ctx, tx, line)
		},
	}
	return r.Apply(current, items)
}

func (s *recipeService) reconcileSteps(ctx context.Context, tx *gorm.DB, recipeID uint, items []domain.RecipeStepItem, creating bool, out *writeOutcome) (reconcile.Summary, error) {
	var current []*entities.Step
	if !creating {
		var err error
		if current, err = s.stepRepository.GetStepsByRecipe(ctx, tx, recipeID); err != nil {
			return reconcile.Summary{}, err
		}
	}

	r := reconcile.Reconciler[*entities.Step, domain.RecipeStepItem, int]{
		IdentityOf:        func(item domain.RecipeStepItem) int { return item.Order },
		CurrentIdentityOf: func(step *entities.Step) int { return step.Order },
		ApplyUpdate: func(step *entities.Step, item domain.RecipeStepItem) error {
			step.Description = item.Description
			if err := s.stepRepository.UpdateStep(ctx, tx, step); err != nil {
				return err
			}
			out.stepIDByOrder[step.Order] = step.ID
			return nil
		},
		ApplyCreate: func(item domain.RecipeStepItem) (*entities.Step, error) {
			step := &entities.Step{RecipeID: recipeID, Order: item.Order, Description: item.Description}
			if err := s.stepRepository.CreateStep(ctx, tx, step); err != nil {
				return nil, err
			}
			out.stepIDByOrder[step.Order] = step.ID
			return step, nil
		},
		ApplyDelete: func(step *entities.Step) error {
			if err := s.stepRepository.DeleteStep(ctx, tx, step); err != nil {
				return err
			}
			out.removedStepIDs = append(out.removedStepIDs, step.ID)
			return nil
		},
	}
	return r.Apply(current, items)
}

func withItemPath(err error, field string, idx int) error {
	var ref *domain.ReferenceNotFoundError
	if errors.As(err, &ref) {
		return &domain.ReferenceNotFoundError{Field: fmt.Sprintf("%s[%d].%s", field, idx, ref.Field), ID: ref.ID}
	}
	return err
}

// unwrapWriteError surfaces domain errors raised inside reconciliation
// callbacks.
func unwrapWriteError(err error) error {
	var ref *domain.ReferenceNotFoundError
	if errors.As(err, &ref) {
		return ref
	}
	var payload *domain.PayloadError
	if errors.As(err, &payload) {
		return payload
	}
	return err
}

// finishWrite runs after commit: image failures become warnings and never
// undo the structural write.
func (s *recipeService) finishWrite(ctx context.Context, out writeOutcome, req domain.RecipeWriteRequest, actor domain.Actor) (domain.RecipeWriteResult, error) {
	warnings := s.attachImages(ctx, out, req)

	for _, stepID := range out.removedStepIDs {
		if err := s.imageService.Remove(ctx, stepID, entities.ImageKindStep); err != nil {
			s.log.Warn("failed to remove step image", "step_id", stepID, "error", err)
		}
	}
	s.invalidate(ctx, out.recipeID)

	view, err := s.loadView(ctx, out.recipeID, actor)
	if err != nil {
		return domain.RecipeWriteResult{}, err
	}
	return domain.RecipeWriteResult{Recipe: view, Warnings: warnings}, nil
}

func (s *recipeService) attachImages(ctx context.Context, out writeOutcome, req domain.RecipeWriteRequest) []string {
	var warnings []string

	if req.Photo != nil {
		if _, err := s.imageService.IngestFile(ctx, req.Photo, out.recipeID, entities.ImageKindRecipe); err != nil {
			warnings = append(warnings, s.imageWarning(domain.FieldPhoto, out.recipeID, err))
		}
	}

	indices := make([]int, 0, len(req.StepImages))
	for idx := range req.StepImages {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		part := fmt.Sprintf("%s%d", domain.StepImagePrefix, idx)
		if idx >= len(req.Steps) {
			s.log.Warn("step image without matching step", "recipe_id", out.recipeID, "part", part)
			warnings = append(warnings, part+": no step at this position")
			continue
		}
		stepID, ok := out.stepIDByOrder[req.Steps[idx].Order]
		if !ok {
			warnings = append(warnings, part+": no step at this position")
			continue
		}
		if _, err := s.imageService.IngestFile(ctx, req.StepImages[idx], stepID, entities.ImageKindStep); err != nil {
			warnings = append(warnings, s.imageWarning(part, stepID, err))
		}
	}
	return warnings
}

func (s *recipeService) imageWarning(part string, ownerID uint, err error) string {
	if errors.Is(err, domain.ErrUnsupportedFormat) {
		s.log.Warn("image rejected", "part", part, "owner_id", ownerID, "error", err)
		return part + ": " + domain.ErrUnsupportedFormat.Error()
	}
	var payload *domain.PayloadError
	if errors.As(err, &payload) {
		s.log.Warn("image rejected", "part", part, "owner_id", ownerID, "error", err)
		return part + ": " + payload.Reason
	}
	s.log.Error("image attach failed", "part", part, "owner_id", ownerID, "error", err)
	return part + ": " + err.Error()
}

func (s *recipeService) loadImages(ctx context.Context, recipes ...*entities.Recipe) (ImageSet, error) {
	recipeImages, err := s.imageService.GetMany(ctx, entities.ImageKindRecipe, recipeIDs(recipes...))
	if err != nil {
		return ImageSet{}, err
	}
	stepImages, err := s.imageService.GetMany(ctx, entities.ImageKindStep, stepIDs(recipes...))
	if err != nil {
		return ImageSet{}, err
	}
	return ImageSet{Recipes: recipeImages, Steps: stepImages}, nil
}

func (s *recipeService) loadView(ctx context.Context, recipeID uint, actor domain.Actor) (domain.RecipeView, error) {
	recipe, err := s.recipeRepository.GetRecipeDetail(ctx, recipeID)
	if err != nil {
		return domain.RecipeView{}, err
	}
	images, err := s.loadImages(ctx, recipe)
	if err != nil {
		return domain.RecipeView{}, err
	}
	return BuildView(recipe, images, actor), nil
}

func (s *recipeService) invalidate(ctx context.Context, recipeID uint) {
	key := fmt.Sprintf(viewCacheKey, recipeID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("recipe cache invalidation failed", "key", key, "error", err)
	}
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID uint, actor domain.Actor) (domain.RecipeView, error) {
	if actor.IsAdmin() {
		return s.loadView(ctx, recipeID, actor)
	}

	key := fmt.Sprintf(viewCacheKey, recipeID)
	var view domain.RecipeView
	if hit, err := s.cache.Get(ctx, key, &view); err != nil {
		s.log.Warn("recipe cache read failed", "key", key, "error", err)
	} else if hit {
		return view, nil
	}

	view, err := s.loadView(ctx, recipeID, actor)
	if err != nil {
		return domain.RecipeView{}, err
	}
	if err := s.cache.Set(ctx, key, view, s.cacheTTL); err != nil {
		s.log.Warn("recipe cache write failed", "key", key, "error", err)
	}
	return view, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, query domain.RecipeListQuery, actor domain.Actor) ([]domain.RecipeView, int64, error) {
	query.PaginationQuery = query.PaginationQuery.Normalize()
	recipes, total, err := s.recipeRepository.GetRecipes(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(ctx, recipes, actor)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *recipeService) buildViews(ctx context.Context, recipes []*entities.Recipe, actor domain.Actor) ([]domain.RecipeView, error) {
	images, err := s.loadImages(ctx, recipes...)
	if err != nil {
		return nil, err
	}
	views := make([]domain.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, BuildView(r, images, actor))
	}
	return views, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID uint, actor domain.Actor) error {
	var removedSteps []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.recipeRepository.GetRecipeForUpdate(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		if !canModify(actor, recipe) {
			return domain.ErrUnauthorizedRecipeAccess
		}
		steps, err := s.stepRepository.GetStepsByRecipe(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		for _, step := range steps {
			removedSteps = append(removedSteps, step.ID)
		}
		return s.recipeRepository.DeleteRecipe(ctx, tx, recipe)
	})
	if err != nil {
		return err
	}

	if err := s.imageService.Remove(ctx, recipeID, entities.ImageKindRecipe); err != nil {
		s.log.Warn("failed to remove recipe image", "recipe_id", recipeID, "error", err)
	}
	for _, stepID := range removedSteps {
		if err := s.imageService.Remove(ctx, stepID, entities.ImageKindStep); err != nil {
			s.log.Warn("failed to remove step image", "step_id", stepID, "error", err)
		}
	}
	s.invalidate(ctx, recipeID)
	s.log.Info("recipe deleted", "recipe_id", recipeID, "steps", len(removedSteps))
	return nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID uint, actor domain.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUserNotAllowed
	}
	if _, err := s.recipeRepository.GetRecipeByID(ctx, nil, recipeID); err != nil {
		return err
	}
	return s.recipeRepository.AddFavorite(ctx, actor.UserID, recipeID)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID uint, actor domain.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUserNotAllowed
	}
	return s.recipeRepository.RemoveFavorite(ctx, actor.UserID, recipeID)
}

func (s *recipeService) ListFavorites(ctx context.Context, page domain.PaginationQuery, actor domain.Actor) ([]domain.RecipeView, int64, error) {
	if !actor.Authenticated() {
		return nil, 0, domain.ErrUserNotAllowed
	}
	page = page.Normalize()
	recipes, total, err := s.recipeRepository.GetFavorites(ctx, actor.UserID, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(ctx, recipes, actor)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
