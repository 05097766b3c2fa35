package handlers

import (
	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/presenters"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/middleware"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/recipe"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		GetFavorites(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	form, err := recipeForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req, err := recipe.ParseRecipePayload(h.validator, form, true)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), req, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	form, err := recipeForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req, err := recipe.ParseRecipePayload(h.validator, form, false)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, req, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipe(c.Context(), recipeID, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	categoryID, err := queryID(c, "category")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}
	userID, err := queryID(c, "user")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	query := domain.RecipeListQuery{
		PaginationQuery: pagination(c),
		CategoryID:      categoryID,
		UserID:          userID,
	}
	recipes, total, err := h.recipeService.ListRecipes(c.Context(), query, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, domain.RecipeListResponse{
		Recipes:    recipes,
		Pagination: domain.NewPaginationResponse(query.PaginationQuery, total),
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, middleware.ActorFrom(c)); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFavorite, err)
	}

	if err := h.recipeService.AddFavorite(c.Context(), recipeID, middleware.ActorFrom(c)); err != nil {
		return presenters.Fail(c, domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessAddFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveFavorite, err)
	}

	if err := h.recipeService.RemoveFavorite(c.Context(), recipeID, middleware.ActorFrom(c)); err != nil {
		return presenters.Fail(c, domain.MessageFailedRemoveFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}

func (h *recipeHandler) GetFavorites(c *fiber.Ctx) error {
	page := pagination(c)
	recipes, total, err := h.recipeService.ListFavorites(c.Context(), page, middleware.ActorFrom(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, domain.RecipeListResponse{
		Recipes:    recipes,
		Pagination: domain.NewPaginationResponse(page, total),
	}, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}
