package shopping

import (
	"context"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/catalog"
	"gorm.io/gorm"
)

type (
	ShoppingService interface {
		ListItems(ctx context.Context, actor domain.Actor) ([]domain.ShoppingItemResponse, error)
		AddItem(ctx context.Context, req domain.AddShoppingItemRequest, actor domain.Actor) (domain.ShoppingItemResponse, error)
		UpdateItem(ctx context.Context, itemID uint, req domain.UpdateShoppingItemRequest, actor domain.Actor) (domain.ShoppingItemResponse, error)
		DeleteItem(ctx context.Context, itemID uint, actor domain.Actor) error
		AddRecipeToList(ctx context.Context, recipeID uint, actor domain.Actor) ([]domain.ShoppingItemResponse, error)
	}

	shoppingService struct {
		db                 *gorm.DB
		shoppingRepository ShoppingRepository
		resolver           catalog.Resolver
		log                *logger.Logger
	}
)

func NewShoppingService(db *gorm.DB, shoppingRepository ShoppingRepository, resolver catalog.Resolver, log *logger.Logger) ShoppingService {
	return &shoppingService{
		db:                 db,
		shoppingRepository: shoppingRepository,
		resolver:           resolver,
		log:                log.With("component", "shopping"),
	}
}

func toResponse(item *entities.ShoppingListItem) domain.ShoppingItemResponse {
	res := domain.ShoppingItemResponse{
		ID:             item.ID,
		Ingredient:     item.IngredientID,
		QuantityNeeded: item.QuantityNeeded,
		Unit:           item.UnitID,
		IsPurchased:    item.IsPurchased,
		UpdatedAt:      item.UpdatedAt,
	}
	if item.Ingredient != nil {
		res.IngredientName = item.Ingredient.Name
	}
	if item.Unit != nil {
		res.UnitName = item.Unit.Name
	}
	return res
}

func (s *shoppingService) ListItems(ctx context.Context, actor domain.Actor) ([]domain.ShoppingItemResponse, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUserNotAllowed
	}
	items, err := s.shoppingRepository.GetItemsByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.ShoppingItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, toResponse(item))
	}
	return res, nil
}

// addQuantity merges into the caller's open item for the same ingredient and
// unit, or creates one.
func (s *shoppingService) addQuantity(ctx context.Context, tx *gorm.DB, userID, ingredientID, unitID uint, quantity float64) (uint, error) {
	existing, err := s.shoppingRepository.FindOpenItem(ctx, tx, userID, ingredientID, unitID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		existing.QuantityNeeded += quantity
		return existing.ID, s.shoppingRepository.UpdateItem(ctx, tx, existing)
	}
	item := &entities.ShoppingListItem{
		UserID:         userID,
		IngredientID:   ingredientID,
		UnitID:         unitID,
		QuantityNeeded: quantity,
	}
	if err := s.shoppingRepository.CreateItem(ctx, tx, item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (s *shoppingService) AddItem(ctx context.Context, req domain.AddShoppingItemRequest, actor domain.Actor) (domain.ShoppingItemResponse, error) {
	if !actor.Authenticated() {
		return domain.ShoppingItemResponse{}, domain.ErrUserNotAllowed
	}

	var itemID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.resolver.ResolveIngredient(ctx, tx, req.Ingredient); err != nil {
			return err
		}
		if _, err := s.resolver.ResolveUnit(ctx, tx, req.Unit); err != nil {
			return err
		}
		var err error
		itemID, err = s.addQuantity(ctx, tx, actor.UserID, req.Ingredient, req.Unit, req.Quantity)
		return err
	})
	if err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	item, err := s.shoppingRepository.GetItemByID(ctx, nil, itemID)
	if err != nil {
		return domain.ShoppingItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *shoppingService) ownedItem(ctx context.Context, itemID uint, actor domain.Actor) (*entities.ShoppingListItem, error) {
	item, err := s.shoppingRepository.GetItemByID(ctx, nil, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrUnauthorizedShoppingItem
	}
	return item, nil
}

func (s *shoppingService) UpdateItem(ctx context.Context, itemID uint, req domain.UpdateShoppingItemRequest, actor domain.Actor) (domain.ShoppingItemResponse, error) {
	item, err := s.ownedItem(ctx, itemID, actor)
	if err != nil {
		return domain.ShoppingItemResponse{}, err
	}
	if req.Quantity != nil {
		item.QuantityNeeded = *req.Quantity
	}
	if req.IsPurchased != nil {
		item.IsPurchased = *req.IsPurchased
	}
	if err := s.shoppingRepository.UpdateItem(ctx, nil, item); err != nil {
		return domain.ShoppingItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *shoppingService) DeleteItem(ctx context.Context, itemID uint, actor domain.Actor) error {
	item, err := s.ownedItem(ctx, itemID, actor)
	if err != nil {
		return err
	}
	return s.shoppingRepository.DeleteItem(ctx, item)
}

func (s *shoppingService) AddRecipeToList(ctx context.Context, recipeID uint, actor domain.Actor) ([]domain.ShoppingItemResponse, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUserNotAllowed
	}

	var added int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := s.shoppingRepository.GetRecipeLines(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := s.addQuantity(ctx, tx, actor.UserID, line.IngredientID, line.UnitID, line.Quantity); err != nil {
				return err
			}
		}
		added = len(lines)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("recipe added to shopping list", "recipe_id", recipeID, "lines", added)
	return s.ListItems(ctx, actor)
}
