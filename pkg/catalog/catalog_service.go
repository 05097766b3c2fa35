package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/cache"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"gorm.io/gorm"
)

const (
	categoriesCacheKey = "catalog:categories"
	unitsCacheKey      = "catalog:units:%d"
)

type (
	// Resolver turns ids from a write payload into existing rows. A missing
	// id is a *domain.ReferenceNotFoundError.
	Resolver interface {
		ResolveIngredient(ctx context.Context, tx *gorm.DB, id uint) (*entities.Ingredient, error)
		ResolveUnit(ctx context.Context, tx *gorm.DB, id uint) (*entities.Unit, error)
		ResolveCategories(ctx context.Context, tx *gorm.DB, ids []uint) ([]*entities.Category, error)
	}

	CatalogService interface {
		Resolver
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		GetUnits(ctx context.Context, unitTypeID uint) ([]domain.UnitResponse, error)
		GetIngredients(ctx context.Context, search string, page domain.PaginationQuery) ([]domain.IngredientResponse, int64, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		cache             cache.Cache
		ttl               time.Duration
		log               *logger.Logger
	}
)

func NewCatalogService(catalogRepository CatalogRepository, c cache.Cache, ttl time.Duration, log *logger.Logger) CatalogService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &catalogService{
		catalogRepository: catalogRepository,
		cache:             c,
		ttl:               ttl,
		log:               log,
	}
}

func (s *catalogService) ResolveIngredient(ctx context.Context, tx *gorm.DB, id uint) (*entities.Ingredient, error) {
	ingredient, err := s.catalogRepository.GetIngredientByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, &domain.ReferenceNotFoundError{Field: "ingredient", ID: id}
	}
	return ingredient, nil
}

func (s *catalogService) ResolveUnit(ctx context.Context, tx *gorm.DB, id uint) (*entities.Unit, error) {
	unit, err := s.catalogRepository.GetUnitByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, &domain.ReferenceNotFoundError{Field: "unit", ID: id}
	}
	return unit, nil
}

func (s *catalogService) ResolveCategories(ctx context.Context, tx *gorm.DB, ids []uint) ([]*entities.Category, error) {
	categories, err := s.catalogRepository.GetCategoriesByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, &domain.ReferenceNotFoundError{Field: "categories", ID: id}
		}
	}
	return categories, nil
}

func (s *catalogService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	var res []domain.CategoryResponse
	if hit, err := s.cache.Get(ctx, categoriesCacheKey, &res); err != nil {
		s.log.Warn("catalog cache read failed", "key", categoriesCacheKey, "error", err)
	} else if hit {
		return res, nil
	}

	categories, err := s.catalogRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	res = make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, domain.CategoryResponse{
			ID:               c.ID,
			Name:             c.Name,
			ParentCategoryID: c.ParentCategoryID,
		})
	}

	if err := s.cache.Set(ctx, categoriesCacheKey, res, s.ttl); err != nil {
		s.log.Warn("catalog cache write failed", "key", categoriesCacheKey, "error", err)
	}
	return res, nil
}

func (s *catalogService) GetUnits(ctx context.Context, unitTypeID uint) ([]domain.UnitResponse, error) {
	key := fmt.Sprintf(unitsCacheKey, unitTypeID)
	var res []domain.UnitResponse
	if hit, err := s.cache.Get(ctx, key, &res); err != nil {
		s.log.Warn("catalog cache read failed", "key", key, "error", err)
	} else if hit {
		return res, nil
	}

	units, err := s.catalogRepository.GetUnits(ctx, unitTypeID)
	if err != nil {
		return nil, err
	}
	res = make([]domain.UnitResponse, 0, len(units))
	for _, u := range units {
		res = append(res, domain.UnitResponse{ID: u.ID, Name: u.Name, UnitTypeID: u.UnitTypeID})
	}

	if err := s.cache.Set(ctx, key, res, s.ttl); err != nil {
		s.log.Warn("catalog cache write failed", "key", key, "error", err)
	}
	return res, nil
}

func (s *catalogService) GetIngredients(ctx context.Context, search string, page domain.PaginationQuery) ([]domain.IngredientResponse, int64, error) {
	page = page.Normalize()
	ingredients, total, err := s.catalogRepository.GetIngredients(ctx, search, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, err
	}
	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, domain.IngredientResponse{
			ID:         i.ID,
			Name:       i.Name,
			UnitTypeID: i.UnitTypeID,
			IsApproved: i.IsApproved,
		})
	}
	return res, total, nil
}
