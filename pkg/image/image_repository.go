package image

import (
	"context"
	"errors"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"gorm.io/gorm"
)

type (
	ImageRepository interface {
		GetByOwner(ctx context.Context, ownerID uint, kind entities.ImageKind) (*entities.Image, error)
		GetByOwners(ctx context.Context, kind entities.ImageKind, ownerIDs []uint) ([]*entities.Image, error)
		List(ctx context.Context, filter domain.ImageFilter) ([]*entities.Image, int64, error)
		CreateImage(ctx context.Context, image *entities.Image) error
		UpdateImage(ctx context.Context, image *entities.Image) error
		DeleteImage(ctx context.Context, image *entities.Image) error
	}

	imageRepository struct {
		db *gorm.DB
	}
)

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) GetByOwner(ctx context.Context, ownerID uint, kind entities.ImageKind) (*entities.Image, error) {
	var image entities.Image
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ?", ownerID, kind).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) GetByOwners(ctx context.Context, kind entities.ImageKind, ownerIDs []uint) ([]*entities.Image, error) {
	var images []*entities.Image
	if len(ownerIDs) == 0 {
		return images, nil
	}
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND owner_id IN ?", kind, ownerIDs).
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) List(ctx context.Context, filter domain.ImageFilter) ([]*entities.Image, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Image{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Pagination.Normalize()
	var images []*entities.Image
	if err := query.
		Order(filter.OrderClause()).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&images).Error; err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

func (r *imageRepository) CreateImage(ctx context.Context, image *entities.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) UpdateImage(ctx context.Context, image *entities.Image) error {
	return r.db.WithContext(ctx).Model(image).Updates(map[string]any{
		"name":              image.Name,
		"path":              image.Path,
		"url":               image.URL,
		"processing_status": image.ProcessingStatus,
	}).Error
}

func (r *imageRepository) DeleteImage(ctx context.Context, image *entities.Image) error {
	return r.db.WithContext(ctx).Delete(image).Error
}
