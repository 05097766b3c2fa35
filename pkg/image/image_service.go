package image

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/Project-CookFlow-E2E/CF-Backend/domain"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/storage"
	"github.com/google/uuid"
)

type (
	ImageService interface {
		Ingest(ctx context.Context, data []byte, filename string, ownerID uint, kind entities.ImageKind) (*entities.Image, error)
		IngestFile(ctx context.Context, header *multipart.FileHeader, ownerID uint, kind entities.ImageKind) (*entities.Image, error)
		Get(ctx context.Context, ownerID uint, kind entities.ImageKind) (*entities.Image, error)
		GetMany(ctx context.Context, kind entities.ImageKind, ownerIDs []uint) (map[uint]*entities.Image, error)
		List(ctx context.Context, filter domain.ImageFilter, admin bool) (domain.ImageListResponse, error)
		Remove(ctx context.Context, ownerID uint, kind entities.ImageKind) error
	}

	Options struct {
		MaxUploadSize int64
		Processor     Processor
	}

	imageService struct {
		imageRepository ImageRepository
		storage         storage.Storage
		opts            Options
		log             *logger.Logger
	}
)

func OptionsFromConfig() Options {
	return Options{
		MaxUploadSize: int64(utils.GetConfigInt("MAX_UPLOAD_SIZE")),
		Processor: Processor{
			MaxDimension: utils.GetConfigInt("IMAGE_MAX_DIMENSION"),
			MaxPixels:    int64(utils.GetConfigInt("IMAGE_MAX_PIXELS")),
			Quality:      utils.GetConfigInt("IMAGE_JPEG_QUALITY"),
			Timeout:      utils.GetConfigDuration("IMAGE_PROCESS_TIMEOUT"),
		},
	}
}

func NewImageService(imageRepository ImageRepository, store storage.Storage, opts Options, log *logger.Logger) ImageService {
	return &imageService{
		imageRepository: imageRepository,
		storage:         store,
		opts:            opts,
		log:             log.With("component", "image"),
	}
}

// ObjectKey namespaces stored files by kind and owner.
func ObjectKey(kind entities.ImageKind, ownerID uint, name string) string {
	return fmt.Sprintf("%s/%d/%s", strings.ToLower(string(kind)), ownerID, name)
}

// Ingest makes data the current image of (ownerID, kind). The previous image
// file is removed once the row points at the new one.
func (s *imageService) Ingest(ctx context.Context, data []byte, filename string, ownerID uint, kind entities.ImageKind) (*entities.Image, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !storage.IsAllowedExtension(ext, storage.AllowImage...) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filename)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown image kind %q", kind)
	}

	encoded, err := s.opts.Processor.Process(ctx, data)
	if err != nil {
		return nil, err
	}

	name := uuid.New().String() + CanonicalExt
	key := ObjectKey(kind, ownerID, name)
	if err := s.storage.MakeDir(ctx, path.Dir(key)); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Err: err}
	}
	if err := s.storage.WriteFile(ctx, key, encoded, CanonicalContentType); err != nil {
		return nil, &domain.StorageError{Op: "write", Err: err}
	}

	existing, err := s.imageRepository.GetByOwner(ctx, ownerID, kind)
	if err != nil {
		s.discard(ctx, key)
		return nil, err
	}

	if existing == nil {
		img := &entities.Image{
			Name:             name,
			Kind:             kind,
			OwnerID:          ownerID,
			Path:             key,
			URL:              s.storage.PublicURL(key),
			ProcessingStatus: entities.ImageStatusCompleted,
		}
		if err := s.imageRepository.CreateImage(ctx, img); err != nil {
			s.discard(ctx, key)
			return nil, err
		}
		s.log.Info("image stored", "owner_id", ownerID, "kind", kind, "path", key)
		return img, nil
	}

	oldPath := existing.Path
	existing.Name = name
	existing.Path = key
	existing.URL = s.storage.PublicURL(key)
	existing.ProcessingStatus = entities.ImageStatusCompleted
	if err := s.imageRepository.UpdateImage(ctx, existing); err != nil {
		s.discard(ctx, key)
		return nil, err
	}
	if oldPath != "" && oldPath != key {
		s.discard(ctx, oldPath)
	}
	s.log.Info("image replaced", "owner_id", ownerID, "kind", kind, "path", key, "old_path", oldPath)
	return existing, nil
}

// IngestFile reads a multipart upload and ingests it. A nil header is a no-op.
func (s *imageService) IngestFile(ctx context.Context, header *multipart.FileHeader, ownerID uint, kind entities.ImageKind) (*entities.Image, error) {
	if header == nil {
		return nil, nil
	}
	if s.opts.MaxUploadSize > 0 && header.Size > s.opts.MaxUploadSize {
		return nil, domain.NewPayloadError(header.Filename, "file too large")
	}

	file, err := header.Open()
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Err: err}
	}
	defer file.Close()

	var reader io.Reader = file
	if s.opts.MaxUploadSize > 0 {
		reader = io.LimitReader(file, s.opts.MaxUploadSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Err: err}
	}
	if s.opts.MaxUploadSize > 0 && int64(len(data)) > s.opts.MaxUploadSize {
		return nil, domain.NewPayloadError(header.Filename, "file too large")
	}
	return s.Ingest(ctx, data, header.Filename, ownerID, kind)
}

func (s *imageService) Get(ctx context.Context, ownerID uint, kind entities.ImageKind) (*entities.Image, error) {
	return s.imageRepository.GetByOwner(ctx, ownerID, kind)
}

func (s *imageService) GetMany(ctx context.Context, kind entities.ImageKind, ownerIDs []uint) (map[uint]*entities.Image, error) {
	images, err := s.imageRepository.GetByOwners(ctx, kind, ownerIDs)
	if err != nil {
		return nil, err
	}
	res := make(map[uint]*entities.Image, len(images))
	for _, img := range images {
		res[img.OwnerID] = img
	}
	return res, nil
}

func (s *imageService) List(ctx context.Context, filter domain.ImageFilter, admin bool) (domain.ImageListResponse, error) {
	if filter.Kind != "" {
		filter.Kind = strings.ToUpper(filter.Kind)
		if !entities.ImageKind(filter.Kind).Valid() {
			return domain.ImageListResponse{}, domain.NewPayloadError("type", "unknown image type")
		}
	}
	filter.Pagination = filter.Pagination.Normalize()

	images, total, err := s.imageRepository.List(ctx, filter)
	if err != nil {
		return domain.ImageListResponse{}, err
	}
	views := make([]*domain.ImageView, 0, len(images))
	for _, img := range images {
		views = append(views, View(img, admin))
	}
	return domain.ImageListResponse{
		Images:     views,
		Pagination: domain.NewPaginationResponse(filter.Pagination, total),
	}, nil
}

// Remove deletes the image row of (ownerID, kind) and its file. A missing
// image is not an error.
func (s *imageService) Remove(ctx context.Context, ownerID uint, kind entities.ImageKind) error {
	existing, err := s.imageRepository.GetByOwner(ctx, ownerID, kind)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if err := s.imageRepository.DeleteImage(ctx, existing); err != nil {
		return err
	}
	s.discard(ctx, existing.Path)
	return nil
}

func (s *imageService) discard(ctx context.Context, key string) {
	if err := s.storage.DeleteFile(ctx, key); err != nil {
		s.log.Warn("failed to delete image file", "path", key, "error", err)
	}
}

// View renders an image row. Processing status is only shown to admins.
func View(img *entities.Image, admin bool) *domain.ImageView {
	if img == nil {
		return nil
	}
	view := &domain.ImageView{
		ID:        img.ID,
		Name:      img.Name,
		URL:       img.URL,
		Type:      string(img.Kind),
		CreatedAt: img.CreatedAt,
	}
	if admin {
		view.ProcessingStatus = string(img.ProcessingStatus)
	}
	return view
}
