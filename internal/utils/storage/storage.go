package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils"
)

var AllowImage = []string{".jpg", ".jpeg", ".png", ".webp"}

// Storage is a flat key/value blob store addressed by slash separated paths.
type Storage interface {
	WriteFile(ctx context.Context, path string, data []byte, contentType string) error
	DeleteFile(ctx context.Context, path string) error
	MakeDir(ctx context.Context, path string) error
	PublicURL(path string) string
}

// New builds the driver selected by STORAGE_DRIVER.
func New(ctx context.Context) (Storage, error) {
	switch driver := strings.ToLower(utils.GetConfig("STORAGE_DRIVER")); driver {
	case "", "local":
		return NewLocalStorage(utils.GetConfig("MEDIA_ROOT"), utils.GetConfig("MEDIA_URL"))
	case "s3":
		return NewAwsS3(ctx)
	case "minio":
		return NewMinioStorage(ctx)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// CleanKey normalizes an object key and rejects keys escaping the store.
func CleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("empty storage key")
	}
	return cleaned, nil
}

func IsAllowedExtension(ext string, allowed ...string) bool {
	ext = strings.ToLower(ext)
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
