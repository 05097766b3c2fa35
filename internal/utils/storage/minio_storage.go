package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

func NewMinioStorage(ctx context.Context) (*MinioStorage, error) {
	endpoint := utils.GetConfig("MINIO_ENDPOINT")
	secure := utils.GetConfigBool("MINIO_USE_SSL")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(utils.GetConfig("MINIO_ACCESS_KEY"), utils.GetConfig("MINIO_SECRET_KEY"), ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	bucket := utils.GetConfig("MINIO_BUCKET")
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &MinioStorage{client: client, bucket: bucket, endpoint: endpoint, secure: secure}, nil
}

func (m *MinioStorage) WriteFile(ctx context.Context, key string, data []byte, contentType string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	_, err = m.client.PutObject(ctx, m.bucket, cleaned, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m *MinioStorage) DeleteFile(ctx context.Context, key string) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}
	return m.client.RemoveObject(ctx, m.bucket, cleaned, minio.RemoveObjectOptions{})
}

func (m *MinioStorage) MakeDir(context.Context, string) error {
	return nil
}

func (m *MinioStorage) PublicURL(key string) string {
	scheme := "http"
	if m.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, strings.TrimSuffix(m.endpoint, "/"), m.bucket, key)
}
