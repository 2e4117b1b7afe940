package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/oakmart/storefront-backend/internal/config"
	"github.com/oakmart/storefront-backend/internal/dto"
)

// StorageService uploads product images to S3-compatible blob storage.
type StorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	publicURL := cfg.StoragePublicURL
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}

	return &StorageService{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload stores the body under a collision-free key and returns the public
// URL to persist on the product.
func (s *StorageService) Upload(ctx context.Context, filename, contentType string, body []byte) (*dto.UploadResponse, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := uuid.New().String() + "-" + filename

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	return &dto.UploadResponse{
		Key: key,
		URL: s.publicURL + "/" + s.bucket + "/" + key,
	}, nil
}
