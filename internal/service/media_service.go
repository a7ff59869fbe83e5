package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"vibeshare/internal/config"
	"vibeshare/internal/middleware"
	"vibeshare/internal/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadResult describes a file stored on the media host.
type UploadResult struct {
	URL      string           `json:"url"`
	PublicID string           `json:"public_id"`
	Kind     models.MediaKind `json:"type"`
}

// MediaService uploads files to and removes files from the S3-compatible
// media host.
type MediaService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	endpoint  string
	useSSL    bool
}

const maxUploadSize = 50 << 20 // 50 MiB

// NewMediaService connects to the media host and makes sure the bucket
// exists.
func NewMediaService(cfg *config.Config) (*MediaService, error) {
	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to media host: %w", err)
	}

	s := &MediaService{
		client:    client,
		bucket:    cfg.MediaBucket,
		publicURL: strings.TrimSuffix(cfg.MediaPublicURL, "/"),
		endpoint:  cfg.MediaEndpoint,
		useSSL:    cfg.MediaUseSSL,
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check media bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create media bucket: %w", err)
		}
	}

	return s, nil
}

// KindFromContentType maps an upload's MIME type to a media kind.
func KindFromContentType(contentType string) (models.MediaKind, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaImage, true
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaVideo, true
	}
	return "", false
}

// Upload streams the file to the media host under a fresh UUID object name
// and returns its public URL.
func (s *MediaService) Upload(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (*UploadResult, error) {
	if size <= 0 {
		return nil, models.NewValidationError("Uploaded file is empty")
	}
	if size > maxUploadSize {
		return nil, models.NewValidationError("Uploaded file too large (max 50 MB)")
	}
	kind, ok := KindFromContentType(contentType)
	if !ok {
		return nil, models.NewValidationError("Only image and video uploads are allowed")
	}

	objectName := uuid.New().String() + filepath.Ext(filename)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		middleware.MediaUploads.WithLabelValues("error").Inc()
		return nil, models.NewUpstreamError("media host", err)
	}
	middleware.MediaUploads.WithLabelValues("ok").Inc()

	return &UploadResult{
		URL:      s.objectURL(objectName),
		PublicID: objectName,
		Kind:     kind,
	}, nil
}

// Remove deletes an object from the media host.
func (s *MediaService) Remove(ctx context.Context, publicID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		return models.NewUpstreamError("media host", err)
	}
	return nil
}

func (s *MediaService) objectURL(objectName string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName)
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName)
}
