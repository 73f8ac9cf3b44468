package minio

import (
	"context"
	"fmt"
	"log/slog"
	"file-researcher/internal/config"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const archiveContentType = "application/zip"

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

var _ port.ArchiveStorage = (*Adapter)(nil)

// NewAdapter returns Adapter, creating the bucket when missing
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

func (a *Adapter) key(name string) string {
	return path.Join(a.config.KeyPrefix, name)
}

// PutArchive uploads the archive file at localPath under name
func (a *Adapter) PutArchive(ctx context.Context, name string, localPath string) error {
	info, err := a.client.FPutObject(ctx, a.config.BucketName, a.key(name), localPath, minio.PutObjectOptions{
		ContentType: archiveContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put archive: %w", err)
	}

	a.logger.Info("archive retained",
		slog.String("key", info.Key),
		slog.Int64("size", info.Size),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// FetchArchive downloads a retained archive into localPath
func (a *Adapter) FetchArchive(ctx context.Context, name string, localPath string) error {
	err := a.client.FGetObject(ctx, a.config.BucketName, a.key(name), localPath, minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return fmt.Errorf("archive %s : %w", name, domain.ErrArchiveNotRetained)
		}
		return fmt.Errorf("failed to fetch archive: %w", err)
	}
	return nil
}
