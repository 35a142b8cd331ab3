// internal/storage/archive.go
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImportArchive keeps a copy of every imported sales CSV for audit replay.
type ImportArchive interface {
	Store(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
}

type minioArchive struct {
	client *minio.Client
	bucket string
}

type noopArchive struct{}

// NewImportArchive builds a minio-backed archive, or a noop one when
// archiving is disabled.
func NewImportArchive(cfg config.ArchiveConfig) (ImportArchive, error) {
	if !cfg.Enabled {
		return &noopArchive{}, nil
	}

	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init archive client: %w", err)
	}

	return &minioArchive{client: client, bucket: cfg.Bucket}, nil
}

func NewNoopImportArchive() ImportArchive {
	return &noopArchive{}
}

func (a *minioArchive) Store(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("imports/%s/%s", time.Now().UTC().Format("2006-01-02"), filename)

	_, err := a.client.PutObject(ctx, a.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", filename, err)
	}

	return key, nil
}

func (a *noopArchive) Store(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	return "", nil
}
