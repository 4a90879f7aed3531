package store

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"updatesfeed/internal/config"
)

// SnapshotPublisher uploads an export artifact to the bucket the static
// snapshot is served from, replacing the fixed object (posts.json by default).
// This automates the out-of-band redeploy step; the manual download path
// keeps working without it.
type SnapshotPublisher struct {
	client *minio.Client
	cfg    config.Publish
}

func NewSnapshotPublisher(cfg *config.Config) (*SnapshotPublisher, error) {
	client, err := minio.New(cfg.Publish.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Publish.AccessKey, cfg.Publish.SecretKey, ""),
		Secure: cfg.Publish.UseSSL,
		Region: cfg.Publish.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize publish client: %w", err)
	}

	return &SnapshotPublisher{client: client, cfg: cfg.Publish}, nil
}

func (p *SnapshotPublisher) Publish(ctx context.Context, artifact *Artifact) error {
	reader := bytes.NewReader(artifact.Data)

	_, err := p.client.PutObject(ctx, p.cfg.BucketName, p.cfg.ObjectName, reader, int64(reader.Len()),
		minio.PutObjectOptions{
			ContentType: "application/json",
			UserMetadata: map[string]string{
				"export-filename": artifact.Filename,
				"published-at":    time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}

	return nil
}
