package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/model"
	"twi-speech/internal/config"
)

// ObjectClient is the subset of the S3 API the gateway needs.
// *minio.Client satisfies it.
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	RemoveObjectsWithResult(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectResult
}

// PutRequest describes one audio upload
type PutRequest struct {
	Data             []byte
	ParticipantCode  string
	PromptID         string
	OriginalFilename string
	ContentType      string
}

// StoredObject is the result of a successful Put
type StoredObject struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// Gateway wraps the R2 bucket holding recordings
type Gateway struct {
	client     ObjectClient
	bucket     string
	publicHost string
	logger     *zap.Logger
}

// NewMinioClient builds an S3 client for the configured R2 account
func NewMinioClient(cfg config.StorageConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.EndpointHost(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return client, nil
}

// NewGateway creates a gateway over client
func NewGateway(client ObjectClient, cfg config.StorageConfig, logger *zap.Logger) *Gateway {
	return &Gateway{
		client:     client,
		bucket:     cfg.Bucket,
		publicHost: cfg.PublicHostname(),
		logger:     logging.OrNop(logger).Named("storage"),
	}
}

// PublicURL returns the public URL of key
func (g *Gateway) PublicURL(key string) string {
	return fmt.Sprintf("https://%s/%s/%s", g.publicHost, g.bucket, key)
}

// Put writes one recording. Empty content is rejected before any key is generated.
func (g *Gateway) Put(ctx context.Context, req PutRequest) (*StoredObject, error) {
	if len(req.Data) == 0 {
		return nil, apperrors.ErrEmptyUpload
	}

	key := ObjectKey(req.ParticipantCode, req.PromptID, req.OriginalFilename)
	contentType := ResolveContentType(key, req.ContentType)
	size := int64(len(req.Data))

	_, err := g.client.PutObject(ctx, g.bucket, key, bytes.NewReader(req.Data), size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		g.logger.Error("failed to upload object",
			zap.String("key", key),
			zap.Int64("size", size),
			zap.Error(err),
		)
		return nil, apperrors.Storage(err, "failed to upload recording")
	}

	g.logger.Debug("uploaded object", zap.String("key", key), zap.String("content_type", contentType))
	return &StoredObject{
		Key:         key,
		URL:         g.PublicURL(key),
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Delete removes one object. Empty and sentinel keys count as deleted.
// Backend failures are logged and reported as false.
func (g *Gateway) Delete(ctx context.Context, key string) bool {
	if !model.IsDeletableKey(key) {
		return true
	}
	if err := g.client.RemoveObject(ctx, g.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		g.logger.Warn("failed to delete object", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// DeleteMany removes keys with a single batch request and reports per-key success.
// Keys that are filtered out before the request report true.
func (g *Gateway) DeleteMany(ctx context.Context, keys []string) map[string]bool {
	results := make(map[string]bool, len(keys))

	var pending []string
	for _, key := range keys {
		if !model.IsDeletableKey(key) {
			results[key] = true
			continue
		}
		if _, seen := results[key]; seen {
			continue
		}
		results[key] = false
		pending = append(pending, key)
	}
	if len(pending) == 0 {
		return results
	}

	objectsCh := make(chan minio.ObjectInfo, len(pending))
	for _, key := range pending {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	// Keys absent from the response stay false
	reported := make(map[string]bool, len(pending))
	failed := 0
	for res := range g.client.RemoveObjectsWithResult(ctx, g.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if _, ok := results[res.ObjectName]; !ok {
			continue
		}
		reported[res.ObjectName] = true
		if res.Err != nil {
			failed++
			g.logger.Warn("failed to delete object in batch", zap.String("key", res.ObjectName), zap.Error(res.Err))
			results[res.ObjectName] = false
			continue
		}
		results[res.ObjectName] = true
	}

	if missing := len(pending) - len(reported); missing > 0 {
		g.logger.Warn("batch delete response omitted keys", zap.Int("missing", missing))
	}
	g.logger.Info("batch delete finished",
		zap.Int("requested", len(pending)),
		zap.Int("failed", failed),
	)
	return results
}
