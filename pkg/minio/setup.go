package minio

import (
	"context"
	"fmt"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Logger defines the interface for logging operations in the minio package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Minio wraps the MinIO SDK client with connection validation and the object
// operations the worker needs.
type Minio struct {
	Client *minio.Client
	cfg    Config
	logger Logger
}

// NewClient creates a new object store client and validates connectivity and
// bucket existence before returning.
func NewClient(cfg Config, logger Logger) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Error("failed to create minio client", err, map[string]interface{}{
			"endpoint": cfg.Endpoint,
		})
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	m := &Minio{
		Client: client,
		cfg:    cfg,
		logger: logger,
	}

	if err := m.validateConnection(); err != nil {
		return nil, err
	}

	logger.Info("connected to object store", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"bucket":   cfg.Bucket,
	})
	return m, nil
}

// validateConnection checks that the service is reachable and the configured
// bucket exists.
func (m *Minio) validateConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := m.Client.BucketExists(ctx, m.cfg.Bucket)
	if err != nil {
		m.logger.Error("failed to reach object store", err, map[string]interface{}{
			"endpoint": m.cfg.Endpoint,
		})
		return fmt.Errorf("failed to reach object store: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", m.cfg.Bucket)
	}
	return nil
}
