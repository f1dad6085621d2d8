package minio

import (
	"context"
	"fmt"
	"io"

	minio "github.com/minio/minio-go/v7"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// StatObject verifies that an object exists in the configured bucket and
// returns its metadata. A missing object is an error; callers treat it as a
// job failure, not a panic.
func (m *Minio) StatObject(ctx context.Context, key string) (*ObjectInfo, error) {
	info, err := m.Client.StatObject(ctx, m.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("stat object %q: %w", key, err)
	}
	return &ObjectInfo{
		Key:         info.Key,
		Size:        info.Size,
		ContentType: info.ContentType,
	}, nil
}

// GetObject opens the named object for reading. The caller owns the returned
// reader and must close it.
func (m *Minio) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.Client.GetObject(ctx, m.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	return obj, nil
}
