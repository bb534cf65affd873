package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var _ port.BlobStore = (*GCS)(nil)

// GCS stores blobs as objects in a Google Cloud Storage bucket. Every call
// is bounded by a timeout and attempted exactly once; retries are the
// caller's policy, not this adapter's.
type GCS struct {
	client  *storage.Client
	bucket  *storage.BucketHandle
	name    string
	timeout time.Duration
}

// NewGCS connects to the named bucket. The bucket must already exist and be
// reachable; connection failure is reported so the caller can degrade to
// local-only operation.
func NewGCS(ctx context.Context, bucketName string, timeout time.Duration) (*GCS, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	s := &GCS{
		client:  client,
		bucket:  client.Bucket(bucketName),
		name:    bucketName,
		timeout: timeout,
	}

	attrCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if _, err := s.bucket.Attrs(attrCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to access bucket %s: %w", bucketName, err)
	}

	return s, nil
}

func (s *GCS) Put(ctx context.Context, key string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	w := s.bucket.Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.name, key), nil
}

func (s *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	return data, nil
}

func (s *GCS) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.bucket.Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return true, nil
}

func (s *GCS) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *GCS) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var keys []string
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

// Close releases the underlying client.
func (s *GCS) Close() error {
	return s.client.Close()
}
