package port

import "context"

// BlobStore is durable byte storage addressed by slash-separated keys.
// Implementations cover the local filesystem, a remote object store, and a
// dual primary-remote/shadow-local composition of the two.
type BlobStore interface {
	// Put stores data under key and returns the location it was written to.
	Put(ctx context.Context, key string, data []byte) (string, error)

	// Get returns the bytes stored under key. Returns domain.ErrNotFound
	// when no backend holds the key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether key is present in any backend.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
