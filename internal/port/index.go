package port

import (
	"context"

	"docqa/internal/domain"
)

// SemanticIndex embeds chunks, persists them, and supports nearest-neighbor
// retrieval by query text.
type SemanticIndex interface {
	// Index embeds and stores all chunks of a document under docID.
	Index(ctx context.Context, docID string, chunks []domain.Chunk) error

	// Search returns at most k records ranked by decreasing relevance.
	// An empty result means the query matched nothing.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// Delete removes every record belonging to docID. Document-level
	// deletion is the only supported granularity.
	Delete(ctx context.Context, docID string) error

	// All returns every record in the index.
	All(ctx context.Context) ([]domain.SearchResult, error)
}

// Replicator mirrors the index's on-disk representation to remote storage.
// The default implementation is a coarse full-directory sync; incremental
// strategies can be swapped in behind the same interface.
type Replicator interface {
	// Push uploads the local representation to remote storage.
	Push(ctx context.Context) error

	// Pull replaces the local representation with the remote one, if any.
	Pull(ctx context.Context) error
}
