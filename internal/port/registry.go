package port

import (
	"context"

	"docqa/internal/domain"
)

// Registry persists the uploaded-file list and usage statistics.
// Loads fall back to zero values when no backend holds the data or the
// stored JSON is unreadable.
type Registry interface {
	LoadFiles(ctx context.Context) ([]domain.Document, error)

	SaveFiles(ctx context.Context, files []domain.Document) error

	LoadStats(ctx context.Context) (domain.Stats, error)

	SaveStats(ctx context.Context, stats domain.Stats) error
}
