package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/port"
)

const (
	filesKey      = "files_info.json"
	statsKey      = "stats.json"
	uploadsPrefix = "uploads/"
)

// PlaceholderDocID marks registry entries recovered from remote storage
// during reconciliation; their index records are unknown.
const PlaceholderDocID = "unknown"

var _ port.Registry = (*Registry)(nil)

// Registry persists the uploaded-file list and usage statistics as JSON
// documents on a blob store. Corrupt or missing JSON is treated as absence,
// never as a fatal error.
type Registry struct {
	store port.BlobStore
	log   *slog.Logger
}

// New creates a registry over the given store.
func New(store port.BlobStore, log *slog.Logger) *Registry {
	return &Registry{store: store, log: log}
}

// LoadFiles returns the ordered document descriptors, or an empty list when
// nothing is stored or the stored data is unreadable.
func (r *Registry) LoadFiles(ctx context.Context) ([]domain.Document, error) {
	data, err := r.store.Get(ctx, filesKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.log.Error("failed to load files info", "err", err)
		}
		return nil, nil
	}

	var files []domain.Document
	if err := json.Unmarshal(data, &files); err != nil {
		r.log.Error("files info is corrupt, treating as empty", "err", err)
		return nil, nil
	}
	return files, nil
}

// SaveFiles persists the document descriptors. Paths are normalized to the
// uploads namespace so transient local locations never leak into storage.
func (r *Registry) SaveFiles(ctx context.Context, files []domain.Document) error {
	persisted := make([]domain.Document, len(files))
	for i, f := range files {
		persisted[i] = domain.Document{
			Name:  f.Name,
			DocID: f.DocID,
			Path:  path.Join("uploads", f.Name),
		}
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("failed to encode files info: %w", err)
	}
	if _, err := r.store.Put(ctx, filesKey, data); err != nil {
		return fmt.Errorf("failed to save files info: %w", err)
	}
	return nil
}

// LoadStats returns the usage counters, zero-initialized when nothing is
// stored or the stored data is unreadable.
func (r *Registry) LoadStats(ctx context.Context) (domain.Stats, error) {
	data, err := r.store.Get(ctx, statsKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.log.Error("failed to load stats", "err", err)
		}
		return domain.Stats{}, nil
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.log.Error("stats file is corrupt, resetting counters", "err", err)
		return domain.Stats{}, nil
	}
	return stats, nil
}

// SaveStats persists the usage counters.
func (r *Registry) SaveStats(ctx context.Context, stats domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if _, err := r.store.Put(ctx, statsKey, data); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// Reconcile unions uploads found in remote storage into the registry under a
// placeholder doc_id. This guards against registry/storage drift after
// partial failures; it recovers registry entries, not index records.
func (r *Registry) Reconcile(ctx context.Context, remote port.BlobStore) error {
	keys, err := remote.List(ctx, uploadsPrefix)
	if err != nil {
		r.log.Error("failed to enumerate remote uploads, skipping reconciliation", "err", err)
		return nil
	}

	files, err := r.LoadFiles(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(files))
	for _, f := range files {
		known[f.Name] = true
	}

	added := 0
	for _, key := range keys {
		name := strings.TrimPrefix(key, uploadsPrefix)
		if name == "" || known[name] {
			continue
		}
		files = append(files, domain.Document{
			Name:  name,
			DocID: PlaceholderDocID,
			Path:  key,
		})
		known[name] = true
		added++
	}

	if added == 0 {
		return nil
	}

	r.log.Info("recovered untracked uploads from remote storage", "count", added)
	return r.SaveFiles(ctx, files)
}
