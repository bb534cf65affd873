package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Ingestor orchestrates the ingestion pipeline: validation, raw-byte
// persistence, extraction, chunking, indexing, and registry update. Steps
// are not transactional; a crash mid-pipeline can leave orphaned storage or
// index entries, recovered (for the registry only) by reconciliation at
// startup.
type Ingestor struct {
	store     port.BlobStore
	registry  port.Registry
	extractor port.Extractor
	chunker   port.Chunker
	index     port.SemanticIndex
	maxDocs   int
	maxBytes  int64
	log       *slog.Logger
}

// NewIngestor creates an ingestor with the given limits.
func NewIngestor(
	store port.BlobStore,
	registry port.Registry,
	extractor port.Extractor,
	chunker port.Chunker,
	index port.SemanticIndex,
	maxDocs int,
	maxBytes int64,
	log *slog.Logger,
) *Ingestor {
	return &Ingestor{
		store:     store,
		registry:  registry,
		extractor: extractor,
		chunker:   chunker,
		index:     index,
		maxDocs:   maxDocs,
		maxBytes:  maxBytes,
		log:       log,
	}
}

// Ingest processes one uploaded file and returns the assigned doc_id.
func (u *Ingestor) Ingest(ctx context.Context, data []byte, fileName string) (string, error) {
	files, err := u.registry.LoadFiles(ctx)
	if err != nil {
		return "", err
	}

	if len(files) >= u.maxDocs {
		return "", domain.ErrCapacityExceeded
	}
	if int64(len(data)) > u.maxBytes {
		return "", fmt.Errorf("%s (%d bytes): %w", fileName, len(data), domain.ErrFileTooLarge)
	}
	for _, f := range files {
		if f.Name == fileName {
			return "", fmt.Errorf("%q: %w", fileName, domain.ErrDuplicateName)
		}
	}

	location, err := u.store.Put(ctx, path.Join("uploads", fileName), data)
	if err != nil {
		return "", fmt.Errorf("failed to persist upload: %w", err)
	}

	// A total extraction failure aborts ingestion: the file is stored but
	// never registered.
	text, err := u.extractor.Extract(data, fileName)
	if err != nil {
		return "", err
	}

	pieces := u.chunker.Split(text)
	docID := uuid.NewString()

	chunks := make([]domain.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.Chunk{
			Text:   piece,
			Source: fileName,
			Index:  i,
			DocID:  docID,
		}
	}

	if err := u.index.Index(ctx, docID, chunks); err != nil {
		return "", fmt.Errorf("failed to index %s: %w", fileName, err)
	}

	files = append(files, domain.Document{
		Name:  fileName,
		DocID: docID,
		Path:  location,
	})
	if err := u.registry.SaveFiles(ctx, files); err != nil {
		return "", err
	}

	u.log.Info("document ingested", "name", fileName, "doc_id", docID, "chunks", len(chunks))
	return docID, nil
}

// Remove deletes a document by name: its index records, its stored bytes,
// and its registry entry, in that order.
func (u *Ingestor) Remove(ctx context.Context, fileName string) error {
	files, err := u.registry.LoadFiles(ctx)
	if err != nil {
		return err
	}

	found := -1
	for i, f := range files {
		if f.Name == fileName {
			found = i
			break
		}
	}
	if found < 0 {
		return fmt.Errorf("%q: %w", fileName, domain.ErrNotFound)
	}

	if err := u.index.Delete(ctx, files[found].DocID); err != nil {
		return fmt.Errorf("failed to remove %s from index: %w", fileName, err)
	}
	if err := u.store.Delete(ctx, path.Join("uploads", fileName)); err != nil {
		u.log.Error("failed to delete stored upload", "name", fileName, "err", err)
	}

	files = append(files[:found], files[found+1:]...)
	if err := u.registry.SaveFiles(ctx, files); err != nil {
		return err
	}

	u.log.Info("document removed", "name", fileName)
	return nil
}

// List returns the registered documents in upload order.
func (u *Ingestor) List(ctx context.Context) ([]domain.Document, error) {
	return u.registry.LoadFiles(ctx)
}
