package index

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.etcd.io/bbolt"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var bucketRecords = []byte("records")

var _ port.SemanticIndex = (*Bolt)(nil)

// Bolt is the persistent semantic index: embedding records stored in a bbolt
// database, cached in memory for brute-force cosine search. When a
// replicator is configured, every mutation is followed by a full sync of the
// index directory to remote storage. Coarse, but acceptable for corpora of a
// handful of small documents.
type Bolt struct {
	db         *bbolt.DB
	embedder   port.Embedder
	replicator port.Replicator
	log        *slog.Logger

	mu     sync.RWMutex
	corpus *corpus
}

// NewBolt opens (or creates) the index database at path. The caller should
// fall back to the in-memory index when this fails.
func NewBolt(path string, embedder port.Embedder, replicator port.Replicator, log *slog.Logger) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open index db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create records bucket: %w", err)
	}

	idx := &Bolt{
		db:         db,
		embedder:   embedder,
		replicator: replicator,
		log:        log,
		corpus:     newCorpus(),
	}

	if err := idx.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return idx, nil
}

// load reads all persisted records into the in-memory corpus.
func (s *Bolt) load() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil // Skip corrupted entries
			}
			s.corpus.put(string(k), rec)
			return nil
		})
	})
}

// Index embeds and stores all chunks of a document. Record ids are
// "<docID>_<chunkIndex>", unique within a document and stable across
// re-reads.
func (s *Bolt) Index(ctx context.Context, docID string, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.Embed(texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		for i, c := range chunks {
			id := recordID(docID, c.Index)
			rec := record{
				Vector: vectors[i],
				Text:   c.Text,
				Metadata: map[string]string{
					"source": c.Source,
					"chunk":  strconv.Itoa(c.Index),
					"doc_id": docID,
				},
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(id), data); err != nil {
				return err
			}
			s.corpus.put(id, rec)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index document %s: %w", docID, err)
	}

	s.replicate(ctx)
	return nil
}

func (s *Bolt) Search(_ context.Context, query string, k int) ([]domain.SearchResult, error) {
	vectors, err := s.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus.rank(vectors[0], k), nil
}

// Delete removes every record whose metadata doc_id matches.
func (s *Bolt) Delete(ctx context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.corpus.byDoc(docID)
	if len(ids) == 0 {
		return nil
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", docID, err)
	}
	s.corpus.remove(ids)

	s.replicate(ctx)
	return nil
}

func (s *Bolt) All(_ context.Context) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus.all(), nil
}

// Close closes the underlying database.
func (s *Bolt) Close() error {
	return s.db.Close()
}

// replicate pushes the index directory to remote storage. Replication is
// best effort; failures are logged, never surfaced.
func (s *Bolt) replicate(ctx context.Context) {
	if s.replicator == nil {
		return
	}
	if err := s.db.Sync(); err != nil {
		s.log.Error("failed to sync index db before replication", "err", err)
		return
	}
	if err := s.replicator.Push(ctx); err != nil {
		s.log.Error("failed to replicate index to remote storage", "err", err)
	}
}

func recordID(docID string, chunkIndex int) string {
	return docID + "_" + strconv.Itoa(chunkIndex)
}
