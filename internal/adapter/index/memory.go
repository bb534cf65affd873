package index

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var _ port.SemanticIndex = (*Memory)(nil)

// Memory is the non-persistent fallback index, used when the bolt index
// fails to initialize. Query semantics are identical; data is lost on
// process exit.
type Memory struct {
	embedder port.Embedder

	mu     sync.RWMutex
	corpus *corpus
}

// NewMemory creates an in-memory semantic index.
func NewMemory(embedder port.Embedder) *Memory {
	return &Memory{
		embedder: embedder,
		corpus:   newCorpus(),
	}
}

func (s *Memory) Index(_ context.Context, docID string, chunks []domain.Chunk) error {
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
	for i, c := range chunks {
		s.corpus.put(recordID(docID, c.Index), record{
			Vector: vectors[i],
			Text:   c.Text,
			Metadata: map[string]string{
				"source": c.Source,
				"chunk":  strconv.Itoa(c.Index),
				"doc_id": docID,
			},
		})
	}
	return nil
}

func (s *Memory) Search(_ context.Context, query string, k int) ([]domain.SearchResult, error) {
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

func (s *Memory) Delete(_ context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus.remove(s.corpus.byDoc(docID))
	return nil
}

func (s *Memory) All(_ context.Context) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus.all(), nil
}
