package index

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/adapter/embedding"
	"docqa/internal/domain"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chunksFor(docID, source string, texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{Text: text, Source: source, Index: i, DocID: docID}
	}
	return chunks
}

func TestBolt_IndexAndSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := NewBolt(path, embedding.NewLocalEmbedder(384), nil, discard())
	require.NoError(t, err)
	defer idx.Close()
	ctx := context.Background()

	err = idx.Index(ctx, "doc-1", chunksFor("doc-1", "animals.txt",
		"The cat sat on the mat.",
		"Submarines operate deep underwater.",
	))
	require.NoError(t, err)

	results, err := idx.Search(ctx, "where did the cat sit", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "The cat sat on the mat.", results[0].Text)
	assert.Equal(t, "animals.txt", results[0].Metadata["source"])
	assert.Equal(t, "0", results[0].Metadata["chunk"])
	assert.Equal(t, "doc-1", results[0].Metadata["doc_id"])
	assert.Greater(t, results[0].Score, 0.0)
}

func TestBolt_SearchEmptyIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := NewBolt(path, embedding.NewLocalEmbedder(384), nil, discard())
	require.NoError(t, err)
	defer idx.Close()

	results, err := idx.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBolt_DeleteRemovesAllChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := NewBolt(path, embedding.NewLocalEmbedder(384), nil, discard())
	require.NoError(t, err)
	defer idx.Close()
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, "doc-1", chunksFor("doc-1", "a.txt", "alpha one", "alpha two")))
	require.NoError(t, idx.Index(ctx, "doc-2", chunksFor("doc-2", "b.txt", "beta one")))

	require.NoError(t, idx.Delete(ctx, "doc-1"))

	all, err := idx.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "doc-2", all[0].Metadata["doc_id"])
}

func TestBolt_DeleteUnknownDoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := NewBolt(path, embedding.NewLocalEmbedder(384), nil, discard())
	require.NoError(t, err)
	defer idx.Close()

	assert.NoError(t, idx.Delete(context.Background(), "no-such-doc"))
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	embedder := embedding.NewLocalEmbedder(384)
	ctx := context.Background()

	idx, err := NewBolt(path, embedder, nil, discard())
	require.NoError(t, err)
	require.NoError(t, idx.Index(ctx, "doc-1", chunksFor("doc-1", "a.txt", "persistent data survives restarts")))
	require.NoError(t, idx.Close())

	idx, err = NewBolt(path, embedder, nil, discard())
	require.NoError(t, err)
	defer idx.Close()

	results, err := idx.Search(ctx, "persistent data", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "persistent data survives restarts", results[0].Text)
}

func TestBolt_KLargerThanCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := NewBolt(path, embedding.NewLocalEmbedder(384), nil, discard())
	require.NoError(t, err)
	defer idx.Close()
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, "doc-1", chunksFor("doc-1", "a.txt", "only record")))

	results, err := idx.Search(ctx, "record", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
