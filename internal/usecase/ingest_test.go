package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/adapter/blob"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/extract"
	"docqa/internal/adapter/index"
	"docqa/internal/adapter/registry"
	"docqa/internal/domain"
)

type fixture struct {
	ingestor *Ingestor
	answerer *Answerer
	store    *blob.Local
	registry *registry.Registry
	index    *index.Memory
}

func newFixture(t *testing.T, maxDocs int, maxBytes int64) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := blob.NewLocal(t.TempDir())
	require.NoError(t, err)
	reg := registry.New(store, log)
	idx := index.NewMemory(embedding.NewLocalEmbedder(384))

	return &fixture{
		ingestor: NewIngestor(store, reg, extract.New(), chunker.NewTextChunker(1000, 200), idx, maxDocs, maxBytes, log),
		answerer: NewAnswerer(idx, reg, 1, log),
		store:    store,
		registry: reg,
		index:    idx,
	}
}

func TestIngest_Success(t *testing.T) {
	f := newFixture(t, 5, 1<<20)
	ctx := context.Background()

	docID, err := f.ingestor.Ingest(ctx, []byte("The cat sat. The dog ran."), "animals.txt")
	require.NoError(t, err)
	assert.NotEmpty(t, docID)

	files, err := f.ingestor.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "animals.txt", files[0].Name)
	assert.Equal(t, docID, files[0].DocID)

	data, err := f.store.Get(ctx, "uploads/animals.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("The cat sat. The dog ran."), data)

	all, err := f.index.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	results, err := f.index.Search(ctx, "cat", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, docID, results[0].Metadata["doc_id"])
}

func TestIngest_CapacityLimit(t *testing.T) {
	f := newFixture(t, 5, 1<<20)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.ingestor.Ingest(ctx, []byte("some document text"), fmt.Sprintf("doc%d.txt", i))
		require.NoError(t, err)
	}

	_, err := f.ingestor.Ingest(ctx, []byte("one too many"), "overflow.txt")
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	files, err := f.ingestor.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 5)
}

func TestIngest_FileTooLarge(t *testing.T) {
	f := newFixture(t, 5, 64)
	ctx := context.Background()

	_, err := f.ingestor.Ingest(ctx, []byte(strings.Repeat("x", 65)), "big.txt")
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	files, err := f.ingestor.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestIngest_DuplicateName(t *testing.T) {
	f := newFixture(t, 5, 1<<20)
	ctx := context.Background()

	_, err := f.ingestor.Ingest(ctx, []byte("first copy"), "report.txt")
	require.NoError(t, err)

	_, err = f.ingestor.Ingest(ctx, []byte("second copy"), "report.txt")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	files, err := f.ingestor.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestIngest_UnsupportedFormat(t *testing.T) {
	f := newFixture(t, 5, 1<<20)

	_, err := f.ingestor.Ingest(context.Background(), []byte("# readme"), "notes.md")
	var ufe *domain.UnsupportedFormatError
	assert.ErrorAs(t, err, &ufe)

	files, err := f.ingestor.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestIngest_ExtractionFailureNotRegistered(t *testing.T) {
	f := newFixture(t, 5, 1<<20)
	ctx := context.Background()

	_, err := f.ingestor.Ingest(ctx, []byte("not a zip archive"), "broken.docx")
	var ee *domain.ExtractionError
	require.ErrorAs(t, err, &ee)

	files, err := f.ingestor.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files, "failed extraction must not register the document")

	all, err := f.index.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngest_LongDocumentChunked(t *testing.T) {
	f := newFixture(t, 5, 1<<20)
	ctx := context.Background()

	var sb strings.Builder
	for i := 0; sb.Len() < 3000; i++ {
		fmt.Fprintf(&sb, "Sentence number %d carries unique content. ", i)
	}

	_, err := f.ingestor.Ingest(ctx, []byte(sb.String()), "long.txt")
	require.NoError(t, err)

	all, err := f.index.All(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 3)
	for _, r := range all {
		assert.LessOrEqual(t, len([]rune(r.Text)), 1000)
	}
}

func TestRemove_Cascade(t *testing.T) {
	f := newFixture(t, 5, 1<<20)
	ctx := context.Background()

	_, err := f.ingestor.Ingest(ctx, []byte("keep me around"), "keep.txt")
	require.NoError(t, err)
	_, err = f.ingestor.Ingest(ctx, []byte("remove me soon"), "gone.txt")
	require.NoError(t, err)

	require.NoError(t, f.ingestor.Remove(ctx, "gone.txt"))

	files, err := f.ingestor.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.txt", files[0].Name)

	ok, err := f.store.Exists(ctx, "uploads/gone.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := f.index.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep.txt", all[0].Metadata["source"])
}

func TestRemove_UnknownName(t *testing.T) {
	f := newFixture(t, 5, 1<<20)

	err := f.ingestor.Remove(context.Background(), "nope.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
