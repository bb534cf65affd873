package embedding

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"docqa/internal/port"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

var _ port.Embedder = (*LocalEmbedder)(nil)

// LocalEmbedder is a deterministic hashed bag-of-words embedder. Tokens are
// hashed into a fixed number of buckets and the vector is L2-normalized, so
// the same text always produces the same vector with no model download or
// network call.
type LocalEmbedder struct {
	dimension int
}

// NewLocalEmbedder creates a local embedder. A non-positive dimension falls
// back to 384.
func NewLocalEmbedder(dimension int) *LocalEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &LocalEmbedder{dimension: dimension}
}

func (e *LocalEmbedder) Embed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = e.embed(text)
	}
	return embeddings, nil
}

func (e *LocalEmbedder) embed(text string) []float32 {
	vec := make([]float32, e.dimension)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(e.dimension)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

func (e *LocalEmbedder) Dimension() int {
	return e.dimension
}

func (e *LocalEmbedder) ModelName() string {
	return "hashed-bow"
}
