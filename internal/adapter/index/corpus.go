package index

import (
	"math"
	"sort"

	"docqa/internal/domain"
)

// record is the persisted unit of the semantic index.
type record struct {
	Vector   []float32         `json:"v"`
	Text     string            `json:"t"`
	Metadata map[string]string `json:"m,omitempty"`
}

// corpus is an insertion-ordered record set held in memory for brute-force
// search. Both index implementations share it; the bolt index additionally
// persists every mutation.
type corpus struct {
	ids     []string
	records map[string]record
}

func newCorpus() *corpus {
	return &corpus{records: make(map[string]record)}
}

func (c *corpus) put(id string, rec record) {
	if _, ok := c.records[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.records[id] = rec
}

func (c *corpus) remove(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
		delete(c.records, id)
	}
	kept := c.ids[:0]
	for _, id := range c.ids {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	c.ids = kept
}

// byDoc returns the ids of every record whose metadata doc_id matches.
func (c *corpus) byDoc(docID string) []string {
	var ids []string
	for _, id := range c.ids {
		if c.records[id].Metadata["doc_id"] == docID {
			ids = append(ids, id)
		}
	}
	return ids
}

// rank scores every record against the query vector and returns the top k by
// decreasing similarity. The stable sort breaks ties by insertion order.
func (c *corpus) rank(query []float32, k int) []domain.SearchResult {
	if len(c.ids) == 0 || k <= 0 {
		return nil
	}

	results := make([]domain.SearchResult, 0, len(c.ids))
	for _, id := range c.ids {
		rec := c.records[id]
		results = append(results, domain.SearchResult{
			Text:     rec.Text,
			Metadata: rec.Metadata,
			Score:    cosineSimilarity(query, rec.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

func (c *corpus) all() []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(c.ids))
	for _, id := range c.ids {
		rec := c.records[id]
		results = append(results, domain.SearchResult{
			Text:     rec.Text,
			Metadata: rec.Metadata,
		})
	}
	return results
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
