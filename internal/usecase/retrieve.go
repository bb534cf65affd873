package usecase

import (
	"context"
	"log/slog"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Answerer is the retrieval service: it embeds the query, gathers the most
// relevant chunks, and hands them off as prompt context. It never calls the
// LLM itself.
type Answerer struct {
	index    port.SemanticIndex
	registry port.Registry
	topK     int
	log      *slog.Logger
}

// NewAnswerer creates an answerer with the given default top-k.
func NewAnswerer(index port.SemanticIndex, registry port.Registry, topK int, log *slog.Logger) *Answerer {
	if topK <= 0 {
		topK = 1
	}
	return &Answerer{
		index:    index,
		registry: registry,
		topK:     topK,
		log:      log,
	}
}

// Answer retrieves context for a question. A query counts as "about the
// documents" exactly when the search returns at least one record; there is
// deliberately no similarity-score threshold, so callers must not assume
// semantic precision.
func (u *Answerer) Answer(ctx context.Context, query string, k int) (domain.Answer, error) {
	if k <= 0 {
		k = u.topK
	}

	files, err := u.registry.LoadFiles(ctx)
	if err != nil {
		return domain.Answer{}, err
	}
	if len(files) == 0 {
		return domain.Answer{}, nil
	}

	results, err := u.index.Search(ctx, query, k)
	if err != nil {
		return domain.Answer{}, err
	}
	if len(results) == 0 {
		return domain.Answer{HasDocuments: true}, nil
	}

	u.countConversation(ctx)

	texts := make([]string, len(results))
	sources := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
		source := r.Metadata["source"]
		if source == "" {
			source = "Unknown"
		}
		sources[i] = source
	}

	return domain.Answer{
		Context:      strings.Join(texts, "\n\n"),
		Sources:      sources,
		HasDocuments: true,
		Found:        true,
	}, nil
}

// countConversation bumps and persists the conversation counter. Failures
// are logged; a lost count never fails the question.
func (u *Answerer) countConversation(ctx context.Context) {
	stats, err := u.registry.LoadStats(ctx)
	if err != nil {
		u.log.Error("failed to load stats", "err", err)
		return
	}
	stats.ConversationCount++
	if err := u.registry.SaveStats(ctx, stats); err != nil {
		u.log.Error("failed to save stats", "err", err)
	}
}
