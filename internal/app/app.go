package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docqa/config"
	"docqa/internal/adapter/blob"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/extract"
	"docqa/internal/adapter/index"
	"docqa/internal/adapter/llm"
	"docqa/internal/adapter/registry"
	"docqa/internal/logger"
	"docqa/internal/port"
	"docqa/internal/usecase"
)

// App is the application context: every component constructed once at
// startup and injected where needed. Commands build one App and work through
// its use cases.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Store    port.BlobStore
	Registry *registry.Registry
	Index    port.SemanticIndex
	Ingestor *usecase.Ingestor
	Answerer *usecase.Answerer

	gcs  *blob.GCS
	bolt *index.Bolt
}

// New wires the full application from configuration. Remote-storage or
// persistent-index initialization failures degrade to local / in-memory
// operation rather than aborting.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Logging)

	local, err := blob.NewLocal(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: log}

	var store port.BlobStore = local
	var remote port.BlobStore
	if cfg.Storage.UseCloudStorage {
		timeout := time.Duration(cfg.Storage.TimeoutSeconds) * time.Second
		gcs, err := blob.NewGCS(ctx, cfg.Storage.Bucket, timeout)
		if err != nil {
			log.Error("cloud storage unavailable, using local storage only", "bucket", cfg.Storage.Bucket, "err", err)
		} else {
			a.gcs = gcs
			remote = gcs
			store = blob.NewDual(gcs, local, log)
			log.Info("connected to cloud storage", "bucket", cfg.Storage.Bucket)
		}
	}
	a.Store = store

	a.Registry = registry.New(store, log)
	if remote != nil {
		if err := a.Registry.Reconcile(ctx, remote); err != nil {
			log.Error("registry reconciliation failed", "err", err)
		}
	}

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		a.Close()
		return nil, err
	}

	var replicator port.Replicator
	if remote != nil {
		replicator = index.NewDirReplicator(cfg.Storage.IndexDir, cfg.IndexPrefix(), remote, log)
		if err := replicator.Pull(ctx); err != nil {
			log.Error("failed to restore index from remote storage", "err", err)
		}
	}

	idx, err := index.NewBolt(cfg.IndexDBPath(), embedder, replicator, log)
	if err != nil {
		// Queries keep working; data is lost on exit in this mode.
		log.Error("falling back to in-memory index", "err", err)
		a.Index = index.NewMemory(embedder)
	} else {
		a.bolt = idx
		a.Index = idx
	}

	a.Ingestor = usecase.NewIngestor(
		store,
		a.Registry,
		extract.New(),
		chunker.NewTextChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		a.Index,
		cfg.Ingest.MaxDocuments,
		cfg.Ingest.MaxFileBytes,
		log,
	)
	a.Answerer = usecase.NewAnswerer(a.Index, a.Registry, cfg.Retrieve.TopK, log)

	return a, nil
}

// LLM builds the answer-generation client, or nil when no API key is
// configured.
func (a *App) LLM() port.LLM {
	client, err := llm.NewOpenAIClient(a.Config.LLM.APIKeyEnv, a.Config.LLM.Model, a.Config.LLM.BaseURL)
	if err != nil {
		a.Log.Debug("LLM client not configured", "err", err)
		return nil
	}
	return client
}

// Close releases held resources.
func (a *App) Close() error {
	var firstErr error
	if a.bolt != nil {
		if err := a.bolt.Close(); err != nil {
			firstErr = err
		}
	}
	if a.gcs != nil {
		if err := a.gcs.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildEmbedder(cfg config.EmbeddingConfig) (port.Embedder, error) {
	switch cfg.Provider {
	case "", "local":
		return embedding.NewLocalEmbedder(cfg.Dimension), nil
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
