package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5, cfg.Ingest.MaxDocuments)
	assert.Equal(t, int64(1048576), cfg.Ingest.MaxFileBytes)
	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 200, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, 1, cfg.Retrieve.TopK)
	assert.Equal(t, "local", cfg.Embedding.Provider)
	assert.False(t, cfg.Storage.UseCloudStorage)
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "docqa.yaml")

	content := `
storage:
  data_dir: /srv/docqa
  use_cloud_storage: true
  bucket: my-bucket
ingest:
  chunk_size: 500
retrieve:
  top_k: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docqa", cfg.Storage.DataDir)
	assert.True(t, cfg.Storage.UseCloudStorage)
	assert.Equal(t, "my-bucket", cfg.Storage.Bucket)
	assert.Equal(t, 500, cfg.Ingest.ChunkSize)
	assert.Equal(t, 3, cfg.Retrieve.TopK)
	// Unspecified fields keep defaults.
	assert.Equal(t, 5, cfg.Ingest.MaxDocuments)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "docqa.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("storage: ["), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	content := "retrieve:\n  top_k: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "docqa.yaml"), []byte(content), 0644))

	cfg, err := LoadFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Retrieve.TopK)
}

func TestLoadFromDir_Defaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DOCQA_DATA_DIR", "/tmp/data")
	t.Setenv("DOCQA_USE_CLOUD_STORAGE", "true")
	t.Setenv("DOCQA_GCS_BUCKET", "env-bucket")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "/tmp/data", cfg.Storage.DataDir)
	assert.True(t, cfg.Storage.UseCloudStorage)
	assert.Equal(t, "env-bucket", cfg.Storage.Bucket)
}

func TestApplyEnv_BadBool(t *testing.T) {
	t.Setenv("DOCQA_USE_CLOUD_STORAGE", "maybe")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.False(t, cfg.Storage.UseCloudStorage)
}

func TestIndexPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.IndexDir = "/var/lib/docqa/index_db"

	assert.Equal(t, filepath.Join("/var/lib/docqa/index_db", "index.db"), cfg.IndexDBPath())
	assert.Equal(t, "index_db", cfg.IndexPrefix())
}
