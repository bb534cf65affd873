package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the document Q&A tool.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StorageConfig holds storage backend configuration.
type StorageConfig struct {
	DataDir         string `yaml:"data_dir"`          // Local root for uploads and registry files
	IndexDir        string `yaml:"index_dir"`         // Local directory for the semantic index
	UseCloudStorage bool   `yaml:"use_cloud_storage"` // Enable the remote object-store backend
	Bucket          string `yaml:"bucket"`            // Remote bucket name
	TimeoutSeconds  int    `yaml:"timeout_seconds"`   // Per-call remote timeout
}

// IngestConfig holds ingestion limits and chunking configuration.
type IngestConfig struct {
	MaxDocuments int   `yaml:"max_documents"`
	MaxFileBytes int64 `yaml:"max_file_bytes"`
	ChunkSize    int   `yaml:"chunk_size"`
	ChunkOverlap int   `yaml:"chunk_overlap"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "local" or "openai"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
}

// LLMConfig holds the configuration for the answer-generation hand-off.
type LLMConfig struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:         "data",
			IndexDir:        "index_db",
			UseCloudStorage: false,
			Bucket:          "document-qa-storage",
			TimeoutSeconds:  30,
		},
		Ingest: IngestConfig{
			MaxDocuments: 5,
			MaxFileBytes: 1048576,
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Retrieve: RetrieveConfig{
			TopK: 1,
		},
		Embedding: EmbeddingConfig{
			Provider:  "local",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 384,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try docqa.yaml in the directory
	path := filepath.Join(dir, "docqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .docqa/config.yaml
	path = filepath.Join(dir, ".docqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// ApplyEnv overrides deployment-level settings from environment variables.
// Selection of the storage backend never changes core behavior, only which
// implementation is bound.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DOCQA_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("DOCQA_INDEX_DIR"); v != "" {
		c.Storage.IndexDir = v
	}
	if v := os.Getenv("DOCQA_USE_CLOUD_STORAGE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Storage.UseCloudStorage = b
		}
	}
	if v := os.Getenv("DOCQA_GCS_BUCKET"); v != "" {
		c.Storage.Bucket = v
	}
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the index database file.
func (c *Config) IndexDBPath() string {
	return filepath.Join(c.Storage.IndexDir, "index.db")
}

// IndexPrefix returns the remote key prefix the index directory is mirrored
// under.
func (c *Config) IndexPrefix() string {
	return filepath.Base(c.Storage.IndexDir)
}
