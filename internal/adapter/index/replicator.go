package index

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"docqa/internal/port"
)

var _ port.Replicator = (*DirReplicator)(nil)

// DirReplicator mirrors a local directory to remote storage under a key
// prefix. Sync is full and non-incremental: Push uploads every file, Pull
// replaces the whole local directory. The cost is O(index size) per
// mutation, which is fine for small corpora.
type DirReplicator struct {
	dir    string
	prefix string
	remote port.BlobStore
	log    *slog.Logger
}

// NewDirReplicator creates a replicator for dir, mirrored under prefix in
// remote storage.
func NewDirReplicator(dir, prefix string, remote port.BlobStore, log *slog.Logger) *DirReplicator {
	return &DirReplicator{
		dir:    dir,
		prefix: strings.Trim(prefix, "/"),
		remote: remote,
		log:    log,
	}
}

// Push uploads every file in the directory.
func (r *DirReplicator) Push(ctx context.Context) error {
	return filepath.WalkDir(r.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(r.dir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		key := path.Join(r.prefix, filepath.ToSlash(rel))
		if _, err := r.remote.Put(ctx, key, data); err != nil {
			return fmt.Errorf("failed to upload %s: %w", key, err)
		}
		return nil
	})
}

// Pull replaces the local directory with the remote copy, if the remote
// holds any index data. No remote data leaves the local directory untouched.
func (r *DirReplicator) Pull(ctx context.Context) error {
	keys, err := r.remote.List(ctx, r.prefix+"/")
	if err != nil {
		return fmt.Errorf("failed to list remote index: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("failed to clear index directory: %w", err)
	}

	for _, key := range keys {
		data, err := r.remote.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", key, err)
		}
		rel := strings.TrimPrefix(key, r.prefix+"/")
		p := filepath.Join(r.dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", p, err)
		}
	}

	r.log.Info("restored index from remote storage", "files", len(keys))
	return nil
}
