package blob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var _ port.BlobStore = (*Dual)(nil)

// Dual composes a remote primary with a local shadow. Writes go to remote
// first and always also to local; reads prefer remote and fall back to local
// on any remote error. Remote failures are logged and degrade the single
// call to local-only operation, never surfacing to the caller. Only a miss
// on both backends is an error.
type Dual struct {
	remote port.BlobStore
	local  port.BlobStore
	log    *slog.Logger
}

// NewDual creates a dual store with remote as primary and local as shadow.
func NewDual(remote, local port.BlobStore, log *slog.Logger) *Dual {
	return &Dual{remote: remote, local: local, log: log}
}

// Remote returns the primary backend, for callers that need to enumerate
// remote state directly (registry reconciliation, index replication).
func (s *Dual) Remote() port.BlobStore {
	return s.remote
}

// Put writes to remote first, then local. The returned location is the local
// one so subsequent processing reads fast local bytes.
func (s *Dual) Put(ctx context.Context, key string, data []byte) (string, error) {
	if _, err := s.remote.Put(ctx, key, data); err != nil {
		s.log.Error("remote put failed, continuing with local storage", "key", key, "err", err)
	}
	loc, err := s.local.Put(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("failed to store %s: %w", key, err)
	}
	return loc, nil
}

func (s *Dual) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.remote.Get(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Error("remote get failed, falling back to local storage", "key", key, "err", err)
	}

	data, err = s.local.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

func (s *Dual) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.remote.Exists(ctx, key)
	if err != nil {
		s.log.Error("remote existence check failed, falling back to local storage", "key", key, "err", err)
	} else if ok {
		return true, nil
	}
	return s.local.Exists(ctx, key)
}

func (s *Dual) Delete(ctx context.Context, key string) error {
	if err := s.remote.Delete(ctx, key); err != nil {
		s.log.Error("remote delete failed", "key", key, "err", err)
	}
	return s.local.Delete(ctx, key)
}

func (s *Dual) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.remote.List(ctx, prefix)
	if err != nil {
		s.log.Error("remote list failed, falling back to local storage", "prefix", prefix, "err", err)
		return s.local.List(ctx, prefix)
	}
	return keys, nil
}
