// Package memory is an in-process KV backend with a byte quota, standing in
// for a browser's local storage.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"hiveportal/internal/domain"
)

// DefaultQuotaBytes mirrors the usual 5 MiB local-storage allowance.
const DefaultQuotaBytes = 5 << 20

type kvStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	used  int64
	quota int64
}

// NewKVStore returns a domain.KVStore kept in memory. Usage counts key and value
// bytes; quota <= 0 disables the limit.
func NewKVStore(quota int64) domain.KVStore {
	return &kvStore{data: make(map[string][]byte), quota: quota}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.used + entrySize(key, value)
	if old, ok := s.data[key]; ok {
		next -= entrySize(key, old)
	}
	if s.quota > 0 && next > s.quota {
		return fmt.Errorf("set %q (%d bytes, %d of %d in use): %w", key, len(value), s.used, s.quota, domain.ErrQuotaExceeded)
	}
	s.data[key] = slices.Clone(value)
	s.used = next
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.data[key]; ok {
		s.used -= entrySize(key, old)
		delete(s.data, key)
	}
	return nil
}

func (s *kvStore) Close() error { return nil }

func entrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}
