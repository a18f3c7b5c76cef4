// Package file stores each key as <key>.json in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"

	"hiveportal/internal/domain"
)

const fileExt = ".json"

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type kvStore struct {
	mu    sync.Mutex
	dir   string
	quota int64
}

// NewKVStore returns a domain.KVStore rooted at dir, creating it if needed.
// quota <= 0 disables the total size limit.
func NewKVStore(dir string, quota int64) (domain.KVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &kvStore{dir: dir, quota: quota}, nil
}

func (s *kvStore) path(key string) (string, error) {
	if !validKey.MatchString(key) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: key %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// Set writes to a temp file in the same directory and renames it over the
// target, so a failed write leaves the previous value intact.
func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used, err := s.usage(p)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.quota {
			return fmt.Errorf("set %q (%d bytes, %d of %d in use): %w", key, len(value), used, s.quota, domain.ErrQuotaExceeded)
		}
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return mapWriteErr(key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return mapWriteErr(key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return mapWriteErr(key, err)
	}
	if err := tmp.Close(); err != nil {
		return mapWriteErr(key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return mapWriteErr(key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Close() error { return nil }

// usage sums the sizes of stored values, excluding the file at skip.
func (s *kvStore) usage(skip string) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("scan storage dir: %w", err)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if filepath.Join(s.dir, e.Name()) == skip {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

func mapWriteErr(key string, err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("write %s: %v: %w", key, err, domain.ErrQuotaExceeded)
	}
	return fmt.Errorf("write %s: %w", key, err)
}
