// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File stores each key as its own JSON file under a data directory.
// This is the default backend: a local, single-process key-value store
// with no external service required.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("kvstore mkdir %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Load(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payload, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kvstore read %s: %w", key, err)
	}
	return payload, true, nil
}

func (f *File) Save(_ context.Context, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Write to a temp file and rename so a crash mid-write never leaves
	// a truncated record behind.
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("kvstore write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("kvstore rename %s: %w", key, err)
	}
	return nil
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kvstore remove %s: %w", key, err)
	}
	return nil
}

// path maps a record key to its file, sanitizing separators so a key
// can never escape the data directory.
func (f *File) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}
