// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package kvstore provides the persistent key-value storage the
// application keeps its state in. Three independent records are stored
// under well-known keys; each record is serialized and loaded on its
// own, with no cross-key transaction. Backends: in-memory (tests),
// JSON files on disk (default), and Valkey.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Well-known record keys. These match the storage keys the application
// has always used, so existing data remains readable.
const (
	KeyHistory         = "article_history"
	KeyUser            = "zenscribe_user"
	KeyWordPressConfig = "zenscribe_wp_config"
)

// Store is the persistence boundary. Load reports ok=false when the key
// is absent; that is not an error. Implementations must be safe for
// concurrent use.
type Store interface {
	Load(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, key string, payload []byte) error
	Remove(ctx context.Context, key string) error
}

// LoadJSON loads and decodes the record under key into v. A missing key
// or a payload that fails to decode both report ok=false, and in either
// case v is left untouched — corrupt data degrades to "absent" rather
// than surfacing an error or a half-decoded value to the caller.
func LoadJSON[T any](ctx context.Context, s Store, key string, v *T) (bool, error) {
	payload, ok, err := s.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kvstore load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	// Decode into a scratch value first: json.Unmarshal populates its
	// target up to the point of a type error, and nothing half-decoded
	// may reach the caller.
	var decoded T
	if err := json.Unmarshal(payload, &decoded); err != nil {
		slog.Warn("discarding malformed record", "key", key, "error", err)
		return false, nil
	}
	*v = decoded
	return true, nil
}

// SaveJSON encodes v and stores it under key, replacing any previous
// payload.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kvstore marshal %s: %w", key, err)
	}
	if err := s.Save(ctx, key, payload); err != nil {
		return fmt.Errorf("kvstore save %s: %w", key, err)
	}
	return nil
}
