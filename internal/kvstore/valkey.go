// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces application records in Valkey to avoid
// collisions with other users of the same instance.
const keyPrefix = "zenscribe:"

// Valkey is a Store backed by a Valkey (Redis-compatible) server.
// Records have no TTL — this is durable application state, not a cache.
type Valkey struct {
	client *redis.Client
}

// ConnectValkey creates a Valkey-backed store and verifies the
// connection with a ping.
func ConnectValkey(host, port, password string) (*Valkey, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return &Valkey{client: client}, nil
}

// NewValkey wraps an existing client. Used by tests.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

func (v *Valkey) Load(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := v.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return payload, true, nil
}

func (v *Valkey) Save(ctx context.Context, key string, payload []byte) error {
	if err := v.client.Set(ctx, keyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

func (v *Valkey) Remove(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client connection.
func (v *Valkey) Close() error {
	return v.client.Close()
}
