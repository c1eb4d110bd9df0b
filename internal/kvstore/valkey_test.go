// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package kvstore

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// testValkey returns a Valkey store for integration tests.
// Skips if Valkey is unavailable.
func testValkey(t *testing.T) *Valkey {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return NewValkey(client)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestValkeySaveLoadRemove(t *testing.T) {
	v := testValkey(t)
	ctx := context.Background()

	if _, ok, _ := v.Load(ctx, "vk_test"); ok {
		t.Fatal("key present before save")
	}

	if err := v.Save(ctx, "vk_test", []byte("payload")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	payload, ok, err := v.Load(ctx, "vk_test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok || string(payload) != "payload" {
		t.Errorf("Load: ok=%v payload=%q", ok, payload)
	}

	if err := v.Remove(ctx, "vk_test"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := v.Load(ctx, "vk_test"); ok {
		t.Error("key present after remove")
	}
}
