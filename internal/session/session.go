// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session is the local login gate. It tracks the single
// current session user, persisted as one record in the key-value
// store. This is profile selection, not authentication: no credential
// is checked anywhere, and none should be added here without an
// explicit design change.
package session

import (
	"context"
	"log/slog"
	"sync"

	"zenscribe/internal/kvstore"
	"zenscribe/internal/models"
)

// Gate holds the zero-or-one current user. Safe for concurrent use.
type Gate struct {
	mu     sync.RWMutex
	user   *models.User
	kv     kvstore.Store
	logger *slog.Logger
}

// New creates the gate, restoring a persisted user if one exists.
func New(ctx context.Context, kv kvstore.Store) *Gate {
	g := &Gate{
		kv:     kv,
		logger: slog.Default().With("component", "session"),
	}

	var u models.User
	ok, err := kvstore.LoadJSON(ctx, kv, kvstore.KeyUser, &u)
	if err != nil {
		g.logger.Warn("could not load session user, starting logged out", "error", err)
		return g
	}
	if ok {
		g.user = &u
		g.logger.Info("session user restored", "name", u.Name)
	}

	return g
}

// CurrentUser returns the session user, if any.
func (g *Gate) CurrentUser() (models.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.user == nil {
		return models.User{}, false
	}
	return *g.user, true
}

// Login replaces the current user and persists the record.
func (g *Gate) Login(ctx context.Context, u models.User) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.user = &u
	if err := kvstore.SaveJSON(ctx, g.kv, kvstore.KeyUser, u); err != nil {
		g.logger.Error("persisting session user failed", "error", err)
	}
}

// Logout clears the current user and removes the persisted record.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.user = nil
	if err := g.kv.Remove(ctx, kvstore.KeyUser); err != nil {
		g.logger.Error("removing session user failed", "error", err)
	}
}
