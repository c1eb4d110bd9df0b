// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package history holds the ordered collection of generated articles.
// The sequence is newest-first and is mirrored to persistent storage on
// every mutation. A storage failure is logged and the in-memory state
// stays authoritative — the session keeps working.
package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"zenscribe/internal/kvstore"
	"zenscribe/internal/models"
)

// Store is the article history. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	articles []models.Article
	kv       kvstore.Store
	logger   *slog.Logger
}

// New creates the history store, loading any persisted articles.
// A missing or malformed history record starts the store empty.
func New(ctx context.Context, kv kvstore.Store) *Store {
	s := &Store{
		kv:     kv,
		logger: slog.Default().With("component", "history"),
	}

	ok, err := kvstore.LoadJSON(ctx, kv, kvstore.KeyHistory, &s.articles)
	if err != nil {
		s.logger.Warn("could not load article history, starting empty", "error", err)
	} else if ok {
		s.logger.Info("article history loaded", "articles", len(s.articles))
	}

	return s
}

// Append prepends the article to the sequence and persists the full
// history. Identity is the caller's responsibility; this store never
// generates or deduplicates ids.
func (s *Store) Append(ctx context.Context, a models.Article) {
	s.mu.Lock()
	s.articles = append([]models.Article{a}, s.articles...)
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// Remove deletes the article with the given id, if present, and
// persists the result. Clearing any display selection that pointed at
// the removed article is the caller's job.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.articles {
		if a.ID == id {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			s.persistLocked(ctx)
			return true
		}
	}
	return false
}

// All returns a copy of the sequence, newest first.
func (s *Store) All() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Article, len(s.articles))
	copy(out, s.articles)
	return out
}

// Get returns the article with the given id.
func (s *Store) Get(id uuid.UUID) (models.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.ID == id {
			return a, true
		}
	}
	return models.Article{}, false
}

// Len returns the number of stored articles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.articles)
}

// persistLocked writes the full history record. Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	if err := kvstore.SaveJSON(ctx, s.kv, kvstore.KeyHistory, s.articles); err != nil {
		s.logger.Error("persisting article history failed", "error", err)
	}
}
