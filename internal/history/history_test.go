// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"zenscribe/internal/kvstore"
	"zenscribe/internal/models"
)

func testArticle(title string) models.Article {
	return models.Article{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content of " + title,
		Config:    models.ArticleConfig{Topic: title},
		CreatedAt: time.Now(),
	}
}

func TestEmptyStorageStartsEmpty(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemory())
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	if got := s.All(); len(got) != 0 {
		t.Errorf("All: got %d articles, want none", len(got))
	}
}

func TestAppendIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, kvstore.NewMemory())

	first := testArticle("first")
	second := testArticle("second")
	third := testArticle("third")
	s.Append(ctx, first)
	s.Append(ctx, second)
	s.Append(ctx, third)

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("All: got %d articles, want 3", len(all))
	}
	for i, want := range []string{"third", "second", "first"} {
		if all[i].Title != want {
			t.Errorf("All[%d]: got %q, want %q", i, all[i].Title, want)
		}
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, kvstore.NewMemory())

	keep := testArticle("keep")
	drop := testArticle("drop")
	s.Append(ctx, keep)
	s.Append(ctx, drop)

	if !s.Remove(ctx, drop.ID) {
		t.Fatal("Remove: existing article reported not found")
	}

	for _, a := range s.All() {
		if a.ID == drop.ID {
			t.Error("removed article still in history")
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}

	// Removing an unknown id changes nothing.
	if s.Remove(ctx, uuid.New()) {
		t.Error("Remove: unknown id reported found")
	}
	if s.Len() != 1 {
		t.Errorf("Len after unknown remove: got %d, want 1", s.Len())
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, kvstore.NewMemory())

	a := testArticle("wanted")
	s.Append(ctx, a)

	got, ok := s.Get(a.ID)
	if !ok {
		t.Fatal("Get: article not found")
	}
	if got.Title != a.Title {
		t.Errorf("Get: got %q, want %q", got.Title, a.Title)
	}

	if _, ok := s.Get(uuid.New()); ok {
		t.Error("Get: unknown id reported found")
	}
}

// TestPersistRoundTrip verifies the round-trip law: a fresh store over
// the same storage sees exactly the state the previous one persisted.
func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()

	s := New(ctx, kv)
	a := testArticle("alpha")
	b := testArticle("beta")
	s.Append(ctx, a)
	s.Append(ctx, b)
	s.Remove(ctx, a.ID)

	reloaded := New(ctx, kv)
	all := reloaded.All()
	if len(all) != 1 {
		t.Fatalf("reloaded: got %d articles, want 1", len(all))
	}
	if all[0].ID != b.ID || all[0].Title != b.Title || all[0].Config.Topic != b.Config.Topic {
		t.Errorf("reloaded article differs: got %+v, want %+v", all[0], b)
	}
}

func TestMalformedHistoryRecordStartsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"broken syntax", "{{corrupt"},
		// Valid JSON of the wrong shape must not seed the store with
		// half-decoded articles.
		{"type mismatch mid-array", `[{"title":"looks real"},{"title":123}]`},
		{"not an array", `{"title":"single object"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := kvstore.NewMemory()
			kv.Save(ctx, kvstore.KeyHistory, []byte(tt.payload))

			s := New(ctx, kv)
			if s.Len() != 0 {
				t.Errorf("corrupt record: Len got %d, want 0: %+v", s.Len(), s.All())
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, kvstore.NewMemory())
	s.Append(ctx, testArticle("original"))

	all := s.All()
	all[0].Title = "mutated"

	if s.All()[0].Title != "original" {
		t.Error("mutating All() result changed the store")
	}
}
