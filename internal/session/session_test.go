// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"testing"

	"zenscribe/internal/kvstore"
	"zenscribe/internal/models"
)

func TestEmptyStorageMeansLoggedOut(t *testing.T) {
	g := New(context.Background(), kvstore.NewMemory())

	if _, ok := g.CurrentUser(); ok {
		t.Error("fresh gate reported a user")
	}
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	g := New(ctx, kvstore.NewMemory())

	aki := models.User{Name: "Aki", Email: "a@x.com"}
	g.Login(ctx, aki)

	got, ok := g.CurrentUser()
	if !ok {
		t.Fatal("CurrentUser after login: no user")
	}
	if got != aki {
		t.Errorf("CurrentUser: got %+v, want %+v", got, aki)
	}

	g.Logout(ctx)
	if _, ok := g.CurrentUser(); ok {
		t.Error("CurrentUser after logout: user still present")
	}
}

func TestLoginReplacesUser(t *testing.T) {
	ctx := context.Background()
	g := New(ctx, kvstore.NewMemory())

	g.Login(ctx, models.User{Name: "First", Email: "1@x.com"})
	g.Login(ctx, models.User{Name: "Second", Email: "2@x.com"})

	got, _ := g.CurrentUser()
	if got.Name != "Second" {
		t.Errorf("got %q, want the replacing user", got.Name)
	}
}

func TestUserSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()

	New(ctx, kv).Login(ctx, models.User{Name: "Aki", Email: "a@x.com"})

	restored := New(ctx, kv)
	got, ok := restored.CurrentUser()
	if !ok {
		t.Fatal("user not restored from storage")
	}
	if got.Name != "Aki" || got.Email != "a@x.com" {
		t.Errorf("restored user: got %+v", got)
	}
}

func TestLogoutRemovesStoredRecord(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()

	g := New(ctx, kv)
	g.Login(ctx, models.User{Name: "Aki"})
	g.Logout(ctx)

	if _, ok, _ := kv.Load(ctx, kvstore.KeyUser); ok {
		t.Error("absent key should mean logged out, but the record is still stored")
	}

	if _, ok := New(ctx, kv).CurrentUser(); ok {
		t.Error("logged-out state not durable across restart")
	}
}
