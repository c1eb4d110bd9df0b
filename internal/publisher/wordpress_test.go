// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zenscribe/internal/models"
)

func testConfig(siteURL string) models.WordPressConfig {
	return models.WordPressConfig{
		SiteURL:             siteURL,
		Username:            "writer",
		ApplicationPassword: "abcd efgh",
		IsConfigured:        true,
	}
}

func TestPublishCreatesDraftPost(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotBody post
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(postResponse{ID: 42, Link: "https://blog.example/p/42"})
	}))
	defer srv.Close()

	p := NewWithClient(srv.Client())
	article := models.Article{Title: "Coffee", Content: "All about coffee."}

	link, err := p.Publish(context.Background(), article, testConfig(srv.URL))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if link != "https://blog.example/p/42" {
		t.Errorf("link: got %q", link)
	}
	if gotPath != "/wp-json/wp/v2/posts" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotUser != "writer" || gotPass != "abcd efgh" {
		t.Errorf("basic auth: got %q / %q", gotUser, gotPass)
	}
	if gotBody.Title != article.Title || gotBody.Content != article.Content {
		t.Errorf("post body: got %+v", gotBody)
	}
	if gotBody.Status != "draft" {
		t.Errorf("status: got %q, want %q", gotBody.Status, "draft")
	}
}

func TestPublishUnconfigured(t *testing.T) {
	p := New()

	_, err := p.Publish(context.Background(), models.Article{}, models.WordPressConfig{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
}

func TestPublishServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"rest_cannot_create"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewWithClient(srv.Client())

	_, err := p.Publish(context.Background(), models.Article{Title: "x"}, testConfig(srv.URL))
	if err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestPublishTrailingSlashSite(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(postResponse{ID: 1, Link: "l"})
	}))
	defer srv.Close()

	p := NewWithClient(srv.Client())
	if _, err := p.Publish(context.Background(), models.Article{}, testConfig(srv.URL+"/")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if gotPath != "/wp-json/wp/v2/posts" {
		t.Errorf("path with trailing slash site: got %q", gotPath)
	}
}
