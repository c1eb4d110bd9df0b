package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zenscribe/internal/ai"
	"zenscribe/internal/app"
	"zenscribe/internal/config"
	"zenscribe/internal/handlers"
	"zenscribe/internal/history"
	"zenscribe/internal/kvstore"
	"zenscribe/internal/models"
	"zenscribe/internal/publisher"
	"zenscribe/internal/session"
)

type noopGenerator struct{}

func (noopGenerator) Generate(context.Context, models.ArticleConfig) (ai.GeneratedArticle, error) {
	return ai.GeneratedArticle{Title: "t", Content: "c"}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	kv := kvstore.NewMemory()

	ctrl := app.New(ctx, noopGenerator{}, history.New(ctx, kv), session.New(ctx, kv),
		publisher.New(), kv, func(string) bool { return true })

	return New(handlers.New(ctrl, config.GenerationDefaults{}))
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("health: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health body: got %q", rec.Body.String())
	}
}

func TestStateRouteWired(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("/api/state: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestStaticUIServed(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("/: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ZenScribe") {
		t.Error("root should serve the embedded UI shell")
	}
}

func TestSecureHeadersApplied(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q", got)
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}
