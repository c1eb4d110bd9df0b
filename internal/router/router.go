// Package router sets up the HTTP routes and middleware chain for the
// ZenScribe server: the JSON API under /api and the embedded
// single-page UI at the root.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"zenscribe/internal/handlers"
	"zenscribe/internal/middleware"
	"zenscribe/web"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	// Generation is the only endpoint that spends money; keep a
	// per-client ceiling in front of it.
	generateLimit := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", api.State)

		r.Post("/auth/login", api.Login)
		r.Post("/auth/logout", api.Logout)

		r.Route("/articles", func(r chi.Router) {
			r.With(generateLimit.Middleware).Post("/generate", api.Generate)
			r.Delete("/{id}", api.Delete)
			r.Post("/{id}/select", api.Select)
			r.Post("/{id}/publish", api.Publish)
		})

		r.Put("/settings/wordpress", api.UpdateWordPress)
	})

	// Single-page UI served from the embedded static tree. The sub-tree
	// is compiled in, so a failure here means a broken build.
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("router: embedded static assets: " + err.Error())
	}
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
