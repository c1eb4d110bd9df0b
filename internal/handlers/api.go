// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the application controller over a small
// JSON API consumed by the single-page UI. The blocking yes/no dialogs
// run in the browser; destructive endpoints require the request to be
// marked confirmed and refuse to act otherwise.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"zenscribe/internal/ai"
	"zenscribe/internal/app"
	"zenscribe/internal/config"
	"zenscribe/internal/models"
	"zenscribe/internal/publisher"
)

// API serves the JSON endpoints backed by the application controller.
type API struct {
	ctrl     *app.Controller
	defaults config.GenerationDefaults
	logger   *slog.Logger
}

// New creates the API handler set.
func New(ctrl *app.Controller, defaults config.GenerationDefaults) *API {
	return &API{
		ctrl:     ctrl,
		defaults: defaults,
		logger:   slog.Default().With("component", "handlers"),
	}
}

// State returns the full controller snapshot plus the form defaults.
func (a *API) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateResponse{
		Snapshot: a.ctrl.Snapshot(),
		Defaults: a.defaults,
	})
}

// Generate runs one article generation request.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var cfg models.ArticleConfig
	if !readJSON(w, r, &cfg) {
		return
	}

	article, err := a.ctrl.RequestGeneration(r.Context(), cfg)
	switch {
	case errors.Is(err, app.ErrLoginRequired):
		writeError(w, http.StatusUnauthorized, "login required")
		return
	case errors.Is(err, app.ErrGenerationInFlight):
		writeError(w, http.StatusConflict, "a generation request is already running")
		return
	case errors.Is(err, ai.ErrGenerationFailed):
		// The snapshot carries the user-visible message; the cause
		// stays in the server log.
		writeJSON(w, http.StatusBadGateway, a.ctrl.Snapshot())
		return
	case err != nil:
		a.logger.Error("generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, article)
}

// Login stores the session user.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if !readJSON(w, r, &u) {
		return
	}

	a.ctrl.Login(r.Context(), u)
	writeJSON(w, http.StatusOK, a.ctrl.Snapshot())
}

// Logout clears the session. The request must be marked confirmed.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	var body confirmedRequest
	if !readJSON(w, r, &body) {
		return
	}
	if !body.Confirmed {
		writeError(w, http.StatusBadRequest, "confirmation required")
		return
	}

	a.ctrl.Logout(r.Context())
	writeJSON(w, http.StatusOK, a.ctrl.Snapshot())
}

// Delete removes an article from the history. The request must be
// marked confirmed.
func (a *API) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var body confirmedRequest
	if !readJSON(w, r, &body) {
		return
	}
	if !body.Confirmed {
		writeError(w, http.StatusBadRequest, "confirmation required")
		return
	}

	if _, err := a.ctrl.DeleteArticle(r.Context(), id); err != nil {
		if errors.Is(err, app.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		a.logger.Error("delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, a.ctrl.Snapshot())
}

// Select makes an article the current display selection.
func (a *API) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	if err := a.ctrl.SelectArticle(id); err != nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, a.ctrl.Snapshot())
}

// Publish pushes an article to the configured WordPress site.
func (a *API) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	link, err := a.ctrl.Publish(r.Context(), id)
	switch {
	case errors.Is(err, app.ErrArticleNotFound):
		writeError(w, http.StatusNotFound, "article not found")
		return
	case errors.Is(err, publisher.ErrNotConfigured):
		writeError(w, http.StatusConflict, "wordpress is not configured")
		return
	case err != nil:
		a.logger.Error("publish failed", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "publishing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}

// UpdateWordPress overwrites the publishing configuration.
func (a *API) UpdateWordPress(w http.ResponseWriter, r *http.Request) {
	var cfg models.WordPressConfig
	if !readJSON(w, r, &cfg) {
		return
	}

	a.ctrl.UpdateWordPressConfig(r.Context(), cfg)
	writeJSON(w, http.StatusOK, a.ctrl.Snapshot())
}

// --- request/response plumbing ---

type stateResponse struct {
	app.Snapshot
	Defaults config.GenerationDefaults `json:"defaults"`
}

type confirmedRequest struct {
	Confirmed bool `json:"confirmed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// articleID parses the {id} URL parameter, answering 400 on garbage.
func articleID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return uuid.Nil, false
	}
	return id, true
}

// readJSON decodes the request body into v, answering 400 on failure.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
