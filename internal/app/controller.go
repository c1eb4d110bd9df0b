// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package app is the application controller: the single source of
// truth for UI-visible state and the only mutator of the history,
// session, and settings records. It tracks three orthogonal pieces of
// state — whether a user is logged in, the generation lifecycle, and
// which article is displayed — and drives every transition between
// them.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"zenscribe/internal/ai"
	"zenscribe/internal/history"
	"zenscribe/internal/kvstore"
	"zenscribe/internal/models"
	"zenscribe/internal/publisher"
	"zenscribe/internal/session"
)

// GenerationPhase is the lifecycle of the current generation request.
type GenerationPhase string

const (
	PhaseIdle      GenerationPhase = "idle"
	PhaseInFlight  GenerationPhase = "in_flight"
	PhaseFailed    GenerationPhase = "failed"
	PhaseSucceeded GenerationPhase = "succeeded"
)

var (
	// ErrLoginRequired means generation was requested with no session
	// user. This is a precondition, not a failure: the login prompt is
	// opened and nothing else changes.
	ErrLoginRequired = errors.New("login required")

	// ErrGenerationInFlight rejects a second generation while one is
	// running, so one user action can never append twice.
	ErrGenerationInFlight = errors.New("a generation request is already in flight")

	// ErrArticleNotFound reports an id that is not in the history.
	ErrArticleNotFound = errors.New("article not found")
)

// genericFailureMessage is the only text shown for a failed generation,
// whatever the underlying cause.
const genericFailureMessage = "Article generation failed. Please wait a moment and try again."

// ConfirmFunc asks the user a yes/no question and blocks for the
// answer. The UI supplies a real dialog; tests supply a script.
type ConfirmFunc func(message string) bool

// ArticleGenerator is the controller's view of the generation client.
type ArticleGenerator interface {
	Generate(ctx context.Context, cfg models.ArticleConfig) (ai.GeneratedArticle, error)
}

// Controller owns all application state. Safe for concurrent use; the
// external generation call runs outside the lock so reads stay
// responsive while a request is in flight.
type Controller struct {
	mu sync.Mutex

	generator ArticleGenerator
	history   *history.Store
	gate      *session.Gate
	pub       publisher.Publisher
	kv        kvstore.Store
	confirm   ConfirmFunc
	logger    *slog.Logger

	phase           GenerationPhase
	errorMessage    string
	selected        uuid.UUID // uuid.Nil = no selection
	loginPromptOpen bool
	wpConfig        models.WordPressConfig
}

// Snapshot is a consistent read-only view of the controller state,
// rendered by the UI after every action.
type Snapshot struct {
	User            *models.User           `json:"user"`
	LoginPromptOpen bool                   `json:"login_prompt_open"`
	Phase           GenerationPhase        `json:"phase"`
	ErrorMessage    string                 `json:"error_message,omitempty"`
	SelectedID      *uuid.UUID             `json:"selected_id"`
	Articles        []models.Article       `json:"articles"`
	WordPress       models.WordPressConfig `json:"wordpress"`
}

// New creates the controller, loading the persisted WordPress config.
// If no session user was restored, the login prompt starts open.
func New(ctx context.Context, gen ArticleGenerator, hist *history.Store, gate *session.Gate, pub publisher.Publisher, kv kvstore.Store, confirm ConfirmFunc) *Controller {
	c := &Controller{
		generator: gen,
		history:   hist,
		gate:      gate,
		pub:       pub,
		kv:        kv,
		confirm:   confirm,
		logger:    slog.Default().With("component", "app"),
		phase:     PhaseIdle,
	}

	if _, err := kvstore.LoadJSON(ctx, kv, kvstore.KeyWordPressConfig, &c.wpConfig); err != nil {
		c.logger.Warn("could not load wordpress config, using defaults", "error", err)
	}

	if _, ok := gate.CurrentUser(); !ok {
		c.loginPromptOpen = true
	}

	return c
}

// RequestGeneration runs one generation request through the full
// lifecycle. With no session user the request is redirected to the
// login prompt and the generation client is never called. A request
// while another is in flight is rejected. On success the new article
// is prepended to the history and becomes the current selection; on
// failure history and selection are untouched.
func (c *Controller) RequestGeneration(ctx context.Context, cfg models.ArticleConfig) (models.Article, error) {
	c.mu.Lock()
	if _, ok := c.gate.CurrentUser(); !ok {
		c.loginPromptOpen = true
		c.mu.Unlock()
		return models.Article{}, ErrLoginRequired
	}
	if c.phase == PhaseInFlight {
		c.mu.Unlock()
		return models.Article{}, ErrGenerationInFlight
	}
	c.phase = PhaseInFlight
	c.errorMessage = ""
	c.mu.Unlock()

	result, err := c.generator.Generate(ctx, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.phase = PhaseFailed
		c.errorMessage = genericFailureMessage
		c.logger.Error("generation failed", "topic", cfg.Topic, "error", err)
		return models.Article{}, err
	}

	article := models.Article{
		ID:        uuid.New(),
		Title:     result.Title,
		Content:   result.Content,
		Config:    cfg,
		CreatedAt: time.Now(),
	}

	c.history.Append(ctx, article)
	c.selected = article.ID
	c.phase = PhaseSucceeded
	c.logger.Info("article generated", "id", article.ID, "title", article.Title)

	return article, nil
}

// DeleteArticle removes an article after user confirmation. Without
// confirmation nothing happens. If the deleted article was the current
// selection, the selection is cleared.
func (c *Controller) DeleteArticle(ctx context.Context, id uuid.UUID) (bool, error) {
	if !c.confirm("Delete this article from your history?") {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.history.Remove(ctx, id) {
		return false, ErrArticleNotFound
	}
	if c.selected == id {
		c.selected = uuid.Nil
	}
	return true, nil
}

// Login sets the session user and closes the login prompt.
func (c *Controller) Login(ctx context.Context, u models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gate.Login(ctx, u)
	c.loginPromptOpen = false
}

// Logout clears the session after user confirmation and re-opens the
// login prompt. Reports whether the logout happened.
func (c *Controller) Logout(ctx context.Context) bool {
	if !c.confirm("Log out?") {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.gate.Logout(ctx)
	c.loginPromptOpen = true
	return true
}

// UpdateWordPressConfig overwrites and persists the publishing
// destination. No validation happens until a publish is attempted.
func (c *Controller) UpdateWordPressConfig(ctx context.Context, cfg models.WordPressConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wpConfig = cfg
	if err := kvstore.SaveJSON(ctx, c.kv, kvstore.KeyWordPressConfig, cfg); err != nil {
		c.logger.Error("persisting wordpress config failed", "error", err)
	}
}

// SelectArticle makes an existing article the current selection.
func (c *Controller) SelectArticle(id uuid.UUID) error {
	if _, ok := c.history.Get(id); !ok {
		return ErrArticleNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = id
	return nil
}

// Publish sends a history article to the configured WordPress site and
// returns the created post's link.
func (c *Controller) Publish(ctx context.Context, id uuid.UUID) (string, error) {
	article, ok := c.history.Get(id)
	if !ok {
		return "", ErrArticleNotFound
	}

	c.mu.Lock()
	cfg := c.wpConfig
	c.mu.Unlock()

	return c.pub.Publish(ctx, article, cfg)
}

// Snapshot returns the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		LoginPromptOpen: c.loginPromptOpen,
		Phase:           c.phase,
		ErrorMessage:    c.errorMessage,
		Articles:        c.history.All(),
		WordPress:       c.wpConfig,
	}

	if u, ok := c.gate.CurrentUser(); ok {
		snap.User = &u
	}
	if c.selected != uuid.Nil {
		id := c.selected
		snap.SelectedID = &id
	}

	return snap
}
