// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publisher pushes finished articles to a WordPress site over
// the REST API, authenticated with an application password.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"zenscribe/internal/models"
)

// ErrNotConfigured is returned when a publish is attempted before the
// WordPress connection details have been saved.
var ErrNotConfigured = errors.New("wordpress is not configured")

// Publisher is an interface for publishing articles to a destination site.
type Publisher interface {
	Publish(ctx context.Context, article models.Article, cfg models.WordPressConfig) (string, error)
}

// wordpressPublisher is the concrete implementation of Publisher.
type wordpressPublisher struct {
	client *http.Client
	logger *slog.Logger
}

// post is the request body for the WordPress create-post endpoint.
type post struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// postResponse is the subset of the WordPress response we care about.
type postResponse struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

// New creates a WordPress publisher.
func New() Publisher {
	return &wordpressPublisher{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: slog.Default().With("component", "publisher.wordpress"),
	}
}

// NewWithClient creates a publisher with a custom HTTP client. Used by tests.
func NewWithClient(client *http.Client) Publisher {
	return &wordpressPublisher{
		client: client,
		logger: slog.Default().With("component", "publisher.wordpress"),
	}
}

// Publish creates a draft post on the configured site and returns the
// URL of the created post.
func (p *wordpressPublisher) Publish(ctx context.Context, article models.Article, cfg models.WordPressConfig) (string, error) {
	if !cfg.IsConfigured || cfg.SiteURL == "" {
		return "", ErrNotConfigured
	}

	logger := p.logger.With(
		"article_title", article.Title,
		"site", cfg.SiteURL,
	)
	logger.InfoContext(ctx, "publishing article to WordPress")

	body := post{
		Title:   article.Title,
		Content: article.Content,
		Status:  "draft",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("wordpress marshal: %w", err)
	}

	url := strings.TrimRight(cfg.SiteURL, "/") + "/wp-json/wp/v2/posts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("wordpress request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(cfg.Username, cfg.ApplicationPassword)

	resp, err := p.client.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "wordpress call failed", "error", err)
		return "", fmt.Errorf("wordpress http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("wordpress read body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		logger.ErrorContext(ctx, "wordpress rejected the post",
			"status", resp.StatusCode,
		)
		return "", fmt.Errorf("wordpress API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result postResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("wordpress unmarshal: %w", err)
	}

	logger.InfoContext(ctx, "article published", "post_id", result.ID, "link", result.Link)
	return result.Link, nil
}
