// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"zenscribe/internal/models"
)

// ErrGenerationFailed is the single error surfaced for any failure of
// the external generation call (network, quota, malformed response).
// Callers match it with errors.Is; the underlying cause is wrapped in
// for the logs, not for the user.
var ErrGenerationFailed = errors.New("article generation failed")

// GeneratedArticle is the normalized result of one generation call.
type GeneratedArticle struct {
	Title   string
	Content string
}

// TextGenerator is the one capability the article Generator needs from
// a provider. *Registry satisfies it; tests inject stubs.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generator builds article prompts from an ArticleConfig and invokes
// the external text-generation service. One network call per Generate.
type Generator struct {
	text   TextGenerator
	logger *slog.Logger
}

// NewGenerator creates an article generator on top of a text provider.
func NewGenerator(text TextGenerator) *Generator {
	return &Generator{
		text:   text,
		logger: slog.Default().With("component", "ai.generator"),
	}
}

const generatorSystemPrompt = `You are an expert blog writer. Write a complete, well-structured article based on the user's request. Output only the article body — no preamble, no closing remarks.`

// Generate produces an article for the given config. The prompt embeds
// the topic and keywords; the tone field is accepted by the type but
// intentionally not interpolated — see BuildPrompt. The title is
// derived from the topic, never requested from the model; the content
// is exactly the text the service returned.
func (g *Generator) Generate(ctx context.Context, cfg models.ArticleConfig) (GeneratedArticle, error) {
	prompt := BuildPrompt(cfg)

	g.logger.InfoContext(ctx, "requesting article generation",
		"topic", cfg.Topic,
		"keywords", cfg.Keywords,
	)

	content, err := g.text.Generate(ctx, generatorSystemPrompt, prompt)
	if err != nil {
		g.logger.ErrorContext(ctx, "generation call failed", "error", err)
		return GeneratedArticle{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return GeneratedArticle{
		Title:   TitleFor(cfg),
		Content: content,
	}, nil
}

// BuildPrompt renders the user prompt sent to the provider. Only Topic
// and Keywords are used. Tone is deliberately left out to keep the
// generated output identical to what the application has always
// produced; wiring it in is a behaviour change, not a bug fix.
func BuildPrompt(cfg models.ArticleConfig) string {
	return fmt.Sprintf("Write a blog article about %s that includes the keywords %q.",
		strings.TrimSpace(cfg.Topic), strings.TrimSpace(cfg.Keywords))
}

// TitleFor derives the article title deterministically from the topic.
func TitleFor(cfg models.ArticleConfig) string {
	return fmt.Sprintf("Article about %s", strings.TrimSpace(cfg.Topic))
}
