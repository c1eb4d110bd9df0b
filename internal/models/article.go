// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the core data records shared across the
// application: generated articles, the session user, and the WordPress
// publishing configuration. All records serialize to JSON for storage.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleConfig describes the article a user wants generated. It is a
// plain value type with no identity; an Article embeds a copy of the
// config that produced it. Empty fields are accepted — the generator
// decides what to do with them.
type ArticleConfig struct {
	Topic    string `json:"topic"`
	Keywords string `json:"keywords"`
	Tone     string `json:"tone"`
}

// Article is a generated piece of content plus the configuration that
// produced it. The ID is assigned once at creation time; articles are
// immutable after creation except for deletion from the history.
type Article struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Config    ArticleConfig `json:"config"`
	CreatedAt time.Time     `json:"created_at"`
}
