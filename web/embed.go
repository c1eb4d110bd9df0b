// Package web provides the embedded static assets for the single-page
// UI, compiled into the binary so the server needs no files at runtime.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree: the UI shell and its
// script. Served at the router root.
//
//go:embed all:static
var StaticFS embed.FS
