// Package web holds the templates and static assets that ship inside the
// binary. Release mode serves from EmbeddedFS; debug mode reads the same
// directory layout from disk for hot reload.
package web

import "embed"

//go:embed templates static
var EmbeddedFS embed.FS
