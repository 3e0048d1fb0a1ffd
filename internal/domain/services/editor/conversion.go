package editor

import (
	"context"

	"draftconv/internal/domain/models/document"
)

// ConversionService exposes the document <-> HTML converter to transports
// (HTTP handlers, CLI).
//
// Implementations are stateless and thread-safe.
type ConversionService interface {
	// ToHTML serializes a document into the embed HTML dialect.
	ToHTML(ctx context.Context, doc document.Document) (string, error)

	// ToDocument parses embed HTML into a normalized document.
	ToDocument(ctx context.Context, html string) (document.Document, error)

	// Normalize repairs the structure of a document.
	Normalize(ctx context.Context, doc document.Document) (document.Document, error)

	// ToMarkdown renders a document as markdown for previews and indexing.
	ToMarkdown(ctx context.Context, doc document.Document) (string, error)

	// Plugins describes the registered node types.
	Plugins(ctx context.Context) []PluginInfo
}

// PluginInfo describes one registered node type.
type PluginInfo struct {
	Type      string   `json:"type"`
	Kind      string   `json:"kind"`
	Void      bool     `json:"void"`
	Tag       string   `json:"tag,omitempty"`
	Resource  string   `json:"resource,omitempty"`
	EmbedType string   `json:"embed_type,omitempty"`
	Fields    []string `json:"fields,omitempty"`
}
