// Package editor converts editor document trees to the embed HTML dialect
// and back, and keeps trees structurally valid.
//
// All types here are safe for concurrent use: they only read the
// immutable plugin registry and never modify their inputs.
package editor

import (
	"fmt"
	"log/slog"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"draftconv/internal/domain/models/document"
	"draftconv/internal/service/editor/plugin"
	"draftconv/internal/service/editor/sanitizer"
)

// Options configures a Converter.
type Options struct {
	SanitizeInput  bool
	TrimWhitespace bool
	Normalizer     NormalizerOptions
}

// Converter bundles the serializer, deserializer and normalizer that share
// one registry.
type Converter struct {
	registry     *plugin.Registry
	serializer   *Serializer
	deserializer *Deserializer
	normalizer   *Normalizer
	sanitizer    *sanitizer.HTMLSanitizer
	markdown     *md.Converter
	opts         Options
}

// NewConverter creates a converter over registry.
func NewConverter(registry *plugin.Registry, opts Options, logger *slog.Logger) *Converter {
	return &Converter{
		registry:     registry,
		serializer:   NewSerializer(registry),
		deserializer: NewDeserializer(registry, logger),
		normalizer:   NewNormalizer(registry, opts.Normalizer, logger),
		sanitizer:    sanitizer.NewHTMLSanitizer(plugin.EmbedTag),
		markdown:     newMarkdownConverter(),
		opts:         opts,
	}
}

// Registry returns the plugin registry the converter dispatches through.
func (c *Converter) Registry() *plugin.Registry {
	return c.registry
}

// ToHTML serializes doc.
func (c *Converter) ToHTML(doc document.Document) (string, error) {
	return c.serializer.Serialize(doc)
}

// ToDocument parses input and returns a normalized tree:
// sanitize (optional), deserialize, trim block whitespace (optional),
// normalize.
func (c *Converter) ToDocument(input string) (document.Document, error) {
	if c.opts.SanitizeInput {
		sanitized, err := c.sanitizer.Sanitize(input)
		if err != nil {
			return nil, fmt.Errorf("failed to sanitize HTML: %w", err)
		}
		input = sanitized
	}

	doc, err := c.deserializer.Deserialize(input)
	if err != nil {
		return nil, err
	}

	if c.opts.TrimWhitespace {
		doc = TrimBlockWhitespace(doc, c.registry)
	}

	return c.normalizer.Normalize(doc)
}

// Normalize repairs doc to a fixpoint.
func (c *Converter) Normalize(doc document.Document) (document.Document, error) {
	return c.normalizer.Normalize(doc)
}

// ToMarkdown serializes doc and renders the result as markdown.
func (c *Converter) ToMarkdown(doc document.Document) (string, error) {
	html, err := c.serializer.Serialize(doc)
	if err != nil {
		return "", err
	}
	markdown, err := c.markdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return markdown, nil
}
