package editor

import (
	"strings"

	"golang.org/x/net/html"

	"draftconv/internal/domain"
	"draftconv/internal/domain/models/document"
	"draftconv/internal/service/editor/plugin"
)

// Serializer writes document trees as HTML.
//
// Dispatch is by node type: the plugin's Serialize gets the first chance,
// the plugin's native tag is the fallback, and a node with neither is a
// SerializationError. Nothing is ever silently dropped.
type Serializer struct {
	registry *plugin.Registry
}

// NewSerializer creates a serializer over registry.
func NewSerializer(registry *plugin.Registry) *Serializer {
	return &Serializer{registry: registry}
}

// Serialize renders doc as a single HTML string.
func (s *Serializer) Serialize(doc document.Document) (string, error) {
	var b strings.Builder
	if err := s.writeNodes(&b, doc, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Serializer) writeNodes(b *strings.Builder, nodes []document.Node, parent document.Path) error {
	for i, n := range nodes {
		out, err := s.serializeNode(n, parent.Child(i))
		if err != nil {
			return err
		}
		b.WriteString(out)
	}
	return nil
}

// serializeNode is a post-order walk: children are rendered before the
// node's own serializer sees them.
func (s *Serializer) serializeNode(n document.Node, path document.Path) (string, error) {
	if n.IsText() {
		return html.EscapeString(*n.Text), nil
	}

	p, ok := s.registry.Lookup(n.Type)
	if !ok {
		return "", &domain.SerializationError{NodeType: n.Type, Path: path.String(), Reason: "no plugin registered"}
	}

	// Void nodes keep their content in data; the placeholder child must not
	// leak into the markup.
	var children string
	if !p.Void {
		var b strings.Builder
		if err := s.writeNodes(&b, n.Children, path); err != nil {
			return "", err
		}
		children = b.String()
	}

	if p.Serialize != nil {
		out, handled, err := p.Serialize(n, children)
		if err != nil {
			return "", &domain.SerializationError{NodeType: n.Type, Path: path.String(), Reason: err.Error()}
		}
		if handled {
			return out, nil
		}
	}

	if p.Tag == "" {
		return "", &domain.SerializationError{NodeType: n.Type, Path: path.String(), Reason: "no serializer and no native tag"}
	}
	return "<" + p.Tag + ">" + children + "</" + p.Tag + ">", nil
}
