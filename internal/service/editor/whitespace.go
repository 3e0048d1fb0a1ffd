package editor

import (
	"strings"

	"draftconv/internal/domain/models/document"
	"draftconv/internal/service/editor/plugin"
)

// TrimBlockWhitespace drops whitespace-only text leaves that sit directly
// in the document root or in a container block, i.e. the indentation and
// newlines between block tags. Text inside text-bearing blocks is never
// touched. The input is not modified.
func TrimBlockWhitespace(doc document.Document, registry *plugin.Registry) document.Document {
	return document.Document(trimContainer(doc, registry))
}

func trimContainer(nodes []document.Node, registry *plugin.Registry) []document.Node {
	out := make([]document.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsText() {
			if strings.TrimSpace(*n.Text) == "" {
				continue
			}
			out = append(out, n)
			continue
		}
		if kind, ok := registry.KindOf(n.Type); ok && kind == plugin.KindContainer {
			n.Children = trimContainer(n.Children, registry)
		}
		out = append(out, n)
	}
	return out
}
