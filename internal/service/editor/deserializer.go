package editor

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"draftconv/internal/domain/models/document"
	"draftconv/internal/service/editor/plugin"
)

// Deserializer turns HTML in the embed dialect back into a document tree.
//
// The walk is structural only: text is copied verbatim and no scaffolding
// is added. Whitespace trimming and normalization are separate steps.
type Deserializer struct {
	registry *plugin.Registry
	logger   *slog.Logger
}

// NewDeserializer creates a deserializer over registry.
func NewDeserializer(registry *plugin.Registry, logger *slog.Logger) *Deserializer {
	return &Deserializer{registry: registry, logger: logger}
}

// Deserialize parses input as a body fragment and converts it.
func (d *Deserializer) Deserialize(input string) (document.Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(input), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := document.Document{}
	for _, n := range nodes {
		doc = append(doc, d.convert(n)...)
	}
	return doc, nil
}

func (d *Deserializer) convert(n *html.Node) []document.Node {
	switch n.Type {
	case html.TextNode:
		return []document.Node{document.NewText(n.Data)}
	case html.ElementNode:
		if n.Data == plugin.EmbedTag {
			return d.convertEmbed(n)
		}
		return d.convertElement(n)
	default:
		// Comments and doctypes carry no content.
		return nil
	}
}

func (d *Deserializer) children(n *html.Node) []document.Node {
	var out []document.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, d.convert(c)...)
	}
	return out
}

func (d *Deserializer) convertElement(n *html.Node) []document.Node {
	policy, ok := d.registry.TagPolicy(n.Data)
	if !ok {
		d.logger.Debug("unknown tag unwrapped", "tag", n.Data)
		return d.children(n)
	}

	switch policy.Action {
	case plugin.ActionDrop:
		return nil
	case plugin.ActionUnwrap:
		return d.children(n)
	}

	children := d.children(n)
	p, _ := d.registry.Lookup(policy.NodeType)
	if p.Deserialize != nil {
		el := plugin.Element{Tag: n.Data, Attrs: attributes(n)}
		if node, handled := p.Deserialize(el, children); handled {
			return []document.Node{node}
		}
	}
	return []document.Node{document.NewElement(policy.NodeType, nil, children...)}
}

// convertEmbed resolves the claiming plugin by exact (resource, type). An
// unclaimed embed becomes the error placeholder so the rest of the
// document survives; it is never an error.
func (d *Deserializer) convertEmbed(n *html.Node) []document.Node {
	el := plugin.Element{Tag: plugin.EmbedTag, Attrs: attributes(n)}
	resource, _ := el.Attr("data-resource")
	embedType, _ := el.Attr("data-type")

	if p, ok := d.registry.ClaimEmbed(resource, embedType); ok && p.Deserialize != nil {
		var children []document.Node
		if !p.Void {
			children = d.children(n)
		}
		if node, handled := p.Deserialize(el, children); handled {
			return []document.Node{node}
		}
	}

	raw, err := render(n)
	if err == nil {
		el.Raw = raw
		if p, ok := d.registry.Placeholder(); ok {
			if node, handled := p.Deserialize(el, nil); handled {
				d.logger.Info("unclaimed embed kept as placeholder",
					"resource", resource,
					"type", embedType,
				)
				return []document.Node{node}
			}
		}
	}

	d.logger.Warn("unclaimed embed unwrapped",
		"resource", resource,
		"type", embedType,
		"error", err,
	)
	return d.children(n)
}

func attributes(n *html.Node) []plugin.Attribute {
	attrs := make([]plugin.Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		attrs = append(attrs, plugin.Attribute{Key: a.Key, Val: a.Val})
	}
	return attrs
}

func render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}
