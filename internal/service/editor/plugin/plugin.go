// Package plugin defines the editor node plugins and the immutable registry
// the converter dispatches through.
//
// A plugin is a plain descriptor: a node type, structural flags and three
// pure functions (serialize, deserialize, normalize). Plugins are collected
// once into a Registry at startup and never mutated afterwards, so a single
// Registry can be shared by any number of concurrent conversions.
package plugin

import (
	"draftconv/internal/domain/models/document"
)

// Kind describes where a node lives in the tree.
type Kind int

const (
	// KindBlock is a text-bearing block: its children are text and inlines.
	KindBlock Kind = iota
	// KindContainer holds other blocks (section, quote, lists).
	KindContainer
	// KindInline lives inside a text-bearing block.
	KindInline
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindContainer:
		return "container"
	case KindInline:
		return "inline"
	default:
		return "unknown"
	}
}

// DefaultBlockType is the scaffolding node inserted by normalizers.
const DefaultBlockType = "paragraph"

// Attribute is one attribute of a parsed HTML element, in document order.
type Attribute struct {
	Key string
	Val string
}

// Element is the read-only view of a parsed HTML element handed to
// Deserialize functions.
type Element struct {
	Tag   string
	Attrs []Attribute
	// Raw is the element re-rendered as HTML. Only set for embed tags.
	Raw string
}

// Attr returns the value of the attribute named key.
func (e Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Editor is the snapshot a normalizer inspects. It must not be modified;
// corrections are expressed as transforms.
type Editor struct {
	Document document.Document
	Registry *Registry
}

// SerializeFunc renders n. children holds the already serialized children
// (empty for void nodes). handled=false defers to the native tag fallback.
type SerializeFunc func(n document.Node, children string) (html string, handled bool, err error)

// DeserializeFunc builds a node from an element whose children have
// already been deserialized. handled=false means "not mine".
type DeserializeFunc func(el Element, children []document.Node) (n document.Node, handled bool)

// NormalizeFunc inspects n at path and returns a corrective transform when
// the tree violates the plugin's placement rules.
type NormalizeFunc func(ed Editor, n document.Node, path document.Path) (document.Transform, bool)

// Plugin describes one node type.
type Plugin struct {
	Type string
	Kind Kind
	// Void nodes keep their content in Data; children are always [{text:""}].
	Void bool
	// Tag is the native HTML tag used when Serialize is nil or declines.
	Tag string
	// Embed is set for plugins that claim <ndlaembed> tags.
	Embed *EmbedClaim

	Serialize   SerializeFunc
	Deserialize DeserializeFunc
	Normalize   NormalizeFunc
}

// EmbedClaim is the (resource, type) pair an embed plugin answers for,
// plus the canonical attribute layout of its data.
type EmbedClaim struct {
	Resource  string
	EmbedType string
	Fields    []Field
}

// Matches reports an exact match on both resource and type.
func (c EmbedClaim) Matches(resource, embedType string) bool {
	return c.Resource == resource && c.EmbedType == embedType
}

// FieldKind selects how a data value is carried in its attribute.
type FieldKind string

const (
	FieldString FieldKind = "string"
	FieldJSON   FieldKind = "json"
)

// Field is one declared data key of an embed, in canonical order.
type Field struct {
	Name string    `yaml:"name"`
	Kind FieldKind `yaml:"kind"`
}
