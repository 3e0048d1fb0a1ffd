package plugin

import (
	"embed"
	"fmt"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"draftconv/internal/domain/models/document"
)

//go:embed config/embeds.yaml
var configFiles embed.FS

// EmbedSchema declares one embed plugin: the node type it produces, the
// (resource, type) pair it claims and the canonical order of its fields.
type EmbedSchema struct {
	NodeType  string        `yaml:"node_type"`
	Resource  string        `yaml:"resource"`
	EmbedType string        `yaml:"type"`
	Kind      string        `yaml:"kind"` // "block" or "inline"
	Void      bool          `yaml:"void"`
	Fields    []Field       `yaml:"fields"`
	Neighbors *NeighborRule `yaml:"neighbors"`
}

// NeighborRule constrains the siblings of a void block. A missing or
// disallowed neighbor is repaired by inserting a Fallback node.
type NeighborRule struct {
	Allowed  []string `yaml:"allowed"`
	Fallback string   `yaml:"fallback"`
	// Boundary allows the block to be first or last in its parent.
	Boundary bool `yaml:"boundary"`
}

type embedFile struct {
	Embeds []EmbedSchema `yaml:"embeds"`
}

// LoadEmbedSchemas reads the embedded schema file. Order in the file is
// registration order.
func LoadEmbedSchemas() ([]EmbedSchema, error) {
	data, err := configFiles.ReadFile("config/embeds.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embed schemas: %w", err)
	}
	return ParseEmbedSchemas(data)
}

// ParseEmbedSchemas decodes and checks a schema document.
func ParseEmbedSchemas(data []byte) ([]EmbedSchema, error) {
	var file embedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embed schemas: %w", err)
	}

	for i := range file.Embeds {
		s := &file.Embeds[i]
		if s.NodeType == "" || s.Resource == "" {
			return nil, fmt.Errorf("embed schema %d: node_type and resource are required", i)
		}
		for j := range s.Fields {
			f := &s.Fields[j]
			if f.Kind == "" {
				f.Kind = FieldString
			}
			if f.Kind != FieldString && f.Kind != FieldJSON {
				return nil, fmt.Errorf("embed %q field %q: unknown kind %q", s.NodeType, f.Name, f.Kind)
			}
			if !ValidDataKey(f.Name) || f.Name == resourceKey || f.Name == embedTypeKey {
				return nil, fmt.Errorf("embed %q: invalid field name %q", s.NodeType, f.Name)
			}
		}
		if s.Neighbors != nil && s.Neighbors.Fallback == "" {
			s.Neighbors.Fallback = DefaultBlockType
		}
	}
	return file.Embeds, nil
}

// NewEmbedPlugin turns a schema into a plugin descriptor.
func NewEmbedPlugin(schema EmbedSchema, logger *slog.Logger) (Plugin, error) {
	var kind Kind
	switch schema.Kind {
	case "", "block":
		kind = KindBlock
	case "inline":
		kind = KindInline
	default:
		return Plugin{}, fmt.Errorf("unknown kind %q", schema.Kind)
	}
	if schema.Neighbors != nil && (kind != KindBlock || !schema.Void) {
		return Plugin{}, fmt.Errorf("neighbor rules only apply to void blocks")
	}

	claim := &EmbedClaim{
		Resource:  schema.Resource,
		EmbedType: schema.EmbedType,
		Fields:    slices.Clone(schema.Fields),
	}

	p := Plugin{
		Type:  schema.NodeType,
		Kind:  kind,
		Void:  schema.Void,
		Embed: claim,
		Serialize: func(n document.Node, children string) (string, bool, error) {
			attrs, err := EncodeAttributes(*claim, n.Data)
			if err != nil {
				return "", false, err
			}
			if schema.Void {
				children = ""
			}
			return RenderEmbed(attrs, children), true, nil
		},
		Deserialize: func(el Element, children []document.Node) (document.Node, bool) {
			if el.Tag != EmbedTag {
				return document.Node{}, false
			}
			data := DecodeAttributes(*claim, el.Attrs, logger)
			if schema.Void {
				children = []document.Node{document.EmptyText()}
			}
			return document.NewElement(schema.NodeType, data, children...), true
		},
	}
	if schema.Neighbors != nil {
		p.Normalize = neighborNormalizer(*schema.Neighbors)
	}
	return p, nil
}

// neighborNormalizer checks the previous sibling, then the next one, and
// asks for one fallback node per violation. Only siblings inside a
// container (or the document root) are considered.
func neighborNormalizer(rule NeighborRule) NormalizeFunc {
	allowed := func(n document.Node) bool {
		return !n.IsText() && slices.Contains(rule.Allowed, n.Type)
	}
	fallback := func() document.Node {
		return document.NewElement(rule.Fallback, nil, document.EmptyText())
	}

	return func(ed Editor, n document.Node, path document.Path) (document.Transform, bool) {
		if parent := path.Parent(); len(parent) > 0 {
			p, ok := ed.Document.Get(parent)
			if !ok {
				return document.Transform{}, false
			}
			if kind, known := ed.Registry.KindOf(p.Type); !known || kind != KindContainer {
				return document.Transform{}, false
			}
		}
		siblings, err := ed.Document.Siblings(path)
		if err != nil {
			return document.Transform{}, false
		}
		idx := path.Index()

		if idx == 0 {
			if !rule.Boundary {
				return document.Insert(path, fallback()), true
			}
		} else if !allowed(siblings[idx-1]) {
			return document.Insert(path, fallback()), true
		}

		if idx == len(siblings)-1 {
			if !rule.Boundary {
				return document.Insert(path.Sibling(1), fallback()), true
			}
		} else if !allowed(siblings[idx+1]) {
			return document.Insert(path.Sibling(1), fallback()), true
		}

		return document.Transform{}, false
	}
}
