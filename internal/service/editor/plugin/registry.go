package plugin

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry is the immutable dispatch table built from plugin descriptors.
//
// Lookups by node type are map based; embed claims are resolved in
// registration order so the first registered plugin wins a contested
// (resource, type) pair.
type Registry struct {
	plugins  []Plugin
	byType   map[string]int
	embeds   []int
	fallback int // index of the placeholder plugin, -1 if none
	tags     map[string]TagPolicy
}

// NewRegistry validates the descriptors and builds the registry.
// Types must be unique. The plugin named ErrorEmbedType, if present,
// receives unclaimed embeds.
func NewRegistry(plugins ...Plugin) (*Registry, error) {
	r := &Registry{
		plugins:  make([]Plugin, 0, len(plugins)),
		byType:   make(map[string]int, len(plugins)),
		fallback: -1,
		tags:     make(map[string]TagPolicy, len(tagPolicies)),
	}

	for _, p := range plugins {
		if p.Type == "" {
			return nil, fmt.Errorf("plugin without type")
		}
		if _, exists := r.byType[p.Type]; exists {
			return nil, fmt.Errorf("duplicate plugin type %q", p.Type)
		}
		idx := len(r.plugins)
		r.plugins = append(r.plugins, p)
		r.byType[p.Type] = idx

		if p.Embed != nil {
			if p.Embed.Resource == "" {
				return nil, fmt.Errorf("plugin %q: embed claim without resource", p.Type)
			}
			r.embeds = append(r.embeds, idx)
		}
		if p.Type == ErrorEmbedType {
			r.fallback = idx
		}
	}

	for tag, policy := range tagPolicies {
		if policy.Action == ActionMap {
			if _, ok := r.byType[policy.NodeType]; !ok {
				return nil, fmt.Errorf("tag <%s> maps to unregistered type %q", tag, policy.NodeType)
			}
		}
		r.tags[tag] = policy
	}

	return r, nil
}

// Default builds the registry used by the editor: structural blocks, the
// embed plugins declared in config/embeds.yaml and the error placeholder.
func Default(logger *slog.Logger) (*Registry, error) {
	schemas, err := LoadEmbedSchemas()
	if err != nil {
		return nil, err
	}

	plugins := BlockPlugins()
	for _, schema := range schemas {
		p, err := NewEmbedPlugin(schema, logger)
		if err != nil {
			return nil, fmt.Errorf("embed %q: %w", schema.NodeType, err)
		}
		plugins = append(plugins, p)
	}
	plugins = append(plugins, ErrorEmbedPlugin())

	return NewRegistry(plugins...)
}

// Lookup returns the plugin registered for nodeType.
func (r *Registry) Lookup(nodeType string) (Plugin, bool) {
	idx, ok := r.byType[nodeType]
	if !ok {
		return Plugin{}, false
	}
	return r.plugins[idx], true
}

// ClaimEmbed returns the first plugin, in registration order, whose claim
// matches resource and embedType exactly.
func (r *Registry) ClaimEmbed(resource, embedType string) (Plugin, bool) {
	for _, idx := range r.embeds {
		p := r.plugins[idx]
		if p.Embed.Matches(resource, embedType) {
			return p, true
		}
	}
	return Plugin{}, false
}

// Placeholder returns the plugin that receives unclaimed embeds.
func (r *Registry) Placeholder() (Plugin, bool) {
	if r.fallback < 0 {
		return Plugin{}, false
	}
	return r.plugins[r.fallback], true
}

// TagPolicy returns the fixed deserialization policy for an HTML tag.
func (r *Registry) TagPolicy(tag string) (TagPolicy, bool) {
	policy, ok := r.tags[tag]
	return policy, ok
}

// KindOf returns the kind of nodeType. Unknown types report ok=false.
func (r *Registry) KindOf(nodeType string) (Kind, bool) {
	p, ok := r.Lookup(nodeType)
	if !ok {
		return 0, false
	}
	return p.Kind, true
}

// Plugins returns the descriptors in registration order.
func (r *Registry) Plugins() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Types returns the registered node types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
