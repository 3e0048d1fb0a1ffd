package plugin

import (
	"fmt"

	"draftconv/internal/domain/models/document"
)

// ErrorEmbedType is the placeholder for embeds no plugin claims, e.g.
// content from a plugin that is not loaded in this build. The original
// markup is kept in data.html and written back unchanged.
const ErrorEmbedType = "error-embed"

const rawHTMLKey = "html"

// ErrorEmbedPlugin returns the placeholder plugin.
func ErrorEmbedPlugin() Plugin {
	return Plugin{
		Type:        ErrorEmbedType,
		Kind:        KindBlock,
		Void:        true,
		Serialize:   serializeErrorEmbed,
		Deserialize: deserializeErrorEmbed,
	}
}

func serializeErrorEmbed(n document.Node, _ string) (string, bool, error) {
	raw := n.DataString(rawHTMLKey)
	if raw == "" {
		return "", false, fmt.Errorf("placeholder lost its original markup")
	}
	return raw, true, nil
}

func deserializeErrorEmbed(el Element, _ []document.Node) (document.Node, bool) {
	if el.Tag != EmbedTag || el.Raw == "" {
		return document.Node{}, false
	}
	data := map[string]any{rawHTMLKey: el.Raw}
	if resource, ok := el.Attr(attrPrefix + resourceKey); ok {
		data[resourceKey] = resource
	}
	if embedType, ok := el.Attr(attrPrefix + embedTypeKey); ok {
		data[embedTypeKey] = embedType
	}
	return document.NewElement(ErrorEmbedType, data, document.EmptyText()), true
}
