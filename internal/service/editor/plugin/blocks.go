package plugin

import (
	"fmt"
	"strconv"

	"draftconv/internal/domain/models/document"
)

// Structural node types.
const (
	SectionType      = "section"
	ParagraphType    = "paragraph"
	HeadingType      = "heading"
	QuoteType        = "quote"
	BulletedListType = "bulleted-list"
	NumberedListType = "numbered-list"
	ListItemType     = "list-item"
)

// BlockPlugins returns the structural plugins. Apart from headings they
// have no custom functions and rely on their native tag.
func BlockPlugins() []Plugin {
	return []Plugin{
		{Type: SectionType, Kind: KindContainer, Tag: "section"},
		{Type: ParagraphType, Kind: KindBlock, Tag: "p"},
		{
			Type:        HeadingType,
			Kind:        KindBlock,
			Serialize:   serializeHeading,
			Deserialize: deserializeHeading,
		},
		{Type: QuoteType, Kind: KindContainer, Tag: "blockquote"},
		{Type: BulletedListType, Kind: KindContainer, Tag: "ul"},
		{Type: NumberedListType, Kind: KindContainer, Tag: "ol"},
		{Type: ListItemType, Kind: KindContainer, Tag: "li"},
	}
}

// NewParagraph returns the default scaffolding block.
func NewParagraph() document.Node {
	return document.NewElement(ParagraphType, nil, document.EmptyText())
}

func serializeHeading(n document.Node, children string) (string, bool, error) {
	level := headingLevel(n.Data["level"])
	return fmt.Sprintf("<h%d>%s</h%d>", level, children, level), true, nil
}

func deserializeHeading(el Element, children []document.Node) (document.Node, bool) {
	if len(el.Tag) != 2 || el.Tag[0] != 'h' {
		return document.Node{}, false
	}
	level, err := strconv.Atoi(el.Tag[1:])
	if err != nil || level < 1 || level > 6 {
		return document.Node{}, false
	}
	return document.NewElement(HeadingType, map[string]any{"level": level}, children...), true
}

// headingLevel accepts the level as decoded from Go callers (int) or from
// JSON request bodies (float64, string) and clamps it to h1..h6.
func headingLevel(v any) int {
	level := 2
	switch l := v.(type) {
	case int:
		level = l
	case float64:
		level = int(l)
	case string:
		if n, err := strconv.Atoi(l); err == nil {
			level = n
		}
	}
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
