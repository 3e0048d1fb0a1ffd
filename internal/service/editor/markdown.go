package editor

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"draftconv/internal/service/editor/plugin"
)

// newMarkdownConverter builds the HTML to markdown converter used for
// previews and search indexing. Embeds get a dedicated rule:
//   - inline comments keep the commented text, block comments vanish
//   - images become markdown images
//   - other embeds fall back to their title or caption, then their content
func newMarkdownConverter() *md.Converter {
	converter := md.NewConverter("", true, nil)
	converter.AddRules(md.Rule{
		Filter:      []string{plugin.EmbedTag},
		Replacement: embedToMarkdown,
	})
	return converter
}

func embedToMarkdown(content string, selec *goquery.Selection, _ *md.Options) *string {
	resource := selec.AttrOr("data-resource", "")
	embedType := selec.AttrOr("data-type", "")

	switch resource {
	case "comment":
		if embedType == "inline" {
			return md.String(content)
		}
		return md.String("")
	case "image":
		alt := selec.AttrOr("data-alt", "")
		url := selec.AttrOr("data-url", "")
		if url == "" {
			return md.String(alt)
		}
		return md.String(fmt.Sprintf("\n\n![%s](%s)\n\n", alt, url))
	case "footnote":
		return md.String("")
	}

	for _, attr := range []string{"data-title", "data-caption"} {
		if title := strings.TrimSpace(selec.AttrOr(attr, "")); title != "" {
			return md.String("\n\n" + title + "\n\n")
		}
	}
	return md.String(content)
}
