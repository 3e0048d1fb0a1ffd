package editor

import (
	"errors"
	"testing"

	"draftconv/internal/domain"
	"draftconv/internal/domain/models/document"
)

func TestSerializer_Serialize(t *testing.T) {
	serializer := NewSerializer(defaultRegistry(t))

	tests := []struct {
		name string
		doc  document.Document
		want string
	}{
		{
			name: "inline comment",
			doc: document.Document{
				el("section", nil, paragraph(
					text("This is a "),
					inlineComment("Comment text", text("comment")),
					text(""),
				)),
			},
			want: `<section><p>This is a <ndlaembed data-resource="comment" data-type="inline" data-text="Comment text">comment</ndlaembed></p></section>`,
		},
		{
			name: "void block comment without children",
			doc: document.Document{
				el("comment-block", map[string]any{"resource": "comment", "type": "block", "text": "Comment text"}),
			},
			want: `<ndlaembed data-resource="comment" data-type="block" data-text="Comment text"></ndlaembed>`,
		},
		{
			name: "void children never leak",
			doc: document.Document{
				el("comment-block", map[string]any{"text": "Comment text"}, text("stray")),
			},
			want: `<ndlaembed data-resource="comment" data-type="block" data-text="Comment text"></ndlaembed>`,
		},
		{
			name: "text is escaped",
			doc:  document.Document{paragraph(text(`a < b & "c"`))},
			want: `<p>a &lt; b &amp; &#34;c&#34;</p>`,
		},
		{
			name: "heading and lists",
			doc: document.Document{
				el("heading", map[string]any{"level": float64(3)}, text("Title")),
				el("bulleted-list", nil, el("list-item", nil, paragraph(text("one")))),
			},
			want: `<h3>Title</h3><ul><li><p>one</p></li></ul>`,
		},
		{
			name: "image with json field",
			doc: document.Document{
				el("image", map[string]any{
					"alt":           "A cat",
					"resource_id":   "42",
					"is-decorative": true,
				}, text("")),
			},
			want: `<ndlaembed data-resource="image" data-resource_id="42" data-alt="A cat" data-is-decorative="true"></ndlaembed>`,
		},
		{
			name: "empty document",
			doc:  document.Document{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serializer.Serialize(tt.doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Serialize() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSerializer_Deterministic(t *testing.T) {
	serializer := NewSerializer(defaultRegistry(t))
	doc := document.Document{
		el("footnote", map[string]any{
			"zeta":    "z",
			"title":   "Book",
			"authors": []any{"A", "B"},
			"alpha":   "a",
			"year":    "2001",
		}, text("")),
	}

	first, err := serializer.Serialize(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ndlaembed data-resource="footnote" data-title="Book" data-year="2001" data-authors="[&#34;A&#34;,&#34;B&#34;]" data-alpha="a" data-zeta="z"></ndlaembed>`
	if first != want {
		t.Fatalf("Serialize() =\n%s\nwant\n%s", first, want)
	}

	for i := 0; i < 20; i++ {
		again, err := serializer.Serialize(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d differs:\n%s\n%s", i, again, first)
		}
	}
}

func TestSerializer_Errors(t *testing.T) {
	serializer := NewSerializer(defaultRegistry(t))

	tests := []struct {
		name     string
		doc      document.Document
		nodeType string
		path     string
	}{
		{
			name:     "unknown type",
			doc:      document.Document{paragraph(text("ok")), el("mystery", nil, text("x"))},
			nodeType: "mystery",
			path:     "[1]",
		},
		{
			name:     "unknown nested type",
			doc:      document.Document{el("section", nil, paragraph(text("a"), el("mystery", nil)))},
			nodeType: "mystery",
			path:     "[0,0,1]",
		},
		{
			name:     "data key that is not an attribute name",
			doc:      document.Document{el("comment-block", map[string]any{"Bad Key": "x"}, text(""))},
			nodeType: "comment-block",
			path:     "[0]",
		},
		{
			name:     "number in undeclared key",
			doc:      document.Document{paragraph(text("")), el("image", map[string]any{"resource_id": "1", "width": float64(300)}, text(""))},
			nodeType: "image",
			path:     "[1]",
		},
		{
			name:     "number in string field",
			doc:      document.Document{paragraph(text("a"), el("footnote", map[string]any{"year": float64(2020)}, text("")), text(""))},
			nodeType: "footnote",
			path:     "[0,1]",
		},
		{
			name:     "type on an embed without type",
			doc:      document.Document{el("image", map[string]any{"resource": "image", "type": "photo"}, text(""))},
			nodeType: "image",
			path:     "[0]",
		},
		{
			name:     "resource that disagrees with the plugin",
			doc:      document.Document{el("comment-block", map[string]any{"resource": "concept", "text": "x"}, text(""))},
			nodeType: "comment-block",
			path:     "[0]",
		},
		{
			name:     "placeholder without markup",
			doc:      document.Document{el("error-embed", nil, text(""))},
			nodeType: "error-embed",
			path:     "[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serializer.Serialize(tt.doc)
			if !errors.Is(err, domain.ErrSerialization) {
				t.Fatalf("error = %v, want ErrSerialization", err)
			}
			var serr *domain.SerializationError
			if !errors.As(err, &serr) {
				t.Fatalf("error is not *SerializationError: %T", err)
			}
			if serr.NodeType != tt.nodeType || serr.Path != tt.path {
				t.Errorf("got node %q at %s, want %q at %s", serr.NodeType, serr.Path, tt.nodeType, tt.path)
			}
		})
	}
}
