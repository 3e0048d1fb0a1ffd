package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"draftconv/internal/domain"
	"draftconv/internal/domain/models/document"
	"draftconv/internal/service/editor/plugin"
)

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer(defaultRegistry(t), NormalizerOptions{MaxPasses: 100, Strict: true}, testLogger())

	image := el("image", map[string]any{"url": "cat.png"}, text(""))

	tests := []struct {
		name string
		doc  document.Document
		want document.Document
	}{
		{
			name: "adjacent comment blocks get a paragraph between",
			doc:  document.Document{blockComment("a"), blockComment("b")},
			want: document.Document{blockComment("a"), paragraph(text("")), blockComment("b")},
		},
		{
			name: "comment block next to heading is fine",
			doc: document.Document{
				el("heading", map[string]any{"level": 2}, text("T")),
				blockComment("a"),
			},
			want: document.Document{
				el("heading", map[string]any{"level": 2}, text("T")),
				blockComment("a"),
			},
		},
		{
			name: "image needs paragraphs on both sides",
			doc:  document.Document{image},
			want: document.Document{paragraph(text("")), image, paragraph(text(""))},
		},
		{
			name: "void children made canonical",
			doc: document.Document{
				el("comment-block", map[string]any{"text": "a"}, text("x"), paragraph(text("y"))),
			},
			want: document.Document{
				el("comment-block", map[string]any{"text": "a"}, text("")),
			},
		},
		{
			name: "void without children",
			doc:  document.Document{el("comment-block", map[string]any{"text": "a"})},
			want: document.Document{el("comment-block", map[string]any{"text": "a"}, text(""))},
		},
		{
			name: "empty paragraph gets a leaf",
			doc:  document.Document{paragraph()},
			want: document.Document{paragraph(text(""))},
		},
		{
			name: "empty section gets a paragraph",
			doc:  document.Document{el("section", nil)},
			want: document.Document{el("section", nil, paragraph(text("")))},
		},
		{
			name: "inline padded on both sides",
			doc:  document.Document{paragraph(inlineComment("n", text("c")))},
			want: document.Document{paragraph(text(""), inlineComment("n", text("c")), text(""))},
		},
		{
			name: "adjacent inlines separated",
			doc: document.Document{paragraph(
				text("a"),
				inlineComment("1", text("b")),
				inlineComment("2", text("c")),
				text("d"),
			)},
			want: document.Document{paragraph(
				text("a"),
				inlineComment("1", text("b")),
				text(""),
				inlineComment("2", text("c")),
				text("d"),
			)},
		},
		{
			name: "loose text in section wrapped",
			doc: document.Document{el("section", nil,
				text("loose "),
				inlineComment("n", text("c")),
				paragraph(text("p")),
			)},
			want: document.Document{el("section", nil,
				paragraph(text("loose "), inlineComment("n", text("c")), text("")),
				paragraph(text("p")),
			)},
		},
		{
			name: "loose text at root wrapped",
			doc:  document.Document{text("hello")},
			want: document.Document{paragraph(text("hello"))},
		},
		{
			name: "unknown types left alone",
			doc:  document.Document{el("mystery", nil)},
			want: document.Document{el("mystery", nil)},
		},
		{
			name: "user content survives",
			doc: document.Document{el("section", nil,
				paragraph(text("keep me")),
				blockComment("a"),
				blockComment("b"),
			)},
			want: document.Document{el("section", nil,
				paragraph(text("keep me")),
				blockComment("a"),
				paragraph(text("")),
				blockComment("b"),
			)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizer.Normalize(tt.doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}

			again, err := normalizer.Normalize(got)
			if err != nil {
				t.Fatalf("second pass error: %v", err)
			}
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("Normalize() is not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}

func TestNormalizer_NormalizeNodeOnFixpoint(t *testing.T) {
	normalizer := NewNormalizer(defaultRegistry(t), NormalizerOptions{MaxPasses: 100, Strict: true}, testLogger())

	doc, err := normalizer.Normalize(document.Document{
		el("section", nil,
			paragraph(text("a"), inlineComment("n", text("b"))),
			blockComment("x"),
			el("image", nil),
		),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var visit func(nodes []document.Node, parent document.Path)
	visit = func(nodes []document.Node, parent document.Path) {
		for i, n := range nodes {
			path := parent.Child(i)
			if tr, ok := normalizer.NormalizeNode(doc, n, path); ok {
				t.Errorf("node %q at %s still wants %s at %s", n.Type, path, tr.Kind, tr.At)
			}
			visit(n.Children, path)
		}
	}
	visit(doc, nil)
}

// fightingPlugin rewrites its own children forever.
func fightingPlugin() plugin.Plugin {
	return plugin.Plugin{
		Type: "fighter",
		Kind: plugin.KindBlock,
		Tag:  "div",
		Normalize: func(_ plugin.Editor, _ document.Node, path document.Path) (document.Transform, bool) {
			return document.ReplaceChildren(path, document.EmptyText()), true
		},
	}
}

func TestNormalizer_NonConvergence(t *testing.T) {
	registry, err := plugin.NewRegistry(append(plugin.BlockPlugins(), fightingPlugin())...)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	doc := document.Document{el("fighter", nil, text("content"))}

	t.Run("strict", func(t *testing.T) {
		normalizer := NewNormalizer(registry, NormalizerOptions{MaxPasses: 5, Strict: true}, testLogger())
		_, err := normalizer.Normalize(doc)
		if !errors.Is(err, domain.ErrNormalization) {
			t.Fatalf("error = %v, want ErrNormalization", err)
		}
		var nerr *domain.NormalizationError
		if !errors.As(err, &nerr) || nerr.LastPath != "[0]" || nerr.LastKind != "set_children" {
			t.Errorf("unexpected error detail: %+v", nerr)
		}
	})

	t.Run("lenient", func(t *testing.T) {
		normalizer := NewNormalizer(registry, NormalizerOptions{MaxPasses: 5, Strict: false}, testLogger())
		got, err := normalizer.Normalize(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(doc, got); diff != "" {
			t.Errorf("expected input back unchanged (-want +got):\n%s", diff)
		}
	})
}
