package editor

import (
	"log/slog"
	"os"
	"testing"

	"draftconv/internal/domain/models/document"
	"draftconv/internal/service/editor/plugin"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func defaultRegistry(t *testing.T) *plugin.Registry {
	t.Helper()
	registry, err := plugin.Default(testLogger())
	if err != nil {
		t.Fatalf("plugin.Default() error: %v", err)
	}
	return registry
}

func newTestConverter(t *testing.T, opts Options) *Converter {
	t.Helper()
	if opts.Normalizer.MaxPasses == 0 {
		opts.Normalizer = NormalizerOptions{MaxPasses: 100, Strict: true}
	}
	return NewConverter(defaultRegistry(t), opts, testLogger())
}

func text(s string) document.Node { return document.NewText(s) }

func el(nodeType string, data map[string]any, children ...document.Node) document.Node {
	return document.NewElement(nodeType, data, children...)
}

func paragraph(children ...document.Node) document.Node {
	return el(plugin.ParagraphType, nil, children...)
}

func inlineComment(note string, children ...document.Node) document.Node {
	return el("comment-inline", map[string]any{
		"resource": "comment",
		"type":     "inline",
		"text":     note,
	}, children...)
}

func blockComment(note string) document.Node {
	return el("comment-block", map[string]any{
		"resource": "comment",
		"type":     "block",
		"text":     note,
	}, text(""))
}
