package editor

import (
	"fmt"
	"log/slog"
	"strings"

	"draftconv/internal/domain"
	"draftconv/internal/domain/models/document"
	"draftconv/internal/service/editor/plugin"
)

// transformsPerNode is the per-node share of the normalization budget.
// A node needs at most a handful of fixes (void children, two neighbors,
// padding on both sides), so exceeding this means a plugin is fighting
// another rule.
const transformsPerNode = 8

// NormalizerOptions configures the fixpoint loop.
type NormalizerOptions struct {
	// MaxPasses is the base number of transforms allowed per call; the
	// budget grows by transformsPerNode for every node in the input.
	MaxPasses int
	// Strict makes a non-converging run an error. Otherwise the input is
	// returned unchanged and the failure is only logged.
	Strict bool
}

// Normalizer repairs structural invariants by applying one transform at a
// time until no rule fires.
//
// Rules, in the order they are checked for each node (pre-order):
//   - void nodes have exactly one empty text child
//   - an empty text block or inline gets an empty text child, an empty
//     container gets a default paragraph
//   - text and inlines loose in a container are wrapped in a paragraph
//   - non-text children of a text block or inline are separated by text
//   - the plugin's own rule, e.g. required neighbors of void blocks
//
// Every rule only inserts nodes or re-parents them; user content is never
// removed.
type Normalizer struct {
	registry *plugin.Registry
	opts     NormalizerOptions
	logger   *slog.Logger
}

// NewNormalizer creates a normalizer over registry.
func NewNormalizer(registry *plugin.Registry, opts NormalizerOptions, logger *slog.Logger) *Normalizer {
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = 1
	}
	return &Normalizer{registry: registry, opts: opts, logger: logger}
}

// Normalize runs the rules to a fixpoint and returns the repaired copy.
func (z *Normalizer) Normalize(doc document.Document) (document.Document, error) {
	budget := z.opts.MaxPasses + transformsPerNode*countNodes(doc)

	current := doc
	var last document.Transform
	for pass := 0; pass < budget; pass++ {
		t, ok := z.next(current)
		if !ok {
			if pass > 0 {
				z.logger.Debug("document normalized", "transforms", pass)
			}
			return current, nil
		}
		next, err := current.Apply(t)
		if err != nil {
			return nil, fmt.Errorf("apply %s at %s: %w", t.Kind, t.At, err)
		}
		current = next
		last = t
	}

	if _, ok := z.next(current); !ok {
		return current, nil
	}

	nerr := &domain.NormalizationError{
		Passes:   budget,
		LastPath: last.At.String(),
		LastKind: last.Kind.String(),
	}
	z.logger.Error("normalization did not converge",
		"passes", budget,
		"last_transform", last.Kind.String(),
		"last_path", last.At.String(),
		"strict", z.opts.Strict,
	)
	if z.opts.Strict {
		return nil, nerr
	}
	return doc, nil
}

// NormalizeNode returns the first corrective transform for n at path, or
// false when n is already normalized. Unknown node types are left alone.
func (z *Normalizer) NormalizeNode(doc document.Document, n document.Node, path document.Path) (document.Transform, bool) {
	if n.IsText() {
		return document.Transform{}, false
	}
	p, ok := z.registry.Lookup(n.Type)
	if !ok {
		return document.Transform{}, false
	}

	switch {
	case p.Void:
		if !isCanonicalVoid(n.Children) {
			return document.ReplaceChildren(path, document.EmptyText()), true
		}
	case len(n.Children) == 0:
		if p.Kind == plugin.KindContainer {
			return document.Insert(path.Child(0), plugin.NewParagraph()), true
		}
		return document.Insert(path.Child(0), document.EmptyText()), true
	case p.Kind == plugin.KindContainer:
		if t, ok := z.wrapLooseInlines(n.Children, path); ok {
			return t, true
		}
	default:
		if t, ok := padInlines(n.Children, path); ok {
			return t, true
		}
	}

	if p.Normalize != nil {
		return p.Normalize(plugin.Editor{Document: doc, Registry: z.registry}, n, path)
	}
	return document.Transform{}, false
}

// next finds the first transform in document order. The root behaves like
// a container.
func (z *Normalizer) next(doc document.Document) (document.Transform, bool) {
	if t, ok := z.wrapLooseInlines(doc, nil); ok {
		return t, true
	}
	return z.walk(doc, doc, nil)
}

func (z *Normalizer) walk(doc document.Document, nodes []document.Node, parent document.Path) (document.Transform, bool) {
	for i, n := range nodes {
		if n.IsText() {
			continue
		}
		path := parent.Child(i)
		if t, ok := z.NormalizeNode(doc, n, path); ok {
			return t, true
		}
		if t, ok := z.walk(doc, n.Children, path); ok {
			return t, true
		}
	}
	return document.Transform{}, false
}

// wrapLooseInlines wraps the first run of text and inline nodes found
// among block children into a paragraph. Whitespace-only text does not
// start a run.
func (z *Normalizer) wrapLooseInlines(children []document.Node, path document.Path) (document.Transform, bool) {
	start := -1
	for i, c := range children {
		if z.isLoose(c) {
			start = i
			break
		}
	}
	if start < 0 {
		return document.Transform{}, false
	}

	end := start + 1
	for end < len(children) && (children[end].IsText() || z.isInline(children[end])) {
		end++
	}

	wrapped := make([]document.Node, 0, len(children)-(end-start)+1)
	wrapped = append(wrapped, children[:start]...)
	wrapped = append(wrapped, document.NewElement(plugin.DefaultBlockType, nil, children[start:end]...))
	wrapped = append(wrapped, children[end:]...)
	return document.ReplaceChildren(path, wrapped...), true
}

func (z *Normalizer) isLoose(n document.Node) bool {
	if n.IsText() {
		return strings.TrimSpace(*n.Text) != ""
	}
	return z.isInline(n)
}

func (z *Normalizer) isInline(n document.Node) bool {
	if n.IsText() {
		return false
	}
	kind, ok := z.registry.KindOf(n.Type)
	return ok && kind == plugin.KindInline
}

// padInlines makes sure every non-text child of a text-bearing node has a
// text leaf on both sides, which is where the editor places the cursor.
func padInlines(children []document.Node, path document.Path) (document.Transform, bool) {
	for i, c := range children {
		if c.IsText() {
			continue
		}
		if i == 0 || !children[i-1].IsText() {
			return document.Insert(path.Child(i), document.EmptyText()), true
		}
	}
	if last := len(children) - 1; !children[last].IsText() {
		return document.Insert(path.Child(last+1), document.EmptyText()), true
	}
	return document.Transform{}, false
}

func isCanonicalVoid(children []document.Node) bool {
	return len(children) == 1 && children[0].IsEmptyText()
}

func countNodes(nodes []document.Node) int {
	count := len(nodes)
	for _, n := range nodes {
		count += countNodes(n.Children)
	}
	return count
}
