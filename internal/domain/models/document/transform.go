package document

import "fmt"

// TransformKind identifies a corrective edit.
type TransformKind int

const (
	// InsertNode inserts Node so that it ends up at At.
	InsertNode TransformKind = iota
	// SetChildren replaces the children of the node at At.
	SetChildren
)

func (k TransformKind) String() string {
	switch k {
	case InsertNode:
		return "insert_node"
	case SetChildren:
		return "set_children"
	default:
		return fmt.Sprintf("transform(%d)", int(k))
	}
}

// Transform is a structural edit produced by a normalizer.
type Transform struct {
	Kind     TransformKind
	At       Path
	Node     Node
	Children []Node
}

// Insert builds an InsertNode transform.
func Insert(at Path, node Node) Transform {
	return Transform{Kind: InsertNode, At: at, Node: node}
}

// ReplaceChildren builds a SetChildren transform.
func ReplaceChildren(at Path, children ...Node) Transform {
	return Transform{Kind: SetChildren, At: at, Children: children}
}

// Apply returns a new document with t applied. Only the nodes on the path
// to the edit are copied; d itself is left untouched. SetChildren with an
// empty path replaces the top-level blocks.
func (d Document) Apply(t Transform) (Document, error) {
	switch t.Kind {
	case InsertNode:
		if len(t.At) == 0 {
			return nil, fmt.Errorf("%s: empty path", t.Kind)
		}
		parent := t.At.Parent()
		idx := t.At.Index()
		out, err := editChildren([]Node(d), parent, func(children []Node) ([]Node, error) {
			if idx < 0 || idx > len(children) {
				return nil, fmt.Errorf("insert at %s: index out of range", t.At)
			}
			next := make([]Node, 0, len(children)+1)
			next = append(next, children[:idx]...)
			next = append(next, t.Node.Clone())
			next = append(next, children[idx:]...)
			return next, nil
		})
		return Document(out), err
	case SetChildren:
		out, err := editChildren([]Node(d), t.At, func([]Node) ([]Node, error) {
			return cloneNodes(t.Children), nil
		})
		return Document(out), err
	default:
		return nil, fmt.Errorf("unknown transform kind %s", t.Kind)
	}
}

// editChildren copies the spine of the tree down to the node at path and
// replaces that node's children with the result of edit. An empty path
// edits the root list.
func editChildren(nodes []Node, path Path, edit func([]Node) ([]Node, error)) ([]Node, error) {
	if len(path) == 0 {
		return edit(nodes)
	}
	idx := path[0]
	if idx < 0 || idx >= len(nodes) {
		return nil, fmt.Errorf("no node at index %d", idx)
	}
	if nodes[idx].IsText() {
		return nil, fmt.Errorf("text node at index %d has no children", idx)
	}
	children, err := editChildren(nodes[idx].Children, path[1:], edit)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(nodes))
	copy(out, nodes)
	updated := nodes[idx]
	updated.Children = children
	out[idx] = updated
	return out, nil
}
