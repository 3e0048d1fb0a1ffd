package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node: [i] is the i-th top-level block, [i, j] its j-th
// child and so on. The empty path addresses the document root.
type Path []int

// Parent returns the path of the enclosing node.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Index returns the position of the node among its siblings.
func (p Path) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Child returns the path of the i-th child of the node at p.
func (p Path) Child(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// Sibling returns the path of the node at offset delta from p.
func (p Path) Sibling(delta int) Path {
	out := make(Path, len(p))
	copy(out, p)
	out[len(out)-1] += delta
	return out
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Get returns the node at path.
func (d Document) Get(path Path) (Node, bool) {
	if len(path) == 0 {
		return Node{}, false
	}
	nodes := []Node(d)
	var current Node
	for _, idx := range path {
		if idx < 0 || idx >= len(nodes) {
			return Node{}, false
		}
		current = nodes[idx]
		nodes = current.Children
	}
	return current, true
}

// Siblings returns the children of the parent of path, i.e. the list the
// addressed node lives in. For top-level paths this is the document itself.
func (d Document) Siblings(path Path) ([]Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("root has no siblings")
	}
	parent := path.Parent()
	if len(parent) == 0 {
		return d, nil
	}
	node, ok := d.Get(parent)
	if !ok {
		return nil, fmt.Errorf("no node at %s", parent)
	}
	return node.Children, nil
}
