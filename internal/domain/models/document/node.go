package document

// Node is one entry of the editor document tree.
//
// A node with a non-nil Text is a leaf text run and carries nothing else.
// Every other node is an element: it has a Type from the plugin registry,
// ordered Children and optional Data (the attributes that travel through
// the embed tag's data-* attributes).
type Node struct {
	Type     string         `json:"type,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Children []Node         `json:"children,omitempty"`
	Text     *string        `json:"text,omitempty"`
}

// Document is the ordered sequence of top-level block nodes.
type Document []Node

// NewText creates a leaf text node.
func NewText(text string) Node {
	return Node{Text: &text}
}

// EmptyText creates the placeholder leaf used by void nodes.
func EmptyText() Node {
	return NewText("")
}

// NewElement creates a block or inline element node.
func NewElement(nodeType string, data map[string]any, children ...Node) Node {
	return Node{Type: nodeType, Data: data, Children: children}
}

// IsText reports whether n is a leaf text node.
func (n Node) IsText() bool {
	return n.Text != nil
}

// TextValue returns the leaf payload, or "" for elements.
func (n Node) TextValue() string {
	if n.Text == nil {
		return ""
	}
	return *n.Text
}

// IsEmptyText reports whether n is a leaf with an empty payload.
func (n Node) IsEmptyText() bool {
	return n.Text != nil && *n.Text == ""
}

// DataString returns Data[key] when it holds a string.
func (n Node) DataString(key string) string {
	s, _ := n.Data[key].(string)
	return s
}

// Clone returns a deep copy of n. Data values are copied one level deep;
// nested slices and maps are shared because nodes treat them as immutable.
func (n Node) Clone() Node {
	out := Node{Type: n.Type}
	if n.Text != nil {
		text := *n.Text
		out.Text = &text
	}
	if n.Data != nil {
		out.Data = make(map[string]any, len(n.Data))
		for k, v := range n.Data {
			out.Data[k] = v
		}
	}
	if n.Children != nil {
		out.Children = cloneNodes(n.Children)
	}
	return out
}

// PlainText concatenates every leaf payload below n.
func (n Node) PlainText() string {
	if n.IsText() {
		return *n.Text
	}
	var text string
	for _, child := range n.Children {
		text += child.PlainText()
	}
	return text
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneNodes(d))
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
