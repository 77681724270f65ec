package doc

import (
	"strings"
)

// --------------------------------------------------------------------------
// Document Model
// --------------------------------------------------------------------------

// Attribute is a single name/value attribute of a Node.
type Attribute struct {
	Name  string `json:"name" yaml:"name" cbor:"name"`
	Value string `json:"value" yaml:"value" cbor:"value"`
}

// Node is an element of a Document. Attributes keep their insertion order.
type Node struct {
	Name     string      `json:"name" yaml:"name" cbor:"name"`
	Attrs    []Attribute `json:"attrs,omitempty" yaml:"attrs,omitempty" cbor:"attrs,omitempty"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty" cbor:"text,omitempty"`
	Children []*Node     `json:"children,omitempty" yaml:"children,omitempty" cbor:"children,omitempty"`
}

// Document is a tree of nodes with at most one root.
// A Document without a root is considered empty.
type Document struct {
	Root *Node `json:"root,omitempty" yaml:"root,omitempty" cbor:"root,omitempty"`
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// NewWithRoot returns a document with a single, empty root node.
func NewWithRoot(name string) *Document {
	return &Document{Root: &Node{Name: name}}
}

// IsEmpty reports whether the document is nil or has no root.
func (d *Document) IsEmpty() bool {
	return d == nil || d.Root == nil
}

// Clone returns a deep copy of the document. Cloning a nil document returns an empty one.
func (d *Document) Clone() *Document {
	if d == nil {
		return New()
	}
	return &Document{Root: d.Root.Clone()}
}

// Size estimates the number of bytes the document occupies (names, attribute values and texts).
func (d *Document) Size() int64 {
	if d.IsEmpty() {
		return 0
	}
	return d.Root.size()
}

// Equal reports whether two documents have the same structure and content.
func (d *Document) Equal(other *Document) bool {
	if d.IsEmpty() || other.IsEmpty() {
		return d.IsEmpty() == other.IsEmpty()
	}
	return d.Root.Equal(other.Root)
}

// Select evaluates an absolute path against the document and returns the matching nodes.
// Relative paths are evaluated with the root node as context.
func (d *Document) Select(path string) ([]*Node, error) {
	p, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return p.Eval(d), nil
}

// String renders the document in a compact, XML-like form. Used for logging and the CLI.
func (d *Document) String() string {
	if d.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	d.Root.write(&sb, 0)
	return sb.String()
}

// --------------------------------------------------------------------------
// Node Methods
// --------------------------------------------------------------------------

// Attr returns the value of the attribute with the given name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets (or replaces) the attribute with the given name.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attribute{Name: name, Value: value})
}

// Child returns the first child with the given name or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddChild appends a new child with the given name and returns it.
func (n *Node) AddChild(name string) *Node {
	child := &Node{Name: name}
	n.Children = append(n.Children, child)
	return child
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Name: n.Name, Text: n.Text}
	if len(n.Attrs) > 0 {
		c.Attrs = make([]Attribute, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Equal compares two nodes recursively. Attribute order is significant.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Text != other.Text ||
		len(n.Attrs) != len(other.Attrs) || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Attrs {
		if n.Attrs[i] != other.Attrs[i] {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) size() int64 {
	size := int64(len(n.Name) + len(n.Text))
	for _, a := range n.Attrs {
		size += int64(len(a.Name) + len(a.Value))
	}
	for _, c := range n.Children {
		size += c.size()
	}
	return size
}

func (n *Node) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		sb.WriteString("='")
		sb.WriteString(a.Value)
		sb.WriteString("'")
	}
	if len(n.Children) == 0 && n.Text == "" {
		sb.WriteString("/>\n")
		return
	}
	sb.WriteString(">")
	sb.WriteString(n.Text)
	if len(n.Children) > 0 {
		sb.WriteString("\n")
		for _, c := range n.Children {
			c.write(sb, depth+1)
		}
		sb.WriteString(indent)
	}
	sb.WriteString("</")
	sb.WriteString(n.Name)
	sb.WriteString(">\n")
}
