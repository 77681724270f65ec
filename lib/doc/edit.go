package doc

import (
	"errors"
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Directives
// --------------------------------------------------------------------------

// Directive is a single edit step applied by Apply. Directives operate on a cursor,
// a set of nodes that starts at the document itself (the parent of the root).
type Directive interface {
	apply(c *cursor) error
	String() string
}

type cursor struct {
	top   *Node // virtual parent of the root node
	nodes []*Node
}

// Apply returns a copy of d with all directives applied in order. The input document is never modified.
// Directives acting on an empty cursor are no-ops.
func Apply(d *Document, directives ...Directive) (*Document, error) {
	top := &Node{}
	if !d.IsEmpty() {
		top.Children = []*Node{d.Root.Clone()}
	}
	c := &cursor{top: top, nodes: []*Node{top}}
	for _, dir := range directives {
		if err := dir.apply(c); err != nil {
			return nil, fmt.Errorf("directive %s: %w", dir, err)
		}
	}
	switch len(top.Children) {
	case 0:
		return New(), nil
	case 1:
		return &Document{Root: top.Children[0]}, nil
	default:
		return nil, fmt.Errorf("document must have a single root, got %d", len(top.Children))
	}
}

// parentOf finds the parent of n below the virtual top node.
func (c *cursor) parentOf(n *Node) *Node {
	var walk func(p *Node) *Node
	walk = func(p *Node) *Node {
		for _, child := range p.Children {
			if child == n {
				return p
			}
			if found := walk(child); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(c.top)
}

func dedupe(nodes []*Node) []*Node {
	seen := make(map[*Node]struct{}, len(nodes))
	out := nodes[:0]
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// --------------------------------------------------------------------------
// Directive Implementations
// --------------------------------------------------------------------------

type addDirective struct{ name string }

// Add appends a child called name to every cursor node and moves the cursor to the new children.
func Add(name string) Directive { return addDirective{name: name} }

func (d addDirective) String() string { return "ADD " + d.name }

func (d addDirective) apply(c *cursor) error {
	if d.name == "" || !validName(d.name) {
		return fmt.Errorf("invalid node name %q", d.name)
	}
	next := make([]*Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		next = append(next, n.AddChild(d.name))
	}
	c.nodes = next
	return nil
}

type addIfDirective struct{ step string }

// AddIf moves the cursor to the first child matching the step, e.g. "comb[@id='42']",
// creating it (with the step's attribute equalities) when no child matches.
func AddIf(step string) Directive { return addIfDirective{step: step} }

func (d addIfDirective) String() string { return "ADDIF " + d.step }

func (d addIfDirective) apply(c *cursor) error {
	st, err := parseStep(d.step)
	if err != nil {
		return err
	}
	next := make([]*Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if found := st.path.evalAt(c.top, n); len(found) > 0 {
			next = append(next, found[0])
			continue
		}
		child := n.AddChild(st.name)
		for _, a := range st.attrs {
			child.SetAttr(a.Name, a.Value)
		}
		next = append(next, child)
	}
	c.nodes = next
	return nil
}

type attrDirective struct{ name, value string }

// Attr sets an attribute on every cursor node.
func Attr(name, value string) Directive { return attrDirective{name: name, value: value} }

func (d attrDirective) String() string { return fmt.Sprintf("ATTR %s=%q", d.name, d.value) }

func (d attrDirective) apply(c *cursor) error {
	if !validName(d.name) {
		return fmt.Errorf("invalid attribute name %q", d.name)
	}
	for _, n := range c.nodes {
		if n == c.top {
			return fmt.Errorf("can't set an attribute on the document")
		}
		n.SetAttr(d.name, d.value)
	}
	return nil
}

type setDirective struct{ text string }

// Set replaces the text of every cursor node.
func Set(text string) Directive { return setDirective{text: text} }

func (d setDirective) String() string { return fmt.Sprintf("SET %q", d.text) }

func (d setDirective) apply(c *cursor) error {
	for _, n := range c.nodes {
		if n == c.top {
			return fmt.Errorf("can't set text on the document")
		}
		n.Text = d.text
	}
	return nil
}

type removeDirective struct{}

// Remove deletes every cursor node and moves the cursor to their parents.
func Remove() Directive { return removeDirective{} }

func (removeDirective) String() string { return "REMOVE" }

func (removeDirective) apply(c *cursor) error {
	parents := make([]*Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if n == c.top {
			return fmt.Errorf("can't remove the document")
		}
		parent := c.parentOf(n)
		if parent == nil {
			continue // already removed with an ancestor
		}
		for i, child := range parent.Children {
			if child == n {
				parent.Children = append(parent.Children[:i:i], parent.Children[i+1:]...)
				break
			}
		}
		parents = append(parents, parent)
	}
	c.nodes = dedupe(parents)
	return nil
}

type upDirective struct{}

// Up moves the cursor to the parents of the cursor nodes.
func Up() Directive { return upDirective{} }

func (upDirective) String() string { return "UP" }

func (upDirective) apply(c *cursor) error {
	parents := make([]*Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if n == c.top {
			return fmt.Errorf("already at the document")
		}
		if parent := c.parentOf(n); parent != nil {
			parents = append(parents, parent)
		}
	}
	c.nodes = dedupe(parents)
	return nil
}

type xpathDirective struct{ path string }

// XPath moves the cursor to the nodes selected by path. Absolute paths start at the document,
// relative ones at each cursor node.
func XPath(path string) Directive { return xpathDirective{path: path} }

func (d xpathDirective) String() string { return "XPATH " + d.path }

func (d xpathDirective) apply(c *cursor) error {
	p, err := Compile(d.path)
	if err != nil {
		return err
	}
	if p.absolute {
		c.nodes = p.evalAt(c.top, c.top)
		return nil
	}
	var next []*Node
	for _, n := range c.nodes {
		next = append(next, p.evalAt(c.top, n)...)
	}
	c.nodes = dedupe(next)
	return nil
}

// ErrNoMatch is returned (wrapped) by Apply when a Require directive selects nothing.
var ErrNoMatch = errors.New("no node matches")

type requireDirective struct{ path string }

// Require is like XPath but fails with ErrNoMatch if path selects nothing.
func Require(path string) Directive { return requireDirective{path: path} }

func (d requireDirective) String() string { return "REQUIRE " + d.path }

func (d requireDirective) apply(c *cursor) error {
	if err := (xpathDirective{path: d.path}).apply(c); err != nil {
		return err
	}
	if len(c.nodes) == 0 {
		return ErrNoMatch
	}
	return nil
}

// --------------------------------------------------------------------------
// Parsing (used by the CLI)
// --------------------------------------------------------------------------

// ParseDirective parses the textual form of a directive:
//
//	add:NAME | addif:STEP | attr:NAME=VALUE | set:TEXT | remove | up | xpath:PATH | require:PATH
func ParseDirective(s string) (Directive, error) {
	op, arg, _ := strings.Cut(s, ":")
	switch strings.ToLower(strings.TrimSpace(op)) {
	case "add":
		return Add(arg), nil
	case "addif":
		return AddIf(arg), nil
	case "attr":
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("attr directive needs NAME=VALUE, got %q", arg)
		}
		return Attr(name, value), nil
	case "set":
		return Set(arg), nil
	case "remove":
		return Remove(), nil
	case "up":
		return Up(), nil
	case "xpath":
		return XPath(arg), nil
	case "require":
		return Require(arg), nil
	default:
		return nil, fmt.Errorf("unknown directive %q", s)
	}
}

// ParseDirectives parses every element of args with ParseDirective.
func ParseDirectives(args []string) ([]Directive, error) {
	dirs := make([]Directive, 0, len(args))
	for _, a := range args {
		d, err := ParseDirective(a)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}
