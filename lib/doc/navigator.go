package doc

import (
	"github.com/antchfx/xpath"
	"strings"
)

// --------------------------------------------------------------------------
// XPath Navigator
// --------------------------------------------------------------------------

// frame is a node on the path from the document node to the current node.
type frame struct {
	node  *Node
	index int // position of node in the children of its parent
}

// navigator implements xpath.NodeNavigator over a Node tree. stack[0] is the document node,
// a virtual node whose only child is the root. Text is exposed as the string value of
// elements, not as separate text nodes.
type navigator struct {
	stack []frame
	attr  int // index into the attributes of the current node, -1 if on the node itself
}

// newNavigator returns a navigator over the tree below top, positioned at the node at.
// It returns nil if at is not part of the tree.
func newNavigator(top, at *Node) *navigator {
	nav := &navigator{stack: []frame{{node: top}}, attr: -1}
	if at == top {
		return nav
	}
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		for i, child := range n.Children {
			nav.stack = append(nav.stack, frame{node: child, index: i})
			if child == at || walk(child) {
				return true
			}
			nav.stack = nav.stack[:len(nav.stack)-1]
		}
		return false
	}
	if !walk(top) {
		return nil
	}
	return nav
}

func (nav *navigator) current() *Node {
	return nav.stack[len(nav.stack)-1].node
}

func (nav *navigator) NodeType() xpath.NodeType {
	switch {
	case nav.attr >= 0:
		return xpath.AttributeNode
	case len(nav.stack) == 1:
		return xpath.RootNode
	default:
		return xpath.ElementNode
	}
}

func (nav *navigator) LocalName() string {
	if nav.attr >= 0 {
		return nav.current().Attrs[nav.attr].Name
	}
	if len(nav.stack) == 1 {
		return ""
	}
	return nav.current().Name
}

func (nav *navigator) Prefix() string {
	return ""
}

func (nav *navigator) Value() string {
	if nav.attr >= 0 {
		return nav.current().Attrs[nav.attr].Value
	}
	var sb strings.Builder
	var text func(n *Node)
	text = func(n *Node) {
		sb.WriteString(n.Text)
		for _, c := range n.Children {
			text(c)
		}
	}
	text(nav.current())
	return sb.String()
}

func (nav *navigator) Copy() xpath.NodeNavigator {
	c := &navigator{stack: make([]frame, len(nav.stack)), attr: nav.attr}
	copy(c.stack, nav.stack)
	return c
}

func (nav *navigator) MoveToRoot() {
	nav.stack = nav.stack[:1]
	nav.attr = -1
}

func (nav *navigator) MoveToParent() bool {
	if nav.attr >= 0 {
		nav.attr = -1
		return true
	}
	if len(nav.stack) == 1 {
		return false
	}
	nav.stack = nav.stack[:len(nav.stack)-1]
	return true
}

func (nav *navigator) MoveToNextAttribute() bool {
	if len(nav.stack) == 1 || nav.attr+1 >= len(nav.current().Attrs) {
		return false
	}
	nav.attr++
	return true
}

func (nav *navigator) MoveToChild() bool {
	if nav.attr >= 0 || len(nav.current().Children) == 0 {
		return false
	}
	nav.stack = append(nav.stack, frame{node: nav.current().Children[0], index: 0})
	return true
}

func (nav *navigator) MoveToFirst() bool {
	return nav.moveToSibling(0)
}

func (nav *navigator) MoveToNext() bool {
	if len(nav.stack) == 1 {
		return false
	}
	return nav.moveToSibling(nav.stack[len(nav.stack)-1].index + 1)
}

func (nav *navigator) MoveToPrevious() bool {
	if len(nav.stack) == 1 {
		return false
	}
	return nav.moveToSibling(nav.stack[len(nav.stack)-1].index - 1)
}

// moveToSibling moves to the child of the parent at index i
func (nav *navigator) moveToSibling(i int) bool {
	if nav.attr >= 0 || len(nav.stack) == 1 {
		return false
	}
	parent := nav.stack[len(nav.stack)-2].node
	if i < 0 || i >= len(parent.Children) {
		return false
	}
	nav.stack[len(nav.stack)-1] = frame{node: parent.Children[i], index: i}
	return true
}

func (nav *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.stack[0].node != nav.stack[0].node {
		return false
	}
	nav.stack = append(nav.stack[:0:0], o.stack...)
	nav.attr = o.attr
	return true
}
