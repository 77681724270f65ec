package doc

import (
	"fmt"
	"github.com/antchfx/xpath"
	"regexp"
	"strings"
)

// --------------------------------------------------------------------------
// Compiled Paths
// --------------------------------------------------------------------------

// Path is a compiled XPath expression evaluated over documents.
//
// Every XPath 1.0 location path works, typically:
//
//	/catalog/comb[@id='42']                     attribute equality
//	comb[@owner='alice' and not(@archived)]     and, or, not() and parentheses
//	/catalog/comb[title='first']                string value of a child
//	/catalog/*[2]                               position
//
// Only element nodes are returned, selected attributes or the document node itself are skipped.
// The string value of an element is the concatenated text of the element and its descendants.
type Path struct {
	source   string
	absolute bool
	expr     *xpath.Expr
}

// String returns the source of the path.
func (p *Path) String() string {
	return p.source
}

// Compile parses a path expression.
func Compile(path string) (*Path, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("invalid path %q: empty expression", path)
	}
	expr, err := xpath.Compile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return &Path{source: path, absolute: strings.HasPrefix(trimmed, "/"), expr: expr}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(path string) *Path {
	p, err := Compile(path)
	if err != nil {
		panic(err)
	}
	return p
}

// Eval evaluates the path against a document. Relative paths use the root as context.
func (p *Path) Eval(d *Document) []*Node {
	if d.IsEmpty() {
		return nil
	}
	top := &Node{Children: []*Node{d.Root}}
	if p.absolute {
		return p.evalAt(top, top)
	}
	return p.evalAt(top, d.Root)
}

// evalAt evaluates the path with the node at (part of the tree below top) as context.
func (p *Path) evalAt(top, at *Node) []*Node {
	nav := newNavigator(top, at)
	if nav == nil {
		return nil
	}
	var nodes []*Node
	it := p.expr.Select(nav)
	for it.MoveNext() {
		found, ok := it.Current().(*navigator)
		if !ok || found.NodeType() != xpath.ElementNode {
			continue
		}
		nodes = append(nodes, found.current())
	}
	return nodes
}

// --------------------------------------------------------------------------
// Steps (used by AddIf)
// --------------------------------------------------------------------------

var (
	namePattern     = `[A-Za-z_][A-Za-z0-9_.\-]*`
	literalPattern  = `(?:'[^']*'|"[^"]*")`
	equalityPattern = `@` + namePattern + `\s*=\s*` + literalPattern

	nameExpr = regexp.MustCompile(`^` + namePattern + `$`)
	stepExpr = regexp.MustCompile(`^(` + namePattern + `)((?:\s*\[\s*` + equalityPattern + `(?:\s+and\s+` + equalityPattern + `)*\s*\])*)\s*$`)
	eqExpr   = regexp.MustCompile(`@(` + namePattern + `)\s*=\s*(?:'([^']*)'|"([^"]*)")`)
)

// step is a single named step whose predicates are attribute equalities, e.g. comb[@id='42'].
type step struct {
	name  string
	path  *Path
	attrs []Attribute
}

// parseStep parses a step for AddIf. The step is matched as a relative path and its
// equalities are set on nodes created from it.
func parseStep(s string) (*step, error) {
	m := stepExpr.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, fmt.Errorf("%q is not a single named step with attribute equalities", s)
	}
	p, err := Compile(s)
	if err != nil {
		return nil, err
	}
	st := &step{name: m[1], path: p}
	for _, eq := range eqExpr.FindAllStringSubmatch(m[2], -1) {
		st.attrs = append(st.attrs, Attribute{Name: eq[1], Value: eq[2] + eq[3]})
	}
	return st, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// validName reports whether name can be used as a node or attribute name.
func validName(name string) bool {
	return nameExpr.MatchString(name)
}

// ValidPredicate reports whether s parses as a predicate expression.
func ValidPredicate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("empty predicate")
	}
	if _, err := xpath.Compile("*[" + s + "]"); err != nil {
		return fmt.Errorf("invalid predicate %q: %w", s, err)
	}
	return nil
}

// Quote returns s as a path literal. Strings containing both quote characters can't be expressed.
func Quote(s string) (string, error) {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'", nil
	case !strings.Contains(s, `"`):
		return `"` + s + `"`, nil
	default:
		return "", fmt.Errorf("literal %q contains both quote characters", s)
	}
}
