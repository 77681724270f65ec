// Package doc provides the structured document model stored in document cells, a small path
// language to query documents and edit directives to modify them.
//
// Documents:
//
//	A Document is a tree of Nodes with at most one root. A Node has a name, ordered attributes,
//	text and children. A document without a root is empty; storing an empty document removes a cell.
//
// Paths:
//
//	Compile parses path expressions such as
//
//	    /catalog/comb[@id='42']
//	    comb[@owner='alice' and not(@archived)]
//	    /catalog/*[2]
//
//	Paths are XPath 1.0 expressions evaluated by github.com/antchfx/xpath over the node tree.
//	Only element nodes are selected. Absolute paths start at the document, relative paths at
//	the root (or a given node).
//
// Edit Directives:
//
//	Apply returns a modified copy of a document. Directives act on a cursor, a set of nodes
//	starting at the document itself:
//
//	    doc.Apply(d,
//	        doc.AddIf("catalog"),           // move to the root, create it if missing
//	        doc.AddIf("comb[@id='42']"),    // move to the entry, create it with id='42' if missing
//	        doc.Attr("owner", "alice"),     // set an attribute on the cursor nodes
//	    )
//
//	Available directives: Add, AddIf, Attr, Set, Remove, Up, XPath and Require. ParseDirective reads
//	their textual form ("add:NAME", "attr:NAME=VALUE", ...) used by the command line tool.
//
// Documents are plain values and not safe for concurrent modification. Apply never modifies its input.
package doc
