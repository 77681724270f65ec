// Package catalog implements the index of comb identifiers every hive keeps.
//
// A catalog is a document stored in a single cell (the hive level cell "_catalog"). It holds one
// entry per existing comb, identified by its id attribute, plus any number of further attributes
// that can be used in queries:
//
//	<catalog>
//	  <comb id='7c1f...' owner='alice'/>
//	  <comb id='orders-2024' archived='true'/>
//	</catalog>
//
// Operations:
//
//   - Create(id) adds an entry. Creating an existing id is an idempotent no-op, implemented as a
//     single Modify with an add-if-absent directive.
//   - Add() assigns a fresh identifier (a random UUID) and creates it.
//   - Delete(id) removes an entry, unknown ids are ignored.
//   - List(query) resolves identifiers with a path predicate such as "@id='42'".
//   - AddAttribute and Attributes manage entry attributes.
//
// Every mutation is a single Modify of the catalog cell. On a synchronized farm Modify is executed
// inside the exclusive section of the cell, which makes each catalog mutation atomic. Sequences of
// operations can be made atomic with farm.Atomically on the catalog cell.
//
// The catalog document is read through the same cell as any other content, so on a cached farm it is
// cached like every other document.
package catalog
