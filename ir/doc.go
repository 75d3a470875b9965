// Package ir provides the document node shared by the front ends and the
// decoding engine.
//
// A [Node] is one of three kinds: a scalar carrying its literal text, a
// sequence of nodes, or a mapping whose keys and values are held in
// parallel slices in document order. Every node carries a YAML core tag
// ("!!int", "!!str", "!!seq", ...), either written explicitly in the source
// or resolved from the text of a plain scalar with [ResolveTag], and the
// source [Pos] it was read from.
//
// Nodes link to their parent so that [Node.Path] can render a location such
// as
//
//	$.items[2].name
//
// for diagnostics without the caller tracking where it is in the tree.
//
// The helpers [ParseBool], [ParseInt], [ParseFloat] and [ParseTimestamp]
// decode scalar text the way the tag resolution classifies it.
package ir
