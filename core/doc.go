// Package core provides the label graph: a directed graph over primitives
// where every node and every edge carries a set of weighted labels.
//
// A label graph G = (N, E) is read from the line-oriented .lg exchange format
// and supports:
//
//   - Multiple simultaneous labels per node/edge, each with a weight in [0,1]
//     (LabelSet keeps insertion order; a repeated label replaces its weight).
//   - Object records (O) that label a group of primitives and synthesize the
//     clique of merge edges between them.
//   - Relation records (R / EO) expanded to every primitive pair across two
//     objects.
//   - The "*" merge-all edge label, resolved to the endpoints' shared label.
//   - Absent-node reconciliation against a comparison partner (MatchAbsent).
//   - Weighted graph merging, max-label selection and value inversion.
//
// Record format:
//
//	# comment
//	N, id, label[, weight]                  primitive with one label
//	E, id1, id2, label[, weight]            directed edge label ("*" = merge)
//	O, objId, label, weight, id1, …, idn    object over primitives
//	R, objId1, objId2, label, weight        relation between objects (EO too)
//
// Error model:
//
// Nothing in this package panics or aborts on malformed input. Every problem
// sets the graph's error flag and appends an issue wrapping one of the
// sentinel errors, then processing continues best-effort:
//
//	ErrParse          – unparsable field (e.g. weight)
//	ErrRecordLength   – record shorter than its type's minimum
//	ErrUnknownRecord  – unknown record tag
//	ErrResource       – source cannot be opened or read (empty graph)
//	ErrStructural     – self-edge, implicit node, unknown object id
//	ErrAmbiguousMerge – "*" edge between nodes without one shared label
//	ErrInvariant      – invalid weight (e.g. inverting a value outside [0,1])
//
// Determinism:
//
//	NodeIDs(), EdgeKeys() and Serialize() are always sorted, so iteration
//	and output never depend on map order.
//
// Concurrency:
//
//	A Graph is not safe for concurrent mutation. Comparisons own both graphs
//	for their duration; read-only use from several goroutines is safe.
package core
