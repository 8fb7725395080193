// Package smallgraph holds tiny labeled graphs used as confusion-matrix keys.
//
// A SmallGraph maps node IDs to label lists and directed (from, to) pairs to
// label lists. It can mark nodes and edges as erroneous for reporting; marks
// never affect equality.
//
// Equality between small graphs is isomorphism under a metric.Context: node
// labels are compared with the node metric, edge labels with the edge metric,
// and a missing edge stands for the "_" label. The search tries every
// assignment of one graph's nodes to the other's, so graphs must stay small
// (a handful of nodes).
//
// The package also enumerates connected substructures of a core.Graph and
// lists those whose output and ground-truth versions disagree, either at
// primitive level (CompareSubStruct) or at object level
// (CompareSegmentsStruct).
package smallgraph
