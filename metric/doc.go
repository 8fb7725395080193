// SPDX-License-Identifier: MIT

// Package metric defines how label sets are compared.
//
// A Metric compares two label lists (treated as sets) and reports a cost and
// the list of mismatched label pairs. Every comparison in lgeval runs under a
// Context, which carries one Metric for node labels and one for edge labels.
// The Context is immutable and is passed explicitly to the segment, compare,
// smallgraph and confusion packages; there is no package-level metric state.
//
// Metrics:
//
//	Default   – symmetric difference; cost = max(|A∖B|, |B∖A|)
//	Synonym   – fold labels through a substitution table, then Default
//	Filtered  – drop Ignore labels, keep only Select labels (if any), then Default
//	Intersect – cost 0 if the sets share any label, otherwise 1
//
// Mismatched pairs are the Cartesian product of the two difference sets.
// An empty side is represented by the NoLabel sentinel "_":
//
//	Default.Compare([]string{"x"}, nil) → 1, [(x,_)]
//
// Metrics that can summarize a label list by a canonical string implement
// Keyer. Two lists that agree under such a metric always share a key, which
// lets the confusion package bucket small graphs before running the
// permutation search.
package metric
