// Package confusion aggregates structure confusions between small graphs.
//
// Keys are smallgraph.SmallGraph values compared by isomorphism, so two
// confusions count together whenever their graphs are equal up to node
// renaming. Dict keeps entries in insertion order and buckets them by a
// cheap canonical invariant (node count plus the node metric key of the
// flattened labels) so the permutation search only runs inside a bucket.
// Without a metric.Keyer every entry shares one bucket.
//
// Matrix counts (target, output) pairs at primitive level; ObjectMatrix adds
// an outer level keyed by the object graph the confusion belongs to.
package confusion
