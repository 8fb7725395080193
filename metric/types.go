// SPDX-License-Identifier: MIT

package metric

import "errors"

// NoLabel is the sentinel label for "no label" / "no edge".
const NoLabel = "_"

// Metric names accepted by ByName.
const (
	NameDefault   = "default"
	NameSynonym   = "synonym"
	NameFiltered  = "filtered"
	NameIntersect = "intersect"
)

// ErrUnknownMetric is returned by ByName for an unrecognized metric name.
var ErrUnknownMetric = errors.New("metric: unknown metric name")

// Pair is one mismatched (A, B) label pair reported by a Metric.
// A comes from the first list passed to Compare, B from the second.
type Pair struct {
	A string
	B string
}

// Metric compares two label lists as sets.
//
// Compare returns cost 0 and no pairs when the lists agree. Implementations
// must be safe for concurrent use and must not retain or mutate the inputs.
type Metric interface {
	Compare(a, b []string) (cost int, diffs []Pair)
}

// Keyer is implemented by metrics that can reduce a label list to a canonical
// key: if Compare(a, b) agrees then Key(a) == Key(b).
type Keyer interface {
	Key(labels []string) string
}

// Context holds the metrics used for one comparison: Node for node labels
// (and segment labels), Edge for edge labels.
type Context struct {
	Node Metric
	Edge Metric
}

// NewContext returns a Context using Default for both nodes and edges.
func NewContext() Context {
	return Context{Node: Default{}, Edge: Default{}}
}

// WithMetrics returns a copy of c with the given node and edge metrics.
// A nil argument keeps the current metric.
func (c Context) WithMetrics(node, edge Metric) Context {
	if node != nil {
		c.Node = node
	}
	if edge != nil {
		c.Edge = edge
	}
	return c
}

// orDefault fills unset metrics with Default.
func (c Context) orDefault() Context {
	if c.Node == nil {
		c.Node = Default{}
	}
	if c.Edge == nil {
		c.Edge = Default{}
	}
	return c
}

// CompareNodes runs the node metric (Default when unset).
func (c Context) CompareNodes(a, b []string) (int, []Pair) {
	return c.orDefault().Node.Compare(a, b)
}

// CompareEdges runs the edge metric (Default when unset).
func (c Context) CompareEdges(a, b []string) (int, []Pair) {
	return c.orDefault().Edge.Compare(a, b)
}

// NodesAgree reports whether a and b agree under the node metric.
func (c Context) NodesAgree(a, b []string) bool {
	return Agree(c.orDefault().Node, a, b)
}

// EdgesAgree reports whether a and b agree under the edge metric.
func (c Context) EdgesAgree(a, b []string) bool {
	return Agree(c.orDefault().Edge, a, b)
}

// Interesting reports whether label counts for segmentation under the node
// metric, i.e. comparing it against nothing has a positive cost.
func (c Context) Interesting(label string) bool {
	cost, _ := c.CompareNodes([]string{label}, nil)
	return cost > 0
}

// Agree reports whether m finds no cost and no mismatched pairs between a and b.
func Agree(m Metric, a, b []string) bool {
	cost, diffs := m.Compare(a, b)
	return cost == 0 && len(diffs) == 0
}
