// Package core: accessors and elementary mutators for Graph.
//
// Read accessors return sorted slices so that every caller iterates in a
// deterministic order. Node/Edge return the live LabelSet; callers that keep
// or modify it must Clone it first.

package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Source returns the name of the resource the graph was read from.
func (g *Graph) Source() string { return g.source }

// Weight returns the graph weight used by Merge.
func (g *Graph) Weight() float64 { return g.weight }

// SetWeight sets the graph weight used by Merge.
func (g *Graph) SetWeight(w float64) { g.weight = w }

// HasError reports whether any issue was recorded on the graph.
func (g *Graph) HasError() bool { return g.err }

// Issues returns the recorded issues in order. Each wraps a sentinel error.
func (g *Graph) Issues() []error {
	out := make([]error, len(g.issues))
	copy(out, g.issues)
	return out
}

// Record flags the graph as erroneous and keeps err as an issue.
func (g *Graph) Record(err error) {
	g.addIssue(err)
	g.logger.Warn().Str("source", g.source).Err(err).Msg("label graph issue")
}

func (g *Graph) addIssue(err error) {
	g.err = true
	g.issues = append(g.issues, err)
}

// recordf wraps sentinel with a formatted message and records it.
func (g *Graph) recordf(sentinel error, format string, args ...interface{}) {
	g.Record(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}

// NodeCount returns the number of nodes, placeholders included.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of labeled edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// LabelCounts returns the total number of node labels and edge labels.
func (g *Graph) LabelCounts() (nodeLabels, edgeLabels int) {
	for _, ls := range g.nodes {
		nodeLabels += ls.Len()
	}
	for _, ls := range g.edges {
		edgeLabels += ls.Len()
	}
	return nodeLabels, edgeLabels
}

// NodeIDs returns all node IDs sorted lexicographically.
// Complexity: O(N log N)
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeKeys returns all edge keys sorted by From, then To.
// Complexity: O(E log E)
func (g *Graph) EdgeKeys() []EdgeKey {
	keys := make([]EdgeKey, 0, len(g.edges))
	for k := range g.edges {
		keys = append(keys, k)
	}
	SortEdgeKeys(keys)
	return keys
}

// SortEdgeKeys sorts keys in place by From, then To.
func SortEdgeKeys(keys []EdgeKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// HasNode reports whether id is a node of g.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the edge from→to carries labels.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[EdgeKey{From: from, To: to}]
	return ok
}

// Node returns the live label set of id, or nil.
func (g *Graph) Node(id string) *LabelSet { return g.nodes[id] }

// Edge returns the live label set of from→to, or nil.
func (g *Graph) Edge(from, to string) *LabelSet {
	return g.edges[EdgeKey{From: from, To: to}]
}

// EdgeByKey returns the live label set of k, or nil.
func (g *Graph) EdgeByKey(k EdgeKey) *LabelSet { return g.edges[k] }

// NodeLabels returns the label names of id in insertion order.
func (g *Graph) NodeLabels(id string) []string { return g.nodes[id].Names() }

// EdgeLabels returns the label names of from→to in insertion order.
func (g *Graph) EdgeLabels(from, to string) []string {
	return g.edges[EdgeKey{From: from, To: to}].Names()
}

// AddNode adds label (with weight) to node id, creating the node if needed.
//
// An id or label the .lg line format cannot hold is recorded as ErrParse.
func (g *Graph) AddNode(id, label string, weight float64) {
	g.checkField("node id", id)
	g.checkField("label", label)
	ls, ok := g.nodes[id]
	if !ok {
		ls = &LabelSet{}
		g.nodes[id] = ls
	}
	ls.Set(label, weight)
}

// SetNodeLabels replaces the labels of node id (creating it if needed).
func (g *Graph) SetNodeLabels(id string, ls *LabelSet) {
	g.nodes[id] = ls.Clone()
}

// AddEdge adds label (with weight) to the edge from→to.
//
// A self-edge is recorded as ErrSelfEdge and ignored. Missing endpoints are
// created with the NoLabel label and recorded as ErrStructural. Ids and
// labels the .lg format cannot hold are recorded as ErrParse.
func (g *Graph) AddEdge(from, to, label string, weight float64) error {
	g.checkField("node id", from)
	g.checkField("node id", to)
	g.checkField("label", label)
	if from == to {
		err := fmt.Errorf("%w: %s -> %s (%s)", ErrSelfEdge, from, to, label)
		g.Record(err)
		return err
	}
	g.addEdge(EdgeKey{From: from, To: to}, label, weight)
	g.ensureEndpoints(EdgeKey{From: from, To: to})
	return nil
}

// SetEdgeLabels replaces the labels of the edge k. Self-edges are rejected.
func (g *Graph) SetEdgeLabels(k EdgeKey, ls *LabelSet) error {
	if k.From == k.To {
		err := fmt.Errorf("%w: %s -> %s", ErrSelfEdge, k.From, k.To)
		g.Record(err)
		return err
	}
	g.edges[k] = ls.Clone()
	g.ensureEndpoints(k)
	return nil
}

// RemoveEdge deletes the edge from→to. Missing edges are a no-op.
func (g *Graph) RemoveEdge(from, to string) {
	k := EdgeKey{From: from, To: to}
	delete(g.edges, k)
	delete(g.absentEdges, k)
}

// addEdge inserts without endpoint checks; the parser defers them.
func (g *Graph) addEdge(k EdgeKey, label string, weight float64) {
	ls, ok := g.edges[k]
	if !ok {
		ls = &LabelSet{}
		g.edges[k] = ls
	}
	ls.Set(label, weight)
}

// checkField records ErrParse for s when it cannot be written as one field
// of a .lg record: commas and quotes split or quote the field, and leading
// or trailing space is trimmed on read.
func (g *Graph) checkField(kind, s string) {
	if strings.ContainsAny(s, ",\"\r\n") || strings.TrimSpace(s) != s {
		g.recordf(ErrParse, "%s %q cannot be written as a .lg field", kind, s)
	}
}

func (g *Graph) ensureEndpoints(k EdgeKey) {
	for _, id := range [2]string{k.From, k.To} {
		if _, ok := g.nodes[id]; !ok {
			g.nodes[id] = Single(NoLabel, DefaultWeight)
			g.recordf(ErrStructural, "node %q referenced by edge %s -> %s was never declared", id, k.From, k.To)
		}
	}
}

// String summarizes counts and the error flag.
func (g *Graph) String() string {
	nl, el := g.LabelCounts()
	return "Nodes: " + strconv.Itoa(len(g.nodes)) +
		" (labels: " + strconv.Itoa(nl) +
		")   Edges: " + strconv.Itoa(len(g.edges)) +
		" (labels: " + strconv.Itoa(el) +
		")   Error: " + strconv.FormatBool(g.err)
}
