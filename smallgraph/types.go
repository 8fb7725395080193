package smallgraph

import (
	"errors"
	"sort"

	"github.com/katalvlaran/lgeval/core"
)

// ErrFormat is returned by Parse for a malformed encoding.
var ErrFormat = errors.New("smallgraph: malformed encoding")

// Node is one (ID, labels) entry for FromLists.
type Node struct {
	ID     string
	Labels []string
}

// Edge is one (From, To, labels) entry for FromLists.
type Edge struct {
	From   string
	To     string
	Labels []string
}

// SmallGraph is a labeled directed graph with error marks.
type SmallGraph struct {
	nodes       map[string][]string
	edges       map[core.EdgeKey][]string
	markedNodes map[string]struct{}
	markedEdges map[core.EdgeKey]struct{}
}

// New returns an empty SmallGraph.
func New() *SmallGraph {
	return &SmallGraph{
		nodes:       make(map[string][]string),
		edges:       make(map[core.EdgeKey][]string),
		markedNodes: make(map[string]struct{}),
		markedEdges: make(map[core.EdgeKey]struct{}),
	}
}

// FromLists builds a SmallGraph from node and edge lists. Later entries for
// the same ID or pair replace earlier ones.
func FromLists(nodes []Node, edges []Edge) *SmallGraph {
	sg := New()
	for _, n := range nodes {
		sg.SetNode(n.ID, n.Labels...)
	}
	for _, e := range edges {
		sg.SetEdge(e.From, e.To, e.Labels...)
	}
	return sg
}

// SetNode sets the labels of node id.
func (sg *SmallGraph) SetNode(id string, labels ...string) {
	sg.nodes[id] = append([]string(nil), labels...)
}

// SetEdge sets the labels of the edge from→to. Endpoints are not created.
func (sg *SmallGraph) SetEdge(from, to string, labels ...string) {
	sg.edges[core.EdgeKey{From: from, To: to}] = append([]string(nil), labels...)
}

// NodeCount returns the number of nodes.
func (sg *SmallGraph) NodeCount() int { return len(sg.nodes) }

// EdgeCount returns the number of edges.
func (sg *SmallGraph) EdgeCount() int { return len(sg.edges) }

// NodeLabels returns the labels of id, or nil.
func (sg *SmallGraph) NodeLabels(id string) []string { return sg.nodes[id] }

// EdgeLabels returns the labels of from→to, or nil.
func (sg *SmallGraph) EdgeLabels(from, to string) []string {
	return sg.edges[core.EdgeKey{From: from, To: to}]
}

// HasEdge reports whether from→to exists.
func (sg *SmallGraph) HasEdge(from, to string) bool {
	_, ok := sg.edges[core.EdgeKey{From: from, To: to}]
	return ok
}

// NodeIDs returns node IDs in sorted order.
func (sg *SmallGraph) NodeIDs() []string {
	ids := make([]string, 0, len(sg.nodes))
	for id := range sg.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeKeys returns edge keys sorted by (From, To).
func (sg *SmallGraph) EdgeKeys() []core.EdgeKey {
	keys := make([]core.EdgeKey, 0, len(sg.edges))
	for k := range sg.edges {
		keys = append(keys, k)
	}
	core.SortEdgeKeys(keys)
	return keys
}

// Labels returns every node label (nodes in ID order), then every edge label
// (edges in key order), then "_".
func (sg *SmallGraph) Labels() []string {
	var out []string
	for _, id := range sg.NodeIDs() {
		out = append(out, sg.nodes[id]...)
	}
	for _, k := range sg.EdgeKeys() {
		out = append(out, sg.edges[k]...)
	}
	return append(out, core.NoLabel)
}

// MarkNodes marks the nodes of sg that appear in ids.
func (sg *SmallGraph) MarkNodes(ids map[string]struct{}) {
	for id := range sg.nodes {
		if _, ok := ids[id]; ok {
			sg.markedNodes[id] = struct{}{}
		}
	}
}

// MarkEdges marks the edges of sg that appear in keys.
func (sg *SmallGraph) MarkEdges(keys map[core.EdgeKey]struct{}) {
	for k := range sg.edges {
		if _, ok := keys[k]; ok {
			sg.markedEdges[k] = struct{}{}
		}
	}
}

// IsMarkedNode reports whether id is marked.
func (sg *SmallGraph) IsMarkedNode(id string) bool {
	_, ok := sg.markedNodes[id]
	return ok
}

// IsMarkedEdge reports whether from→to is marked.
func (sg *SmallGraph) IsMarkedEdge(from, to string) bool {
	_, ok := sg.markedEdges[core.EdgeKey{From: from, To: to}]
	return ok
}
