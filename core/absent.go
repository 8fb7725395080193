package core

import "sort"

// MatchAbsent reconciles the node sets of a and b: previous placeholders are
// removed from both graphs, then every node present in only one graph is
// added to the other with the Absent label. Edges are never inserted.
//
// Post-condition: a and b have identical node-id sets.
// Complexity: O(N log N)
func MatchAbsent(a, b *Graph) {
	a.RemoveAbsent()
	b.RemoveAbsent()
	a.addAbsent(b)
	b.addAbsent(a)
}

// addAbsent inserts placeholders for nodes of other missing from g.
func (g *Graph) addAbsent(other *Graph) {
	var added []string
	for id := range other.nodes {
		if _, ok := g.nodes[id]; ok {
			continue
		}
		if _, placeholder := other.absentNodes[id]; placeholder {
			continue
		}
		added = append(added, id)
	}
	if len(added) == 0 {
		return
	}
	sort.Strings(added)
	for _, id := range added {
		g.nodes[id] = Single(Absent, DefaultWeight)
		g.absentNodes[id] = struct{}{}
	}
	g.logger.Warn().
		Str("source", g.source).
		Str("partner", other.source).
		Strs("nodes", added).
		Msg("inserting ABSENT nodes")
}

// RemoveAbsent deletes the placeholders inserted by MatchAbsent.
func (g *Graph) RemoveAbsent() {
	for k := range g.absentEdges {
		delete(g.edges, k)
	}
	for id := range g.absentNodes {
		delete(g.nodes, id)
	}
	g.absentNodes = make(map[string]struct{})
	g.absentEdges = make(map[EdgeKey]struct{})
}

// AbsentNodes returns the sorted IDs of placeholder nodes.
func (g *Graph) AbsentNodes() []string {
	ids := make([]string, 0, len(g.absentNodes))
	for id := range g.absentNodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsAbsent reports whether id is a placeholder node.
func (g *Graph) IsAbsent(id string) bool {
	_, ok := g.absentNodes[id]
	return ok
}

// WithoutAbsent returns a copy of g without placeholder nodes and edges.
func (g *Graph) WithoutAbsent() *Graph {
	c := g.Clone()
	c.RemoveAbsent()
	return c
}

// CommitAbsent turns placeholder nodes into regular nodes: they keep their
// current labels and are no longer removed by RemoveAbsent.
func (g *Graph) CommitAbsent() {
	g.absentNodes = make(map[string]struct{})
	g.absentEdges = make(map[EdgeKey]struct{})
}
