package core

// Clone returns a deep copy of g, including placeholders, issues and options.
// Complexity: O(N + E)
func (g *Graph) Clone() *Graph {
	c := &Graph{
		source:      g.source,
		weight:      g.weight,
		nodes:       make(map[string]*LabelSet, len(g.nodes)),
		edges:       make(map[EdgeKey]*LabelSet, len(g.edges)),
		absentNodes: make(map[string]struct{}, len(g.absentNodes)),
		absentEdges: make(map[EdgeKey]struct{}, len(g.absentEdges)),
		err:         g.err,
		issues:      g.Issues(),
		logger:      g.logger,
	}
	for id, ls := range g.nodes {
		c.nodes[id] = ls.Clone()
	}
	for k, ls := range g.edges {
		c.edges[k] = ls.Clone()
	}
	for id := range g.absentNodes {
		c.absentNodes[id] = struct{}{}
	}
	for k := range g.absentEdges {
		c.absentEdges[k] = struct{}{}
	}

	return c
}
