package core

import "sort"

// CombineFunc combines the weight v1 of a label in the receiver graph
// (graph weight w1) with the weight v2 of the same label in the other graph
// (graph weight w2).
type CombineFunc func(v1, w1, v2, w2 float64) float64

// WeightedSum returns w1*v1 + w2*v2.
func WeightedSum(v1, w1, v2, w2 float64) float64 {
	return w1*v1 + w2*v2
}

// Merge folds other into g after MatchAbsent(g, other).
//
// For a node or edge present in both graphs, labels present on both sides are
// combined with nodeFn/edgeFn and labels present on one side are scaled by
// that graph's weight. A node or edge present in only one graph keeps its
// labels scaled by that graph's weight and gains NoLabel weighted by the
// other graph's weight. Only g is modified (besides placeholders in other).
func (g *Graph) Merge(other *Graph, nodeFn, edgeFn CombineFunc) {
	MatchAbsent(g, other)
	w1, w2 := g.weight, other.weight

	for _, id := range unionIDs(g.nodes, other.nodes) {
		g.nodes[id] = mergeSets(g.nodes[id], w1, other.nodes[id], w2, nodeFn)
	}
	for _, k := range unionKeys(g.edges, other.edges) {
		g.edges[k] = mergeSets(g.edges[k], w1, other.edges[k], w2, edgeFn)
	}
}

// AddWeightedLabelValues merges other into g, summing weighted label values.
func (g *Graph) AddWeightedLabelValues(other *Graph) {
	g.Merge(other, WeightedSum, WeightedSum)
}

// mergeSets implements Merge for one node or edge. a or b may be nil.
func mergeSets(a *LabelSet, w1 float64, b *LabelSet, w2 float64, fn CombineFunc) *LabelSet {
	switch {
	case a == nil:
		out := b.Clone()
		out.Scale(w2)
		out.Set(NoLabel, w1)
		return out
	case b == nil:
		a.Scale(w1)
		a.Set(NoLabel, w2)
		return a
	}

	out := &LabelSet{items: make([]Label, 0, a.Len()+b.Len())}
	for _, l := range a.items {
		if v2, ok := b.Get(l.Name); ok {
			out.Set(l.Name, fn(l.Weight, w1, v2, w2))
		} else {
			out.Set(l.Name, w1*l.Weight)
		}
	}
	for _, l := range b.items {
		if !a.Has(l.Name) {
			out.Set(l.Name, w2*l.Weight)
		}
	}
	return out
}

// SelectMaxLabels keeps, for every node and edge, all labels sharing the
// maximum weight.
// Complexity: O(total labels)
func (g *Graph) SelectMaxLabels() {
	for id, ls := range g.nodes {
		g.nodes[id] = maxLabels(ls)
	}
	for k, ls := range g.edges {
		g.edges[k] = maxLabels(ls)
	}
}

func maxLabels(ls *LabelSet) *LabelSet {
	out := &LabelSet{}
	for i, l := range ls.items {
		switch {
		case i == 0 || l.Weight > out.items[0].Weight:
			out.items = append(out.items[:0], l)
		case l.Weight == out.items[0].Weight:
			out.items = append(out.items, l)
		}
	}
	return out
}

// InvertValues replaces every weight v by 1-v. Weights outside [0,1] are
// recorded as ErrInvariant and left untouched.
func (g *Graph) InvertValues() {
	for _, id := range g.NodeIDs() {
		ls := g.nodes[id]
		for i, l := range ls.items {
			if l.Weight < 0 || l.Weight > 1 {
				g.recordf(ErrInvariant, "cannot invert node %s label %q with value %v", id, l.Name, l.Weight)
				continue
			}
			ls.items[i].Weight = 1 - l.Weight
		}
	}
	for _, k := range g.EdgeKeys() {
		ls := g.edges[k]
		for i, l := range ls.items {
			if l.Weight < 0 || l.Weight > 1 {
				g.recordf(ErrInvariant, "cannot invert edge %s -> %s label %q with value %v", k.From, k.To, l.Name, l.Weight)
				continue
			}
			ls.items[i].Weight = 1 - l.Weight
		}
	}
}

// LabelMissingEdges adds a NoLabel edge for every ordered pair of distinct
// nodes without one.
// Complexity: O(N²)
func (g *Graph) LabelMissingEdges() {
	for a := range g.nodes {
		for b := range g.nodes {
			if a == b {
				continue
			}
			k := EdgeKey{From: a, To: b}
			if _, ok := g.edges[k]; !ok {
				g.edges[k] = Single(NoLabel, DefaultWeight)
			}
		}
	}
}

// PartitionSentinelEdges splits the edge keys of g into structural edges and
// sentinel edges (labeled only NoLabel). Both slices are sorted; g is not
// modified.
func (g *Graph) PartitionSentinelEdges() (structural, sentinel []EdgeKey) {
	for _, k := range g.EdgeKeys() {
		if g.edges[k].IsOnly(NoLabel) {
			sentinel = append(sentinel, k)
		} else {
			structural = append(structural, k)
		}
	}
	return structural, sentinel
}

func unionIDs(a, b map[string]*LabelSet) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for id := range a {
		seen[id] = struct{}{}
	}
	for id := range b {
		seen[id] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func unionKeys(a, b map[EdgeKey]*LabelSet) []EdgeKey {
	seen := make(map[EdgeKey]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	out := make([]EdgeKey, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	SortEdgeKeys(out)
	return out
}
