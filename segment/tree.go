package segment

import (
	"sort"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
)

// SeparateTreeEdges splits the relations of seg into a spanning forest and
// the remaining edges.
//
// Objects without parents are roots. A breadth-first walk from the roots
// keeps an edge parent→child as a tree edge only if child has no other
// remaining parent; otherwise the edge becomes non-tree and is detached.
// All results are sorted.
func SeparateTreeEdges(seg *Segmentation) (roots []string, tree, nonTree []ObjectPair) {
	parents := make(map[string][]string)
	children := make(map[string][]string)
	for _, p := range seg.RelationPairs() {
		parents[p.Child] = append(parents[p.Child], p.Parent)
		children[p.Parent] = append(children[p.Parent], p.Child)
	}

	for _, id := range seg.order {
		if _, ok := parents[id]; !ok {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)

	queue := append([]string(nil), roots...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, child := range append([]string(nil), children[next]...) {
			if len(parents[child]) == 1 {
				queue = append(queue, child)
				continue
			}
			nonTree = append(nonTree, ObjectPair{Parent: next, Child: child})
			children[next] = without(children[next], child)
			parents[child] = without(parents[child], next)
		}
	}

	for parent, cs := range children {
		for _, c := range cs {
			tree = append(tree, ObjectPair{Parent: parent, Child: c})
		}
	}
	sortPairs(tree)
	sortPairs(nonTree)
	return roots, tree, nonTree
}

func without(list []string, s string) []string {
	out := list[:0]
	for _, x := range list {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

// RemovedEdge is a primitive edge deleted by PruneNonTreeEdges.
type RemovedEdge struct {
	Key    core.EdgeKey
	Labels *core.LabelSet
}

// PruneNonTreeEdges removes from g every primitive edge that realizes a
// non-tree relation and returns what was removed, in edge-key order.
func PruneNonTreeEdges(g *core.Graph, ctx metric.Context) []RemovedEdge {
	seg := Extract(g, ctx)
	_, _, nonTree := SeparateTreeEdges(seg)

	var removed []RemovedEdge
	for _, pair := range nonTree {
		for _, p := range seg.Objects[pair.Parent].Primitives {
			for _, q := range seg.Objects[pair.Child].Primitives {
				ls := g.Edge(p, q)
				if ls == nil {
					continue
				}
				removed = append(removed, RemovedEdge{Key: core.EdgeKey{From: p, To: q}, Labels: ls.Clone()})
				g.RemoveEdge(p, q)
			}
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i].Key.Less(removed[j].Key) })
	return removed
}
