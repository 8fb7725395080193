package segment

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
)

// Extract segments g under the node metric of ctx.
//
// Steps:
//  1. Split edges into structural and "_"-only; the latter are ignored.
//  2. Per interesting label, build an undirected graph over the primitives
//     carrying it, with an edge for every structural edge whose label set
//     and both endpoints carry the label; its connected components are the
//     candidate segments.
//  3. Identical primitive sets become one object holding all their labels.
//  4. Derive relations between objects (see doc.go).
//
// Complexity: O(N + E·L) for segmentation, O(E·S²·P²) for relations where S
// is the number of objects per primitive and P the object size.
func Extract(g *core.Graph, ctx metric.Context) *Segmentation {
	ids := g.NodeIDs()
	structural, _ := g.PartitionSentinelEdges()
	interesting := newInterestCache(ctx)

	index := make(map[string]int64, len(ids))
	for i, id := range ids {
		index[id] = int64(i)
	}

	byLabel := make(map[string]*simple.UndirectedGraph)
	for _, id := range ids {
		for _, l := range g.NodeLabels(id) {
			if !interesting.is(l) {
				continue
			}
			ug, ok := byLabel[l]
			if !ok {
				ug = simple.NewUndirectedGraph()
				byLabel[l] = ug
			}
			ug.AddNode(simple.Node(index[id]))
		}
	}

	for _, k := range structural {
		from, to := g.Node(k.From), g.Node(k.To)
		for _, l := range g.EdgeByKey(k).Names() {
			if !from.Has(l) || !to.Has(l) || !interesting.is(l) {
				continue
			}
			ug := byLabel[l]
			if !ug.HasEdgeBetween(index[k.From], index[k.To]) {
				ug.SetEdge(ug.NewEdge(simple.Node(index[k.From]), simple.Node(index[k.To])))
			}
		}
	}

	// members[prim][label] is the sorted primitive set of prim's component.
	members := make(map[string]map[string][]string, len(ids))
	for l, ug := range byLabel {
		for _, comp := range topo.ConnectedComponents(ug) {
			prims := make([]string, len(comp))
			for i, n := range comp {
				prims[i] = ids[n.ID()]
			}
			sort.Strings(prims)
			for _, p := range prims {
				if members[p] == nil {
					members[p] = make(map[string][]string)
				}
				members[p][l] = prims
			}
		}
	}

	seg := newSegmentation()
	roots := make(map[string]struct{})
	for _, id := range ids {
		seg.PrimitiveObjects[id] = make(map[string]string)
		for _, l := range g.NodeLabels(id) {
			prims, ok := members[id][l]
			if !ok {
				continue
			}
			key := PrimitiveKey(prims)
			objID, ok := seg.byKey[key]
			if !ok {
				objID = "Obj" + strconv.Itoa(len(seg.order))
				seg.Objects[objID] = &Object{ID: objID, Primitives: prims}
				seg.byKey[key] = objID
				seg.order = append(seg.order, objID)
				roots[objID] = struct{}{}
			}
			if obj := seg.Objects[objID]; !obj.HasLabel(l) {
				obj.Labels = append(obj.Labels, l)
			}
			seg.PrimitiveObjects[id][l] = objID
		}
	}

	seg.addRelations(g, structural, interesting, roots)

	for _, id := range seg.order {
		if _, ok := roots[id]; ok {
			seg.Roots = append(seg.Roots, id)
		}
	}
	return seg
}

// addRelations confirms relation labels between object pairs. A label is
// kept only if every primitive pair across both objects carries it.
func (s *Segmentation) addRelations(g *core.Graph, structural []core.EdgeKey, interesting *interestCache, roots map[string]struct{}) {
	for _, k := range structural {
		edge := g.EdgeByKey(k)
		from, to := g.Node(k.From), g.Node(k.To)

		var candidates []string
		for _, l := range edge.Names() {
			if !from.Has(l) && !to.Has(l) {
				candidates = append(candidates, l)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		for _, l1 := range sortedLabels(s.PrimitiveObjects[k.From]) {
			parent := s.PrimitiveObjects[k.From][l1]
			for _, l2 := range sortedLabels(s.PrimitiveObjects[k.To]) {
				child := s.PrimitiveObjects[k.To][l2]
				if parent == child {
					continue
				}
				shared := sharedLabels(g, candidates, s.Objects[parent].Primitives, s.Objects[child].Primitives)
				if len(shared) == 0 {
					continue
				}

				delete(roots, child)
				pair := ObjectPair{Parent: parent, Child: child}
				for _, l := range shared {
					if !interesting.is(l) {
						continue
					}
					ls, ok := s.Relations[pair]
					if !ok {
						ls = &core.LabelSet{}
						s.Relations[pair] = ls
					}
					w, _ := edge.Get(l)
					cur, _ := ls.Get(l)
					ls.Set(l, cur+w)
				}
			}
		}
	}
}

// sharedLabels intersects candidates with the labels of every edge from a
// primitive of ps to a primitive of qs. A missing edge empties the result.
func sharedLabels(g *core.Graph, candidates, ps, qs []string) []string {
	out := append([]string(nil), candidates...)
	for _, p := range ps {
		for _, q := range qs {
			e := g.Edge(p, q)
			kept := out[:0]
			for _, l := range out {
				if e.Has(l) {
					kept = append(kept, l)
				}
			}
			out = kept
			if len(out) == 0 {
				return nil
			}
		}
	}
	return out
}

func sortedLabels(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for l := range m {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// interestCache memoizes metric.Context.Interesting per label.
type interestCache struct {
	ctx  metric.Context
	seen map[string]bool
}

func newInterestCache(ctx metric.Context) *interestCache {
	return &interestCache{ctx: ctx, seen: make(map[string]bool)}
}

func (c *interestCache) is(label string) bool {
	v, ok := c.seen[label]
	if !ok {
		v = c.ctx.Interesting(label)
		c.seen[label] = v
	}
	return v
}
