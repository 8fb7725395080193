package smallgraph

import (
	"sort"
	"strings"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/segment"
)

// Mismatch pairs the target and output versions of one substructure.
type Mismatch struct {
	Target *SmallGraph
	Output *SmallGraph
}

// ObjectError is one object-level substructure with a segmentation, class or
// relation error. Object is built over target object IDs; Target and Output
// cover the primitives of those objects.
type ObjectError struct {
	Object *SmallGraph
	Target *SmallGraph
	Output *SmallGraph
}

// SubGraph returns the small graph induced by ids in g: their sorted node
// labels and every edge between them.
func SubGraph(g *core.Graph, ids []string) *SmallGraph {
	sg := New()
	in := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		in[id] = struct{}{}
		sg.SetNode(id, g.Node(id).SortedNames()...)
	}
	for _, k := range g.EdgeKeys() {
		_, okFrom := in[k.From]
		_, okTo := in[k.To]
		if okFrom && okTo {
			sg.SetEdge(k.From, k.To, g.EdgeByKey(k).SortedNames()...)
		}
	}
	return sg
}

// SubStructures enumerates the connected substructures of g whose node count
// is one of sizes.
//
// Substructures of size 1 are the single nodes. Each larger level extends
// every substructure of the previous level by one node reached over an
// outgoing edge; node sets already produced at that level are skipped.
// Results come in a deterministic order.
func SubStructures(g *core.Graph, sizes ...int) []*SmallGraph {
	want := make(map[int]bool, len(sizes))
	maxSize := 0
	for _, s := range sizes {
		want[s] = true
		if s > maxSize {
			maxSize = s
		}
	}
	if maxSize == 0 {
		return nil
	}

	var out []*SmallGraph
	level := make([][]string, 0, g.NodeCount())
	for _, id := range g.NodeIDs() {
		level = append(level, []string{id})
		if want[1] {
			out = append(out, SubGraph(g, []string{id}))
		}
	}

	keys := g.EdgeKeys()
	for d := 2; d <= maxSize; d++ {
		seen := make(map[string]struct{})
		var next [][]string
		for _, sub := range level {
			in := make(map[string]struct{}, len(sub))
			for _, id := range sub {
				in[id] = struct{}{}
			}
			for _, k := range keys {
				_, fromIn := in[k.From]
				_, toIn := in[k.To]
				if !fromIn || toIn {
					continue
				}
				grown := append(append([]string(nil), sub...), k.To)
				sort.Strings(grown)
				key := strings.Join(grown, ",")
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				next = append(next, grown)
				if want[d] {
					out = append(out, SubGraph(g, grown))
				}
			}
		}
		level = next
	}
	return out
}

// CompareSubStruct lists the substructures of target (sizes as in
// SubStructures) whose output version, over the same primitives, is not
// isomorphic to them. Both graphs are reconciled with core.MatchAbsent for
// the duration of the call.
func CompareSubStruct(out, target *core.Graph, ctx metric.Context, sizes ...int) []Mismatch {
	core.MatchAbsent(out, target)
	defer func() {
		out.RemoveAbsent()
		target.RemoveAbsent()
	}()

	var errs []Mismatch
	for _, st := range SubStructures(target, sizes...) {
		og := SubGraph(out, st.NodeIDs())
		if !Isomorphic(st, og, ctx) {
			errs = append(errs, Mismatch{Target: st, Output: og})
		}
	}
	return errs
}

// CompareSegmentsStruct lists object-level substructures of gt (sizes as in
// SubStructures) that touch an error: an object that is missing, wrongly
// segmented or wrongly labeled in out, or a relation whose primitive edges
// disagree. Both graphs are reconciled with core.MatchAbsent for the
// duration of the call.
func CompareSegmentsStruct(out, gt *core.Graph, ctx metric.Context, sizes ...int) []ObjectError {
	core.MatchAbsent(out, gt)
	defer func() {
		out.RemoveAbsent()
		gt.RemoveAbsent()
	}()

	s1 := segment.Extract(out, ctx)
	s2 := segment.Extract(gt, ctx)

	// Target objects with a segmentation or class error.
	bad := make(map[string]struct{})
	correct := make(map[string]struct{})
	for _, prim := range gt.NodeIDs() {
		o1, ok1 := firstObject(s1, prim)
		o2, ok2 := firstObject(s2, prim)
		if !ok2 {
			continue
		}
		if out.IsAbsent(prim) || gt.IsAbsent(prim) || !ok1 {
			if out.NodeCount() > 1 {
				bad[o2.ID] = struct{}{}
			}
			continue
		}
		if o1.Key() != o2.Key() {
			bad[o2.ID] = struct{}{}
		} else {
			correct[o2.ID] = struct{}{}
		}
	}
	for id := range correct {
		first := s2.Objects[id].Primitives[0]
		if !ctx.NodesAgree(out.NodeLabels(first), gt.NodeLabels(first)) {
			bad[id] = struct{}{}
		}
	}

	// Object graph over target objects, labeled from their first primitive.
	objects := core.New(core.WithSource(gt.Source()))
	for _, id := range s2.ObjectIDs() {
		objects.SetNodeLabels(id, gt.Node(s2.Objects[id].Primitives[0]))
	}
	badRel := make(map[core.EdgeKey]struct{})
	for _, pair := range s2.RelationPairs() {
		parent, child := s2.Objects[pair.Parent], s2.Objects[pair.Child]
		k := core.EdgeKey{From: pair.Parent, To: pair.Child}
		_ = objects.SetEdgeLabels(k, gt.Edge(parent.Primitives[0], child.Primitives[0]))

	pairs:
		for _, p := range parent.Primitives {
			for _, c := range child.Primitives {
				lo := out.Edge(p, c)
				if lo == nil || !ctx.EdgesAgree(lo.Names(), gt.EdgeLabels(p, c)) {
					badRel[k] = struct{}{}
					break pairs
				}
			}
		}
	}

	var errs []ObjectError
	for _, sg := range SubStructures(objects, sizes...) {
		if !touches(sg, bad, badRel) {
			continue
		}
		var prims []string
		for _, id := range sg.NodeIDs() {
			prims = append(prims, s2.Objects[id].Primitives...)
		}
		sort.Strings(prims)
		errs = append(errs, ObjectError{
			Object: sg,
			Target: SubGraph(gt, prims),
			Output: SubGraph(out, prims),
		})
	}
	return errs
}

// firstObject returns the object holding prim under its smallest label.
func firstObject(s *segment.Segmentation, prim string) (*segment.Object, bool) {
	byLabel := s.PrimitiveObjects[prim]
	if len(byLabel) == 0 {
		return nil, false
	}
	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return s.Objects[byLabel[labels[0]]], true
}

func touches(sg *SmallGraph, nodes map[string]struct{}, edges map[core.EdgeKey]struct{}) bool {
	for _, id := range sg.NodeIDs() {
		if _, ok := nodes[id]; ok {
			return true
		}
	}
	for _, k := range sg.EdgeKeys() {
		if _, ok := edges[k]; ok {
			return true
		}
	}
	return false
}
