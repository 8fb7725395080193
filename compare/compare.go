package compare

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/segment"
)

var noEdge = []string{core.NoLabel}

// Compare computes metrics and diffs between out and target under ctx.
//
// Both graphs are reconciled with core.MatchAbsent for the duration of the
// call and restored before returning. Graphs flagged with errors still
// compare.
func Compare(out, target *core.Graph, ctx metric.Context, opts ...Option) *Result {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	allNodes := unionNodes(out, target)
	numNodes := len(allNodes)
	numEdges := numNodes * (numNodes - 1)
	nSegRelEdges := len(segment.Extract(target, ctx).Relations)

	core.MatchAbsent(out, target)
	defer func() {
		out.RemoveAbsent()
		target.RemoveAbsent()
	}()
	inserted := len(out.AbsentNodes())+len(target.AbsentNodes()) > 0

	r := &Result{
		SegmentDiffs:  make(map[string]SegmentDiff),
		RelationDiffs: make(map[segment.ObjectPair]*core.LabelSet),
	}

	// Node labels.
	dC := 0
	nodeErrors := make(map[string]struct{})
	for _, id := range allNodes {
		cost, diffs := ctx.CompareNodes(out.NodeLabels(id), target.NodeLabels(id))
		if cost == 0 {
			continue
		}
		dC += cost
		nodeErrors[id] = struct{}{}
		for _, d := range diffs {
			r.NodeDiffs = append(r.NodeDiffs, NodeDiff{ID: id, Out: d.A, Target: d.B})
		}
	}

	// Edge labels, two-sided: an edge missing on one side is "_".
	dL := 0
	edgeNodeErrors := make(map[string]struct{})
	addEdge := func(k core.EdgeKey, cost int, diffs []metric.Pair, flipped bool) {
		dL += cost
		if cost > 0 {
			edgeNodeErrors[k.From] = struct{}{}
			edgeNodeErrors[k.To] = struct{}{}
		}
		for _, d := range diffs {
			if flipped {
				d.A, d.B = d.B, d.A
			}
			r.EdgeDiffs = append(r.EdgeDiffs, EdgeDiff{Key: k, Out: d.A, Target: d.B})
		}
	}
	for _, k := range out.EdgeKeys() {
		if target.EdgeByKey(k) == nil {
			cost, diffs := ctx.CompareEdges(out.EdgeByKey(k).Names(), noEdge)
			addEdge(k, cost, diffs, false)
		}
	}
	for _, k := range target.EdgeKeys() {
		if out.EdgeByKey(k) == nil {
			cost, diffs := ctx.CompareEdges(target.EdgeByKey(k).Names(), noEdge)
			addEdge(k, cost, diffs, true)
		}
	}
	for _, k := range out.EdgeKeys() {
		if t := target.EdgeByKey(k); t != nil {
			cost, diffs := ctx.CompareEdges(out.EdgeByKey(k).Names(), t.Names())
			if cost > 0 {
				addEdge(k, cost, diffs, false)
			}
		}
	}
	sort.SliceStable(r.EdgeDiffs, func(i, j int) bool { return r.EdgeDiffs[i].Key.Less(r.EdgeDiffs[j].Key) })

	seg := compareSegments(out, target, ctx)
	r.SegmentDiffs = seg.diffs
	r.CorrectSegments = seg.correct
	r.RelationDiffs = seg.relationDiffs

	dS := seg.edgeDiffCount - seg.edgeDiffClassCount

	nodeError := len(nodeErrors)
	for id := range edgeNodeErrors {
		if _, ok := nodeErrors[id]; !ok {
			nodeError++
		}
	}

	// A single node missing from one side scores total error, D_E = 1. One
	// edge stands in for the edge denominator, which is zero for one node.
	eL, eS, eEdges := float64(dL), float64(dS), float64(numEdges)
	if out.NodeCount() == 1 && inserted {
		eL, eS, eEdges = 1, 1, 1
	}
	dE := 0.0
	if eEdges > 0 {
		dE += math.Sqrt(eS/eEdges) + math.Sqrt(eL/eEdges)
	}
	if numNodes > 0 {
		dE += float64(dC) / float64(numNodes)
	}
	dE /= 3

	r.Metrics = Metrics{
		{MetricDB, float64(dC + dL)},
		{MetricDC, float64(dC)},
		{MetricDL, float64(dL)},
		{MetricDR, float64(dL - dS)},
		{MetricDS, float64(dS)},
		{MetricDE, dE},
		{MetricNodes, float64(numNodes)},
		{MetricEdges, float64(numEdges)},
		{MetricSegRelEdges, float64(nSegRelEdges)},
		{MetricDPairs, float64(countEdgePairs(r.EdgeDiffs))},
		{MetricSegPairErrors, float64(countSegmentPairs(r.SegmentDiffs))},
		{MetricNodeCorrect, float64(numNodes - nodeError)},
	}
	r.Metrics = append(r.Metrics, seg.metrics...)

	o.logger.Debug().
		Str("output", out.Source()).
		Str("target", target.Source()).
		Int("D_C", dC).
		Int("D_L", dL).
		Int("D_S", dS).
		Float64("D_E", dE).
		Msg("compared label graphs")

	return r
}

func unionNodes(a, b *core.Graph) []string {
	seen := make(map[string]struct{})
	for _, id := range a.NodeIDs() {
		seen[id] = struct{}{}
	}
	for _, id := range b.NodeIDs() {
		seen[id] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// countEdgePairs counts unordered primitive pairs with an edge diff.
func countEdgePairs(diffs []EdgeDiff) int {
	pairs := make(map[core.EdgeKey]struct{})
	for _, d := range diffs {
		if _, ok := pairs[d.Key.Reverse()]; !ok {
			pairs[d.Key] = struct{}{}
		}
	}
	return len(pairs)
}

// countSegmentPairs counts unordered primitive pairs with a segment diff.
func countSegmentPairs(diffs map[string]SegmentDiff) int {
	pairs := make(map[core.EdgeKey]struct{})
	add := func(a, b string) {
		if a == b {
			return
		}
		if _, ok := pairs[core.EdgeKey{From: b, To: a}]; !ok {
			pairs[core.EdgeKey{From: a, To: b}] = struct{}{}
		}
	}
	for prim, d := range diffs {
		for _, p := range d.Out {
			add(prim, p)
		}
		for _, p := range d.Target {
			add(prim, p)
		}
	}
	return len(pairs)
}
