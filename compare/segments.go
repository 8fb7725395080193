package compare

import (
	"sort"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/segment"
)

// segmentResult is the output of compareSegments.
type segmentResult struct {
	edgeDiffCount      int
	edgeDiffClassCount int
	diffs              map[string]SegmentDiff
	correct            []string
	relationDiffs      map[segment.ObjectPair]*core.LabelSet
	metrics            Metrics
}

// compareSegments compares the segmentations of out and target, which must
// share their node set (after core.MatchAbsent).
func compareSegments(out, target *core.Graph, ctx metric.Context) segmentResult {
	s1 := segment.Extract(out, ctx)
	s2 := segment.Extract(target, ctx)

	res := segmentResult{
		diffs:         make(map[string]SegmentDiff),
		relationDiffs: make(map[segment.ObjectPair]*core.LabelSet),
	}

	// Per-primitive merge neighbours, compared as symbol labels.
	undirected := make(map[core.EdgeKey]struct{})
	for _, prim := range out.NodeIDs() {
		from1 := mergeNeighbours(out, s1, prim)
		from2 := mergeNeighbours(target, s2, prim)
		diff1 := make(map[string]struct{})
		diff2 := make(map[string]struct{})

		for _, p := range sortedKeys(from1) {
			l2, common := from2[p]
			if !common {
				cost, _ := ctx.CompareNodes(from1[p], nil)
				res.edgeDiffCount += cost
				diff1[p] = struct{}{}
				continue
			}
			cost, diffs := ctx.CompareNodes(from1[p], l2)
			res.edgeDiffCount += cost
			for _, d := range diffs {
				if out.Node(p).Has(d.A) && target.Node(p).Has(d.B) {
					res.edgeDiffClassCount++
				} else if cost > 0 {
					diff1[p] = struct{}{}
					diff2[p] = struct{}{}
				}
				if _, ok := undirected[core.EdgeKey{From: p, To: prim}]; !ok {
					undirected[core.EdgeKey{From: prim, To: p}] = struct{}{}
				}
			}
		}
		for _, p := range sortedKeys(from2) {
			if _, common := from1[p]; common {
				continue
			}
			cost, _ := ctx.CompareNodes(from2[p], nil)
			res.edgeDiffCount += cost
			diff2[p] = struct{}{}
		}

		if len(diff1)+len(diff2) > 0 {
			res.diffs[prim] = SegmentDiff{Out: setList(diff1), Target: setList(diff2)}
		}
	}

	// Object matching by exact primitive set; each target matches once.
	targets := make(map[string]*segment.Object)
	for _, id := range s2.ObjectIDs() {
		obj := s2.Objects[id]
		if !obj.HasLabel(core.Absent) {
			targets[obj.Key()] = obj
		}
	}
	matched := make(map[string]struct{})
	correct := make(map[string]struct{})
	correctClass := 0
	for _, id := range s1.ObjectIDs() {
		obj := s1.Objects[id]
		if obj.HasLabel(core.Absent) {
			continue
		}
		key := obj.Key()
		t, ok := targets[key]
		if !ok {
			continue
		}
		if _, done := matched[key]; done {
			continue
		}
		matched[key] = struct{}{}
		correct[id] = struct{}{}
		res.correct = append(res.correct, id)
		for _, l := range obj.Labels {
			if t.HasLabel(l) {
				correctClass++
				break
			}
		}
	}

	classTargets := 0
	for _, obj := range s2.Objects {
		classTargets += len(obj.Labels)
	}

	// Relations between output objects.
	segRelErrors, correctRels, correctLocations := 0, 0, 0
	for _, pair := range s1.RelationPairs() {
		_, okParent := correct[pair.Parent]
		_, okChild := correct[pair.Child]
		falsePositive, misLabeled := false, false
		if !okParent || !okChild {
			falsePositive = true
		} else {
			tp := targets[s1.Objects[pair.Parent].Key()]
			tc := targets[s1.Objects[pair.Child].Key()]
			want, ok := s2.Relations[segment.ObjectPair{Parent: tp.ID, Child: tc.ID}]
			switch {
			case !ok:
				falsePositive = true
			case !sameStrings(s1.Relations[pair].SortedNames(), want.SortedNames()):
				misLabeled = true
			}
		}

		if falsePositive || misLabeled {
			segRelErrors++
			res.relationDiffs[pair] = core.Single(RelationErrorLabel, core.DefaultWeight)
		} else {
			correctRels++
		}
		if !falsePositive {
			correctLocations++
		}
	}

	// Object counts without placeholders.
	nSeg := segment.Extract(target.WithoutAbsent(), ctx).Len()
	detected := segment.Extract(out.WithoutAbsent(), ctx).Len()
	detectedWithAbsent := s1.Len()

	hasSegments := len(res.correct) == nSeg && len(res.correct) == detectedWithAbsent
	hasSegLab := correctClass == nSeg && correctClass == detectedWithAbsent
	hasLocations := correctLocations == len(s1.Relations) && correctLocations == len(s2.Relations)
	hasRelLab := correctRels == len(s1.Relations) && correctRels == len(s2.Relations)

	res.metrics = Metrics{
		{MetricEdgeDiffClassCount, float64(res.edgeDiffClassCount)},
		{MetricUndirDiffClassCount, float64(len(undirected))},
		{MetricSeg, float64(nSeg)},
		{MetricDetectedSeg, float64(detected)},
		{MetricDSegRelEdges, float64(len(s1.Relations))},
		{MetricCorrectSegments, float64(len(res.correct))},
		{MetricCorrectSegmentsAndClass, float64(correctClass)},
		{MetricClassError, float64(classTargets - correctClass)},
		{MetricCorrectSegRels, float64(correctRels)},
		{MetricCorrectSegRelLocations, float64(correctLocations)},
		{MetricSegRelErrors, float64(segRelErrors)},
		{MetricHasCorrectSegments, indicator(hasSegments)},
		{MetricHasCorrectSegLab, indicator(hasSegLab)},
		{MetricHasCorrectRelationLocations, indicator(hasLocations)},
		{MetricHasCorrectRelLab, indicator(hasRelLab)},
		{MetricHasCorrectStructure, indicator(hasLocations && hasSegments)},
	}
	return res
}

// mergeNeighbours maps every primitive p sharing an object with prim to the
// object labels also carried by the edge p→prim.
func mergeNeighbours(g *core.Graph, seg *segment.Segmentation, prim string) map[string][]string {
	out := make(map[string][]string)
	objs := seg.PrimitiveObjects[prim]
	labels := make([]string, 0, len(objs))
	for l := range objs {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	for _, l := range labels {
		for _, p := range seg.Objects[objs[l]].Primitives {
			if p != prim && g.Edge(p, prim).Has(l) {
				out[p] = append(out[p], l)
			}
		}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func setList(s map[string]struct{}) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
