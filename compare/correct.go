package compare

import (
	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
)

// KeepOnlyCorrect rewrites out against the ground truth gt: mismatching nodes
// become ERROR_N, mismatching edges (either side) become ERROR_E, and every
// agreeing node or edge takes the ground-truth labels. Primitives missing
// from out are kept as ERROR_N nodes; gt is restored.
func KeepOnlyCorrect(out, gt *core.Graph, ctx metric.Context) {
	core.MatchAbsent(out, gt)
	defer gt.RemoveAbsent()

	for _, id := range out.NodeIDs() {
		if ctx.NodesAgree(out.NodeLabels(id), gt.NodeLabels(id)) {
			out.SetNodeLabels(id, gt.Node(id))
		} else {
			out.SetNodeLabels(id, core.Single(core.ErrorNode, core.DefaultWeight))
		}
	}

	rewrite := func(k core.EdgeKey, agree bool) {
		switch {
		case !agree:
			_ = out.SetEdgeLabels(k, core.Single(core.ErrorEdge, core.DefaultWeight))
		case gt.EdgeByKey(k) != nil:
			_ = out.SetEdgeLabels(k, gt.EdgeByKey(k))
		default:
			_ = out.SetEdgeLabels(k, core.Single(core.NoLabel, core.DefaultWeight))
		}
	}
	for _, k := range out.EdgeKeys() {
		other := noEdge
		if t := gt.EdgeByKey(k); t != nil {
			other = t.Names()
		}
		rewrite(k, ctx.EdgesAgree(out.EdgeByKey(k).Names(), other))
	}
	for _, k := range gt.EdgeKeys() {
		if out.EdgeByKey(k) != nil {
			continue
		}
		rewrite(k, ctx.EdgesAgree(gt.EdgeByKey(k).Names(), noEdge))
	}

	out.CommitAbsent()
}
