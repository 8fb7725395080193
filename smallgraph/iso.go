package smallgraph

import (
	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
)

var noEdge = []string{core.NoLabel}

// Isomorphic reports whether a and b are equal up to a renaming of nodes
// under ctx.
//
// Graphs with different node counts, or whose flattened labels (plus "_")
// disagree under the node metric, are rejected at once. Otherwise every
// assignment of a's nodes to b's nodes is tried, in sorted order, until one
// makes all node labels agree (node metric) and every node pair agree on its
// edge (edge metric, a missing edge being "_").
//
// Complexity: O(n!·n) in the worst case; pruning on partial assignments
// usually cuts it far below.
func Isomorphic(a, b *SmallGraph, ctx metric.Context) bool {
	if a.NodeCount() != b.NodeCount() {
		return false
	}
	if !ctx.NodesAgree(a.Labels(), b.Labels()) {
		return false
	}

	m := &matcher{
		a:    a,
		b:    b,
		ctx:  ctx,
		aIDs: a.NodeIDs(),
		bIDs: b.NodeIDs(),
	}
	m.image = make([]string, len(m.aIDs))
	m.used = make([]bool, len(m.bIDs))
	return m.search(0)
}

// matcher holds the state of one isomorphism search.
type matcher struct {
	a, b  *SmallGraph
	ctx   metric.Context
	aIDs  []string
	bIDs  []string
	image []string // image[i] is the b node assigned to aIDs[i]
	used  []bool
}

// search assigns aIDs[depth:] depth-first; it succeeds once all are placed.
func (m *matcher) search(depth int) bool {
	if depth == len(m.aIDs) {
		return true
	}
	x := m.aIDs[depth]
	for j, y := range m.bIDs {
		if m.used[j] {
			continue
		}
		if !m.ctx.NodesAgree(m.a.nodes[x], m.b.nodes[y]) {
			continue
		}
		m.image[depth] = y
		if !m.edgesAgree(depth) {
			continue
		}
		m.used[j] = true
		if m.search(depth + 1) {
			return true
		}
		m.used[j] = false
	}
	return false
}

// edgesAgree checks the pairs between aIDs[depth] and every node placed
// before it, in both directions.
func (m *matcher) edgesAgree(depth int) bool {
	x, y := m.aIDs[depth], m.image[depth]
	for i := 0; i < depth; i++ {
		if !m.pairAgrees(x, m.aIDs[i], y, m.image[i]) ||
			!m.pairAgrees(m.aIDs[i], x, m.image[i], y) {
			return false
		}
	}
	return true
}

// pairAgrees compares a's edge (ax→ay) with b's edge (bx→by).
func (m *matcher) pairAgrees(ax, ay, bx, by string) bool {
	la, okA := m.a.edges[core.EdgeKey{From: ax, To: ay}]
	lb, okB := m.b.edges[core.EdgeKey{From: bx, To: by}]
	switch {
	case !okA && !okB:
		return true
	case !okA:
		return m.ctx.EdgesAgree(lb, noEdge)
	case !okB:
		return m.ctx.EdgesAgree(la, noEdge)
	default:
		return m.ctx.EdgesAgree(la, lb)
	}
}
