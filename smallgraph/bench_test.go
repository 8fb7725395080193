// Package smallgraph_test provides benchmarks for the isomorphism search.
package smallgraph_test

import (
	"strconv"
	"testing"

	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/smallgraph"
)

// ring builds an n-node directed ring with identical labels, the worst case
// for pruning on node labels.
func ring(n int, shift int) *smallgraph.SmallGraph {
	sg := smallgraph.New()
	for i := 0; i < n; i++ {
		sg.SetNode(strconv.Itoa((i+shift)%n), "x")
	}
	for i := 0; i < n; i++ {
		sg.SetEdge(strconv.Itoa((i+shift)%n), strconv.Itoa((i+shift+1)%n), "R")
	}
	return sg
}

func BenchmarkIsomorphic_Ring5(b *testing.B) {
	x, y := ring(5, 0), ring(5, 2)
	ctx := metric.NewContext()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = smallgraph.Isomorphic(x, y, ctx)
	}
}
