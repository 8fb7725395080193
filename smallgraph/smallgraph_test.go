package smallgraph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/smallgraph"
)

func abc() *smallgraph.SmallGraph {
	return smallgraph.FromLists(
		[]smallgraph.Node{{ID: "1", Labels: []string{"A"}}, {ID: "2", Labels: []string{"B"}}, {ID: "3", Labels: []string{"C"}}},
		[]smallgraph.Edge{{From: "1", To: "2", Labels: []string{"R"}}, {From: "1", To: "3", Labels: []string{"U"}}},
	)
}

func parseLG(t *testing.T, text string) *core.Graph {
	t.Helper()
	g := core.Parse(strings.NewReader(text))
	require.False(t, g.HasError(), "unexpected issues: %v", g.Issues())
	return g
}

func TestCodec_RoundTrip(t *testing.T) {
	sg := abc()
	s := sg.String()
	assert.Equal(t, "3,1,A,2,B,3,C,2,1,2,R,1,3,U", s)

	back, err := smallgraph.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, s, back.String())
	assert.True(t, smallgraph.Isomorphic(sg, back, metric.NewContext()))
}

func TestCodec_MultiLabel(t *testing.T) {
	sg := smallgraph.New()
	sg.SetNode("a", "x", "X")
	sg.SetNode("b")
	sg.SetEdge("a", "b", "R", "Sup")

	back, err := smallgraph.Parse(sg.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "X"}, back.NodeLabels("a"))
	assert.Empty(t, back.NodeLabels("b"))
	assert.Equal(t, []string{"R", "Sup"}, back.EdgeLabels("a", "b"))
}

func TestParse_Malformed(t *testing.T) {
	for _, s := range []string{"", "x", "2,1,A", "1,1,A,1,1,2", "1,1,A,0,extra", "1,1,A,z"} {
		_, err := smallgraph.Parse(s)
		assert.ErrorIs(t, err, smallgraph.ErrFormat, s)
	}
	sg, err := smallgraph.Parse("0,0")
	require.NoError(t, err)
	assert.Equal(t, 0, sg.NodeCount())
}

func TestIsomorphic_EditSequence(t *testing.T) {
	ctx := metric.NewContext()
	sg := abc()
	sg2, err := smallgraph.Parse(sg.String())
	require.NoError(t, err)
	assert.True(t, smallgraph.Isomorphic(sg, sg2, ctx))

	sg2.SetEdge("2", "3", "R")
	assert.False(t, smallgraph.Isomorphic(sg, sg2, ctx))
	sg.SetEdge("2", "3", "U")
	assert.False(t, smallgraph.Isomorphic(sg, sg2, ctx))
	sg.SetEdge("2", "3", "R")
	assert.True(t, smallgraph.Isomorphic(sg, sg2, ctx))

	// Same shape with renamed nodes.
	renamed := smallgraph.FromLists(
		[]smallgraph.Node{{ID: "1", Labels: []string{"B"}}, {ID: "2", Labels: []string{"C"}}, {ID: "3", Labels: []string{"A"}}},
		[]smallgraph.Edge{{From: "3", To: "1", Labels: []string{"R"}}, {From: "3", To: "2", Labels: []string{"U"}}},
	)
	assert.False(t, smallgraph.Isomorphic(sg, renamed, ctx))
	renamed.SetEdge("1", "2", "U")
	assert.False(t, smallgraph.Isomorphic(sg, renamed, ctx))
	assert.False(t, smallgraph.Isomorphic(renamed, sg, ctx))
	renamed.SetEdge("1", "2", "R")
	assert.True(t, smallgraph.Isomorphic(sg, renamed, ctx))
	assert.True(t, smallgraph.Isomorphic(renamed, sg, ctx))
}

func TestIsomorphic_Properties(t *testing.T) {
	ctx := metric.NewContext()
	graphs := []*smallgraph.SmallGraph{
		abc(),
		smallgraph.New(),
		smallgraph.FromLists([]smallgraph.Node{{ID: "p", Labels: []string{"x"}}}, nil),
		smallgraph.FromLists(
			[]smallgraph.Node{{ID: "1", Labels: []string{"x"}}, {ID: "2", Labels: []string{"x"}}},
			[]smallgraph.Edge{{From: "1", To: "2", Labels: []string{"x"}}, {From: "2", To: "1", Labels: []string{"x"}}},
		),
	}
	for i, a := range graphs {
		assert.True(t, smallgraph.Isomorphic(a, a, ctx), "reflexive %d", i)
		for j, b := range graphs {
			assert.Equal(t, smallgraph.Isomorphic(a, b, ctx), smallgraph.Isomorphic(b, a, ctx), "symmetric %d %d", i, j)
		}
	}
}

func TestIsomorphic_NoEdgeLabelMatchesMissingEdge(t *testing.T) {
	a := smallgraph.FromLists(
		[]smallgraph.Node{{ID: "1", Labels: []string{"x"}}, {ID: "2", Labels: []string{"y"}}},
		[]smallgraph.Edge{{From: "1", To: "2", Labels: []string{core.NoLabel}}},
	)
	b := smallgraph.FromLists(
		[]smallgraph.Node{{ID: "1", Labels: []string{"x"}}, {ID: "2", Labels: []string{"y"}}},
		nil,
	)
	assert.True(t, smallgraph.Isomorphic(a, b, metric.NewContext()))
	assert.True(t, smallgraph.Isomorphic(b, a, metric.NewContext()))
}

func TestIsomorphic_UsesContextMetrics(t *testing.T) {
	a := smallgraph.FromLists([]smallgraph.Node{{ID: "1", Labels: []string{"X"}}}, nil)
	b := smallgraph.FromLists([]smallgraph.Node{{ID: "1", Labels: []string{"x"}}}, nil)

	assert.False(t, smallgraph.Isomorphic(a, b, metric.NewContext()))
	syn := metric.NewContext().WithMetrics(metric.Synonym{}, nil)
	assert.True(t, smallgraph.Isomorphic(a, b, syn))
}

func TestMarks(t *testing.T) {
	sg := abc()
	sg.MarkNodes(map[string]struct{}{"2": {}, "9": {}})
	sg.MarkEdges(map[core.EdgeKey]struct{}{{From: "1", To: "3"}: {}, {From: "3", To: "1"}: {}})

	assert.True(t, sg.IsMarkedNode("2"))
	assert.False(t, sg.IsMarkedNode("9"))
	assert.True(t, sg.IsMarkedEdge("1", "3"))
	assert.False(t, sg.IsMarkedEdge("3", "1"))
	assert.True(t, smallgraph.Isomorphic(sg, abc(), metric.NewContext()))
}

func TestWriteLG(t *testing.T) {
	var b strings.Builder
	require.NoError(t, abc().WriteLG(&b))
	assert.Equal(t, "N,1,A,1.0\nN,2,B,1.0\nN,3,C,1.0\nE,1,2,R,1.0\nE,1,3,U,1.0\n", b.String())

	g := core.Parse(strings.NewReader(b.String()))
	assert.False(t, g.HasError())
	assert.Equal(t, 3, g.NodeCount())
}

const chain = "N, 1, x\nN, 2, +\nN, 3, x\nE, 1, 2, R\nE, 2, 3, R\n"

func nodeSets(sgs []*smallgraph.SmallGraph) []string {
	out := make([]string, len(sgs))
	for i, sg := range sgs {
		out[i] = strings.Join(sg.NodeIDs(), " ")
	}
	return out
}

func TestSubStructures(t *testing.T) {
	g := parseLG(t, chain)

	assert.Equal(t, []string{"1", "2", "3"}, nodeSets(smallgraph.SubStructures(g, 1)))
	assert.Equal(t, []string{"1 2", "2 3", "1 2 3"}, nodeSets(smallgraph.SubStructures(g, 2, 3)))
	assert.Empty(t, smallgraph.SubStructures(g))

	sub := smallgraph.SubStructures(g, 2)[1]
	assert.Equal(t, []string{"R"}, sub.EdgeLabels("2", "3"))
	assert.Equal(t, []string{"+"}, sub.NodeLabels("2"))
}

func TestCompareSubStruct(t *testing.T) {
	out := parseLG(t, chain)
	gt := parseLG(t, "N, 1, x\nN, 2, +\nN, 3, x\nE, 1, 2, R\nE, 2, 3, Sub\n")

	errs := smallgraph.CompareSubStruct(out, gt, metric.NewContext(), 1, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"2", "3"}, errs[0].Target.NodeIDs())
	assert.Equal(t, []string{"Sub"}, errs[0].Target.EdgeLabels("2", "3"))
	assert.Equal(t, []string{"R"}, errs[0].Output.EdgeLabels("2", "3"))

	assert.Empty(t, smallgraph.CompareSubStruct(out, out.Clone(), metric.NewContext(), 1, 2, 3))
}

func TestCompareSubStruct_MissingPrimitive(t *testing.T) {
	out := parseLG(t, "N, 1, x\n")
	gt := parseLG(t, "N, 1, x\nN, 2, y\nE, 1, 2, R\n")

	errs := smallgraph.CompareSubStruct(out, gt, metric.NewContext(), 1)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{core.Absent}, errs[0].Output.NodeLabels("2"))
	assert.Equal(t, []string{"1"}, out.NodeIDs())
	assert.Equal(t, []string{"1", "2"}, gt.NodeIDs())
}

func TestCompareSegmentsStruct(t *testing.T) {
	gt := parseLG(t, "O, a, x, 1.0, 1, 2\nO, b, y, 1.0, 3\nR, a, b, Right, 1.0\n")
	out := parseLG(t, "N, 1, x\nN, 2, x\nN, 3, y\nE, 1, 3, Right\nE, 2, 3, Right\n")

	errs := smallgraph.CompareSegmentsStruct(out, gt, metric.NewContext(), 1, 2)
	require.Len(t, errs, 2)

	first := errs[0]
	assert.Equal(t, []string{"Obj0"}, first.Object.NodeIDs())
	assert.Equal(t, []string{"x"}, first.Object.NodeLabels("Obj0"))
	assert.Equal(t, []string{"1", "2"}, first.Target.NodeIDs())
	assert.Equal(t, 2, first.Target.EdgeCount())
	assert.Equal(t, 0, first.Output.EdgeCount())

	pair := errs[1]
	assert.Equal(t, []string{"Obj0", "Obj1"}, pair.Object.NodeIDs())
	assert.Equal(t, []string{"Right"}, pair.Object.EdgeLabels("Obj0", "Obj1"))
	assert.Equal(t, []string{"1", "2", "3"}, pair.Output.NodeIDs())
}

func TestCompareSegmentsStruct_RelationError(t *testing.T) {
	gt := parseLG(t, "O, a, x, 1.0, 1\nO, b, y, 1.0, 2\nR, a, b, Right, 1.0\n")
	out := parseLG(t, "N, 1, x\nN, 2, y\nE, 1, 2, Sup\n")

	errs := smallgraph.CompareSegmentsStruct(out, gt, metric.NewContext(), 1, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"Obj0", "Obj1"}, errs[0].Object.NodeIDs())
	assert.Equal(t, []string{"Sup"}, errs[0].Output.EdgeLabels("1", "2"))

	assert.Empty(t, smallgraph.CompareSegmentsStruct(gt, gt.Clone(), metric.NewContext(), 1, 2))
}
