package summary_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/summary"
)

const diffStream = `DIFF,out/a.lg,gt/a.lg
*N,3,x,1.0,:vs:,y,1.0
*E,1,2,Sub,1.0,:vs:,R,1.0
*E,2,3,x,1.0,:vs:,R,1.0
*S,2,3
DIFF,out/b.lg,gt/b.lg
DIFF,out/c.lg,gt/c.lg
*E,4,5,R,1.0,:vs:,x,1.0
*E,5,6,Sub,1.0,:vs:,R,1.0
`

func readDiff(t *testing.T) []summary.Diff {
	t.Helper()
	diffs, err := summary.ReadDiff(strings.NewReader(diffStream))
	require.NoError(t, err)
	require.Len(t, diffs, 3)
	return diffs
}

func TestReadDiff(t *testing.T) {
	diffs := readDiff(t)

	a := diffs[0]
	assert.Equal(t, "out/a.lg", a.Output)
	assert.Equal(t, "gt/a.lg", a.Target)
	require.Len(t, a.Nodes, 1)
	assert.Equal(t, "3", a.Nodes[0].ID)
	assert.Equal(t, "x", a.Nodes[0].Out)
	assert.Equal(t, "y", a.Nodes[0].Target)
	require.Len(t, a.Edges, 2)
	assert.Equal(t, core.EdgeKey{From: "1", To: "2"}, a.Edges[0].Key)
	assert.Equal(t, "Sub", a.Edges[0].Out)
	assert.Equal(t, "R", a.Edges[0].Target)
	assert.Equal(t, map[string][]string{"2": {"3"}}, a.Segments)

	assert.Empty(t, diffs[1].Nodes)
	assert.Empty(t, diffs[1].Edges)
	assert.Len(t, diffs[2].Edges, 2)
}

func TestReadDiff_NoHeader(t *testing.T) {
	diffs, err := summary.ReadDiff(strings.NewReader("*E,2,3,Sub,1.0,:vs:,R,1.0\n"))
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Empty(t, diffs[0].Output)
	assert.Len(t, diffs[0].Edges, 1)

	diffs, err = summary.ReadDiff(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestReadDiff_Malformed(t *testing.T) {
	for _, in := range []string{
		"*N,3,x,1.0\n",
		"*E,1,2,Sub,1.0,:vs:,R\n",
		"*S,2\n",
		"*Q,1,2\n",
	} {
		_, err := summary.ReadDiff(strings.NewReader(in))
		assert.True(t, errors.Is(err, summary.ErrDiffFormat), in)
	}
}

func TestLabelConfusion(t *testing.T) {
	lc := summary.NewLabelConfusion()
	for _, d := range readDiff(t) {
		lc.Add(d)
	}

	assert.Equal(t, 1, lc.Nodes.Total())
	assert.Equal(t, 1, lc.Nodes.Get("x", "y"))
	assert.Equal(t, []string{"x", "y"}, lc.Nodes.Labels())
	assert.Equal(t, 4, lc.Edges.Total())
	assert.Equal(t, 2, lc.Edges.Get("Sub", "R"))
	assert.Equal(t, []string{"R", "Sub", "x"}, lc.Edges.Labels())
}

func TestLabelConfusion_Short(t *testing.T) {
	lc := summary.NewLabelConfusion()
	for _, d := range readDiff(t) {
		lc.Add(d)
	}

	// x is a node label, so its edges are merges.
	s := lc.Short(nil)
	assert.Equal(t, []string{"R", "Sub"}, s.Relations)
	assert.Equal(t, 2, s.Relation)
	assert.Equal(t, 2, s.Segmentation)
	assert.Equal(t, 1, s.FalseMerge)
	assert.Equal(t, 1, s.MissedMerge)
	assert.Equal(t, 1, s.Matrix.Get(core.MergeAll, "R"))
	assert.Equal(t, 1, s.Matrix.Get("R", core.MergeAll))
	assert.Equal(t, 2, s.Matrix.Get("Sub", "R"))

	// Listed node labels fold as well, even when never confused on a node.
	s = lc.Short([]string{"Sub"})
	assert.Equal(t, []string{"R"}, s.Relations)
	assert.Equal(t, 0, s.Relation)
	assert.Equal(t, 3, s.FalseMerge)
	assert.Equal(t, 4, s.Segmentation)
}

func TestWriteLabelReport(t *testing.T) {
	lc := summary.NewLabelConfusion()
	for _, d := range readDiff(t) {
		lc.Add(d)
	}

	var b strings.Builder
	require.NoError(t, lc.WriteLabelReport(&b, "run.diff", nil))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "Label confusion summary for: run.diff\n"))
	assert.Contains(t, out, "I. Node Label Confusion Matrix: 2 unique labels, 1 errors\nOutput:,'x','y'\n'x',,1\n'y',,\n")
	assert.Contains(t, out, "II. Edge Label Confusion Matrix (Short): 2 unique relationship labels + * (merge), 4 errors\n")
	assert.Contains(t, out, "Output:,'*','R','Sub'\n'*',,1,\n'R',1,,\n'Sub',,2,\n")
	assert.Contains(t, out, "III. Edge Label Confusion Matrix (Full): 3 unique labels, 4 errors\n")
}

func TestInventory(t *testing.T) {
	g := core.Parse(strings.NewReader("N, 1, x\nN, 2, +\nN, 2, t\nN, 3, x\nE, 1, 2, R\nE, 3, 1, *\n"))
	inv := summary.NewInventory()
	inv.Add(g)

	assert.Equal(t, []string{"+", "t", "x"}, inv.NodeLabels())
	assert.Equal(t, []string{"R", "x"}, inv.EdgeLabels())

	var b strings.Builder
	_, err := inv.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, "NODE LABELS:\n+\nt\nx\n\nEDGE LABELS:\nR\nx\n", b.String())

	back, err := summary.ReadInventory(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, inv.NodeLabels(), back.NodeLabels())
	assert.Equal(t, inv.EdgeLabels(), back.EdgeLabels())
}

func TestInventory_ShortWithNodeLabels(t *testing.T) {
	inv, err := summary.ReadInventory(strings.NewReader("NODE LABELS:\nSub\n\nEDGE LABELS:\nR\n"))
	require.NoError(t, err)

	lc := summary.NewLabelConfusion()
	lc.Add(summary.Diff{Edges: readDiff(t)[2].Edges})
	var b strings.Builder
	require.NoError(t, lc.WriteLabelReport(&b, "c.diff", nil))
	assert.Contains(t, b.String(), "(Short): 3 unique relationship labels")

	b.Reset()
	require.NoError(t, lc.WriteLabelReport(&b, "c.diff", inv))
	assert.Contains(t, b.String(), "(Short): 2 unique relationship labels")
}
