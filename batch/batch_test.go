package batch_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lgeval/batch"
	"github.com/katalvlaran/lgeval/compare"
	"github.com/katalvlaran/lgeval/confusion"
	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
)

const (
	gtExpr  = "N, 1, x\nN, 2, +\nN, 3, x\nE, 1, 2, R\nE, 2, 3, R\n"
	subExpr = "N, 1, x\nN, 2, +\nN, 3, x\nE, 1, 2, R\nE, 2, 3, Sub\n"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"gt/a.lg":  {Data: []byte(gtExpr)},
		"out/a.lg": {Data: []byte(subExpr)},
		"gt/b.lg":  {Data: []byte(gtExpr)},
		"out/b.lg": {Data: []byte(gtExpr)},
		"gt/c.lg":  {Data: []byte(gtExpr)},
		"out/c.lg": {Data: []byte(subExpr)},
	}
}

func TestReadPairs(t *testing.T) {
	in := "# output, target\n\nout/a.lg, gt/a.lg\n  out/b.lg ,gt/b.lg, b-shown\n"
	pairs, err := batch.ReadPairs(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []batch.Pair{
		{Output: "out/a.lg", Target: "gt/a.lg"},
		{Output: "out/b.lg", Target: "gt/b.lg", Display: "b-shown"},
	}, pairs)
	assert.Equal(t, "out/a.lg", pairs[0].Name())
	assert.Equal(t, "b-shown", pairs[1].Name())

	swapped := batch.GTFirst(pairs)
	assert.Equal(t, batch.Pair{Output: "gt/b.lg", Target: "out/b.lg", Display: "b-shown"}, swapped[1])
	assert.Equal(t, "out/a.lg", pairs[0].Output)
}

func TestReadPairs_Malformed(t *testing.T) {
	_, err := batch.ReadPairs(strings.NewReader("out/a.lg, gt/a.lg\nlonely.lg\n"))
	require.ErrorIs(t, err, batch.ErrPairFormat)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRunner_WritesInInputOrder(t *testing.T) {
	pairs := []batch.Pair{
		{Output: "out/a.lg", Target: "gt/a.lg"},
		{Output: "out/b.lg", Target: "gt/b.lg"},
		{Output: "out/c.lg", Target: "gt/c.lg"},
	}
	r := &batch.Runner{FS: testFS(), Context: metric.NewContext(), Workers: 2, Logger: zerolog.Nop()}

	var m, d strings.Builder
	outcomes, err := r.Run(context.Background(), pairs, &m, &d)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	mLines := strings.Split(strings.TrimSpace(m.String()), "\n")
	require.Len(t, mLines, 6)
	assert.Equal(t, "*M,out/a.lg,gt/a.lg", mLines[0])
	assert.True(t, strings.HasPrefix(mLines[1], "D_B,1,D_C,0,D_L,1,"))
	assert.Equal(t, "*M,out/b.lg,gt/b.lg", mLines[2])
	assert.True(t, strings.HasPrefix(mLines[3], "D_B,0,"))
	assert.Equal(t, "*M,out/c.lg,gt/c.lg", mLines[4])

	assert.Equal(t,
		"DIFF,out/a.lg,gt/a.lg\n*E,2,3,Sub,1.0,:vs:,R,1.0\n"+
			"DIFF,out/b.lg,gt/b.lg\n"+
			"DIFF,out/c.lg,gt/c.lg\n*E,2,3,Sub,1.0,:vs:,R,1.0\n",
		d.String())

	v, ok := outcomes[1].Result.Metrics.Get(compare.MetricDB)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestRunner_MissingFileStillCompares(t *testing.T) {
	r := &batch.Runner{FS: testFS(), Context: metric.NewContext(), Logger: zerolog.Nop()}
	outcomes, err := r.Run(context.Background(), []batch.Pair{{Output: "out/missing.lg", Target: "gt/a.lg"}}, nil, nil)
	require.NoError(t, err)

	o := outcomes[0]
	assert.True(t, o.OutputError)
	assert.False(t, o.TargetError)
	v, _ := o.Result.Metrics.Get(compare.MetricDC)
	assert.Equal(t, 3.0, v)
}

func TestRunner_FeedsConfusionMatrices(t *testing.T) {
	ctx := metric.NewContext()
	r := &batch.Runner{
		FS:           testFS(),
		Context:      ctx,
		Workers:      3,
		Logger:       zerolog.Nop(),
		Matrix:       confusion.NewMatrix(ctx),
		ObjectMatrix: confusion.NewObjectMatrix(ctx),
	}
	pairs := []batch.Pair{
		{Output: "out/a.lg", Target: "gt/a.lg", Display: "a"},
		{Output: "out/b.lg", Target: "gt/b.lg", Display: "b"},
		{Output: "out/c.lg", Target: "gt/c.lg", Display: "c"},
	}
	outcomes, err := r.Run(context.Background(), pairs, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes[1].Mismatches)

	// Sizes 2 and 3: {2,3} and {1,2,3} disagree in a and c.
	assert.Equal(t, 4, r.Matrix.ErrorCount())
	rows := r.Matrix.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "c"}, rows[0].Total.UniqueFiles())

	require.NotEmpty(t, outcomes[0].Mismatches)
	marked := outcomes[0].Mismatches[0].Output
	assert.True(t, marked.IsMarkedEdge("2", "3"))

	// One relation error between objects {2} and {3}.
	assert.Equal(t, 2, r.ObjectMatrix.ErrorCount())
	assert.Equal(t, 1, r.ObjectMatrix.Len())
}

func TestRunner_Prepare(t *testing.T) {
	ctx := metric.Context{Node: metric.Intersect{}, Edge: metric.Intersect{}}
	r := &batch.Runner{
		FS:      testFS(),
		Context: ctx,
		Logger:  zerolog.Nop(),
		Prepare: func(out, target *core.Graph) {
			out.LabelMissingEdges()
			target.LabelMissingEdges()
		},
	}
	outcomes, err := r.Run(context.Background(), []batch.Pair{{Output: "out/b.lg", Target: "gt/b.lg"}}, nil, nil)
	require.NoError(t, err)
	v, _ := outcomes[0].Result.Metrics.Get(compare.MetricDB)
	assert.Equal(t, 0.0, v)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &batch.Runner{FS: testFS(), Context: metric.NewContext(), Logger: zerolog.Nop()}
	var m strings.Builder
	_, err := r.Run(ctx, []batch.Pair{{Output: "out/a.lg", Target: "gt/a.lg"}}, &m, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.String())
}
