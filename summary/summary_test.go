package summary_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lgeval/compare"
	"github.com/katalvlaran/lgeval/summary"
)

const stream = `*M,out/a.lg,gt/a.lg
D_B,1,D_C,0,D_L,1,D_S,0,D_E(%),0.5,nNodes,3,nEdges,6,dPairs,1,segPairErrors,0,nodeCorrect,1,edgeDiffClassCount,0,undirDiffClassCount,0,nSeg,3,detectedSeg,3,CorrectSegments,3,CorrectSegmentsAndClass,3,nSegRelEdges,2,dSegRelEdges,2,CorrectSegRelLocations,2,CorrectSegRels,1,SegRelErrors,1,hasCorrectSegments,1,hasCorrectSegLab,1,hasCorrectRelationLocations,1,hasCorrectRelLab,0,hasCorrectStructure,1

*M,out/b.lg,gt/b.lg
D_B,0,D_C,0,D_L,0,D_S,0,D_E(%),0,nNodes,1,nEdges,0,dPairs,0,segPairErrors,0,nodeCorrect,1,edgeDiffClassCount,0,undirDiffClassCount,0,nSeg,1,detectedSeg,1,CorrectSegments,1,CorrectSegmentsAndClass,1,nSegRelEdges,0,dSegRelEdges,0,CorrectSegRelLocations,0,CorrectSegRels,0,SegRelErrors,0,hasCorrectSegments,1,hasCorrectSegLab,1,hasCorrectRelationLocations,1,hasCorrectRelLab,1,hasCorrectStructure,1
`

func summarize(t *testing.T) *summary.Summary {
	t.Helper()
	recs, err := summary.ReadMetrics(strings.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	return summary.Summarize(recs)
}

func TestReadMetrics(t *testing.T) {
	recs, err := summary.ReadMetrics(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, "out/a.lg", recs[0].Output)
	assert.Equal(t, "gt/b.lg", recs[1].Target)
	v, ok := recs[0].Metrics.Get(compare.MetricDE)
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
	assert.Len(t, recs[1].Metrics, 26)
}

func TestReadMetrics_NoHeader(t *testing.T) {
	recs, err := summary.ReadMetrics(strings.NewReader("D_B,2,D_C,1\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].Output)
	assert.Equal(t, compare.Metrics{{Name: "D_B", Value: 2}, {Name: "D_C", Value: 1}}, recs[0].Metrics)
}

func TestReadMetrics_Malformed(t *testing.T) {
	for name, in := range map[string]string{
		"odd fields": "*M,a,b\nD_B,1,D_C\n",
		"bad value":  "*M,a,b\nD_B,one\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := summary.ReadMetrics(strings.NewReader(in))
			require.ErrorIs(t, err, summary.ErrFormat)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestSummarize_Primitives(t *testing.T) {
	s := summarize(t)
	assert.Equal(t, 2, s.Files)

	assert.Equal(t, summary.Count{Total: 4, Correct: 4, Rate: 100}, s.Nodes)
	assert.Equal(t, 6, s.Edges.Total)
	assert.Equal(t, 1, s.Edges.Errors())
	assert.InDelta(t, 83.333, s.Edges.Rate, 1e-3)
	assert.Equal(t, summary.Breakdown{Relation: 1}, s.EdgeErrors)
	assert.Equal(t, summary.Count{Total: 10, Correct: 9, Rate: 90}, s.Labels)

	assert.Equal(t, 3, s.NodePairs.Total)
	assert.Equal(t, 2, s.NodePairs.Correct)
	assert.Equal(t, summary.Breakdown{Relation: 1}, s.PairErrors)
	assert.Equal(t, 7, s.NodesAndPairs.Total)
	assert.Equal(t, 6, s.NodesAndPairs.Correct)
	assert.Equal(t, summary.Count{Total: 4, Correct: 2, Rate: 50}, s.NodesAllEdges)
}

func TestSummarize_Objects(t *testing.T) {
	s := summarize(t)

	assert.Equal(t, summary.Detection{Targets: 4, Detected: 4, Correct: 4, Recall: 100, Precision: 100, F: 100}, s.Objects)
	assert.Equal(t, summary.Relative{Base: 4, Correct: 4, Rate: 100, Defined: true}, s.ObjectClassGivenDetection)

	assert.Equal(t, 100.0, s.Relations.Recall)
	assert.Equal(t, 0, s.Relations.FalsePos)
	assert.Equal(t, summary.Detection{
		Targets: 2, Detected: 2, Correct: 1, FalsePos: 1,
		Recall: 50, Precision: 50, F: 50,
	}, s.RelationClasses)
	assert.Equal(t, 1, s.RelationClasses.FalseNeg())
	assert.Equal(t, 50.0, s.RelationClassGivenLocation.Rate)
}

func TestSummarize_Files(t *testing.T) {
	s := summarize(t)

	assert.Equal(t, summary.Count{Total: 2, Correct: 2, Rate: 100}, s.FileObjects)
	assert.Equal(t, summary.Count{Total: 2, Correct: 1, Rate: 50}, s.FileRelationClasses)
	assert.Equal(t, summary.Count{Total: 2, Correct: 1, Rate: 50}, s.FileExpressions)
	assert.Equal(t, 1, s.CorrectByDE)
	assert.Equal(t, 50.0, s.FileExpressionGivenStruct.Rate)

	assert.Equal(t, [summary.HistogramBins]int{1, 1, 0, 0, 0, 0}, s.Histogram.Bins)
	assert.Equal(t, [summary.HistogramBins]int{1, 2, 2, 2, 2, 2}, s.Histogram.Cumulative())
	assert.Zero(t, s.Histogram.Over)
}

func TestSummarize_Stats(t *testing.T) {
	s := summarize(t)

	de := s.Stats[compare.MetricDE]
	assert.InDelta(t, 0.5, de.Total, 1e-12)
	assert.InDelta(t, 0.25, de.Mean, 1e-12)
	assert.InDelta(t, 0.25, de.StdDev, 1e-12)

	// Weighted by node counts 3 and 1.
	assert.InDelta(t, 0.375, s.WeightedDE.Mean, 1e-12)
	assert.InDelta(t, 0.216506, s.WeightedDE.StdDev, 1e-6)

	assert.Equal(t, 1.0, s.Total(compare.MetricDB))
	assert.Contains(t, s.Names(), compare.MetricHasCorrectStructure)
}

func TestSummarize_Empty(t *testing.T) {
	s := summary.Summarize(nil)
	assert.Equal(t, 100.0, s.Nodes.Rate)
	assert.Equal(t, 100.0, s.Objects.F)
	assert.False(t, s.ObjectClassGivenDetection.Defined)

	var b strings.Builder
	require.NoError(t, s.WriteReport(&b))
	assert.Contains(t, b.String(), "(Empty)")
}

func TestFMeasure(t *testing.T) {
	assert.Equal(t, 0.0, summary.FMeasure(0, 0))
	assert.InDelta(t, 66.667, summary.FMeasure(50, 100), 1e-3)
}

func TestWriteReport(t *testing.T) {
	var b strings.Builder
	require.NoError(t, summarize(t).WriteReport(&b))
	out := b.String()

	assert.Contains(t, out, "2 files")
	assert.Contains(t, out, "     Nodes    100.00         4         4         0\n")
	assert.Contains(t, out, "     Edges     83.33         6         5         1         0         0         1\n")
	assert.Contains(t, out, "Num. Files         1         1         0         0         0         0         0\n")
	assert.Contains(t, out, "Cum. Files         1         2         2         2         2         2\n")
	assert.NotContains(t, out, "Warning")
}

func TestWriteReport_DisagreeingCounts(t *testing.T) {
	recs, err := summary.ReadMetrics(strings.NewReader("D_B,0,D_E(%),0.1\n"))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, summary.Summarize(recs).WriteReport(&b))
	assert.Contains(t, b.String(), "1 files with D_B = 0 but 0 with D_E(%) = 0")
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	require.NoError(t, summarize(t).WriteCSV(&b))
	assert.Equal(t, "0,1,0,1,25.0000,25.0000,37.5000,21.6506\n", b.String())
	assert.Equal(t, 8, len(strings.Split(summary.CSVHeader, ",")))
}
