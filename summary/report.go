package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/lgeval/compare"
)

const cellWidth = 10

// errWriter keeps the first write error so the report code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// row writes cells right-aligned in fixed-width columns; floats get two
// decimals.
func (e *errWriter) row(cells ...any) {
	var b strings.Builder
	for _, c := range cells {
		switch v := c.(type) {
		case float64:
			fmt.Fprintf(&b, "%*.2f", cellWidth, v)
		default:
			fmt.Fprintf(&b, "%*v", cellWidth, v)
		}
	}
	e.printf("%s\n", b.String())
}

func (e *errWriter) section(title string) {
	e.printf("\n****  %s  ****************************************************************\n\n", title)
}

func relRate(r Relative) any {
	if !r.Defined {
		return "(Empty)"
	}
	return r.Rate
}

// WriteReport writes the summary tables.
func (s *Summary) WriteReport(w io.Writer) error {
	e := &errWriter{w: w}
	e.printf("LgEval Evaluation Summary\n%d files\n", s.Files)

	e.section("PRIMITIVES")
	e.row("", "Rate(%)", "Total", "Correct", "Errors", "SegErr", "ClErr", "RelErr")
	e.printf("%s\n", strings.Repeat("-", 8*cellWidth))
	e.row("Nodes", s.Nodes.Rate, s.Nodes.Total, s.Nodes.Correct, s.Nodes.Errors())
	e.row("Edges", s.Edges.Rate, s.Edges.Total, s.Edges.Correct, s.Edges.Errors(),
		s.EdgeErrors.Segmentation, s.EdgeErrors.Class, s.EdgeErrors.Relation)
	e.printf("\n")
	e.row("Labels", s.Labels.Rate, s.Labels.Total, s.Labels.Correct, s.Labels.Errors())
	e.printf("\n")
	e.row("Node Pairs", s.NodePairs.Rate, s.NodePairs.Total, s.NodePairs.Correct, s.NodePairs.Errors(),
		s.PairErrors.Segmentation, s.PairErrors.Class, s.PairErrors.Relation)
	e.row("Nod+Pairs", s.NodesAndPairs.Rate, s.NodesAndPairs.Total, s.NodesAndPairs.Correct, s.NodesAndPairs.Errors())
	e.row("NodeEdges", s.NodesAllEdges.Rate, s.NodesAllEdges.Total, s.NodesAllEdges.Correct, s.NodesAllEdges.Errors())

	e.section("OBJECTS")
	e.row("", "Recall(%)", "Prec(%)", "2RP/(R+P)", "Targets", "Correct", "FalseNeg", "*Detected", "*FalsePos")
	e.printf("%s\n", strings.Repeat("-", 9*cellWidth))
	det := func(name string, d Detection) {
		e.row(name, d.Recall, d.Precision, d.F, d.Targets, d.Correct, d.FalseNeg(), d.Detected, d.FalsePos)
	}
	det("Objects", s.Objects)
	det("+ Classes", s.ObjectClasses)
	e.row("Class/Det", relRate(s.ObjectClassGivenDetection), "", "", s.ObjectClassGivenDetection.Base, s.ObjectClassGivenDetection.Correct)
	e.printf("\n")
	det("Relations", s.Relations)
	det("+ Classes", s.RelationClasses)
	e.row("Class/Det", relRate(s.RelationClassGivenLocation), "", "", s.RelationClassGivenLocation.Base, s.RelationClassGivenLocation.Correct)

	e.section("FILES")
	e.row("", "Rate(%)", "Total", "Correct", "Errors")
	e.printf("%s\n", strings.Repeat("-", 5*cellWidth))
	file := func(name string, c Count) {
		e.row(name, c.Rate, c.Total, c.Correct, c.Errors())
	}
	file("Objects", s.FileObjects)
	file("+ Classes", s.FileObjectClasses)
	e.row("Class/Det", relRate(s.FileObjectClassGivenDet), "", s.FileObjectClassGivenDet.Base, s.FileObjectClassGivenDet.Correct)
	e.printf("\n")
	file("Relations", s.FileRelations)
	file("+ Classes", s.FileRelationClasses)
	e.row("Class/Det", relRate(s.FileRelationClassGivenLoc), "", s.FileRelationClassGivenLoc.Base, s.FileRelationClassGivenLoc.Correct)
	e.printf("\n")
	file("Structure", s.FileStructure)
	file("+ Classes", s.FileExpressions)
	e.row("Class/Det", relRate(s.FileExpressionGivenStruct), "", s.FileExpressionGivenStruct.Base, s.FileExpressionGivenStruct.Correct)
	if s.CorrectByDE != s.FileExpressions.Correct {
		e.printf("\n  ** Warning: %d files with D_B = 0 but %d with D_E(%%) = 0\n",
			s.FileExpressions.Correct, s.CorrectByDE)
	}

	e.section("LABEL ERROR HISTOGRAM (Dir. Edges, D_B)")
	cells := []any{""}
	for i := 0; i < HistogramBins; i++ {
		cells = append(cells, i)
	}
	e.row(append(cells, fmt.Sprintf(">%d", HistogramBins-1))...)
	e.printf("%s\n", strings.Repeat("-", (HistogramBins+2)*cellWidth))
	counts, cumul := []any{"Num. Files"}, []any{"Cum. Files"}
	for i, c := range s.Histogram.Cumulative() {
		counts = append(counts, s.Histogram.Bins[i])
		cumul = append(cumul, c)
	}
	e.row(append(counts, s.Histogram.Over)...)
	e.row(cumul...)
	return e.err
}

// CSVHeader names the columns written by WriteCSV.
const CSVHeader = "D_C,D_L,D_S,D_B,D_E(%),std,wD_E(%),std"

// WriteCSV writes the one-line summary: the D_C, D_L, D_S and D_B totals,
// then mean and deviation of D_E(%), plain and weighted by node count, as
// percentages.
func (s *Summary) WriteCSV(w io.Writer) error {
	de := s.Stats[compare.MetricDE]
	_, err := fmt.Fprintf(w, "%d,%d,%d,%d,%.4f,%.4f,%.4f,%.4f\n",
		s.tot(compare.MetricDC), s.tot(compare.MetricDL), s.tot(compare.MetricDS), s.tot(compare.MetricDB),
		100*de.Mean, 100*de.StdDev, 100*s.WeightedDE.Mean, 100*s.WeightedDE.StdDev)
	return err
}
