package summary

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lgeval/compare"
)

// HistogramBins is the number of single-value D_B bins; larger values fall
// into Histogram.Over.
const HistogramBins = 6

// Stat aggregates one metric over all records.
type Stat struct {
	Total  float64
	Mean   float64
	StdDev float64 // population standard deviation
}

// Count is a correct/total pair with its rate.
type Count struct {
	Total   int
	Correct int
	Rate    float64
}

// Errors returns Total - Correct.
func (c Count) Errors() int { return c.Total - c.Correct }

// Breakdown splits edge errors by cause.
type Breakdown struct {
	Segmentation int
	Class        int
	Relation     int
}

// Detection holds recall, precision and F-measure of a detection task.
type Detection struct {
	Targets   int
	Detected  int
	Correct   int
	FalsePos  int
	Recall    float64
	Precision float64
	F         float64
}

// FalseNeg returns the missed targets.
func (d Detection) FalseNeg() int { return d.Targets - d.Correct }

// Relative is a rate over a subset, e.g. class accuracy over correctly
// detected objects. Defined is false when the subset is empty.
type Relative struct {
	Base    int
	Correct int
	Rate    float64
	Defined bool
}

// Histogram counts files by D_B. Bins[i] holds files with D_B == i.
type Histogram struct {
	Bins [HistogramBins]int
	Over int
}

// Cumulative returns the running sums of Bins.
func (h Histogram) Cumulative() [HistogramBins]int {
	var c [HistogramBins]int
	sum := 0
	for i, n := range h.Bins {
		sum += n
		c[i] = sum
	}
	return c
}

// Summary is the aggregate of a metrics stream.
type Summary struct {
	Files      int
	Stats      map[string]Stat
	// WeightedDE is D_E(%) weighted by each file's node count.
	WeightedDE Stat

	// Primitive level.
	Nodes         Count
	Edges         Count
	EdgeErrors    Breakdown
	Labels        Count // nodes and edges together
	NodePairs     Count // undirected
	PairErrors    Breakdown
	NodesAndPairs Count
	NodesAllEdges Count // nodes with all incident edges correct

	// Object level.
	Objects                    Detection
	ObjectClasses              Detection
	ObjectClassGivenDetection  Relative
	Relations                  Detection
	RelationClasses            Detection
	RelationClassGivenLocation Relative

	// File level.
	FileObjects               Count
	FileObjectClasses         Count
	FileObjectClassGivenDet   Relative
	FileRelations             Count
	FileRelationClasses       Count
	FileRelationClassGivenLoc Relative
	FileStructure             Count
	FileExpressions           Count
	FileExpressionGivenStruct Relative
	CorrectByDE               int // files with D_E(%) == 0; equals FileExpressions.Correct for consistent input
	Histogram                 Histogram
}

// Names returns the metric names seen, sorted.
func (s *Summary) Names() []string {
	names := make([]string, 0, len(s.Stats))
	for n := range s.Stats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Total returns the sum of a metric over all files.
func (s *Summary) Total(name string) float64 { return s.Stats[name].Total }

// Summarize aggregates records. Metrics missing from a record count as 0
// in totals and are left out of that metric's mean and deviation.
//
// Complexity: O(R*M) for R records of M metrics.
func Summarize(records []Record) *Summary {
	s := &Summary{Files: len(records), Stats: make(map[string]Stat)}

	values := make(map[string][]float64)
	var de, weights []float64
	for _, rec := range records {
		for _, m := range rec.Metrics {
			values[m.Name] = append(values[m.Name], m.Value)
		}
		if v, ok := rec.Metrics.Get(compare.MetricDE); ok {
			n, _ := rec.Metrics.Get(compare.MetricNodes)
			de = append(de, v)
			weights = append(weights, n)
		}
		s.countFile(rec.Metrics)
	}
	if floats(weights) > 0 {
		s.WeightedDE.Total = floats(de)
		s.WeightedDE.Mean, s.WeightedDE.StdDev = stat.PopMeanStdDev(de, weights)
	}
	for name, xs := range values {
		st := Stat{Total: floats(xs)}
		st.Mean, st.StdDev = stat.PopMeanStdDev(xs, nil)
		s.Stats[name] = st
	}

	s.primitives()
	s.objects()
	s.fileRates()
	return s
}

func floats(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum
}

func (s *Summary) tot(name string) int { return int(s.Stats[name].Total + 0.5) }

func (s *Summary) countFile(m compare.Metrics) {
	db, _ := m.Get(compare.MetricDB)
	switch d := int(db); {
	case db < 0:
	case d < HistogramBins:
		s.Histogram.Bins[d]++
	default:
		s.Histogram.Over++
	}
	if db == 0 {
		s.FileExpressions.Correct++
	}
	if de, ok := m.Get(compare.MetricDE); ok && de == 0 {
		s.CorrectByDE++
	}
	flag := func(name string, c *Count) {
		if v, _ := m.Get(name); v == 1 {
			c.Correct++
		}
	}
	flag(compare.MetricHasCorrectSegments, &s.FileObjects)
	flag(compare.MetricHasCorrectSegLab, &s.FileObjectClasses)
	flag(compare.MetricHasCorrectRelationLocations, &s.FileRelations)
	flag(compare.MetricHasCorrectRelLab, &s.FileRelationClasses)
	flag(compare.MetricHasCorrectStructure, &s.FileStructure)
}

func (s *Summary) primitives() {
	nodes, edges := s.tot(compare.MetricNodes), s.tot(compare.MetricEdges)
	dc, dl, ds := s.tot(compare.MetricDC), s.tot(compare.MetricDL), s.tot(compare.MetricDS)

	s.Nodes = count(nodes, nodes-dc)
	s.Edges = count(edges, edges-dl)
	cls := s.tot(compare.MetricEdgeDiffClassCount)
	s.EdgeErrors = Breakdown{Segmentation: ds, Class: cls, Relation: dl - ds - cls}
	s.Labels = count(nodes+edges, nodes+edges-s.tot(compare.MetricDB))

	pairs, dp := edges/2, s.tot(compare.MetricDPairs)
	s.NodePairs = count(pairs, pairs-dp)
	segp, undir := s.tot(compare.MetricSegPairErrors), s.tot(compare.MetricUndirDiffClassCount)
	s.PairErrors = Breakdown{Segmentation: segp, Class: undir, Relation: dp - segp - undir}
	s.NodesAndPairs = count(nodes+pairs, nodes-dc+pairs-dp)
	s.NodesAllEdges = count(nodes, s.tot(compare.MetricNodeCorrect))
}

func (s *Summary) objects() {
	nSeg, detSeg := s.tot(compare.MetricSeg), s.tot(compare.MetricDetectedSeg)
	segOK, clsOK := s.tot(compare.MetricCorrectSegments), s.tot(compare.MetricCorrectSegmentsAndClass)
	s.Objects = detection(nSeg, detSeg, segOK, detSeg-segOK)
	s.ObjectClasses = detection(nSeg, detSeg, clsOK, detSeg-clsOK)
	s.ObjectClassGivenDetection = relative(segOK, clsOK)

	nRel, detRel := s.tot(compare.MetricSegRelEdges), s.tot(compare.MetricDSegRelEdges)
	locOK, relOK := s.tot(compare.MetricCorrectSegRelLocations), s.tot(compare.MetricCorrectSegRels)
	locFP, relFP := 0, 0
	if detRel > 0 {
		locFP = detRel - locOK
		relFP = s.tot(compare.MetricSegRelErrors)
	}
	s.Relations = detection(nRel, detRel, locOK, locFP)
	s.RelationClasses = detection(nRel, detRel, relOK, relFP)
	s.RelationClassGivenLocation = relative(locOK, relOK)
}

func (s *Summary) fileRates() {
	for _, c := range []*Count{
		&s.FileObjects, &s.FileObjectClasses, &s.FileRelations,
		&s.FileRelationClasses, &s.FileStructure, &s.FileExpressions,
	} {
		*c = count(s.Files, c.Correct)
	}
	s.FileObjectClassGivenDet = relative(s.FileObjects.Correct, s.FileObjectClasses.Correct)
	s.FileRelationClassGivenLoc = relative(s.FileRelations.Correct, s.FileRelationClasses.Correct)
	s.FileExpressionGivenStruct = relative(s.FileStructure.Correct, s.FileExpressions.Correct)
}

// percent returns 100*n/d, or 100 for an empty total.
func percent(n, d int) float64 {
	if d == 0 {
		return 100
	}
	return 100 * float64(n) / float64(d)
}

func count(total, correct int) Count {
	return Count{Total: total, Correct: correct, Rate: percent(correct, total)}
}

func relative(base, correct int) Relative {
	if base == 0 {
		return Relative{}
	}
	return Relative{Base: base, Correct: correct, Rate: percent(correct, base), Defined: true}
}

func detection(targets, detected, correct, fp int) Detection {
	d := Detection{
		Targets:   targets,
		Detected:  detected,
		Correct:   correct,
		FalsePos:  fp,
		Recall:    percent(correct, targets),
		Precision: percent(correct, detected),
	}
	d.F = FMeasure(d.Recall, d.Precision)
	return d
}

// FMeasure returns the harmonic mean of recall and precision, 0 when both
// are 0.
func FMeasure(recall, precision float64) float64 {
	if recall+precision == 0 {
		return 0
	}
	return 2 * recall * precision / (recall + precision)
}
