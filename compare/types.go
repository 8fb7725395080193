package compare

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/segment"
)

// Metric names, in output order.
const (
	MetricDB                          = "D_B"
	MetricDC                          = "D_C"
	MetricDL                          = "D_L"
	MetricDR                          = "D_R"
	MetricDS                          = "D_S"
	MetricDE                          = "D_E(%)"
	MetricNodes                       = "nNodes"
	MetricEdges                       = "nEdges"
	MetricSegRelEdges                 = "nSegRelEdges"
	MetricDPairs                      = "dPairs"
	MetricSegPairErrors               = "segPairErrors"
	MetricNodeCorrect                 = "nodeCorrect"
	MetricEdgeDiffClassCount          = "edgeDiffClassCount"
	MetricUndirDiffClassCount         = "undirDiffClassCount"
	MetricSeg                         = "nSeg"
	MetricDetectedSeg                 = "detectedSeg"
	MetricDSegRelEdges                = "dSegRelEdges"
	MetricCorrectSegments             = "CorrectSegments"
	MetricCorrectSegmentsAndClass     = "CorrectSegmentsAndClass"
	MetricClassError                  = "ClassError"
	MetricCorrectSegRels              = "CorrectSegRels"
	MetricCorrectSegRelLocations      = "CorrectSegRelLocations"
	MetricSegRelErrors                = "SegRelErrors"
	MetricHasCorrectSegments          = "hasCorrectSegments"
	MetricHasCorrectSegLab            = "hasCorrectSegLab"
	MetricHasCorrectRelationLocations = "hasCorrectRelationLocations"
	MetricHasCorrectRelLab            = "hasCorrectRelLab"
	MetricHasCorrectStructure         = "hasCorrectStructure"
)

// RelationErrorLabel labels entries of Result.RelationDiffs.
const RelationErrorLabel = "Error"

// Metric is one named value.
type Metric struct {
	Name  string
	Value float64
}

// Metrics is an ordered list of metrics.
type Metrics []Metric

// Get returns the value of the named metric.
func (m Metrics) Get(name string) (float64, bool) {
	for _, x := range m {
		if x.Name == name {
			return x.Value, true
		}
	}
	return 0, false
}

// Names returns the metric names in order.
func (m Metrics) Names() []string {
	out := make([]string, len(m))
	for i, x := range m {
		out[i] = x.Name
	}
	return out
}

// NodeDiff is one mismatched label pair on node ID.
type NodeDiff struct {
	ID     string
	Out    string
	Target string
}

// EdgeDiff is one mismatched label pair on edge Key. A missing edge shows
// as the "_" label on its side.
type EdgeDiff struct {
	Key    core.EdgeKey
	Out    string
	Target string
}

// SegmentDiff lists, for one primitive, the merge neighbours on which the
// output and the target disagree.
type SegmentDiff struct {
	Out    []string
	Target []string
}

// Result holds everything Compare computes.
type Result struct {
	Metrics   Metrics
	NodeDiffs []NodeDiff
	EdgeDiffs []EdgeDiff
	// SegmentDiffs is keyed by primitive ID.
	SegmentDiffs map[string]SegmentDiff
	// CorrectSegments lists output object IDs whose primitive set matches a
	// target object.
	CorrectSegments []string
	// RelationDiffs lists output object relations that are wrongly located
	// or wrongly labeled.
	RelationDiffs map[segment.ObjectPair]*core.LabelSet
}

// NodeErrors returns the set of node IDs with a label diff.
func (r *Result) NodeErrors() map[string]struct{} {
	out := make(map[string]struct{}, len(r.NodeDiffs))
	for _, d := range r.NodeDiffs {
		out[d.ID] = struct{}{}
	}
	return out
}

// EdgeErrors returns the set of edge keys with a label diff.
func (r *Result) EdgeErrors() map[core.EdgeKey]struct{} {
	out := make(map[core.EdgeKey]struct{}, len(r.EdgeDiffs))
	for _, d := range r.EdgeDiffs {
		out[d.Key] = struct{}{}
	}
	return out
}

// Option configures Compare.
type Option func(o *options)

type options struct {
	logger zerolog.Logger
}

// WithLogger logs a debug summary of every comparison. Default: zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}
