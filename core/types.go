// Package core defines the Graph, LabelSet and EdgeKey types, the sentinel
// labels shared by every lgeval package, and the sentinel errors recorded
// while building or mutating a graph.
package core

import (
	"errors"

	"github.com/rs/zerolog"
)

// Sentinel labels.
const (
	// NoLabel marks an unlabeled node or a missing edge.
	NoLabel = "_"
	// Absent labels placeholder nodes inserted by MatchAbsent.
	Absent = "ABSENT"
	// MergeError replaces labels of nodes joined by an ambiguous "*" edge.
	MergeError = "MergeError"
	// MergeAll is the edge label resolved to the endpoints' shared label.
	MergeAll = "*"
	// ErrorNode and ErrorEdge mark mismatches rewritten by compare.KeepOnlyCorrect.
	ErrorNode = "ERROR_N"
	ErrorEdge = "ERROR_E"
)

// DefaultWeight is used whenever a record omits its weight.
const DefaultWeight = 1.0

// Sentinel errors recorded in Graph.Issues().
var (
	// ErrParse indicates a field that could not be parsed.
	ErrParse = errors.New("core: parse error")

	// ErrRecordLength indicates a record shorter than its type's minimum field count.
	ErrRecordLength = errors.New("core: record too short")

	// ErrUnknownRecord indicates a record whose tag is not N, E, O, R or EO.
	ErrUnknownRecord = errors.New("core: unknown record type")

	// ErrResource indicates the graph source could not be opened or read.
	ErrResource = errors.New("core: resource unavailable")

	// ErrStructural indicates an invalid structure that was corrected best-effort.
	ErrStructural = errors.New("core: structural error")

	// ErrSelfEdge indicates an edge from a primitive to itself.
	ErrSelfEdge = errors.New("core: self-edge")

	// ErrAmbiguousMerge indicates a "*" edge between nodes without one shared label.
	ErrAmbiguousMerge = errors.New("core: ambiguous merge edge")

	// ErrInvariant indicates an invalid weight; the offending entry is left untouched.
	ErrInvariant = errors.New("core: invariant violation")
)

// EdgeKey identifies the directed edge From→To between two primitives.
type EdgeKey struct {
	From string
	To   string
}

// Reverse returns the key of the opposite direction.
func (k EdgeKey) Reverse() EdgeKey {
	return EdgeKey{From: k.To, To: k.From}
}

// Less orders keys by From, then To.
func (k EdgeKey) Less(o EdgeKey) bool {
	if k.From != o.From {
		return k.From < o.From
	}
	return k.To < o.To
}

// Option configures a Graph at construction time.
type Option func(g *Graph)

// WithSource records the name of the resource the graph comes from.
func WithSource(name string) Option {
	return func(g *Graph) { g.source = name }
}

// WithLogger installs a logger for recorded issues. Default: zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(g *Graph) { g.logger = l }
}

// WithWeight sets the graph weight used by Merge. Default: 1.0.
func WithWeight(w float64) Option {
	return func(g *Graph) { g.weight = w }
}

// Graph is a label graph.
//
// nodes maps primitive IDs to their labels; edges maps ordered primitive
// pairs (From ≠ To) to their labels. Every primitive referenced by an edge
// exists in nodes. absentNodes/absentEdges record placeholders inserted by
// MatchAbsent; they are cleared by RemoveAbsent.
type Graph struct {
	source string
	weight float64

	nodes map[string]*LabelSet
	edges map[EdgeKey]*LabelSet

	absentNodes map[string]struct{}
	absentEdges map[EdgeKey]struct{}

	err    bool
	issues []error
	logger zerolog.Logger
}

// New creates an empty Graph.
// Complexity: O(1)
func New(opts ...Option) *Graph {
	g := &Graph{
		weight:      1.0,
		nodes:       make(map[string]*LabelSet),
		edges:       make(map[EdgeKey]*LabelSet),
		absentNodes: make(map[string]struct{}),
		absentEdges: make(map[EdgeKey]struct{}),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
