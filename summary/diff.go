package summary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/katalvlaran/lgeval/compare"
	"github.com/katalvlaran/lgeval/core"
)

// ErrDiffFormat is returned by ReadDiff for a malformed diff line.
var ErrDiffFormat = errors.New("summary: malformed diff line")

// Diff line tags, as written by compare.WriteDiff and batch runs.
const (
	diffHeaderTag  = "DIFF"
	diffNodeTag    = "*N"
	diffEdgeTag    = "*E"
	diffSegmentTag = "*S"
)

// Diff is the diff block of one compared pair.
type Diff struct {
	Output string
	Target string
	Nodes  []compare.NodeDiff
	Edges  []compare.EdgeDiff
	// Segments maps a primitive to the merge neighbours it disagrees on.
	Segments map[string][]string
}

// ReadDiff reads a diff stream. Lines before the first "DIFF,output,target"
// header form a block with empty file names, so the output of a single
// comparison reads as one block.
func ReadDiff(r io.Reader) ([]Diff, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var (
		out     []Diff
		pending *Diff
	)
	flush := func() {
		if pending != nil {
			out = append(out, *pending)
		}
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			flush()
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("summary: reading diff: %w", err)
		}
		line, _ := cr.FieldPos(0)
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}

		tag := rec[0]
		if tag == diffHeaderTag {
			flush()
			pending = &Diff{}
			if len(rec) > 1 {
				pending.Output = rec[1]
			}
			if len(rec) > 2 {
				pending.Target = rec[2]
			}
			continue
		}
		if pending == nil {
			pending = &Diff{}
		}

		switch tag {
		case diffNodeTag:
			// *N,id,out,1.0,:vs:,target,1.0
			if len(rec) != 7 {
				return nil, fmt.Errorf("%w: line %d: node diff has %d fields", ErrDiffFormat, line, len(rec))
			}
			pending.Nodes = append(pending.Nodes, compare.NodeDiff{ID: rec[1], Out: rec[2], Target: rec[5]})
		case diffEdgeTag:
			// *E,from,to,out,1.0,:vs:,target,1.0
			if len(rec) != 8 {
				return nil, fmt.Errorf("%w: line %d: edge diff has %d fields", ErrDiffFormat, line, len(rec))
			}
			pending.Edges = append(pending.Edges, compare.EdgeDiff{
				Key: core.EdgeKey{From: rec[1], To: rec[2]}, Out: rec[3], Target: rec[6],
			})
		case diffSegmentTag:
			if len(rec) != 3 {
				return nil, fmt.Errorf("%w: line %d: segment diff has %d fields", ErrDiffFormat, line, len(rec))
			}
			if pending.Segments == nil {
				pending.Segments = make(map[string][]string)
			}
			pending.Segments[rec[1]] = append(pending.Segments[rec[1]], rec[2])
		default:
			return nil, fmt.Errorf("%w: line %d: unknown tag %q", ErrDiffFormat, line, tag)
		}
	}
}

// Confusions counts label confusions: output label, then target label.
type Confusions map[string]map[string]int

// Add counts n confusions of target read as out.
func (c Confusions) Add(out, target string, n int) {
	row, ok := c[out]
	if !ok {
		row = make(map[string]int)
		c[out] = row
	}
	row[target] += n
}

// Get returns the count for out read against target.
func (c Confusions) Get(out, target string) int { return c[out][target] }

// Total is the sum of all counts.
func (c Confusions) Total() int {
	n := 0
	for _, row := range c {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// Labels returns every output and target label, sorted.
func (c Confusions) Labels() []string {
	seen := make(map[string]struct{})
	for o, row := range c {
		seen[o] = struct{}{}
		for t := range row {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// LabelConfusion accumulates node and edge label confusions over diffs.
type LabelConfusion struct {
	Nodes Confusions
	Edges Confusions
	// Symbols are the labels seen on either side of a node confusion.
	Symbols map[string]struct{}
}

// NewLabelConfusion returns an empty LabelConfusion.
func NewLabelConfusion() *LabelConfusion {
	return &LabelConfusion{
		Nodes:   make(Confusions),
		Edges:   make(Confusions),
		Symbols: make(map[string]struct{}),
	}
}

// Add counts the node and edge diffs of d. Segment diffs are object level
// and are not counted.
func (lc *LabelConfusion) Add(d Diff) {
	for _, n := range d.Nodes {
		lc.Nodes.Add(n.Out, n.Target, 1)
		lc.Symbols[n.Out] = struct{}{}
		lc.Symbols[n.Target] = struct{}{}
	}
	for _, e := range d.Edges {
		lc.Edges.Add(e.Out, e.Target, 1)
	}
}

// ShortEdges is the edge confusion matrix with every label that is not a
// pure relation folded into core.MergeAll.
type ShortEdges struct {
	Matrix Confusions
	// Relations are the edge labels kept as they are.
	Relations []string

	Segmentation int // entries in the merge row or column
	FalseMerge   int // merge in the output, a relation in the target
	MissedMerge  int // a relation in the output, merge in the target
	Relation     int // relation against relation
}

// Short folds the edge confusions. A label is a relation when it is not a
// node label: neither confused on a node nor listed in nodeLabels.
func (lc *LabelConfusion) Short(nodeLabels []string) ShortEdges {
	notRel := map[string]struct{}{core.MergeAll: {}}
	for l := range lc.Symbols {
		notRel[l] = struct{}{}
	}
	for _, l := range nodeLabels {
		notRel[l] = struct{}{}
	}
	fold := func(l string) string {
		if _, ok := notRel[l]; ok {
			return core.MergeAll
		}
		return l
	}

	s := ShortEdges{Matrix: make(Confusions)}
	rels := make(map[string]struct{})
	for o, row := range lc.Edges {
		fo := fold(o)
		if fo == o {
			rels[o] = struct{}{}
		}
		for t, n := range row {
			ft := fold(t)
			if ft == t {
				rels[t] = struct{}{}
			}
			s.Matrix.Add(fo, ft, n)

			switch {
			case fo == o && ft == t:
				s.Relation += n
			case fo != o && ft == t:
				s.Segmentation += n
				s.FalseMerge += n
			case fo == o && ft != t:
				s.Segmentation += n
				s.MissedMerge += n
			default:
				s.Segmentation += n
			}
		}
	}
	s.Relations = sortedKeys(rels)
	return s
}

// WriteLabelReport writes the node, short edge and full edge confusion
// matrices. Output labels head the rows, target labels the columns. The
// node labels of inv, when given, are never treated as relations.
func (lc *LabelConfusion) WriteLabelReport(w io.Writer, name string, inv *Inventory) error {
	var nodeLabels []string
	if inv != nil {
		nodeLabels = inv.NodeLabels()
	}
	short := lc.Short(nodeLabels)

	e := &errWriter{w: w}
	e.printf("Label confusion summary for: %s\n\n", name)

	e.printf("I. Node Label Confusion Matrix: %d unique labels, %d errors\n",
		len(lc.Nodes.Labels()), lc.Nodes.Total())
	writeMatrix(e, lc.Nodes, lc.Nodes.Labels())

	labels := append([]string{core.MergeAll}, short.Relations...)
	sort.Strings(labels)
	e.printf("\n\nII. Edge Label Confusion Matrix (Short): %d unique relationship labels + %s (merge), %d errors\n",
		len(short.Relations), core.MergeAll, short.Segmentation+short.Relation)
	e.printf("%d segmentation and pair classification errors (%d merge vs. merge, %d false merges, %d missed merges), %d relationship errors\n",
		short.Segmentation, short.Segmentation-short.FalseMerge-short.MissedMerge,
		short.FalseMerge, short.MissedMerge, short.Relation)
	writeMatrix(e, short.Matrix, labels)

	e.printf("\n\nIII. Edge Label Confusion Matrix (Full): %d unique labels, %d errors\n",
		len(lc.Edges.Labels()), lc.Edges.Total())
	writeMatrix(e, lc.Edges, lc.Edges.Labels())
	return e.err
}

// writeMatrix writes one CSV matrix; zero cells stay empty.
func writeMatrix(e *errWriter, c Confusions, labels []string) {
	var b strings.Builder
	b.WriteString("Output:")
	for _, l := range labels {
		b.WriteString(",'" + l + "'")
	}
	e.printf("%s\n", b.String())
	for _, o := range labels {
		b.Reset()
		b.WriteString("'" + o + "'")
		for _, t := range labels {
			b.WriteByte(',')
			if n := c.Get(o, t); n != 0 {
				fmt.Fprintf(&b, "%d", n)
			}
		}
		e.printf("%s\n", b.String())
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
