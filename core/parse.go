package core

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxLineBytes bounds a single record line (objects may list many primitives).
const maxLineBytes = 16 << 20

// builder accumulates records into a Graph and resolves "*" edges.
type builder struct {
	g    *Graph
	line int
	raw  string

	objects      map[string][]string
	validMerge   map[EdgeKey]struct{}
	invalidNodes map[string]struct{}
}

func newBuilder(g *Graph) *builder {
	return &builder{
		g:            g,
		objects:      make(map[string][]string),
		validMerge:   make(map[EdgeKey]struct{}),
		invalidNodes: make(map[string]struct{}),
	}
}

// fail records err against the current line.
func (b *builder) fail(err error) {
	b.g.addIssue(err)
	b.g.logger.Warn().
		Str("source", b.g.source).
		Int("line", b.line).
		Str("record", b.raw).
		Err(err).
		Msg("invalid record")
}

func (r NodeRecord) apply(b *builder) {
	b.g.AddNode(r.ID, r.Label, r.Weight)
}

func (r EdgeRecord) apply(b *builder) {
	g := b.g
	if r.From == r.To {
		b.fail(fmt.Errorf("%w: %s -> %s", ErrSelfEdge, r.From, r.To))
		// A "*" self-edge names no label of its own, so nothing is added.
		if r.Label != MergeAll {
			g.AddNode(r.From, r.Label, r.Weight)
		}
		return
	}

	k := EdgeKey{From: r.From, To: r.To}
	label := r.Label
	if label == MergeAll {
		label = b.resolveMerge(k)
	}
	g.addEdge(k, label, r.Weight)
}

// resolveMerge returns the shared label of both endpoints, or MergeError
// after relabeling them when the merge is ambiguous.
func (b *builder) resolveMerge(k EdgeKey) string {
	g := b.g
	a, c := g.nodes[k.From], g.nodes[k.To]
	if a.Len() == 1 && a.SameNames(c) {
		b.validMerge[k] = struct{}{}
		return a.items[0].Name
	}

	b.fail(fmt.Errorf("%w: %s %s vs. %s %s", ErrAmbiguousMerge, k.From, a, k.To, c))
	g.nodes[k.From] = Single(MergeError, DefaultWeight)
	g.nodes[k.To] = Single(MergeError, DefaultWeight)
	b.invalidNodes[k.From] = struct{}{}
	b.invalidNodes[k.To] = struct{}{}
	return MergeError
}

func (r ObjectRecord) apply(b *builder) {
	g := b.g
	for _, p := range r.Primitives {
		g.AddNode(p, r.Label, r.Weight)
	}
	b.objects[r.ID] = r.Primitives
	for _, p := range r.Primitives {
		for _, q := range r.Primitives {
			if p != q {
				g.addEdge(EdgeKey{From: p, To: q}, r.Label, r.Weight)
			}
		}
	}
}

func (r RelationRecord) apply(b *builder) {
	from, okFrom := b.objects[r.From]
	to, okTo := b.objects[r.To]
	if !okFrom {
		b.fail(fmt.Errorf("%w: unknown object %q in relation", ErrStructural, r.From))
	}
	if !okTo {
		b.fail(fmt.Errorf("%w: unknown object %q in relation", ErrStructural, r.To))
	}
	if !okFrom || !okTo {
		return
	}
	for _, p := range from {
		for _, q := range to {
			if p == q {
				b.fail(fmt.Errorf("%w: %s -> %s (relation %s)", ErrSelfEdge, p, q, r.Label))
				continue
			}
			b.g.addEdge(EdgeKey{From: p, To: q}, r.Label, r.Weight)
		}
	}
}

// finish creates implicit nodes and propagates MergeError over resolved "*"
// edges touching an invalid node.
func (b *builder) finish() *Graph {
	g := b.g
	for _, k := range g.EdgeKeys() {
		g.ensureEndpoints(k)
	}

	merges := make([]EdgeKey, 0, len(b.validMerge))
	for k := range b.validMerge {
		merges = append(merges, k)
	}
	SortEdgeKeys(merges)

	stack := make([]string, 0, len(b.invalidNodes))
	for id := range b.invalidNodes {
		stack = append(stack, id)
	}
	sort.Strings(stack)

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, k := range merges {
			var other string
			switch next {
			case k.From:
				other = k.To
			case k.To:
				other = k.From
			default:
				continue
			}
			if _, seen := b.invalidNodes[other]; !seen {
				b.invalidNodes[other] = struct{}{}
				stack = append(stack, other)
			}
			g.nodes[other] = Single(MergeError, DefaultWeight)
			g.edges[k] = Single(MergeError, DefaultWeight)
		}
	}

	return g
}

// Parse reads a label graph in .lg format. It never fails: malformed records
// are recorded as issues and skipped; a read error is recorded as ErrResource
// and the records read so far are kept.
func Parse(r io.Reader, opts ...Option) *Graph {
	b := newBuilder(New(opts...))

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		b.line++
		b.raw = strings.TrimSpace(sc.Text())
		if b.raw == "" || strings.HasPrefix(b.raw, "#") {
			continue
		}

		fields, err := splitFields(b.raw)
		if err != nil {
			b.fail(err)
			continue
		}
		rec, err := ParseRecord(fields)
		if err != nil {
			b.fail(err)
			continue
		}
		if rec != nil {
			rec.apply(b)
		}
	}
	if err := sc.Err(); err != nil {
		b.g.recordf(ErrResource, "reading %s: %v", b.g.source, err)
	}

	return b.finish()
}

// splitFields splits one record line into comma-separated fields.
func splitFields(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	fields, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fields, nil
}

// Load opens name in fsys and parses it. A missing or unreadable resource
// yields an empty graph flagged with ErrResource.
func Load(fsys fs.FS, name string, opts ...Option) *Graph {
	opts = append([]Option{WithSource(name)}, opts...)
	f, err := fsys.Open(name)
	if err != nil {
		g := New(opts...)
		g.recordf(ErrResource, "cannot open %s: %v", name, err)
		return g
	}
	defer f.Close()

	return Parse(f, opts...)
}

// ReadFile loads the graph stored at path on the local file system.
func ReadFile(path string, opts ...Option) *Graph {
	opts = append([]Option{WithSource(path)}, opts...)
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path), opts...)
}

// FromLabels builds a graph from explicit label maps. Labels are inserted in
// sorted order. NaN and negative-infinity weights are recorded as
// ErrInvariant, self-edges as ErrSelfEdge (and dropped), ids and labels the
// .lg format cannot hold as ErrParse, and endpoints missing from nodes are
// created with NoLabel.
func FromLabels(nodes map[string]map[string]float64, edges map[EdgeKey]map[string]float64, opts ...Option) *Graph {
	g := New(opts...)

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, l := range sortedLabelNames(nodes[id]) {
			w := nodes[id][l]
			if invalidWeight(w) {
				g.recordf(ErrInvariant, "node %s label %q has weight %v", id, l, w)
			}
			g.AddNode(id, l, w)
		}
	}

	keys := make([]EdgeKey, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	SortEdgeKeys(keys)
	for _, k := range keys {
		if k.From == k.To {
			g.recordf(ErrSelfEdge, "%s -> %s", k.From, k.To)
			continue
		}
		if len(edges[k]) == 0 {
			continue
		}
		g.checkField("node id", k.From)
		g.checkField("node id", k.To)
		for _, l := range sortedLabelNames(edges[k]) {
			g.checkField("label", l)
			w := edges[k][l]
			if invalidWeight(w) {
				g.recordf(ErrInvariant, "edge %s -> %s label %q has weight %v", k.From, k.To, l, w)
			}
			g.addEdge(k, l, w)
		}
		g.ensureEndpoints(k)
	}

	return g
}

func invalidWeight(w float64) bool {
	return math.IsNaN(w) || math.IsInf(w, -1)
}

func sortedLabelNames(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for l := range m {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
