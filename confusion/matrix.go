package confusion

import (
	"sort"

	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/smallgraph"
)

// Matrix counts confusions of target substructures (rows) with output
// substructures (columns).
type Matrix struct {
	ctx  metric.Context
	rows *Dict[*Dict[*Counter]]
}

// NewMatrix returns an empty Matrix comparing graphs under ctx.
func NewMatrix(ctx metric.Context) *Matrix {
	return &Matrix{ctx: ctx, rows: NewDict[*Dict[*Counter]](ctx)}
}

// Incr counts one confusion of row with col seen in file.
func (m *Matrix) Incr(row, col *smallgraph.SmallGraph, file string) {
	cols := m.rows.Get(row, func() *Dict[*Counter] { return NewDict[*Counter](m.ctx) })
	cols.Get(col, func() *Counter { return &Counter{} }).Incr(file)
}

// Len returns the number of distinct target rows.
func (m *Matrix) Len() int { return m.rows.Len() }

// ErrorCount returns the total number of counted confusions.
func (m *Matrix) ErrorCount() int {
	n := 0
	for _, r := range m.rows.Entries() {
		for _, c := range r.Value.Entries() {
			n += c.Value.Count
		}
	}
	return n
}

// Cell is one (output graph, counter) column of a row.
type Cell struct {
	Output  *smallgraph.SmallGraph
	Counter *Counter
}

// Row is one target graph with its confusions.
type Row struct {
	Target *smallgraph.SmallGraph
	Total  *Counter
	Cells  []Cell
}

// Rows returns the rows by decreasing total count, cells by decreasing
// count. Ties keep insertion order.
func (m *Matrix) Rows() []Row {
	rows := make([]Row, 0, m.rows.Len())
	for _, r := range m.rows.Entries() {
		row := Row{Target: r.Key, Total: &Counter{}}
		for _, c := range r.Value.Entries() {
			row.Cells = append(row.Cells, Cell{Output: c.Key, Counter: c.Value})
			row.Total = row.Total.Add(c.Value)
		}
		sort.SliceStable(row.Cells, func(i, j int) bool {
			return row.Cells[i].Counter.Count > row.Cells[j].Counter.Count
		})
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total.Count > rows[j].Total.Count })
	return rows
}

// ObjectMatrix groups confusion matrices by object-level graph.
type ObjectMatrix struct {
	ctx     metric.Context
	objects *Dict[*Matrix]
}

// NewObjectMatrix returns an empty ObjectMatrix comparing graphs under ctx.
func NewObjectMatrix(ctx metric.Context) *ObjectMatrix {
	return &ObjectMatrix{ctx: ctx, objects: NewDict[*Matrix](ctx)}
}

// Incr counts one confusion of row with col, under obj, seen in file.
func (o *ObjectMatrix) Incr(obj, row, col *smallgraph.SmallGraph, file string) {
	o.objects.Get(obj, func() *Matrix { return NewMatrix(o.ctx) }).Incr(row, col, file)
}

// Len returns the number of distinct object graphs.
func (o *ObjectMatrix) Len() int { return o.objects.Len() }

// ErrorCount returns the total number of counted confusions.
func (o *ObjectMatrix) ErrorCount() int {
	n := 0
	for _, e := range o.objects.Entries() {
		n += e.Value.ErrorCount()
	}
	return n
}

// ObjectRow is one object graph with its primitive-level matrix.
type ObjectRow struct {
	Object *smallgraph.SmallGraph
	Total  int
	Matrix *Matrix
}

// Objects returns the object rows by decreasing error count. Ties keep
// insertion order.
func (o *ObjectMatrix) Objects() []ObjectRow {
	out := make([]ObjectRow, 0, o.objects.Len())
	for _, e := range o.objects.Entries() {
		out = append(out, ObjectRow{Object: e.Key, Total: e.Value.ErrorCount(), Matrix: e.Value})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}
