package confusion

import (
	"strconv"

	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/smallgraph"
)

// Entry is one key/value pair of a Dict.
type Entry[V any] struct {
	Key   *smallgraph.SmallGraph
	Value V
}

// Dict maps small graphs to values, treating isomorphic graphs as the same
// key. The first graph inserted for a class stays its representative.
type Dict[V any] struct {
	ctx     metric.Context
	entries []Entry[V]
	buckets map[string][]int
}

// NewDict returns an empty Dict comparing keys under ctx.
func NewDict[V any](ctx metric.Context) *Dict[V] {
	return &Dict[V]{ctx: ctx, buckets: make(map[string][]int)}
}

// bucket returns the canonical invariant of sg: isomorphic graphs always
// share it.
func (d *Dict[V]) bucket(sg *smallgraph.SmallGraph) string {
	b := strconv.Itoa(sg.NodeCount())
	if k, ok := d.ctx.Node.(metric.Keyer); ok {
		b += ":" + k.Key(sg.Labels())
	}
	return b
}

// find returns the bucket of sg and the index of its entry, or -1.
func (d *Dict[V]) find(sg *smallgraph.SmallGraph) (string, int) {
	b := d.bucket(sg)
	for _, i := range d.buckets[b] {
		if smallgraph.Isomorphic(d.entries[i].Key, sg, d.ctx) {
			return b, i
		}
	}
	return b, -1
}

func (d *Dict[V]) insert(b string, sg *smallgraph.SmallGraph, v V) {
	d.buckets[b] = append(d.buckets[b], len(d.entries))
	d.entries = append(d.entries, Entry[V]{Key: sg, Value: v})
}

// Get returns the value stored for sg, inserting newV() first when no
// isomorphic key exists.
func (d *Dict[V]) Get(sg *smallgraph.SmallGraph, newV func() V) V {
	b, i := d.find(sg)
	if i >= 0 {
		return d.entries[i].Value
	}
	v := newV()
	d.insert(b, sg, v)
	return v
}

// Set stores v for sg, replacing the value of an isomorphic key.
func (d *Dict[V]) Set(sg *smallgraph.SmallGraph, v V) {
	b, i := d.find(sg)
	if i >= 0 {
		d.entries[i].Value = v
		return
	}
	d.insert(b, sg, v)
}

// Contains reports whether a key isomorphic to sg is present.
func (d *Dict[V]) Contains(sg *smallgraph.SmallGraph) bool {
	_, i := d.find(sg)
	return i >= 0
}

// Entries returns the entries in insertion order.
func (d *Dict[V]) Entries() []Entry[V] {
	out := make([]Entry[V], len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of distinct keys.
func (d *Dict[V]) Len() int { return len(d.entries) }
