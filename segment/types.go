package segment

import (
	"sort"
	"strings"

	"github.com/katalvlaran/lgeval/core"
)

// keySep joins primitive IDs into an object key.
const keySep = "\x1f"

// ObjectPair identifies the relation Parent→Child between two objects.
type ObjectPair struct {
	Parent string
	Child  string
}

// Object is one segment: a sorted primitive set and its labels in the order
// they were found.
type Object struct {
	ID         string
	Primitives []string
	Labels     []string
}

// Key returns the canonical key of the object's primitive set.
func (o *Object) Key() string {
	return PrimitiveKey(o.Primitives)
}

// HasLabel reports whether label is one of the object's labels.
func (o *Object) HasLabel(label string) bool {
	for _, l := range o.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// PrimitiveKey returns the canonical key of an already sorted primitive list.
func PrimitiveKey(prims []string) string {
	return strings.Join(prims, keySep)
}

// Segmentation is the result of Extract.
type Segmentation struct {
	// Objects maps object IDs to objects.
	Objects map[string]*Object
	// PrimitiveObjects maps primitive → label → object ID. Every primitive of
	// the graph has an entry, possibly empty.
	PrimitiveObjects map[string]map[string]string
	// Roots lists objects without incoming relations, in object order.
	Roots []string
	// Relations maps object pairs to relation labels; weights are summed over
	// the primitive edges that confirmed them.
	Relations map[ObjectPair]*core.LabelSet

	order []string
	byKey map[string]string
}

func newSegmentation() *Segmentation {
	return &Segmentation{
		Objects:          make(map[string]*Object),
		PrimitiveObjects: make(map[string]map[string]string),
		Relations:        make(map[ObjectPair]*core.LabelSet),
		byKey:            make(map[string]string),
	}
}

// Len returns the number of objects.
func (s *Segmentation) Len() int { return len(s.order) }

// ObjectIDs returns object IDs in creation order (Obj0, Obj1, …).
func (s *Segmentation) ObjectIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ObjectByKey returns the object whose primitive set has the given key.
func (s *Segmentation) ObjectByKey(key string) (*Object, bool) {
	id, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return s.Objects[id], true
}

// RelationPairs returns the relation pairs sorted by parent, then child.
func (s *Segmentation) RelationPairs() []ObjectPair {
	out := make([]ObjectPair, 0, len(s.Relations))
	for p := range s.Relations {
		out = append(out, p)
	}
	sortPairs(out)
	return out
}

// IsRoot reports whether id has no incoming relation.
func (s *Segmentation) IsRoot(id string) bool {
	for _, r := range s.Roots {
		if r == id {
			return true
		}
	}
	return false
}

func sortPairs(ps []ObjectPair) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Parent != ps[j].Parent {
			return ps[i].Parent < ps[j].Parent
		}
		return ps[i].Child < ps[j].Child
	})
}
