package core

import (
	"sort"
	"strconv"
	"strings"
)

// Label is one (name, weight) pair.
type Label struct {
	Name   string
	Weight float64
}

// LabelSet is a small ordered collection of labels with unique names.
// Iteration follows insertion order; Set on an existing name replaces the
// weight in place.
type LabelSet struct {
	items []Label
}

// NewLabelSet returns a set holding labels in order (later duplicates win).
func NewLabelSet(labels ...Label) *LabelSet {
	s := &LabelSet{items: make([]Label, 0, len(labels))}
	for _, l := range labels {
		s.Set(l.Name, l.Weight)
	}
	return s
}

// Single returns a set holding exactly one label.
func Single(name string, weight float64) *LabelSet {
	return &LabelSet{items: []Label{{Name: name, Weight: weight}}}
}

// Set adds name with weight, or replaces the weight if name is present.
func (s *LabelSet) Set(name string, weight float64) {
	for i := range s.items {
		if s.items[i].Name == name {
			s.items[i].Weight = weight
			return
		}
	}
	s.items = append(s.items, Label{Name: name, Weight: weight})
}

// Get returns the weight of name.
func (s *LabelSet) Get(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	for _, l := range s.items {
		if l.Name == name {
			return l.Weight, true
		}
	}
	return 0, false
}

// Has reports whether name is present.
func (s *LabelSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Len returns the number of labels.
func (s *LabelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Labels returns a copy of the labels in insertion order.
func (s *LabelSet) Labels() []Label {
	if s == nil {
		return nil
	}
	out := make([]Label, len(s.items))
	copy(out, s.items)
	return out
}

// Names returns label names in insertion order.
func (s *LabelSet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.items))
	for i, l := range s.items {
		out[i] = l.Name
	}
	return out
}

// SortedNames returns label names in lexicographic order.
func (s *LabelSet) SortedNames() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}

// IsOnly reports whether the set holds exactly the single label name.
func (s *LabelSet) IsOnly(name string) bool {
	return s.Len() == 1 && s.items[0].Name == name
}

// SameNames reports whether both sets hold the same label names, ignoring
// order and weights.
func (s *LabelSet) SameNames(o *LabelSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, l := range s.items {
		if !o.Has(l.Name) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same names with the same weights.
func (s *LabelSet) Equal(o *LabelSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, l := range s.items {
		w, ok := o.Get(l.Name)
		if !ok || w != l.Weight {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s *LabelSet) Clone() *LabelSet {
	if s == nil {
		return &LabelSet{}
	}
	return &LabelSet{items: s.Labels()}
}

// Scale multiplies every weight by f.
func (s *LabelSet) Scale(f float64) {
	for i := range s.items {
		s.items[i].Weight *= f
	}
}

// String renders the set as {name:weight, …} in insertion order.
func (s *LabelSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, l := range s.Labels() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.Name)
		b.WriteByte(':')
		b.WriteString(FormatWeight(l.Weight))
	}
	b.WriteByte('}')
	return b.String()
}

// FormatWeight renders a weight in its shortest form, keeping a decimal point
// for integral values (1 → "1.0").
func FormatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
