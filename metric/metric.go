// SPDX-License-Identifier: MIT

package metric

import (
	"fmt"
	"sort"
	"strings"
)

// keySep separates labels inside a canonical key.
const keySep = "\x1f"

// DefaultSynonyms is the substitution table used by Synonym when none is given.
var DefaultSynonyms = map[string]string{
	"X":      "x",
	`\times`: "x",
	"P":      "p",
	"O":      "o",
	"C":      "c",
	`\prime`: "COMMA",
}

// Default compares label sets by symmetric difference.
//
// cost = max(|A∖B|, |B∖A|); diffs = (A∖B) × (B∖A), an empty side is "_".
type Default struct{}

// Compare implements Metric.
func (Default) Compare(a, b []string) (int, []Pair) {
	return symmetric(toSet(a), toSet(b))
}

// Key implements Keyer.
func (Default) Key(labels []string) string {
	return setKey(toSet(labels))
}

// Synonym folds labels through Table before comparing them like Default.
// A nil Table means DefaultSynonyms.
type Synonym struct {
	Table map[string]string
}

func (s Synonym) fold(labels []string) map[string]struct{} {
	table := s.Table
	if table == nil {
		table = DefaultSynonyms
	}
	out := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if r, ok := table[l]; ok {
			l = r
		}
		out[l] = struct{}{}
	}
	return out
}

// Compare implements Metric.
func (s Synonym) Compare(a, b []string) (int, []Pair) {
	return symmetric(s.fold(a), s.fold(b))
}

// Key implements Keyer.
func (s Synonym) Key(labels []string) string {
	return setKey(s.fold(labels))
}

// Filtered removes Ignore labels and, when Select is non-empty, keeps only
// Select labels before comparing like Default.
type Filtered struct {
	Ignore map[string]struct{}
	Select map[string]struct{}
}

// NewFiltered builds a Filtered metric from label lists.
func NewFiltered(ignore, selected []string) Filtered {
	f := Filtered{}
	if len(ignore) > 0 {
		f.Ignore = toSet(ignore)
	}
	if len(selected) > 0 {
		f.Select = toSet(selected)
	}
	return f
}

func (f Filtered) filter(labels []string) map[string]struct{} {
	out := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, skip := f.Ignore[l]; skip {
			continue
		}
		if len(f.Select) > 0 {
			if _, keep := f.Select[l]; !keep {
				continue
			}
		}
		out[l] = struct{}{}
	}
	return out
}

// Compare implements Metric.
func (f Filtered) Compare(a, b []string) (int, []Pair) {
	return symmetric(f.filter(a), f.filter(b))
}

// Key implements Keyer.
func (f Filtered) Key(labels []string) string {
	return setKey(f.filter(labels))
}

// Intersect accepts two label sets as soon as they share one label.
// Otherwise the cost is 1 and diffs is the product of both sets.
type Intersect struct{}

// Compare implements Metric.
func (Intersect) Compare(a, b []string) (int, []Pair) {
	sa, sb := toSet(a), toSet(b)
	for l := range sa {
		if _, ok := sb[l]; ok {
			return 0, nil
		}
	}
	return 1, product(sortedKeys(sa), sortedKeys(sb))
}

// ByName returns the metric registered under name. ignore and selected are
// only used by the filtered metric.
func ByName(name string, ignore, selected []string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameDefault:
		return Default{}, nil
	case NameSynonym:
		return Synonym{}, nil
	case NameFiltered:
		return NewFiltered(ignore, selected), nil
	case NameIntersect:
		return Intersect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// symmetric is the shared core of Default, Synonym and Filtered.
func symmetric(sa, sb map[string]struct{}) (int, []Pair) {
	var ab, ba []string
	for l := range sa {
		if _, ok := sb[l]; !ok {
			ab = append(ab, l)
		}
	}
	for l := range sb {
		if _, ok := sa[l]; !ok {
			ba = append(ba, l)
		}
	}
	if len(ab) == 0 && len(ba) == 0 {
		return 0, nil
	}
	sort.Strings(ab)
	sort.Strings(ba)

	cost := len(ab)
	if len(ba) > cost {
		cost = len(ba)
	}
	return cost, product(ab, ba)
}

// product pairs every label of a with every label of b; an empty side is "_".
func product(a, b []string) []Pair {
	if len(a) == 0 {
		a = []string{NoLabel}
	}
	if len(b) == 0 {
		b = []string{NoLabel}
	}
	out := make([]Pair, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, Pair{A: x, B: y})
		}
	}
	return out
}

func toSet(labels []string) map[string]struct{} {
	s := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

func sortedKeys(s map[string]struct{}) []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func setKey(s map[string]struct{}) string {
	return strings.Join(sortedKeys(s), keySep)
}
