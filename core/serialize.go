package core

import (
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Serialize renders g in canonical .lg form: a source header, then node lines
// and edge lines, each block sorted lexicographically.
func Serialize(g *Graph) string {
	var b strings.Builder
	_, _ = g.WriteTo(&b)
	return b.String()
}

// WriteTo writes the canonical .lg form of g to w.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	nodeLines := make([]string, 0, len(g.nodes))
	for id, ls := range g.nodes {
		for _, l := range ls.items {
			nodeLines = append(nodeLines, "N,"+id+","+l.Name+","+FormatWeight(l.Weight))
		}
	}
	edgeLines := make([]string, 0, len(g.edges))
	for k, ls := range g.edges {
		for _, l := range ls.items {
			edgeLines = append(edgeLines, "E,"+k.From+","+k.To+","+l.Name+","+FormatWeight(l.Weight))
		}
	}
	sort.Strings(nodeLines)
	sort.Strings(edgeLines)

	var b strings.Builder
	b.WriteString("# " + g.SourceName() + "\n\n")
	b.WriteString("# " + strconv.Itoa(len(nodeLines)) + " Nodes\n")
	b.WriteString("# FORMAT: N, Primitive ID, Label, Weight\n")
	for _, l := range nodeLines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString("# " + strconv.Itoa(len(edgeLines)) + " Edges\n")
	b.WriteString("# FORMAT: E, Primitive ID (parent), Primitive ID (child), Label, Weight\n")
	for _, l := range edgeLines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// SourceName returns the last element of the source path, or "" if unset.
func (g *Graph) SourceName() string {
	if g.source == "" {
		return ""
	}
	return path.Base(strings.ReplaceAll(g.source, `\`, "/"))
}
