package segment

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
)

// WriteObjects renders g in object/relation form: one O line per object
// label and one R line per relation label, each sorted. Weights are always
// written as 1.0.
func WriteObjects(w io.Writer, g *core.Graph, ctx metric.Context) error {
	seg := Extract(g, ctx)
	bw := bufio.NewWriter(w)

	ids := seg.ObjectIDs()
	sort.Strings(ids)

	bw.WriteString("# " + g.SourceName() + "\n\n")
	bw.WriteString("# " + strconv.Itoa(len(ids)) + " Objects\n")
	bw.WriteString("# FORMAT: O, Object ID, Label, Weight, [ Primitive ID List ]\n")
	for _, id := range ids {
		obj := seg.Objects[id]
		labels := append([]string(nil), obj.Labels...)
		sort.Strings(labels)
		prims := strings.Join(obj.Primitives, ", ")
		for _, l := range labels {
			bw.WriteString("O, " + id + ", " + l + ", 1.0, " + prims + "\n")
		}
	}

	pairs := seg.RelationPairs()
	bw.WriteString("\n# " + strconv.Itoa(len(pairs)) + " Relationships (Pairs of Objects)\n")
	bw.WriteString("# FORMAT: R, Object ID (parent), Object ID (child), Label, Weight\n")
	for _, p := range pairs {
		for _, l := range seg.Relations[p].SortedNames() {
			bw.WriteString("R, " + p.Parent + ", " + p.Child + ", " + l + ", 1.0\n")
		}
	}

	return bw.Flush()
}
