package confusion

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteReport writes the rows of m as text, most frequent first.
//
// Rows with at least minCount errors list every output graph seen at least
// minCount times and fold the rest into one "other" line. Rows below
// minCount but with at least targetMin errors are listed as a single "other"
// line. Smaller rows are only counted in the trailing "additional" line.
func (m *Matrix) WriteReport(w io.Writer, minCount, targetMin int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d incorrect targets, %d errors\n", m.Len(), m.ErrorCount())
	hidden := m.writeRows(bw, "", minCount, targetMin)
	writeHidden(bw, hidden)
	return bw.Flush()
}

func (m *Matrix) writeRows(bw *bufio.Writer, indent string, minCount, targetMin int) *Counter {
	hidden := &Counter{}
	for i, r := range m.Rows() {
		switch {
		case r.Total.Count >= minCount:
			fmt.Fprintf(bw, "%sT%d\t%d errors\t%s\n", indent, i+1, r.Total.Count, r.Target)
			other := &Counter{}
			for _, c := range r.Cells {
				if c.Counter.Count >= minCount {
					fmt.Fprintf(bw, "%s\t%d\t%s\t%s\n", indent, c.Counter.Count, c.Output, strings.Join(c.Counter.UniqueFiles(), " "))
				} else {
					other = other.Add(c.Counter)
				}
			}
			if other.Count > 0 {
				fmt.Fprintf(bw, "%s\t%d\tother\t%s\n", indent, other.Count, strings.Join(other.UniqueFiles(), " "))
			}
		case r.Total.Count >= targetMin:
			fmt.Fprintf(bw, "%sT%d\t%d errors\t%s\n", indent, i+1, r.Total.Count, r.Target)
			fmt.Fprintf(bw, "%s\t%d\tother\t%s\n", indent, r.Total.Count, strings.Join(r.Total.UniqueFiles(), " "))
		default:
			hidden = hidden.Add(r.Total)
		}
	}
	return hidden
}

// WriteReport writes the object rows of o as text, each followed by its
// primitive-level rows (see Matrix.WriteReport, with a target minimum of 1).
func (o *ObjectMatrix) WriteReport(w io.Writer, minCount int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d incorrect object targets, %d errors\n", o.Len(), o.ErrorCount())
	hidden := &Counter{}
	for i, r := range o.Objects() {
		if r.Total < minCount {
			for _, row := range r.Matrix.Rows() {
				hidden = hidden.Add(row.Total)
			}
			continue
		}
		fmt.Fprintf(bw, "O%d\t%d errors\t%s\n", i+1, r.Total, r.Object)
		hidden = hidden.Add(r.Matrix.writeRows(bw, "\t", minCount, 1))
	}
	writeHidden(bw, hidden)
	return bw.Flush()
}

func writeHidden(bw *bufio.Writer, hidden *Counter) {
	fmt.Fprintf(bw, "# additional errors: %d", hidden.Count)
	if files := hidden.UniqueFiles(); len(files) > 0 {
		fmt.Fprintf(bw, "\t%s", strings.Join(files, " "))
	}
	bw.WriteByte('\n')
}
