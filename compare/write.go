package compare

import (
	"bufio"
	"io"
	"sort"
	"strconv"
)

// FormatValue renders a metric value in its shortest form (3, 0.125).
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteMetrics writes m as one line "name,value,name,value,…".
func WriteMetrics(w io.Writer, m Metrics) error {
	bw := bufio.NewWriter(w)
	for i, x := range m {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(x.Name)
		bw.WriteByte(',')
		bw.WriteString(FormatValue(x.Value))
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// WriteDiff writes the diff records of r:
//
//	*N,id,outLabel,1.0,:vs:,targetLabel,1.0
//	*E,from,to,outLabel,1.0,:vs:,targetLabel,1.0
//	*S,primitive,neighbour
//
// Segment lines are ordered by primitive, output neighbours first.
func WriteDiff(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	for _, d := range r.NodeDiffs {
		bw.WriteString("*N," + d.ID + "," + d.Out + ",1.0,:vs:," + d.Target + ",1.0\n")
	}
	for _, d := range r.EdgeDiffs {
		bw.WriteString("*E," + d.Key.From + "," + d.Key.To + "," + d.Out + ",1.0,:vs:," + d.Target + ",1.0\n")
	}

	prims := make([]string, 0, len(r.SegmentDiffs))
	for p := range r.SegmentDiffs {
		prims = append(prims, p)
	}
	sort.Strings(prims)
	for _, p := range prims {
		d := r.SegmentDiffs[p]
		for _, n := range d.Out {
			bw.WriteString("*S," + p + "," + n + "\n")
		}
		for _, n := range d.Target {
			bw.WriteString("*S," + p + "," + n + "\n")
		}
	}
	return bw.Flush()
}
