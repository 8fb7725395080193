package smallgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// labelSep joins the labels of one node or edge inside a field.
const labelSep = "|"

// String encodes sg as
//
//	nNodes,id1,labels1,…,nEdges,from1,to1,labels1,…
//
// with nodes and edges in sorted order and labels joined by "|". IDs and
// labels must not contain "," or "|".
func (sg *SmallGraph) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(sg.nodes)))
	for _, id := range sg.NodeIDs() {
		b.WriteString("," + id + "," + strings.Join(sg.nodes[id], labelSep))
	}
	b.WriteString("," + strconv.Itoa(len(sg.edges)))
	for _, k := range sg.EdgeKeys() {
		b.WriteString("," + k.From + "," + k.To + "," + strings.Join(sg.edges[k], labelSep))
	}
	return b.String()
}

// Parse decodes the String encoding.
func Parse(s string) (*SmallGraph, error) {
	tab := strings.Split(strings.TrimSpace(s), ",")
	sg := New()

	n, err := strconv.Atoi(tab[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: node count %q", ErrFormat, tab[0])
	}
	i := 1
	if len(tab) < i+2*n+1 {
		return nil, fmt.Errorf("%w: %d nodes announced, %d fields", ErrFormat, n, len(tab))
	}
	for ; i < 1+2*n; i += 2 {
		sg.SetNode(tab[i], splitLabels(tab[i+1])...)
	}

	m, err := strconv.Atoi(tab[i])
	if err != nil || m < 0 {
		return nil, fmt.Errorf("%w: edge count %q", ErrFormat, tab[i])
	}
	i++
	if len(tab) != i+3*m {
		return nil, fmt.Errorf("%w: %d edges announced, %d fields left", ErrFormat, m, len(tab)-i)
	}
	for ; i < len(tab); i += 3 {
		sg.SetEdge(tab[i], tab[i+1], splitLabels(tab[i+2])...)
	}
	return sg, nil
}

func splitLabels(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, labelSep)
}

// WriteLG writes sg in .lg format, one N or E line per label with weight 1.0.
func (sg *SmallGraph) WriteLG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, id := range sg.NodeIDs() {
		for _, l := range sg.nodes[id] {
			fmt.Fprintf(bw, "N,%s,%s,1.0\n", id, l)
		}
	}
	for _, k := range sg.EdgeKeys() {
		for _, l := range sg.edges[k] {
			fmt.Fprintf(bw, "E,%s,%s,%s,1.0\n", k.From, k.To, l)
		}
	}
	return bw.Flush()
}
