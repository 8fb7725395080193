package summary

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/lgeval/core"
)

// Inventory section headers.
const (
	nodeLabelsHeader = "NODE LABELS:"
	edgeLabelsHeader = "EDGE LABELS:"
)

// Inventory is the set of node and edge labels used by a collection of
// label graphs.
type Inventory struct {
	nodes map[string]struct{}
	edges map[string]struct{}
}

// NewInventory returns an empty Inventory.
func NewInventory() *Inventory {
	return &Inventory{
		nodes: make(map[string]struct{}),
		edges: make(map[string]struct{}),
	}
}

// Add records every label of g.
func (inv *Inventory) Add(g *core.Graph) {
	for _, id := range g.NodeIDs() {
		for _, l := range g.NodeLabels(id) {
			inv.nodes[l] = struct{}{}
		}
	}
	for _, k := range g.EdgeKeys() {
		for _, l := range g.EdgeLabels(k.From, k.To) {
			inv.edges[l] = struct{}{}
		}
	}
}

// NodeLabels returns the node labels, sorted.
func (inv *Inventory) NodeLabels() []string { return sortedKeys(inv.nodes) }

// EdgeLabels returns the edge labels, sorted.
func (inv *Inventory) EdgeLabels() []string { return sortedKeys(inv.edges) }

// WriteTo writes the "NODE LABELS:" list, a blank line and the
// "EDGE LABELS:" list, one label per line.
func (inv *Inventory) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(nodeLabelsHeader + "\n")
	for _, l := range inv.NodeLabels() {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n" + edgeLabelsHeader + "\n")
	for _, l := range inv.EdgeLabels() {
		b.WriteString(l + "\n")
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// ReadInventory reads what WriteTo writes. Labels before any header are
// node labels; blank lines are skipped.
func ReadInventory(r io.Reader) (*Inventory, error) {
	inv := NewInventory()
	set := inv.nodes
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		l := strings.TrimSpace(sc.Text())
		switch l {
		case "":
		case nodeLabelsHeader:
			set = inv.nodes
		case edgeLabelsHeader:
			set = inv.edges
		default:
			set[l] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("summary: reading labels: %w", err)
	}
	return inv, nil
}
