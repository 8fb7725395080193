package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lgeval/core"
)

// mustParse parses text and fails the test if any issue was recorded.
func mustParse(t *testing.T, text string) *core.Graph {
	t.Helper()
	g := core.Parse(strings.NewReader(text), core.WithSource("test.lg"))
	require.False(t, g.HasError(), "unexpected issues: %v", g.Issues())
	return g
}

// parse parses text without checking for issues.
func parse(text string) *core.Graph {
	return core.Parse(strings.NewReader(text), core.WithSource("test.lg"))
}

// labelMaps flattens a graph into plain maps for order-independent equality.
func labelMaps(g *core.Graph) (map[string]map[string]float64, map[core.EdgeKey]map[string]float64) {
	nodes := make(map[string]map[string]float64)
	for _, id := range g.NodeIDs() {
		m := make(map[string]float64)
		for _, l := range g.Node(id).Labels() {
			m[l.Name] = l.Weight
		}
		nodes[id] = m
	}
	edges := make(map[core.EdgeKey]map[string]float64)
	for _, k := range g.EdgeKeys() {
		m := make(map[string]float64)
		for _, l := range g.EdgeByKey(k).Labels() {
			m[l.Name] = l.Weight
		}
		edges[k] = m
	}
	return nodes, edges
}

// expression is the x + x graph used across tests.
const expression = `
# x + x
N, 1, x, 1.0
N, 2, +, 1.0
N, 3, x, 1.0
E, 1, 2, R, 1.0
E, 2, 3, R, 1.0
`
