package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// ExportDOT renders the tree as a Graphviz DOT document: one node per
// allocated tree vertex, labelled with its incoming move, visit count, Q,
// and prior, and one edge per parent/child link. It is a debugging aid, not
// part of search itself - the core never calls it.
func (t *Tree) ExportDOT() string {
	g := gographviz.NewGraph()
	_ = g.SetName("tree")
	_ = g.SetDir(true)

	var walk func(r ref)
	walk = func(r ref) {
		n := t.Node(r)
		name := fmt.Sprintf("n%d", r)
		label := fmt.Sprintf("\"move=%d n=%d q=%.3f p=%.3f\"", n.move, n.n, n.Q(), n.p)
		_ = g.AddNode("tree", name, map[string]string{"label": label})
		for _, c := range n.children {
			cname := fmt.Sprintf("n%d", c)
			_ = g.AddEdge(name, cname, true, nil)
			walk(c)
		}
	}
	walk(t.root)

	return g.String()
}
