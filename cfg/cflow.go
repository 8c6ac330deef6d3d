package cfg

import (
	"fmt"

	"github.com/pcfg/restructure/cflow"
	"gonum.org/v1/gonum/graph"
)

// This file adapts *Graph to cflow.Nodes/cflow.NodesMut, so the restructurer
// can run directly against a DOT-parsed CFG from the CLI. gonum's
// simple.DirectedGraph models a simple graph: SetEdge between the same pair
// of nodes twice overwrites rather than adds a parallel edge, and self-loops
// collapse to the single edge gonum allows. A DOT input with duplicate edges
// or self-loops therefore loses multiplicity here; list.List is the
// multiplicity-preserving representation used by the restructure test suite,
// and is what should be reached for whenever an input needs exact
// preservation of parallel edges.

// Predecessors implements cflow.Nodes.
func (g *Graph) Predecessors(id int) []int {
	it := g.To(int64(id))
	var out []int
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	return out
}

// Successors implements cflow.Nodes.
func (g *Graph) Successors(id int) []int {
	it := g.From(int64(id))
	var out []int
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	return out
}

func (g *Graph) mustNode(id int) *Node {
	n := g.Node(int64(id))
	if n == nil {
		cflow.Fail(cflow.InvalidSet, "no node with id %d in graph", id)
	}
	nn, ok := n.(*Node)
	if !ok {
		panic(fmt.Errorf("invalid node type; expected *cfg.Node, got %T", n))
	}
	return nn
}

func (g *Graph) addSynthetic(kind synthKind, role cflow.Role, value int) int {
	n := g.NewNode().(*Node)
	n.SetDOTID(fmt.Sprintf("synthetic%d", n.Node.ID()))
	n.synthetic = synthInfo{kind: kind, role: int(role), value: value}
	n.Attrs["label"] = syntheticLabel(kind, role, value)
	g.AddNode(n)
	return int(n.Node.ID())
}

func syntheticLabel(kind synthKind, role cflow.Role, value int) string {
	switch kind {
	case kindNoOp:
		return "noop"
	case kindAssign:
		return fmt.Sprintf("%s := %d", role, value)
	case kindSelect:
		return fmt.Sprintf("select %s", role)
	default:
		return "?"
	}
}

// AddNoOp implements cflow.NodesMut.
func (g *Graph) AddNoOp() int {
	return g.addSynthetic(kindNoOp, 0, 0)
}

// AddVariable implements cflow.NodesMut.
func (g *Graph) AddVariable(role cflow.Role, index int) int {
	return g.addSynthetic(kindAssign, role, index)
}

// AddSelection implements cflow.NodesMut.
func (g *Graph) AddSelection(role cflow.Role) int {
	return g.addSynthetic(kindSelect, role, 0)
}

// AddLink implements cflow.NodesMut.
func (g *Graph) AddLink(from, to int) {
	f, t := g.mustNode(from), g.mustNode(to)
	g.SetEdge(g.NewEdge(f, t))
}

// ReplaceLink implements cflow.NodesMut. Because the underlying graph is
// simple, replacing from->to with from->new also silently absorbs any
// parallel copies of from->to that DOT input may have carried.
func (g *Graph) ReplaceLink(from, to, new int) {
	f, t, n := g.mustNode(from), g.mustNode(to), g.mustNode(new)
	if !g.HasEdgeFromTo(f.ID(), t.ID()) {
		cflow.Fail(cflow.InvalidSet, "no edge %d -> %d to replace", from, to)
	}
	g.RemoveEdge(f.ID(), t.ID())
	g.SetEdge(g.NewEdge(f, n))
}

var _ cflow.NodesMut = (*Graph)(nil)
var _ graph.Directed = (*Graph)(nil)
