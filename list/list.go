// Package list provides a minimal adjacency-list control-flow graph: the
// concrete cflow.NodesMut implementation exercised by every restructure unit
// test. It is the one CFG representation in this module that preserves edge
// multiplicity exactly as spec.md §3 requires (parallel edges, self loops),
// since the gonum-backed cfg.Graph used by the harness/CLI layer only models
// simple graphs.
//
// Ported from original_source/src/list.rs.
package list

import (
	"fmt"
	"strings"

	"github.com/pcfg/restructure/cflow"
)

// Instruction is the payload a node carries. It exists only so the list can
// be printed in a form a human (or the CLI) can read; the restructurer never
// inspects it.
type Instruction struct {
	Kind  InstructionKind
	Role  cflow.Role
	Value int
}

// InstructionKind discriminates the shape of an Instruction.
type InstructionKind int

const (
	// Start marks a user-authored entry node.
	Start InstructionKind = iota
	// Plain marks an ordinary user-authored node.
	Plain
	// NoOp marks a synthetic pass-through funnel.
	NoOp
	// Assign marks a synthetic assignment node.
	Assign
	// Select marks a synthetic selector node.
	Select
)

func (in Instruction) String() string {
	switch in.Kind {
	case Start:
		return "Start"
	case Plain:
		return "Plain"
	case NoOp:
		return "NoOp"
	case Assign:
		return fmt.Sprintf("%s := %d", in.Role, in.Value)
	case Select:
		return fmt.Sprintf("Select %s", in.Role)
	default:
		return "?"
	}
}

type node struct {
	predecessors []int
	successors   []int
	instruction  Instruction
	synthetic    bool
}

// List is a plain, append-only adjacency-list CFG.
type List struct {
	nodes     []node
	synthetic bool
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// SetSynthetic toggles whether subsequently added plain instructions are
// marked synthetic. The restructurer's own AddNoOp/AddVariable/AddSelection
// calls always mark their nodes synthetic regardless of this flag.
func (l *List) SetSynthetic(synthetic bool) {
	l.synthetic = synthetic
}

// AddInstruction appends a new node carrying instruction and returns its id.
func (l *List) AddInstruction(instruction Instruction) int {
	synthetic := l.synthetic || instruction.Kind == NoOp || instruction.Kind == Assign || instruction.Kind == Select
	l.nodes = append(l.nodes, node{instruction: instruction, synthetic: synthetic})
	return len(l.nodes) - 1
}

// IDs returns every node id currently in the list.
func (l *List) IDs() []int {
	ids := make([]int, len(l.nodes))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Instruction returns the instruction carried by id.
func (l *List) Instruction(id int) Instruction {
	return l.nodes[id].instruction
}

// IsSynthetic reports whether id was minted by the restructurer.
func (l *List) IsSynthetic(id int) bool {
	return l.nodes[id].synthetic
}

// --- cflow.Nodes ---

// Predecessors implements cflow.Nodes.
func (l *List) Predecessors(id int) []int {
	return l.nodes[id].predecessors
}

// Successors implements cflow.Nodes.
func (l *List) Successors(id int) []int {
	return l.nodes[id].successors
}

// --- cflow.NodesMut ---

// AddNoOp implements cflow.NodesMut.
func (l *List) AddNoOp() int {
	return l.AddInstruction(Instruction{Kind: NoOp})
}

// AddVariable implements cflow.NodesMut.
func (l *List) AddVariable(role cflow.Role, value int) int {
	return l.AddInstruction(Instruction{Kind: Assign, Role: role, Value: value})
}

// AddSelection implements cflow.NodesMut.
func (l *List) AddSelection(role cflow.Role) int {
	return l.AddInstruction(Instruction{Kind: Select, Role: role})
}

// AddLink implements cflow.NodesMut.
func (l *List) AddLink(from, to int) {
	l.nodes[from].successors = append(l.nodes[from].successors, to)
	l.nodes[to].predecessors = append(l.nodes[to].predecessors, from)
}

// ReplaceLink implements cflow.NodesMut. It rewrites from's first outgoing
// edge to `to` into an edge to `new`, records `from` as a predecessor of
// `new`, and removes one `from` from to's predecessor list. It does not add
// `new -> to`; callers that want that edge add it explicitly with AddLink.
func (l *List) ReplaceLink(from, to, new int) {
	successors := l.nodes[from].successors
	for i, id := range successors {
		if id == to {
			successors[i] = new
			break
		}
	}
	l.nodes[new].predecessors = append(l.nodes[new].predecessors, from)

	predecessors := l.nodes[to].predecessors
	for i, id := range predecessors {
		if id == from {
			l.nodes[to].predecessors = append(predecessors[:i], predecessors[i+1:]...)
			break
		}
	}
}

// AddNode mints a plain user-authored node (not part of cflow.NodesMut; used
// by graph builders to construct example CFGs).
func (l *List) AddNode() int {
	return l.AddInstruction(Instruction{Kind: Plain})
}

// AddStart mints the user-authored entry node.
func (l *List) AddStart() int {
	return l.AddInstruction(Instruction{Kind: Start})
}

// String renders the list as a Graphviz DOT digraph, synthetic nodes tinted
// differently from user-authored ones, matching the dump style of
// original_source/src/list.rs.
func (l *List) String() string {
	var b strings.Builder
	const nodeAttrs = `shape = plain, style = filled, fillcolor = "#DDDDFF"`

	fmt.Fprintln(&b, "digraph {")
	fmt.Fprintln(&b, "\tstyle = filled;")
	fmt.Fprintf(&b, "\tnode [%s];\n", nodeAttrs)

	for id, n := range l.nodes {
		for _, pred := range n.predecessors {
			fmt.Fprintf(&b, "\tnode_%d -> node_%d;\n", pred, id)
		}

		fmt.Fprintf(&b, "\tnode_%d [label=\"NODE %d\\l%s\"", id, id, n.instruction)
		if n.synthetic {
			fmt.Fprint(&b, `, fillcolor = "#FFDDDD"`)
		}
		fmt.Fprintln(&b, "];")
	}

	fmt.Fprintln(&b, "}")
	return b.String()
}
