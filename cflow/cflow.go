// Package cflow defines the abstract control-flow graph capability sets the
// restructurer operates over. It promises nothing about what a node
// represents; it only lets the restructurer read adjacency and mint the three
// kinds of synthetic node the algorithm needs.
package cflow

import "fmt"

// MaxID is the sentinel meaning "no node". DFS and SCC discovery tolerate it
// in successor lists so that partially initialized synthetic chains remain
// traversable.
const MaxID = int(^uint(0) >> 1)

// Role tags a synthetic selector or assignment node with the pseudo-variable
// it reads or writes.
type Role int

const (
	// RoleDestination selects which entry or exit a funnel came from.
	RoleDestination Role = iota
	// RoleRepetition tells a loop latch whether to repeat or exit.
	RoleRepetition
	// RoleBranch selects which continuation a branch arm targets.
	RoleBranch
)

func (r Role) String() string {
	switch r {
	case RoleDestination:
		return "Destination"
	case RoleRepetition:
		return "Repetition"
	case RoleBranch:
		return "Branch"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Nodes is the read capability: edges in and out of a node, in the host's own
// multiset order.
type Nodes interface {
	// Predecessors returns the ids of edges into id, one entry per incoming
	// edge (duplicates denote parallel edges).
	Predecessors(id int) []int
	// Successors returns the ids of edges out of id, one entry per outgoing
	// edge (duplicates denote parallel edges).
	Successors(id int) []int
}

// NodesMut is the write capability. It extends Nodes with the operations the
// restructurer needs to mint synthetic nodes and rewire edges.
type NodesMut interface {
	Nodes

	// AddNoOp mints a fresh pass-through node with no edges.
	AddNoOp() int
	// AddVariable mints a fresh assignment node that writes index to role. It
	// has no edges yet.
	AddVariable(role Role, index int) int
	// AddSelection mints a fresh selector node that reads role. It has no
	// edges yet.
	AddSelection(role Role) int
	// AddLink appends one directed edge from -> to, updating both adjacency
	// lists.
	AddLink(from, to int)
	// ReplaceLink finds one edge from->to (first occurrence) and rewrites it
	// to from->new. The net effect on to is that to loses one `from`
	// predecessor; to.pred does NOT gain new as a predecessor, and new does
	// not gain an edge to to. Callers that want new->to must add it
	// explicitly with AddLink.
	ReplaceLink(from, to, new int)
}

// Kind identifies a precondition violation. All are programming errors: the
// rewriter never recovers from them, and callers are expected to pass
// well-formed inputs.
type Kind int

const (
	// NotSCC: RepeatSingle was called on a region with no entry edge from
	// outside the region.
	NotSCC Kind = iota
	// NotBranchHead: BranchSingle was called on a node with fewer than two
	// in-region successors.
	NotBranchHead
	// InvalidSet: a NodeSet refers to ids absent from the CFG.
	InvalidSet
	// InconsistentAdjacency: the CFG's predecessor/successor lists disagree.
	InconsistentAdjacency
)

func (k Kind) String() string {
	switch k {
	case NotSCC:
		return "NotSCC"
	case NotBranchHead:
		return "NotBranchHead"
	case InvalidSet:
		return "InvalidSet"
	case InconsistentAdjacency:
		return "InconsistentAdjacency"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PreconditionError reports which invariant a core component found violated.
// It is always a programming error on the caller's part; the core panics
// with it rather than trying to recover.
type PreconditionError struct {
	Kind   Kind
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Fail panics with a PreconditionError of the given kind. Core components
// call this instead of returning an error because spec'd preconditions are
// never expected to fail outside of a caller bug.
func Fail(kind Kind, format string, args ...any) {
	panic(&PreconditionError{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}
