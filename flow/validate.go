package flow

import (
	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// Validate checks adjacency symmetry for every node in set: every edge
// id->succ that Successors reports must be mirrored by succ's Predecessors
// list with equal multiplicity, and vice versa. This is the CFG-shape
// precondition the restructurer assumes of its caller (spec error kind
// InconsistentAdjacency); the CLI calls it once up front so a malformed host
// CFG fails loudly before any rewriting begins, rather than corrupting
// output silently partway through.
//
// Grounded on flow/cfg.go's NewGraph, which validates a different structural
// precondition (entry reachability) the same way: panic immediately with a
// diagnostic rather than returning an error the caller might ignore.
func Validate(nodes cflow.Nodes, set *nodeset.Set) {
	for _, id := range set.Ones() {
		for _, succ := range nodes.Successors(id) {
			if succ == cflow.MaxID {
				continue
			}
			want := countOccurrences(nodes.Successors(id), succ)
			got := countOccurrences(nodes.Predecessors(succ), id)
			if got != want {
				cflow.Fail(cflow.InconsistentAdjacency,
					"node %d lists %d edges to %d, but %d lists %d edges back", id, want, succ, succ, got)
			}
		}
		for _, pred := range nodes.Predecessors(id) {
			if pred == cflow.MaxID {
				continue
			}
			want := countOccurrences(nodes.Predecessors(id), pred)
			got := countOccurrences(nodes.Successors(pred), id)
			if got != want {
				cflow.Fail(cflow.InconsistentAdjacency,
					"node %d lists %d edges from %d, but %d lists %d edges out", id, want, pred, pred, got)
			}
		}
	}
}

func countOccurrences(ids []int, target int) int {
	n := 0
	for _, id := range ids {
		if id == target {
			n++
		}
	}
	return n
}
