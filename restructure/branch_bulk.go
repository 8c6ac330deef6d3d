package restructure

import (
	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

type branchWork struct {
	set   *nodeset.Set
	start int
}

// BranchBulk drives BranchSingle across nested branch regions in topological
// order (spec §4.8). Ported from
// original_source/src/restructurer/branch/bulk.rs: find_branch_head walks
// forward through unique-successor chains (shrinking the working set as it
// goes, since sequential nodes need no restructuring), stopping at a true
// branch head or a dead end.
type BranchBulk struct {
	single *BranchSingle

	set      *nodeset.Set
	worklist []branchWork
}

// NewBranchBulk returns a ready-to-use, reusable bulk restructurer.
func NewBranchBulk() *BranchBulk {
	return &BranchBulk{
		single: NewBranchSingle(),
		set:    nodeset.New(),
	}
}

// findBranchHead walks forward from start along unique-successor chains
// (self-loops don't count as a second successor), shrinking bb.set as it
// passes through sequential nodes. It returns false if the walk leaves the
// set before finding a node with >=2 distinct in-region successors.
func (bb *BranchBulk) findBranchHead(nodes cflow.Nodes, start int) (int, bool) {
	for {
		for _, s := range nodes.Successors(start) {
			if !bb.set.Contains(s) {
				return 0, false
			}
		}

		distinct := distinctOthers(nodes.Successors(start), start)
		if len(distinct) == 0 {
			return 0, false
		}
		if len(distinct) >= 2 {
			return start, true
		}

		bb.set.Remove(start)
		start = distinct[0]
	}
}

func distinctOthers(ids []int, exclude int) []int {
	seen := map[int]bool{}
	var out []int
	for _, id := range ids {
		if id == exclude || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (bb *BranchBulk) restructureBranch(nodes cflow.NodesMut, head int) {
	exit := bb.single.Restructure(nodes, bb.set, head)

	tail := bb.single.Tail()
	tailCopy := nodeset.New()
	tailCopy.CloneFrom(tail)

	bb.worklist = append(bb.worklist, branchWork{set: tailCopy, start: exit})

	for _, arm := range bb.single.Arms() {
		if arm.Full {
			bb.worklist = append(bb.worklist, branchWork{set: arm.Items, start: arm.Start})
		}
	}
}

// Run restructures every branch region reachable from start within set.
// Synthetic nodes minted along the way are folded back into set.
func (bb *BranchBulk) Run(nodes cflow.NodesMut, set *nodeset.Set, start int) {
	bb.set.CloneFrom(set)
	bb.worklist = bb.worklist[:0]

	for {
		if head, ok := bb.findBranchHead(nodes, start); ok {
			bb.restructureBranch(nodes, head)
			set.Extend(bb.single.Insertions())
		}

		if len(bb.worklist) == 0 {
			break
		}

		last := len(bb.worklist) - 1
		next := bb.worklist[last]
		bb.worklist = bb.worklist[:last]

		bb.set.CloneFrom(next.set)
		start = next.start
	}
}
