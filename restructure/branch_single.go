package restructure

import (
	"sort"

	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// Arm describes one successor of a branch head after classification.
type Arm struct {
	// Full is true when every predecessor of Start (in the full graph) is
	// the branch head — i.e. Start is a genuine branch-body entry, not an
	// already-existing join point.
	Full bool
	// Start is the arm's successor node (valid for both kinds).
	Start int
	// Items holds the arm's body (only populated when Full).
	Items *nodeset.Set
}

// BranchSingle restructures one branch region into a single-funnel branch
// (spec §4.7). Ported from
// original_source/src/restructurer/branch/single.rs: tail and continuations
// are reused scratch buffers; insertions tracks minted nodes for BranchBulk
// to fold back into the caller's working set.
type BranchSingle struct {
	tail          *nodeset.Set
	continuations []int
	arms          []Arm

	insertions []int
	dominators *DominatorFinder
}

// NewBranchSingle returns a ready-to-use, reusable restructurer.
func NewBranchSingle() *BranchSingle {
	return &BranchSingle{
		tail:       nodeset.New(),
		dominators: NewDominatorFinder(),
	}
}

// Insertions returns the node ids minted by the most recent Restructure call.
func (b *BranchSingle) Insertions() []int {
	return b.insertions
}

// Tail returns the tail region (including the funnel, once minted) computed
// by the most recent Restructure call.
func (b *BranchSingle) Tail() *nodeset.Set {
	return b.tail
}

// Arms returns the classified successors of the most recent Restructure
// call's head. Full arms are the sub-regions BranchBulk must still descend
// into.
func (b *BranchSingle) Arms() []Arm {
	return b.arms
}

func (b *BranchSingle) initializeArms(nodes cflow.Nodes, head int) {
	successors := nodes.Successors(head)

	b.tail.Clear()
	b.continuations = b.continuations[:0]
	b.insertions = b.insertions[:0]

	b.arms = b.arms[:0]
	for _, start := range successors {
		full := true
		for _, pred := range nodes.Predecessors(start) {
			if pred != head {
				full = false
				break
			}
		}

		if full {
			b.arms = append(b.arms, Arm{Full: true, Start: start, Items: nodeset.New()})
		} else {
			b.arms = append(b.arms, Arm{Full: false, Start: start})
		}
	}
}

func (b *BranchSingle) findBranchElements(nodes cflow.Nodes, set *nodeset.Set, head int) {
	b.dominators.Run(nodes, set, head)

dominated:
	for _, id := range set.Ones() {
		for i := range b.arms {
			arm := &b.arms[i]
			if arm.Full && b.dominators.IsDominatorOf(arm.Start, id) {
				arm.Items.Insert(id)
				continue dominated
			}
		}

		b.tail.Insert(id)
	}

	b.tail.Remove(head)

	for _, t := range b.tail.Ones() {
		for _, pred := range nodes.Predecessors(t) {
			if !b.tail.Contains(pred) {
				b.continuations = append(b.continuations, t)
				break
			}
		}
	}

	sort.Ints(b.continuations)
}

func (b *BranchSingle) patchSingleTail(tail int) {
	for i := range b.arms {
		if b.arms[i].Full {
			b.arms[i].Items.Insert(tail)
		}
	}
}

func (b *BranchSingle) continuationIndex(tail int) int {
	i := sort.SearchInts(b.continuations, tail)
	if i >= len(b.continuations) || b.continuations[i] != tail {
		cflow.Fail(cflow.InvalidSet, "tail %d is not a registered continuation", tail)
	}
	return i
}

func (b *BranchSingle) restructureFull(nodes cflow.NodesMut, items *nodeset.Set, exit int) {
	type link struct{ predecessor, tail int }
	var predecessors []link

	for _, t := range b.continuations {
		for _, predecessor := range nodes.Predecessors(t) {
			if items.Contains(predecessor) {
				predecessors = append(predecessors, link{predecessor, t})
			}
		}
	}

	funnel := exit
	if len(predecessors) != 1 {
		temp := nodes.AddNoOp()
		nodes.AddLink(temp, exit)

		items.Insert(temp)
		b.insertions = append(b.insertions, temp)

		funnel = temp
	}

	for _, pt := range predecessors {
		variable := b.continuationIndex(pt.tail)
		destination := nodes.AddVariable(cflow.RoleBranch, variable)

		nodes.ReplaceLink(pt.predecessor, pt.tail, destination)
		nodes.AddLink(destination, funnel)

		items.Insert(destination)
		b.insertions = append(b.insertions, destination)
	}
}

func (b *BranchSingle) restructureEmpty(nodes cflow.NodesMut, head, tail, exit int) {
	variable := b.continuationIndex(tail)
	destination := nodes.AddVariable(cflow.RoleBranch, variable)

	nodes.ReplaceLink(head, tail, destination)
	nodes.AddLink(destination, exit)

	b.insertions = append(b.insertions, destination)
}

func (b *BranchSingle) restructureBranches(nodes cflow.NodesMut, head int) int {
	exit := nodes.AddSelection(cflow.RoleBranch)

	b.tail.Insert(exit)
	b.insertions = append(b.insertions, exit)

	for _, t := range b.continuations {
		nodes.AddLink(exit, t)
	}

	for i := range b.arms {
		arm := &b.arms[i]
		if arm.Full {
			b.restructureFull(nodes, arm.Items, exit)
		} else {
			b.restructureEmpty(nodes, head, arm.Start, exit)
		}
	}

	return exit
}

// Restructure restructures the branch headed at head within set, returning
// the exit funnel every arm reaches before leaving the branch region.
func (b *BranchSingle) Restructure(nodes cflow.NodesMut, set *nodeset.Set, head int) int {
	successors := nodes.Successors(head)
	inRegion := 0
	for _, s := range successors {
		if set.Contains(s) {
			inRegion++
		}
	}
	if inRegion < 2 {
		cflow.Fail(cflow.NotBranchHead, "node %d has fewer than two in-region successors", head)
	}

	b.initializeArms(nodes, head)
	b.findBranchElements(nodes, set, head)

	if len(b.continuations) == 1 {
		b.patchSingleTail(b.continuations[0])
		return b.continuations[0]
	}

	return b.restructureBranches(nodes, head)
}
