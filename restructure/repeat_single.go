package restructure

import (
	"sort"

	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// RepeatSingle restructures one strongly connected region into a
// single-entry/single-exit loop (spec §4.5). Ported from
// original_source/src/restructurer/repeat/single.rs: point_in/point_out are
// reused scratch slices, and synthetics accumulates every newly minted node
// so RepeatBulk can fold them back into the caller's working set.
type RepeatSingle struct {
	pointIn    []int
	pointOut   []int
	synthetics []int
}

// NewRepeatSingle returns a ready-to-use, reusable restructurer.
func NewRepeatSingle() *RepeatSingle {
	return &RepeatSingle{}
}

// Synthetics returns the node ids minted by the most recent Restructure call.
func (r *RepeatSingle) Synthetics() []int {
	return r.synthetics
}

func (r *RepeatSingle) findInsAndOuts(nodes cflow.Nodes, set *nodeset.Set) {
	r.pointIn = r.pointIn[:0]
	r.pointOut = r.pointOut[:0]

	for _, id := range set.Ones() {
		for _, pred := range nodes.Predecessors(id) {
			if !set.Contains(pred) {
				r.pointIn = append(r.pointIn, id)
				break
			}
		}
		for _, succ := range nodes.Successors(id) {
			if !set.Contains(succ) {
				r.pointOut = append(r.pointOut, id)
				break
			}
		}
	}

	sort.Ints(r.pointIn)
	sort.Ints(r.pointOut)
}

// findStartIfStructured detects a natural loop and reports its header so the
// caller can skip rewriting entirely. A region qualifies only when it has
// exactly one entry, at most one exit, and that entry's sole in-region
// predecessor is some OTHER node in the region — a self-loop on the entry
// does not count, since the real back edge must come from elsewhere (see
// DESIGN.md's Open Question decision).
func (r *RepeatSingle) findStartIfStructured(nodes cflow.Nodes, set *nodeset.Set) (int, bool) {
	r.findInsAndOuts(nodes, set)

	if len(r.pointIn) != 1 || len(r.pointOut) > 1 {
		return 0, false
	}

	start := r.pointIn[0]

	count := 0
	var predecessor int
	for _, pred := range nodes.Predecessors(start) {
		if set.Contains(pred) {
			count++
			predecessor = pred
		}
	}

	if count == 1 && predecessor != start {
		return start, true
	}

	return 0, false
}

func (r *RepeatSingle) restructureStart(nodes cflow.NodesMut, set *nodeset.Set) int {
	selection := nodes.AddSelection(cflow.RoleDestination)
	r.synthetics = append(r.synthetics, selection)

	// Predecessor -> Entry
	// Predecessor -> Destination -> Selection -> Entry
	for index, entry := range r.pointIn {
		predecessors := outsideOf(nodes.Predecessors(entry), set)

		for _, predecessor := range predecessors {
			destination := nodes.AddVariable(cflow.RoleDestination, index)
			nodes.ReplaceLink(predecessor, entry, destination)
			nodes.AddLink(destination, selection)

			r.synthetics = append(r.synthetics, destination)
		}

		nodes.AddLink(selection, entry)
	}

	return selection
}

func (r *RepeatSingle) restructureEnd(nodes cflow.NodesMut, set *nodeset.Set, latch int) int {
	selection := nodes.AddSelection(cflow.RoleDestination)
	r.synthetics = append(r.synthetics, selection)

	// Exit -> Successor
	// Exit -> Destination -> Repetition -> Latch -> Selection -> Successor
	for index, exit := range r.pointOut {
		successors := outsideOf(nodes.Successors(exit), set)

		for _, successor := range successors {
			destination := nodes.AddVariable(cflow.RoleDestination, index)
			repetition := nodes.AddVariable(cflow.RoleRepetition, 0)

			nodes.ReplaceLink(exit, successor, destination)
			nodes.AddLink(selection, successor)

			nodes.AddLink(destination, repetition)
			nodes.AddLink(repetition, latch)

			r.synthetics = append(r.synthetics, destination, repetition)
		}
	}

	return selection
}

func (r *RepeatSingle) restructureContinues(nodes cflow.NodesMut, set *nodeset.Set, latch int) {
	// Predecessor -> Entry
	// Predecessor -> Destination -> Repetition -> Latch -> Selection -> Entry
	for index, entry := range r.pointIn {
		predecessors := insideOf(nodes.Predecessors(entry), set)

		for _, predecessor := range predecessors {
			destination := nodes.AddVariable(cflow.RoleDestination, index)
			repetition := nodes.AddVariable(cflow.RoleRepetition, 1)

			nodes.ReplaceLink(predecessor, entry, destination)
			nodes.AddLink(destination, repetition)
			nodes.AddLink(repetition, latch)

			r.synthetics = append(r.synthetics, destination, repetition)
		}
	}
}

// Restructure restructures set, which must be a strongly connected region
// with at least one entry edge from outside, into a single-entry,
// single-exit loop. It returns the id of the new structured loop header.
func (r *RepeatSingle) Restructure(nodes cflow.NodesMut, set *nodeset.Set) int {
	if start, ok := r.findStartIfStructured(nodes, set); ok {
		r.synthetics = r.synthetics[:0]
		return start
	}

	if len(r.pointIn) == 0 {
		cflow.Fail(cflow.NotSCC, "region has no entry edge from outside the set")
	}

	latch := nodes.AddSelection(cflow.RoleRepetition)

	r.synthetics = r.synthetics[:0]
	r.synthetics = append(r.synthetics, latch)

	var start int
	if len(r.pointIn) == 1 {
		start = r.pointIn[0]
	} else {
		start = r.restructureStart(nodes, set)
	}

	end := r.restructureEnd(nodes, set, latch)

	r.restructureContinues(nodes, set, latch)

	nodes.AddLink(latch, start)
	nodes.AddLink(latch, end)

	return start
}

func outsideOf(ids []int, set *nodeset.Set) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !set.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

func insideOf(ids []int, set *nodeset.Set) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if set.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}
