package restructure

import (
	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// Phase identifies which of the two visits of a node a DepthFirstSearch
// callback is reporting.
type Phase int

const (
	// Pre precedes the visit of all of a node's descendants.
	Pre Phase = iota
	// Post follows the visit of all of a node's descendants.
	Post
)

// Visitor is invoked exactly once per reachable node per phase.
type Visitor func(id int, phase Phase)

type dfsItem struct {
	id         int
	successors []int
}

// DepthFirstSearch is an iterative, restartable DFS restricted to a NodeSet,
// so recursion depth is bounded only by heap and traversal never escapes the
// current region. Ported from the reference path-stack walk in
// original_source/src/restructurer/analysis/depth_first_searcher.rs: seen is
// indexed by id and reset only by Init, so repeated Run calls after one Init
// share state and never revisit a node an earlier Run already reached.
type DepthFirstSearch struct {
	items []dfsItem
	seen  *nodeset.Set

	set *nodeset.Set
}

// NewDepthFirstSearch returns a ready-to-use, reusable DFS walker.
func NewDepthFirstSearch() *DepthFirstSearch {
	return &DepthFirstSearch{seen: nodeset.New()}
}

// Init resets the walker to restrict traversal to set and marks every node in
// it unseen. Call once before one or more Run calls over the same region.
func (d *DepthFirstSearch) Init(set *nodeset.Set) {
	d.set = set
	d.seen.Clear()
	d.items = d.items[:0]
}

func (d *DepthFirstSearch) insert(nodes cflow.Nodes, id int, visit Visitor) {
	if id == cflow.MaxID || !d.set.Contains(id) || d.seen.Contains(id) {
		return
	}

	successors := append([]int(nil), nodes.Successors(id)...)
	reverse(successors)

	d.items = append(d.items, dfsItem{id: id, successors: successors})
	d.seen.Insert(id)

	visit(id, Pre)
}

// Run walks from start, invoking visit(id, Pre) on first discovery of id and
// visit(id, Post) once every descendant of id (reachable within the current
// set) has been fully visited. Successors equal to cflow.MaxID or outside the
// set are ignored. Multiplicity is ignored for visitation (first occurrence
// wins) but does not otherwise affect the emitted order.
func (d *DepthFirstSearch) Run(nodes cflow.Nodes, start int, visit Visitor) {
	d.insert(nodes, start, visit)

	for len(d.items) > 0 {
		top := len(d.items) - 1
		item := &d.items[top]

		if len(item.successors) == 0 {
			id := item.id
			d.items = d.items[:top]
			visit(id, Post)
			continue
		}

		last := len(item.successors) - 1
		next := item.successors[last]
		item.successors = item.successors[:last]

		d.insert(nodes, next, visit)
	}
}

func reverse(ids []int) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
