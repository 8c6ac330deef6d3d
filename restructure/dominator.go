package restructure

import (
	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// DominatorFinder computes immediate dominators for every node reachable from
// a given entry, using the Cooper-Harvey-Kennedy algorithm ("A Simple, Fast
// Dominance Algorithm"). Ported from
// original_source/src/restructurer/analysis/dominator_finder.rs: a
// reverse-post-order-indexed idom table, iterated to a fixed point using the
// two-finger intersection walk.
type DominatorFinder struct {
	dominators []int // indexed by RPO position

	postToID []int
	idToPost []int

	dfs *DepthFirstSearch
}

// NewDominatorFinder returns a ready-to-use, reusable dominator finder.
func NewDominatorFinder() *DominatorFinder {
	return &DominatorFinder{dfs: NewDepthFirstSearch()}
}

func (d *DominatorFinder) initialize(nodes cflow.Nodes, set *nodeset.Set, start int) {
	members := set.Ones()

	d.idToPost = d.idToPost[:0]
	maxID := 0
	for _, id := range members {
		if id > maxID {
			maxID = id
		}
	}
	d.idToPost = make([]int, maxID+1)
	for i := range d.idToPost {
		d.idToPost[i] = unset
	}

	d.postToID = d.postToID[:0]

	d.dfs.Init(set)
	d.dfs.Run(nodes, start, func(id int, phase Phase) {
		if phase != Post {
			return
		}
		d.postToID = append(d.postToID, id)
	})

	// postToID currently holds ids in post-order (entry last); reverse it so
	// index 0 is the entry's reverse-post-order slot.
	reverse(d.postToID)

	for i, id := range d.postToID {
		d.idToPost[id] = i
	}

	d.dominators = make([]int, len(d.postToID))
	for i := range d.dominators {
		d.dominators[i] = unset
	}
	if len(d.dominators) > 0 {
		d.dominators[0] = 0
	}
}

func (d *DominatorFinder) intersect(a, b int) int {
	for a != b {
		for b < a {
			a = d.dominators[a]
		}
		for a < b {
			b = d.dominators[b]
		}
	}
	return a
}

func (d *DominatorFinder) run(nodes cflow.Nodes) {
	for {
		changed := false

		// Index 0 is the entry, which stays self-dominated.
		for i := 1; i < len(d.postToID); i++ {
			id := d.postToID[i]
			var dominator int
			have := false

			for _, predecessor := range nodes.Predecessors(id) {
				post := d.postOf(predecessor)
				if post == unset || d.dominators[post] == unset {
					continue
				}
				if !have {
					dominator = post
					have = true
				} else {
					dominator = d.intersect(post, dominator)
				}
			}

			if !have {
				continue
			}

			index := d.postOf(id)
			if d.dominators[index] != dominator {
				d.dominators[index] = dominator
				changed = true
			}
		}

		if !changed {
			break
		}
	}
}

func (d *DominatorFinder) postOf(id int) int {
	if id < 0 || id >= len(d.idToPost) {
		return unset
	}
	return d.idToPost[id]
}

// Run computes the immediate dominator table for set, entered at start.
func (d *DominatorFinder) Run(nodes cflow.Nodes, set *nodeset.Set, start int) {
	d.initialize(nodes, set, start)
	d.run(nodes)
}

// IsDominatorOf reports whether dominator dominates id (reflexively: a node
// dominates itself).
func (d *DominatorFinder) IsDominatorOf(dominator, id int) bool {
	domPost := d.postOf(dominator)
	idPost := d.postOf(id)
	if domPost == unset || idPost == unset {
		return false
	}
	return d.intersect(domPost, idPost) == domPost
}
