package restructure

import (
	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// SccFinder enumerates the non-trivial (>=2 node) strongly connected
// components of a NodeSet using Gabow's path-based algorithm. Ported from
// original_source/src/restructurer/analysis/strongly_connected_finder.rs: a
// path stack of entered nodes and a boundary stack of their pre-order
// indices, truncated on cross-edges to already-numbered nodes and popped on
// post-order completion.
//
// Components are returned in completion order: innermost first.
type SccFinder struct {
	names []int // id -> pre-order index, or unset sentinel
	path  []int
	stack []int

	results [][]int
	dfs     *DepthFirstSearch
}

const unset = -1

// NewSccFinder returns a ready-to-use, reusable SCC finder.
func NewSccFinder() *SccFinder {
	return &SccFinder{dfs: NewDepthFirstSearch()}
}

func (f *SccFinder) nameOf(id int) int {
	if id < 0 || id >= len(f.names) {
		return unset
	}
	return f.names[id]
}

func (f *SccFinder) onPreOrder(nodes cflow.Nodes, id int) {
	index := len(f.path)

	if id >= len(f.names) {
		grown := make([]int, id+1)
		for i := range grown {
			grown[i] = unset
		}
		copy(grown, f.names)
		f.names = grown
	}
	f.names[id] = index

	f.path = append(f.path, id)
	f.stack = append(f.stack, index)

	for _, successor := range nodes.Successors(id) {
		if successor == cflow.MaxID {
			continue
		}
		if target := f.nameOf(successor); target != unset {
			last := len(f.stack) - 1
			for last >= 0 && f.stack[last] > target {
				last--
			}
			f.stack = f.stack[:last+1]
		}
	}
}

func (f *SccFinder) onPostOrder(id int) {
	top := len(f.stack) - 1
	index := f.stack[top]
	f.stack = f.stack[:top]

	if f.names[id] != index {
		f.stack = append(f.stack, index)
		return
	}

	component := append([]int(nil), f.path[index:]...)
	f.path = f.path[:index]

	for _, member := range component {
		f.names[member] = unset
	}

	if len(component) > 1 {
		f.results = append(f.results, component)
	}
}

// Run returns the non-trivial SCCs of set, innermost (most recently
// completed) first.
func (f *SccFinder) Run(nodes cflow.Nodes, set *nodeset.Set) [][]int {
	f.names = f.names[:0]
	f.path = f.path[:0]
	f.stack = f.stack[:0]
	f.results = f.results[:0]

	f.dfs.Init(set)

	for _, id := range set.Ones() {
		f.dfs.Run(nodes, id, func(visited int, phase Phase) {
			if phase == Post {
				f.onPostOrder(visited)
			} else {
				f.onPreOrder(nodes, visited)
			}
		})
	}

	return f.results
}
