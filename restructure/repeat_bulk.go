package restructure

import (
	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// RepeatBulk repeatedly finds the innermost remaining SCC of a region and
// applies RepeatSingle to it, until none remain. Ported from
// original_source/src/structurer/repeat/bulk.rs.
type RepeatBulk struct {
	sccFinder *SccFinder
	single    *RepeatSingle

	working    *nodeset.Set
	components [][]int
}

// NewRepeatBulk returns a ready-to-use, reusable bulk restructurer.
func NewRepeatBulk() *RepeatBulk {
	return &RepeatBulk{
		sccFinder: NewSccFinder(),
		single:    NewRepeatSingle(),
		working:   nodeset.New(),
	}
}

func (b *RepeatBulk) findNextComponent(nodes cflow.Nodes) ([]int, bool) {
	b.components = append(b.components, b.sccFinder.Run(nodes, b.working)...)

	if len(b.components) == 0 {
		return nil, false
	}

	last := len(b.components) - 1
	component := b.components[last]
	b.components = b.components[:last]
	return component, true
}

// Run restructures every loop nested in set. Synthetic nodes minted along the
// way are folded back into set so later passes (e.g. BranchBulk) see them.
func (b *RepeatBulk) Run(nodes cflow.NodesMut, set *nodeset.Set) {
	b.working.CloneFrom(set)
	b.components = b.components[:0]

	for {
		component, ok := b.findNextComponent(nodes)
		if !ok {
			break
		}

		b.working.CloneFrom(nodeset.FromSlice(component))

		start := b.single.Restructure(nodes, b.working)

		b.working.Remove(start)

		set.Extend(b.single.Synthetics())
	}
}
