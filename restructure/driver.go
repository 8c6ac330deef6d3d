// Package restructure implements the control-flow restructuring engine: the
// abstract-CFG rewriter that normalizes an arbitrary single-entry CFG into
// one whose control flow is structured (nested single-entry/single-exit
// loops and branches), following Bahmann et al.'s "Perfect
// Reconstructibility of Control Flow from Demand Dependence Graphs".
package restructure

import (
	"github.com/pcfg/restructure/cflow"
	"github.com/pcfg/restructure/nodeset"
)

// Driver composes RepeatBulk then BranchBulk over a whole region (spec
// §4.9). Two passes, in this order, suffice: loop restructuring removes
// every irreducible branch (an SCC can no longer masquerade as a branch
// region once it's been collapsed to a structured loop), and branch
// restructuring preserves loop structure since every branch region is
// acyclic once step one has run.
//
// original_source/src/restructurer/linear.rs carries several coexisting,
// partially-finished variants of this driver from an in-progress refactor
// (one doesn't call the branch pass at all, per its own commented-out call).
// This Driver implements the complete two-pass behavior spec.md §4.9
// describes.
type Driver struct {
	repeat *RepeatBulk
	branch *BranchBulk
}

// NewDriver returns a ready-to-use, reusable driver.
func NewDriver() *Driver {
	return &Driver{
		repeat: NewRepeatBulk(),
		branch: NewBranchBulk(),
	}
}

// Restructure rewrites the region named by set (which must contain entry,
// and every node reachable from entry within it) into structured form.
func (d *Driver) Restructure(nodes cflow.NodesMut, set *nodeset.Set, entry int) {
	d.repeat.Run(nodes, set)
	d.branch.Run(nodes, set, entry)
}

// Restructure is a convenience entry point equivalent to constructing a new
// Driver and calling Restructure once. Prefer keeping a Driver around across
// calls in hot paths, since it reuses its scratch buffers.
func Restructure(nodes cflow.NodesMut, set *nodeset.Set, entry int) {
	NewDriver().Restructure(nodes, set, entry)
}
