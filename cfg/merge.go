package cfg

import "gonum.org/v1/gonum/graph"

// nodeWithID returns the node with the given DOT ID, or nil if absent. g must
// have been through initNodes (ParseFile/ParseBytes/Copy all call it).
func (g *Graph) nodeWithID(id string) *Node {
	return g.nodes[id]
}

// Merge returns a new control flow graph where the nodes named in delNodes
// have been collapsed into a single node with the given node ID, rewired to
// the predecessors and successors those nodes had outside the collapsed set.
// Lets a DOT consumer render a restructured region (a synthesized loop or
// branch body) as one box without losing its external edges.
func Merge(src *Graph, delNodes map[string]bool, newName string) *Graph {
	dst := NewGraph()
	Copy(dst, src)

	preds := make(map[graph.Node]bool)
	succs := make(map[graph.Node]bool)

	newNode := dst.NewNode().(*Node)
	newNode.SetDOTID(newName)
	dst.AddNode(newNode)

	for delName := range delNodes {
		delNode := dst.nodeWithID(delName)
		if delNode == nil {
			continue
		}

		for it := dst.To(delNode.ID()); it.Next(); {
			p := it.Node().(*Node)
			if !delNodes[p.DOTID()] {
				preds[dst.nodeWithID(p.DOTID())] = true
			}
		}
		for it := dst.From(delNode.ID()); it.Next(); {
			s := it.Node().(*Node)
			if !delNodes[s.DOTID()] {
				succs[dst.nodeWithID(s.DOTID())] = true
			}
		}

		dst.RemoveNode(delNode.ID())
		delete(dst.nodes, delName)
	}

	for pred := range preds {
		dst.SetEdge(dst.NewEdge(pred, newNode))
	}
	for succ := range succs {
		dst.SetEdge(dst.NewEdge(newNode, succ))
	}

	dst.nodes[newName] = newNode

	return dst
}
