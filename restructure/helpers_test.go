package restructure

import "github.com/pcfg/restructure/list"

// newTestList builds an n-node list.List wired with edges, for tests that
// need a CFG shape not covered by the examples package.
func newTestList(n int, edges [][2]int) *list.List {
	l := list.New()
	for i := 0; i < n; i++ {
		l.AddNode()
	}
	for _, e := range edges {
		l.AddLink(e[0], e[1])
	}
	return l
}
