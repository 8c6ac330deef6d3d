package cfg

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/graph"
)

const sampleDOT = `digraph {
	B1 [label="entry"];
	B2;
	B3;
	B4;
	B1 -> B2;
	B2 -> B3;
	B2 -> B4;
	B3 -> B4;
}`

func TestRoundTrip(t *testing.T) {
	want := strings.TrimSpace(sampleDOT)
	g, err := ParseString(want)
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}
	if got := g.String(); got != want {
		t.Errorf("output mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestCopy(t *testing.T) {
	want := strings.TrimSpace(sampleDOT)
	src, err := ParseString(want)
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}

	dst := NewGraph()
	Copy(dst, src)

	if got := dst.String(); got != want {
		t.Errorf("output mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestMerge(t *testing.T) {
	src, err := ParseString(sampleDOT)
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}

	out := Merge(src, map[string]bool{"B2": true, "B3": true}, "I1")

	n := out.nodeWithID("I1")
	if n == nil {
		t.Fatal("merged graph has no I1 node")
	}

	if out.nodeWithID("B2") != nil || out.nodeWithID("B3") != nil {
		t.Error("merged-away nodes B2/B3 are still present")
	}

	// B1 -> I1 (from B1 -> B2) and I1 -> B4 (from B3 -> B4, and B2 -> B4
	// which collapses to the same edge since the destination graph is
	// simple) must both survive.
	if !out.HasEdgeFromTo(out.nodeWithID("B1").ID(), n.ID()) {
		t.Error("missing edge B1 -> I1")
	}
	if !out.HasEdgeFromTo(n.ID(), out.nodeWithID("B4").ID()) {
		t.Error("missing edge I1 -> B4")
	}
}

func TestInitDFSOrder(t *testing.T) {
	g, err := ParseString(sampleDOT)
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}

	InitDFSOrder(g)

	b1 := g.nodeWithID("B1")
	b4 := g.nodeWithID("B4")
	if b1.Pre != 0 {
		t.Errorf("B1.Pre = %d, want 0 (the entry is visited first)", b1.Pre)
	}
	if b4.Post >= b1.Post {
		t.Errorf("B4.Post (%d) should be less than B1.Post (%d): B4 finishes before the entry does", b4.Post, b1.Post)
	}
}

func TestSortByRevPost(t *testing.T) {
	g, err := ParseString(sampleDOT)
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}

	InitDFSOrder(g)

	sorted := SortByRevPost(graph.NodesOf(g.Nodes()))
	if len(sorted) != 4 {
		t.Fatalf("got %d nodes, want 4", len(sorted))
	}
	if sorted[0].(*Node).DOTID() != "B1" {
		t.Errorf("first node in reverse post-order = %q, want B1 (the entry dominates everything)", sorted[0].(*Node).DOTID())
	}
}
