package graph

import (
	"strings"
	"testing"
)

func TestNewNormalizesEdgeOrder(t *testing.T) {
	g := New("t", 3, []Edge{{U: 3, V: 1}})
	if g.Edges[0].U != 1 || g.Edges[0].V != 3 {
		t.Fatalf("got edge %+v, want U<=V", g.Edges[0])
	}
}

func TestDegreeCountsSelfLoopTwice(t *testing.T) {
	g := New("t", 2, []Edge{{U: 1, V: 1}, {U: 1, V: 2}})
	if d := g.Degree(1); d != 3 {
		t.Fatalf("Degree(1) = %d, want 3 (2 from the self-loop, 1 from the edge to 2)", d)
	}
	if d := g.Degree(2); d != 1 {
		t.Fatalf("Degree(2) = %d, want 1", d)
	}
}

func TestDegreeOutOfRange(t *testing.T) {
	g := New("t", 2, nil)
	if d := g.Degree(0); d != 0 {
		t.Fatalf("Degree(0) = %d, want 0", d)
	}
	if d := g.Degree(99); d != 0 {
		t.Fatalf("Degree(99) = %d, want 0", d)
	}
}

func TestHasSelfLoop(t *testing.T) {
	if New("t", 2, []Edge{{U: 1, V: 2}}).HasSelfLoop() {
		t.Fatal("expected no self-loop")
	}
	if !New("t", 2, []Edge{{U: 1, V: 1}}).HasSelfLoop() {
		t.Fatal("expected a self-loop")
	}
}

func TestParseHeaderAndEdges(t *testing.T) {
	const mtx = "% comment\n4 4 3\n1 2\n2 3\n3 4\n"
	g, err := Parse(strings.NewReader(mtx), "p4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.N != 4 {
		t.Fatalf("N = %d, want 4", g.N)
	}
	if len(g.Edges) != 3 {
		t.Fatalf("len(Edges) = %d, want 3", len(g.Edges))
	}
}

func TestParseNoHeaderReturnsEmptyGraph(t *testing.T) {
	g, err := Parse(strings.NewReader("nothing but text here\n"), "empty")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.N != 0 || len(g.Edges) != 0 {
		t.Fatalf("got N=%d, %d edges, want an empty graph", g.N, len(g.Edges))
	}
}

func TestParseEdgeCountMismatch(t *testing.T) {
	const mtx = "3 3 2\n1 2\n"
	_, err := Parse(strings.NewReader(mtx), "short")
	if err == nil {
		t.Fatal("expected an edge count mismatch error")
	}
	if _, ok := err.(ErrEdgeCountMismatch); !ok {
		t.Fatalf("got error of type %T, want ErrEdgeCountMismatch", err)
	}
}

func TestBoundsKnownAndDefault(t *testing.T) {
	lb, ub := Bounds(New("A-pores_1.mtx.rnd", 10, nil))
	if lb != 2 || ub != 4 {
		t.Fatalf("got (%d,%d), want (2,4) for the tabulated instance", lb, ub)
	}

	lb, ub = Bounds(New("unknown.mtx.rnd", 9, nil))
	if lb != 1 || ub != 5 {
		t.Fatalf("got (%d,%d), want the default (1, n/2+1) = (1,5)", lb, ub)
	}
}
