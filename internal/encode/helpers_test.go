package encode

import (
	"testing"

	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/satsolver"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

// solveWith encodes g at width w with the named scheme and runs it
// through a real gini instance, returning satsolver.SAT or
// satsolver.UNSAT.
func solveWith(kind Kind, g *graph.Graph, w int, opts Options) int {
	alloc := varhandler.New(g.N * g.N)
	solver := satsolver.NewGini()
	container, _ := clause.NewStreamerContainer(solver, 0, alloc)
	New(kind).Encode(g, w, alloc, container, opts)
	return solver.Solve()
}

// path3 is the path graph on 3 vertices: 1-2-3.
func path3() *graph.Graph {
	return graph.New("P3", 3, []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}})
}

// path4 is the path graph on 4 vertices: 1-2-3-4.
func path4() *graph.Graph {
	return graph.New("P4", 4, []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}})
}

// cycle4 is the 4-cycle 1-2-3-4-1.
func cycle4() *graph.Graph {
	return graph.New("C4", 4, []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 1}})
}

// complete4 is K4.
func complete4() *graph.Graph {
	return graph.New("K4", 4, []graph.Edge{
		{U: 1, V: 2}, {U: 1, V: 3}, {U: 1, V: 4},
		{U: 2, V: 3}, {U: 2, V: 4},
		{U: 3, V: 4},
	})
}

// empty5 is 5 isolated vertices, no edges.
func empty5() *graph.Graph {
	return graph.New("empty5", 5, nil)
}

// selfLoop3 has a self-loop on vertex 2, plus one ordinary edge.
func selfLoop3() *graph.Graph {
	return graph.New("selfloop3", 3, []graph.Edge{{U: 2, V: 2}, {U: 1, V: 2}})
}

var allKinds = []Kind{Reduced, Sequential, Product, Duplex, Ladder}

func assertSolve(t *testing.T, kind Kind, g *graph.Graph, w, want int) {
	t.Helper()
	got := solveWith(kind, g, w, Options{Anchor: AnchorFirst})
	if got != want {
		t.Fatalf("%s: Encode(%s, w=%d) = %d, want %d", kind, g.Name, w, got, want)
	}
}
