package encode

import "github.com/abp-sat/abpsat/internal/graph"

// RowVars returns the label variables for vertex v (1-based), l=1..n.
func RowVars(n, v int) []int {
	vars := make([]int, n)
	for l := 1; l <= n; l++ {
		vars[l-1] = Var(n, v, l)
	}
	return vars
}

// ColVars returns the vertex variables carrying label l (1-based), v=1..n.
func ColVars(n, l int) []int {
	vars := make([]int, n)
	for v := 1; v <= n; v++ {
		vars[v-1] = Var(n, v, l)
	}
	return vars
}

// sink is the minimal clause-emission surface shared encoding helpers
// need; satisfied by *clause.Container.
type sink interface {
	Add(lits ...int)
}

// EmitALO emits a single clause asserting at least one of vars is true.
func EmitALO(s sink, vars []int) {
	cl := make([]int, len(vars))
	copy(cl, vars)
	s.Add(cl...)
}

// EmitPairwiseAMO emits the classic O(m^2) "at most one" encoding:
// for every pair (i,j), the clause (-vars[i] OR -vars[j]).
func EmitPairwiseAMO(s sink, vars []int) {
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			s.Add(-vars[i], -vars[j])
		}
	}
}

// EmitPairwiseEO emits ALO plus pairwise AMO over vars.
func EmitPairwiseEO(s sink, vars []int) {
	EmitALO(s, vars)
	EmitPairwiseAMO(s, vars)
}

// SelectAnchor picks the symmetry-breaking anchor vertex for g
// according to strategy a, or 0 if a is AnchorNone (or g has no
// vertices).
func SelectAnchor(g *graph.Graph, a Anchor) int {
	if g.N == 0 {
		return 0
	}
	switch a {
	case AnchorFirst:
		return 1
	case AnchorMax:
		best, bestDeg := 1, g.Degree(1)
		for v := 2; v <= g.N; v++ {
			if d := g.Degree(v); d > bestDeg {
				best, bestDeg = v, d
			}
		}
		return best
	case AnchorMin:
		best, bestDeg := 1, g.Degree(1)
		for v := 2; v <= g.N; v++ {
			if d := g.Degree(v); d < bestDeg {
				best, bestDeg = v, d
			}
		}
		return best
	default:
		return 0
	}
}

// EmitSymmetryBreaking fixes the anchor vertex's label to the lower
// half of {1..n} by forbidding every label in the upper half. anchor
// is a vertex id, or 0 to do nothing.
func EmitSymmetryBreaking(s sink, n, anchor int) {
	if anchor == 0 {
		return
	}
	low := (n + 1) / 2
	for l := low + 1; l <= n; l++ {
		s.Add(-Var(n, anchor, l))
	}
}

// EmitPairwiseLabelling emits the row (each vertex exactly one label)
// and column (each label exactly one vertex) exactly-one constraints
// using the plain pairwise scheme. Only the Reduced encoder uses it;
// the other encoders build their row and column exactly-one groups
// with their own schemes.
func EmitPairwiseLabelling(s sink, n int) {
	for v := 1; v <= n; v++ {
		EmitPairwiseEO(s, RowVars(n, v))
	}
	for l := 1; l <= n; l++ {
		EmitPairwiseEO(s, ColVars(n, l))
	}
}

// windowVars returns the label variables for vertex v occupying the
// window [d+1, d+w] (1-based, inclusive).
func windowVars(n, v, d, w int) []int {
	vars := make([]int, w)
	for i := 0; i < w; i++ {
		vars[i] = Var(n, v, d+1+i)
	}
	return vars
}
