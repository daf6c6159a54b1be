package encode

import (
	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

// EmitSequentialAMO encodes "at most one of vars" using the classic
// sequential-counter ("ladder") auxiliary chain: for v_1..v_m, allocate
// a_1..a_{m-1} with a_i meaning "some v_1..v_i is true", and assert
//
//	v_i -> a_i
//	a_{i-1} -> a_i
//	not (v_i and a_{i-1})
//
// This costs O(m) clauses and m-1 auxiliaries in place of the
// pairwise scheme's O(m^2) clauses.
func EmitSequentialAMO(alloc *varhandler.Handler, s sink, vars []int) {
	m := len(vars)
	if m <= 1 {
		return
	}
	regs := alloc.AllocN(m - 1)

	s.Add(-vars[0], regs[0])
	for i := 1; i < m-1; i++ {
		s.Add(-regs[i-1], regs[i])
		s.Add(-vars[i], regs[i])
		s.Add(-vars[i], -regs[i-1])
	}
	s.Add(-vars[m-1], -regs[m-2])
}

// EmitSequentialEO encodes "exactly one of vars" as ALO plus
// EmitSequentialAMO.
func EmitSequentialEO(alloc *varhandler.Handler, s sink, vars []int) {
	EmitALO(s, vars)
	EmitSequentialAMO(alloc, s, vars)
}

// sequentialEncoder is the scheme of spec.md 4.3: identical skeleton
// to reducedEncoder, but every at-most-one group (each row, each
// column, and each edge's combined window pair) goes through the
// sequential-counter chain instead of pairwise clauses.
type sequentialEncoder struct{}

func (sequentialEncoder) Encode(g *graph.Graph, w int, alloc *varhandler.Handler, s *clause.Container, opts Options) {
	n := g.N
	for v := 1; v <= n; v++ {
		EmitSequentialEO(alloc, s, RowVars(n, v))
	}
	for l := 1; l <= n; l++ {
		EmitSequentialEO(alloc, s, ColVars(n, l))
	}
	anchor := SelectAnchor(g, opts.Anchor)
	EmitSymmetryBreaking(s, n, anchor)

	if w < 2 {
		return
	}
	for _, e := range g.Edges {
		for d := 0; d <= n-w; d++ {
			group := append(windowVars(n, e.U, d, w), windowVars(n, e.V, d, w)...)
			EmitSequentialAMO(alloc, s, group)
		}
	}
}
