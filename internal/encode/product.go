package encode

import (
	"math"

	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

// productBaseCase is the largest group size handled by direct
// binomial (pairwise) clauses instead of recursing into a grid.
const productBaseCase = 4

// ProductAMO encodes "at most one of vars" using the 2-product scheme:
// choose p=ceil(sqrt(m)), q=ceil(m/p), introduce row variables u_1..u_p
// and column variables v_1..v_q, assert that the i-th input implies
// both its row and column index variable, then recurse AMO on u and on
// v. Groups of size <= productBaseCase fall back to pairwise clauses.
func ProductAMO(alloc *varhandler.Handler, s sink, vars []int) {
	m := len(vars)
	if m <= 1 {
		return
	}
	if m <= productBaseCase {
		EmitPairwiseAMO(s, vars)
		return
	}

	p := ceilSqrtInt(m)
	q := (m + p - 1) / p
	rows := alloc.AllocN(p)
	cols := alloc.AllocN(q)

	for i, lit := range vars {
		s.Add(-lit, cols[i/p])
		s.Add(-lit, rows[i%p])
	}

	ProductAMO(alloc, s, rows)
	ProductAMO(alloc, s, cols)
}

// ProductEO encodes "exactly one of vars" as ALO plus ProductAMO.
func ProductEO(alloc *varhandler.Handler, s sink, vars []int) {
	EmitALO(s, vars)
	ProductAMO(alloc, s, vars)
}

func ceilSqrtInt(m int) int {
	if m <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(m)))
	for r*r < m {
		r++
	}
	for r > 1 && (r-1)*(r-1) >= m {
		r--
	}
	return r
}

// productEncoder is the "2-Product" scheme of spec.md 4.4: rows and
// columns are exactly-one groups encoded via ProductEO; each edge's
// sliding window pair is an at-most-one group (size 2w) encoded via
// ProductAMO, so that no position within either vertex's w-wide window
// can coincide with another true position on either side.
type productEncoder struct{}

func (productEncoder) Encode(g *graph.Graph, w int, alloc *varhandler.Handler, s *clause.Container, opts Options) {
	n := g.N
	for v := 1; v <= n; v++ {
		ProductEO(alloc, s, RowVars(n, v))
	}
	for l := 1; l <= n; l++ {
		ProductEO(alloc, s, ColVars(n, l))
	}
	anchor := SelectAnchor(g, opts.Anchor)
	EmitSymmetryBreaking(s, n, anchor)

	if w < 2 {
		return
	}
	for _, e := range g.Edges {
		for d := 0; d <= n-w; d++ {
			group := append(windowVars(n, e.U, d, w), windowVars(n, e.V, d, w)...)
			ProductAMO(alloc, s, group)
		}
	}
}
