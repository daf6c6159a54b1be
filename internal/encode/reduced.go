package encode

import (
	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

// reducedEncoder is the baseline "pairwise" scheme of spec.md 4.2:
// plain binary-clause exactly-one for every row and column, and for
// each edge and each sliding window offset d, a forbidden-pair clause
// between every position in u's window and every position in v's
// window. Encoding itself cannot fail; all inputs are validated by the
// caller before Encode is invoked.
type reducedEncoder struct{}

func (reducedEncoder) Encode(g *graph.Graph, w int, alloc *varhandler.Handler, s *clause.Container, opts Options) {
	n := g.N
	EmitPairwiseLabelling(s, n)
	anchor := SelectAnchor(g, opts.Anchor)
	EmitSymmetryBreaking(s, n, anchor)

	if w < 2 {
		return
	}
	for _, e := range g.Edges {
		for d := 0; d <= n-w; d++ {
			uWindow := windowVars(n, e.U, d, w)
			vWindow := windowVars(n, e.V, d, w)
			for _, lu := range uWindow {
				for _, lv := range vWindow {
					s.Add(-lu, -lv)
				}
			}
		}
	}
}
