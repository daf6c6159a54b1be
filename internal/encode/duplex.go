package encode

import (
	"github.com/abp-sat/abpsat/internal/bdd"
	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

// duplexEncoder is the BDD-backed scheme of spec.md 4.5. Row exactly-one
// is handled by a forward AMO-BDD over the whole row, reconciled against
// an independently-built backward AMO-BDD via bdd.Store.MakeEqual; the
// same partition is additionally asserted window-by-window as unit
// clauses, which is redundant with the full-row AMO but mirrors the
// "windowed AMO, asserted per window" structure the scheme is named
// for. Column exactly-one goes through the 2-Product scheme, as spec.md
// 4.1 prescribes for Duplex specifically. Edge windows are forbidden
// via AMZ-BDDs built per sliding offset and hash-consed in a single
// Store shared across every vertex and edge in the call, so a vertex's
// window BDD is built once and reused by every edge incident to that
// vertex, and shares any sub-BDD already built for the same label range.
type duplexEncoder struct{}

func (duplexEncoder) Encode(g *graph.Graph, w int, alloc *varhandler.Handler, s *clause.Container, opts Options) {
	n := g.N
	store := bdd.NewStore(alloc, s)

	for v := 1; v <= n; v++ {
		vars := RowVars(n, v)
		EmitALO(s, vars)

		lo, hi := vars[0], vars[n-1]
		fwd := store.BuildAMO(lo, hi)
		bwd := store.BuildAMOBackward(lo, hi)
		s.Add(fwd)
		store.MakeEqual(fwd, bwd)

		pw := w
		if pw < 1 {
			pw = 1
		}
		for from := 0; from < n; from += pw {
			to := from + pw - 1
			if to >= n {
				to = n - 1
			}
			if to == from {
				// A one-label window's AMO holds trivially; its leaf id
				// is the label variable itself and must not be asserted.
				continue
			}
			head := store.BuildAMO(vars[from], vars[to])
			s.Add(head)
		}
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
			amzU := store.BuildAMZ(Var(n, e.U, d+1), Var(n, e.U, d+w))
			amzV := store.BuildAMZ(Var(n, e.V, d+1), Var(n, e.V, d+w))
			s.Add(amzU, amzV)
		}
	}
}
