package encode

import (
	"testing"

	"github.com/abp-sat/abpsat/internal/graph"
)

// TestEncodersAgree checks that every scheme gives the same SAT/UNSAT
// verdict for a sample of (graph, w) pairs - the one property that must
// hold across all five encoders regardless of how they structure their
// auxiliary variables.
func TestEncodersAgree(t *testing.T) {
	cases := []struct {
		name string
		g    *graph.Graph
		w    int
	}{
		{"P3/1", path3(), 1},
		{"P3/2", path3(), 2},
		{"P4/2", path4(), 2},
		{"P4/3", path4(), 3},
		{"C4/1", cycle4(), 1},
		{"C4/2", cycle4(), 2},
		{"K4/1", complete4(), 1},
		{"K4/2", complete4(), 2},
		{"empty5/5", empty5(), 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var want int
			for i, kind := range allKinds {
				got := solveWith(kind, tc.g, tc.w, Options{Anchor: AnchorFirst})
				if i == 0 {
					want = got
					continue
				}
				if got != want {
					t.Errorf("%s: %s gave %d, but %s gave %d", tc.name, kind, got, allKinds[0], want)
				}
			}
		})
	}
}
