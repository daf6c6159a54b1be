package search

import (
	"math"
	"testing"

	"github.com/abp-sat/abpsat/internal/satsolver"
)

// oracle returns a Query that answers as if the true optimum is wStar:
// SAT for w<=wStar, UNSAT otherwise. It also counts how many times it
// was called.
func oracle(wStar int) (Query, *int) {
	calls := 0
	return func(w int) int {
		calls++
		if w <= wStar {
			return satsolver.SAT
		}
		return satsolver.UNSAT
	}, &calls
}

func TestFromLBFindsOptimum(t *testing.T) {
	q, calls := oracle(2)
	res := Run(FromLB, 1, 5, NoCap, q)
	if res.MaxSAT != 2 || res.MinUNSAT != 3 {
		t.Fatalf("got MaxSAT=%d MinUNSAT=%d, want 2/3", res.MaxSAT, res.MinUNSAT)
	}
	if *calls != 3 {
		t.Fatalf("expected 3 queries (w=1,2,3), got %d", *calls)
	}
}

func TestFromUBFindsOptimum(t *testing.T) {
	q, _ := oracle(2)
	res := Run(FromUB, 1, 5, NoCap, q)
	if res.MaxSAT != 2 {
		t.Fatalf("got MaxSAT=%d, want 2", res.MaxSAT)
	}
}

func TestBisectionFindsOptimum(t *testing.T) {
	q, calls := oracle(2)
	res := Run(Bisection, 1, 5, NoCap, q)
	if res.MaxSAT != 2 {
		t.Fatalf("got MaxSAT=%d, want 2", res.MaxSAT)
	}
	// ceil(log2(ub-lb+2)) = ceil(log2(6)) = 3
	if *calls > 4 {
		t.Fatalf("expected roughly log2(ub-lb+2) queries, got %d", *calls)
	}
}

func TestRunSwapsInvertedBounds(t *testing.T) {
	q, _ := oracle(2)
	res := Run(FromLB, 5, 1, NoCap, q)
	if res.MaxSAT != 2 || res.MinUNSAT != 3 {
		t.Fatalf("inverted bounds not handled: got %+v", res)
	}
}

func TestRunClampsLowerBoundToOne(t *testing.T) {
	q, _ := oracle(2)
	res := Run(FromLB, -4, 5, NoCap, q)
	if res.MaxSAT != 2 {
		t.Fatalf("got MaxSAT=%d, want 2", res.MaxSAT)
	}
}

func TestRunNeverSATAllUNSAT(t *testing.T) {
	q, _ := oracle(0)
	res := Run(FromLB, 1, 5, NoCap, q)
	if res.MaxSAT != 0 || res.MinUNSAT != 1 {
		t.Fatalf("got %+v, want MaxSAT=0 MinUNSAT=1", res)
	}
}

func TestRunAlwaysSAT(t *testing.T) {
	q, _ := oracle(math.MaxInt32)
	res := Run(FromLB, 1, 3, NoCap, q)
	if res.MaxSAT != 3 || res.MinUNSAT != math.MaxInt {
		t.Fatalf("got %+v, want MaxSAT=3 MinUNSAT=+inf", res)
	}
}

func TestRunHardCap(t *testing.T) {
	q, calls := oracle(math.MaxInt32)
	res := Run(FromLB, 1, 10, 3, q)
	if res.MaxSAT != 3 {
		t.Fatalf("got MaxSAT=%d, want 3 (capped)", res.MaxSAT)
	}
	if *calls != 3 {
		t.Fatalf("expected exactly 3 queries under the cap, got %d", *calls)
	}
}
