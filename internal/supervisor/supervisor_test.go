package supervisor

import (
	"math"
	"testing"

	"github.com/abp-sat/abpsat/internal/search"
)

func TestFrontierFromLBAdvancesWithMaxSAT(t *testing.T) {
	fr := &frontier{strategy: search.FromLB, lb: 1, ub: 10, tried: map[int]bool{}}
	w, ok := fr.next(1-1, math.MaxInt)
	if !ok || w != 1 {
		t.Fatalf("got (%d,%v), want (1,true)", w, ok)
	}
	fr.tried[1] = true
	w, ok = fr.next(1, math.MaxInt)
	if !ok || w != 2 {
		t.Fatalf("got (%d,%v), want (2,true)", w, ok)
	}
}

func TestFrontierFromUBAdvancesWithMinUNSAT(t *testing.T) {
	fr := &frontier{strategy: search.FromUB, lb: 1, ub: 10, tried: map[int]bool{}}
	w, ok := fr.next(0, math.MaxInt)
	if !ok || w != 10 {
		t.Fatalf("got (%d,%v), want (10,true)", w, ok)
	}
	fr.tried[10] = true
	w, ok = fr.next(0, 10)
	if !ok || w != 9 {
		t.Fatalf("got (%d,%v), want (9,true)", w, ok)
	}
}

func TestFrontierBisectionMidpoint(t *testing.T) {
	fr := &frontier{strategy: search.Bisection, lb: 1, ub: 10, tried: map[int]bool{}}
	w, ok := fr.next(0, math.MaxInt)
	if !ok || w != 5 {
		t.Fatalf("got (%d,%v), want (5,true)", w, ok)
	}
}

func TestFrontierExhausted(t *testing.T) {
	fr := &frontier{strategy: search.FromLB, lb: 1, ub: 3, tried: map[int]bool{}}
	_, _ = fr.next(3, math.MaxInt)
	if _, ok := fr.next(3, math.MaxInt); ok {
		t.Fatal("expected no candidate once maxSAT reaches ub")
	}
}

func TestFrontierConverged(t *testing.T) {
	fr := &frontier{strategy: search.FromLB, lb: 1, ub: 10, tried: map[int]bool{}}
	if _, ok := fr.next(5, 6); ok {
		t.Fatal("expected no candidate once the bounds have converged")
	}
}
