// Package search drives a sequence of per-width feasibility queries
// toward the antibandwidth optimum, without knowing how a single query
// is actually answered - that's a Query func supplied by the caller
// (cmd/abpsat passes an in-process abpdriver.Run call; its
// multi-process path uses supervisor.Run instead of this package).
package search

import (
	"math"

	"github.com/abp-sat/abpsat/internal/satsolver"
)

// Strategy names one of the three search orders over w.
type Strategy string

const (
	FromLB    Strategy = "from-lb"
	FromUB    Strategy = "from-ub"
	Bisection Strategy = "bin-search"
)

// NoCap means the hard width cap is disabled (the default).
const NoCap = 0

// Query answers a single feasibility question for width w, returning
// one of satsolver.SAT, satsolver.UNSAT, or any other code for "no
// verdict" (solver-other, verification failure, worker crash).
type Query func(w int) int

// Result summarizes a completed search.
type Result struct {
	// MaxSAT is the largest width confirmed SAT, or LB-1 if none was.
	MaxSAT int
	// MinUNSAT is the smallest width confirmed UNSAT, or +infinity
	// (math.MaxInt) if none was observed.
	MinUNSAT int
	// Queries is how many widths were actually put to query.
	Queries int
}

// Run drives strategy over [lb,ub] (swapped and clamped to >=1 if
// given inverted or out of range), honoring wCap (NoCap for no limit).
func Run(strategy Strategy, lb, ub, wCap int, query Query) Result {
	if lb > ub {
		lb, ub = ub, lb
	}
	if lb < 1 {
		lb = 1
	}
	if ub < lb {
		ub = lb
	}
	if wCap > 0 && wCap < ub {
		ub = wCap
	}

	res := Result{MaxSAT: lb - 1, MinUNSAT: math.MaxInt}

	switch strategy {
	case FromLB:
		for w := lb; w <= ub; w++ {
			res.Queries++
			switch query(w) {
			case satsolver.SAT:
				if w > res.MaxSAT {
					res.MaxSAT = w
				}
			case satsolver.UNSAT:
				res.MinUNSAT = w
				return res
			default:
				return res
			}
		}
		return res

	case FromUB:
		for w := ub; w >= lb; w-- {
			res.Queries++
			switch query(w) {
			case satsolver.SAT:
				res.MaxSAT = w
				return res
			case satsolver.UNSAT:
				if w < res.MinUNSAT {
					res.MinUNSAT = w
				}
			default:
				return res
			}
		}
		return res

	case Bisection:
		lo, hi := lb, ub
		for lo <= hi {
			mid := (lo + hi) / 2
			res.Queries++
			switch query(mid) {
			case satsolver.SAT:
				if mid > res.MaxSAT {
					res.MaxSAT = mid
				}
				lo = mid + 1
			case satsolver.UNSAT:
				if mid < res.MinUNSAT {
					res.MinUNSAT = mid
				}
				hi = mid - 1
			default:
				return res
			}
		}
		return res

	default:
		panic("search: unknown strategy " + string(strategy))
	}
}
