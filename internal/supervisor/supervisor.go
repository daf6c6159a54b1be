// Package supervisor dispatches per-width feasibility queries to
// worker OS processes, pruning the search via the monotonicity
// property (SAT at w implies SAT at every w'<=w; UNSAT at w implies
// UNSAT at every w'>=w) and enforcing resource limits via a
// concurrently-running Monitor.
package supervisor

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/abp-sat/abpsat/internal/satsolver"
	"github.com/abp-sat/abpsat/internal/search"
)

// Config configures one supervised search run.
type Config struct {
	SelfPath     string   // typically os.Args[0]
	WorkerArgs   []string // common flags every worker is re-exec'd with
	ProcessCount int
	Limits       Limits
}

// Supervisor runs a supervised search, logging through Log.
type Supervisor struct {
	cfg Config
	log logrus.FieldLogger
}

// New returns a Supervisor. A nil log falls back to logrus's standard logger.
func New(cfg Config, log logrus.FieldLogger) *Supervisor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.ProcessCount < 1 {
		cfg.ProcessCount = 1
	}
	return &Supervisor{cfg: cfg, log: log}
}

// Run dispatches workers for strategy over [lb,ub] (capped by wCap,
// search.NoCap for unlimited) until the search converges (maxSAT+1 >=
// minUNSAT) or a resource limit fires.
func (s *Supervisor) Run(ctx context.Context, strategy search.Strategy, lb, ub, wCap int) search.Result {
	if lb > ub {
		lb, ub = ub, lb
	}
	if lb < 1 {
		lb = 1
	}
	if wCap > 0 && wCap < ub {
		ub = wCap
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fr := &frontier{strategy: strategy, lb: lb, ub: ub, tried: map[int]bool{}}
	active := map[int]*Worker{}
	completions := make(chan Completion)

	monitor := NewMonitor(s.cfg.Limits)
	violations := make(chan Violation, 1)
	go monitor.Run(ctx.Done(), func() []int {
		ids := make([]int, 0, len(active))
		for _, w := range active {
			ids = append(ids, w.PID())
		}
		return ids
	}, violations)

	maxSAT, minUNSAT := lb-1, math.MaxInt

	topUp := func() {
		for len(active) < s.cfg.ProcessCount {
			w, ok := fr.next(maxSAT, minUNSAT)
			if !ok {
				break
			}
			fr.tried[w] = true
			worker := StartWorker(ctx, s.cfg.SelfPath, s.cfg.WorkerArgs, w)
			active[w] = worker
			go func(c <-chan Completion) { completions <- <-c }(worker.Done())
		}
	}

	terminateBelow := func(w int) {
		for width, worker := range active {
			if width < w {
				worker.Terminate()
				delete(active, width)
			}
		}
	}
	terminateAbove := func(w int) {
		for width, worker := range active {
			if width > w {
				worker.Terminate()
				delete(active, width)
			}
		}
	}

	for {
		topUp()
		if len(active) == 0 {
			break
		}
		select {
		case v := <-violations:
			s.log.WithField("dimension", v.Dimension).WithField("observed", v.Observed).
				Error("resource limit exceeded, terminating all workers")
			for width, worker := range active {
				worker.Terminate()
				delete(active, width)
			}
			return search.Result{MaxSAT: maxSAT, MinUNSAT: minUNSAT, Queries: len(fr.tried)}
		case c := <-completions:
			delete(active, c.Width)
			switch c.Code {
			case satsolver.SAT:
				if c.Width > maxSAT {
					maxSAT = c.Width
					terminateBelow(maxSAT)
				}
			case satsolver.UNSAT:
				if c.Width < minUNSAT {
					minUNSAT = c.Width
					terminateAbove(minUNSAT)
				}
			default:
				s.log.WithField("width", c.Width).WithField("code", c.Code).Warn("worker produced no verdict")
			}
		}
		if maxSAT+1 >= minUNSAT {
			for width, worker := range active {
				worker.Terminate()
				delete(active, width)
			}
			break
		}
	}

	return search.Result{MaxSAT: maxSAT, MinUNSAT: minUNSAT, Queries: len(fr.tried)}
}

// frontier produces the next width to dispatch for a given strategy,
// given the current monotonicity bounds, skipping widths already
// dispatched. Each call recomputes from (maxSAT, minUNSAT) rather than
// holding a precomputed queue, since bisection's candidate depends on
// the live range shrinking as results arrive.
type frontier struct {
	strategy search.Strategy
	lb, ub   int
	tried    map[int]bool
}

func (f *frontier) next(maxSAT, minUNSAT int) (int, bool) {
	lo, hi := f.lb, f.ub
	if maxSAT+1 > lo {
		lo = maxSAT + 1
	}
	if minUNSAT-1 < hi {
		hi = minUNSAT - 1
	}
	if lo > hi {
		return 0, false
	}

	var w int
	switch f.strategy {
	case search.FromUB:
		w = hi
	case search.Bisection:
		w = (lo + hi) / 2
	default: // search.FromLB
		w = lo
	}
	// FromUB walks downward past dispatched widths; the others upward.
	step := 1
	if f.strategy == search.FromUB {
		step = -1
	}
	for f.tried[w] {
		w += step
		if w > hi || w < lo {
			return 0, false
		}
	}
	return w, true
}
