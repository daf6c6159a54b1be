package encode

import (
	"testing"

	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/satsolver"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

func TestSequentialEncoderKnownInstances(t *testing.T) {
	assertSolve(t, Sequential, path4(), 2, satsolver.SAT)
	assertSolve(t, Sequential, path4(), 3, satsolver.UNSAT)
	assertSolve(t, Sequential, complete4(), 2, satsolver.UNSAT)
	assertSolve(t, Sequential, empty5(), 5, satsolver.SAT)
}

func TestEmitSequentialAMORejectsTwoTrue(t *testing.T) {
	alloc := varhandler.New(4)
	solver := satsolver.NewGini()
	container, _ := clause.NewStreamerContainer(solver, 0, alloc)
	EmitSequentialAMO(alloc, container, []int{1, 2, 3, 4})
	container.Add(1)
	container.Add(2)
	if got := solver.Solve(); got != satsolver.UNSAT {
		t.Fatalf("forcing two of the AMO group true should be UNSAT, got %d", got)
	}
}

func TestEmitSequentialAMOAcceptsOneTrue(t *testing.T) {
	alloc := varhandler.New(4)
	solver := satsolver.NewGini()
	container, _ := clause.NewStreamerContainer(solver, 0, alloc)
	EmitSequentialAMO(alloc, container, []int{1, 2, 3, 4})
	container.Add(3)
	container.Add(-1)
	container.Add(-2)
	container.Add(-4)
	if got := solver.Solve(); got != satsolver.SAT {
		t.Fatalf("forcing exactly one of the AMO group true should be SAT, got %d", got)
	}
}
