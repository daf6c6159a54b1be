// Package satsolver adapts an external CDCL SAT solver to the narrow
// interface the encoders and ABP driver need: add a literal, terminate
// a clause with a 0 sentinel, configure by name, set a boolean
// long-option, solve, read a variable's polarity, and report the
// irredundant-clause count. The solver itself is treated as a black
// box per the spec; Gini wraps github.com/go-air/gini, the one
// concrete embeddable CDCL core available in this module's dependency
// set.
package satsolver

import (
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Result codes mirror the values the spec says the solver returns
// from Solve(): 10 for SAT, 20 for UNSAT, anything else for "other".
const (
	SAT       = 10
	UNSAT     = 20
	giniSAT   = 1
	giniUNSAT = -1
)

// Solver is the interface abpdriver and the encoders consume. It is
// intentionally small: everything about solver internals (restarts,
// phase saving, clause learning) is opaque.
type Solver interface {
	// Add appends a literal to the clause under construction; a 0
	// literal terminates the clause.
	Add(lit int)
	// Configure selects a named preset ("sat", "unsat", or "" for
	// default).
	Configure(name string) error
	// SetLongOption applies a boolean long-option such as
	// "--forcephase" or "--phase=0".
	SetLongOption(opt string) error
	// Solve runs the solver to completion and returns SAT, UNSAT, or
	// an implementation-defined "other" code.
	Solve() int
	// Val returns a positive value if var is true in the current
	// model, negative otherwise. var is a 1-based DIMACS-style
	// variable id.
	Val(v int) int
	// Irredundant reports the current count of irredundant clauses.
	Irredundant() int
	// Version identifies the underlying solver implementation.
	Version() string
}

// Gini implements Solver over github.com/go-air/gini.
type Gini struct {
	g           *gini.Gini
	config      string
	forcePhase  bool
	phaseTarget int
	clauseCount int
}

var _ Solver = (*Gini)(nil)

// NewGini constructs a fresh Gini-backed solver with no clauses.
func NewGini() *Gini {
	return &Gini{g: gini.New()}
}

// Add forwards to gini's inter.Adder, converting a signed DIMACS-style
// literal to gini's z.Lit encoding. Add(0) terminates the clause being
// built.
func (s *Gini) Add(lit int) {
	if lit == 0 {
		s.g.Add(z.LitNull)
		s.clauseCount++
		return
	}
	s.g.Add(dimacsLit(lit))
}

func dimacsLit(lit int) z.Lit {
	if lit < 0 {
		return z.Var(-lit).Neg()
	}
	return z.Var(lit).Pos()
}

// Configure records a named preset. gini's public API does not expose
// CaDiCaL-style SAT/UNSAT-biased presets, so "sat"/"unsat"/"" are
// accepted and recorded but otherwise behave identically; unknown
// names are rejected. See DESIGN.md for why this is an honest no-op
// rather than a simulated effect.
func (s *Gini) Configure(name string) error {
	switch name {
	case "", "sat", "unsat":
		s.config = name
		return nil
	default:
		return &unsupportedOptionError{opt: "configure=" + name}
	}
}

// SetLongOption records a boolean long-option. Only the options named
// in the spec ("--forcephase", "--phase=0", "--phase=1",
// "--no-rephase") are recognized; gini doesn't expose phase-forcing in
// its public interface, so these are stored for inspection/testing but
// do not change solving behavior (see DESIGN.md).
func (s *Gini) SetLongOption(opt string) error {
	switch {
	case opt == "--forcephase":
		s.forcePhase = true
	case opt == "--no-rephase":
		s.forcePhase = false
	case strings.HasPrefix(opt, "--phase="):
		switch strings.TrimPrefix(opt, "--phase=") {
		case "0":
			s.phaseTarget = 0
		case "1":
			s.phaseTarget = 1
		default:
			return &unsupportedOptionError{opt: opt}
		}
	default:
		return &unsupportedOptionError{opt: opt}
	}
	return nil
}

// Solve runs gini to completion, translating its {1,-1,0} result
// codes to the spec's {SAT,UNSAT,other}.
func (s *Gini) Solve() int {
	switch s.g.Solve() {
	case giniSAT:
		return SAT
	case giniUNSAT:
		return UNSAT
	default:
		return 0
	}
}

// Val returns a positive value if variable v holds true in the model
// from the last Solve(), negative otherwise.
func (s *Gini) Val(v int) int {
	if s.g.Value(z.Var(v).Pos()) {
		return 1
	}
	return -1
}

// Irredundant returns the number of clauses added via Add so far.
// gini does not separately track learned ("redundant") clauses
// through its public API, so every clause streamed in via Add is
// counted; this is the irredundant count by construction since
// encoders never add learned clauses themselves.
func (s *Gini) Irredundant() int {
	return s.clauseCount
}

// Version identifies the backing solver.
func (s *Gini) Version() string {
	return "gini"
}

type unsupportedOptionError struct {
	opt string
}

func (e *unsupportedOptionError) Error() string {
	return "satsolver: unsupported option " + e.opt
}
