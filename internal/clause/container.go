package clause

import "github.com/abp-sat/abpsat/internal/varhandler"

// rawSink is the narrow interface Container delegates fully-split
// clauses to. Vector and Streamer are the two concrete
// implementations named in the spec.
type rawSink interface {
	addRaw(lits []int)
}

// LitAdder is the minimal shape a solver must expose to receive a
// clause stream: add a literal, then add 0 (z.LitNull-equivalent) to
// terminate the clause. satsolver.Gini implements it by converting each
// int literal to gini's z.Lit.
type LitAdder interface {
	Add(lit int)
}

// Container is an append-only clause sink with an optional split
// threshold. If S (Split) is greater than zero, every clause handed
// to Add that is longer than S is rewritten using fresh "tseitin-link"
// variables so that every clause actually reaching the underlying
// sink has length <= S. The rewriting preserves satisfiability: each
// link variable is existentially quantified and appears in exactly
// the two clauses it links. Each split step shortens the remainder
// only when S >= 3, so a threshold of 1 or 2 cannot be honoured;
// config.Parse rejects those values.
type Container struct {
	split int
	alloc *varhandler.Handler
	sink  rawSink
}

func newContainer(sink rawSink, split int, alloc *varhandler.Handler) *Container {
	return &Container{split: split, alloc: alloc, sink: sink}
}

// NewVectorContainer builds a Container backed by an in-memory Vector,
// suitable for DIMACS printing.
func NewVectorContainer(split int, alloc *varhandler.Handler) (*Container, *Vector) {
	v := &Vector{}
	return newContainer(v, split, alloc), v
}

// NewStreamerContainer builds a Container that streams clauses
// straight to a solver via adder, suitable for solving.
func NewStreamerContainer(adder LitAdder, split int, alloc *varhandler.Handler) (*Container, *Streamer) {
	s := &Streamer{adder: adder}
	return newContainer(s, split, alloc), s
}

// Add appends a clause, splitting it first if it exceeds the
// configured threshold.
func (c *Container) Add(lits ...int) {
	if c.split <= 0 || len(lits) <= c.split {
		c.sink.addRaw(lits)
		return
	}
	c.addSplit(lits)
}

func (c *Container) addSplit(lits []int) {
	chunk := c.split - 1
	if chunk < 1 {
		chunk = 1
	}
	for len(lits) > c.split {
		head := lits[:chunk]
		rest := lits[chunk:]
		z := c.alloc.Alloc()

		first := make([]int, 0, len(head)+1)
		first = append(first, head...)
		first = append(first, z)
		c.sink.addRaw(first)

		next := make([]int, 0, len(rest)+1)
		next = append(next, -z)
		next = append(next, rest...)
		lits = next
	}
	c.sink.addRaw(lits)
}

// Vector is an in-memory clause sink, used to produce a DIMACS dump.
type Vector struct {
	clauses [][]int
	maxVar  int
}

func (v *Vector) addRaw(lits []int) {
	stored := make([]int, len(lits))
	copy(stored, lits)
	for _, l := range stored {
		if a := abs(l); a > v.maxVar {
			v.maxVar = a
		}
	}
	v.clauses = append(v.clauses, stored)
}

// Clauses returns every clause added so far, in order.
func (v *Vector) Clauses() [][]int {
	return v.clauses
}

// MaxVar returns the highest variable id referenced by any clause.
func (v *Vector) MaxVar() int {
	return v.maxVar
}

// Streamer forwards each clause directly to a solver via LitAdder.
type Streamer struct {
	adder LitAdder
	count int
}

func (s *Streamer) addRaw(lits []int) {
	for _, l := range lits {
		s.adder.Add(l)
	}
	s.adder.Add(0)
	s.count++
}

// Count returns how many clauses have been streamed.
func (s *Streamer) Count() int {
	return s.count
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
