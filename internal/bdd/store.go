// Package bdd implements the hash-consed AMO/AMZ binary decision
// diagrams used by the Duplex encoder to constrain a sliding window of
// label variables to "at most one true" or "all false". Nodes are
// addressed by integer id and stored in a flat arena; no pointers are
// used, so there is no possibility of a reference cycle even though
// the two maps below are logically a DAG.
package bdd

import "github.com/abp-sat/abpsat/internal/varhandler"

// sink is the minimal clause-emission surface Store needs; satisfied
// by *clause.Container.
type sink interface {
	Add(lits ...int)
}

// Node records one BDD node. For an internal node, ID is a fresh
// propositional variable representing the node's truth value. For a
// leaf, ID is +from (AMO on a singleton, trivially true) or -from (AMZ
// on a singleton, true iff the variable is false) and both children
// are zero.
type Node struct {
	ID         int
	From, To   int
	Bound      int // 1 = at-most-one, 0 = at-most-zero (all false)
	TrueChild  int
	FalseChild int
}

// Store holds hash-consed maps keyed by (from,to), one for AMO-BDDs and
// one for AMZ-BDDs, plus a second such pair for the backward builders,
// all backed by a flat node arena. Every (from,to) pair appears in each
// map at most once: every builder looks up before building, so a
// sub-range requested again (by another window or edge) is shared.
type Store struct {
	alloc   *varhandler.Handler
	sink    sink
	amo     map[[2]int]int
	amz     map[[2]int]int
	amoBack map[[2]int]int
	amzBack map[[2]int]int
	arena   map[int]Node
}

// NewStore returns a Store that allocates auxiliary node variables via
// alloc and streams defining clauses to sink.
func NewStore(alloc *varhandler.Handler, sink sink) *Store {
	return &Store{
		alloc:   alloc,
		sink:    sink,
		amo:     make(map[[2]int]int),
		amz:     make(map[[2]int]int),
		amoBack: make(map[[2]int]int),
		amzBack: make(map[[2]int]int),
		arena:   make(map[int]Node),
	}
}

// Node returns the stored node for id, or the zero Node if id was
// never built (e.g. a leaf id for which no arena entry is needed).
func (s *Store) Node(id int) (Node, bool) {
	n, ok := s.arena[id]
	return n, ok
}

// BuildAMO returns the id of the AMO-BDD over the input variable range
// [from,to] (inclusive, from <= to), building it bottom-up and
// emitting its defining clauses the first time a given (from,to) is
// requested.
func (s *Store) BuildAMO(from, to int) int {
	key := [2]int{from, to}
	if id, ok := s.amo[key]; ok {
		return id
	}
	if from == to {
		id := from
		s.arena[id] = Node{ID: id, From: from, To: to, Bound: 1}
		s.amo[key] = id
		return id
	}

	l0 := from
	trueChild := s.BuildAMZ(from+1, to)
	falseChild := s.BuildAMO(from+1, to)

	h := s.alloc.Alloc()
	s.amo[key] = h
	s.arena[h] = Node{ID: h, From: from, To: to, Bound: 1, TrueChild: trueChild, FalseChild: falseChild}

	s.sink.Add(-l0, -h, trueChild)
	if to-(from+1) >= 1 {
		// tail has more than one variable: AMO(from,to) still implies
		// AMO(tail) regardless of l0's value. When the tail is a
		// singleton, AMO over it is trivially true and this clause
		// would be a tautology, so it's skipped.
		s.sink.Add(-h, falseChild)
	}
	return h
}

// BuildAMZ returns the id of the AMZ-BDD ("all false") over [from,to].
func (s *Store) BuildAMZ(from, to int) int {
	key := [2]int{from, to}
	if id, ok := s.amz[key]; ok {
		return id
	}
	if from == to {
		id := -from
		s.arena[id] = Node{ID: id, From: from, To: to, Bound: 0}
		s.amz[key] = id
		return id
	}

	l0 := from
	falseChild := s.BuildAMZ(from+1, to)

	h := s.alloc.Alloc()
	s.amz[key] = h
	s.arena[h] = Node{ID: h, From: from, To: to, Bound: 0, FalseChild: falseChild}

	s.sink.Add(-l0, -h)
	s.sink.Add(l0, -h, falseChild)
	s.sink.Add(l0, h, -falseChild)
	return h
}

// BuildAMOBackward is BuildAMO's mirror image: it peels the range from
// the high end (to) instead of the low end (from). It denotes the same
// constraint as BuildAMO(from,to) but is built from a disjoint set of
// auxiliary variables, so the two can be reconciled with MakeEqual
// instead of being trivially identical.
func (s *Store) BuildAMOBackward(from, to int) int {
	key := [2]int{from, to}
	if id, ok := s.amoBack[key]; ok {
		return id
	}
	if from == to {
		id := from
		s.arena[id] = Node{ID: id, From: from, To: to, Bound: 1}
		s.amoBack[key] = id
		return id
	}

	lLast := to
	trueChild := s.BuildAMZBackward(from, to-1)
	falseChild := s.BuildAMOBackward(from, to-1)

	h := s.alloc.Alloc()
	s.amoBack[key] = h
	s.arena[h] = Node{ID: h, From: from, To: to, Bound: 1, TrueChild: trueChild, FalseChild: falseChild}

	s.sink.Add(-lLast, -h, trueChild)
	if to-1-from >= 1 {
		s.sink.Add(-h, falseChild)
	}
	return h
}

// BuildAMZBackward mirrors BuildAMZ, peeling from the high end.
func (s *Store) BuildAMZBackward(from, to int) int {
	key := [2]int{from, to}
	if id, ok := s.amzBack[key]; ok {
		return id
	}
	if from == to {
		id := -from
		s.arena[id] = Node{ID: id, From: from, To: to, Bound: 0}
		s.amzBack[key] = id
		return id
	}

	lLast := to
	falseChild := s.BuildAMZBackward(from, to-1)

	h := s.alloc.Alloc()
	s.amzBack[key] = h
	s.arena[h] = Node{ID: h, From: from, To: to, Bound: 0, FalseChild: falseChild}

	s.sink.Add(-lLast, -h)
	s.sink.Add(lLast, -h, falseChild)
	s.sink.Add(lLast, h, -falseChild)
	return h
}

// MakeEqual asserts that the two node ids a and b denote the same
// truth value, via mutual implication. It is used to reconcile the
// forward- and backward-built BDDs at shared window boundaries.
//
// An id of -1 has no defined meaning in this encoder (see spec Open
// Questions): rather than silently treating it as "force-assert the
// other", MakeEqual rejects it outright.
func (s *Store) MakeEqual(a, b int) {
	if a == -1 || b == -1 {
		panic("bdd: MakeEqual called with undefined id -1")
	}
	if a == b {
		return
	}
	s.sink.Add(-a, b)
	s.sink.Add(a, -b)
}
