// Package encode implements the family of CNF encoders that translate
// "does graph G admit a labelling with antibandwidth >= w?" into a
// clause stream. Every encoder shares the labelling bijection and
// optional symmetry breaking from shared.go; they differ in how they
// constrain the sliding windows that forbid adjacent vertices from
// landing too close together.
package encode

import (
	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

// Kind names one of the five encoding schemes.
type Kind string

const (
	Reduced    Kind = "reduced"
	Sequential Kind = "seq"
	Product    Kind = "product"
	Duplex     Kind = "duplex"
	Ladder     Kind = "ladder"
)

// Anchor names a symmetry-breaking anchor-selection strategy.
type Anchor string

const (
	AnchorFirst Anchor = "f" // vertex 1
	AnchorMax   Anchor = "h" // highest degree, ties broken by lowest id
	AnchorMin   Anchor = "l" // lowest degree, ties broken by lowest id
	AnchorNone  Anchor = "n" // no symmetry breaking
)

// Options configures a single encode call.
type Options struct {
	Anchor Anchor
	// LadderSplit, when the Ladder kind is selected and w is even,
	// additionally builds a half-offset replica of the NSC staircase
	// (spec.md 4.6, 9) alongside the base one. Ignored by every other
	// kind and by Ladder itself when w is odd.
	LadderSplit bool
}

// Encoder is the capability abstraction every encoding scheme
// implements: given the graph, the candidate width w, a variable
// handler seeded with the n*n labelling matrix already accounted for,
// and a clause sink, emit every clause needed to decide "antibandwidth
// >= w" for G.
type Encoder interface {
	// Encode emits the full clause set (bijection + symmetry breaking
	// + per-edge window constraints) for width w.
	Encode(g *graph.Graph, w int, alloc *varhandler.Handler, sink *clause.Container, opts Options)
}

// New returns the Encoder for kind.
func New(kind Kind) Encoder {
	switch kind {
	case Reduced:
		return reducedEncoder{}
	case Sequential:
		return sequentialEncoder{}
	case Product:
		return productEncoder{}
	case Duplex:
		return duplexEncoder{}
	case Ladder:
		return ladderEncoder{}
	default:
		panic("encode: unknown kind " + string(kind))
	}
}

// Var returns the SAT variable for "vertex v bears label l", using the
// spec's fixed numbering x_{v,l} = (v-1)*n + l. v and l are 1-based.
func Var(n, v, l int) int {
	return (v-1)*n + l
}
