package encode

import (
	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

// ladderRegisters is the auxiliary-variable memo spec.md 3 and 4.6
// describe for the ladder encoder: a (first,last)->id map giving the
// register bit asserting "some variable in the interval [first,last]
// is true". A singleton interval's register is the interval's own
// variable - first==last returns first directly rather than
// allocating a fresh id - everything wider is allocated once and
// reused by every chain, seam and staircase-glue clause that needs it.
type ladderRegisters struct {
	alloc *varhandler.Handler
	ids   map[[2]int]int
}

func newLadderRegisters(alloc *varhandler.Handler) *ladderRegisters {
	return &ladderRegisters{alloc: alloc, ids: make(map[[2]int]int)}
}

func (r *ladderRegisters) get(first, last int) int {
	if first == last {
		return first
	}
	if first > last {
		first, last = last, first
	}
	key := [2]int{first, last}
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := r.alloc.Alloc()
	r.ids[key] = id
	return id
}

// buildLadderChain emits the register chain anchored at vars[0],
// growing through vars[1:]: reg(vars[0],vars[i]) for increasing i,
// each step carrying spec.md 4.6's three clause templates plus the
// at-most-one guard:
//
//	vars[i]            -> reg(i)
//	reg(i-1)           -> reg(i)
//	reg(i)             -> (reg(i-1) OR vars[i])
//	vars[i]            -> NOT reg(i-1)
//
// Called with vars walking left-to-right from a window's first
// element (the upper part) or right-to-left from its last element
// (the lower part) - the register keyed on (min,max) is shared by
// whichever of the two directions reaches the same interval, so a
// window's full-span register is defined consistently regardless of
// which chain(s) the window builds.
func buildLadderChain(regs *ladderRegisters, s sink, vars []int) {
	anchor := vars[0]
	reg := func(v int) int { return regs.get(anchor, v) }

	for i := 1; i < len(vars); i++ {
		s.Add(-vars[i], reg(vars[i]))
	}
	for i := 1; i < len(vars); i++ {
		s.Add(-reg(vars[i-1]), reg(vars[i]))
	}
	for i := 1; i < len(vars); i++ {
		s.Add(vars[i], reg(vars[i-1]), -reg(vars[i]))
	}
	for i := 1; i < len(vars); i++ {
		s.Add(-vars[i], -reg(vars[i-1]))
	}
}

// ladderWindowsPhased partitions vars into windows of width w, a
// leading short window of width `phase` first if phase>0 and the
// final window possibly narrower than w. phase=0 gives the plain
// ceil(n/w) partition; phase=w/2 is the half-offset partition the
// split variant replicates the staircase against (spec.md 4.6, 9).
func ladderWindowsPhased(vars []int, w, phase int) [][]int {
	var windows [][]int
	if phase > 0 && phase < len(vars) {
		windows = append(windows, vars[:phase])
		vars = vars[phase:]
	}
	for i := 0; i < len(vars); i += w {
		end := i + w
		if end > len(vars) {
			end = len(vars)
		}
		windows = append(windows, vars[i:end])
	}
	return windows
}

func reverseInts(vars []int) []int {
	rev := make([]int, len(vars))
	for i, v := range vars {
		rev[len(vars)-1-i] = v
	}
	return rev
}

// encodeStaircaseRow is spec.md 4.6's per-vertex exactly-one: windows
// with a predecessor get an upper-part chain (anchored at their first
// element), windows with a successor get a lower-part chain (anchored
// at their last element, built by walking the window backwards), every
// window's full-span register becomes its aggregate "this window
// holds the true label" bit, the aggregates form an exactly-one set
// over the row (alo-over-windows), and adjacent windows are glued by
// a seam forbidding the conjunction of a current-window suffix
// register and a next-window prefix register.
func encodeStaircaseRow(regs *ladderRegisters, s sink, vars []int, w, phase int) {
	windows := ladderWindowsPhased(vars, w, phase)
	aggregates := make([]int, len(windows))
	for i, win := range windows {
		// encode_window's branch order: window 0 always gets the lower
		// (backward) chain even if it's also the row's only window -
		// "has a predecessor" and "has a successor" aren't both checked
		// independently, since a lone window still needs something to
		// define its aggregate register in terms of the real labels.
		switch {
		case i == 0:
			if len(win) > 1 {
				buildLadderChain(regs, s, reverseInts(win))
			}
		case i == len(windows)-1:
			if len(win) > 1 {
				buildLadderChain(regs, s, win)
			}
		default:
			if len(win) > 1 {
				buildLadderChain(regs, s, win)
				buildLadderChain(regs, s, reverseInts(win))
			}
		}
		aggregates[i] = regs.get(win[0], win[len(win)-1])
	}
	EmitPairwiseEO(s, aggregates)

	for i := 0; i < len(windows)-1; i++ {
		glueLadderWindows(regs, s, windows[i], windows[i+1])
	}
}

// glueLadderWindows is the seam between adjacent windows left and
// right (spec.md 4.6, ladder_encoder.cpp's glue_window): right is the
// window immediately after left. In the unphased partition left is
// always a full w-wide window, since only the last window in a row can
// be short; with phase>0 the row's leading window is phase wide. At
// offset i it forbids the left window's suffix register (true somewhere
// in its last len(left)-i positions - shrinking as i grows) and the
// right window's prefix register (true somewhere in its first i+1
// positions - growing as i grows) from both holding; the two lengths
// always sum to len(left)+1, the encoder's antibandwidth reach for a
// full left window.
func glueLadderWindows(regs *ladderRegisters, s sink, left, right []int) {
	depth := len(left)
	if len(right) < depth {
		depth = len(right)
	}
	lastOfLeft := left[len(left)-1]
	firstOfRight := right[0]
	for i := 0; i < depth; i++ {
		leftReg := regs.get(left[i], lastOfLeft)
		rightReg := regs.get(firstOfRight, right[i])
		s.Add(-leftReg, -rightReg)
	}
}

// boundaryRegs returns the left window's suffix register and the
// right window's prefix register at offset mod into the boundary
// between them, mirroring glueLadderWindows' lengths: suffix length
// len(left)-mod on the left (glueStair only passes mod < len(left)),
// prefix length mod+1 on the right (which may be the row's short final
// window - glueStair's loop bound keeps mod+1 within its length).
func boundaryRegs(regs *ladderRegisters, left, right []int, mod int) (int, int) {
	leftReg := regs.get(left[mod], left[len(left)-1])
	ri := mod
	if ri > len(right)-1 {
		ri = len(right) - 1
	}
	rightReg := regs.get(right[0], right[ri])
	return leftReg, rightReg
}

// glueStair is the edge staircase glue spec.md 4.6 describes
// (ladder_encoder.cpp's glue_stair): for every offset i = 0..n-w-1,
// mod = i mod w and sub = i/w locate the window pair (sub, sub+1) each
// endpoint's row was already partitioned into, and forbid every
// pairing of u's boundary registers with v's boundary registers at
// that offset - the four two-literal clauses that actually encode "u
// and v cannot both land inside this w-wide straddling band". The loop
// bound is exact: it's what keeps mod+1 from overrunning a short final
// window without needing to clamp away a spurious iteration. With
// phase>0 the leading window is only phase wide, so offsets whose mod
// falls past its end are skipped; that boundary is glued for the
// positions the leading window has and no further.
func glueStair(regs *ladderRegisters, s sink, n, u, v, w, phase int) {
	winU := ladderWindowsPhased(RowVars(n, u), w, phase)
	winV := ladderWindowsPhased(RowVars(n, v), w, phase)
	for i := 0; i+w < n; i++ {
		mod, sub := i%w, i/w
		if sub+1 >= len(winU) || sub+1 >= len(winV) {
			continue
		}
		if mod >= len(winU[sub]) || mod >= len(winV[sub]) {
			continue
		}
		uLeft, uRight := boundaryRegs(regs, winU[sub], winU[sub+1], mod)
		vLeft, vRight := boundaryRegs(regs, winV[sub], winV[sub+1], mod)
		s.Add(-uLeft, -vLeft)
		s.Add(-uLeft, -vRight)
		s.Add(-uRight, -vLeft)
		s.Add(-uRight, -vRight)
	}
}

// ladderEncoder is the NSC staircase scheme of spec.md 4.6: row
// exactly-one and the edge width constraint both go through the
// register-interval memo above instead of a sequential-counter chain
// or pairwise clauses, sharing registers across a row's windows and,
// for an edge, across its two endpoint rows. Column exactly-one has
// no window structure to share and stays a plain sequential counter,
// as ladder_encoder.cpp's own encode_vertices does. When
// opts.LadderSplit is set and w is even, a second copy of the
// staircase is built offset by w/2 and glued the same way - spec.md
// 9 calls this the "ladder-split" path and notes it only exists for
// even w, since odd w has no integer half-phase.
type ladderEncoder struct{}

func (ladderEncoder) Encode(g *graph.Graph, w int, alloc *varhandler.Handler, s *clause.Container, opts Options) {
	n := g.N
	for l := 1; l <= n; l++ {
		EmitSequentialEO(alloc, s, ColVars(n, l))
	}

	// encode_obj_k in ladder_encoder.cpp partitions each row and glues
	// each edge at width w-1, not w: the boundary registers at a
	// window's last offset (mod == bw-1) collapse to the window's own
	// full-span aggregate, and it's that collapse which has to line up
	// with "distance >= w" for the glue clauses to be exactly tight.
	// Using w itself there over-forbids the farthest-apart label pairs.
	bw := w - 1
	if bw < 1 {
		bw = 1
	}
	regs := newLadderRegisters(alloc)
	for v := 1; v <= n; v++ {
		encodeStaircaseRow(regs, s, RowVars(n, v), bw, 0)
	}

	anchor := SelectAnchor(g, opts.Anchor)
	EmitSymmetryBreaking(s, n, anchor)

	if w < 2 {
		return
	}
	for _, e := range g.Edges {
		glueStair(regs, s, n, e.U, e.V, bw, 0)
	}

	// The split replica keeps the same reach (bw) so it stays a sound,
	// equisatisfiable restatement of the base staircase - only its
	// window alignment changes, offset by half the candidate width.
	// That phase is only an integer when w is even, matching spec.md
	// 9's "even w" condition on the split path.
	if opts.LadderSplit && w%2 == 0 {
		phase := w / 2
		split := newLadderRegisters(alloc)
		for v := 1; v <= n; v++ {
			encodeStaircaseRow(split, s, RowVars(n, v), bw, phase)
		}
		for _, e := range g.Edges {
			glueStair(split, s, n, e.U, e.V, bw, phase)
		}
	}
}
