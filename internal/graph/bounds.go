package graph

// boundTable is a static lookup of published lower/upper antibandwidth
// bounds, keyed by the instance name carried on Graph.Name (e.g. the
// filename of a benchmark .mtx.rnd file). Absent names fall back to
// (1, floor(n/2)+1), computed by Bounds.
var boundTable = map[string][2]int{
	"A-pores_1.mtx.rnd": {2, 4},
	"A-bcspwr01.mtx.rnd": {3, 6},
	"A-bcspwr02.mtx.rnd": {4, 9},
	"A-can_24.mtx.rnd":   {2, 5},
	"A-can_61.mtx.rnd":   {3, 12},
}

// Bounds returns the lower and upper antibandwidth bounds registered
// for g.Name, or the default (1, floor(n/2)+1) if no entry exists.
func Bounds(g *Graph) (lb, ub int) {
	if b, ok := boundTable[g.Name]; ok {
		return b[0], b[1]
	}
	return 1, g.N/2 + 1
}
