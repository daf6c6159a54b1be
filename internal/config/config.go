// Package config owns the CLI flag set and turns a parsed command
// line into an immutable Config consumed by the rest of the program.
// Mirrors cmd/olm/main.go's top-level pflag var block, scoped into a
// fresh *pflag.FlagSet per Parse call instead of the process-global
// pflag.CommandLine, since this package (not main) owns the set.
package config

import (
	"github.com/spf13/pflag"

	"github.com/abp-sat/abpsat/internal/encode"
	"github.com/abp-sat/abpsat/internal/search"
)

// Config is the fully-validated, immutable result of parsing one
// command line.
type Config struct {
	GraphPath string

	Kind          encode.Kind
	ConfigureName string // "", "sat", "unsat"
	ForcePhase    bool
	Verify        bool

	Strategy search.Strategy
	SetLB    int // 0 = unset, fall back to the bound table
	SetUB    int

	SplitSize   int
	Anchor      encode.Anchor
	LadderSplit bool

	PrintW int // 0 = not dump mode

	// WorkerWidth is set only when this process is a supervisor-forked
	// worker re-exec of the binary: 0 means "not a worker", otherwise
	// it's the single width this process should query and exit on.
	WorkerWidth int

	ProcessCount        int
	LimitMemoryMB       int
	LimitRealTimeSec    int
	LimitElapsedTimeSec int
	SampleRateMicros    int
	ReportRateSamples   int

	// MetricsAddr, when non-empty, is the address promhttp.Handler is
	// served on for the duration of the search.
	MetricsAddr string
}

// ArgError is a bad-input error: missing graph argument, conflicting
// flags, or a non-positive numeric flag where one is required. Exit
// code 1 per spec.md 6.
type ArgError struct {
	Msg string
}

func (e *ArgError) Error() string { return "config: " + e.Msg }

type flagVars struct {
	reduced, seq, product, duplex, ladder *bool

	confSAT, confUnsat, confDef, forcePhase *bool
	verifyResult                            *bool

	fromLB, fromUB, binSearch *bool

	setLB, setUB  *int
	splitSize     *int
	symmetryBreak *string
	ladderSplit   *bool

	printW      *int
	workerWidth *int

	processCount                                  *int
	limitMemory, limitRealTime, limitElapsedTime *int
	sampleRate, reportRate                        *int
	metricsAddr                                    *string
}

func bindFlags(fs *pflag.FlagSet) *flagVars {
	return &flagVars{
		reduced: fs.Bool("reduced", false, "use the reduced pairwise encoder"),
		seq:     fs.Bool("seq", false, "use the sequential-counter encoder"),
		product: fs.Bool("product", false, "use the 2-product encoder"),
		duplex:  fs.Bool("duplex", false, "use the duplex BDD encoder"),
		ladder:  fs.Bool("ladder", false, "use the ladder NSC staircase encoder"),

		confSAT:    fs.Bool("conf-sat", false, "configure the solver with the \"sat\" preset"),
		confUnsat:  fs.Bool("conf-unsat", false, "configure the solver with the \"unsat\" preset"),
		confDef:    fs.Bool("conf-def", false, "configure the solver with its default preset"),
		forcePhase: fs.Bool("force-phase", false, "set the solver's --forcephase long-option"),

		verifyResult: fs.Bool("verify-result", false, "decode and verify every SAT model"),

		fromLB:    fs.Bool("from-lb", false, "search ascending from the lower bound"),
		fromUB:    fs.Bool("from-ub", false, "search descending from the upper bound"),
		binSearch: fs.Bool("bin-search", false, "bisect between the lower and upper bound"),

		setLB:         fs.Int("set-lb", 0, "override the lower bound (N>=2)"),
		setUB:         fs.Int("set-ub", 0, "override the upper bound (N>0)"),
		splitSize:     fs.Int("split-size", 0, "clause split threshold, 0 disables splitting"),
		symmetryBreak: fs.String("symmetry-break", string(encode.AnchorNone), "anchor strategy: f|h|l|n"),
		ladderSplit:   fs.Bool("ladder-split", false, "with --ladder and even w, also glue a half-offset staircase replica"),

		printW:      fs.Int("print-w", 0, "dump the DIMACS encoding for this width instead of solving (N>=2)"),
		workerWidth: fs.Int("worker-width", 0, "internal: run a single query for this width and exit with its result code"),

		processCount:     fs.Int("process-count", 1, "number of parallel supervisor workers"),
		limitMemory:      fs.Int("limit-memory", 0, "memory cap in MB, 0 disables"),
		limitRealTime:    fs.Int("limit-real-time", 0, "wall-clock cap in seconds, 0 disables"),
		limitElapsedTime: fs.Int("limit-elapsed-time", 0, "aggregate worker-time cap in seconds, 0 disables"),
		sampleRate:       fs.Int("sample-rate", 100000, "limits monitor sampling interval in microseconds"),
		reportRate:       fs.Int("report-rate", 10, "limits monitor report interval in samples"),

		metricsAddr: fs.String("metrics-addr", "", "serve Prometheus metrics on this address while searching, empty disables"),
	}
}

// hideInternalFlags removes flags meant only for the supervisor's own
// re-exec of the binary from --help output.
func hideInternalFlags(fs *pflag.FlagSet) {
	_ = fs.MarkHidden("worker-width")
}

// Parse parses args (typically os.Args[1:]) into a validated Config.
func Parse(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("abpsat", pflag.ContinueOnError)
	fv := bindFlags(fs)
	hideInternalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, &ArgError{Msg: err.Error()}
	}

	positional := fs.Args()
	if len(positional) < 1 {
		return nil, &ArgError{Msg: "missing graph path argument"}
	}
	cfg := &Config{GraphPath: positional[0]}

	switch kinds := boolCount(*fv.reduced, *fv.seq, *fv.product, *fv.duplex, *fv.ladder); {
	case kinds > 1:
		return nil, &ArgError{Msg: "at most one of --reduced/--seq/--product/--duplex/--ladder may be set"}
	case *fv.seq:
		cfg.Kind = encode.Sequential
	case *fv.product:
		cfg.Kind = encode.Product
	case *fv.duplex:
		cfg.Kind = encode.Duplex
	case *fv.ladder:
		cfg.Kind = encode.Ladder
	default:
		cfg.Kind = encode.Reduced
	}

	switch confs := boolCount(*fv.confSAT, *fv.confUnsat, *fv.confDef); {
	case confs > 1:
		return nil, &ArgError{Msg: "at most one of --conf-sat/--conf-unsat/--conf-def may be set"}
	case *fv.confSAT:
		cfg.ConfigureName = "sat"
	case *fv.confUnsat:
		cfg.ConfigureName = "unsat"
	default:
		cfg.ConfigureName = ""
	}
	cfg.ForcePhase = *fv.forcePhase
	cfg.Verify = *fv.verifyResult

	switch strategies := boolCount(*fv.fromLB, *fv.fromUB, *fv.binSearch); {
	case strategies > 1:
		return nil, &ArgError{Msg: "at most one of --from-lb/--from-ub/--bin-search may be set"}
	case *fv.fromUB:
		cfg.Strategy = search.FromUB
	case *fv.binSearch:
		cfg.Strategy = search.Bisection
	default:
		cfg.Strategy = search.FromLB
	}

	if *fv.setLB != 0 {
		if *fv.setLB < 2 {
			return nil, &ArgError{Msg: "-set-lb requires N>=2"}
		}
		cfg.SetLB = *fv.setLB
	}
	if *fv.setUB != 0 {
		if *fv.setUB <= 0 {
			return nil, &ArgError{Msg: "-set-ub requires N>0"}
		}
		cfg.SetUB = *fv.setUB
	}

	cfg.SplitSize = *fv.splitSize
	if cfg.SplitSize == 1 || cfg.SplitSize == 2 {
		return nil, &ArgError{Msg: "-split-size must be 0 or at least 3"}
	}
	if *fv.ladderSplit && cfg.Kind != encode.Ladder {
		return nil, &ArgError{Msg: "-ladder-split requires --ladder"}
	}
	cfg.LadderSplit = *fv.ladderSplit

	anchor := encode.Anchor(*fv.symmetryBreak)
	switch anchor {
	case encode.AnchorFirst, encode.AnchorMax, encode.AnchorMin, encode.AnchorNone:
		cfg.Anchor = anchor
	default:
		return nil, &ArgError{Msg: "-symmetry-break must be one of f, h, l, n"}
	}

	if *fv.printW != 0 {
		if *fv.printW < 2 {
			return nil, &ArgError{Msg: "-print-w requires N>=2"}
		}
		cfg.PrintW = *fv.printW
	}

	cfg.ProcessCount = *fv.processCount
	if cfg.ProcessCount < 1 {
		cfg.ProcessCount = 1
	}
	cfg.LimitMemoryMB = *fv.limitMemory
	cfg.LimitRealTimeSec = *fv.limitRealTime
	cfg.LimitElapsedTimeSec = *fv.limitElapsedTime
	cfg.SampleRateMicros = *fv.sampleRate
	cfg.ReportRateSamples = *fv.reportRate
	cfg.MetricsAddr = *fv.metricsAddr

	cfg.WorkerWidth = *fv.workerWidth

	return cfg, nil
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
