// Command abpsat computes, or helps compute, the antibandwidth of a
// graph: the largest w such that some bijective vertex labelling keeps
// every edge's endpoints at least w apart. Normal invocations run a
// search over candidate widths, each answered by one SAT feasibility
// query; --process-count>1 spreads those queries across worker
// processes re-exec'd from this same binary, pruned by monotonicity
// and watched by a resource-limit monitor.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/abp-sat/abpsat/internal/abpdriver"
	"github.com/abp-sat/abpsat/internal/clause"
	"github.com/abp-sat/abpsat/internal/config"
	"github.com/abp-sat/abpsat/internal/dimacs"
	"github.com/abp-sat/abpsat/internal/encode"
	"github.com/abp-sat/abpsat/internal/graph"
	"github.com/abp-sat/abpsat/internal/search"
	"github.com/abp-sat/abpsat/internal/supervisor"
	"github.com/abp-sat/abpsat/internal/varhandler"
)

func main() {
	logger := logrus.StandardLogger()

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		logger.WithError(err).Error("argument error")
		os.Exit(1)
	}

	g, err := graph.Load(cfg.GraphPath, cfg.GraphPath)
	if err != nil {
		logger.WithError(err).WithField("path", cfg.GraphPath).Error("failed to load graph")
		os.Exit(1)
	}

	// A worker re-exec answers exactly one width and exits with a
	// byte-safe code the parent Worker decodes; see
	// internal/supervisor/worker.go.
	if cfg.WorkerWidth != 0 {
		runWorker(logger, g, cfg)
		return
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		supervisor.RegisterMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.WithError(err).Error("metrics serving failed")
			}
		}()
	}

	if cfg.PrintW != 0 {
		dumpEncoding(logger, g, cfg)
		return
	}

	lb, ub := graph.Bounds(g)
	if cfg.SetLB != 0 {
		lb = cfg.SetLB
	}
	if cfg.SetUB != 0 {
		ub = cfg.SetUB
	}

	var result search.Result
	if cfg.ProcessCount <= 1 {
		driver := abpdriver.New(logger)
		query := func(w int) int {
			return driver.Run(g, w, driverConfig(cfg)).Code
		}
		result = search.Run(cfg.Strategy, lb, ub, search.NoCap, query)
	} else {
		self, err := os.Executable()
		if err != nil {
			logger.WithError(err).Error("could not resolve own executable path for worker re-exec")
			os.Exit(1)
		}
		sup := supervisor.New(supervisor.Config{
			SelfPath:     self,
			WorkerArgs:   workerArgs(cfg),
			ProcessCount: cfg.ProcessCount,
			Limits: supervisor.Limits{
				MemoryMB:           cfg.LimitMemoryMB,
				RealTimeSec:        cfg.LimitRealTimeSec,
				ElapsedTimeSec:     cfg.LimitElapsedTimeSec,
				SampleRate:         time.Duration(cfg.SampleRateMicros) * time.Microsecond,
				ReportEverySamples: cfg.ReportRateSamples,
			},
		}, logger)
		result = sup.Run(context.Background(), cfg.Strategy, lb, ub, search.NoCap)
	}

	logger.WithField("max_sat", result.MaxSAT).
		WithField("min_unsat", result.MinUNSAT).
		WithField("queries", result.Queries).
		Info("search complete")
	fmt.Printf("antibandwidth: %d (queries: %d)\n", result.MaxSAT, result.Queries)
}

// runWorker answers a single width query and exits with the byte-safe
// code the parent supervisor's Worker.wait translates back via
// supervisor.DecodeExitCode.
func runWorker(logger logrus.FieldLogger, g *graph.Graph, cfg *config.Config) {
	driver := abpdriver.New(logger)
	res := driver.Run(g, cfg.WorkerWidth, driverConfig(cfg))
	switch res.Code {
	case abpdriver.SAT:
		os.Exit(supervisor.ExitSAT)
	case abpdriver.UNSAT:
		os.Exit(supervisor.ExitUNSAT)
	case abpdriver.VerificationFailed:
		os.Exit(supervisor.ExitVerificationFailed)
	case abpdriver.TooSmall:
		os.Exit(supervisor.ExitTooSmall)
	default:
		os.Exit(supervisor.ExitSolverOther)
	}
}

// dumpEncoding writes the DIMACS CNF for a single requested width to
// stdout without ever invoking the solver, per the -print-w contract.
func dumpEncoding(logger logrus.FieldLogger, g *graph.Graph, cfg *config.Config) {
	alloc := varhandler.New(g.N * g.N)
	container, vec := clause.NewVectorContainer(cfg.SplitSize, alloc)
	enc := encode.New(cfg.Kind)
	enc.Encode(g, cfg.PrintW, alloc, container, encode.Options{Anchor: cfg.Anchor, LadderSplit: cfg.LadderSplit})
	if err := dimacs.Write(os.Stdout, vec); err != nil {
		logger.WithError(err).Error("failed to write DIMACS output")
		os.Exit(1)
	}
}

func driverConfig(cfg *config.Config) abpdriver.Config {
	return abpdriver.Config{
		Kind:          cfg.Kind,
		Anchor:        cfg.Anchor,
		SplitSize:     cfg.SplitSize,
		ConfigureName: cfg.ConfigureName,
		ForcePhase:    cfg.ForcePhase,
		Verify:        cfg.Verify,
		LadderSplit:   cfg.LadderSplit,
	}
}

// workerArgs is the flag subset every re-exec'd worker needs: the
// graph path and every flag that changes how a single query is built
// and solved. Search-strategy and resource-limit flags are deliberately
// excluded, since those belong to the supervisor, not the worker.
func workerArgs(cfg *config.Config) []string {
	args := []string{cfg.GraphPath}
	switch cfg.Kind {
	case encode.Sequential:
		args = append(args, "--seq")
	case encode.Product:
		args = append(args, "--product")
	case encode.Duplex:
		args = append(args, "--duplex")
	case encode.Ladder:
		args = append(args, "--ladder")
	}
	if cfg.ConfigureName != "" {
		args = append(args, "--conf-"+cfg.ConfigureName)
	}
	if cfg.ForcePhase {
		args = append(args, "--force-phase")
	}
	if cfg.Verify {
		args = append(args, "--verify-result")
	}
	if cfg.SplitSize != 0 {
		args = append(args, fmt.Sprintf("--split-size=%d", cfg.SplitSize))
	}
	if cfg.Anchor != "" {
		args = append(args, fmt.Sprintf("--symmetry-break=%s", cfg.Anchor))
	}
	if cfg.LadderSplit {
		args = append(args, "--ladder-split")
	}
	return args
}
