package config

import (
	"testing"

	"github.com/abp-sat/abpsat/internal/encode"
	"github.com/abp-sat/abpsat/internal/search"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{"graph.mtx"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.GraphPath != "graph.mtx" {
		t.Errorf("GraphPath = %q, want graph.mtx", cfg.GraphPath)
	}
	if cfg.Kind != encode.Reduced {
		t.Errorf("Kind = %v, want Reduced", cfg.Kind)
	}
	if cfg.Strategy != search.FromLB {
		t.Errorf("Strategy = %v, want FromLB", cfg.Strategy)
	}
	if cfg.Anchor != encode.AnchorNone {
		t.Errorf("Anchor = %v, want AnchorNone", cfg.Anchor)
	}
	if cfg.ProcessCount != 1 {
		t.Errorf("ProcessCount = %d, want 1", cfg.ProcessCount)
	}
}

func TestParseMissingGraphPath(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected an error for a missing graph path")
	}
}

func TestParseEncoderSelection(t *testing.T) {
	cfg, err := Parse([]string{"--duplex", "graph.mtx"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Kind != encode.Duplex {
		t.Errorf("Kind = %v, want Duplex", cfg.Kind)
	}
}

func TestParseConflictingEncoders(t *testing.T) {
	if _, err := Parse([]string{"--duplex", "--ladder", "graph.mtx"}); err == nil {
		t.Fatal("expected an error for conflicting encoder flags")
	}
}

func TestParseSearchStrategy(t *testing.T) {
	cfg, err := Parse([]string{"--bin-search", "graph.mtx"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Strategy != search.Bisection {
		t.Errorf("Strategy = %v, want Bisection", cfg.Strategy)
	}
}

func TestParseSetLBRejectsSmallValues(t *testing.T) {
	if _, err := Parse([]string{"--set-lb=1", "graph.mtx"}); err == nil {
		t.Fatal("expected an error for -set-lb=1")
	}
}

func TestParsePrintWRejectsOne(t *testing.T) {
	if _, err := Parse([]string{"--print-w=1", "graph.mtx"}); err == nil {
		t.Fatal("expected an error for -print-w=1")
	}
}

func TestParseSymmetryBreakRejectsUnknown(t *testing.T) {
	if _, err := Parse([]string{"--symmetry-break=x", "graph.mtx"}); err == nil {
		t.Fatal("expected an error for an unknown symmetry-break value")
	}
}

func TestParseLadderSplitRequiresLadder(t *testing.T) {
	if _, err := Parse([]string{"--ladder-split", "graph.mtx"}); err == nil {
		t.Fatal("expected an error for -ladder-split without --ladder")
	}
}

func TestParseLadderSplit(t *testing.T) {
	cfg, err := Parse([]string{"--ladder", "--ladder-split", "graph.mtx"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.LadderSplit {
		t.Error("LadderSplit = false, want true")
	}
}

func TestParseIsRepeatable(t *testing.T) {
	// Each call owns a fresh FlagSet, so flags set in one call must not
	// leak into the next.
	if _, err := Parse([]string{"--duplex", "a.mtx"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg, err := Parse([]string{"b.mtx"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Kind != encode.Reduced {
		t.Errorf("Kind leaked across calls: got %v, want Reduced", cfg.Kind)
	}
}
