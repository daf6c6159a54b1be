package supervisor

import (
	"os"
	"testing"
	"time"
)

func TestReadVmRSSOfSelf(t *testing.T) {
	if _, err := os.Stat("/proc/self/status"); err != nil {
		t.Skip("/proc not available on this platform")
	}
	rss := readVmRSS(os.Getpid())
	if rss <= 0 {
		t.Fatalf("expected a positive RSS for the running test process, got %d", rss)
	}
}

func TestDecodeExitCodeRoundTrips(t *testing.T) {
	cases := map[int]int{
		ExitTooSmall:           0,
		ExitSAT:                10,
		ExitUNSAT:              20,
		ExitVerificationFailed: -10,
		ExitSolverOther:        -20,
	}
	for exitCode, want := range cases {
		if got := DecodeExitCode(exitCode); got != want {
			t.Errorf("DecodeExitCode(%d) = %d, want %d", exitCode, got, want)
		}
	}
}

func TestMonitorFiresMemoryViolation(t *testing.T) {
	if _, err := os.Stat("/proc/self/status"); err != nil {
		t.Skip("/proc not available on this platform")
	}
	m := NewMonitor(Limits{MemoryMB: 1, SampleRate: 5 * time.Millisecond})
	done := make(chan struct{})
	violations := make(chan Violation, 1)
	go m.Run(done, func() []int { return nil }, violations)
	defer close(done)

	select {
	case v := <-violations:
		if v.Dimension != "memory" {
			t.Fatalf("got dimension %q, want memory", v.Dimension)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a memory violation within 2s given a 1MB cap")
	}
}
