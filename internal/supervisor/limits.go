package supervisor

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	rssGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "abpsat_supervisor_rss_bytes",
		Help: "Resident set size of the supervisor process and its worker descendants, in bytes.",
	})
	activeWorkersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "abpsat_supervisor_active_workers",
		Help: "Number of worker processes currently running.",
	})
	elapsedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "abpsat_supervisor_elapsed_seconds",
		Help: "Wall-clock seconds since the supervisor started.",
	})
)

// RegisterMetrics adds the supervisor's gauges to reg, matching OLM's
// metrics package pattern of package-level prometheus.NewGauge vars
// registered explicitly rather than auto-registered at import time.
func RegisterMetrics(reg *prometheus.Registry) {
	reg.MustRegister(rssGauge, activeWorkersGauge, elapsedGauge)
}

// Limits are the caps the monitor enforces; zero disables a dimension.
type Limits struct {
	MemoryMB         int
	RealTimeSec      int
	ElapsedTimeSec   int
	SampleRate       time.Duration
	ReportEverySamples int
}

// Violation names which cap was exceeded.
type Violation struct {
	Dimension string
	Observed  float64
}

// Monitor samples resident memory and elapsed time on a timer and
// reports a Violation the first time a configured cap is crossed. The
// rolling-maximum RSS field is written only here and read through
// RollingMaxRSS - a single writer suffices, per spec.md 5.
type Monitor struct {
	limits Limits

	mu            sync.Mutex
	rollingMaxRSS int64
}

// NewMonitor constructs a Monitor. A zero SampleRate defaults to 100ms.
func NewMonitor(limits Limits) *Monitor {
	if limits.SampleRate <= 0 {
		limits.SampleRate = 100 * time.Millisecond
	}
	return &Monitor{limits: limits}
}

// RollingMaxRSS returns the highest RSS sample observed so far, in bytes.
func (m *Monitor) RollingMaxRSS() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollingMaxRSS
}

// Run samples until ctxDone fires or a cap is exceeded, in which case
// it sends exactly one Violation to violations and returns. pids
// returns the current set of worker process ids to sample alongside
// the supervisor's own.
func (m *Monitor) Run(ctxDone <-chan struct{}, pids func() []int, violations chan<- Violation) {
	start := time.Now()
	ticker := time.NewTicker(m.limits.SampleRate)
	defer ticker.Stop()

	sample := 0
	// workerSec approximates aggregate worker time: each sample adds one
	// sample interval per worker pid alive at that sample.
	workerSec := 0.0
	for {
		select {
		case <-ctxDone:
			return
		case <-ticker.C:
			sample++
			all := append([]int{os.Getpid()}, pids()...)
			rss := sampleRSSBytes(all)

			m.mu.Lock()
			if rss > m.rollingMaxRSS {
				m.rollingMaxRSS = rss
			}
			m.mu.Unlock()

			elapsed := time.Since(start)
			if m.limits.ReportEverySamples <= 0 || sample%m.limits.ReportEverySamples == 0 {
				rssGauge.Set(float64(rss))
				activeWorkersGauge.Set(float64(len(all) - 1))
				elapsedGauge.Set(elapsed.Seconds())
			}

			if m.limits.MemoryMB > 0 && rss > int64(m.limits.MemoryMB)*1024*1024 {
				violations <- Violation{Dimension: "memory", Observed: float64(rss) / (1024 * 1024)}
				return
			}
			if m.limits.RealTimeSec > 0 && elapsed.Seconds() > float64(m.limits.RealTimeSec) {
				violations <- Violation{Dimension: "real-time", Observed: elapsed.Seconds()}
				return
			}
			workerSec += float64(len(all)-1) * m.limits.SampleRate.Seconds()
			if m.limits.ElapsedTimeSec > 0 && workerSec > float64(m.limits.ElapsedTimeSec) {
				violations <- Violation{Dimension: "elapsed-time", Observed: workerSec}
				return
			}
		}
	}
}

// sampleRSSBytes sums VmRSS across pids by scraping /proc/<pid>/status.
// On platforms without /proc (anything but Linux) every read fails
// silently and the sum is 0 - per spec.md 9's design note, a real
// deployment would substitute a platform-specific memory-query
// primitive here, which is out of scope for this module's one target.
func sampleRSSBytes(pids []int) int64 {
	var total int64
	for _, pid := range pids {
		total += readVmRSS(pid)
	}
	return total
}

func readVmRSS(pid int) int64 {
	f, err := os.Open("/proc/" + strconv.Itoa(pid) + "/status")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}
