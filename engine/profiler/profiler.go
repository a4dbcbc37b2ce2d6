// Package profiler provides a lightweight frame statistics logger for the
// engine's tick loop.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// defaultReportInterval is how often accumulated frame stats are flushed to
// the log.
const defaultReportInterval = 5 * time.Second

// Profiler accumulates per-frame timings and periodically logs average frame
// rate, worst frame time, and current heap usage. It is driven from a single
// goroutine via Tick and holds no locks.
type Profiler struct {
	interval time.Duration

	windowStart time.Time
	lastTick    time.Time
	frames      int
	worstFrame  time.Duration
}

// NewProfiler creates a Profiler that reports at the default interval.
//
// Returns:
//   - *Profiler: the newly created profiler
func NewProfiler() *Profiler {
	return &Profiler{interval: defaultReportInterval}
}

// NewProfilerWithInterval creates a Profiler that reports at the given
// interval.
//
// Parameters:
//   - interval: time between log reports; must be positive
//
// Returns:
//   - *Profiler: the newly created profiler
func NewProfilerWithInterval(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = defaultReportInterval
	}
	return &Profiler{interval: interval}
}

// Tick records one frame. Call it exactly once per frame; when the report
// interval has elapsed the accumulated stats are logged and the window resets.
func (p *Profiler) Tick() {
	now := time.Now()
	if p.windowStart.IsZero() {
		p.windowStart = now
		p.lastTick = now
		return
	}

	frameTime := now.Sub(p.lastTick)
	p.lastTick = now
	p.frames++
	if frameTime > p.worstFrame {
		p.worstFrame = frameTime
	}

	elapsed := now.Sub(p.windowStart)
	if elapsed < p.interval {
		return
	}

	fps := float64(p.frames) / elapsed.Seconds()
	avgFrame := elapsed / time.Duration(p.frames)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	log.Printf("profiler: %.1f fps (avg %s, worst %s) heap %.1f MiB goroutines %d",
		fps,
		avgFrame.Round(10*time.Microsecond),
		p.worstFrame.Round(10*time.Microsecond),
		float64(mem.HeapAlloc)/(1024*1024),
		runtime.NumGoroutine(),
	)

	p.windowStart = now
	p.frames = 0
	p.worstFrame = 0
}
