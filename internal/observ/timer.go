// Package observ measures where a run spends its time: discovery, loading,
// linting and reporting. Workers may add to a phase concurrently.
package observ

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase is one measured stage of a run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Count int // how many samples were added with Add
	Note  string
}

// Timer tracks phases in the order they were started.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	index  map[string]int
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), index: make(map[string]int, 8)}
}

// Begin starts a phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	idx := len(t.phases) - 1
	t.index[name] = idx
	return idx
}

// End finishes the phase started by Begin.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Add accumulates d into the named phase, creating it on first use. The
// driver reports per-file lint time here; the sum can exceed wall time.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.index[name]
	if !ok {
		t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
		idx = len(t.phases) - 1
		t.index[name] = idx
	}
	t.phases[idx].Dur += d
	t.phases[idx].Count++
}

// PhaseReport is a phase flattened for output.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable form of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases. Accumulated phases do not count toward
// TotalMS: they overlap the wall-clock ones.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		if p.Count == 0 {
			total += p.Dur
		}
		report.Phases[i] = PhaseReport{
			Name:       p.Name,
			DurationMS: durationToMillis(p.Dur),
			Count:      p.Count,
			Note:       p.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// WriteSummary prints the report as an aligned table.
func (t *Timer) WriteSummary(w io.Writer) error {
	report := t.Report()
	if _, err := fmt.Fprintln(w, "timings:"); err != nil {
		return err
	}
	for _, p := range report.Phases {
		line := fmt.Sprintf("  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 0 {
			line += fmt.Sprintf("  (%d samples)", p.Count)
		}
		if p.Note != "" {
			line += "  // " + p.Note
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return err
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
