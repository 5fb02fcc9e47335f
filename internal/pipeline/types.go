// Package pipeline describes progress of a multi-file run as a stream of
// events. The driver emits them, the terminal UI and the plain reporter
// consume them.
package pipeline

import "time"

// Stage is a phase of processing one file.
type Stage string

const (
	StageLoad   Stage = "load"
	StageLint   Stage = "lint"
	StageFix    Stage = "fix"
	StageReport Stage = "report"
)

// Status captures progress within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	// StatusDone: the file is clean, or its stage finished without changes.
	StatusDone Status = "done"
	// StatusChanged: the file needs (or received) rewrites.
	StatusChanged Status = "changed"
	// StatusCached: the disk cache vouched for the file, lint was skipped.
	StatusCached Status = "cached"
	StatusError  Status = "error"
)

// Terminal reports whether no more events follow for the file.
func (s Status) Terminal() bool {
	switch s {
	case StatusDone, StatusChanged, StatusCached, StatusError:
		return true
	}
	return false
}

// Event reports progress for a file, or for the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Changes int
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent may be called from
// several goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds per-stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Add accumulates dur into stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the total over stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
