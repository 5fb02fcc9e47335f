package pipeline

import "sync"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Recorder keeps every event; used by tests and by --timings.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) OnEvent(evt Event) {
	r.mu.Lock()
	r.events = append(r.events, evt)
	r.mu.Unlock()
}

// Events returns a copy of what was recorded.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Emit sends evt to sink when sink is non-nil.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// EmitQueued announces files before any work starts.
func EmitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLoad, Status: StatusQueued})
	}
}
