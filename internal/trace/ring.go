package trace

import (
	"io"
	"sync"
)

// RingTracer remembers the most recent events; the CLI dumps them to stderr
// when a run fails.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	total int // сколько событий записано всего
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev. At LevelError every scope is kept so the dump
// after a failure has full context.
func (t *RingTracer) Emit(ev *Event) {
	if t.level != LevelError && !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}
	t.mu.Lock()
	t.buf[t.total%len(t.buf)] = stored
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := min(t.total, len(t.buf))
	out := make([]Event, 0, n)
	for i := t.total - n; i < t.total; i++ {
		out = append(out, t.buf[i%len(t.buf)])
	}
	return out
}

func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
