package trace

import "errors"

// MultiTracer отдаёт каждое событие всем вложенным трейсерам.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers, level: level}
}

// Emit gives each tracer its own copy since tracers stamp Seq in place.
func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) each(op func(Tracer) error) error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, op(tr))
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Flush() error  { return t.each(Tracer.Flush) }
func (t *MultiTracer) Close() error  { return t.each(Tracer.Close) }
func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }

// Ring is the ring buffer among the targets, nil if there is none.
func (t *MultiTracer) Ring() *RingTracer {
	for _, tr := range t.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r
		}
	}
	return nil
}
