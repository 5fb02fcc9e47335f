package trace

import (
	"context"
	"strconv"
	"time"
)

// Heartbeat пишет driver-событие раз в interval. Если пульс идёт, а новых
// файловых спанов нет, значит какой-то файл завис.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartHeartbeat returns nil when tracing is off or interval <= 0.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Heartbeat{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		beat(ctx, tracer, interval)
	}()
	return h
}

func beat(ctx context.Context, tracer Tracer, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	gid := goroutineID()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    gid,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		}
	}
}

// Stop is idempotent and safe on nil; it returns after the last beat.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}
