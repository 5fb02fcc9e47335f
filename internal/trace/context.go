package trace

import "context"

type ctxKey struct{}

type parentKey struct{}

// FromContext returns the attached Tracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t attaches Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// WithParent records span as the parent for spans begun under ctx.
func WithParent(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, parentKey{}, span.ID())
}

// ParentID is the span ID stored by WithParent, or 0.
func ParentID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}
