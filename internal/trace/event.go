package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event
	KindHeartbeat // periodic liveness signal
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeDriver    Scope = iota + 1 // discovery, the whole run, cache
	ScopeFile                       // one span per linted file
	ScopeParagraph                  // parse errors and rewrites inside a file
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeFile:
		return "file"
	case ScopeParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "check", "lint", file path...
	Detail   string
	Extra    map[string]string
}
