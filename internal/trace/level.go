package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity. Each level above LevelError lets one more
// Scope through.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing streamed, the ring is dumped on failure
	LevelPhase        // ScopeDriver
	LevelDetail       // + ScopeFile
	LevelDebug        // + ScopeParagraph
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value, ignoring case.
func ParseLevel(s string) (Level, error) {
	if i := slices.Index(levelNames[:], strings.ToLower(s)); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want %s)", s, strings.Join(levelNames[:], "|"))
}

func (l Level) ShouldEmit(scope Scope) bool {
	if l < LevelPhase || l > LevelDebug {
		return false
	}
	return scope < ScopeDriver+Scope(l-LevelError)
}
