package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Tracer receives events from every linting goroutine at once, so
// implementations lock internally.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool // Level() > LevelOff
}

// StorageMode says whether events are streamed, kept in a ring, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = map[StorageMode]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode reads a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return ModeRing, fmt.Errorf("unknown trace mode %q (want stream|ring|both)", s)
}

type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "" and "-" mean stderr
	RingSize   int       // 4096 when <= 0
}

// New builds the tracer for cfg; LevelOff gives Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeRing && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	if cfg.Mode == ModeRing {
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}

	w, err := cfg.writer()
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, cfg.format())
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
}

// format resolves FormatAuto from the output file extension.
func (cfg Config) format() Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	if slices.Contains([]string{".ndjson", ".jsonl"}, filepath.Ext(cfg.OutputPath)) {
		return FormatNDJSON
	}
	return FormatText
}

func (cfg Config) writer() (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return stderrWriter{}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// stderrWriter не реализует io.Closer, поэтому Close трейсера не закроет stderr.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return os.Stderr.Write(p) }
