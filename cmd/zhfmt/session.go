package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zhfmt/internal/prof"
	"zhfmt/internal/trace"
)

// session holds per-command tracing and profiling state.
type session struct {
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	profile   *prof.Session
	errOut    io.Writer
}

// startSession reads the persistent trace and profiling flags, attaches the
// tracer to the command context, and returns a finish func. finish dumps the
// ring buffer when the command failed, then flushes everything.
func startSession(cmd *cobra.Command) (finish func(runErr error), err error) {
	s := &session{errOut: cmd.ErrOrStderr()}
	if err := s.setupTracing(cmd); err != nil {
		return nil, err
	}
	if err := s.setupProfiling(cmd); err != nil {
		s.closeTracer()
		return nil, err
	}
	return s.finish, nil
}

func (s *session) setupTracing(cmd *cobra.Command) error {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		if traceOutput == "" {
			s.tracer = trace.Nop
			cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
			return nil
		}
		// указан файл, но не уровень: пишем фазы
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}
	if traceOutput != "" && mode == trace.ModeRing {
		mode = trace.ModeBoth
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if heartbeatInterval > 0 {
		s.heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}
	return nil
}

func (s *session) setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuProfile == "" && memProfile == "" && tracePath == "" {
		return nil
	}

	p, err := prof.Start(prof.Options{CPU: cpuProfile, Mem: memProfile, Trace: tracePath})
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	s.profile = p
	return nil
}

func (s *session) finish(runErr error) {
	if err := s.profile.Stop(); err != nil {
		fmt.Fprintf(s.errOut, "profile: %v\n", err)
	}
	if runErr != nil {
		if ring := ringOf(s.tracer); ring != nil {
			fmt.Fprintln(s.errOut, "trace: last events before failure:")
			if err := ring.Dump(s.errOut, trace.FormatText); err != nil {
				fmt.Fprintf(s.errOut, "trace: dump error: %v\n", err)
			}
		}
	}
	s.closeTracer()
}

func (s *session) closeTracer() {
	if s.heartbeat != nil {
		s.heartbeat.Stop()
	}
	if s.tracer == nil {
		return
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(s.errOut, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(s.errOut, "trace: close error: %v\n", err)
	}
}

func ringOf(t trace.Tracer) *trace.RingTracer {
	switch t := t.(type) {
	case *trace.RingTracer:
		return t
	case *trace.MultiTracer:
		return t.Ring()
	default:
		return nil
	}
}
