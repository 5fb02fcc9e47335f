package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"zhfmt/internal/config"
	"zhfmt/internal/diag"
	"zhfmt/internal/lint"
	"zhfmt/internal/observ"
	"zhfmt/internal/pipeline"
	"zhfmt/internal/source"
	"zhfmt/internal/trace"
)

// Mode is the --mode flag: auto picks markdown or text by file extension.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeMarkdown
	ModeText
)

// ParseMode converts a --mode value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "text", "plain", "txt":
		return ModeText, nil
	default:
		return ModeAuto, fmt.Errorf("invalid --mode value %q (expected auto|markdown|text)", s)
	}
}

// For resolves the lint mode of path.
func (m Mode) For(path string) lint.Mode {
	switch m {
	case ModeMarkdown:
		return lint.Markdown
	case ModeText:
		return lint.Plain
	default:
		return lint.ModeForPath(path)
	}
}

// Options tune LintFiles.
type Options struct {
	Config         *config.Config
	Mode           Mode
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int // per file, 0 = unlimited
	NFC            bool
	Cache          *DiskCache
	Progress       pipeline.ProgressSink
	Timer          *observ.Timer
}

// FileResult is the outcome for one path.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Lint is nil when the file could not be read or was served from cache.
	Lint    *lint.Result
	Bag     *diag.Bag
	Cached  bool
	LoadErr error
	Elapsed time.Duration
}

// Changed reports whether the file needs rewriting.
func (r *FileResult) Changed() bool {
	return r.Lint != nil && r.Lint.Changed()
}

// Failed reports read errors and parse errors.
func (r *FileResult) Failed() bool {
	return r.LoadErr != nil || (r.Lint != nil && len(r.Lint.Errors) > 0)
}

// LintFiles loads paths into fs and lints them concurrently. Results keep
// the order of paths. Read failures become IOReadFailed diagnostics on a
// virtual placeholder file and never stop the other files; only context
// cancellation aborts the run.
func LintFiles(ctx context.Context, fs *source.FileSet, paths []string, opts Options) ([]FileResult, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "lint", trace.ParentID(ctx))
	ctx = trace.WithParent(ctx, root)

	results := make([]FileResult, len(paths))
	pipeline.EmitQueued(opts.Progress, paths)

	// FileSet не потокобезопасен: загрузка последовательная, до воркеров
	loadIdx := beginPhase(opts.Timer, "load")
	for i, path := range paths {
		results[i].Path = path
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
		id, err := load(fs, path, opts.NFC)
		if err != nil {
			results[i].LoadErr = err
			id = fs.AddVirtual(path, nil)
		}
		results[i].FileID = id
	}
	endPhase(opts.Timer, loadIdx, strconv.Itoa(len(paths))+" files")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	cfgHash := opts.Config.Hash()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	lintIdx := beginPhase(opts.Timer, "lint")
	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lintOne(gctx, fs, &results[i], cfgHash, opts)
			return nil
		})
	}
	err := g.Wait()
	endPhase(opts.Timer, lintIdx, "jobs="+strconv.Itoa(jobs))

	changed, failed := 0, 0
	for i := range results {
		if results[i].Changed() {
			changed++
		}
		if results[i].Failed() {
			failed++
		}
	}
	root.WithExtra("files", strconv.Itoa(len(paths))).
		WithExtra("changed", strconv.Itoa(changed)).
		WithExtra("failed", strconv.Itoa(failed)).
		End(errDetail(err))
	return results, err
}

func lintOne(ctx context.Context, fs *source.FileSet, res *FileResult, cfgHash string, opts Options) {
	start := time.Now()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, res.Path, trace.ParentID(ctx))
	res.Bag = diag.NewBag(opts.MaxDiagnostics)
	file := fs.Get(res.FileID)

	defer func() {
		res.Elapsed = time.Since(start)
		if opts.Timer != nil {
			opts.Timer.Add("file", res.Elapsed)
		}
	}()

	if res.LoadErr != nil {
		res.Bag.Report(diag.Error(diag.IOReadFailed, source.At(res.FileID, 0),
			fmt.Sprintf("failed to read file: %v", res.LoadErr)))
		pipeline.Emit(opts.Progress, pipeline.Event{File: res.Path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: res.LoadErr})
		span.End("read error")
		return
	}

	mode := opts.Mode.For(res.Path)
	key := MakeCacheKey(file, cfgHash, mode, opts.NFC)
	var cached CachePayload
	if hit, err := opts.Cache.Get(key, &cached); err == nil && hit && cached.Clean {
		res.Cached = true
		pipeline.Emit(opts.Progress, pipeline.Event{File: res.Path, Stage: pipeline.StageLint, Status: pipeline.StatusCached, Elapsed: time.Since(start)})
		span.End("cached")
		return
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: res.Path, Stage: pipeline.StageLint, Status: pipeline.StatusWorking})
	result := lint.Run(file, opts.Config, lint.Options{Mode: mode})
	res.Lint = result
	result.Diagnostics(diag.Dedup(res.Bag))

	for _, perr := range result.Errors {
		trace.Point(tracer, trace.ScopeParagraph, perr.Code.String(), perr.Error(), span.ID())
	}

	clean := !result.Changed() && len(result.Errors) == 0 && len(result.IgnoreErrs) == 0
	if clean {
		// ошибка записи кэша не влияет на результат проверки
		_ = opts.Cache.Put(key, &CachePayload{Path: res.Path, Clean: true})
	}

	status := pipeline.StatusDone
	switch {
	case len(result.Errors) > 0:
		status = pipeline.StatusError
	case result.Changed():
		status = pipeline.StatusChanged
	}
	pipeline.Emit(opts.Progress, pipeline.Event{
		File:    res.Path,
		Stage:   pipeline.StageLint,
		Status:  status,
		Changes: len(result.Changes),
		Elapsed: time.Since(start),
	})
	span.WithExtra("mode", mode.String()).
		WithExtra("changes", strconv.Itoa(len(result.Changes))).
		End(string(status))
}

func load(fs *source.FileSet, path string, nfc bool) (source.FileID, error) {
	if nfc {
		return fs.LoadNFC(path)
	}
	return fs.Load(path)
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}

func errDetail(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
