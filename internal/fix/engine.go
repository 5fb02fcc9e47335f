// Package fix applies the edits attached to diagnostics.
package fix

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects which fixes run.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // first fix, preferring always-safe ones
	ApplyModeAll                   // every always-safe fix
	ApplyModeID                    // the fix with ApplyOptions.TargetID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

type FileChange struct {
	Path      string
	EditCount int
}

// ApplyResult lists what happened to every fix. Buffers holds the patched
// content of each touched file, BOM not included.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
	Buffers     map[source.FileID][]byte
}

// Apply patches the selected fixes and writes touched files back. Virtual
// files are refused.
func Apply(fs *source.FileSet, diagnostics []*diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res, err := run(fs, diagnostics, opts, false)
	if err != nil {
		return res, err
	}
	return res, writeBuffers(fs, res)
}

// Preview is Apply without touching the disk; virtual files are allowed.
func Preview(fs *source.FileSet, diagnostics []*diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	return run(fs, diagnostics, opts, true)
}

type candidate struct {
	diag  *diag.Diagnostic
	fix   diag.Fix
	order int
}

func run(fs *source.FileSet, diagnostics []*diag.Diagnostic, opts ApplyOptions, allowVirtual bool) (*ApplyResult, error) {
	res := &ApplyResult{Buffers: make(map[source.FileID][]byte)}
	if fs == nil {
		return res, errors.New("fix: FileSet is nil")
	}
	cands, skipped := gatherCandidates(diagnostics)
	res.Skipped = append(res.Skipped, skipped...)
	if len(cands) == 0 {
		return res, ErrNoFixes
	}
	sortCandidates(cands)
	selected, skipped := selectCandidates(cands, opts)
	res.Skipped = append(res.Skipped, skipped...)

	p := patcher{fs: fs, allowVirtual: allowVirtual, accepted: make(map[source.FileID][]diag.TextEdit)}
	for _, c := range selected {
		if reason := p.accept(c.fix.Edits); reason != "" {
			res.Skipped = append(res.Skipped, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Reason: reason})
			continue
		}
		res.Applied = append(res.Applied, AppliedFix{
			ID:            c.fix.ID,
			Title:         c.fix.Title,
			Code:          c.diag.Code,
			Message:       c.diag.Message,
			Applicability: c.fix.Applicability,
			PrimaryPath:   displayPath(fs, c.diag.Primary.File, "auto"),
			EditCount:     len(c.fix.Edits),
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	for id, edits := range p.accepted {
		res.Buffers[id] = render(fs.Get(id).Content, edits)
		res.FileChanges = append(res.FileChanges, FileChange{
			Path:      displayPath(fs, id, "relative"),
			EditCount: len(edits),
		})
	}
	slices.SortFunc(res.FileChanges, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return res, nil
}

// gatherCandidates drops fixes without edits and repeated IDs. A missing ID
// becomes "<code>-<file>-<start>-<order>".
func gatherCandidates(diagnostics []*diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
	)
	seen := make(map[string]bool)
	for _, d := range diagnostics {
		if d == nil {
			continue
		}
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, len(cands))
			}
			if seen[f.ID] {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

func sortCandidates(cands []candidate) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		return cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.diag.Code, b.diag.Code),
			cmp.Compare(a.fix.ID, b.fix.ID),
		)
	})
}

func selectCandidates(cands []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	safe := func(c candidate) bool { return c.fix.Applicability == diag.FixApplicabilityAlwaysSafe }
	switch opts.Mode {
	case ApplyModeID:
		if i := slices.IndexFunc(cands, func(c candidate) bool { return c.fix.ID == opts.TargetID }); i >= 0 {
			return cands[i : i+1], nil
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		var (
			selected []candidate
			skipped  []SkippedFix
		)
		for _, c := range cands {
			if safe(c) {
				selected = append(selected, c)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     c.fix.ID,
				Title:  c.fix.Title,
				Reason: "applicability is " + c.fix.Applicability.String(),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		if i := slices.IndexFunc(cands, safe); i >= 0 {
			return cands[i : i+1], nil
		}
		return cands[:1], nil
	}
	return nil, nil
}

// patcher collects accepted edits per file. Every edit stays in the
// coordinates of the original content.
type patcher struct {
	fs           *source.FileSet
	allowVirtual bool
	accepted     map[source.FileID][]diag.TextEdit
}

// accept takes all edits of one fix or none, returning the skip reason.
func (p *patcher) accept(edits []diag.TextEdit) string {
	for i, e := range edits {
		file := p.fs.Get(e.Span.File)
		if !p.allowVirtual && file.Flags.Has(source.FileVirtual) {
			return "target file is virtual"
		}
		if int(e.Span.End) > len(file.Content) || e.Span.Start > e.Span.End {
			return "edit span out of range"
		}
		if e.OldText != "" && string(file.Content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		clash := func(prev diag.TextEdit) bool { return prev.Span.File == e.Span.File && spansConflict(prev, e) }
		if slices.ContainsFunc(p.accepted[e.Span.File], clash) || slices.ContainsFunc(edits[:i], clash) {
			return "conflicts with previously applied edits in " + file.FormatPath("auto", p.fs.BaseDir())
		}
	}
	for _, e := range edits {
		p.accepted[e.Span.File] = append(p.accepted[e.Span.File], e)
	}
	return ""
}

// spansConflict reports overlap of half-open spans. An insertion conflicts
// only strictly inside a non-empty span; two insertions never do.
func spansConflict(a, b diag.TextEdit) bool {
	as, ae := a.Span.Start, a.Span.End
	bs, be := b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs < as && as < be
	case bs == be:
		return as < bs && bs < ae
	}
	return as < be && bs < ae
}

// render applies non-conflicting edits to content in one pass. An insertion
// lands before a replacement starting at the same offset; insertions at one
// offset keep their acceptance order.
func render(content []byte, edits []diag.TextEdit) []byte {
	edits = slices.Clone(edits)
	slices.SortStableFunc(edits, func(a, b diag.TextEdit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})
	out := make([]byte, 0, len(content)+8*len(edits))
	var at uint32
	for _, e := range edits {
		out = append(out, content[at:e.Span.Start]...)
		out = append(out, e.NewText...)
		at = e.Span.End
	}
	return append(out, content[at:]...)
}

func writeBuffers(fs *source.FileSet, res *ApplyResult) error {
	for _, id := range slices.Sorted(maps.Keys(res.Buffers)) {
		file := fs.Get(id)
		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, source.RestoreBOM(file, res.Buffers[id]), mode); err != nil {
			return fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return nil
}

func displayPath(fs *source.FileSet, id source.FileID, mode string) string {
	return fs.Get(id).FormatPath(mode, fs.BaseDir())
}
