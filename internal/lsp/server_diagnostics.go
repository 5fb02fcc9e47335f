package lsp

import (
	"context"
	"strconv"
	"time"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"zhfmt/internal/diag"
	"zhfmt/internal/lint"
	"zhfmt/internal/source"
	"zhfmt/internal/trace"
)

const diagnosticSource = "zhfmt"

func (s *Server) scheduleDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdownRequested {
		return
	}
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	doc.seq++
	seq := doc.seq
	if t := s.timers[uri]; t != nil {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(ctx, conn, uri, seq)
	})
}

// runDiagnostics lints the document and publishes the result unless a newer
// edit arrived in the meantime.
func (s *Server) runDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, seq uint64) {
	doc, ok := s.snapshot(uri)
	if !ok || doc.seq != seq {
		return
	}
	a := s.analyze(ctx, doc)

	s.mu.Lock()
	cur, ok := s.docs[uri]
	if !ok || cur.seq != seq {
		s.mu.Unlock()
		return
	}
	s.published[uri] = struct{}{}
	s.mu.Unlock()

	if err := publish(ctx, conn, uri, a.diagnostics()); err != nil {
		s.logf("publish %s: %v", uri, err)
	}
}

func publish(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, list []lsp.Diagnostic) error {
	if list == nil {
		list = []lsp.Diagnostic{}
	}
	return conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: list})
}

// analysis is one lint pass over a document snapshot.
type analysis struct {
	uri    lsp.DocumentURI
	file   *source.File
	result *lint.Result
	bag    *diag.Bag
}

func (s *Server) analyze(ctx context.Context, doc document) *analysis {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(doc.path, []byte(doc.text)))
	cfg := s.configFor(doc.path)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "lsp_lint", 0).
		WithExtra("version", strconv.Itoa(doc.version))
	res := lint.Run(file, cfg, lint.Options{Mode: s.mode.For(doc.path)})
	span.End(doc.path)

	bag := diag.NewBag(s.maxDiagnostics)
	res.Diagnostics(diag.Dedup(bag))
	bag.Sort()
	return &analysis{uri: doc.uri, file: file, result: res, bag: bag}
}

func (a *analysis) diagnostics() []lsp.Diagnostic {
	out := make([]lsp.Diagnostic, 0, a.bag.Len())
	for _, d := range a.bag.Items() {
		out = append(out, a.toLSP(d))
	}
	return out
}

func (a *analysis) toLSP(d *diag.Diagnostic) lsp.Diagnostic {
	return lsp.Diagnostic{
		Range:    spanRange(a.file, d.Primary),
		Severity: severityFor(d.Severity),
		Code:     d.Code.ID(),
		Source:   diagnosticSource,
		Message:  d.Message,
	}
}

func severityFor(sev diag.Severity) lsp.DiagnosticSeverity {
	switch sev {
	case diag.SevError:
		return lsp.Error
	case diag.SevWarning:
		return lsp.Warning
	default:
		return lsp.Information
	}
}

// edits are the rewrites of the whole document in source coordinates.
func (a *analysis) edits() []lsp.TextEdit {
	out := make([]lsp.TextEdit, 0, len(a.result.Changes))
	for _, c := range a.result.Changes {
		out = append(out, lsp.TextEdit{
			Range:   spanRange(a.file, c.Span),
			NewText: c.Modified,
		})
	}
	return out
}

// actions returns one quick fix per fixable diagnostic touching rng and a
// fix-all action when the document has any change.
func (a *analysis) actions(rng lsp.Range) []codeAction {
	out := []codeAction{}
	for _, d := range a.bag.Items() {
		ld := a.toLSP(d)
		if !overlaps(ld.Range, rng) {
			continue
		}
		for _, f := range d.Fixes {
			edits := make([]lsp.TextEdit, 0, len(f.Edits))
			for _, e := range f.Edits {
				edits = append(edits, lsp.TextEdit{
					Range:   spanRange(a.file, e.Span),
					NewText: e.NewText,
				})
			}
			out = append(out, codeAction{
				Title:       f.Title,
				Kind:        lsp.CAKQuickFix,
				Diagnostics: []lsp.Diagnostic{ld},
				IsPreferred: f.Applicability == diag.FixApplicabilityAlwaysSafe,
				Edit:        a.workspaceEdit(edits),
			})
		}
	}
	if a.result.Changed() {
		out = append(out, codeAction{
			Title: "Fix all zhfmt issues",
			Kind:  kindSourceFixAll,
			Edit:  a.workspaceEdit(a.edits()),
		})
	}
	return out
}

func (a *analysis) workspaceEdit(edits []lsp.TextEdit) *lsp.WorkspaceEdit {
	return &lsp.WorkspaceEdit{
		Changes: map[string][]lsp.TextEdit{string(a.uri): edits},
	}
}

func overlaps(a, b lsp.Range) bool {
	return !positionLess(a.End, b.Start) && !positionLess(b.End, a.Start)
}

func positionLess(a, b lsp.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}
