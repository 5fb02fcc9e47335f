package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"zhfmt/internal/config"
)

type harness struct {
	t      *testing.T
	ctx    context.Context
	client *jsonrpc2.Conn
	diags  chan lsp.PublishDiagnosticsParams
	done   chan error
}

func startServer(t *testing.T) *harness {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	serverSide, clientSide := net.Pipe()
	server := NewServer(ServerOptions{
		Debounce: time.Millisecond,
		Config:   config.Default(),
		Log:      io.Discard,
	})
	h := &harness{
		t:     t,
		ctx:   ctx,
		diags: make(chan lsp.PublishDiagnosticsParams, 16),
		done:  make(chan error, 1),
	}
	go func() { h.done <- server.Run(ctx, serverSide) }()

	h.client = jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
			if req.Method != "textDocument/publishDiagnostics" || req.Params == nil {
				return nil, nil
			}
			var params lsp.PublishDiagnosticsParams
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, err
			}
			h.diags <- params
			return nil, nil
		}))
	t.Cleanup(func() { h.client.Close() })
	return h
}

func (h *harness) call(method string, params, result any) {
	h.t.Helper()
	if err := h.client.Call(h.ctx, method, params, result); err != nil {
		h.t.Fatalf("%s: %v", method, err)
	}
}

func (h *harness) notify(method string, params any) {
	h.t.Helper()
	if err := h.client.Notify(h.ctx, method, params); err != nil {
		h.t.Fatalf("%s: %v", method, err)
	}
}

func (h *harness) nextDiagnostics() lsp.PublishDiagnosticsParams {
	h.t.Helper()
	select {
	case p := <-h.diags:
		return p
	case <-h.ctx.Done():
		h.t.Fatal("timed out waiting for publishDiagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}

func (h *harness) wait() error {
	h.t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-h.ctx.Done():
		h.t.Fatal("server did not stop")
		return nil
	}
}

func TestServerLifecycle(t *testing.T) {
	h := startServer(t)
	dir := t.TempDir()
	uri := pathToURI(filepath.Join(dir, "doc.md"))

	var initRes lsp.InitializeResult
	h.call("initialize", lsp.InitializeParams{RootURI: pathToURI(dir)}, &initRes)
	if !initRes.Capabilities.CodeActionProvider || !initRes.Capabilities.DocumentFormattingProvider {
		t.Fatalf("unexpected capabilities: %+v", initRes.Capabilities)
	}
	h.notify("initialized", struct{}{})

	h.notify("textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, LanguageID: "markdown", Version: 1, Text: "中文English\n"},
	})
	published := h.nextDiagnostics()
	if published.URI != uri {
		t.Fatalf("expected uri %q, got %q", uri, published.URI)
	}
	if len(published.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", published.Diagnostics)
	}
	got := published.Diagnostics[0]
	if got.Code != "FMT3003" || got.Source != "zhfmt" || got.Severity != lsp.Warning {
		t.Fatalf("unexpected diagnostic: %+v", got)
	}
	if got.Range.Start != (lsp.Position{Line: 0, Character: 2}) {
		t.Fatalf("unexpected start: %+v", got.Range.Start)
	}

	var edits []lsp.TextEdit
	h.call("textDocument/formatting", lsp.DocumentFormattingParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
	}, &edits)
	wantEdits := []lsp.TextEdit{{
		Range:   *rangeAt(0, 2, 2),
		NewText: " ",
	}}
	if diff := cmp.Diff(wantEdits, edits); diff != "" {
		t.Fatalf("formatting edits mismatch (-want +got):\n%s", diff)
	}

	var actions []codeAction
	h.call("textDocument/codeAction", lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Range:        *rangeAt(0, 0, 9),
	}, &actions)
	if len(actions) != 2 {
		t.Fatalf("expected quick fix and fix-all, got %+v", actions)
	}
	if actions[0].Kind != lsp.CAKQuickFix || actions[1].Kind != kindSourceFixAll {
		t.Fatalf("unexpected action kinds: %q %q", actions[0].Kind, actions[1].Kind)
	}
	if diff := cmp.Diff(wantEdits, actions[0].Edit.Changes[string(uri)]); diff != "" {
		t.Fatalf("quick fix edits mismatch (-want +got):\n%s", diff)
	}

	h.notify("textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument: lsp.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{
			{Range: rangeAt(0, 2, 2), Text: " "},
		},
	})
	if after := h.nextDiagnostics(); len(after.Diagnostics) != 0 {
		t.Fatalf("expected clean document after edit, got %+v", after.Diagnostics)
	}

	h.notify("textDocument/didClose", lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
	})
	if cleared := h.nextDiagnostics(); cleared.URI != uri || len(cleared.Diagnostics) != 0 {
		t.Fatalf("expected cleared diagnostics, got %+v", cleared)
	}

	h.call("shutdown", nil, nil)
	h.notify("exit", nil)
	if err := h.wait(); !errors.Is(err, ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}
}

func TestServerParseErrorDiagnostic(t *testing.T) {
	h := startServer(t)
	uri := pathToURI(filepath.Join(t.TempDir(), "broken.md"))
	h.call("initialize", lsp.InitializeParams{}, nil)

	h.notify("textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, Version: 1, Text: "中文”中文\n"},
	})
	published := h.nextDiagnostics()
	for _, d := range published.Diagnostics {
		if d.Code == "SYN2002" && d.Severity == lsp.Error {
			return
		}
	}
	t.Fatalf("expected SYN2002 error, got %+v", published.Diagnostics)
}

func TestServerUnknownMethod(t *testing.T) {
	h := startServer(t)
	err := h.client.Call(h.ctx, "textDocument/hover", struct{}{}, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Fatalf("expected method not found, got %v", err)
	}
}

func TestServerExitWithoutShutdown(t *testing.T) {
	h := startServer(t)
	h.notify("exit", nil)
	if err := h.wait(); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("expected ErrExitWithoutShutdown, got %v", err)
	}
}
