// Package lsp serves zhfmt diagnostics, quick fixes and formatting to editors
// over the Language Server Protocol.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"zhfmt/internal/config"
	"zhfmt/internal/driver"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Debounce time.Duration
	// Config overrides .zhfmt.toml discovery when set.
	Config         *config.Config
	Mode           driver.Mode
	MaxDiagnostics int // per document, 0 = unlimited
	// Log receives server warnings; os.Stderr when nil.
	Log io.Writer
}

// Server handles JSON-RPC for the zhfmt language server.
type Server struct {
	mu        sync.Mutex
	docs      map[lsp.DocumentURI]*document
	timers    map[lsp.DocumentURI]*time.Timer
	published map[lsp.DocumentURI]struct{}
	configs   map[string]*config.Config // по каталогу документа

	fixedConfig    *config.Config
	mode           driver.Mode
	debounce       time.Duration
	maxDiagnostics int
	log            io.Writer

	workspaceRoot     string
	shutdownRequested bool
	exitErr           error
	exited            chan struct{}
	exitOnce          sync.Once
}

type document struct {
	uri     lsp.DocumentURI
	path    string
	version int
	text    string
	seq     uint64
}

// NewServer constructs a new LSP server.
func NewServer(opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	logw := opts.Log
	if logw == nil {
		logw = os.Stderr
	}
	return &Server{
		docs:           make(map[lsp.DocumentURI]*document),
		timers:         make(map[lsp.DocumentURI]*time.Timer),
		published:      make(map[lsp.DocumentURI]struct{}),
		configs:        make(map[string]*config.Config),
		fixedConfig:    opts.Config,
		mode:           opts.Mode,
		debounce:       debounce,
		maxDiagnostics: opts.MaxDiagnostics,
		log:            logw,
		exited:         make(chan struct{}),
	}
}

// Run serves stream until the client disconnects or sends "exit".
func (s *Server) Run(ctx context.Context, stream io.ReadWriteCloser) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}),
		s.handler())
	select {
	case <-conn.DisconnectNotify():
	case <-s.exited:
		conn.Close()
	case <-ctx.Done():
		conn.Close()
	}
	s.stopTimers()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitErr
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	return nil, nil
}

func (s *Server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":  s.initialize,
		"initialized": noop,
		"shutdown":    s.shutdown,
		"exit":        s.exit,

		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didSave":    s.didSave,
		"textDocument/didClose":   s.didClose,
		"textDocument/codeAction": s.codeAction,
		"textDocument/formatting": s.formatting,

		"workspace/didChangeConfiguration": noop,
		"workspace/didChangeWatchedFiles":  noop,
	})
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			if req.Notif {
				return nil, nil
			}
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

func (s *Server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var params lsp.InitializeParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, errInvalidParams
		}
	}
	root := uriToPath(params.RootURI)
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	s.mu.Lock()
	s.workspaceRoot = root
	s.mu.Unlock()

	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKIncremental,
					Save:      &lsp.SaveOptions{},
				},
			},
			CodeActionProvider:         true,
			DocumentFormattingProvider: true,
		},
	}, nil
}

func (s *Server) shutdown(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.stopTimers()
	return nil, nil
}

func (s *Server) exit(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	s.mu.Lock()
	if s.shutdownRequested {
		s.exitErr = ErrExit
	} else {
		s.exitErr = ErrExitWithoutShutdown
	}
	s.mu.Unlock()
	s.exitOnce.Do(func() { close(s.exited) })
	return nil, nil
}

func (s *Server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(raw, &params) != nil {
		return nil, errInvalidParams
	}
	uri := params.TextDocument.URI
	path := s.documentPath(uri)
	if filepath.Base(path) == config.FileName {
		return nil, nil
	}
	s.mu.Lock()
	s.docs[uri] = &document{
		uri:     uri,
		path:    path,
		version: params.TextDocument.Version,
		text:    params.TextDocument.Text,
	}
	s.mu.Unlock()
	s.scheduleDiagnostics(ctx, conn, uri)
	return nil, nil
}

func (s *Server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(raw, &params) != nil {
		return nil, errInvalidParams
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok {
		doc.text = applyChanges(doc.text, params.ContentChanges)
		doc.version = params.TextDocument.Version
	}
	s.mu.Unlock()
	if ok {
		s.scheduleDiagnostics(ctx, conn, uri)
	}
	return nil, nil
}

func (s *Server) didSave(ctx context.Context, conn jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var params lsp.DidSaveTextDocumentParams
	if json.Unmarshal(raw, &params) != nil {
		return nil, errInvalidParams
	}
	uri := params.TextDocument.URI
	if filepath.Base(uriToPath(uri)) == config.FileName {
		s.mu.Lock()
		clear(s.configs)
		open := make([]lsp.DocumentURI, 0, len(s.docs))
		for u := range s.docs {
			open = append(open, u)
		}
		s.mu.Unlock()
		for _, u := range open {
			s.scheduleDiagnostics(ctx, conn, u)
		}
		return nil, nil
	}
	s.mu.Lock()
	_, ok := s.docs[uri]
	s.mu.Unlock()
	if ok {
		s.scheduleDiagnostics(ctx, conn, uri)
	}
	return nil, nil
}

func (s *Server) didClose(ctx context.Context, conn jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(raw, &params) != nil {
		return nil, errInvalidParams
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	if t := s.timers[uri]; t != nil {
		t.Stop()
		delete(s.timers, uri)
	}
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		if err := publish(ctx, conn, uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return nil, nil
}

func (s *Server) codeAction(ctx context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var params lsp.CodeActionParams
	if json.Unmarshal(raw, &params) != nil {
		return nil, errInvalidParams
	}
	doc, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return []codeAction{}, nil
	}
	return s.analyze(ctx, doc).actions(params.Range), nil
}

func (s *Server) formatting(ctx context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
	var params lsp.DocumentFormattingParams
	if json.Unmarshal(raw, &params) != nil {
		return nil, errInvalidParams
	}
	doc, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return []lsp.TextEdit{}, nil
	}
	return s.analyze(ctx, doc).edits(), nil
}

// documentPath maps uri to a file path. Buffers without one (untitled:) are
// linted as markdown under the workspace root.
func (s *Server) documentPath(uri lsp.DocumentURI) string {
	if path := uriToPath(uri); path != "" {
		return path
	}
	s.mu.Lock()
	root := s.workspaceRoot
	s.mu.Unlock()
	if root == "" {
		root, _ = os.Getwd()
	}
	return filepath.Join(root, "untitled.md")
}

// snapshot copies the open document so analysis runs without the lock.
func (s *Server) snapshot(uri lsp.DocumentURI) (document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return document{}, false
	}
	return *doc, true
}

func (s *Server) configFor(path string) *config.Config {
	if s.fixedConfig != nil {
		return s.fixedConfig
	}
	dir := filepath.Dir(path)
	s.mu.Lock()
	cfg, ok := s.configs[dir]
	s.mu.Unlock()
	if ok {
		return cfg
	}
	cfg, _, err := config.Resolve("", dir)
	if err != nil {
		s.logf("config for %s: %v", dir, err)
		cfg = config.Default()
	}
	s.mu.Lock()
	s.configs[dir] = cfg
	s.mu.Unlock()
	return cfg
}

func (s *Server) stopTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uri, t := range s.timers {
		t.Stop()
		delete(s.timers, uri)
	}
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...)
}

// codeAction is the subset of the LSP CodeAction literal the server returns.
type codeAction struct {
	Title       string             `json:"title"`
	Kind        lsp.CodeActionKind `json:"kind,omitempty"`
	Diagnostics []lsp.Diagnostic   `json:"diagnostics,omitempty"`
	IsPreferred bool               `json:"isPreferred,omitempty"`
	Edit        *lsp.WorkspaceEdit `json:"edit,omitempty"`
}

const kindSourceFixAll lsp.CodeActionKind = "source.fixAll.zhfmt"
