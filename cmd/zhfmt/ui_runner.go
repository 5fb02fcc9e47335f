package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"zhfmt/internal/driver"
	"zhfmt/internal/pipeline"
	"zhfmt/internal/source"
	"zhfmt/internal/ui"
)

type lintOutcome struct {
	results []driver.FileResult
	err     error
}

// runLint lints files, rendering a progress view when withUI is set.
func runLint(ctx context.Context, title string, fs *source.FileSet, files []string, opts driver.Options, withUI bool) ([]driver.FileResult, error) {
	if !withUI {
		return driver.LintFiles(ctx, fs, files, opts)
	}
	return runLintWithUI(ctx, title, fs, files, opts)
}

func runLintWithUI(ctx context.Context, title string, fs *source.FileSet, files []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.LintFiles(ctx, fs, files, optsCopy)
		outcomeCh <- lintOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
