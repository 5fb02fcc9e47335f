package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui flag of check and fix.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

var uiModeNames = map[string]uiMode{
	"":       uiAuto,
	"auto":   uiAuto,
	"on":     uiOn,
	"always": uiOn,
	"off":    uiOff,
	"never":  uiOff,
}

func readUIMode(value string) (uiMode, error) {
	if m, ok := uiModeNames[strings.ToLower(strings.TrimSpace(value))]; ok {
		return m, nil
	}
	return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI decides whether the progress view is drawn on out. Auto needs
// a terminal that can redraw lines.
func shouldUseTUI(mode uiMode, out *os.File) bool {
	switch mode {
	case uiOn:
		return true
	case uiOff:
		return false
	}
	if os.Getenv("TERM") == "dumb" || os.Getenv("CI") != "" {
		return false
	}
	return isTerminal(out)
}
