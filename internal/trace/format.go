package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the output encoding of a StreamTracer.
type Format uint8

const (
	FormatAuto   Format = iota // by file extension, text otherwise
	FormatText                 // human-readable
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a --trace-format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent renders ev in format, including the trailing newline.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// formatText: "15:04:05.000 [scope    ]   → name (detail) {k=v, k=v}"
func formatText(ev *Event) []byte {
	indent := ""
	if ev.ParentID > 0 {
		indent = "  "
	}
	line := fmt.Sprintf("%s [%-9s] %s%s%s", ev.Time.Format("15:04:05.000"), ev.Scope, indent, kindMarks[ev.Kind], ev.Name)
	if ev.Detail != "" {
		line += " (" + ev.Detail + ")"
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			pairs = append(pairs, k+"="+ev.Extra[k])
		}
		line += " {" + strings.Join(pairs, ", ") + "}"
	}
	return []byte(line + "\n")
}
