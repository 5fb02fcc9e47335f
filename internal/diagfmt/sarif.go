package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func makeSarifRegion(span source.Span, fs *source.FileSet) sarifRegion {
	start, end := fs.Resolve(span)
	return sarifRegion{
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
		ByteOffset:  span.Start,
		ByteLength:  span.Len(),
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0): один run, правила
// по кодам диагностик, исправления как artifactChanges.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	codes := make(map[diag.Code]struct{})
	results := make([]sarifResult, 0, bag.Len())
	hasErrors := false

	for _, d := range bag.Items() {
		codes[d.Code] = struct{}{}
		hasErrors = hasErrors || d.Severity == diag.SevError
		uri := formatPath(fs.Get(d.Primary.File), fs, PathModeRelative)
		res := sarifResult{
			RuleID:  d.Code.ID(),
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifact{URI: uri},
					Region:           makeSarifRegion(d.Primary, fs),
				},
			}},
		}
		for _, fix := range d.Fixes {
			change := sarifArtifactChange{ArtifactLocation: sarifArtifact{URI: uri}}
			for _, edit := range fix.Edits {
				change.Replacements = append(change.Replacements, sarifReplacement{
					DeletedRegion:   makeSarifRegion(edit.Span, fs),
					InsertedContent: sarifMessage{Text: edit.NewText},
				})
			}
			res.Fixes = append(res.Fixes, sarifFix{
				Description:     sarifMessage{Text: fix.Title},
				ArtifactChanges: []sarifArtifactChange{change},
			})
		}
		results = append(results, res)
	}

	ordered := make([]diag.Code, 0, len(codes))
	for code := range codes {
		ordered = append(ordered, code)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	rules := make([]sarifRule, 0, len(ordered))
	for _, code := range ordered {
		rules = append(rules, sarifRule{ID: code.ID(), ShortDescription: sarifMessage{Text: code.Title()}})
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !hasErrors}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}
