// Package config describes which rewrites run and how they are tuned.
//
// The file format is TOML (.zhfmt.toml). A file is decoded on top of the
// base selected by its `preset` key, so absent keys keep the preset value.
package config

import (
	"fmt"
)

// FileName is the configuration file looked up by Find.
const FileName = ".zhfmt.toml"

// TriState is a spacing policy that can also leave the text alone.
type TriState uint8

const (
	// Keep leaves existing whitespace untouched.
	Keep TriState = iota
	// Space wants exactly one space.
	Space
	// NoSpace wants no space.
	NoSpace
)

// TriFromBool maps true to Space and false to NoSpace.
func TriFromBool(b bool) TriState {
	if b {
		return Space
	}
	return NoSpace
}

// Want reports the wanted spacing; ok is false for Keep.
func (t TriState) Want() (space, ok bool) {
	switch t {
	case Space:
		return true, true
	case NoSpace:
		return false, true
	default:
		return false, false
	}
}

func (t TriState) String() string {
	switch t {
	case Keep:
		return "keep"
	case Space:
		return "true"
	case NoSpace:
		return "false"
	default:
		return fmt.Sprintf("tristate(%d)", uint8(t))
	}
}

// UnmarshalTOML accepts true, false or the string "keep".
func (t *TriState) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case bool:
		*t = TriFromBool(v)
		return nil
	case string:
		if v == "keep" {
			*t = Keep
			return nil
		}
	}
	return fmt.Errorf("expected true, false or \"keep\", got %v", v)
}

func (t TriState) MarshalTOML() ([]byte, error) {
	switch t {
	case Space:
		return []byte("true"), nil
	case NoSpace:
		return []byte("false"), nil
	default:
		return []byte(`"keep"`), nil
	}
}

// Script selects the quotation style PunctuationUnification converges to.
type Script string

const (
	ScriptNone        Script = "none"
	ScriptSimplified  Script = "simplified"
	ScriptTraditional Script = "traditional"
)

// Config holds every tunable of the rewrite rules.
type Config struct {
	Preset string `toml:"preset,omitempty"`

	HalfwidthPunctuation string   `toml:"halfwidth_punctuation"`
	FullwidthPunctuation string   `toml:"fullwidth_punctuation"`
	UnifiedPunctuation   Script   `toml:"unified_punctuation"`
	SkipAbbrs            []string `toml:"skip_abbrs"`

	SpaceBetweenHalfwidthContent   bool     `toml:"space_between_halfwidth_content"`
	NoSpaceBetweenFullwidthContent bool     `toml:"no_space_between_fullwidth_content"`
	SpaceBetweenMixedwidthContent  TriState `toml:"space_between_mixedwidth_content"`
	SkipZhUnits                    string   `toml:"skip_zh_units"`

	NoSpaceBeforePauseOrStop         bool     `toml:"no_space_before_pause_or_stop"`
	SpaceAfterHalfwidthPauseOrStop   TriState `toml:"space_after_halfwidth_pause_or_stop"`
	NoSpaceAfterFullwidthPauseOrStop bool     `toml:"no_space_after_fullwidth_pause_or_stop"`

	SpaceOutsideHalfwidthQuotation   TriState `toml:"space_outside_halfwidth_quotation"`
	NoSpaceOutsideFullwidthQuotation bool     `toml:"no_space_outside_fullwidth_quotation"`
	NoSpaceInsideQuotation           bool     `toml:"no_space_inside_quotation"`

	SpaceOutsideHalfwidthBracket   TriState `toml:"space_outside_halfwidth_bracket"`
	NoSpaceOutsideFullwidthBracket bool     `toml:"no_space_outside_fullwidth_bracket"`
	NoSpaceInsideBracket           bool     `toml:"no_space_inside_bracket"`

	SpaceOutsideCode TriState `toml:"space_outside_code"`

	NoSpaceInsideHyperMark bool `toml:"no_space_inside_hyper_mark"`

	TrimSpace bool `toml:"trim_space"`

	// Ignores are regular expressions; matched text is never rewritten.
	// A named group `ignore` narrows the protected range.
	Ignores []string `toml:"ignores"`
}

// Default is the recommended preset.
func Default() *Config {
	return &Config{
		HalfwidthPunctuation: "()",
		FullwidthPunctuation: "，。：；？！“”‘’",
		UnifiedPunctuation:   ScriptSimplified,
		SkipAbbrs:            []string{"Mr.", "Mrs.", "Dr.", "Jr.", "Sr.", "vs.", "etc.", "i.e.", "e.g.", "a.k.a"},

		SpaceBetweenHalfwidthContent:   true,
		NoSpaceBetweenFullwidthContent: true,
		SpaceBetweenMixedwidthContent:  Space,
		SkipZhUnits:                    "年月日天号时分秒",

		NoSpaceBeforePauseOrStop:         true,
		SpaceAfterHalfwidthPauseOrStop:   Space,
		NoSpaceAfterFullwidthPauseOrStop: true,

		SpaceOutsideHalfwidthQuotation:   Space,
		NoSpaceOutsideFullwidthQuotation: true,
		NoSpaceInsideQuotation:           true,

		SpaceOutsideHalfwidthBracket:   Space,
		NoSpaceOutsideFullwidthBracket: true,
		NoSpaceInsideBracket:           true,

		SpaceOutsideCode:       Space,
		NoSpaceInsideHyperMark: true,
		TrimSpace:              true,
		Ignores:                []string{},
	}
}

// Empty turns every rule off. Tests enable single options on top of it.
func Empty() *Config {
	return &Config{
		UnifiedPunctuation: ScriptNone,
		SkipAbbrs:          []string{},
		Ignores:            []string{},
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.UnifiedPunctuation {
	case ScriptNone, ScriptSimplified, ScriptTraditional, "":
	default:
		return fmt.Errorf("unified_punctuation: unknown value %q (want simplified, traditional or none)", c.UnifiedPunctuation)
	}
	return nil
}
