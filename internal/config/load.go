package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKeys is returned when a file contains keys Config does not know.
var ErrUnknownKeys = errors.New("unknown configuration keys")

// Load reads a TOML file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path is provided by the user or found by Find
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text onto the base chosen by its preset.
func Parse(data string) (*Config, error) {
	var preset struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	var cfg *Config
	switch preset.Preset {
	case "", "default":
		cfg = Default()
	case "empty":
		cfg = Empty()
	default:
		return nil, fmt.Errorf("unknown preset %q", preset.Preset)
	}
	meta, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve returns the explicit file when given, the discovered file otherwise,
// and Default() when there is none.
func Resolve(explicit, startDir string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Hash identifies the effective configuration (cache keys).
func (c *Config) Hash() string {
	h := sha256.New()
	if err := c.Encode(h); err != nil {
		// hash.Hash never fails to write
		panic(err)
	}
	return hex.EncodeToString(h.Sum(nil))
}
