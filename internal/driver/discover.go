package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultGlob is what check and fix lint when no path is given.
const DefaultGlob = "**/*.md"

// dirGlob matches documents below a directory argument.
const dirGlob = "**/*.{md,markdown,mdx}"

// ErrNoFiles is returned by Discover when nothing matched.
var ErrNoFiles = errors.New("no files to lint")

// Discover expands command-line arguments into a sorted, de-duplicated list
// of files. An argument is a file, a directory (searched with dirGlob) or a
// doublestar pattern. Hidden directories, node_modules and paths matching an
// exclude pattern are skipped.
func Discover(args, exclude []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{DefaultGlob}
	}
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if skipPath(path) || Match(exclude, filepath.ToSlash(path)) {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		if isPattern(arg) {
			if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
				return nil, fmt.Errorf("invalid pattern %q", arg)
			}
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("glob %q: %w", arg, err)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			// явно указанный файл берём всегда, даже скрытый
			path := filepath.Clean(arg)
			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				files = append(files, path)
			}
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(arg), dirGlob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		for _, m := range matches {
			add(filepath.Join(arg, filepath.FromSlash(m)))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, strings.Join(args, " "))
	}
	slices.Sort(files)
	return files, nil
}

func isPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

func skipPath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "node_modules" || (len(part) > 1 && part[0] == '.' && part != "..") {
			return true
		}
	}
	return false
}

// Match reports whether the slash-separated path matches any doublestar pattern.
func Match(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
