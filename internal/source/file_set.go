package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet manages a collection of source files and resolves spans into positions.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir возвращает базовую директорию (по умолчанию рабочую).
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Add stores content, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM and calls Add.
// Line endings are left untouched.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	return fileSet.Add(path, content, flags), nil
}

// LoadNFC is Load followed by Unicode NFC normalization. Spans refer to the
// normalized text, so a fixed file is written back normalized as a whole.
func (fileSet *FileSet) LoadNFC(path string) (FileID, error) {
	id, err := fileSet.Load(path)
	if err != nil {
		return 0, err
	}
	f := &fileSet.files[id]
	if norm.NFC.IsNormal(f.Content) {
		return id, nil
	}
	content := norm.NFC.Bytes(f.Content)
	f.Content = content
	f.LineIdx = buildLineIndex(content)
	f.Hash = sha256.Sum256(content)
	f.Flags |= FileNormalizedNFC
	return id, nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Len returns the content length as uint32.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Text returns the bytes covered by span.
func (f *File) Text(span Span) string {
	end := min(span.End, f.Len())
	if span.Start >= end {
		return ""
	}
	return string(f.Content[span.Start:end])
}

// GetLine возвращает строку с заданным номером (1-based) без перевода строки.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent := f.Len()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent || start > end {
		return ""
	}
	line := f.Content[start:end]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		return relativePath(f.Path, baseDir)
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}
