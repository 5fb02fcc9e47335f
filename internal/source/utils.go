package source

import (
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// RestoreBOM prepends the UTF-8 BOM when the file was loaded with one.
func RestoreBOM(f *File, content []byte) []byte {
	if f == nil || !f.Flags.Has(FileHadBOM) {
		return content
	}
	out := make([]byte, 0, len(content)+len(utf8BOM))
	out = append(out, utf8BOM...)
	return append(out, content...)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(err)
			}
			out = append(out, off)
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	line, err := safecast.Conv[uint32](hi + 2)
	if err != nil {
		panic(err)
	}
	return LineCol{Line: line, Col: off - lineIdx[hi]}
}

func relativePath(path, baseDir string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
