package source

// FileID indexes FileSet.files; IDs are never reused within a set.
type FileID uint32

// FileFlags records what happened to a file on the way in.
type FileFlags uint8

const (
	FileVirtual       FileFlags = 1 << iota // stdin, тесты, LSP-буферы
	FileHadBOM                              // BOM снят при загрузке, RestoreBOM вернёт его
	FileNormalizedNFC                       // Content приведён к NFC
)

// Has reports whether all bits of flag are set.
func (f FileFlags) Has(flag FileFlags) bool { return f&flag == flag }

// File is one loaded document. Content keeps line endings byte-exact so a
// patched buffer can be written back as is; LineIdx holds the offset of
// every '\n'.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
