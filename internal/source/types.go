package source

type (
	// FileID identifies a source buffer inside one FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source buffer.
	FileFlags uint8
)

// NoFileID marks spans that do not point into any buffer (source-wide findings).
const NoFileID FileID = ^FileID(0)

const (
	// FileVirtual marks buffers registered from memory (playground input, stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is an immutable source buffer with its line index.
type File struct {
	ID      FileID
	Name    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}
