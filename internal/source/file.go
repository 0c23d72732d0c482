package source

import (
	"path/filepath"
	"slices"
	"strings"
)

type (
	// FileID indexes a File inside its FileSet.
	FileID uint32
	// FileFlags records how the content was obtained.
	FileFlags uint8
)

const (
	// FileVirtual marks content that never came from disk (tests, fuzzing, --stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded .magen source.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags

	// lines[i] is the offset where line i+1 begins; lines[0] is always 0.
	lines []uint32
}

// LineCol is a 1-based line and 1-based byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}

// LineCount returns the number of lines, counting a trailing empty line.
func (f *File) LineCount() uint32 {
	return uint32(len(f.lines)) // #nosec G115 -- bounded by content size
}

// Position maps a byte offset to a line and column. A '\n' belongs to the
// line it terminates.
func (f *File) Position(off uint32) LineCol {
	i, found := slices.BinarySearch(f.lines, off)
	if !found {
		i--
	}
	return LineCol{Line: uint32(i + 1), Col: off - f.lines[i] + 1} // #nosec G115
}

// LineStart returns the offset of the first byte of line n, or the content
// length when the file has fewer lines.
func (f *File) LineStart(n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	if n > f.LineCount() {
		return f.size()
	}
	return f.lines[n-1]
}

// LineEnd returns the offset of the newline ending line n, or the content
// length for the last line.
func (f *File) LineEnd(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	if n >= f.LineCount() {
		return f.size()
	}
	return f.lines[n] - 1
}

// Line returns line n without its newline; "" when n is out of range.
func (f *File) Line(n uint32) string {
	if n == 0 || n > f.LineCount() {
		return ""
	}
	return string(f.Content[f.LineStart(n):f.LineEnd(n)])
}

func (f *File) size() uint32 {
	return uint32(len(f.Content)) // #nosec G115 -- checked by FileSet.Add
}

// FormatPath renders the path for diagnostics. Modes: "absolute",
// "relative" (to baseDir), "basename"; anything else keeps the path as given.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if f.Flags&FileVirtual != 0 || baseDir == "" {
			break
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			break
		}
		// вне baseDir путь не трогаем
		if rel, err := filepath.Rel(baseDir, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	}
	return f.Path
}

func lineStarts(content []byte) []uint32 {
	starts := make([]uint32, 1, 16)
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, uint32(i+1)) // #nosec G115 -- checked by FileSet.Add
		}
	}
	return starts
}
