package diagfmt

import "magen/internal/source"

// PathMode selects how file paths are printed. The values double as the
// --path-mode flag values.
type PathMode string

const (
	PathModeAuto     PathMode = "auto" // as given on the command line
	PathModeAbsolute PathMode = "absolute"
	PathModeRelative PathMode = "relative"
	PathModeBasename PathMode = "basename"
)

// ParsePathMode validates a --path-mode value; "" means auto.
func ParsePathMode(s string) (PathMode, bool) {
	switch m := PathMode(s); m {
	case "":
		return PathModeAuto, true
	case PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename:
		return m, true
	}
	return PathModeAuto, false
}

func (m PathMode) format(fs *source.FileSet, id source.FileID) string {
	return fs.Get(id).FormatPath(string(m), fs.BaseDir())
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста перед строкой ошибки
	PathMode    PathMode
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезает вывод, Bag не трогает
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}
