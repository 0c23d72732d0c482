package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"magen/internal/source"
)

// line is one rendered entry: a diagnostic or one of its notes.
type line struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

func (l line) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set), paths relative to the file set base directory,
// sorted so that golden files do not depend on report order.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatLines(diags, fs, includeNotes, "relative")
}

// FormatShortDiagnostics is the CLI "short" format: same lines, paths as given.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatLines(diags, fs, includeNotes, "")
}

func formatLines(diags []Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	if fs == nil {
		return ""
	}
	var lines []line
	add := func(sev string, code Code, sp source.Span, msg string) {
		if !fs.Has(sp.File) {
			return
		}
		path := filepath.ToSlash(fs.Get(sp.File).FormatPath(pathMode, fs.BaseDir()))
		for strings.HasPrefix(path, "./") {
			path = path[2:]
		}
		pos, _ := fs.Resolve(sp)
		lines = append(lines, line{
			sev:  sev,
			code: code.ID(),
			path: path,
			pos:  pos,
			msg:  oneLine(msg),
		})
	}
	for _, d := range diags {
		add(d.Severity.label(), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b line) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(msg))
}
