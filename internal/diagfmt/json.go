package diagfmt

import (
	"encoding/json"
	"io"

	"magen/internal/diag"
	"magen/internal/source"
)

// Location is a span in the JSON report. Line and column fields are only
// filled with JSONOpts.IncludePositions.
type Location struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteEntry struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

type EditEntry struct {
	Location    Location `json:"location"`
	NewText     string   `json:"new_text"`
	OldText     string   `json:"old_text,omitempty"`
	BeforeLines []string `json:"before_lines,omitempty"`
	AfterLines  []string `json:"after_lines,omitempty"`
}

type FixEntry struct {
	Title string      `json:"title"`
	Edits []EditEntry `json:"edits,omitempty"`
}

type Entry struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code"`
	Kind     string      `json:"kind,omitempty"`
	Message  string      `json:"message"`
	Location Location    `json:"location"`
	Notes    []NoteEntry `json:"notes,omitempty"`
	Fixes    []FixEntry  `json:"fixes,omitempty"`
}

// Report is the document written by `magen diag --format json`.
type Report struct {
	Diagnostics []Entry `json:"diagnostics"`
	Count       int     `json:"count"`
	Omitted     int     `json:"omitted,omitempty"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) at(span source.Span) Location {
	loc := Location{StartByte: span.Start, EndByte: span.End}
	if !l.fs.Has(span.File) {
		return loc
	}
	loc.File = l.mode.format(l.fs, span.File)
	if l.positions {
		start, end := l.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (l locator) text(span source.Span) string {
	if !l.fs.Has(span.File) {
		return ""
	}
	content := l.fs.Get(span.File).Content
	if span.End < span.Start || int(span.End) > len(content) {
		return ""
	}
	return string(content[span.Start:span.End])
}

// BuildReport converts the bag without serializing it.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}
	rep := Report{
		Diagnostics: make([]Entry, 0, len(items)),
		Count:       len(items),
		Omitted:     bag.Len() - len(items),
	}
	for _, d := range items {
		e := Entry{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		if k := d.Code.Kind(); k != diag.KindNone {
			e.Kind = k.String()
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				e.Notes = append(e.Notes, NoteEntry{Message: n.Msg, Location: loc.at(n.Span)})
			}
		}
		if opts.IncludeFixes {
			for _, fix := range d.Fixes {
				e.Fixes = append(e.Fixes, buildFix(loc, fix, opts.IncludePreviews))
			}
		}
		rep.Diagnostics = append(rep.Diagnostics, e)
	}
	return rep
}

func buildFix(loc locator, fix diag.Fix, previews bool) FixEntry {
	out := FixEntry{Title: fix.Title}
	for _, edit := range fix.Edits {
		e := EditEntry{Location: loc.at(edit.Span), NewText: edit.NewText, OldText: loc.text(edit.Span)}
		if previews {
			if p, err := buildFixEditPreview(loc.fs, edit); err == nil {
				e.BeforeLines, e.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, e)
	}
	return out
}

// JSON пишет отчёт с отступами.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
