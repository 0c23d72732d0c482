package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"magen/internal/diag"
	"magen/internal/source"
)

type palette struct {
	sev      map[diag.Severity]*color.Color
	location *color.Color
	gutter   *color.Color
	caret    *color.Color
	note     *color.Color
	help     *color.Color
	removed  *color.Color
	added    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		location: mk(color.Bold),
		gutter:   mk(color.FgBlue),
		caret:    mk(color.FgRed, color.Bold),
		note:     mk(color.FgCyan),
		help:     mk(color.FgGreen),
		removed:  mk(color.FgRed),
		added:    mk(color.FgGreen),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sevColor := p.sev[d.Severity]
	if sevColor == nil {
		sevColor = p.sev[diag.SevInfo]
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		p.location.Sprint(location(d.Primary, fs, opts.PathMode)+":"),
		sevColor.Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message)
	snippet(w, d.Primary, fs, int(opts.Context), p, "")

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(n.Span, fs, opts.PathMode), n.Msg)
			snippet(w, n.Span, fs, 0, p, "  ")
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.help.Sprint("help:"), fix.Title)
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, l := range preview.before {
					fmt.Fprintf(w, "    %s\n", p.removed.Sprint("- "+l))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "    %s\n", p.added.Sprint("+ "+l))
				}
			}
		}
	}
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	if !fs.Has(span.File) {
		return "magen"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", mode.format(fs, span.File), start.Line, start.Col)
}

// snippet prints the lines around span with a caret run under it.
func snippet(w io.Writer, span source.Span, fs *source.FileSet, context int, p palette, indent string) {
	if !fs.Has(span.File) {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	first := uint32(1)
	if c := uint32(max(context, 0)); start.Line > c {
		first = start.Line - c
	}
	width := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s%s %s\n", indent, p.gutter.Sprintf("%*d |", width, ln), expandTabs(f.Line(ln)))
	}

	line := f.Line(start.Line)
	col := min(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:max(col, 0)]))
	n := 1
	if endCol > col {
		n = max(runewidth.StringWidth(expandTabs(line[col:endCol])), 1)
	}
	fmt.Fprintf(w, "%s%s %s%s\n", indent,
		p.gutter.Sprintf("%*s |", width, ""),
		strings.Repeat(" ", pad),
		p.caret.Sprint("^"+strings.Repeat("~", n-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
