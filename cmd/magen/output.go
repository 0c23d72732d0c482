package main

import (
	"fmt"
	"io"

	"magen/internal/diag"
	"magen/internal/diagfmt"
	"magen/internal/source"
)

// reportOptions select how a bag is rendered.
type reportOptions struct {
	format   string // pretty|json|short
	pathMode diagfmt.PathMode
	notes    bool
	fixes    bool
	preview  bool
}

func validReportFormat(format string) bool {
	switch format {
	case "pretty", "json", "short":
		return true
	}
	return false
}

func (o *rootOptions) report(w io.Writer, bag *diag.Bag, fs *source.FileSet, ro reportOptions) error {
	if bag == nil || fs == nil {
		return nil
	}
	bag.Sort()
	switch ro.format {
	case "pretty":
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       o.useColor(w),
			Context:     2,
			PathMode:    ro.pathMode,
			ShowNotes:   ro.notes,
			ShowFixes:   ro.fixes,
			ShowPreview: ro.preview,
		})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         ro.pathMode,
			Max:              o.maxDiagnostics,
			IncludeNotes:     ro.notes,
			IncludeFixes:     ro.fixes,
			IncludePreviews:  ro.preview,
		})
	case "short":
		if out := diag.FormatShortDiagnostics(bag.Items(), fs, ro.notes); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	}
	return usageError("unknown format: %s", ro.format)
}
