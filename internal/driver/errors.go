package driver

import (
	"fmt"

	"magen/internal/diag"
	"magen/internal/source"
)

// CompileError is returned by Compile when the source is rejected or an
// I/O step fails. Diagnostics keep their spans; FileSet resolves them.
type CompileError struct {
	Kind        diag.ErrorKind
	Source      string
	Diagnostics []diag.Diagnostic
	FileSet     *source.FileSet
	Err         error // I/O cause, if any
}

func (e *CompileError) Error() string {
	first := "compilation failed"
	errs := 0
	for _, d := range e.Diagnostics {
		if d.Severity < diag.SevError {
			continue
		}
		if errs == 0 {
			first = d.Message
		}
		errs++
	}
	msg := fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, first)
	if errs > 1 {
		msg += fmt.Sprintf(" (and %d more)", errs-1)
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Err }

// newCompileError classifies a failing bag by its first error.
func newCompileError(src string, bag *diag.Bag, fs *source.FileSet, cause error) *CompileError {
	bag.Sort()
	kind := diag.KindIO
	if d, ok := bag.FirstError(); ok && d.Code.Kind() != diag.KindNone {
		kind = d.Code.Kind()
	}
	if cause != nil {
		kind = diag.KindIO
	}
	return &CompileError{
		Kind:        kind,
		Source:      src,
		Diagnostics: append([]diag.Diagnostic(nil), bag.Items()...),
		FileSet:     fs,
		Err:         cause,
	}
}
