package main

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	exitOK          = 0
	exitDiagnostics = 1 // the source was rejected, diagnostics already printed
	exitUsage       = 2 // bad flags, unreadable paths
)

type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	switch {
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

// errRejected is returned after diagnostics were printed; main stays quiet.
var errRejected = &exitError{code: exitDiagnostics}

func usageError(format string, args ...any) error {
	return &exitError{code: exitUsage, msg: fmt.Sprintf(format, args...)}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitUsage
}
