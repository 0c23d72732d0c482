package main

import (
	"context"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"magen/internal/driver"
	"magen/internal/ui"
)

type batchOutcome struct {
	results []driver.BatchResult
	err     error
}

// compileWithUI runs CompileAll while a Bubble Tea program renders its
// progress events on out.
func compileWithUI(ctx context.Context, out io.Writer, title string, jobs []driver.Job, parallel int, opts driver.Options) ([]driver.BatchResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	files := make([]string, len(jobs))
	for i, job := range jobs {
		files[i] = job.Source
	}

	go func() {
		opts.Progress = driver.ChannelSink(events)
		results, err := driver.CompileAll(ctx, jobs, parallel, opts)
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// доедаем события, чтобы компиляция не заблокировалась
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func readUIMode(value string) (string, error) {
	switch mode := strings.TrimSpace(strings.ToLower(value)); mode {
	case "", "auto":
		return "auto", nil
	case "on", "off":
		return mode, nil
	}
	return "", usageError("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI enables the progress view for batches on a terminal.
func (o *rootOptions) shouldUseTUI(mode string, out io.Writer, sources int) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if o.quiet || sources < 2 {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}
