package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"magen/internal/driver"
	"magen/internal/project"
)

type genOptions struct {
	output  string
	pkg     string
	runtime string
	jobs    int
	format  string
	stdout  bool
	ui      string
}

func newGenCmd(root *rootOptions) *cobra.Command {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "gen [flags] <file.magen|directory>...",
		Short: "Generate Go proxies and stubs from .magen files",
		Long: `Gen compiles each .magen source into <source>.go, or into the file given
with -o when exactly one source is passed. Directories are searched for
*.magen files. The destination is only written when compilation succeeds.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, root, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "destination file (single source only)")
	cmd.Flags().StringVar(&opts.pkg, "package", "", "Go package of the generated file (overrides magen.toml)")
	cmd.Flags().StringVar(&opts.runtime, "runtime", "", "import path of the mage runtime (overrides magen.toml)")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "max parallel compilations (0=auto)")
	cmd.Flags().StringVar(&opts.format, "format", "pretty", "diagnostics format (pretty|json|short)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the generated code instead of writing it (single source only)")
	cmd.Flags().StringVar(&opts.ui, "ui", "auto", "progress view for batches (auto|on|off)")
	return cmd
}

func runGen(cmd *cobra.Command, root *rootOptions, opts *genOptions, args []string) error {
	if !validReportFormat(opts.format) {
		return usageError("unknown format: %s", opts.format)
	}
	uiMode, err := readUIMode(opts.ui)
	if err != nil {
		return err
	}
	sources, err := expandSources(args)
	if err != nil {
		return err
	}
	if len(sources) != 1 && (opts.output != "" || opts.stdout) {
		return usageError("-o and --stdout need exactly one source, got %d", len(sources))
	}

	dopts := driver.Options{
		Package:        opts.pkg,
		Runtime:        opts.runtime,
		MaxDiagnostics: root.maxDiagnostics,
		Timings:        root.timings,
		Logger:         root.logger,
	}
	if !root.noCache {
		dopts.Cache = root.openCache(sources[0])
	}

	ro := reportOptions{format: opts.format, notes: true, fixes: true}
	stderr := cmd.ErrOrStderr()

	if opts.stdout {
		res, err := driver.Check(cmd.Context(), sources[0], dopts)
		if rerr := root.report(stderr, res.Bag, res.FileSet, ro); rerr != nil {
			return rerr
		}
		if err != nil {
			return rejected(err)
		}
		_, err = cmd.OutOrStdout().Write(res.Output)
		return err
	}

	jobs := make([]driver.Job, len(sources))
	for i, src := range sources {
		jobs[i] = driver.Job{Source: src, Dest: opts.output}
	}
	var results []driver.BatchResult
	if root.shouldUseTUI(uiMode, cmd.OutOrStdout(), len(sources)) {
		results, err = compileWithUI(cmd.Context(), cmd.OutOrStdout(), "magen gen", jobs, opts.jobs, dopts)
	} else {
		results, err = driver.CompileAll(cmd.Context(), jobs, opts.jobs, dopts)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Result != nil {
			if err := root.report(stderr, r.Result.Bag, r.Result.FileSet, ro); err != nil {
				return err
			}
		}
		if r.Err != nil {
			if _, ok := r.Err.(*driver.CompileError); !ok {
				fmt.Fprintf(stderr, "magen: %s: %v\n", r.Job.Source, r.Err)
			}
			failed++
			continue
		}
		if !root.quiet {
			suffix := ""
			if r.Result.CacheHit {
				suffix = " (cached)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s%s\n", r.Job.Source, r.Result.Dest, suffix)
		}
	}
	if failed > 0 {
		return errRejected
	}
	return nil
}

// rejected turns a compile failure whose diagnostics were already printed
// into a silent exit; anything else keeps its message.
func rejected(err error) error {
	if _, ok := err.(*driver.CompileError); ok {
		return errRejected
	}
	return &exitError{code: exitUsage, err: err}
}

// openCache opens the artifact cache configured next to the first source.
// A broken cache is logged and skipped.
func (o *rootOptions) openCache(firstSource string) *driver.DiskCache {
	cfg, err := project.Discover(filepath.Dir(firstSource))
	if err != nil || !cfg.Cache.Enabled {
		return nil
	}
	cache, err := driver.OpenDiskCache(cfg.Cache.Dir)
	if err != nil {
		o.logger.Warn("artifact cache disabled", "err", err)
		return nil
	}
	return cache
}

func expandSources(args []string) ([]string, error) {
	var sources []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, &exitError{code: exitUsage, msg: "cannot read source", err: err}
		}
		if !st.IsDir() {
			sources = append(sources, arg)
			continue
		}
		found, err := driver.ListSources(arg)
		if err != nil {
			return nil, &exitError{code: exitUsage, msg: "cannot list " + arg, err: err}
		}
		if len(found) == 0 {
			return nil, usageError("no .magen files in %s", arg)
		}
		sources = append(sources, found...)
	}
	return sources, nil
}
