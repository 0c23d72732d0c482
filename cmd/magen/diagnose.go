package main

import (
	"github.com/spf13/cobra"

	"magen/internal/diagfmt"
	"magen/internal/driver"
)

type diagOptions struct {
	format   string
	pathMode string
	notes    bool
	suggest  bool
	preview  bool
	pkg      string
}

func newDiagCmd(root *rootOptions) *cobra.Command {
	opts := &diagOptions{}
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.magen|directory>...",
		Short: "Check .magen sources and print diagnostics",
		Long:  `Diag runs the whole pipeline without writing anything and prints every diagnostic to stdout`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, root, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().StringVar(&opts.pathMode, "path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	cmd.Flags().BoolVar(&opts.notes, "with-notes", false, "include diagnostic notes in output")
	cmd.Flags().BoolVar(&opts.suggest, "suggest", false, "include fix suggestions in output")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show the lines a suggestion would change")
	cmd.Flags().StringVar(&opts.pkg, "package", "", "Go package to check the source against")
	return cmd
}

// runDiagnose checks every source and exits non-zero when any of them has
// errors. Warnings alone keep exit status 0.
func runDiagnose(cmd *cobra.Command, root *rootOptions, opts *diagOptions, args []string) error {
	if !validReportFormat(opts.format) {
		return usageError("unknown format: %s", opts.format)
	}
	mode, ok := diagfmt.ParsePathMode(opts.pathMode)
	if !ok {
		return usageError("unknown path mode: %s", opts.pathMode)
	}
	sources, err := expandSources(args)
	if err != nil {
		return err
	}

	ro := reportOptions{
		format:   opts.format,
		pathMode: mode,
		notes:    opts.notes,
		fixes:    opts.suggest,
		preview:  opts.preview,
	}
	dopts := driver.Options{
		Package:        opts.pkg,
		MaxDiagnostics: root.maxDiagnostics,
		Timings:        root.timings,
		Logger:         root.logger,
	}

	failed := false
	for _, src := range sources {
		res, err := driver.Check(cmd.Context(), src, dopts)
		if rerr := root.report(cmd.OutOrStdout(), res.Bag, res.FileSet, ro); rerr != nil {
			return rerr
		}
		if err != nil {
			if _, ok := err.(*driver.CompileError); !ok {
				return rejected(err)
			}
			failed = true
		}
	}
	if failed {
		return errRejected
	}
	return nil
}
