package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"magen/internal/diagfmt"
	"magen/internal/driver"
)

func newTokenizeCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.magen",
		Short: "Tokenize a .magen source file",
		Long:  `Tokenize breaks down a .magen source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := driver.Tokenize(args[0], root.maxDiagnostics)
			if err != nil {
				return &exitError{code: exitUsage, msg: "tokenization failed", err: err}
			}
			if err := root.report(cmd.ErrOrStderr(), result.Bag, result.FileSet, reportOptions{format: "pretty"}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty":
				err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
			case "json":
				err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
			default:
				return usageError("unknown format: %s", format)
			}
			if err != nil {
				return err
			}
			if result.Bag.HasErrors() {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func newParseCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse [flags] file.magen",
		Short: "Parse a .magen source file and output its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := driver.Parse(args[0], root.maxDiagnostics)
			if err != nil {
				return &exitError{code: exitUsage, msg: "parsing failed", err: err}
			}
			if err := root.report(cmd.ErrOrStderr(), result.Bag, result.FileSet, reportOptions{format: "pretty", notes: true}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty":
				err = diagfmt.FormatASTPretty(out, result.Builder, result.FileID, result.FileSet)
			case "json":
				err = diagfmt.FormatASTJSON(out, result.Builder, result.FileID, result.FileSet)
			case "yaml":
				err = diagfmt.FormatASTYAML(out, result.Builder, result.FileID, result.FileSet)
			default:
				return usageError("unknown format: %s", format)
			}
			if err != nil {
				return err
			}
			if result.Bag.HasErrors() {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json|yaml)")
	return cmd
}

func newLayoutCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "layout [flags] file.magen",
		Short: "Show method ids, parameter offsets and transfer strategies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := driver.Layout(args[0], root.maxDiagnostics)
			if err != nil {
				return &exitError{code: exitUsage, msg: "layout failed", err: err}
			}
			if err := root.report(cmd.ErrOrStderr(), result.Bag, result.FileSet, reportOptions{format: "pretty", notes: true, fixes: true}); err != nil {
				return err
			}
			if !result.OK() || result.Interface == nil {
				return errRejected
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty":
				return diagfmt.FormatLayoutPretty(out, result.Interface)
			case "json":
				return diagfmt.FormatLayoutJSON(out, result.Interface)
			}
			return usageError("unknown format: %s", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func newCacheCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the artifact cache",
	}
	dir := ""
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "cache directory (default $XDG_CACHE_HOME/magen)")

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := driver.OpenDiskCache(dir)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove every cached artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := driver.OpenDiskCache(dir)
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return err
			}
			root.logger.Debug("cache cleared", "dir", cache.Dir())
			if !root.quiet {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
			}
			return err
		},
	})
	return cmd
}
