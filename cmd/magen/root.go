package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"magen/internal/prof"
	"magen/internal/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	color          string
	quiet          bool
	timings        bool
	verbose        bool
	noCache        bool
	maxDiagnostics int
	profile        prof.Options

	logger   *slog.Logger
	profiler *prof.Session
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&rootOptions{})
}

func buildRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "magen",
		Short:         "mage IDL compiler",
		Long:          `magen compiles .magen interface declarations into Go proxies and receiver stubs`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.color {
			case "auto", "on", "off":
			default:
				return usageError("invalid --color %q: must be auto, on or off", opts.color)
			}
			if opts.maxDiagnostics < 0 {
				return usageError("--max-diagnostics must not be negative")
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts)
			if opts.profile.Enabled() {
				session, err := prof.Start(opts.profile)
				if err != nil {
					return &exitError{code: exitUsage, err: err}
				}
				opts.profiler = session
			}
			return nil
		},
	}

	// Глобальные флаги
	cmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&opts.timings, "timings", false, "show timing information")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline progress to stderr")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the artifact cache")
	cmd.PersistentFlags().IntVar(&opts.maxDiagnostics, "max-diagnostics", 100, "maximum number of diagnostics to collect (0 = unlimited)")
	cmd.PersistentFlags().StringVar(&opts.profile.CPU, "cpu-profile", "", "write a CPU profile to file")
	cmd.PersistentFlags().StringVar(&opts.profile.Mem, "mem-profile", "", "write a heap profile to file on exit")
	cmd.PersistentFlags().StringVar(&opts.profile.Trace, "runtime-trace", "", "write a runtime trace to file")

	cmd.AddCommand(newGenCmd(opts))
	cmd.AddCommand(newDiagCmd(opts))
	cmd.AddCommand(newTokenizeCmd(opts))
	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newLayoutCmd(opts))
	cmd.AddCommand(newCacheCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))
	return cmd
}

// stopProfiling flushes profiles started by the pre-run hook. It runs after
// Execute so failing commands are profiled too.
func (o *rootOptions) stopProfiling() error {
	err := o.profiler.Stop()
	o.profiler = nil
	return err
}

func newLogger(w io.Writer, opts *rootOptions) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// useColor resolves --color for w. auto colors only terminals and honours
// NO_COLOR.
func (o *rootOptions) useColor(w io.Writer) bool {
	switch o.color {
	case "on":
		return true
	case "off":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115
}
