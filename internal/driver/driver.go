// Package driver runs the magen pipeline: load, lex and parse, resolve the
// layout, emit Go and write the destination atomically.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"fortio.org/safecast"

	"magen/internal/ast"
	"magen/internal/diag"
	"magen/internal/emit"
	"magen/internal/layout"
	"magen/internal/lexer"
	"magen/internal/observ"
	"magen/internal/parser"
	"magen/internal/project"
	"magen/internal/source"
	"magen/internal/types"
	"magen/internal/version"
)

// Options tune one compilation. The zero value compiles with the nearest
// magen.toml, no cache and no logging.
type Options struct {
	// Package and Runtime override the configuration when set.
	Package string
	Runtime string
	// Config replaces magen.toml discovery.
	Config *project.Config
	// MaxDiagnostics caps the bag; 0 means unlimited.
	MaxDiagnostics int
	Cache          *DiskCache
	// Timings adds an OBS6001 diagnostic with phase durations.
	Timings bool
	Logger  *slog.Logger
	// Progress receives per-phase events; nil disables them.
	Progress ProgressSink
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Result is what a compilation produced, successful or not.
type Result struct {
	Source string
	// Dest is the configured destination until Compile writes elsewhere.
	Dest     string
	Package  string
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Layout   *layout.Interface // nil on a cache hit
	Output   []byte
	CacheHit bool
	Timings  observ.Report
}

// Check runs the pipeline up to emission without writing anything. On
// failure it returns the partial result and a *CompileError.
func Check(ctx context.Context, src string, opts Options) (*Result, error) {
	res, err := check(ctx, src, opts)
	opts.finish(res, StageEmit, err)
	return res, err
}

func (o *Options) finish(res *Result, stage Stage, err error) {
	switch {
	case err != nil:
		o.notify(res.Source, stage, StatusError, err)
	case res.CacheHit:
		o.notify(res.Source, stage, StatusCached, nil)
	default:
		o.notify(res.Source, stage, StatusDone, nil)
	}
}

func check(ctx context.Context, src string, opts Options) (*Result, error) {
	log := opts.logger().With("source", src)
	timer := observ.NewTimer()
	res := &Result{
		Source:  src,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	rep := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	defer func() {
		res.Timings = timer.Report()
		log.Debug("phases", "timings", res.Timings)
		if opts.Timings {
			appendTimingDiagnostic(res.Bag, timingPayload{Kind: "compile", Path: src, TotalMS: res.Timings.TotalMS, Phases: res.Timings.Phases})
		}
	}()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	cfg, err := resolveConfig(src, opts)
	if err != nil {
		diag.ReportError(rep, diag.IOLoadFileError, source.Span{File: noFile}, err.Error()).Emit()
		return res, newCompileError(src, res.Bag, res.FileSet, err)
	}
	res.Package = cfg.PackageFor(src)
	res.Dest = cfg.DestinationFor(src)
	runtimePath := cfg.Generate.Runtime

	opts.notify(src, StageLoad, StatusWorking, nil)
	done := timer.Track("load")
	fileID, err := res.FileSet.Load(src)
	if err != nil {
		done("failed")
		diag.ReportError(rep, diag.IOLoadFileError, source.Span{File: noFile}, fmt.Sprintf("cannot read %s: %v", src, err)).Emit()
		return res, newCompileError(src, res.Bag, res.FileSet, err)
	}
	file := res.FileSet.Get(fileID)
	done(fmt.Sprintf("%d bytes", len(file.Content)))

	key := cacheKey(file.Content, res.Package, runtimePath)
	if opts.Cache != nil {
		done := timer.Track("cache")
		var art Artifact
		hit, err := opts.Cache.Get(key, &art)
		switch {
		case err != nil:
			done("error")
			log.Warn("cache read failed", "err", err)
			diag.ReportWarning(rep, diag.IOCacheError, source.Span{File: fileID}, "artifact cache unreadable: "+err.Error()).Emit()
		case hit:
			done("hit")
			log.Debug("cache hit", "key", fmt.Sprintf("%x", key[:8]))
			res.Output = art.Output
			res.CacheHit = true
			return res, nil
		default:
			done("miss")
		}
	}

	opts.notify(src, StageParse, StatusWorking, nil)
	done = timer.Track("parse")
	builder := ast.NewBuilder(ast.Hints{})
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return res, err
	}
	parsed := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), builder, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  rep,
	})
	done(fmt.Sprintf("%d errors", parsed.Errors))
	if res.Bag.HasErrors() {
		log.Debug("parse failed", "errors", res.Bag.Len())
		return res, newCompileError(src, res.Bag, res.FileSet, nil)
	}

	opts.notify(src, StageLayout, StatusWorking, nil)
	done = timer.Track("layout")
	iface, ok := (&layout.Resolver{Registry: types.Default(), Reporter: rep}).Resolve(builder, parsed.File)
	done("")
	if !ok || res.Bag.HasErrors() {
		log.Debug("layout failed", "errors", res.Bag.Len())
		return res, newCompileError(src, res.Bag, res.FileSet, nil)
	}
	res.Layout = iface

	opts.notify(src, StageEmit, StatusWorking, nil)
	done = timer.Track("emit")
	out, err := emit.Generate(iface, emit.Options{
		Package: res.Package,
		Runtime: runtimePath,
		Source:  filepath.ToSlash(filepath.Base(src)),
	})
	done(fmt.Sprintf("%d methods", len(iface.Methods)))
	if err != nil {
		code := diag.IOFormatError
		if !errors.Is(err, emit.ErrFormat) {
			code = diag.IOWriteFileError
		}
		diag.ReportError(rep, code, source.Span{File: fileID}, err.Error()).Emit()
		return res, newCompileError(src, res.Bag, res.FileSet, err)
	}
	res.Output = out

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, &Artifact{
			Schema:    cacheSchemaVersion,
			Source:    src,
			Interface: iface.Name,
			Package:   res.Package,
			Output:    out,
		}); err != nil {
			log.Warn("cache write failed", "err", err)
			diag.ReportWarning(rep, diag.IOCacheError, source.Span{File: fileID}, "artifact cache not updated: "+err.Error()).Emit()
		}
	}
	log.Debug("compiled", "interface", iface.Name, "methods", len(iface.Methods), "bytes", len(out))
	return res, nil
}

// Compile checks src and writes the generated file to dst. dst is left
// untouched unless compilation succeeds. An empty dst uses the configured
// suffix next to the source.
func Compile(ctx context.Context, src, dst string, opts Options) (*Result, error) {
	res, err := compile(ctx, src, dst, opts)
	opts.finish(res, StageWrite, err)
	return res, err
}

func compile(ctx context.Context, src, dst string, opts Options) (*Result, error) {
	res, err := check(ctx, src, opts)
	if err != nil {
		return res, err
	}
	if dst == "" {
		dst = res.Dest
	}
	res.Dest = dst

	opts.notify(src, StageWrite, StatusWorking, nil)
	if err := writeAtomic(dst, res.Output); err != nil {
		var span source.Span
		if id, ok := res.FileSet.GetLatest(src); ok {
			span = source.Span{File: id}
		} else {
			span = source.Span{File: noFile}
		}
		diag.ReportError(&diag.BagReporter{Bag: res.Bag}, diag.IOWriteFileError, span,
			fmt.Sprintf("cannot write %s: %v", dst, err)).Emit()
		return res, newCompileError(src, res.Bag, res.FileSet, err)
	}
	opts.logger().Debug("wrote", "dest", dst, "bytes", len(res.Output), "cached", res.CacheHit)
	return res, nil
}

// noFile marks spans of diagnostics raised before the source was loaded.
const noFile = source.FileID(^uint32(0))

func resolveConfig(src string, opts Options) (project.Config, error) {
	var cfg project.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		var err error
		cfg, err = project.Discover(filepath.Dir(src))
		if err != nil {
			return project.Config{}, err
		}
	}
	if opts.Package != "" {
		cfg.Generate.Package = opts.Package
	}
	if opts.Runtime != "" {
		cfg.Generate.Runtime = opts.Runtime
	}
	return cfg, cfg.Validate()
}

func cacheKey(content []byte, pkg, runtimePath string) project.Digest {
	return project.Combine(content, []byte(pkg), []byte(runtimePath), []byte(version.Version), []byte{byte(cacheSchemaVersion)})
}
