package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Job is one source/destination pair; an empty Dest uses the configured
// suffix.
type Job struct {
	Source string
	Dest   string
}

// BatchResult pairs a job with its outcome. Err is a *CompileError for
// rejected sources.
type BatchResult struct {
	Job    Job
	Result *Result
	Err    error
}

// CompileAll compiles jobs concurrently, at most parallel at a time
// (GOMAXPROCS when parallel <= 0). Every compilation owns its AST and bag;
// only the type registry and the cache are shared. Results keep the order
// of jobs. The returned error is only set when ctx is cancelled.
func CompileAll(ctx context.Context, jobs []Job, parallel int, opts Options) ([]BatchResult, error) {
	results := make([]BatchResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	for _, job := range jobs {
		opts.notify(job.Source, StageQueued, StatusQueued, nil)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(parallel, len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Compile(gctx, job.Source, job.Dest, opts)
			// индекс i уникален, мьютекс не нужен
			results[i] = BatchResult{Job: job, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ListSources returns every *.magen file under dir, sorted.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".magen") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
