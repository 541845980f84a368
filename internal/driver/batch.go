package driver

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"playground/internal/diag"
	"playground/internal/source"
	"playground/internal/trace"
)

// SourceExt is the extension of Terbium source files.
const SourceExt = ".tb"

// BatchResult содержит ответ на один файл пакета.
type BatchResult struct {
	Path    string
	Outcome Outcome
	// Err - ошибка чтения файла; Outcome в этом случае пуст.
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the file could not be read or its report has errors.
func (r BatchResult) Failed() bool {
	if r.Err != nil {
		return true
	}
	return r.Outcome.Aborted != nil
}

// ListSources возвращает отсортированный список всех *.tb файлов под dir.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
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

// LoadSource reads a file the way the registry loads it: BOM stripped and
// CRLF normalised, so spans in the report match the text the harness sees.
func LoadSource(path string) (string, error) {
	fset := source.NewFileSet()
	id, err := fset.Load(path)
	if err != nil {
		return "", err
	}
	return string(fset.Get(id).Content), nil
}

// ReadSource reads request text from r with the same BOM/CRLF handling as LoadSource.
func ReadSource(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	content, _ := source.Normalize(data)
	return string(content), nil
}

// RunBatch runs op over every path with at most jobs requests in flight.
// Results come back in input order. sink may be nil.
func (h *Harness) RunBatch(ctx context.Context, op Op, paths []string, jobs int, sink ProgressSink) ([]BatchResult, error) {
	results := make([]BatchResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	if !tracer.Enabled() {
		tracer = h.opts.Tracer
	}
	span := trace.Begin(tracer, trace.ScopeDriver, "driver.batch", 0)
	defer func() { span.End("") }()

	if sink != nil {
		for _, path := range paths {
			sink.OnEvent(Event{File: path, Status: StatusQueued})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = h.runOne(op, path, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (h *Harness) runOne(op Op, path string, sink ProgressSink) BatchResult {
	start := time.Now()
	res := BatchResult{Path: path}
	src, err := LoadSource(path)
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		if sink != nil {
			sink.OnEvent(Event{File: path, Status: StatusError, Err: err, Elapsed: res.Elapsed})
		}
		return res
	}

	worker := h
	if sink != nil {
		worker = h.withObserver(chainObservers(h.opts.Observer, sinkObserver(sink, path)))
	}
	res.Outcome = worker.Exec(op, src)
	res.Elapsed = time.Since(start)
	if sink != nil {
		status := StatusDone
		if res.Failed() {
			status = StatusError
		}
		sink.OnEvent(Event{File: path, Status: status, Elapsed: res.Elapsed})
	}
	return res
}

func chainObservers(first, second PhaseObserver) PhaseObserver {
	if first == nil {
		return second
	}
	return func(ev PhaseEvent) {
		first(ev)
		second(ev)
	}
}

// BatchTally sums the findings of a batch. An unreadable file counts as one error.
func BatchTally(results []BatchResult) (failed int, t diag.Tally) {
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		if r.Err != nil {
			t.Errors++
			continue
		}
		t.Info += r.Outcome.Tally.Info
		t.Warnings += r.Outcome.Tally.Warnings
		t.Errors += r.Outcome.Tally.Errors
	}
	return failed, t
}
