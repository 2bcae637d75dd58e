package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/sidconv/internal/logging"
)

// Runner orchestrates batch conversion using a Converter.
type Runner struct {
	// Converter handles per-file conversion.
	Converter *Converter
}

// New creates a new Runner with the given converter.
func New(converter *Converter) *Runner {
	return &Runner{Converter: converter}
}

// Run discovers sources under opts.Paths and converts them concurrently.
// Each file gets its own conversion pass; the configuration is shared
// read-only. Outcomes are returned in path order regardless of completion
// order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	sources, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(sources)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(sources)

	if len(sources) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(sources))

	logging.FromContext(ctx).Debug("converting",
		logging.FieldFiles, len(sources),
		logging.FieldJobs, jobs,
		logging.FieldOutDir, opts.OutDir,
	)

	writeOpts := WriteOptionsFromConfig(opts.Config)

	workCh := make(chan Source)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.OutDir, writeOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, src := range sources {
			select {
			case <-ctx.Done():
				return
			case workCh <- src:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(sources))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, src := range sources {
		if outcome, ok := outcomes[src.Path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts sources from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan Source,
	outCh chan<- FileOutcome,
	outDir string,
	opts WriteOptions,
) {
	for src := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: src.Path}

		fr, err := r.Converter.convertSource(ctx, src, outDir, opts)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = fr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
