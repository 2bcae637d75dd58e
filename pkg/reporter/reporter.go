// Package reporter renders the result of a conversion run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/sidconv/pkg/analysis"
	"github.com/yaklabco/sidconv/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of warnings reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Warnings, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeByFile: true,
			IncludeByRule: true,
			SortBy:        analysis.SortByCount,
			SortDesc:      true,
			RuleFormat:    opts.RuleFormat,
			Registry:      opts.Registry,
			WorkingDir:    opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	var renderer Renderer
	switch format {
	case FormatText:
		renderer = NewTextRenderer(opts)
	case FormatTable:
		renderer = NewTableRenderer(opts)
	case FormatJSON:
		renderer = NewJSONRenderer(opts)
	case FormatDiff:
		renderer = NewDiffRenderer(opts)
	case FormatSummary:
		renderer = NewSummaryRenderer(opts)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return newRendererFacade(renderer, opts), nil
}
