package reporter

import (
	"context"

	"github.com/yaklabco/sidconv/pkg/analysis"
)

// Renderer formats an analysis.Report for output.
// Renderers only handle presentation; the report is computed once.
type Renderer interface {
	// Render writes the formatted report to the configured output.
	Render(ctx context.Context, report *analysis.Report) error
}
