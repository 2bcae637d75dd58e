package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/sidconv/internal/ui/pretty"
	"github.com/yaklabco/sidconv/pkg/analysis"
)

// TextRenderer formats results as styled terminal output grouped by file.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if len(report.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to convert."))
		}
		return nil
	}

	for _, file := range report.Files {
		r.renderFile(bw, file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}

	return nil
}

// renderFile writes one file's header line, changes and warnings.
// Unchanged files without warnings produce no output.
func (r *TextRenderer) renderFile(bw *bufio.Writer, file analysis.FileEntry) {
	switch file.Status {
	case analysis.StatusError:
		fmt.Fprint(bw, r.styles.FormatFileError(file.Path, file.Error))
		return
	case analysis.StatusSkipped:
		if r.opts.ShowSkipped {
			fmt.Fprintln(bw, r.styles.Dim.Render(file.Path+": skipped ("+file.Reason+")"))
		}
		return
	}

	if file.Header == nil && len(file.Changes) == 0 && len(file.Warnings) == 0 {
		return
	}

	fmt.Fprintln(bw, r.styles.FormatFileHeader(file.Path, len(file.Changes), len(file.Warnings)))
	if file.Header != nil {
		fmt.Fprint(bw, r.styles.FormatHeader(file.Path, *file.Header))
	}
	for _, change := range file.Changes {
		fmt.Fprint(bw, r.styles.FormatChange(file.Path, change))
	}
	for _, warning := range file.Warnings {
		fmt.Fprint(bw, r.styles.FormatWarning(warning))
	}
	if file.Output != "" && file.Written {
		fmt.Fprintln(bw, r.styles.Dim.Render("  wrote "+file.Output))
	}

	// Blank line between files
	fmt.Fprintln(bw)
}
