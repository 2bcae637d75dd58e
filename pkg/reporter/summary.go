package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/sidconv/internal/ui/pretty"
	"github.com/yaklabco/sidconv/pkg/analysis"
	"github.com/yaklabco/sidconv/pkg/config"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 80
	ruleColWidth      = 30
	fileColWidth      = 50
	numColWidth       = 8
	warnColWidth      = 10
	maxRuleNameLength = 28
	maxFilePathLength = 48
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated per-rule and per-file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if len(report.ByRule) > 0 {
		r.renderRuleTable(bw, report.ByRule)
		fmt.Fprintln(bw)
	}
	if len(report.ByFile) > 0 {
		r.renderFileTable(bw, report.ByFile)
		fmt.Fprintln(bw)
	}

	fmt.Fprint(bw, r.styles.FormatSummary(report.Totals))

	return nil
}

func (r *SummaryRenderer) separator(bw *bufio.Writer) {
	fmt.Fprintln(bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderRuleTable(bw *bufio.Writer, rules []analysis.RuleAnalysis) {
	fmt.Fprintln(bw, r.styles.Bold.Render("Rules Summary"))
	r.separator(bw)

	// Pad first, then style
	fmt.Fprintf(bw, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Lines", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.separator(bw)

	for _, rule := range rules {
		name := config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		if len(name) > maxRuleNameLength {
			name = name[:maxRuleNameLength] + "…"
		}

		padded := padRight(name, ruleColWidth)
		if rule.Warnings > 0 {
			padded = r.styles.TableWarnRow.Render(padded)
		}

		fmt.Fprintf(bw, "%s %s %s %s\n",
			padded,
			padLeft(strconv.Itoa(rule.Lines), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			padLeft(strconv.Itoa(len(rule.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(bw *bufio.Writer, files []analysis.FileAnalysis) {
	fmt.Fprintln(bw, r.styles.Bold.Render("Files Summary"))
	r.separator(bw)

	fmt.Fprintf(bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Lines", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator(bw)

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		padded := padRight(path, fileColWidth)
		if file.Warnings > 0 {
			padded = r.styles.TableWarnRow.Render(padded)
		}

		fmt.Fprintf(bw, "%s %s %s\n",
			padded,
			padLeft(strconv.Itoa(file.Lines), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}
