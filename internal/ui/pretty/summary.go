package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/sidconv/pkg/analysis"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run totals as a single line.
// Example: "3 files converted, 12 lines changed, 1 warning (5 files checked)".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	checked := s.Dim.Render(" (" + Plural(totals.Files, "file") + " checked)")

	if totals.Converted == 0 && totals.Warnings == 0 && totals.Errored == 0 {
		return s.Success.Render("Nothing to convert") + checked + "\n"
	}

	var parts []string
	if totals.Converted > 0 {
		parts = append(parts, s.Success.Render(Plural(totals.Converted, "file")+" converted"))
		parts = append(parts, Plural(totals.LinesChanged, "line")+" changed")
	}
	if totals.Warnings > 0 {
		parts = append(parts, s.Warning.Render(Plural(totals.Warnings, "warning")))
	}
	if totals.Errored > 0 {
		parts = append(parts, s.Error.Render(Plural(totals.Errored, "file")+" failed"))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}

// FormatSummary formats run totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString("  " + label + strings.Repeat(" ", max(1, 18-len(label))) + value + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked:", s.SummaryValue.Render(strconv.Itoa(totals.Files)))
	if totals.Converted > 0 {
		row("Files converted:", s.Success.Render(strconv.Itoa(totals.Converted)))
	}
	if totals.Unchanged > 0 {
		row("Files unchanged:", s.SummaryValue.Render(strconv.Itoa(totals.Unchanged)))
	}
	if totals.Skipped > 0 {
		row("Files skipped:", s.Dim.Render(strconv.Itoa(totals.Skipped)))
	}
	if totals.Errored > 0 {
		row("Files failed:", s.Failure.Render(strconv.Itoa(totals.Errored)))
	}
	if totals.Written > 0 {
		row("Files written:", s.SummaryValue.Render(strconv.Itoa(totals.Written)))
	}

	builder.WriteString("\n")
	row("Lines changed:", s.SummaryValue.Render(strconv.Itoa(totals.LinesChanged)))
	if totals.Warnings > 0 {
		row("Warnings:", s.Warning.Render(strconv.Itoa(totals.Warnings)))
	}
	builder.WriteString("\n")

	switch {
	case totals.Errored > 0:
		builder.WriteString(s.Failure.Render("Conversion failed for some files"))
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Conversion completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Conversion completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
