package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/sidconv/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LINE, KIND, DETAIL, RULE
	minFileWidth     = 12
	minLineWidth     = 5
	kindWidth        = 7
	minDetailWidth   = 30
	minRuleWidth     = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// RowKind classifies a table row.
type RowKind string

// Row kinds shown in the KIND column.
const (
	RowChange  RowKind = "change"
	RowHeader  RowKind = "header"
	RowWarning RowKind = "warning"
	RowError   RowKind = "error"
)

// TableRow represents a single row in the conversion table.
type TableRow struct {
	File   string
	Line   string
	Kind   RowKind
	Detail string
	Rule   string
}

// TableFormatter formats a conversion report as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats the report as a table with one group per file.
// It returns "" when no file has anything to show.
func (t *TableFormatter) FormatTable(report *analysis.Report) string {
	if report == nil {
		return ""
	}

	groups := CollectRows(report)
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// CollectRows builds table rows grouped by file. A change row shows the
// rewritten line; warnings and errors show their message.
func CollectRows(report *analysis.Report) [][]TableRow {
	var groups [][]TableRow

	for _, file := range report.Files {
		var rows []TableRow

		if file.Status == analysis.StatusError {
			rows = append(rows, TableRow{File: file.Path, Kind: RowError, Detail: file.Error})
		}
		if file.Header != nil {
			rows = append(rows, TableRow{
				File:   file.Path,
				Line:   strconv.Itoa(file.Header.Line),
				Kind:   RowHeader,
				Detail: Printable(file.Header.Text),
			})
		}
		for _, change := range file.Changes {
			rows = append(rows, TableRow{
				File:   file.Path,
				Line:   strconv.Itoa(change.Line),
				Kind:   RowChange,
				Detail: Printable(change.After),
				Rule:   strings.Join(change.Rules, ","),
			})
		}
		for _, warning := range file.Warnings {
			rows = append(rows, TableRow{
				File:   file.Path,
				Line:   strconv.Itoa(warning.Line),
				Kind:   RowWarning,
				Detail: warning.Message,
				Rule:   warning.Rule,
			})
		}

		if len(rows) > 0 {
			groups = append(groups, rows)
		}
	}

	return groups
}

type columnWidths struct {
	file   int
	line   int
	detail int
	rule   int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		line:   minLineWidth,
		detail: minDetailWidth,
		rule:   minRuleWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, len(row.File))
			widths.line = max(widths.line, len(row.Line))
			widths.detail = max(widths.detail, len(row.Detail))
			widths.rule = max(widths.rule, len(row.Rule))
		}
	}

	// Constrain to terminal width: shrink the detail first, then the file.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.detail = max(minDetailWidth, widths.detail-(total-t.termWidth))
	}
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.line + kindWidth + widths.detail + widths.rule +
		tablePadding*tableColumnCount
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s ",
		widths.file, "FILE",
		widths.line, "LINE",
		kindWidth, "KIND",
		widths.detail, "DETAIL",
		widths.rule, "RULE",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row with kind-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s ",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.line, truncateString(row.Line, widths.line),
		kindWidth, string(row.Kind),
		widths.detail, truncateString(row.Detail, widths.detail),
		widths.rule, truncateString(row.Rule, widths.rule),
	)
	return t.getRowStyle(row.Kind).Render(strings.TrimRight(content, " "))
}

// getRowStyle returns the style for a row kind.
func (t *TableFormatter) getRowStyle(kind RowKind) lipgloss.Style {
	switch kind {
	case RowError:
		return t.styles.TableErrorRow
	case RowWarning:
		return t.styles.TableWarnRow
	case RowChange, RowHeader:
		return t.styles.TableChangeRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: change/header = rewritten | warning | error")
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s  %s  %s",
			t.styles.TableChangeRow.Render(" rewritten "),
			t.styles.TableWarnRow.Render(" warning "),
			t.styles.TableErrorRow.Render(" error "),
		),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(totals analysis.Totals, duration string) string {
	parts := []string{Plural(totals.Files, "file") + " checked"}

	if totals.Converted > 0 {
		parts = append(parts, t.styles.Success.Render(fmt.Sprintf("%d converted", totals.Converted)))
	}
	if totals.LinesChanged > 0 {
		parts = append(parts, Plural(totals.LinesChanged, "line")+" changed")
	}
	if totals.Warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(Plural(totals.Warnings, "warning")))
	}
	if totals.Errored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", totals.Errored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
