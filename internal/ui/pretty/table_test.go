package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/analysis"
)

func tableReport() *analysis.Report {
	return &analysis.Report{
		Files: []analysis.FileEntry{
			{
				Path:   "a.bas",
				Status: analysis.StatusConverted,
				Header: &analysis.HeaderEntry{Line: 5, Text: "5 REG=212:DAT=213"},
				Changes: []analysis.ChangeEntry{
					{Line: 10, Source: 1, After: "10 OUT REG,0:OUT DAT,1", Rules: []string{"sid-poke"}},
				},
				Warnings: []analysis.WarningEntry{
					{FilePath: "a.bas", Line: 10, Rule: "sid-poke", Message: "offset 30 is outside 0-24"},
				},
			},
			{Path: "same.bas", Status: analysis.StatusUnchanged},
			{Path: "bad.bas", Status: analysis.StatusError, Error: "parse failure"},
		},
	}
}

func TestCollectRows(t *testing.T) {
	t.Parallel()

	groups := CollectRows(tableReport())
	require.Len(t, groups, 2)

	require.Len(t, groups[0], 3)
	assert.Equal(t, TableRow{File: "a.bas", Line: "5", Kind: RowHeader, Detail: "5 REG=212:DAT=213"}, groups[0][0])
	assert.Equal(t, RowChange, groups[0][1].Kind)
	assert.Equal(t, "sid-poke", groups[0][1].Rule)
	assert.Equal(t, RowWarning, groups[0][2].Kind)

	assert.Equal(t, []TableRow{{File: "bad.bas", Kind: RowError, Detail: "parse failure"}}, groups[1])
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	formatter := NewTableFormatter(NewStyles(false), false, 0)
	out := formatter.FormatTable(tableReport())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], " FILE"))
	assert.Contains(t, lines[0], "DETAIL")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])
	assert.Contains(t, lines[3], "10 OUT REG,0:OUT DAT,1")
	assert.Contains(t, lines[5], "-----")
	assert.Contains(t, lines[6], "parse failure")
	assert.Contains(t, lines[8], "Legend")
	assert.NotContains(t, out, "same.bas")
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	formatter := NewTableFormatter(NewStyles(false), false, 80)
	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&analysis.Report{Files: []analysis.FileEntry{{Path: "x.bas"}}}))
}

func TestCalculateColumnWidths_ConstrainsToTerminal(t *testing.T) {
	t.Parallel()

	formatter := NewTableFormatter(NewStyles(false), false, 80)
	widths := formatter.calculateColumnWidths([][]TableRow{{
		{File: "a.bas", Line: "10", Kind: RowChange, Detail: strings.Repeat("X", 200), Rule: "sid-poke"},
	}})

	assert.Equal(t, minDetailWidth+(80-formatter.calculateTotalWidth(columnWidths{
		file: minFileWidth, line: minLineWidth, detail: minDetailWidth, rule: minRuleWidth,
	})), widths.detail)
	assert.LessOrEqual(t, formatter.calculateTotalWidth(widths), 80)
}

func TestFormatTableSummary(t *testing.T) {
	t.Parallel()

	formatter := NewTableFormatter(NewStyles(false), false, 80)
	got := formatter.FormatTableSummary(analysis.Totals{Files: 3, Converted: 1, LinesChanged: 2, Warnings: 1, Errored: 1}, "12ms")

	assert.Equal(t, " 3 files checked | 1 converted | 2 lines changed | 1 warning | 1 failed | 12ms", got)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", truncateString("hello", 5))
	assert.Equal(t, "he...", truncateString("hello world", 5))
	assert.Equal(t, "hel", truncateString("hello", 3))

	assert.Equal(t, "a/b.bas", truncateFilePath("a/b.bas", 10))
	assert.Equal(t, "...ng/b.bas", truncateFilePath("very/long/b.bas", 11))
	assert.Equal(t, "bas", truncateFilePath("x/b.bas", 3))
}
