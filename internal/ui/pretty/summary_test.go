package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/sidconv/internal/ui/pretty"
	"github.com/yaklabco/sidconv/pkg/analysis"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(analysis.Totals{
		Files:        4,
		Converted:    2,
		Unchanged:    1,
		Skipped:      1,
		Written:      2,
		LinesChanged: 7,
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:    4")
	assert.Contains(t, result, "Files converted:  2")
	assert.Contains(t, result, "Files skipped:    1")
	assert.Contains(t, result, "Lines changed:    7")
	assert.NotContains(t, result, "Files failed:")
	assert.NotContains(t, result, "Warnings:")
	assert.Contains(t, result, "Conversion completed\n")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		totals analysis.Totals
		want   string
	}{
		{"errors win", analysis.Totals{Files: 2, Errored: 1, Warnings: 3}, "Conversion failed for some files"},
		{"warnings", analysis.Totals{Files: 1, Converted: 1, Warnings: 1}, "Conversion completed with warnings"},
		{"clean", analysis.Totals{Files: 1}, "Conversion completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, styles.FormatSummary(tt.totals), tt.want)
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		totals analysis.Totals
		want   string
	}{
		{
			name:   "nothing to do",
			totals: analysis.Totals{Files: 3, Unchanged: 3},
			want:   "Nothing to convert (3 files checked)\n",
		},
		{
			name:   "single file",
			totals: analysis.Totals{Files: 1, Converted: 1, LinesChanged: 1},
			want:   "1 file converted, 1 line changed (1 file checked)\n",
		},
		{
			name:   "warnings and failures",
			totals: analysis.Totals{Files: 5, Converted: 3, LinesChanged: 12, Warnings: 2, Errored: 1},
			want:   "3 files converted, 12 lines changed, 2 warnings, 1 file failed (5 files checked)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.totals))
		})
	}
}
