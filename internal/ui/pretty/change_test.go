package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/sidconv/internal/ui/pretty"
	"github.com/yaklabco/sidconv/pkg/analysis"
)

func TestPlural(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 files", pretty.Plural(0, "file"))
	assert.Equal(t, "1 file", pretty.Plural(1, "file"))
	assert.Equal(t, "2 warnings", pretty.Plural(2, "warning"))
}

func TestFormatLocation(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.bas:20 (source line 2)", styles.FormatLocation("a.bas", 20, 2))
	assert.Equal(t, "a.bas:3", styles.FormatLocation("a.bas", 3, 3))
	assert.Equal(t, "a.bas:5", styles.FormatLocation("a.bas", 5, 0))
}

func TestFormatChange(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatChange("a.bas", analysis.ChangeEntry{
		Line:   20,
		Source: 2,
		Before: "20 POKE 54272,1",
		After:  "20 OUT REG,0:OUT DAT,1",
		Rules:  []string{"sid-poke"},
	})

	assert.Equal(t,
		"  a.bas:20 (source line 2)  (sid-poke)\n"+
			"    - 20 POKE 54272,1\n"+
			"    + 20 OUT REG,0:OUT DAT,1\n",
		got)
}

func TestFormatWarning(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatWarning(analysis.WarningEntry{
		FilePath: "a.bas",
		Line:     20,
		Source:   20,
		Rule:     "SC002",
		Message:  "SID register offset 30 is outside 0-24",
	})

	assert.Equal(t, "  a.bas:20  warning  SID register offset 30 is outside 0-24  (SC002)\n", got)
}

func TestFormatHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatHeader("a.bas", analysis.HeaderEntry{Line: 5, Text: "5 REG=212:DAT=213"})
	assert.Equal(t, "  a.bas:5  header\n    + 5 REG=212:DAT=213\n", got)

	got = styles.FormatHeader("a.bas", analysis.HeaderEntry{Line: 0, Text: "0 REG=212:DAT=213:PRINT", Merged: true})
	assert.Contains(t, got, "header merged")
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.bas (2 changes, 1 warning)", styles.FormatFileHeader("a.bas", 2, 1))
	assert.Equal(t, "a.bas (1 change)", styles.FormatFileHeader("a.bas", 1, 0))
	assert.Equal(t, "a.bas", styles.FormatFileHeader("a.bas", 0, 0))
}

func TestFormatFileError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "bad.bas: error: parse failure\n", styles.FormatFileError("bad.bas", "parse failure"))
	assert.Equal(t, "converted", styles.FormatStatus(analysis.StatusConverted))
}

func TestPrintable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `10 PRINT "\x1b[2J"`, pretty.Printable("10 PRINT \"\x1b[2J\""))
	assert.Equal(t, "plain", pretty.Printable("plain"))
	assert.Equal(t, `\x7f\x09`, pretty.Printable("\x7f\t"))
}
