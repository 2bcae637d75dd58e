package rewrite_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
	_ "github.com/yaklabco/sidconv/pkg/rewrite/rules"
)

// convert runs a full pass over src and returns the rendered program.
func convert(t *testing.T, cfg *config.Config, src string) (*rewrite.ProgramResult, string) {
	t.Helper()

	prog, err := basic.ParseProgram([]byte(src))
	require.NoError(t, err)

	engine := rewrite.NewEngine(rewrite.DefaultRegistry, cfg)
	result, err := engine.Rewrite(context.Background(), prog)
	require.NoError(t, err)

	return result, string(result.Bytes())
}

func TestEngine_EndToEnd(t *testing.T) {
	t.Parallel()

	result, out := convert(t, nil, "5 B=54272\n30 POKE B+1,0\n40 POKE B+0,0\n")

	assert.Equal(t, "0 B=0:REG=212:DAT=213\n5 B=0\n30 OUT REG,1:OUT DAT,0\n40 OUT REG,0:OUT DAT,0\n", out)
	require.NotNil(t, result.Header)
	assert.Equal(t, 0, result.Header.Number)
	assert.False(t, result.HeaderMerged)
	assert.Len(t, result.Changes, 3)
	assert.Equal(t, map[string]int{"SC001": 1, "SC002": 2}, result.RuleCounts())
}

func TestEngine_PassThrough(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ScaleFor = 3
	cfg.MapGetToInkey = true
	cfg.UnknownPETSCII = config.PETSCIIStrip

	src := strings.Join([]string{
		`10 PRINT "HELLO" : GOTO 10`,
		`20 POKE 1024,5:POKE 53280 , 0`,
		`  30  FOR I = 1 TO 10 : NEXT I`,
		`40 REM POKE 54272,0:PRINT CHR$(147)`,
		`50 IF X=1 THEN 20`,
		`60`,
	}, "\n") + "\n"

	result, out := convert(t, cfg, src)

	// Only the header line is new; every input line is byte-identical.
	assert.Equal(t, "5 REG=212:DAT=213\n"+src, out)
	assert.Empty(t, result.Changes)
}

func TestEngine_SIDPokeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, k := range []int{0, 1, 4, 24, 25, 128, 255} {
		for _, value := range []string{"0", "V", "PEEK(2)+1", `ASC("A")`} {
			t.Run(fmt.Sprintf("%d,%s", k, value), func(t *testing.T) {
				t.Parallel()

				want := fmt.Sprintf("OUT REG,%d:OUT DAT,%s", k, value)

				_, out := convert(t, nil, fmt.Sprintf("10 POKE 54272+%d,%s\n", k, value))
				assert.Contains(t, out, "\n10 "+want+"\n")

				_, out = convert(t, nil, fmt.Sprintf("5 B=54272\n10 POKE B+%d,%s\n", k, value))
				assert.Contains(t, out, "\n10 "+want+"\n")
			})
		}
	}
}

func TestEngine_NonSIDPokeInvariance(t *testing.T) {
	t.Parallel()

	configs := map[string]func(*config.Config){
		"default":       func(*config.Config) {},
		"inline ports":  func(c *config.Config) { c.InlinePorts = true },
		"warn":          func(c *config.Config) { c.WarnOutOfRange = true },
		"everything on": func(c *config.Config) { c.ScaleFor = 2; c.MapGetToInkey = true; c.UnknownPETSCII = config.PETSCIIStrip },
		"no screen":     func(c *config.Config) { c.ScreenProfile = config.ScreenNone },
	}

	for name, mutate := range configs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			mutate(cfg)

			result, out := convert(t, cfg, "10 B=1024\n20 POKE 1024,5\n30 POKE B+1,5\n")
			assert.Contains(t, out, "\n20 POKE 1024,5\n30 POKE B+1,5\n")
			assert.Empty(t, result.Changes)
		})
	}
}

func TestEngine_ColonInsideString(t *testing.T) {
	t.Parallel()

	result, out := convert(t, nil, "10 PRINT \"A:B\":POKE 54272+0,1\n")

	assert.Contains(t, out, "\n10 PRINT \"A:B\":OUT REG,0:OUT DAT,1\n")
	require.Len(t, result.Changes, 1)
	assert.Equal(t, []string{"SC002"}, result.Changes[0].Rules)
}

func TestEngine_BaseTrackingIsForwardOnly(t *testing.T) {
	t.Parallel()

	_, out := convert(t, nil, "10 POKE B+1,0\n20 B=54272\n30 POKE B+1,0\n")

	assert.Equal(t, "5 B=0:REG=212:DAT=213\n10 POKE B+1,0\n20 B=0\n30 OUT REG,1:OUT DAT,0\n", out)
}

func TestEngine_BaseAssignedOnSameLine(t *testing.T) {
	t.Parallel()

	_, out := convert(t, nil, "10 S=54272:POKE S+24,15\n")

	assert.Equal(t, "5 S=0:REG=212:DAT=213\n10 S=0:OUT REG,24:OUT DAT,15\n", out)
}

func TestEngine_HeaderPlacement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		wantHeader int
	}{
		{name: "first line 5", src: "5 POKE 54272,0\n", wantHeader: 0},
		{name: "first line 100", src: "100 POKE 54272,0\n", wantHeader: 95},
		{name: "first line 3", src: "3 POKE 54272,0\n", wantHeader: 0},
		{name: "unsorted", src: "20 PRINT\n10 POKE 54272,0\n", wantHeader: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, out := convert(t, nil, tt.src)
			require.NotNil(t, result.Header)
			assert.Equal(t, tt.wantHeader, result.Header.Number)
			assert.True(t, strings.HasPrefix(out, fmt.Sprintf("%d REG=212:DAT=213\n", tt.wantHeader)))
		})
	}
}

func TestEngine_HeaderAtLineZero(t *testing.T) {
	t.Parallel()

	src := "0 PRINT \"HI\"\n10 POKE 54272,1\n"

	prog, err := basic.ParseProgram([]byte(src))
	require.NoError(t, err)

	// Default fallback refuses to guess.
	_, err = rewrite.NewEngine(rewrite.DefaultRegistry, config.NewConfig()).Rewrite(context.Background(), prog)
	require.ErrorIs(t, err, rewrite.ErrNoHeaderSlot)

	cfg := config.NewConfig()
	cfg.HeaderFallback = config.HeaderFallbackMerge

	result, out := convert(t, cfg, src)
	assert.Equal(t, "0 REG=212:DAT=213:PRINT \"HI\"\n10 OUT REG,0:OUT DAT,1\n", out)
	assert.True(t, result.HeaderMerged)
}

func TestEngine_EmptyProgram(t *testing.T) {
	t.Parallel()

	result, out := convert(t, nil, "")

	assert.Equal(t, "0 REG=212:DAT=213\n", out)
	require.NotNil(t, result.Header)
}

func TestEngine_InlinePortsHeader(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.InlinePorts = true

	_, out := convert(t, cfg, "10 POKE 54272,1\n")
	assert.Equal(t, "10 OUT 212,0:OUT 213,1\n", out, "no header when nothing needs initializing")

	_, out = convert(t, cfg, "10 B=54272:POKE B,1\n")
	assert.Equal(t, "5 B=0\n10 B=0:OUT 212,0:OUT 213,1\n", out)
}

func TestEngine_CustomPorts(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Reg = 64
	cfg.Dat = 65

	_, out := convert(t, cfg, "10 POKE 54296,15\n")
	assert.Equal(t, "5 REG=64:DAT=65\n10 OUT REG,24:OUT DAT,15\n", out)
}

func TestEngine_DelayScaling(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ScaleFor = 5

	_, out := convert(t, cfg, "30 FOR T=1 TO 200\n40 FOR I=1 TO 200\n")
	assert.Contains(t, out, "\n30 FOR T=1 TO 1000\n40 FOR I=1 TO 200\n")
}

func TestEngine_OutOfRangeWarning(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.WarnOutOfRange = true

	result, out := convert(t, cfg, "10 PRINT\n20 POKE 54272+30,0\n")

	assert.Contains(t, out, "\n20 OUT REG,30:OUT DAT,0\n")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 20, result.Warnings[0].Line)
	assert.Equal(t, 2, result.Warnings[0].Source)
	assert.Equal(t, "SC002", result.Warnings[0].RuleID)
}

func TestEngine_UnknownPETSCIIStrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.UnknownPETSCII = config.PETSCIIStrip

	_, out := convert(t, cfg, "10 PRINT \"A\";CHR$(199);\"B\"\n20 A$=\"X\"+CHR$(199)\n")

	assert.Contains(t, out, "10 PRINT \"A\";\"B\"\n20 A$=\"X\"\n")
	assert.NotContains(t, out, "199")
}

func TestEngine_UnknownPETSCIIWarnIsNoOp(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.UnknownPETSCII = config.PETSCIIWarn

	result, out := convert(t, cfg, "10 PRINT CHR$(199)\n")

	assert.Contains(t, out, "\n10 PRINT CHR$(199)\n")
	assert.Empty(t, result.Warnings)
}

func TestEngine_ScreenHelpers(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ScreenProfile = config.ScreenANSIHelpers
	cfg.InjectANSIHelpers = true

	_, out := convert(t, cfg, "10 PRINT CHR$(147);CHR$(5)\n20 PRINT CHR$(147)\n")

	assert.Equal(t,
		"5 REG=212:DAT=213:CLS$=CHR$(27)+\"[2J\"+CHR$(27)+\"[H\":COL_WHITE$=CHR$(27)+\"[37m\"\n"+
			"10 PRINT CLS$;COL_WHITE$\n20 PRINT CLS$\n",
		out)
}

func TestEngine_StatementAndExpressionRulesCompose(t *testing.T) {
	t.Parallel()

	// A rewritten POKE value still gets its CHR$ mapped.
	_, out := convert(t, nil, "10 POKE 54272,ASC(CHR$(147))\n")

	assert.Contains(t, out, "\n10 OUT REG,0:OUT DAT,ASC(\"\x1b[2J\x1b[H\")\n")
}

func TestEngine_CRLF(t *testing.T) {
	t.Parallel()

	_, out := convert(t, nil, "10 POKE 54272,1\r\n20 END\r\n")

	assert.Equal(t, "5 REG=212:DAT=213\r\n10 OUT REG,0:OUT DAT,1\r\n20 END\r\n", out)
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()

	prog, err := basic.ParseProgram([]byte("10 PRINT\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rewrite.NewEngine(rewrite.DefaultRegistry, nil).Rewrite(ctx, prog)
	require.ErrorIs(t, err, context.Canceled)
}
