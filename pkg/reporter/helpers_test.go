package reporter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
	_ "github.com/yaklabco/sidconv/pkg/rewrite/rules"
	"github.com/yaklabco/sidconv/pkg/runner"
)

const (
	pokeSource = "10 POKE 54272,1\n20 PRINT \"HI\"\n"
	wideSource = "10 POKE 54272+30,1\n"
	clsSource  = "10 PRINT CHR$(147)\n"
)

// convertOutcome runs the engine over src the way runner.Converter does,
// without touching the filesystem.
func convertOutcome(t *testing.T, cfg *config.Config, path, src string) runner.FileOutcome {
	t.Helper()

	prog, err := basic.ParseProgram([]byte(src))
	require.NoError(t, err)

	engine := rewrite.NewEngine(rewrite.DefaultRegistry, cfg)
	programResult, err := engine.Rewrite(context.Background(), prog)
	require.NoError(t, err)

	return runner.FileOutcome{
		Path: path,
		Result: &runner.FileResult{
			Path:      path,
			Original:  []byte(src),
			Converted: programResult.Bytes(),
			Program:   programResult,
		},
	}
}

// createTestResult returns a run over two converted files, one failure and
// one skipped file.
func createTestResult(t *testing.T) *runner.Result {
	t.Helper()

	cfg := config.NewConfig()
	cfg.WarnOutOfRange = true

	return &runner.Result{
		Files: []runner.FileOutcome{
			convertOutcome(t, cfg, "a.bas", pokeSource),
			convertOutcome(t, cfg, "b.bas", wideSource),
			{Path: "bad.bas", Error: errors.New("parse failure: bad.bas: line 1: no line number")},
			{Path: "notes.bas", Result: &runner.FileResult{Path: "notes.bas", Skipped: true, SkipReason: "not a line-numbered listing"}},
		},
	}
}
