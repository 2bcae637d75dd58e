package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// applyRule runs rule on one statement of line 10 and returns the outcome.
func applyRule(t *testing.T, rule rewrite.Rule, cfg *config.Config, state rewrite.State, stmt string) rewrite.Outcome {
	t.Helper()

	if cfg == nil {
		cfg = config.NewConfig()
	}
	ruleCtx := &rewrite.Context{
		Ctx:    context.Background(),
		Config: cfg,
		Line:   basic.NewLine(10, stmt),
		State:  state,
	}
	outcome, err := rule.Apply(ruleCtx, basic.Statement(stmt))
	require.NoError(t, err)
	return outcome
}

// joined renders outcome statements the way they appear in a line.
func joined(outcome rewrite.Outcome) string {
	line := basic.Line{Statements: outcome.Statements}
	return line.Body()
}

func sidBase() rewrite.State {
	return rewrite.State{}.WithBase("B", config.SIDBase)
}
