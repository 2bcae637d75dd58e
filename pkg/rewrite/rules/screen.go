package rules

import (
	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/petscii"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// ScreenMapRule replaces CHR$ calls of known PETSCII screen codes with an
// equivalent ANSI string literal or a reference to a helper variable.
type ScreenMapRule struct {
	rewrite.BaseRule
}

// NewScreenMapRule creates a new screen-map rule.
func NewScreenMapRule() *ScreenMapRule {
	return &ScreenMapRule{
		BaseRule: rewrite.NewBaseRule(
			"SC010",
			"screen-map",
			"CHR$ of known PETSCII screen codes become ANSI escape sequences",
			rewrite.PhaseExpression,
		),
	}
}

// Enabled returns true unless the screen profile is "none".
func (r *ScreenMapRule) Enabled(cfg *config.Config) bool {
	return cfg.ScreenProfile != config.ScreenNone
}

// Apply rewrites every mapped CHR$ call in the statement.
func (r *ScreenMapRule) Apply(ctx *rewrite.Context, stmt basic.Statement) (rewrite.Outcome, error) {
	tokens := basic.Tokenize(string(stmt))
	state := ctx.State
	changed := false

	for i, tok := range tokens {
		if tok.Kind != basic.TokenChr {
			continue
		}
		m, ok := petscii.Lookup(tok.Code)
		if !ok {
			continue
		}
		if ctx.Config.ScreenProfile == config.ScreenANSIHelpers {
			tokens[i] = basic.Token{Kind: basic.TokenText, Text: m.Helper}
			state = state.WithHelper(m.Helper)
		} else {
			tokens[i] = basic.Token{Kind: basic.TokenString, Text: `"` + m.Sequence + `"`}
		}
		changed = true
	}

	if !changed {
		return rewrite.NoMatch(), nil
	}
	return rewrite.Replace(state, basic.Statement(basic.Join(tokens))), nil
}
