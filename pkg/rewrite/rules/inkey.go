package rules

import (
	"regexp"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// getPattern matches "GET <ident>$".
//
//nolint:gochecknoglobals // Compiled regex is immutable
var getPattern = regexp.MustCompile(`(?i)^GET\s*([A-Z][A-Z0-9]*)\$$`)

// GetInkeyRule turns the non-blocking GET of a string variable into an
// INKEY$ assignment.
type GetInkeyRule struct {
	rewrite.BaseRule
}

// NewGetInkeyRule creates a new get-inkey rule.
func NewGetInkeyRule() *GetInkeyRule {
	return &GetInkeyRule{
		BaseRule: rewrite.NewBaseRule(
			"SC004",
			"get-inkey",
			"GET A$ becomes A$=INKEY$",
			rewrite.PhaseStatement,
		),
	}
}

// Enabled returns true when GET mapping is configured.
func (r *GetInkeyRule) Enabled(cfg *config.Config) bool {
	return cfg.MapGetToInkey
}

// Apply rewrites "GET X$" to "X$=INKEY$".
func (r *GetInkeyRule) Apply(ctx *rewrite.Context, stmt basic.Statement) (rewrite.Outcome, error) {
	m := getPattern.FindStringSubmatch(stmt.Trimmed())
	if m == nil {
		return rewrite.NoMatch(), nil
	}
	return rewrite.Replace(ctx.State, stmt.Replace(m[1]+"$=INKEY$")), nil
}
