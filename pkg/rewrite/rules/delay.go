package rules

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// delayLoopPattern matches "FOR <ident> = <start> TO <integer literal>".
// A trailing STEP clause prevents a match.
//
//nolint:gochecknoglobals // Compiled regex is immutable
var delayLoopPattern = regexp.MustCompile(`(?i)^FOR\s*([A-Z][A-Z0-9]*%?)\s*=\s*(.+?)\s*TO\s*(\d+)$`)

// Scaled bounds must convert back to int. float64(math.MaxInt) rounds up
// to 2^63, so the upper limit is exclusive.
const (
	maxBound = float64(math.MaxInt)
	minBound = float64(math.MinInt)
)

// DelayScaleRule multiplies the bound of FOR loops whose control variable
// is one of the configured delay variables.
type DelayScaleRule struct {
	rewrite.BaseRule
}

// NewDelayScaleRule creates a new delay-scale rule.
func NewDelayScaleRule() *DelayScaleRule {
	return &DelayScaleRule{
		BaseRule: rewrite.NewBaseRule(
			"SC003",
			"delay-scale",
			"FOR loops over delay variables get their TO bound scaled",
			rewrite.PhaseStatement,
		),
	}
}

// Enabled returns true when a scale factor is configured.
func (r *DelayScaleRule) Enabled(cfg *config.Config) bool {
	return cfg.ScalingEnabled()
}

// Apply rewrites "FOR T=1 TO n" to "FOR T=1 TO round(n*factor)".
func (r *DelayScaleRule) Apply(ctx *rewrite.Context, stmt basic.Statement) (rewrite.Outcome, error) {
	text := stmt.Trimmed()
	m := delayLoopPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return rewrite.NoMatch(), nil
	}

	name := text[m[2]:m[3]]
	if !slices.ContainsFunc(ctx.Config.ScaleForVars, func(v string) bool {
		return strings.EqualFold(v, name)
	}) {
		return rewrite.NoMatch(), nil
	}

	bound, err := strconv.Atoi(text[m[6]:m[7]])
	if err != nil {
		return rewrite.NoMatch(), nil //nolint:nilerr // Out-of-range literal is left alone
	}
	product := math.Round(float64(bound) * ctx.Config.ScaleFor)
	if math.IsNaN(product) || product >= maxBound || product < minBound {
		return rewrite.NoMatch(), nil
	}
	scaled := int(product)
	if scaled == bound {
		return rewrite.NoMatch(), nil
	}

	rewritten := text[:m[6]] + strconv.Itoa(scaled) + text[m[7]:]
	return rewrite.Replace(ctx.State, stmt.Replace(rewritten)), nil
}
