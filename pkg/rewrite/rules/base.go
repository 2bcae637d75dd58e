package rules

import (
	"regexp"
	"strconv"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// baseAssignPattern matches "[LET] <ident> = <integer literal>".
//
//nolint:gochecknoglobals // Compiled regex is immutable
var baseAssignPattern = regexp.MustCompile(`(?i)^(?:LET\s*)?([A-Z][A-Z0-9]*%?)\s*=\s*(\d+)$`)

// BaseAssign is a recognized assignment of the SID base address.
type BaseAssign struct {
	// Name is the assigned variable as written.
	Name string

	// start and end delimit the literal within the trimmed statement.
	start, end int
}

// MatchBaseAssign recognizes "[LET] V = 54272" in a trimmed statement.
func MatchBaseAssign(text string) (BaseAssign, bool) {
	m := baseAssignPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return BaseAssign{}, false
	}
	value, err := strconv.Atoi(text[m[4]:m[5]])
	if err != nil || value != config.SIDBase {
		return BaseAssign{}, false
	}
	return BaseAssign{Name: text[m[2]:m[3]], start: m[4], end: m[5]}, true
}

// BaseAddressRule records variables assigned the SID base address and
// zeroes the assignment, so the variable can serve as a register offset.
type BaseAddressRule struct {
	rewrite.BaseRule
}

// NewBaseAddressRule creates a new base-address rule.
func NewBaseAddressRule() *BaseAddressRule {
	return &BaseAddressRule{
		BaseRule: rewrite.NewBaseRule(
			"SC001",
			"base-address",
			"Assignments of 54272 to a variable are zeroed and the variable is tracked as the SID base",
			rewrite.PhaseStatement,
		),
	}
}

// Apply rewrites "V=54272" to "V=0" and records V in the state.
func (r *BaseAddressRule) Apply(ctx *rewrite.Context, stmt basic.Statement) (rewrite.Outcome, error) {
	text := stmt.Trimmed()
	assign, ok := MatchBaseAssign(text)
	if !ok {
		return rewrite.NoMatch(), nil
	}

	rewritten := text[:assign.start] + "0" + text[assign.end:]
	state := ctx.State.WithBase(assign.Name, config.SIDBase)
	return rewrite.Replace(state, stmt.Replace(rewritten)), nil
}
