package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

const (
	// sidWindow is the number of addresses above the base treated as SID.
	sidWindow = 256

	// sidLastRegister is the highest documented SID register offset.
	sidLastRegister = 24
)

//nolint:gochecknoglobals // Compiled regexes are immutable
var (
	literalSumPattern = regexp.MustCompile(`^(\d+)\+(\d+)$`)
	baseSumPattern    = regexp.MustCompile(`(?i)^([A-Z][A-Z0-9]*%?)(?:\+(\d+))?$`)
)

// SIDPoke is a recognized POKE into the SID register window.
type SIDPoke struct {
	// Offset is the register offset, 0 through 255.
	Offset int

	// Value is the value expression as written.
	Value string
}

// MatchSIDPoke recognizes a POKE whose address resolves statically to
// 54272+k. Accepted address forms are a literal in the window, "54272+k",
// "V+k" and "V" where V is a tracked base variable. k must be a literal.
func MatchSIDPoke(text string, state rewrite.State) (SIDPoke, bool) {
	if !basic.HasKeyword(text, "POKE") {
		return SIDPoke{}, false
	}
	addr, value, ok := basic.SplitArgs(text[len("POKE"):])
	if !ok {
		return SIDPoke{}, false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return SIDPoke{}, false
	}

	offset, ok := resolveOffset(strings.Join(strings.Fields(addr), ""), state)
	if !ok {
		return SIDPoke{}, false
	}
	return SIDPoke{Offset: offset, Value: value}, true
}

func resolveOffset(addr string, state rewrite.State) (int, bool) {
	if n, err := strconv.Atoi(addr); err == nil && addr[0] != '-' && addr[0] != '+' {
		return inWindow(n - config.SIDBase)
	}

	if m := literalSumPattern.FindStringSubmatch(addr); m != nil {
		base, err := strconv.Atoi(m[1])
		if err != nil || base != config.SIDBase {
			return 0, false
		}
		return parseOffset(m[2])
	}

	if m := baseSumPattern.FindStringSubmatch(addr); m != nil {
		base, known := state.KnownBase(m[1])
		if !known || base != config.SIDBase {
			return 0, false
		}
		if m[2] == "" {
			return 0, true
		}
		return parseOffset(m[2])
	}

	return 0, false
}

func parseOffset(digits string) (int, bool) {
	k, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return inWindow(k)
}

func inWindow(k int) (int, bool) {
	if k < 0 || k >= sidWindow {
		return 0, false
	}
	return k, true
}

// SIDPokeRule replaces SID POKEs with a register-select OUT and a data OUT.
type SIDPokeRule struct {
	rewrite.BaseRule
}

// NewSIDPokeRule creates a new sid-poke rule.
func NewSIDPokeRule() *SIDPokeRule {
	return &SIDPokeRule{
		BaseRule: rewrite.NewBaseRule(
			"SC002",
			"sid-poke",
			"POKEs into the SID register window become OUT to the register and data ports",
			rewrite.PhaseStatement,
		),
	}
}

// Apply rewrites "POKE 54272+k,v" to "OUT REG,k:OUT DAT,v".
func (r *SIDPokeRule) Apply(ctx *rewrite.Context, stmt basic.Statement) (rewrite.Outcome, error) {
	poke, ok := MatchSIDPoke(stmt.Trimmed(), ctx.State)
	if !ok {
		return rewrite.NoMatch(), nil
	}

	reg, dat := rewrite.RegVar, rewrite.DatVar
	if ctx.Config.InlinePorts {
		reg, dat = strconv.Itoa(ctx.Config.Reg), strconv.Itoa(ctx.Config.Dat)
	}

	outcome := rewrite.Replace(ctx.State, stmt.Expand(
		"OUT "+reg+","+strconv.Itoa(poke.Offset),
		"OUT "+dat+","+poke.Value,
	)...)

	if ctx.Config.WarnOutOfRange && poke.Offset > sidLastRegister {
		outcome.Warnings = append(outcome.Warnings, ctx.Warn(r.ID(),
			fmt.Sprintf("SID register offset %d is outside 0-%d", poke.Offset, sidLastRegister)))
	}

	return outcome, nil
}
