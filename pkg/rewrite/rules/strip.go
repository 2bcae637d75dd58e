package rules

import (
	"strings"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/petscii"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// PETSCIIStripRule removes CHR$ calls of control codes that have no ANSI
// equivalent, together with the operator that joined them to their
// neighbours.
type PETSCIIStripRule struct {
	rewrite.BaseRule
}

// NewPETSCIIStripRule creates a new petscii-strip rule.
func NewPETSCIIStripRule() *PETSCIIStripRule {
	return &PETSCIIStripRule{
		BaseRule: rewrite.NewBaseRule(
			"SC011",
			"petscii-strip",
			"CHR$ of unmapped PETSCII control codes are removed",
			rewrite.PhaseExpression,
		),
	}
}

// Enabled returns true when the unknown PETSCII policy is "strip".
func (r *PETSCIIStripRule) Enabled(cfg *config.Config) bool {
	return cfg.UnknownPETSCII == config.PETSCIIStrip
}

// Apply removes every unmapped control CHR$ call from the statement.
func (r *PETSCIIStripRule) Apply(ctx *rewrite.Context, stmt basic.Statement) (rewrite.Outcome, error) {
	tokens := basic.Tokenize(string(stmt))
	inPrint := isPrintStatement(stmt.Trimmed())
	changed := false

	for {
		i := indexStrippable(tokens)
		if i < 0 {
			break
		}
		tokens = stripCall(tokens, i, inPrint)
		changed = true
	}

	if !changed {
		return rewrite.NoMatch(), nil
	}
	return rewrite.Replace(ctx.State, basic.Statement(basic.Join(tokens))), nil
}

func isPrintStatement(text string) bool {
	return basic.HasKeyword(text, "PRINT") || strings.HasPrefix(text, "?")
}

func indexStrippable(tokens []basic.Token) int {
	for i, tok := range tokens {
		if tok.Kind == basic.TokenChr && petscii.IsUnmappedControl(tok.Code) {
			return i
		}
	}
	return -1
}

// stripCall removes the CHR$ call at index i. The joining operator goes
// with it: a "+" on either side, or in PRINT a ";" after or before it.
// A ";" ending the PRINT list suppresses the newline and is kept.
// A call that stands alone as the PRINT argument is dropped, and anything
// else is replaced by the empty string, which keeps "," print zones intact.
func stripCall(tokens []basic.Token, i int, inPrint bool) []basic.Token {
	prev, next := neighbour(tokens, i, -1), neighbour(tokens, i, 1)

	switch {
	case prev >= 0 && tokens[prev].IsOp("+"):
		return cut(tokens, prev, i)
	case next >= 0 && tokens[next].IsOp("+"):
		return cut(tokens, i, trailingSpace(tokens, next))
	case inPrint && next >= 0 && tokens[next].IsOp(";") && neighbour(tokens, next, 1) < 0:
		if prev >= 0 && tokens[prev].IsOp(";") {
			return cut(tokens, prev, i)
		}
		return cut(tokens, i, i)
	case inPrint && next >= 0 && tokens[next].IsOp(";"):
		return cut(tokens, i, trailingSpace(tokens, next))
	case inPrint && prev >= 0 && next < 0 && tokens[prev].IsOp(";"):
		return cut(tokens, prev, i)
	case inPrint && next < 0 && isPrintKeyword(tokens, prev):
		start := i
		if i > 0 && tokens[i-1].Kind == basic.TokenSpace {
			start = i - 1
		}
		return cut(tokens, start, i)
	}

	tokens[i] = basic.Token{Kind: basic.TokenString, Text: `""`}
	return tokens
}

// neighbour returns the index of the nearest non-space token from i in
// direction dir, or -1.
func neighbour(tokens []basic.Token, i, dir int) int {
	for j := i + dir; j >= 0 && j < len(tokens); j += dir {
		if tokens[j].Kind != basic.TokenSpace {
			return j
		}
	}
	return -1
}

// trailingSpace extends an end index over blanks that follow it, so that
// removing "CHR$(1); " from `PRINT CHR$(1); "A"` leaves no double blank.
func trailingSpace(tokens []basic.Token, end int) int {
	if end+1 < len(tokens) && tokens[end+1].Kind == basic.TokenSpace {
		return end + 1
	}
	return end
}

func isPrintKeyword(tokens []basic.Token, i int) bool {
	if i < 0 || tokens[i].Kind != basic.TokenText {
		return false
	}
	text := strings.TrimSpace(tokens[i].Text)
	return strings.EqualFold(text, "PRINT") || text == "?"
}

// cut removes tokens[start..end] inclusive.
func cut(tokens []basic.Token, start, end int) []basic.Token {
	return append(tokens[:start:start], tokens[end+1:]...)
}
