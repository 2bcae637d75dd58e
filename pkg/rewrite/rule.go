// Package rewrite provides the statement rewrite engine, its rule registry,
// and the program state threaded through a conversion pass.
package rewrite

import (
	"context"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
)

// Phase orders rules within the processing of one statement.
type Phase int

const (
	// PhaseStatement rules classify a whole statement. The first one that
	// matches replaces the statement; the rest are not consulted.
	PhaseStatement Phase = iota

	// PhaseExpression rules edit sub-expressions. Each one runs over the
	// output of the statement phase and of the expression rules before it.
	PhaseExpression
)

// String returns the phase name shown by "sidconv rules".
func (p Phase) String() string {
	switch p {
	case PhaseStatement:
		return "statement"
	case PhaseExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// Warning is an advisory finding that does not alter the output.
type Warning struct {
	// Line is the BASIC line number.
	Line int

	// Source is the 1-based line index in the input file.
	Source int

	// RuleID identifies the rule that raised the warning.
	RuleID string

	// Message is the human-readable description.
	Message string
}

// Context carries everything a rule may consult while rewriting a statement.
type Context struct {
	// Ctx is the cancellation context of the pass.
	Ctx context.Context

	// Config is the read-only configuration of the pass.
	Config *config.Config

	// Line is the line being rewritten.
	Line basic.Line

	// State is the program state accumulated before this statement.
	State State
}

// Warn builds a warning attributed to the current line.
func (c *Context) Warn(ruleID, message string) Warning {
	return Warning{
		Line:    c.Line.Number,
		Source:  c.Line.Index,
		RuleID:  ruleID,
		Message: message,
	}
}

// Outcome is the result of applying a rule to one statement. The zero
// value means the rule did not match and the statement is unchanged.
type Outcome struct {
	// Matched is true if the rule recognized and rewrote the statement.
	Matched bool

	// Statements replaces the input statement. It may hold several
	// statements (a POKE becomes two OUTs).
	Statements []basic.Statement

	// State is the program state after the statement. Only meaningful
	// when Matched is true.
	State State

	// Warnings are advisory findings raised by the rule.
	Warnings []Warning
}

// NoMatch is the outcome of a rule that leaves the statement alone.
func NoMatch() Outcome {
	return Outcome{}
}

// Replace is the outcome of a rule that rewrites the statement.
func Replace(state State, stmts ...basic.Statement) Outcome {
	return Outcome{Matched: true, Statements: stmts, State: state}
}

// Rule defines the interface that all rewrite rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "SC002").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a short description of what the rule rewrites.
	Description() string

	// Phase returns when the rule runs.
	Phase() Phase

	// Enabled reports whether the rule is active under cfg.
	Enabled(cfg *config.Config) bool

	// Apply rewrites a single statement.
	//
	// Rules must:
	//   - Return NoMatch() for statements they do not recognize.
	//   - Never guess: anything not statically resolvable is left alone.
	//   - Return error only for internal failures.
	Apply(ctx *Context, stmt basic.Statement) (Outcome, error)
}

// BaseRule provides the descriptive half of the Rule interface.
// Embed this in rule implementations.
type BaseRule struct {
	id    string
	name  string
	desc  string
	phase Phase
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, phase Phase) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, phase: phase}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a short description of what the rule rewrites.
func (r *BaseRule) Description() string {
	return r.desc
}

// Phase returns when the rule runs.
func (r *BaseRule) Phase() Phase {
	return r.phase
}

// Enabled returns true. Override for optional rewrites.
func (r *BaseRule) Enabled(_ *config.Config) bool {
	return true
}
