package rewrite

import (
	"context"
	"fmt"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
)

// Change records one rewritten line.
type Change struct {
	// Line is the BASIC line number.
	Line int

	// Source is the 1-based line index in the input file.
	Source int

	// Before is the original line text.
	Before string

	// After is the rewritten line text.
	After string

	// Rules lists the IDs of the rules that fired, in firing order.
	Rules []string
}

// LineResult is the outcome of rewriting one line.
type LineResult struct {
	// Line is the rewritten line.
	Line basic.Line

	// Rules lists the IDs of the rules that fired on this line.
	Rules []string

	// Warnings are advisory findings raised on this line.
	Warnings []Warning
}

// Changed returns true if any rule rewrote the line.
func (lr *LineResult) Changed() bool {
	return len(lr.Rules) > 0
}

// ProgramResult is the outcome of a full conversion pass.
type ProgramResult struct {
	// Lines is the converted program, header included.
	Lines []basic.Line

	// Header is the header line, or nil if none was emitted.
	Header *basic.Line

	// HeaderMerged is true if the header was merged into an existing line 0.
	HeaderMerged bool

	// Warnings holds every warning in program order.
	Warnings []Warning

	// Changes lists the rewritten lines in program order.
	Changes []Change

	// State is the program state at the end of the pass.
	State State

	// Newline is the line terminator used for output.
	Newline string
}

// Bytes renders the converted program.
func (r *ProgramResult) Bytes() []byte {
	return basic.Format(r.Lines, r.Newline)
}

// RuleCounts returns how many lines each rule rewrote.
func (r *ProgramResult) RuleCounts() map[string]int {
	counts := make(map[string]int)
	for _, c := range r.Changes {
		for _, id := range c.Rules {
			counts[id]++
		}
	}
	return counts
}

// Engine applies the enabled rules of a registry to programs.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry

	// Config is the read-only configuration for every pass.
	Config *config.Config

	statementRules  []Rule
	expressionRules []Rule
}

// NewEngine creates an Engine for the given registry and configuration.
func NewEngine(registry *Registry, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	stmtRules, exprRules := registry.Resolve(cfg)
	return &Engine{
		Registry:        registry,
		Config:          cfg,
		statementRules:  stmtRules,
		expressionRules: exprRules,
	}
}

// RewriteLine rewrites a single line given the state accumulated so far
// and returns the state after the line.
func (e *Engine) RewriteLine(ctx context.Context, state State, line basic.Line) (LineResult, State, error) {
	result := LineResult{Line: line}
	ruleCtx := &Context{Ctx: ctx, Config: e.Config, Line: line}

	out := make([]basic.Statement, 0, len(line.Statements))

	for _, stmt := range line.Statements {
		if stmt.IsRemark() {
			out = append(out, stmt)
			continue
		}

		// Statement phase: first match wins.
		current := []basic.Statement{stmt}
		for _, rule := range e.statementRules {
			ruleCtx.State = state
			outcome, err := rule.Apply(ruleCtx, stmt)
			if err != nil {
				return result, state, fmt.Errorf("rule %s on line %d: %w", rule.ID(), line.Number, err)
			}
			result.Warnings = append(result.Warnings, outcome.Warnings...)
			if outcome.Matched {
				current = outcome.Statements
				state = outcome.State
				result.Rules = appendOnce(result.Rules, rule.ID())
				break
			}
		}

		// Expression phase: each rule sees the previous rule's output.
		for _, rule := range e.expressionRules {
			next := make([]basic.Statement, 0, len(current))
			for _, s := range current {
				ruleCtx.State = state
				outcome, err := rule.Apply(ruleCtx, s)
				if err != nil {
					return result, state, fmt.Errorf("rule %s on line %d: %w", rule.ID(), line.Number, err)
				}
				result.Warnings = append(result.Warnings, outcome.Warnings...)
				if !outcome.Matched {
					next = append(next, s)
					continue
				}
				next = append(next, outcome.Statements...)
				state = outcome.State
				result.Rules = appendOnce(result.Rules, rule.ID())
			}
			current = next
		}

		out = append(out, current...)
	}

	if len(result.Rules) > 0 {
		result.Line = line.Clone()
		result.Line.Statements = out
	}

	return result, state, nil
}

// Rewrite converts a whole program in a single forward pass and adds the
// header line.
func (e *Engine) Rewrite(ctx context.Context, prog *basic.Program) (*ProgramResult, error) {
	result := &ProgramResult{
		Lines:   make([]basic.Line, 0, len(prog.Lines)+1),
		Newline: prog.Newline(),
	}

	state := State{}
	for _, line := range prog.Lines {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("rewrite cancelled: %w", ctx.Err())
		default:
		}

		lr, next, err := e.RewriteLine(ctx, state, line)
		if err != nil {
			return nil, err
		}
		state = next

		result.Lines = append(result.Lines, lr.Line)
		result.Warnings = append(result.Warnings, lr.Warnings...)
		if lr.Changed() {
			result.Changes = append(result.Changes, Change{
				Line:   line.Number,
				Source: line.Index,
				Before: line.String(),
				After:  lr.Line.String(),
				Rules:  lr.Rules,
			})
		}
	}
	result.State = state

	if err := e.insertHeader(prog, result); err != nil {
		return nil, err
	}

	return result, nil
}

func appendOnce(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
