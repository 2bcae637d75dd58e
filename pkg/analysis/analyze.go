// Package analysis turns a runner result into the views shared by every
// report format.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
	"github.com/yaklabco/sidconv/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts path to a path relative to workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return path
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	opts      Options
	registry  *rewrite.Registry
	ruleMap   map[string]*RuleAnalysis
	ruleFiles map[string]map[string]bool
	files     []FileAnalysis
}

func newAnalysisContext(opts Options) *analysisContext {
	registry := opts.Registry
	if registry == nil {
		registry = rewrite.DefaultRegistry
	}
	return &analysisContext{
		opts:      opts,
		registry:  registry,
		ruleMap:   make(map[string]*RuleAnalysis),
		ruleFiles: make(map[string]map[string]bool),
	}
}

// ruleName returns the registered name of a rule, or "" if unknown.
func (ctx *analysisContext) ruleName(id string) string {
	if rule, ok := ctx.registry.Get(id); ok {
		return rule.Name()
	}
	return ""
}

// display formats a rule identifier per Options.RuleFormat.
func (ctx *analysisContext) display(id string) string {
	return config.FormatRuleID(ctx.opts.RuleFormat, id, ctx.ruleName(id))
}

// getOrCreateRuleAnalysis returns existing or creates new RuleAnalysis.
func (ctx *analysisContext) getOrCreateRuleAnalysis(id string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[id]; !ok {
		ctx.ruleMap[id] = &RuleAnalysis{RuleID: id, RuleName: ctx.ruleName(id)}
		ctx.ruleFiles[id] = make(map[string]bool)
	}
	return ctx.ruleMap[id]
}

// Analyze transforms a runner.Result into a Report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Files:     []FileEntry{},
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext(opts)

	for _, outcome := range result.Files {
		entry := ctx.fileEntry(outcome)
		report.Files = append(report.Files, entry)
		report.Totals.add(entry)
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule()
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile()
	}

	return report
}

// fileEntry builds the entry of one file and feeds the per-rule and
// per-file views.
func (ctx *analysisContext) fileEntry(outcome runner.FileOutcome) FileEntry {
	path := makeRelativePath(outcome.Path, ctx.opts.WorkingDir)
	entry := FileEntry{
		Path:     path,
		Changes:  []ChangeEntry{},
		Warnings: []WarningEntry{},
	}

	if outcome.Error != nil {
		entry.Status = StatusError
		entry.Error = outcome.Error.Error()
		return entry
	}

	fr := outcome.Result
	if fr == nil {
		entry.Status = StatusError
		return entry
	}

	if fr.Output != "" {
		entry.Output = makeRelativePath(fr.Output, ctx.opts.WorkingDir)
	}
	entry.Original = fr.Original
	entry.Converted = fr.Converted
	entry.Written = fr.Written
	entry.BackupCreated = fr.BackupCreated

	if fr.Skipped {
		entry.Status = StatusSkipped
		entry.Reason = fr.SkipReason
		return entry
	}

	entry.Status = StatusUnchanged
	if fr.Changed() {
		entry.Status = StatusConverted
	}

	prog := fr.Program
	if prog == nil {
		return entry
	}

	if prog.Header != nil {
		entry.Header = &HeaderEntry{
			Line:   prog.Header.Number,
			Text:   prog.Header.String(),
			Merged: prog.HeaderMerged,
		}
	}

	fileRules := make(map[string]bool)

	for _, change := range prog.Changes {
		rules := make([]string, 0, len(change.Rules))
		for _, id := range change.Rules {
			rules = append(rules, ctx.display(id))
			fileRules[id] = true

			ra := ctx.getOrCreateRuleAnalysis(id)
			ra.Lines++
			ctx.ruleFiles[id][path] = true
		}
		entry.Changes = append(entry.Changes, ChangeEntry{
			Line:   change.Line,
			Source: change.Source,
			Before: change.Before,
			After:  change.After,
			Rules:  rules,
		})
	}

	for _, warning := range prog.Warnings {
		fileRules[warning.RuleID] = true

		ra := ctx.getOrCreateRuleAnalysis(warning.RuleID)
		ra.Warnings++
		ctx.ruleFiles[warning.RuleID][path] = true

		entry.Warnings = append(entry.Warnings, WarningEntry{
			FilePath: path,
			Line:     warning.Line,
			Source:   warning.Source,
			Rule:     ctx.display(warning.RuleID),
			Message:  warning.Message,
		})
	}

	if len(entry.Changes) > 0 || len(entry.Warnings) > 0 {
		fa := FileAnalysis{
			Path:     path,
			Lines:    len(entry.Changes),
			Warnings: len(entry.Warnings),
		}
		for id := range fileRules {
			fa.Rules = append(fa.Rules, ctx.display(id))
		}
		slices.Sort(fa.Rules)
		ctx.files = append(ctx.files, fa)
	}

	return entry
}

// add counts one file entry.
func (t *Totals) add(entry FileEntry) {
	t.Files++
	switch entry.Status {
	case StatusConverted:
		t.Converted++
	case StatusUnchanged:
		t.Unchanged++
	case StatusSkipped:
		t.Skipped++
	case StatusError:
		t.Errored++
	}
	if entry.Written {
		t.Written++
	}
	t.LinesChanged += len(entry.Changes)
	t.Warnings += len(entry.Warnings)
}

// buildByRule constructs the ByRule slice from accumulated data.
func (ctx *analysisContext) buildByRule() []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for id, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[id] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, ctx.opts.SortBy, ctx.opts.SortDesc)
	return result
}

// buildByFile returns the files with changes or warnings.
func (ctx *analysisContext) buildByFile() []FileAnalysis {
	result := slices.Clone(ctx.files)
	sortFileAnalysis(result, ctx.opts.SortBy, ctx.opts.SortDesc)
	return result
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		if sortBy != SortByAlpha {
			result := cmp.Compare(left.Lines+left.Warnings, right.Lines+right.Warnings)
			if desc {
				result = -result
			}
			if result != 0 {
				return result
			}
		}
		// Alphabetical order is always ascending and breaks count ties.
		return cmp.Compare(left.RuleID, right.RuleID)
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		if sortBy != SortByAlpha {
			result := cmp.Compare(left.Lines+left.Warnings, right.Lines+right.Warnings)
			if desc {
				result = -result
			}
			if result != 0 {
				return result
			}
		}
		return cmp.Compare(left.Path, right.Path)
	})
}
