package analysis

import (
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by changed line count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha
}

// Options configures the Analyze function.
type Options struct {
	// IncludeByFile includes the per-file analysis.
	IncludeByFile bool

	// IncludeByRule includes the per-rule analysis.
	IncludeByRule bool

	// SortBy specifies how to sort ByFile and ByRule.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// RuleFormat controls how rule identifiers appear.
	RuleFormat config.RuleFormat

	// Registry resolves rule IDs to names. Nil means rewrite.DefaultRegistry.
	Registry *rewrite.Registry

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        SortByCount,
		SortDesc:      true,
		RuleFormat:    config.RuleFormatName,
	}
}
