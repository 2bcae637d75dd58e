package analysis

import "time"

// FileStatus classifies what happened to one input file.
type FileStatus string

const (
	// StatusConverted means at least one line was rewritten or a header added.
	StatusConverted FileStatus = "converted"
	// StatusUnchanged means the conversion produced the input unchanged.
	StatusUnchanged FileStatus = "unchanged"
	// StatusSkipped means the file was not a line-numbered listing.
	StatusSkipped FileStatus = "skipped"
	// StatusError means the file could not be converted.
	StatusError FileStatus = "error"
)

// Report contains pre-computed views of a conversion run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Files lists every processed file in path order.
	Files []FileEntry `json:"files"`

	// ByFile lists the files with changes or warnings, sorted per Options.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups rewritten lines by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FileEntry is the report of one file.
type FileEntry struct {
	Path   string     `json:"path"`
	Output string     `json:"output,omitempty"`
	Status FileStatus `json:"status"`

	// Reason explains a skip.
	Reason string `json:"reason,omitempty"`

	// Error is the conversion error message.
	Error string `json:"error,omitempty"`

	Header   *HeaderEntry   `json:"header,omitempty"`
	Changes  []ChangeEntry  `json:"changes"`
	Warnings []WarningEntry `json:"warnings"`

	Written       bool `json:"written"`
	BackupCreated bool `json:"backupCreated,omitempty"`

	// Original and Converted feed the diff renderer.
	Original  []byte `json:"-"`
	Converted []byte `json:"-"`
}

// HeaderEntry describes the initialization line added to the program.
type HeaderEntry struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Merged bool   `json:"merged,omitempty"`
}

// ChangeEntry is one rewritten line.
type ChangeEntry struct {
	Line   int      `json:"line"`
	Source int      `json:"sourceLine"`
	Before string   `json:"before"`
	After  string   `json:"after"`
	Rules  []string `json:"rules"`
}

// WarningEntry is one advisory finding.
type WarningEntry struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Source   int    `json:"sourceLine"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files        int `json:"files"`
	Converted    int `json:"converted"`
	Unchanged    int `json:"unchanged"`
	Skipped      int `json:"skipped"`
	Errored      int `json:"errored"`
	Written      int `json:"written"`
	LinesChanged int `json:"linesChanged"`
	Warnings     int `json:"warnings"`
}

// HasChanges returns true if any file was converted.
func (t Totals) HasChanges() bool {
	return t.Converted > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.Errored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Lines    int      `json:"linesChanged"`
	Warnings int      `json:"warnings"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Lines    int      `json:"linesChanged"`
	Warnings int      `json:"warnings"`
	Files    []string `json:"files,omitempty"`
}
