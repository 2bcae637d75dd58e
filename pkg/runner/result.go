package runner

// FileOutcome pairs a discovered source with its conversion result.
type FileOutcome struct {
	// Path is the source path that was processed.
	Path string

	// Result is nil if the file could not be converted.
	Result *FileResult

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesSkipped is the number of files that were not listings.
	FilesSkipped int

	// FilesErrored is the number of files that failed to parse, convert or write.
	FilesErrored int

	// FilesChanged is the number of converted files with at least one rewritten line.
	FilesChanged int

	// FilesWritten is the number of output files written.
	FilesWritten int

	// LinesChanged is the total number of rewritten lines.
	LinesChanged int

	// Warnings is the total number of warnings.
	Warnings int

	// RuleCounts maps rule IDs to the number of lines they rewrote.
	RuleCounts map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasWarnings reports whether any warning was raised.
func (r *Result) HasWarnings() bool {
	return r != nil && r.Stats.Warnings > 0
}

func newStats() Stats {
	return Stats{RuleCounts: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	fr := outcome.Result
	if fr == nil {
		return
	}
	if fr.Skipped {
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesConverted++
	if fr.Written {
		r.Stats.FilesWritten++
	}
	if fr.Program == nil {
		return
	}

	if len(fr.Program.Changes) > 0 {
		r.Stats.FilesChanged++
	}
	r.Stats.LinesChanged += len(fr.Program.Changes)
	r.Stats.Warnings += len(fr.Program.Warnings)
	for id, n := range fr.Program.RuleCounts() {
		r.Stats.RuleCounts[id] += n
	}
}

// NewResult builds a Result from outcomes produced outside Run, such as a
// single file converted with Converter.ConvertFile.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}
