package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldOutDir     = "out_dir"
	FieldWorkingDir = "working_dir"
	FieldBackup     = "backup"
	FieldDuration   = "duration"
	FieldReason     = "reason"
	FieldLanguage   = "language"

	// Configuration fields.
	FieldConfig        = "config"
	FieldScreenProfile = "screen_profile"
	FieldDryRun        = "dry_run"
	FieldJobs          = "jobs"

	// Conversion fields.
	FieldLine     = "line"
	FieldLines    = "lines"
	FieldChanged  = "changed"
	FieldWarnings = "warnings"
	FieldHeader   = "header"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesWritten    = "files_written"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldName        = "name"
	FieldPhase       = "phase"
	FieldEnabled     = "enabled"
	FieldDescription = "description"
)
