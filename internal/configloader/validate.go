package configloader

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/yaklabco/sidconv/pkg/config"
)

// maxPort is the highest Z80 I/O port number reachable with OUT.
const maxPort = 255

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the option key of the invalid field (e.g., "screen_profile").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., options with no effect).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// loopVarPattern matches a BASIC numeric variable name.
//
//nolint:gochecknoglobals // Compiled once.
var loopVarPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatTable:   true,
	config.FormatJSON:    true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	validatePort(keyReg, cfg.Reg, fail)
	validatePort(keyDat, cfg.Dat, fail)

	if !cfg.ScreenProfile.IsValid() {
		fail(keyScreenProfile, cfg.ScreenProfile,
			"invalid screen profile %q; must be one of: none, ansi, ansi-helpers", cfg.ScreenProfile)
	}

	if !cfg.UnknownPETSCII.IsValid() {
		fail(keyUnknownPETSCII, cfg.UnknownPETSCII,
			"invalid policy %q; must be one of: leave, strip, warn", cfg.UnknownPETSCII)
	}

	if !cfg.HeaderFallback.IsValid() {
		fail(keyHeaderFallback, cfg.HeaderFallback,
			"invalid header fallback %q; must be one of: error, merge", cfg.HeaderFallback)
	}

	if cfg.ScaleFor < 0 || math.IsNaN(cfg.ScaleFor) || math.IsInf(cfg.ScaleFor, 0) {
		fail(keyScaleFor, cfg.ScaleFor, "scale factor must be a finite number >= 0 (0 disables scaling)")
	}

	for i, name := range cfg.ScaleForVars {
		if !loopVarPattern.MatchString(name) {
			fail(fmt.Sprintf("%s[%d]", keyScaleForVars, i), name,
				"invalid loop variable %q; must be a letter followed by letters or digits", name)
		}
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		fail(keyFormat, cfg.Format,
			"invalid format %q; must be one of: text, table, json, diff, summary", cfg.Format)
	}

	if cfg.RuleFormat != "" && !cfg.RuleFormat.Valid() {
		fail(keyRuleFormat, cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}

	if cfg.Jobs < 0 {
		fail(keyJobs, cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		fail(keyBackupsMode, cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateCombinations(cfg, result)

	return result
}

func validatePort(field string, port int, fail func(string, any, string, ...any)) {
	if port < 0 || port > maxPort {
		fail(field, port, "port %d is outside 0-%d", port, maxPort)
	}
}

// validateCombinations warns about options that have no effect together.
func validateCombinations(cfg *config.Config, result *ValidationResult) {
	if cfg.Reg == cfg.Dat {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   keyDat,
			Value:   cfg.Dat,
			Message: fmt.Sprintf("reg and dat both use port %d", cfg.Dat),
		})
	}

	if cfg.InjectANSIHelpers && cfg.ScreenProfile != config.ScreenANSIHelpers {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   keyInjectANSIHelpers,
			Value:   true,
			Message: "has no effect unless screen_profile is ansi-helpers",
		})
	}

	if len(cfg.ScaleForVars) == 0 && cfg.ScalingEnabled() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   keyScaleForVars,
			Message: "scale_for is set but no loop variables are listed",
		})
	}
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
