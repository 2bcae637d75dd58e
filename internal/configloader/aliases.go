package configloader

import (
	"slices"
	"strings"
)

// Option keys as written in configuration files.
const (
	keyReg               = "reg"
	keyDat               = "dat"
	keyWarnOutOfRange    = "warn_out_of_range"
	keyScaleFor          = "scale_for"
	keyScaleForVars      = "scale_for_vars"
	keyScreenProfile     = "screen_profile"
	keyInjectANSIHelpers = "inject_ansi_helpers"
	keyMapGetToInkey     = "map_get_to_inkey"
	keyUnknownPETSCII    = "unknown_petscii"
	keyHeaderFallback    = "header_fallback"
	keyInlinePorts       = "inline_ports"
	keyBackups           = "backups"
	keyBackupsEnabled    = "backups.enabled"
	keyBackupsMode       = "backups.mode"

	// Run options: settable from the environment and flags, never from files.
	keyDryRun     = "dry_run"
	keyFormat     = "format"
	keyRuleFormat = "rule_format"
	keyJobs       = "jobs"
	keyNoBackups  = "no_backups"
)

// fileKeys lists the options accepted in configuration files, in the order
// they are documented.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fileKeys = []string{
	keyReg,
	keyDat,
	keyWarnOutOfRange,
	keyScaleFor,
	keyScaleForVars,
	keyScreenProfile,
	keyInjectANSIHelpers,
	keyMapGetToInkey,
	keyUnknownPETSCII,
	keyHeaderFallback,
	keyInlinePorts,
	keyBackupsEnabled,
	keyBackupsMode,
}

// runKeys lists the run options, which are recognised so a configuration
// file that sets one gets a precise warning.
//
//nolint:gochecknoglobals // Read-only lookup table.
var runKeys = []string{keyDryRun, keyFormat, keyRuleFormat, keyJobs, keyNoBackups}

// keyAliases maps alternative spellings to canonical option keys. The
// command-line flag names are accepted so a flag can be copied into a file
// unchanged.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keyAliases = map[string]string{
	"reg-port":        keyReg,
	"dat-port":        keyDat,
	"delay-scale":     keyScaleFor,
	"delay-vars":      keyScaleForVars,
	"screen":          keyScreenProfile,
	"ansi-helpers":    keyInjectANSIHelpers,
	"get-to-inkey":    keyMapGetToInkey,
	"petscii":         keyUnknownPETSCII,
	"backups-enabled": keyBackupsEnabled,
	"backups-mode":    keyBackupsMode,
	"backup.enabled":  keyBackupsEnabled,
	"backup.mode":     keyBackupsMode,
	"no-backups":      keyNoBackups,
	"dry-run":         keyDryRun,
	"rule-format":     keyRuleFormat,
}

// CanonicalKey resolves an option key or alias to its canonical form.
// Keys are matched case-insensitively and dashes are equivalent to
// underscores. The second result is false for unknown keys.
func CanonicalKey(key string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))

	if canonical, ok := keyAliases[normalized]; ok {
		return canonical, true
	}

	normalized = strings.ReplaceAll(normalized, "-", "_")
	if slices.Contains(fileKeys, normalized) || slices.Contains(runKeys, normalized) || normalized == keyBackups {
		return normalized, true
	}

	return "", false
}

// IsFileKey returns true if the canonical key may appear in a configuration file.
func IsFileKey(key string) bool {
	return slices.Contains(fileKeys, key)
}

// FileKeys returns the options accepted in configuration files.
func FileKeys() []string {
	return append([]string(nil), fileKeys...)
}
