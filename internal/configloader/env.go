package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/sidconv/pkg/config"
)

// envVarPrefix is the prefix for all sidconv environment variables.
const envVarPrefix = "SIDCONV_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
	envTypeSlice
)

// envMapping ties an option key to its value type and description.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings lists the options that can be set from the environment.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{field: keyReg, typ: envTypeInt, help: "SID register-select port (0-255)"},
	{field: keyDat, typ: envTypeInt, help: "SID data port (0-255)"},
	{field: keyWarnOutOfRange, typ: envTypeBool, help: "Warn about SID offsets outside 0-24: true or false"},
	{field: keyScaleFor, typ: envTypeFloat, help: "Delay loop scale factor (0 disables)"},
	{field: keyScaleForVars, typ: envTypeSlice, help: "Comma-separated delay loop variables"},
	{field: keyScreenProfile, typ: envTypeString, help: "Screen profile: none, ansi, or ansi-helpers"},
	{field: keyInjectANSIHelpers, typ: envTypeBool, help: "Define ANSI helper variables in the header: true or false"},
	{field: keyMapGetToInkey, typ: envTypeBool, help: "Rewrite GET X$ as X$=INKEY$: true or false"},
	{field: keyUnknownPETSCII, typ: envTypeString, help: "Unmapped PETSCII codes: leave, strip, or warn"},
	{field: keyHeaderFallback, typ: envTypeString, help: "Header when line 0 is taken: error or merge"},
	{field: keyInlinePorts, typ: envTypeBool, help: "Write port numbers instead of REG/DAT: true or false"},
	{field: keyBackupsEnabled, typ: envTypeBool, help: "Back up overwritten outputs: true or false"},
	{field: keyBackupsMode, typ: envTypeString, help: "Backup mode: sidecar or none"},
	{field: keyDryRun, typ: envTypeBool, help: "Dry-run mode: true or false"},
	{field: keyFormat, typ: envTypeString, help: "Report format: text, table, json, diff, or summary"},
	{field: keyRuleFormat, typ: envTypeString, help: "Rule identifiers in reports: name, id, or combined"},
	{field: keyJobs, typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	{field: keyNoBackups, typ: envTypeBool, help: "Disable backups: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SIDCONV_ (e.g., SIDCONV_REG).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, mapping := range envMappings {
		envVar := GetEnvVarName(mapping.field)
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, f)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case keyScreenProfile:
		cfg.ScreenProfile = config.ScreenProfile(value)
	case keyUnknownPETSCII:
		cfg.UnknownPETSCII = config.PETSCIIPolicy(value)
	case keyHeaderFallback:
		cfg.HeaderFallback = config.HeaderFallback(value)
	case keyBackupsMode:
		cfg.Backups.Mode = value
	case keyFormat:
		cfg.Format = config.OutputFormat(value)
	case keyRuleFormat:
		cfg.RuleFormat = config.RuleFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case keyWarnOutOfRange:
		cfg.WarnOutOfRange = value
	case keyInjectANSIHelpers:
		cfg.InjectANSIHelpers = value
	case keyMapGetToInkey:
		cfg.MapGetToInkey = value
	case keyInlinePorts:
		cfg.InlinePorts = value
	case keyBackupsEnabled:
		cfg.Backups.Enabled = value
	case keyDryRun:
		cfg.DryRun = value
	case keyNoBackups:
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case keyReg:
		cfg.Reg = value
	case keyDat:
		cfg.Dat = value
	case keyJobs:
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setFloatField sets a floating-point field on the config by field path.
func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case keyScaleFor:
		cfg.ScaleFor = value
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case keyScaleForVars:
		cfg.ScaleForVars = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	return envVarPrefix + strings.ToUpper(strings.ReplaceAll(field, ".", "_"))
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, mapping := range envMappings {
		vars[GetEnvVarName(mapping.field)] = mapping.help
	}
	return vars
}
