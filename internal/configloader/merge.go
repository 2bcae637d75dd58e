package configloader

import "github.com/yaklabco/sidconv/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Only the options named in fields are copied from override. A nil fields
// list means every option holding a non-zero value in override, which is how
// programmatic overrides are expressed. Explicit field lists let a file or a
// flag set an option back to its zero value (e.g. backups.enabled: false).
func merge(base, override *config.Config, fields []string) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base
	}

	if fields == nil {
		fields = nonZeroFields(override)
	}

	result := base.Clone()
	for _, field := range fields {
		applyField(result, override, field)
	}
	return result
}

// applyField copies a single option from src to dst.
// It returns false for unknown keys.
func applyField(dst, src *config.Config, key string) bool {
	switch key {
	case keyReg:
		dst.Reg = src.Reg
	case keyDat:
		dst.Dat = src.Dat
	case keyWarnOutOfRange:
		dst.WarnOutOfRange = src.WarnOutOfRange
	case keyScaleFor:
		dst.ScaleFor = src.ScaleFor
	case keyScaleForVars:
		dst.ScaleForVars = append([]string(nil), src.ScaleForVars...)
	case keyScreenProfile:
		dst.ScreenProfile = src.ScreenProfile
	case keyInjectANSIHelpers:
		dst.InjectANSIHelpers = src.InjectANSIHelpers
	case keyMapGetToInkey:
		dst.MapGetToInkey = src.MapGetToInkey
	case keyUnknownPETSCII:
		dst.UnknownPETSCII = src.UnknownPETSCII
	case keyHeaderFallback:
		dst.HeaderFallback = src.HeaderFallback
	case keyInlinePorts:
		dst.InlinePorts = src.InlinePorts
	case keyBackupsEnabled:
		dst.Backups.Enabled = src.Backups.Enabled
	case keyBackupsMode:
		dst.Backups.Mode = src.Backups.Mode
	case keyDryRun:
		dst.DryRun = src.DryRun
	case keyFormat:
		dst.Format = src.Format
	case keyRuleFormat:
		dst.RuleFormat = src.RuleFormat
	case keyJobs:
		dst.Jobs = src.Jobs
	case keyNoBackups:
		dst.NoBackups = src.NoBackups
	default:
		return false
	}
	return true
}

// nonZeroFields lists the options of cfg that hold a non-zero value.
func nonZeroFields(cfg *config.Config) []string {
	var fields []string
	add := func(set bool, key string) {
		if set {
			fields = append(fields, key)
		}
	}

	add(cfg.Reg != 0, keyReg)
	add(cfg.Dat != 0, keyDat)
	add(cfg.WarnOutOfRange, keyWarnOutOfRange)
	add(cfg.ScaleFor != 0, keyScaleFor)
	add(cfg.ScaleForVars != nil, keyScaleForVars)
	add(cfg.ScreenProfile != "", keyScreenProfile)
	add(cfg.InjectANSIHelpers, keyInjectANSIHelpers)
	add(cfg.MapGetToInkey, keyMapGetToInkey)
	add(cfg.UnknownPETSCII != "", keyUnknownPETSCII)
	add(cfg.HeaderFallback != "", keyHeaderFallback)
	add(cfg.InlinePorts, keyInlinePorts)
	add(cfg.Backups.Enabled, keyBackupsEnabled)
	add(cfg.Backups.Mode != "", keyBackupsMode)
	add(cfg.DryRun, keyDryRun)
	add(cfg.Format != "", keyFormat)
	add(cfg.RuleFormat != "", keyRuleFormat)
	add(cfg.Jobs != 0, keyJobs)
	add(cfg.NoBackups, keyNoBackups)

	return fields
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence. Each override contributes its non-zero options.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i], nil)
	}
	return result
}
