// Package config defines core configuration types for sidconv.
// These types are pure data structures with no dependency on how they are loaded.
package config

// Default port numbers of the SID card's register-select and data ports.
const (
	DefaultRegPort = 212
	DefaultDatPort = 213
)

// SIDBase is the C64 address of the first SID register.
const SIDBase = 54272

// ScreenProfile selects how PETSCII screen-control CHR$ calls are rewritten.
type ScreenProfile string

const (
	// ScreenNone leaves CHR$ calls alone.
	ScreenNone ScreenProfile = "none"
	// ScreenANSI replaces CHR$ calls with literal ANSI escape strings.
	ScreenANSI ScreenProfile = "ansi"
	// ScreenANSIHelpers replaces CHR$ calls with helper string variables.
	ScreenANSIHelpers ScreenProfile = "ansi-helpers"
)

// IsValid returns true if the profile is known.
func (p ScreenProfile) IsValid() bool {
	switch p {
	case ScreenNone, ScreenANSI, ScreenANSIHelpers:
		return true
	default:
		return false
	}
}

// PETSCIIPolicy controls CHR$ calls of control codes with no screen mapping.
type PETSCIIPolicy string

const (
	PETSCIILeave PETSCIIPolicy = "leave"
	PETSCIIStrip PETSCIIPolicy = "strip"
	// PETSCIIWarn is reserved; it currently behaves exactly like PETSCIILeave.
	PETSCIIWarn PETSCIIPolicy = "warn"
)

// IsValid returns true if the policy is known.
func (p PETSCIIPolicy) IsValid() bool {
	switch p {
	case PETSCIILeave, PETSCIIStrip, PETSCIIWarn:
		return true
	default:
		return false
	}
}

// HeaderFallback decides what happens when the program already starts at
// line 0 and the header has no free line number.
type HeaderFallback string

const (
	// HeaderFallbackError aborts the conversion.
	HeaderFallbackError HeaderFallback = "error"
	// HeaderFallbackMerge prepends the header statements to line 0.
	HeaderFallbackMerge HeaderFallback = "merge"
)

// IsValid returns true if the fallback is known.
func (f HeaderFallback) IsValid() bool {
	return f == HeaderFallbackError || f == HeaderFallbackMerge
}

// OutputFormat specifies the report format.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// BackupsConfig controls backups of output files that are overwritten.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for sidconv.
type Config struct {
	// Reg is the SID register-select port.
	Reg int `mapstructure:"reg" yaml:"reg"`

	// Dat is the SID data port.
	Dat int `mapstructure:"dat" yaml:"dat"`

	// WarnOutOfRange reports SID offsets outside 0-24.
	WarnOutOfRange bool `mapstructure:"warn_out_of_range" yaml:"warn_out_of_range"`

	// ScaleFor multiplies the bound of delay loops; 0 disables scaling.
	ScaleFor float64 `mapstructure:"scale_for" yaml:"scale_for"`

	// ScaleForVars are the loop variables treated as delay counters.
	ScaleForVars []string `mapstructure:"scale_for_vars" yaml:"scale_for_vars"`

	// ScreenProfile selects the CHR$ rewrite style.
	ScreenProfile ScreenProfile `mapstructure:"screen_profile" yaml:"screen_profile"`

	// InjectANSIHelpers emits helper variable definitions in the header.
	InjectANSIHelpers bool `mapstructure:"inject_ansi_helpers" yaml:"inject_ansi_helpers"`

	// MapGetToInkey rewrites GET X$ into X$=INKEY$.
	MapGetToInkey bool `mapstructure:"map_get_to_inkey" yaml:"map_get_to_inkey"`

	// UnknownPETSCII is the policy for unmapped control codes.
	UnknownPETSCII PETSCIIPolicy `mapstructure:"unknown_petscii" yaml:"unknown_petscii"`

	// HeaderFallback applies when line 0 is already taken.
	HeaderFallback HeaderFallback `mapstructure:"header_fallback" yaml:"header_fallback"`

	// InlinePorts writes port numbers into OUT statements instead of REG/DAT.
	InlinePorts bool `mapstructure:"inline_ports" yaml:"inline_ports"`

	// Backups configures backups of overwritten output files.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun converts and reports without writing any output file.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the report format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers for batch conversion.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// DefaultScaleForVars returns the loop variables scaled by default.
func DefaultScaleForVars() []string {
	return []string{"T", "W", "DELAY", "D"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Reg:            DefaultRegPort,
		Dat:            DefaultDatPort,
		ScaleForVars:   DefaultScaleForVars(),
		ScreenProfile:  ScreenANSI,
		UnknownPETSCII: PETSCIILeave,
		HeaderFallback: HeaderFallbackError,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use NumCPU
	}
}

// ScalingEnabled reports whether delay loops are rescaled.
func (c *Config) ScalingEnabled() bool {
	return c.ScaleFor > 0
}
