// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/sidconv/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is loaded on top of the discovered files.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// CLIFields names the options of CLIConfig that were set on the
	// command line. Nil means every non-zero option of CLIConfig.
	CLIFields []string
}

// skippedSources lists the file layers the options turn off.
func (o LoadOptions) skippedSources() []Source {
	var skip []Source
	if o.IgnoreSystemConfig {
		skip = append(skip, SourceSystem)
	}
	if o.IgnoreUserConfig {
		skip = append(skip, SourceUser)
	}
	if o.IgnoreProjectConfig {
		skip = append(skip, SourceProject)
	}
	return skip
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// fileLayer is one configuration file decoded into a partial Config.
type fileLayer struct {
	// cfg holds the values read from the file; other fields stay zero.
	cfg *config.Config

	// fields names the options the file sets, in canonical form.
	fields []string

	// warnings are non-fatal findings such as unknown options.
	warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SIDCONV_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.sidconv.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/sidconv/config.yaml)
//  6. System config (/etc/sidconv/config.yaml)
//  7. Defaults
//
// An invalid final configuration is reported as a *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, file := range paths.Files(opts.skippedSources()...) {
		loaded, err := loadConfigFile(file.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", file.Source, err)
		}

		cfg = merge(cfg, loaded.cfg, loaded.fields)
		result.LoadedFrom = append(result.LoadedFrom, file.Path)
		result.Warnings = append(result.Warnings, loaded.warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig, opts.CLIFields)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a partial configuration from a YAML file.
func loadConfigFile(path string) (*fileLayer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return parseConfig(path, content)
}

// parseConfig decodes a YAML document option by option. Option names are
// resolved through CanonicalKey so aliases and flag spellings are accepted;
// nested and dotted forms of backups options are equivalent.
func parseConfig(path string, content []byte) (*fileLayer, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	layer := &fileLayer{cfg: &config.Config{}, fields: []string{}}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return layer, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return layer, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ValidationError{
			FilePath: path,
			Line:     root.Line,
			Message:  "configuration must be a mapping of option names to values",
		}
	}

	seen := make(map[string]string)
	if err := layer.decodeMapping(path, root, "", seen); err != nil {
		return nil, err
	}
	return layer, nil
}

// decodeMapping decodes the options of a mapping node into the layer.
func (l *fileLayer) decodeMapping(path string, mapping *yaml.Node, prefix string, seen map[string]string) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]

		name := keyNode.Value
		if prefix != "" {
			name = prefix + "." + name
		}

		canonical, ok := CanonicalKey(name)
		if !ok {
			l.warnings = append(l.warnings,
				fmt.Sprintf("%s:%d: unknown option %q; it will be ignored", path, keyNode.Line, name))
			continue
		}

		if canonical == keyBackups {
			if valueNode.Kind != yaml.MappingNode {
				return &ValidationError{
					FilePath: path,
					Line:     valueNode.Line,
					Field:    keyBackups,
					Message:  "must be a mapping with enabled and mode",
				}
			}
			if err := l.decodeMapping(path, valueNode, keyBackups, seen); err != nil {
				return err
			}
			continue
		}

		if !IsFileKey(canonical) {
			l.warnings = append(l.warnings,
				fmt.Sprintf("%s:%d: %q is a command-line option and is ignored in configuration files",
					path, keyNode.Line, name))
			continue
		}

		if previous, dup := seen[canonical]; dup {
			l.warnings = append(l.warnings,
				fmt.Sprintf("%s:%d: %q and %q both set %s; using the last value",
					path, keyNode.Line, previous, name, canonical))
		}
		seen[canonical] = name

		if err := decodeField(l.cfg, canonical, valueNode); err != nil {
			return &ValidationError{
				FilePath: path,
				Line:     valueNode.Line,
				Field:    canonical,
				Value:    valueNode.Value,
				Message:  err.Error(),
			}
		}

		if !slices.Contains(l.fields, canonical) {
			l.fields = append(l.fields, canonical)
		}
	}

	return nil
}

// decodeField decodes a single option value into cfg.
func decodeField(cfg *config.Config, key string, node *yaml.Node) error {
	var err error

	switch key {
	case keyReg:
		err = node.Decode(&cfg.Reg)
	case keyDat:
		err = node.Decode(&cfg.Dat)
	case keyWarnOutOfRange:
		err = node.Decode(&cfg.WarnOutOfRange)
	case keyScaleFor:
		err = node.Decode(&cfg.ScaleFor)
	case keyScaleForVars:
		// A single comma-separated string is accepted as well as a list.
		if node.Kind == yaml.ScalarNode {
			cfg.ScaleForVars = parseSliceValue(node.Value)
			return nil
		}
		err = node.Decode(&cfg.ScaleForVars)
	case keyScreenProfile:
		err = node.Decode(&cfg.ScreenProfile)
	case keyInjectANSIHelpers:
		err = node.Decode(&cfg.InjectANSIHelpers)
	case keyMapGetToInkey:
		err = node.Decode(&cfg.MapGetToInkey)
	case keyUnknownPETSCII:
		err = node.Decode(&cfg.UnknownPETSCII)
	case keyHeaderFallback:
		err = node.Decode(&cfg.HeaderFallback)
	case keyInlinePorts:
		err = node.Decode(&cfg.InlinePorts)
	case keyBackupsEnabled:
		err = node.Decode(&cfg.Backups.Enabled)
	case keyBackupsMode:
		err = node.Decode(&cfg.Backups.Mode)
	default:
		return fmt.Errorf("unknown option %q", key)
	}

	if err != nil {
		return fmt.Errorf("invalid value %q", node.Value)
	}
	return nil
}
