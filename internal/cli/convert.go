package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/sidconv/internal/configloader"
	"github.com/yaklabco/sidconv/internal/logging"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/reporter"
	"github.com/yaklabco/sidconv/pkg/rewrite"
	_ "github.com/yaklabco/sidconv/pkg/rewrite/rules" // Register built-in rules
	"github.com/yaklabco/sidconv/pkg/runner"
)

type convertFlags struct {
	outDir         string
	exclude        []string
	screenProfile  string
	unknownPETSCII string
	headerFallback string
	format         string
	ruleFormat     string
	strict         bool
	compact        bool
	showSkipped    bool
}

func newConvertCommand() *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert INPUT [OUTPUT]",
		Short: "Convert C64 BASIC listings to RC2014 MS BASIC",
		Long:  convertLongDescription,
		Args:  convertArgs(flags),
		Annotations: map[string]string{
			annotationEnv: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &cfg, flags)
		},
	}

	addConvertFlags(cmd, &cfg, flags)

	return cmd
}

const convertLongDescription = `Convert line-numbered C64 BASIC into CP/M MS BASIC for an RC2014 with a
SID sound card.

SID POKEs become OUT statements on the register and data ports, PETSCII
screen codes become ANSI escapes, and delay loops can be rescaled. Line
numbers and every unrelated statement are kept exactly as written.

With one file, the result goes to OUTPUT or to stdout; the report then goes
to stderr. With --out-dir, every file and directory argument is converted
into DIR, keeping relative paths.

Examples:
  sidconv convert tune.bas                   # Print the converted program
  sidconv convert tune.bas tune.mbas         # Write to a file
  sidconv convert --out-dir out/ games/      # Convert a directory tree
  sidconv convert --dry-run --format diff --out-dir out/ games/
  sidconv convert --screen-profile ansi-helpers --inject-ansi-helpers demo.bas`

// convertArgs validates positional arguments for both modes.
func convertArgs(flags *convertFlags) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if flags.outDir != "" {
			return nil
		}
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: expected INPUT [OUTPUT], or --out-dir DIR PATH...", ErrInvalidUsage)
		}
		return nil
	}
}

func runConvert(cmd *cobra.Command, args []string, cfg *config.Config, flags *convertFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	finalCfg, err := loadConvertConfig(ctx, cmd, cfg, flags, workDir)
	if err != nil {
		return err
	}

	engine := rewrite.NewEngine(rewrite.DefaultRegistry, finalCfg)
	converter := runner.NewConverter(engine)

	var (
		result       *runner.Result
		reportWriter = cmd.OutOrStdout()
	)

	if flags.outDir != "" {
		result, err = runBatch(ctx, converter, args, workDir, finalCfg, flags)
		if err != nil {
			return errors.Join(errors.New("conversion run failed"), err)
		}
	} else {
		var toStdout bool
		result, toStdout, err = runSingle(ctx, cmd.OutOrStdout(), converter, args, finalCfg)
		if err != nil {
			return err
		}
		if toStdout {
			reportWriter = cmd.ErrOrStderr()
		}
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      reportWriter,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		ShowSkipped: flags.showSkipped,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return errorForExitCode(ExitCodeFromResult(result, flags.strict))
}

// loadConvertConfig merges configuration files, the environment and the
// flags that were set on the command line.
func loadConvertConfig(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	flags *convertFlags,
	workDir string,
) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	// Map string flags to typed config values. Only flags that were set
	// are merged, so the assignments are harmless otherwise.
	cfg.ScreenProfile = config.ScreenProfile(flags.screenProfile)
	cfg.UnknownPETSCII = config.PETSCIIPolicy(flags.unknownPETSCII)
	cfg.HeaderFallback = config.HeaderFallback(flags.headerFallback)
	cfg.Format = config.OutputFormat(flags.format)
	cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
		CLIFields:    changedConfigFields(cmd),
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldScreenProfile, finalCfg.ScreenProfile,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	return finalCfg, nil
}

// changedConfigFields lists the configuration keys of the flags set on the
// command line. Flags without a configuration key are ignored.
func changedConfigFields(cmd *cobra.Command) []string {
	fields := []string{}
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		if key, ok := configloader.CanonicalKey(flag.Name); ok {
			fields = append(fields, key)
		}
	})
	return fields
}

// runBatch converts every discovered file into outDir.
func runBatch(
	ctx context.Context,
	converter *runner.Converter,
	paths []string,
	workDir string,
	cfg *config.Config,
	flags *convertFlags,
) (*runner.Result, error) {
	opts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		OutDir:       flags.outDir,
		ExcludeGlobs: flags.exclude,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logging.FromContext(ctx).Debug("starting conversion run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldOutDir, opts.OutDir,
		logging.FieldJobs, opts.Jobs,
	)

	return runner.New(converter).Run(ctx, opts)
}

// runSingle converts one file to args[1], or to stdout when no output path
// is given. A failed conversion is recorded in the result, not returned.
func runSingle(
	ctx context.Context,
	stdout io.Writer,
	converter *runner.Converter,
	args []string,
	cfg *config.Config,
) (*runner.Result, bool, error) {
	input := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
	}

	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return nil, false, fmt.Errorf("%w: %s is a directory; use --out-dir to convert directories",
			ErrInvalidUsage, input)
	}

	outcome := runner.FileOutcome{Path: input}
	fileResult, err := converter.ConvertFile(ctx, input, output, runner.WriteOptionsFromConfig(cfg))
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = fileResult
	}

	toStdout := output == ""
	if toStdout && outcome.Error == nil && !cfg.DryRun {
		if _, err := stdout.Write(fileResult.Converted); err != nil {
			return nil, toStdout, fmt.Errorf("write output: %w", err)
		}
	}

	return runner.NewResult(outcome), toStdout, nil
}

func addConvertFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) {
	def := config.NewConfig()

	// Output.
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "convert every PATH into this directory")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip in --out-dir mode")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "convert and report without writing any file")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not back up overwritten output files")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	// SID ports.
	cmd.Flags().IntVar(&cfg.Reg, "reg", def.Reg, "SID register-select port")
	cmd.Flags().IntVar(&cfg.Dat, "dat", def.Dat, "SID data port")
	cmd.Flags().BoolVar(&cfg.InlinePorts, "inline-ports", false, "write port numbers instead of REG/DAT variables")
	cmd.Flags().BoolVar(&cfg.WarnOutOfRange, "warn-out-of-range", false, "warn about SID offsets outside 0-24")
	cmd.Flags().StringVar(&flags.headerFallback, "header-fallback", string(def.HeaderFallback),
		"when line 0 is taken: error, merge")

	// Rewrites.
	cmd.Flags().Float64Var(&cfg.ScaleFor, "scale-for", 0, "multiply delay loop bounds by this factor (0 = off)")
	cmd.Flags().StringSliceVar(&cfg.ScaleForVars, "scale-for-vars", def.ScaleForVars, "delay loop variables")
	cmd.Flags().StringVar(&flags.screenProfile, "screen-profile", string(def.ScreenProfile),
		"PETSCII screen codes: none, ansi, ansi-helpers")
	cmd.Flags().BoolVar(&cfg.InjectANSIHelpers, "inject-ansi-helpers", false,
		"define ANSI helper variables in the header")
	cmd.Flags().StringVar(&flags.unknownPETSCII, "unknown-petscii", string(def.UnknownPETSCII),
		"unmapped PETSCII codes: leave, strip, warn")
	cmd.Flags().BoolVar(&cfg.MapGetToInkey, "map-get-to-inkey", false, "rewrite GET X$ as X$=INKEY$")

	// Report.
	cmd.Flags().StringVar(&flags.format, "format", string(def.Format), "report format: text, table, json, diff, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(def.RuleFormat),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when warnings were raised")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.showSkipped, "show-skipped", false, "list files skipped as non-listings")
}
