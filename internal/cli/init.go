package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/sidconv/internal/configloader"
	"github.com/yaklabco/sidconv/internal/logging"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/fsutil"
)

// defaultProjectConfig is the file written by "sidconv init".
const defaultProjectConfig = ".sidconv.yml"

// configDirPermissions is the mode for a created user config directory.
const configDirPermissions = 0o755

// stdinIsTerminal reports whether the user can answer a prompt.
//
//nolint:gochecknoglobals // Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	user   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new sidconv configuration file",
		Long: `Create a .sidconv.yml configuration file in the current directory holding
the default settings, each one documented.

If the file exists you are asked before it is overwritten; without a
terminal, --force is required.

Examples:
  sidconv init                       Create .sidconv.yml
  sidconv init --full                Write every option uncommented
  sidconv init --user                Create the per-user config file
  sidconv init --output music.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing configuration file without asking")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every option uncommented")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the per-user config ($XDG_CONFIG_HOME/sidconv/config.yaml)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .sidconv.yml)")

	return cmd
}

func runInit(ctx context.Context, in io.Reader, out io.Writer, flags *initFlags) error {
	logger := logging.NewWithWriter(out, "info")

	outputPath, err := initOutputPath(flags)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !stdinIsTerminal() {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}

		confirmed, err := confirm(in, out, fmt.Sprintf("%s already exists. Overwrite? [y/N] ", outputPath))
		if err != nil {
			return err
		}
		if !confirmed {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), configDirPermissions); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	content := config.GenerateTemplate(flags.full)
	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'sidconv rules' to see all rewrite rules")

	return nil
}

// initOutputPath picks the file written by init.
func initOutputPath(flags *initFlags) (string, error) {
	switch {
	case flags.output != "" && flags.user:
		return "", fmt.Errorf("%w: --output and --user cannot be combined", ErrInvalidUsage)
	case flags.output != "":
		return flags.output, nil
	case flags.user:
		dir := configloader.UserConfigDir()
		if dir == "" {
			return "", errors.New("cannot determine the user config directory; set XDG_CONFIG_HOME")
		}
		return filepath.Join(dir, "config.yaml"), nil
	default:
		return defaultProjectConfig, nil
	}
}

// confirm writes prompt and reads a yes/no answer. Anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := io.WriteString(out, prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
