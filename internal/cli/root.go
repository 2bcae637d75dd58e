// Package cli provides the Cobra command structure for sidconv.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sidconv/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root sidconv command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "sidconv",
		Short: "Convert C64 BASIC with SID sound to RC2014 MS BASIC",
		Long: `sidconv translates line-numbered Commodore 64 BASIC programs into
CP/M MS BASIC for an RC2014 fitted with a SID sound card.

It rewrites SID register POKEs into OUT statements, maps PETSCII screen
control codes to ANSI escapes, and can rescale delay loops and map GET to
INKEY$. Everything else in the listing is preserved byte for byte.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	NewHelpFormatter().ApplyToCommand(rootCmd)

	return rootCmd
}

// colorMode returns the value of the global --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}
