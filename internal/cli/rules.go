package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sidconv/internal/logging"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phase       string `json:"phase"`
	Default     bool   `json:"enabledByDefault"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rewrite rules",
		Long: `List all rewrite rules with their IDs, names, and descriptions.

Statement rules recognise a whole statement (a SID POKE, a base address
assignment, a delay loop, GET). Expression rules then edit CHR$ calls inside
every statement. Rules marked off by default are switched on by options such
as --scale-for and --map-get-to-inkey.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := rewrite.DefaultRegistry.Rules()

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}
			if flags.format != "text" {
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
			}

			ruleFormat, err := config.ParseRuleFormat(flags.ruleFormat)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
			}

			outputRulesText(cmd.OutOrStdout(), rules, ruleFormat)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesText lists rules as log lines.
func outputRulesText(w io.Writer, rules []rewrite.Rule, ruleFormat config.RuleFormat) {
	logger := logging.NewWithWriter(w, "info")

	if len(rules) == 0 {
		logger.Info("no rules registered")
		return
	}

	logger.Info("available rules")

	defaults := config.NewConfig()
	for _, rule := range rules {
		enabled := "off"
		if rule.Enabled(defaults) {
			enabled = "on"
		}

		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			logging.FieldPhase, rule.Phase().String(),
			logging.FieldEnabled, enabled,
			logging.FieldDescription, rule.Description(),
		)
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []rewrite.Rule) error {
	defaults := config.NewConfig()

	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Phase:       rule.Phase().String(),
			Default:     rule.Enabled(defaults),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
