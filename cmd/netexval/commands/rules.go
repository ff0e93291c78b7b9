package commands

import (
	"github.com/spf13/cobra"
)

func newRulesCmd(g *globalFlags) *cobra.Command {
	f := &validatorFlags{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List every rule the validator can raise",
		Long:  "List every rule with its code, severity and name, sorted by code. Rule configuration files apply their overrides to the listing.",
		Example: `  netexval rules
  netexval rules --rule-config rules.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := f.buildValidator(newLogger(cmd.ErrOrStderr(), g.Verbose))
			if err != nil {
				return err
			}
			out, err := renderRules(v.RuleCatalog(), f.Format)
			if err != nil {
				return err
			}
			return emit(cmd.Context(), cmd.OutOrStdout(), f.Output, out)
		},
	}

	fs := cmd.Flags()
	fs.StringArrayVar(&f.RuleConfigs, "rule-config", nil, "YAML rule configuration; repeat to layer, later files win")
	fs.StringVarP(&f.Format, "format", "f", FormatText, "output format: text, json, or yaml")
	fs.StringVarP(&f.Output, "output", "o", "", "write the catalog to this file under an advisory lock")
	return cmd
}
