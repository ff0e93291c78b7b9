package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/erraggy/netexval/grammar"
	"github.com/erraggy/netexval/internal/logging"
	"github.com/erraggy/netexval/reference"
	"github.com/erraggy/netexval/report"
	"github.com/erraggy/netexval/ruleconfig"
	"github.com/erraggy/netexval/validator"
)

// validatorFlags contains the flags that configure a validator and its output.
type validatorFlags struct {
	Codespace          string
	ReportID           string
	Schema             string
	MaxSchemaErrors    int
	MaxEntriesPerRule  int
	RuleConfigs        []string
	ExternalCodespaces []string
	Format             string
	Output             string
}

// register binds the validation and output flags to cmd.
func (f *validatorFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.Codespace, "codespace", "c", "", "codespace of the dataset producer, e.g. FLB")
	fs.StringVar(&f.ReportID, "report-id", "", "report id (default: <codespace>-<UTC timestamp>)")
	fs.StringVar(&f.Schema, "schema", "", "NeTEx XSD entry point; the grammar pass is skipped without it")
	fs.IntVar(&f.MaxSchemaErrors, "max-schema-errors", grammar.DefaultMaxErrors, "grammar issues kept per file (0 for no cap)")
	fs.IntVar(&f.MaxEntriesPerRule, "max-entries-per-rule", report.DefaultMaxEntriesPerRule, "report entries kept per rule (0 for no cap)")
	fs.StringArrayVar(&f.RuleConfigs, "rule-config", nil, "YAML rule configuration; repeat to layer, later files win")
	fs.StringArrayVar(&f.ExternalCodespaces, "external-codespace", nil, "accept unresolved references into this codespace; repeatable")
	fs.StringVarP(&f.Format, "format", "f", FormatText, "output format: text, json, or yaml")
	fs.StringVarP(&f.Output, "output", "o", "", "write the report to this file under an advisory lock")
	_ = cmd.MarkFlagRequired("codespace")
}

// reportID returns the configured report id or derives one from the codespace.
func (f *validatorFlags) reportID(now time.Time) string {
	if f.ReportID != "" {
		return f.ReportID
	}
	return fmt.Sprintf("%s-%s", f.Codespace, now.UTC().Format("20060102T150405Z"))
}

// loadRuleConfig layers the configured rule configuration files.
func loadRuleConfig(paths []string) (*ruleconfig.Config, error) {
	sources := make([]ruleconfig.Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, ruleconfig.File(p))
	}
	return ruleconfig.Load(sources...)
}

// buildValidator creates a validator from the flags.
func (f *validatorFlags) buildValidator(logger logging.Logger) (*validator.Validator, error) {
	if err := ValidateOutputFormat(f.Format); err != nil {
		return nil, err
	}

	opts := []validator.Option{
		validator.WithLogger(logger),
		validator.WithMaxEntriesPerRule(f.MaxEntriesPerRule),
	}
	if f.Schema != "" {
		opts = append(opts,
			validator.WithSchemaFile(f.Schema),
			validator.WithMaxSchemaErrors(f.MaxSchemaErrors),
		)
	}
	if len(f.RuleConfigs) > 0 {
		rc, err := loadRuleConfig(f.RuleConfigs)
		if err != nil {
			return nil, err
		}
		opts = append(opts, validator.WithRuleConfig(rc))
	}
	if len(f.ExternalCodespaces) > 0 {
		opts = append(opts, validator.WithExternalReferences(reference.Codespaces(f.ExternalCodespaces...)))
	}
	return validator.New(opts...)
}
