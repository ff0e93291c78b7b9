package validator

import (
	"github.com/erraggy/netexval/grammar"
	"github.com/erraggy/netexval/idregistry"
	"github.com/erraggy/netexval/internal/logging"
	"github.com/erraggy/netexval/internal/options"
	"github.com/erraggy/netexval/objectgraph"
	"github.com/erraggy/netexval/reference"
	"github.com/erraggy/netexval/report"
	"github.com/erraggy/netexval/repository"
	"github.com/erraggy/netexval/ruleconfig"
	"github.com/erraggy/netexval/ruletree"
)

// Option is a function that configures a Validator
type Option func(*config) error

// config holds the configuration of a Validator
type config struct {
	// Grammar source (at most one may be set)
	grammar    grammar.Validator
	schemaFile string

	maxSchemaErrors   int
	tree              *ruletree.Tree
	graphValidators   []objectgraph.Validator
	graphSet          bool
	ruleConfig        *ruleconfig.Config
	maxEntriesPerRule int
	logger            logging.Logger
	external          []reference.ExternalValidator
	registry          *idregistry.Registry
	repos             *repository.Repositories
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		maxSchemaErrors:   grammar.DefaultMaxErrors,
		tree:              ruletree.DefaultTree(),
		maxEntriesPerRule: report.DefaultMaxEntriesPerRule,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	hasGrammar, hasSchemaFile := cfg.grammar != nil, cfg.schemaFile != ""
	if hasGrammar || hasSchemaFile {
		if err := options.ValidateSingleInputSource(
			"must specify a grammar source (use WithGrammar or WithSchemaFile)",
			"WithGrammar and WithSchemaFile are mutually exclusive",
			hasGrammar, hasSchemaFile,
		); err != nil {
			return nil, err
		}
	}

	if !cfg.graphSet {
		cfg.graphValidators = objectgraph.Defaults()
	}
	if cfg.ruleConfig == nil {
		cfg.ruleConfig = ruleconfig.Empty()
	}
	if cfg.registry == nil {
		cfg.registry = idregistry.New()
	}
	if cfg.repos == nil {
		cfg.repos = repository.New()
	}
	cfg.logger = logging.OrNop(cfg.logger)

	return cfg, nil
}

// WithGrammar sets the grammar validator used for the grammar pass.
// Default: no grammar pass
func WithGrammar(g grammar.Validator) Option {
	return func(cfg *config) error {
		cfg.grammar = g
		return nil
	}
}

// WithSchemaFile loads the XML schema at path for the grammar pass.
// Default: no grammar pass
func WithSchemaFile(path string) Option {
	return func(cfg *config) error {
		cfg.schemaFile = path
		return nil
	}
}

// WithMaxSchemaErrors caps the grammar issues per file for a schema loaded with
// WithSchemaFile. Values below 1 disable the cap.
// Default: 100
func WithMaxSchemaErrors(n int) Option {
	return func(cfg *config) error {
		cfg.maxSchemaErrors = n
		return nil
	}
}

// WithRuleTree replaces the structural rule tree. A nil tree disables the
// structural pass.
// Default: ruletree.DefaultTree()
func WithRuleTree(t *ruletree.Tree) Option {
	return func(cfg *config) error {
		cfg.tree = t
		return nil
	}
}

// WithGraphValidators replaces the object-graph validators. They run in the
// given order; calling it without arguments disables the object-graph pass.
// Default: objectgraph.Defaults()
func WithGraphValidators(vs ...objectgraph.Validator) Option {
	return func(cfg *config) error {
		cfg.graphValidators = vs
		cfg.graphSet = true
		return nil
	}
}

// WithRuleConfig applies rule overrides to every report entry.
func WithRuleConfig(c *ruleconfig.Config) Option {
	return func(cfg *config) error {
		cfg.ruleConfig = c
		return nil
	}
}

// WithMaxEntriesPerRule sets how many entries a report stores per rule name.
// Non-positive values mean unbounded.
// Default: 100
func WithMaxEntriesPerRule(n int) Option {
	return func(cfg *config) error {
		cfg.maxEntriesPerRule = n
		return nil
	}
}

// WithLogger sets the logger.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// WithExternalReferences accepts unresolved references that one of vs
// recognizes as defined outside the dataset.
func WithExternalReferences(vs ...reference.ExternalValidator) Option {
	return func(cfg *config) error {
		cfg.external = append(cfg.external, vs...)
		return nil
	}
}

// WithRegistry sets the identifier registry.
// Default: a new registry per Validator
func WithRegistry(r *idregistry.Registry) Option {
	return func(cfg *config) error {
		cfg.registry = r
		return nil
	}
}

// WithRepositories sets the shared data repositories.
// Default: new repositories per Validator
func WithRepositories(r *repository.Repositories) Option {
	return func(cfg *config) error {
		cfg.repos = r
		return nil
	}
}
