package validator

import (
	"github.com/erraggy/netexval/dataset"
	"github.com/erraggy/netexval/grammar"
	"github.com/erraggy/netexval/idregistry"
	"github.com/erraggy/netexval/internal/logging"
	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/netexmodel"
	"github.com/erraggy/netexval/objectgraph"
	"github.com/erraggy/netexval/reference"
	"github.com/erraggy/netexval/report"
	"github.com/erraggy/netexval/repository"
	"github.com/erraggy/netexval/ruleconfig"
	"github.com/erraggy/netexval/ruletree"
)

// Validator validates NeTEx documents. It is safe for concurrent use across
// report ids.
type Validator struct {
	grammar           grammar.Validator
	tree              *ruletree.Tree
	graphValidators   []objectgraph.Validator
	ruleConfig        *ruleconfig.Config
	maxEntriesPerRule int
	logger            logging.Logger
	registry          *idregistry.Registry
	repos             *repository.Repositories
	resolver          *reference.Resolver
}

// New creates a Validator. Loading a schema file that cannot be compiled is a
// fatal error.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	g := cfg.grammar
	if cfg.schemaFile != "" {
		xsd, err := grammar.LoadFile(cfg.schemaFile, grammar.WithMaxErrors(cfg.maxSchemaErrors))
		if err != nil {
			return nil, err
		}
		g = xsd
	}

	return &Validator{
		grammar:           g,
		tree:              cfg.tree,
		graphValidators:   cfg.graphValidators,
		ruleConfig:        cfg.ruleConfig,
		maxEntriesPerRule: cfg.maxEntriesPerRule,
		logger:            cfg.logger,
		registry:          cfg.registry,
		repos:             cfg.repos,
		resolver:          reference.NewResolver(cfg.registry, cfg.external...),
	}, nil
}

func (v *Validator) newReport(codespace, reportID string) *report.Report {
	return report.New(codespace, reportID, report.WithMaxEntriesPerRule(v.maxEntriesPerRule))
}

// Validate validates one file under reportID. Identifiers and shared data of
// the file stay registered for later files of the same report id until CleanUp.
//
// The error is non-nil only for conditions that prevent a report, never for
// findings in content.
func (v *Validator) Validate(codespace, reportID, fileName string, content []byte) (*report.Report, error) {
	issues, err := v.validate(codespace, reportID, fileName, content)
	if err != nil {
		return nil, err
	}
	rep := v.newReport(codespace, reportID)
	rep.AddAll(v.ruleConfig.Entries(issues))
	return rep, nil
}

func (v *Validator) validate(codespace, reportID, fileName string, content []byte) ([]report.Issue, error) {
	log := v.logger.With("reportId", reportID, "file", fileName)
	v.registry.Initialize(reportID)
	v.repos.Initialize(reportID)

	var issues []report.Issue
	if v.grammar != nil {
		grammarIssues, truncated, err := v.grammar.Validate(fileName, content)
		if err != nil {
			return nil, err
		}
		if truncated {
			log.Warn("grammar issues truncated", "kept", len(grammarIssues))
		}
		issues = append(issues, grammarIssues...)
	}

	doc, err := xmltree.Parse(fileName, content)
	if err != nil {
		log.Warn("document is not well-formed", "error", err)
		// The parse failure replaces whatever the grammar pass made of the same bytes.
		return []report.Issue{grammar.MalformedIssue(fileName, err)}, nil
	}

	if v.tree != nil {
		issues = append(issues, v.tree.Evaluate(doc)...)
	}

	defs := idregistry.Collect(doc)
	issues = append(issues, v.registry.RegisterAll(reportID, defs)...)

	refIssues, err := v.resolver.Validate(codespace, reportID, doc, defs)
	if err != nil {
		return nil, err
	}
	issues = append(issues, refIssues...)

	graphIssues, err := v.validateGraph(log, codespace, reportID, fileName, content)
	if err != nil {
		return nil, err
	}
	issues = append(issues, graphIssues...)

	log.Debug("validated file", "issues", len(issues), "ids", len(defs))
	return issues, nil
}

func (v *Validator) validateGraph(log logging.Logger, codespace, reportID, fileName string, content []byte) ([]report.Issue, error) {
	pd, err := netexmodel.Parse(content)
	if err != nil {
		log.Warn("object graph unavailable", "error", err)
		return nil, nil
	}
	v.repos.Collect(reportID, pd)

	ctx := &objectgraph.Context{
		Codespace: codespace,
		ReportID:  reportID,
		FileName:  fileName,
		Graph:     pd,
		Repos:     v.repos,
	}
	var issues []report.Issue
	for _, gv := range v.graphValidators {
		found, err := gv.Validate(ctx)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			log.Debug("object graph findings", "validator", gv.Name(), "issues", len(found))
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// ValidateDataset validates the files of ds sequentially, shared files first,
// and merges the per-file reports. The state of reportID is released before it
// returns, also on error.
func (v *Validator) ValidateDataset(codespace, reportID string, ds *dataset.Dataset) (*report.Report, error) {
	defer v.CleanUp(reportID)

	rep := v.newReport(codespace, reportID)
	for _, f := range ds.Ordered() {
		fileRep, err := v.Validate(codespace, reportID, f.Name, f.Content)
		if err != nil {
			return nil, err
		}
		rep.Merge(fileRep)
	}
	v.logger.Info("validated dataset",
		"reportId", reportID,
		"files", ds.Len(),
		"entries", rep.TotalCount(),
		"valid", rep.Valid(),
	)
	return rep, nil
}

// CleanUp releases the registry and repository state of reportID.
func (v *Validator) CleanUp(reportID string) {
	v.registry.CleanUp(reportID)
	v.repos.CleanUp(reportID)
}

// RuleCatalog returns every rule the Validator can raise, with rule
// configuration overrides applied, sorted by code.
func (v *Validator) RuleCatalog() []report.Rule {
	set := report.NewRuleSet(grammar.RuleSchema, idregistry.RuleDuplicate)
	set.AddAll(reference.Rules())
	if v.tree != nil {
		set.AddAll(v.tree.Rules())
	}
	for _, gv := range v.graphValidators {
		set.AddAll(gv.Rules())
	}

	rules := set.Rules()
	for i, r := range rules {
		rules[i] = v.ruleConfig.Resolve(r)
	}
	return rules
}
