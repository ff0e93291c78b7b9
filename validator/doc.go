// Package validator orchestrates the validation of NeTEx documents.
//
// A Validator runs every check for one file in a fixed order and collects the
// findings into a report:
//
//  1. grammar validation against the NeTEx XML schema, capped per file;
//  2. the structural rule tree over the parsed element tree;
//  3. identifier collection into the identifier registry;
//  4. version and reference checks against the registry;
//  5. collection of shared data into the repositories;
//  6. the object-graph business rules.
//
// Content that is not well-formed XML yields a single NETEX_SCHEMA issue and
// skips every pass after the grammar pass.
//
// # Report ids
//
// All cross-file state is keyed by report id. Files validated under the same
// report id see each other's identifiers and shared data, so files that define
// shared data must be validated first. ValidateDataset does this and releases
// the state afterwards; callers of Validate release it with CleanUp.
//
// Files of one report id must be validated sequentially. Different report ids
// may be validated concurrently on the same Validator.
//
// # Basic usage
//
//	v, err := validator.New(validator.WithSchemaFile("xsd/NeTEx_publication.xsd"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ds, err := dataset.FromDir("./export", dataset.WithSharedPrefix("_"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rep, err := v.ValidateDataset("FLB", "report-1", ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.Valid(), rep.TotalCount())
//
// # Rule configuration
//
// Rule names, messages and severities can be overridden with WithRuleConfig.
// Overrides apply when issues become report entries and in RuleCatalog.
package validator
