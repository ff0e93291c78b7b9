// Package netexval validates NeTEx (Network Timetable Exchange) transit-schedule
// datasets.
//
// A dataset consists of one or more shared data files, holding stop points,
// stop assignments, service links and calendars, and the line files that
// reference them. Every file is checked against the NeTEx XML schema, a catalog
// of structural rules, the identifier and reference rules, and business rules
// over the typed object graph. Findings are collected into one report per
// report id.
//
// # Packages
//
//   - validator: orchestrates every pass for a file or a dataset
//   - dataset: assembles datasets from directories, txtar bundles or memory
//   - report: rules, issues, entries and the bounded report
//   - ruleconfig: layered YAML overrides of rule names, messages and severities
//   - grammar: XML schema validation
//   - ruletree: the structural rule tree and its selector language
//   - idregistry: the per-report identifier and version registry
//   - reference: version and reference resolution checks
//   - repository: per-report lookups of shared data and stop places
//   - objectgraph: business rules over the typed object graph
//   - netexmodel: the typed object graph of the NeTEx subset the rules need
//   - netexerrors: the Fatal and Retryable error kinds
//
// # Quick Start
//
//	v, err := validator.New(validator.WithSchemaFile("xsd/NeTEx_publication.xsd"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ds, err := dataset.FromTxtarFile("flb.txtar")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rep, err := v.ValidateDataset("FLB", "flb-2026-10-18", ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rep.WriteJSON(os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// # Command line
//
// The netexval command wraps the library:
//
//	netexval validate --codespace FLB line.xml
//	netexval dataset --codespace FLB --shared-prefix _ ./export
//	netexval rules
//	netexval mcp
//
// # Errors
//
// Validation findings are report entries, never errors. Errors are returned only
// when no report can be produced; see netexerrors.
package netexval
