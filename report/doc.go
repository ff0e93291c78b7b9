// Package report holds the validation report model: rules, issues, locations,
// presentation entries and the aggregated report.
//
// A Rule is identified by its code alone. An Issue pairs a rule with the location
// where it was violated and the arguments for the rule's message template. Issues
// become Entries once the rule-configuration overrides are applied (see package
// ruleconfig), and entries are collected into a Report.
//
// A Report stores a bounded number of entries per rule, while the per-rule counts
// are always exact:
//
//	rep := report.New("FLB", "r-1", report.WithMaxEntriesPerRule(10))
//	rep.AddAll(entries)
//	fmt.Println(len(rep.Entries), rep.TotalCount())
package report
