package reference

import "github.com/erraggy/netexval/report"

// Rules raised by the resolver.
var (
	RuleVersionOnDefinition = report.NewRule(
		"NETEX_ID_VERSION_ON_DEFINITION",
		"Missing version attribute on element %s with id %s",
		report.SeverityError,
	)
	RuleVersionOnReference = report.NewRule(
		"NETEX_ID_VERSION_ON_REFERENCE",
		"Missing version attribute on reference %s to local id %s",
		report.SeverityWarning,
	)
	RuleUnresolved = report.NewRule(
		"NETEX_ID_UNRESOLVED_REFERENCE",
		"Unresolved reference to %s in element %s",
		report.SeverityError,
	)
	RuleVersionMismatch = report.NewRule(
		"NETEX_ID_VERSION_MISMATCH",
		"Reference %s to %s with version %s does not match any registered version",
		report.SeverityError,
	)
	RuleInvalidType = report.NewRule(
		"NETEX_ID_INVALID_REFERENCE_TYPE",
		"Element %s cannot reference an entity of type %s (%s)",
		report.SeverityError,
	)
	RuleInvalidStructure = report.NewRule(
		"NETEX_ID_INVALID_STRUCTURE",
		"Reference %s in element %s is not of the form CODESPACE:Type:Local",
		report.SeverityWarning,
	)
)

// Rules returns every rule the resolver can raise.
func Rules() []report.Rule {
	return []report.Rule{
		RuleVersionOnDefinition,
		RuleVersionOnReference,
		RuleUnresolved,
		RuleVersionMismatch,
		RuleInvalidType,
		RuleInvalidStructure,
	}
}
