package report

import "fmt"

// Location identifies where an issue was found. Line and Column are zero when
// unknown, which is the case for issues derived from the object graph.
type Location struct {
	ObjectID string `json:"objectId,omitempty" yaml:"objectId,omitempty"`
	FileName string `json:"fileName"           yaml:"fileName"`
	Line     int    `json:"line,omitempty"     yaml:"line,omitempty"`
	Column   int    `json:"column,omitempty"   yaml:"column,omitempty"`
}

// FileLocation returns a location without line or column information.
func FileLocation(fileName, objectID string) Location {
	return Location{FileName: fileName, ObjectID: objectID}
}

// HasPosition returns true if the location carries a line number.
func (l Location) HasPosition() bool {
	return l.Line > 0
}

// String returns the location in IDE-friendly format.
// Returns "file:line:column" when the position is known, otherwise the file name
// followed by the object id, if any.
func (l Location) String() string {
	if l.HasPosition() {
		return fmt.Sprintf("%s:%d:%d", l.FileName, l.Line, l.Column)
	}
	if l.ObjectID != "" {
		return l.FileName + " [" + l.ObjectID + "]"
	}
	return l.FileName
}

// Issue is a single rule violation.
type Issue struct {
	Rule     Rule
	Location Location
	Args     []any
}

// NewIssue creates an issue for rule at loc.
func NewIssue(rule Rule, loc Location, args ...any) Issue {
	return Issue{Rule: rule, Location: loc, Args: args}
}

// Message renders the rule's message template with the issue arguments.
func (i Issue) Message() string {
	return formatMessage(i.Rule.Message, i.Args)
}

// VerbCount returns the number of formatting verbs in a message template. An
// escaped percent sign ("%%") is not a verb.
func VerbCount(template string) int {
	n := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 < len(template) && template[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}

func formatMessage(template string, args []any) string {
	if len(args) == 0 {
		return template
	}
	if VerbCount(template) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// Entry is the presentation form of an issue, after rule-configuration
// overrides have been applied.
type Entry struct {
	Code     string   `json:"code"               yaml:"code"`
	Name     string   `json:"name"               yaml:"name"`
	Message  string   `json:"message"            yaml:"message"`
	Severity Severity `json:"severity"           yaml:"severity"`
	Location Location `json:"location"           yaml:"location"`
}

// EntryFromIssue converts an issue to an entry using the rule's own name,
// message and severity.
func EntryFromIssue(issue Issue) Entry {
	return Entry{
		Code:     issue.Rule.Code,
		Name:     issue.Rule.Name,
		Message:  issue.Message(),
		Severity: issue.Rule.Severity,
		Location: issue.Location,
	}
}

// String returns a formatted string representation of the entry.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (e Entry) String() string {
	var symbol string
	switch e.Severity {
	case SeverityError, SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}
	return fmt.Sprintf("%s %s [%s] %s", symbol, e.Location.String(), e.Code, e.Message)
}
