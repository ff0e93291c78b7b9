package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueMessage(t *testing.T) {
	rule := Rule{Code: "X", Name: "X", Message: "Unresolved reference to %s (version %s)", Severity: SeverityError}

	issue := NewIssue(rule, Location{FileName: "a.xml"}, "FLB:Line:1", "2")
	assert.Equal(t, "Unresolved reference to FLB:Line:1 (version 2)", issue.Message())

	plain := NewIssue(Rule{Message: "Line missing Name"}, Location{})
	assert.Equal(t, "Line missing Name", plain.Message())

	noVerbs := NewIssue(Rule{Message: "no verbs here"}, Location{}, "ignored")
	assert.Equal(t, "no verbs here", noVerbs.Message())
}

// TestVerbCount tests verb counting in message templates.
func TestVerbCount(t *testing.T) {
	assert.Equal(t, 0, VerbCount("Line missing Name"))
	assert.Equal(t, 2, VerbCount("Unresolved reference to %s (version %s)"))
	assert.Equal(t, 1, VerbCount("%d%% of stops late"))
	assert.Equal(t, 2, VerbCount("%[2]s before %[1]s"))
	assert.Equal(t, 1, VerbCount("trailing %"))

	plain := NewIssue(Rule{Message: "100%% on time"}, Location{}, "ignored")
	assert.Equal(t, "100%% on time", plain.Message())
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "a.xml:3:7", Location{FileName: "a.xml", Line: 3, Column: 7}.String())
	assert.Equal(t, "a.xml [FLB:Line:1]", FileLocation("a.xml", "FLB:Line:1").String())
	assert.Equal(t, "a.xml", Location{FileName: "a.xml"}.String())
	assert.False(t, FileLocation("a.xml", "").HasPosition())
}

func TestEntryString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		symbol   string
	}{
		{"error", SeverityError, "✗"},
		{"critical", SeverityCritical, "✗"},
		{"warning", SeverityWarning, "⚠"},
		{"info", SeverityInfo, "ℹ"},
		{"unknown", Severity(42), "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{Code: "C", Message: "msg", Severity: tt.severity, Location: Location{FileName: "f.xml", Line: 1, Column: 2}}
			assert.Equal(t, tt.symbol+" f.xml:1:2 [C] msg", e.String())
		})
	}
}

func TestEntryFromIssue(t *testing.T) {
	rule := Rule{Code: "C", Name: "Name", Message: "value %d", Severity: SeverityWarning}
	e := EntryFromIssue(NewIssue(rule, Location{FileName: "f.xml"}, 7))
	assert.Equal(t, Entry{Code: "C", Name: "Name", Message: "value 7", Severity: SeverityWarning, Location: Location{FileName: "f.xml"}}, e)
}
