package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRuleEqualityByCode tests that rules with the same code are the same rule
func TestRuleEqualityByCode(t *testing.T) {
	a := Rule{Code: "NETEX_ID_DUPLICATE", Name: "Duplicate id", Message: "m", Severity: SeverityError}
	b := Rule{Code: "NETEX_ID_DUPLICATE", Name: "Another name", Message: "other", Severity: SeverityWarning}
	c := Rule{Code: "NETEX_ID_VERSION_MISMATCH", Name: "Duplicate id", Severity: SeverityError}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	set := NewRuleSet(a, b)
	assert.Equal(t, 1, set.Len())
	got, ok := set.Get("NETEX_ID_DUPLICATE")
	assert.True(t, ok)
	assert.Equal(t, "Duplicate id", got.Name, "first inserted rule is kept")

	assert.False(t, set.Add(b))
	assert.True(t, set.Add(c))
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(Rule{Code: "NETEX_ID_VERSION_MISMATCH"}))
}

func TestRuleSetRulesSorted(t *testing.T) {
	set := NewRuleSet()
	set.AddAll([]Rule{{Code: "B"}, {Code: "A"}, {Code: "C"}, {Code: "A"}})

	rules := set.Rules()
	codes := make([]string, 0, len(rules))
	for _, r := range rules {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{"A", "B", "C"}, codes)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"NETEX_ID_DUPLICATE", "Netex Id Duplicate"},
		{"LINE_MISSING_NAME", "Line Missing Name"},
		{"single", "Single"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.code))
		})
	}

	r := NewRule("LINE_MISSING_NAME", "Line missing Name", SeverityError)
	assert.Equal(t, "Line Missing Name", r.Name)
}
