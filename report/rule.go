package report

import (
	"slices"
	"strings"

	"github.com/erraggy/netexval/internal/severity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity indicates the severity level of a rule
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational findings
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates a recommendation that does not invalidate the dataset
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates a violation that invalidates the dataset
	SeverityError = severity.SeverityError
	// SeverityCritical indicates a violation that blocks downstream processing
	SeverityCritical = severity.SeverityCritical
)

// Rule describes a validation rule. Two rules are the same rule when their codes
// are equal, regardless of name, message or severity.
type Rule struct {
	Code     string   `json:"code"     yaml:"code"`
	Name     string   `json:"name"     yaml:"name"`
	Message  string   `json:"message"  yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// NewRule returns a rule whose name is derived from its code.
//
//	NewRule("NETEX_ID_DUPLICATE", ...).Name == "Netex Id Duplicate"
func NewRule(code, message string, sev Severity) Rule {
	return Rule{Code: code, Name: DisplayName(code), Message: message, Severity: sev}
}

// Equal reports whether r and other share the same code.
func (r Rule) Equal(other Rule) bool {
	return r.Code == other.Code
}

// DisplayName converts an upper snake case rule code into a title cased name.
func DisplayName(code string) string {
	if code == "" {
		return ""
	}
	titleCaser := cases.Title(language.English)
	words := strings.FieldsFunc(code, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// RuleSet is a set of rules keyed by code.
type RuleSet struct {
	rules map[string]Rule
}

// NewRuleSet creates a RuleSet holding the given rules. When several rules share
// a code, the first one is kept.
func NewRuleSet(rules ...Rule) *RuleSet {
	s := &RuleSet{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		s.Add(r)
	}
	return s
}

// Add inserts rule unless a rule with the same code is already present.
// It reports whether the rule was inserted.
func (s *RuleSet) Add(rule Rule) bool {
	if _, ok := s.rules[rule.Code]; ok {
		return false
	}
	s.rules[rule.Code] = rule
	return true
}

// AddAll inserts every rule of rules.
func (s *RuleSet) AddAll(rules []Rule) {
	for _, r := range rules {
		s.Add(r)
	}
}

// Get returns the rule registered under code.
func (s *RuleSet) Get(code string) (Rule, bool) {
	r, ok := s.rules[code]
	return r, ok
}

// Contains reports whether a rule with rule's code is present.
func (s *RuleSet) Contains(rule Rule) bool {
	_, ok := s.rules[rule.Code]
	return ok
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns the rules sorted by code.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Rule) int { return strings.Compare(a.Code, b.Code) })
	return out
}
