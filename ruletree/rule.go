package ruletree

import (
	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/report"
)

type ruleKind int

const (
	kindNotExist ruleKind = iota
	kindExist
	kindCheck
)

// CheckFunc inspects a context node and returns the nodes that fail the rule.
type CheckFunc func(ctx *xmltree.Node) []*xmltree.Node

// Rule is a structural rule attached to a tree node.
type Rule struct {
	kind     ruleKind
	rule     report.Rule
	selector string
	check    CheckFunc
}

// NotExist raises one issue for every node the selector matches within the
// context.
func NotExist(rule report.Rule, selector string) Rule {
	return Rule{kind: kindNotExist, rule: rule, selector: selector}
}

// Exist raises one issue at the context node when the selector matches nothing.
func Exist(rule report.Rule, selector string) Rule {
	return Rule{kind: kindExist, rule: rule, selector: selector}
}

// Check raises one issue for every node returned by fn.
func Check(rule report.Rule, fn CheckFunc) Rule {
	return Rule{kind: kindCheck, rule: rule, check: fn}
}

// Descriptor returns the report rule raised by r.
func (r Rule) Descriptor() report.Rule {
	return r.rule
}

// compiledRule is a Rule with its selector compiled.
type compiledRule struct {
	Rule
	sel *Selector
}

func (r Rule) compile() (compiledRule, error) {
	if r.kind == kindCheck {
		return compiledRule{Rule: r}, nil
	}
	sel, err := Compile(r.selector)
	if err != nil {
		return compiledRule{}, err
	}
	return compiledRule{Rule: r, sel: sel}, nil
}

func (r compiledRule) evaluate(fileName string, ctx *xmltree.Node) []report.Issue {
	var failing []*xmltree.Node
	switch r.kind {
	case kindNotExist:
		failing = r.sel.Select(ctx)
	case kindExist:
		if len(r.sel.Select(ctx)) == 0 {
			failing = []*xmltree.Node{ctx}
		}
	case kindCheck:
		failing = r.check(ctx)
	}
	if len(failing) == 0 {
		return nil
	}
	issues := make([]report.Issue, 0, len(failing))
	for _, n := range failing {
		issues = append(issues, report.NewIssue(r.rule, location(fileName, n)))
	}
	return issues
}

func location(fileName string, n *xmltree.Node) report.Location {
	return report.Location{ObjectID: n.ObjectID(), FileName: fileName, Line: n.Line, Column: n.Column}
}
