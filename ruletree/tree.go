// Package ruletree evaluates context-scoped structural rules against a parsed
// document.
//
// A Tree mirrors the expected document structure. Every node selects its
// context from the parent's context, evaluates its rules once per selected
// element and recurses with each element as the new context. A node whose
// selection is empty is skipped together with its subtree.
//
// Trees are immutable once built and safe for concurrent use.
package ruletree

import (
	"fmt"

	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/report"
)

// NodeSpec describes a tree node before it is built.
type NodeSpec struct {
	selector string
	rules    []Rule
	children []*NodeSpec
}

// Node describes a tree node selecting its context with selector.
func Node(selector string, rules []Rule, children ...*NodeSpec) *NodeSpec {
	return &NodeSpec{selector: selector, rules: rules, children: children}
}

type node struct {
	sel      *Selector
	rules    []compiledRule
	children []*node
}

// Tree is a built rule tree.
type Tree struct {
	root    *node
	catalog []report.Rule
}

// Build compiles every selector of root and its descendants.
func Build(root *NodeSpec) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("ruletree: nil root")
	}
	set := report.NewRuleSet()
	var catalog []report.Rule
	n, err := build(root, func(r report.Rule) {
		if set.Add(r) {
			catalog = append(catalog, r)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Tree{root: n, catalog: catalog}, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(root *NodeSpec) *Tree {
	t, err := Build(root)
	if err != nil {
		panic(err)
	}
	return t
}

func build(spec *NodeSpec, collect func(report.Rule)) (*node, error) {
	sel, err := Compile(spec.selector)
	if err != nil {
		return nil, err
	}
	n := &node{sel: sel, rules: make([]compiledRule, 0, len(spec.rules))}
	for _, r := range spec.rules {
		cr, err := r.compile()
		if err != nil {
			return nil, fmt.Errorf("ruletree: rule %s: %w", r.rule.Code, err)
		}
		n.rules = append(n.rules, cr)
		collect(r.rule)
	}
	for _, c := range spec.children {
		child, err := build(c, collect)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

// Rules returns every rule of the tree in tree order, one per code.
func (t *Tree) Rules() []report.Rule {
	return append([]report.Rule(nil), t.catalog...)
}

// Evaluate runs the tree against doc. The root node selects from a document
// node whose only child is the root element. Issues are returned depth-first,
// left to right.
func (t *Tree) Evaluate(doc *xmltree.Document) []report.Issue {
	if doc == nil || doc.Root == nil {
		return nil
	}
	ctx := &xmltree.Node{Children: []*xmltree.Node{doc.Root}}
	var issues []report.Issue
	t.root.evaluate(doc.FileName, ctx, &issues)
	return issues
}

func (n *node) evaluate(fileName string, ctx *xmltree.Node, issues *[]report.Issue) {
	for _, item := range n.sel.Select(ctx) {
		for _, r := range n.rules {
			*issues = append(*issues, r.evaluate(fileName, item)...)
		}
		for _, c := range n.children {
			c.evaluate(fileName, item, issues)
		}
	}
}
