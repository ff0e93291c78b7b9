package ruletree

import (
	"testing"

	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRuleA = report.NewRule("TEST_A", "a", report.SeverityError)
	testRuleB = report.NewRule("TEST_B", "b", report.SeverityWarning)
	testRuleC = report.NewRule("TEST_C", "c", report.SeverityInfo)
)

func issueCodes(issues []report.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Rule.Code)
	}
	return out
}

func parseDoc(t *testing.T, content string) *xmltree.Document {
	t.Helper()
	doc, err := xmltree.Parse("test.xml", []byte(content))
	require.NoError(t, err)
	return doc
}

// TestEvaluateOrder tests depth-first, left-to-right issue order.
func TestEvaluateOrder(t *testing.T) {
	tree := MustBuild(Node("Root", []Rule{NotExist(testRuleA, "Bad")},
		Node("Frame", []Rule{NotExist(testRuleB, "Bad")},
			Node("Item", []Rule{NotExist(testRuleC, ".[@bad]")}),
		),
	))
	doc := parseDoc(t, `<Root>
  <Frame id="F1"><Item bad="1"/><Bad/></Frame>
  <Frame id="F2"><Bad/><Item bad="1"/></Frame>
  <Bad/>
</Root>`)

	issues := tree.Evaluate(doc)
	assert.Equal(t, []string{"TEST_A", "TEST_B", "TEST_C", "TEST_B", "TEST_C"}, issueCodes(issues))
	assert.Equal(t, 4, issues[0].Location.Line)
	assert.Equal(t, "F1", issues[1].Location.ObjectID, "object id comes from the nearest ancestor with an id")
	assert.Equal(t, "test.xml", issues[1].Location.FileName)
	assert.Equal(t, 2, issues[2].Location.Line)
}

// TestEvaluateSkipsEmptySelection tests that children of an unmatched node never run.
func TestEvaluateSkipsEmptySelection(t *testing.T) {
	calls := 0
	counting := Check(testRuleC, func(ctx *xmltree.Node) []*xmltree.Node {
		calls++
		return nil
	})
	tree := MustBuild(Node("Root", nil,
		Node("Missing", []Rule{Exist(testRuleA, "Anything")},
			Node(".", []Rule{counting}),
		),
		Node("Present", []Rule{counting}),
	))

	issues := tree.Evaluate(parseDoc(t, `<Root><Present/><Present/></Root>`))
	assert.Empty(t, issues, "Exist does not fire vacuously on an unmatched context")
	assert.Equal(t, 2, calls, "one call per matched context element")
}

// TestExistAndCheck tests issue placement for Exist and Check rules.
func TestExistAndCheck(t *testing.T) {
	tree := MustBuild(Node("Root", []Rule{
		Exist(testRuleA, "Name"),
		Check(testRuleB, func(ctx *xmltree.Node) []*xmltree.Node {
			return ctx.ChildrenNamed("Item")
		}),
	}))
	issues := tree.Evaluate(parseDoc(t, "<Root id=\"R\">\n<Item/>\n<Item/>\n</Root>"))
	require.Equal(t, []string{"TEST_A", "TEST_B", "TEST_B"}, issueCodes(issues))
	assert.Equal(t, 1, issues[0].Location.Line)
	assert.Equal(t, "R", issues[0].Location.ObjectID)
	assert.Equal(t, 2, issues[1].Location.Line)
	assert.Equal(t, 3, issues[2].Location.Line)
}

// TestBuildErrors tests that invalid selectors fail at build time.
func TestBuildErrors(t *testing.T) {
	_, err := Build(nil)
	assert.Error(t, err)

	_, err = Build(Node("Root[", nil))
	assert.Error(t, err)

	_, err = Build(Node("Root", []Rule{NotExist(testRuleA, "a[")}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_A")

	_, err = Build(Node("Root", nil, Node("b//", nil)))
	assert.Error(t, err)

	assert.Panics(t, func() { MustBuild(Node("[", nil)) })
}

// TestRulesCatalog tests that the catalog holds one rule per code in tree order.
func TestRulesCatalog(t *testing.T) {
	tree := MustBuild(Node("Root", []Rule{NotExist(testRuleB, "x")},
		Node("A", []Rule{NotExist(testRuleA, "y"), NotExist(testRuleB, "z")}),
	))
	rules := tree.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "TEST_B", rules[0].Code)
	assert.Equal(t, "TEST_A", rules[1].Code)

	rules[0] = testRuleC
	assert.Equal(t, "TEST_B", tree.Rules()[0].Code, "catalog is copied")
}

// TestEvaluateNilDocument tests that a nil document yields no issues.
func TestEvaluateNilDocument(t *testing.T) {
	tree := MustBuild(Node("Root", []Rule{Exist(testRuleA, "x")}))
	assert.Nil(t, tree.Evaluate(nil))
	assert.Nil(t, tree.Evaluate(&xmltree.Document{}))
}
