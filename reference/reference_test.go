package reference

import (
	"testing"

	"github.com/erraggy/netexval/idregistry"
	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/netexerrors"
	"github.com/erraggy/netexval/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(issues []report.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Rule.Code)
	}
	return out
}

func registered(t *testing.T, defs ...idregistry.IDVersion) *idregistry.Registry {
	t.Helper()
	reg := idregistry.New()
	reg.Initialize("r1")
	for _, d := range defs {
		require.Empty(t, reg.Register("r1", d))
	}
	return reg
}

func line(version string) idregistry.IDVersion {
	return idregistry.IDVersion{ID: "FLB:Line:1", Version: version, ElementName: "Line", FileName: "shared.xml", Line: 3, Column: 5}
}

func ref(elem, id, version string) Ref {
	return Ref{ID: id, Version: version, HasVersion: version != "", ElementName: elem, FileName: "line.xml", Line: 10, Column: 7}
}

// TestVersionMismatch tests that a reference to an unregistered version fails.
func TestVersionMismatch(t *testing.T) {
	r := NewResolver(registered(t, line("1")))

	issues, err := r.CheckReferences("FLB", "r1", "line.xml", []Ref{ref("LineRef", "FLB:Line:1", "2")})
	require.NoError(t, err)
	assert.Equal(t, []string{RuleVersionMismatch.Code}, codes(issues))
	assert.Equal(t, 10, issues[0].Location.Line)

	issues, err = r.CheckReferences("FLB", "r1", "line.xml", []Ref{ref("LineRef", "FLB:Line:1", "1")})
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = r.CheckReferences("FLB", "r1", "line.xml", []Ref{ref("LineRef", "FLB:Line:1", AnyVersion)})
	require.NoError(t, err)
	assert.Empty(t, issues, "version any matches every version")
}

// TestVersionOnReference tests that a missing version is reported whether or not
// the reference resolves.
func TestVersionOnReference(t *testing.T) {
	r := NewResolver(registered(t, line("1")))

	issues, err := r.CheckReferences("FLB", "r1", "line.xml", []Ref{ref("LineRef", "FLB:Line:1", "")})
	require.NoError(t, err)
	assert.Equal(t, []string{RuleVersionOnReference.Code}, codes(issues))

	issues, err = r.CheckReferences("FLB", "r1", "line.xml", []Ref{ref("LineRef", "FLB:Line:404", "")})
	require.NoError(t, err)
	assert.Equal(t, []string{RuleVersionOnReference.Code, RuleUnresolved.Code}, codes(issues))
}

// TestVersionOnReferenceForeignCodespace tests that references outside the
// report codespace may omit the version.
func TestVersionOnReferenceForeignCodespace(t *testing.T) {
	reg := registered(t, idregistry.IDVersion{ID: "NSR:Quay:1", Version: "3", ElementName: "Quay", FileName: "stops.xml"})
	r := NewResolver(reg)

	issues, err := r.CheckReferences("FLB", "r1", "line.xml", []Ref{ref("QuayRef", "NSR:Quay:1", "")})
	require.NoError(t, err)
	assert.Empty(t, issues)

	// defined in the current file, so it is local regardless of codespace
	issues, err = r.CheckReferences("FLB", "r1", "stops.xml", []Ref{ref("QuayRef", "NSR:Quay:1", "")})
	require.NoError(t, err)
	assert.Equal(t, []string{RuleVersionOnReference.Code}, codes(issues))
}

// TestInvalidReferenceType tests the type compatibility matrix.
func TestInvalidReferenceType(t *testing.T) {
	reg := registered(t,
		line("1"),
		idregistry.IDVersion{ID: "FLB:Operator:1", Version: "1", ElementName: "Operator", FileName: "shared.xml"},
		idregistry.IDVersion{ID: "FLB:ServiceJourneyPattern:1", Version: "1", ElementName: "ServiceJourneyPattern", FileName: "shared.xml"},
	)
	r := NewResolver(reg)

	tests := []struct {
		name    string
		ref     Ref
		invalid bool
	}{
		{"direct", ref("LineRef", "FLB:Line:1", "1"), false},
		{"wrong element", ref("OperatorRef", "FLB:Line:1", "1"), true},
		{"organisation substitution", ref("OrganisationRef", "FLB:Operator:1", "1"), false},
		{"pattern substitution", ref("JourneyPatternRef", "FLB:ServiceJourneyPattern:1", "1"), false},
		{"authority element for operator", ref("AuthorityRef", "FLB:Operator:1", "1"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := r.CheckReferences("FLB", "r1", "line.xml", []Ref{tt.ref})
			require.NoError(t, err)
			if tt.invalid {
				assert.Equal(t, []string{RuleInvalidType.Code}, codes(issues))
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

// TestInvalidStructure tests that unstructured ids are reported alongside
// resolution failures.
func TestInvalidStructure(t *testing.T) {
	r := NewResolver(registered(t))
	issues, err := r.CheckReferences("FLB", "r1", "line.xml", []Ref{ref("LineRef", "Line1", "1")})
	require.NoError(t, err)
	assert.Equal(t, []string{RuleInvalidStructure.Code, RuleUnresolved.Code}, codes(issues))
}

// TestExternalValidators tests that external validators suppress unresolved issues.
func TestExternalValidators(t *testing.T) {
	r := NewResolver(registered(t), Codespaces("nsr"), EntityTypes("TypeOfFrame"))
	issues, err := r.CheckReferences("FLB", "r1", "line.xml", []Ref{
		ref("QuayRef", "NSR:Quay:7", ""),
		ref("TypeOfFrameRef", "NO:TypeOfFrame:NO_TIMETABLE", "1"),
		ref("QuayRef", "XYZ:Quay:7", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{RuleUnresolved.Code}, codes(issues))
	assert.Contains(t, issues[0].Message(), "XYZ:Quay:7")
}

// TestUnknownReport tests that checking against a missing report fails fatally.
func TestUnknownReport(t *testing.T) {
	r := NewResolver(idregistry.New())
	_, err := r.CheckReferences("FLB", "never", "line.xml", []Ref{ref("LineRef", "FLB:Line:1", "1")})
	assert.True(t, netexerrors.IsFatal(err))
}

// TestValidateDocument tests definition and reference checks over a parsed tree.
func TestValidateDocument(t *testing.T) {
	doc, err := xmltree.Parse("line.xml", []byte(`<PublicationDelivery>
  <ServiceJourney id="FLB:ServiceJourney:1">
    <LineRef ref="FLB:Line:1" version="2"/>
    <OperatorRef ref="FLB:Operator:9" version="1"/>
  </ServiceJourney>
</PublicationDelivery>`))
	require.NoError(t, err)

	reg := registered(t, line("1"))
	defs := idregistry.Collect(doc)
	reg.RegisterAll("r1", defs)

	issues, err := NewResolver(reg).Validate("FLB", "r1", doc, defs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		RuleVersionOnDefinition.Code,
		RuleVersionMismatch.Code,
		RuleUnresolved.Code,
	}, codes(issues))
	assert.Equal(t, "FLB:ServiceJourney:1", issues[1].Location.ObjectID)
	assert.Equal(t, 3, issues[1].Location.Line)
}

// TestCollect tests reference collection.
func TestCollect(t *testing.T) {
	doc, err := xmltree.Parse("a.xml", []byte(`<Root><A id="X:A:1"><BRef ref="X:B:1"/><CRef ref="X:C:1" version="1"/></A></Root>`))
	require.NoError(t, err)
	refs := Collect(doc)
	require.Len(t, refs, 2)
	assert.False(t, refs[0].HasVersion)
	assert.True(t, refs[1].HasVersion)
	assert.Equal(t, "X:A:1", refs[0].ObjectID)
	assert.Equal(t, "BRef", refs[0].ElementName)
}

// TestRulesUnique tests that every resolver rule has a distinct code.
func TestRulesUnique(t *testing.T) {
	set := report.NewRuleSet(Rules()...)
	assert.Equal(t, len(Rules()), set.Len())
}
