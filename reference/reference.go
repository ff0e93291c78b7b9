// Package reference checks identifier versions and resolves references against
// an idregistry.Registry.
//
// The checks are independent: a single reference can raise an invalid structure
// issue, a missing version issue and a resolution issue at the same time.
package reference

import (
	"slices"
	"strings"

	"github.com/erraggy/netexval/idregistry"
	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/report"
)

// AnyVersion is the version value that matches every registered version.
const AnyVersion = "any"

// Ref is one reference found in a document.
type Ref struct {
	ID          string
	Version     string
	HasVersion  bool
	ElementName string
	ObjectID    string
	FileName    string
	Line        int
	Column      int
}

// Location returns the source location of the reference.
func (r Ref) Location() report.Location {
	return report.Location{ObjectID: r.ObjectID, FileName: r.FileName, Line: r.Line, Column: r.Column}
}

// Collect returns every element of doc carrying a ref attribute, in document order.
func Collect(doc *xmltree.Document) []Ref {
	var out []Ref
	doc.Root.Walk(func(n *xmltree.Node) bool {
		id, ok := n.Attr("ref")
		if !ok {
			return true
		}
		version, hasVersion := n.Attr("version")
		objectID := ""
		if n.Parent != nil {
			objectID = n.Parent.ObjectID()
		}
		out = append(out, Ref{
			ID:          id,
			Version:     version,
			HasVersion:  hasVersion && version != "",
			ElementName: n.Name,
			ObjectID:    objectID,
			FileName:    doc.FileName,
			Line:        n.Line,
			Column:      n.Column,
		})
		return true
	})
	return out
}

// ExternalValidator accepts references that are resolved outside the dataset,
// such as ids owned by a national stop register.
type ExternalValidator interface {
	Accepts(ref Ref) bool
}

// ExternalFunc adapts a function to ExternalValidator.
type ExternalFunc func(ref Ref) bool

// Accepts implements ExternalValidator.
func (f ExternalFunc) Accepts(ref Ref) bool { return f(ref) }

// Codespaces returns an ExternalValidator accepting every reference whose id
// belongs to one of the given codespaces. Comparison is case-insensitive.
func Codespaces(codespaces ...string) ExternalValidator {
	return ExternalFunc(func(ref Ref) bool {
		cs := idregistry.Codespace(ref.ID)
		return cs != "" && slices.ContainsFunc(codespaces, func(c string) bool {
			return strings.EqualFold(c, cs)
		})
	})
}

// EntityTypes returns an ExternalValidator accepting every reference to one of
// the given entity types.
func EntityTypes(types ...string) ExternalValidator {
	return ExternalFunc(func(ref Ref) bool {
		return slices.Contains(types, idregistry.EntityType(ref.ID))
	})
}

// Resolver runs the definition and reference checks.
type Resolver struct {
	registry *idregistry.Registry
	external []ExternalValidator
}

// NewResolver creates a resolver reading from registry.
func NewResolver(registry *idregistry.Registry, external ...ExternalValidator) *Resolver {
	return &Resolver{registry: registry, external: external}
}

// CheckDefinitions reports every definition without a version.
func (r *Resolver) CheckDefinitions(defs []idregistry.IDVersion) []report.Issue {
	var issues []report.Issue
	for _, d := range defs {
		if d.Version == "" {
			issues = append(issues, report.NewIssue(RuleVersionOnDefinition, d.Location(), d.ElementName, d.ID))
		}
	}
	return issues
}

// CheckReferences validates refs found in fileName against the registry state of
// reportID. The returned error is non-nil only when reportID has no registry
// state.
func (r *Resolver) CheckReferences(codespace, reportID, fileName string, refs []Ref) ([]report.Issue, error) {
	local, err := r.registry.LocalIDs(reportID, fileName)
	if err != nil {
		return nil, err
	}

	var issues []report.Issue
	for _, ref := range refs {
		loc := ref.Location()
		entityType := idregistry.EntityType(ref.ID)
		if entityType == "" {
			issues = append(issues, report.NewIssue(RuleInvalidStructure, loc, ref.ID, ref.ElementName))
		}

		if !ref.HasVersion && isLocal(codespace, ref.ID, local) {
			issues = append(issues, report.NewIssue(RuleVersionOnReference, loc, ref.ElementName, ref.ID))
		}

		versions, err := r.registry.Lookup(reportID, ref.ID)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			if !r.acceptsExternal(ref) {
				issues = append(issues, report.NewIssue(RuleUnresolved, loc, ref.ID, ref.ElementName))
			}
			continue
		}
		if ref.HasVersion && ref.Version != AnyVersion && !slices.Contains(versions, ref.Version) {
			issues = append(issues, report.NewIssue(RuleVersionMismatch, loc, ref.ElementName, ref.ID, ref.Version))
			continue
		}
		if entityType != "" && !Allowed(entityType, ref.ElementName) {
			issues = append(issues, report.NewIssue(RuleInvalidType, loc, ref.ElementName, entityType, ref.ID))
		}
	}
	return issues, nil
}

// Validate runs the definition check on defs and the reference checks on every
// reference of doc.
func (r *Resolver) Validate(codespace, reportID string, doc *xmltree.Document, defs []idregistry.IDVersion) ([]report.Issue, error) {
	issues := r.CheckDefinitions(defs)
	refIssues, err := r.CheckReferences(codespace, reportID, doc.FileName, Collect(doc))
	if err != nil {
		return nil, err
	}
	return append(issues, refIssues...), nil
}

func (r *Resolver) acceptsExternal(ref Ref) bool {
	for _, v := range r.external {
		if v.Accepts(ref) {
			return true
		}
	}
	return false
}

// isLocal reports whether id belongs to the report codespace or is defined in
// the current file.
func isLocal(codespace, id string, defined map[string]struct{}) bool {
	if _, ok := defined[id]; ok {
		return true
	}
	cs := idregistry.Codespace(id)
	return cs != "" && strings.EqualFold(cs, codespace)
}
