// Package idregistry tracks the identifiers defined by the files of a report.
//
// A Registry is a symbol table keyed by report id. State for a report id is
// created on first registration (or by Initialize) and released by CleanUp.
// Queries against a report id without state fail with a fatal
// netexerrors.Error, which separates "no such identifier" from "this report was
// never started".
package idregistry

import (
	"strings"
	"sync"

	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/netexerrors"
	"github.com/erraggy/netexval/report"
)

// RuleDuplicate is raised for each repeated definition of an (id, version) pair.
var RuleDuplicate = report.NewRule(
	"NETEX_ID_DUPLICATE",
	"Duplicate element identifier %s with version %s, first defined in %s",
	report.SeverityError,
)

// IDVersion is one definition of an identifier.
type IDVersion struct {
	ID          string
	Version     string
	ElementName string
	FileName    string
	Line        int
	Column      int
}

// EntityType returns the entity type token of the identifier.
func (v IDVersion) EntityType() string {
	return EntityType(v.ID)
}

// Location returns the source location of the definition.
func (v IDVersion) Location() report.Location {
	return report.Location{ObjectID: v.ID, FileName: v.FileName, Line: v.Line, Column: v.Column}
}

// EntityType extracts the type token from an identifier in CODESPACE:Type:Local
// form. It returns "" for identifiers that do not follow that structure.
func EntityType(id string) string {
	parts := strings.Split(id, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ""
	}
	return parts[1]
}

// Codespace returns the codespace token of a structured identifier.
func Codespace(id string) string {
	if EntityType(id) == "" {
		return ""
	}
	cs, _, _ := strings.Cut(id, ":")
	return cs
}

// Collect returns a definition for every element of doc carrying an id
// attribute, in document order.
func Collect(doc *xmltree.Document) []IDVersion {
	var out []IDVersion
	doc.Root.Walk(func(n *xmltree.Node) bool {
		if id := n.ID(); id != "" {
			out = append(out, IDVersion{
				ID:          id,
				Version:     n.AttrOr("version"),
				ElementName: n.Name,
				FileName:    doc.FileName,
				Line:        n.Line,
				Column:      n.Column,
			})
		}
		return true
	})
	return out
}

type reportState struct {
	ids map[string][]IDVersion
}

// Registry is safe for concurrent use by different report ids.
type Registry struct {
	mu      sync.Mutex
	reports map[string]*reportState
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{reports: make(map[string]*reportState)}
}

// Initialize creates empty state for reportID if none exists.
func (r *Registry) Initialize(reportID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stateLocked(reportID)
}

func (r *Registry) stateLocked(reportID string) *reportState {
	st, ok := r.reports[reportID]
	if !ok {
		st = &reportState{ids: make(map[string][]IDVersion)}
		r.reports[reportID] = st
	}
	return st
}

// Register stores v under reportID. When the same (id, version) pair is already
// present it returns one duplicate issue; the new occurrence is stored either way.
func (r *Registry) Register(reportID string, v IDVersion) []report.Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.stateLocked(reportID)
	var issues []report.Issue
	for _, prev := range st.ids[v.ID] {
		if prev.Version == v.Version {
			issues = append(issues, report.NewIssue(RuleDuplicate, v.Location(), v.ID, v.Version, prev.Location().String()))
			break
		}
	}
	st.ids[v.ID] = append(st.ids[v.ID], v)
	return issues
}

// RegisterAll registers every definition in order and returns the duplicate issues.
func (r *Registry) RegisterAll(reportID string, vs []IDVersion) []report.Issue {
	var issues []report.Issue
	for _, v := range vs {
		issues = append(issues, r.Register(reportID, v)...)
	}
	if len(vs) == 0 {
		r.Initialize(reportID)
	}
	return issues
}

// Lookup returns the distinct versions registered for id, in registration
// order. An unknown id yields an empty result.
func (r *Registry) Lookup(reportID, id string) ([]string, error) {
	occ, err := r.Occurrences(reportID, id)
	if err != nil {
		return nil, err
	}
	var versions []string
	seen := make(map[string]bool, len(occ))
	for _, v := range occ {
		if !seen[v.Version] {
			seen[v.Version] = true
			versions = append(versions, v.Version)
		}
	}
	return versions, nil
}

// Occurrences returns a copy of every definition registered for id.
func (r *Registry) Occurrences(reportID, id string) ([]IDVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.reports[reportID]
	if !ok {
		return nil, netexerrors.UnknownReport("idregistry.Lookup", reportID)
	}
	occ := st.ids[id]
	if len(occ) == 0 {
		return nil, nil
	}
	return append([]IDVersion(nil), occ...), nil
}

// Contains reports whether id has at least one definition.
func (r *Registry) Contains(reportID, id string) (bool, error) {
	occ, err := r.Occurrences(reportID, id)
	return len(occ) > 0, err
}

// LocalIDs returns the set of ids defined in fileName.
func (r *Registry) LocalIDs(reportID, fileName string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.reports[reportID]
	if !ok {
		return nil, netexerrors.UnknownReport("idregistry.LocalIDs", reportID)
	}
	out := make(map[string]struct{})
	for id, occ := range st.ids {
		for _, v := range occ {
			if v.FileName == fileName {
				out[id] = struct{}{}
				break
			}
		}
	}
	return out, nil
}

// Len returns the number of distinct ids registered for reportID.
func (r *Registry) Len(reportID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.reports[reportID]
	if !ok {
		return 0, netexerrors.UnknownReport("idregistry.Len", reportID)
	}
	return len(st.ids), nil
}

// CleanUp releases all state for reportID.
func (r *Registry) CleanUp(reportID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reports, reportID)
}
