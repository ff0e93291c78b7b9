// Package grammar validates documents against the NeTEx XML schema.
//
// Grammar findings are issues, never errors. The number of issues reported per
// file is capped; issues beyond the cap are dropped and the pass reports itself
// truncated.
package grammar

import (
	"bytes"
	"errors"
	"io/fs"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"

	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/netexerrors"
	"github.com/erraggy/netexval/report"
)

// DefaultMaxErrors is the default cap on grammar issues per file.
const DefaultMaxErrors = 100

// RuleSchema is raised for every schema violation and for content that is not
// well-formed XML.
var RuleSchema = report.NewRule("NETEX_SCHEMA", "%s", report.SeverityError)

// Validator checks a document against a grammar.
type Validator interface {
	// Validate returns the grammar issues of content, at most the configured
	// cap, and whether issues beyond the cap were dropped.
	Validate(fileName string, content []byte) (issues []report.Issue, truncated bool, err error)
}

// Option configures an XSD validator.
type Option func(*XSD)

// WithMaxErrors sets the per-file issue cap. Values below 1 disable the cap.
//
// The cap bounds the issues returned, not the work of the pass: the schema
// validator collects every violation of the document before the cap is
// applied, so memory and time still grow with the number of violations.
func WithMaxErrors(n int) Option {
	return func(x *XSD) {
		x.maxErrors = n
	}
}

// XSD validates documents with a compiled XML schema.
type XSD struct {
	schema    *xsd.Schema
	maxErrors int
}

// Load compiles the schema at location in fsys. Failure to load is fatal.
func Load(fsys fs.FS, location string, opts ...Option) (*XSD, error) {
	schema, err := xsd.Load(fsys, location)
	if err != nil {
		return nil, netexerrors.Fatalf("grammar.Load", errors.Join(netexerrors.ErrConfig, err), "loading schema %s", location)
	}
	return newXSD(schema, opts), nil
}

// LoadFile compiles the schema file at path. Failure to load is fatal.
func LoadFile(path string, opts ...Option) (*XSD, error) {
	schema, err := xsd.LoadFile(path)
	if err != nil {
		return nil, netexerrors.Fatalf("grammar.LoadFile", errors.Join(netexerrors.ErrConfig, err), "loading schema %s", path)
	}
	return newXSD(schema, opts), nil
}

func newXSD(schema *xsd.Schema, opts []Option) *XSD {
	x := &XSD{schema: schema, maxErrors: DefaultMaxErrors}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// MaxErrors returns the per-file issue cap.
func (x *XSD) MaxErrors() int {
	return x.maxErrors
}

// Validate implements Validator. The returned error is always nil.
func (x *XSD) Validate(fileName string, content []byte) ([]report.Issue, bool, error) {
	err := x.schema.Validate(bytes.NewReader(content))
	if err == nil {
		return nil, false, nil
	}
	violations, ok := xsderrors.AsValidations(err)
	if !ok {
		return []report.Issue{report.NewIssue(RuleSchema, report.FileLocation(fileName, ""), err.Error())}, false, nil
	}

	var issues []report.Issue
	for i := range violations {
		if x.maxErrors > 0 && len(issues) == x.maxErrors {
			return issues, true, nil
		}
		v := &violations[i]
		loc := report.Location{FileName: fileName, Line: v.Line, Column: v.Column}
		issues = append(issues, report.NewIssue(RuleSchema, loc, v.Error()))
	}
	return issues, false, nil
}

// MalformedIssue converts a tree parse failure into the single grammar issue
// reported for content that is not well-formed.
func MalformedIssue(fileName string, err error) report.Issue {
	loc := report.FileLocation(fileName, "")
	var se *xmltree.SyntaxError
	if errors.As(err, &se) {
		return report.NewIssue(RuleSchema, loc, "malformed XML: "+se.Error())
	}
	return report.NewIssue(RuleSchema, loc, "malformed XML: "+err.Error())
}

var _ Validator = (*XSD)(nil)
