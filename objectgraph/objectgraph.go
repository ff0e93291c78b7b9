// Package objectgraph holds business rules evaluated over the typed object
// graph of a document together with the per-report repositories.
//
// Validators run in a fixed order per file. Each returns the issues it found;
// an error is returned only for caller protocol violations, such as querying a
// repository for a report id that was never initialized.
package objectgraph

import (
	"github.com/erraggy/netexval/netexmodel"
	"github.com/erraggy/netexval/report"
	"github.com/erraggy/netexval/repository"
)

// Context is the input of an object-graph validation.
type Context struct {
	Codespace string
	ReportID  string
	FileName  string
	Graph     *netexmodel.PublicationDelivery
	Repos     *repository.Repositories
}

func (c *Context) location(objectID string) report.Location {
	return report.FileLocation(c.FileName, objectID)
}

// Validator is a business rule over the object graph.
type Validator interface {
	// Name identifies the validator in logs.
	Name() string
	// Rules returns every rule the validator can raise.
	Rules() []report.Rule
	// Validate checks ctx.Graph.
	Validate(ctx *Context) ([]report.Issue, error)
}

// Defaults returns the built-in validators in evaluation order.
func Defaults() []Validator {
	return []Validator{
		PassingTimes{},
		StopAssignments{},
		ServiceLinks{},
		TransportModes{},
	}
}
