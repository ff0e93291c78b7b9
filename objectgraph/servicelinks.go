package objectgraph

import (
	"github.com/erraggy/netexval/report"
)

// RuleServiceLinkMismatch is raised when a service link of a journey pattern
// does not connect the consecutive stop points it is placed between.
var RuleServiceLinkMismatch = report.NewRule(
	"SERVICE_LINK_STOP_POINT_MISMATCH",
	"ServiceLink %s in journey pattern %s connects %s to %s, expected %s to %s",
	report.SeverityWarning,
)

// ServiceLinks checks the n-th service link of each journey pattern against its
// n-th and n+1-th stop points. Links unknown to the repository are skipped;
// unresolved references are reported by the reference checks.
type ServiceLinks struct{}

// Name implements Validator.
func (ServiceLinks) Name() string { return "service-links" }

// Rules implements Validator.
func (ServiceLinks) Rules() []report.Rule { return []report.Rule{RuleServiceLinkMismatch} }

// Validate implements Validator.
func (ServiceLinks) Validate(ctx *Context) ([]report.Issue, error) {
	var issues []report.Issue
	for _, jp := range ctx.Graph.AllJourneyPatterns() {
		stops := jp.OrderedStopPoints()
		for i, sl := range jp.OrderedServiceLinks() {
			linkID := sl.ServiceLinkRef.ID()
			if linkID == "" {
				continue
			}
			link, ok, err := ctx.Repos.CommonData.ServiceLink(ctx.ReportID, linkID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			var from, to string
			if i < len(stops) {
				from = stops[i].ScheduledStopPointRef.ID()
			}
			if i+1 < len(stops) {
				to = stops[i+1].ScheduledStopPointRef.ID()
			}
			if link.From != from || link.To != to {
				issues = append(issues, report.NewIssue(RuleServiceLinkMismatch, ctx.location(sl.ID),
					linkID, jp.ID, link.From, link.To, from, to))
			}
		}
	}
	return issues, nil
}
