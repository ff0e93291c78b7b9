package objectgraph

import (
	"github.com/erraggy/netexval/report"
)

// RuleMissingAssignment is raised for a scheduled stop point used by a journey
// pattern but assigned neither to a quay nor to a flexible stop place.
var RuleMissingAssignment = report.NewRule(
	"SCHEDULED_STOP_POINT_MISSING_ASSIGNMENT",
	"ScheduledStopPoint %s used by journey pattern %s has no stop assignment",
	report.SeverityError,
)

// StopAssignments checks that every scheduled stop point used by a journey
// pattern is assigned to a quay or a flexible stop place.
type StopAssignments struct{}

// Name implements Validator.
func (StopAssignments) Name() string { return "stop-assignments" }

// Rules implements Validator.
func (StopAssignments) Rules() []report.Rule { return []report.Rule{RuleMissingAssignment} }

// Validate implements Validator. Each stop point is reported once per file.
func (StopAssignments) Validate(ctx *Context) ([]report.Issue, error) {
	var issues []report.Issue
	reported := make(map[string]bool)
	for _, jp := range ctx.Graph.AllJourneyPatterns() {
		for _, sp := range jp.OrderedStopPoints() {
			ssp := sp.ScheduledStopPointRef.ID()
			if ssp == "" || reported[ssp] {
				continue
			}
			_, hasQuay, err := ctx.Repos.CommonData.QuayForStopPoint(ctx.ReportID, ssp)
			if err != nil {
				return nil, err
			}
			flexible, err := ctx.Repos.CommonData.IsFlexibleStopPoint(ctx.ReportID, ssp)
			if err != nil {
				return nil, err
			}
			if !hasQuay && !flexible {
				reported[ssp] = true
				issues = append(issues, report.NewIssue(RuleMissingAssignment, ctx.location(sp.ID), ssp, jp.ID))
			}
		}
	}
	return issues, nil
}
