package objectgraph

import (
	"github.com/erraggy/netexval/report"
)

// RuleTransportModeMismatch is raised when a journey serves a quay of a stop
// place with an incompatible transport mode.
var RuleTransportModeMismatch = report.NewRule(
	"TRANSPORT_MODE_MISMATCH_STOP_PLACE",
	"ServiceJourney %s with transport mode %s stops at %s of stop place %s with transport mode %s",
	report.SeverityError,
)

// TransportModes checks the transport mode of each service journey, or of its
// line when the journey does not override it, against the stop places of the
// quays it serves. Bus and coach are interchangeable.
type TransportModes struct{}

// Name implements Validator.
func (TransportModes) Name() string { return "transport-modes" }

// Rules implements Validator.
func (TransportModes) Rules() []report.Rule { return []report.Rule{RuleTransportModeMismatch} }

// Validate implements Validator. A stop point is reported once per mode and file.
func (TransportModes) Validate(ctx *Context) ([]report.Issue, error) {
	lines := ctx.Graph.Lines()
	patterns := ctx.Graph.JourneyPatterns()
	reported := make(map[[2]string]bool)

	var issues []report.Issue
	for _, sj := range ctx.Graph.ServiceJourneys() {
		mode := sj.TransportMode
		if line := lines[sj.LineID()]; mode == "" && line != nil {
			mode = line.TransportMode
		}
		jp := patterns[sj.PatternRef()]
		if mode == "" || jp == nil {
			continue
		}
		for _, sp := range jp.OrderedStopPoints() {
			ssp := sp.ScheduledStopPointRef.ID()
			key := [2]string{ssp, mode}
			if ssp == "" || reported[key] {
				continue
			}
			quay, ok, err := ctx.Repos.CommonData.QuayForStopPoint(ctx.ReportID, ssp)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			place, ok, err := ctx.Repos.StopPlaces.StopPlaceForQuay(ctx.ReportID, quay)
			if err != nil {
				return nil, err
			}
			if !ok || place.TransportMode == "" || compatibleModes(mode, place.TransportMode) {
				continue
			}
			reported[key] = true
			issues = append(issues, report.NewIssue(RuleTransportModeMismatch, ctx.location(sj.ID),
				sj.ID, mode, quay, place.ID, place.TransportMode))
		}
	}
	return issues, nil
}

func compatibleModes(journey, stopPlace string) bool {
	if journey == stopPlace {
		return true
	}
	road := func(m string) bool { return m == "bus" || m == "coach" }
	return road(journey) && road(stopPlace)
}
