package objectgraph

import (
	"slices"

	"github.com/erraggy/netexval/netexmodel"
	"github.com/erraggy/netexval/report"
)

// Passing time rules.
var (
	RuleIncompleteTime = report.NewRule(
		"TIMETABLED_PASSING_TIME_INCOMPLETE_TIME",
		"ServiceJourney %s has an incomplete passing time %s",
		report.SeverityError,
	)
	RuleInconsistentTime = report.NewRule(
		"TIMETABLED_PASSING_TIME_INCONSISTENT_TIME",
		"ServiceJourney %s has a passing time %s that ends before it starts",
		report.SeverityError,
	)
	RuleNonIncreasingTime = report.NewRule(
		"TIMETABLED_PASSING_TIME_NON_INCREASING_TIME",
		"ServiceJourney %s has a passing time %s earlier than the previous stop",
		report.SeverityError,
	)
)

// PassingTimes checks the passing times of every service journey.
//
// A stop visit is flexible when its scheduled stop point is assigned to a
// flexible stop place. Regular visits need an arrival or a departure time,
// flexible visits need both bounds of their window. Each visit raises at most
// one issue, checking completeness, then consistency, then that it does not
// start before the previous issue-free visit ends.
type PassingTimes struct{}

// Name implements Validator.
func (PassingTimes) Name() string { return "passing-times" }

// Rules implements Validator.
func (PassingTimes) Rules() []report.Rule {
	return []report.Rule{RuleIncompleteTime, RuleInconsistentTime, RuleNonIncreasingTime}
}

// stopVisit is a passing time with its resolved bounds.
type stopVisit struct {
	tpt      *netexmodel.TimetabledPassingTime
	order    int
	flexible bool
}

// Validate implements Validator.
func (v PassingTimes) Validate(ctx *Context) ([]report.Issue, error) {
	patterns := ctx.Graph.JourneyPatterns()
	var issues []report.Issue
	for _, sj := range ctx.Graph.ServiceJourneys() {
		visits, err := v.visits(ctx, &sj, patterns[sj.PatternRef()])
		if err != nil {
			return nil, err
		}
		issues = append(issues, checkVisits(ctx, sj.ID, visits)...)
	}
	return issues, nil
}

// visits resolves the stop visits of sj in journey pattern order. Without a
// pattern the passing times keep document order and are all regular.
func (PassingTimes) visits(ctx *Context, sj *netexmodel.ServiceJourney, jp *netexmodel.JourneyPattern) ([]stopVisit, error) {
	var (
		index      map[string]int
		stopPoints map[string]string
	)
	if jp != nil {
		index = jp.StopPointIndex()
		stopPoints = make(map[string]string, len(jp.StopPoints))
		for _, sp := range jp.StopPoints {
			stopPoints[sp.ID] = sp.ScheduledStopPointRef.ID()
		}
	}

	visits := make([]stopVisit, 0, len(sj.PassingTimes))
	for i := range sj.PassingTimes {
		tpt := &sj.PassingTimes[i]
		visit := stopVisit{tpt: tpt, order: len(sj.PassingTimes) + i}
		spID := tpt.StopPointInJourneyPatternRef.ID()
		if pos, ok := index[spID]; ok {
			visit.order = pos
		}
		if ssp := stopPoints[spID]; ssp != "" {
			flexible, err := ctx.Repos.CommonData.IsFlexibleStopPoint(ctx.ReportID, ssp)
			if err != nil {
				return nil, err
			}
			visit.flexible = flexible
		}
		visits = append(visits, visit)
	}
	slices.SortStableFunc(visits, func(a, b stopVisit) int { return a.order - b.order })
	return visits, nil
}

func checkVisits(ctx *Context, journeyID string, visits []stopVisit) []report.Issue {
	var (
		issues      []report.Issue
		prevUpper   netexmodel.ElapsedTime
		hasPrevious bool
	)
	for _, visit := range visits {
		tpt := visit.tpt
		issue := func(rule report.Rule) report.Issue {
			return report.NewIssue(rule, ctx.location(tpt.ID), journeyID, tpt.ID)
		}

		lower, upper, complete := bounds(tpt, visit.flexible)
		switch {
		case !complete:
			issues = append(issues, issue(RuleIncompleteTime))
		case lower > upper:
			issues = append(issues, issue(RuleInconsistentTime))
		case hasPrevious && prevUpper > lower:
			issues = append(issues, issue(RuleNonIncreasingTime))
		default:
			prevUpper = upper
			hasPrevious = true
		}
	}
	return issues
}

// bounds returns the effective lower and upper bound of a stop visit. For
// regular visits a missing arrival or departure takes the value of the other.
func bounds(tpt *netexmodel.TimetabledPassingTime, flexible bool) (lower, upper netexmodel.ElapsedTime, complete bool) {
	if flexible {
		earliest, okEarliest := tpt.EarliestDeparture()
		latest, okLatest := tpt.LatestArrival()
		return earliest, latest, okEarliest && okLatest
	}
	arrival, okArrival := tpt.Arrival()
	departure, okDeparture := tpt.Departure()
	switch {
	case okArrival && okDeparture:
		return arrival, departure, true
	case okArrival:
		return arrival, arrival, true
	case okDeparture:
		return departure, departure, true
	default:
		return 0, 0, false
	}
}
