package ruletree

import (
	"strings"
	"sync"

	"github.com/erraggy/netexval/internal/xmltree"
	"github.com/erraggy/netexval/report"
)

func rule(code, message string, sev report.Severity) report.Rule {
	return report.NewRule(code, message, sev)
}

// Structural rules of the default tree.
var (
	RuleMissingParticipantRef     = rule("PUBLICATION_DELIVERY_MISSING_PARTICIPANT_REF", "Missing ParticipantRef on PublicationDelivery", report.SeverityError)
	RuleMissingDataObjects        = rule("PUBLICATION_DELIVERY_MISSING_DATA_OBJECTS", "PublicationDelivery has no dataObjects", report.SeverityError)
	RuleMultipleCompositeFrames   = rule("COMPOSITE_FRAME_MULTIPLE", "Exactly one CompositeFrame is expected in dataObjects", report.SeverityWarning)
	RuleCompositeFrameValidity    = rule("COMPOSITE_FRAME_MISSING_VALIDITY_CONDITIONS", "CompositeFrame must define validityConditions", report.SeverityError)
	RuleCompositeFrameSiteFrame   = rule("COMPOSITE_FRAME_UNEXPECTED_SITE_FRAME", "SiteFrame is not expected in a line file", report.SeverityWarning)
	RuleOperatorMissingName       = rule("RESOURCE_FRAME_OPERATOR_MISSING_NAME", "Operator must have a Name", report.SeverityError)
	RuleOperatorMissingContact    = rule("RESOURCE_FRAME_OPERATOR_MISSING_CONTACT", "Operator should have ContactDetails or CustomerServiceContactDetails", report.SeverityWarning)
	RuleAuthorityMissingName      = rule("RESOURCE_FRAME_AUTHORITY_MISSING_NAME", "Authority must have a Name", report.SeverityError)
	RuleAuthorityMissingNumber    = rule("RESOURCE_FRAME_AUTHORITY_MISSING_COMPANY_NUMBER", "Authority should have a CompanyNumber", report.SeverityWarning)
	RuleLineMissingName           = rule("SERVICE_FRAME_LINE_MISSING_NAME", "Line must have a Name", report.SeverityError)
	RuleLineMissingTransportMode  = rule("SERVICE_FRAME_LINE_MISSING_TRANSPORT_MODE", "Line must have a TransportMode", report.SeverityError)
	RuleLineMissingOperator       = rule("SERVICE_FRAME_LINE_MISSING_OPERATOR", "Line must reference an Operator or a GroupOfLines", report.SeverityError)
	RuleFlexibleLineMissingType   = rule("SERVICE_FRAME_FLEXIBLE_LINE_MISSING_TYPE", "FlexibleLine must have a FlexibleLineType", report.SeverityError)
	RuleStopPointMissingName      = rule("SERVICE_FRAME_SCHEDULED_STOP_POINT_MISSING_NAME", "ScheduledStopPoint must have a Name", report.SeverityWarning)
	RuleRouteMissingLine          = rule("SERVICE_FRAME_ROUTE_MISSING_LINE_REF", "Route must reference a Line or FlexibleLine", report.SeverityError)
	RuleRouteMissingPoints        = rule("SERVICE_FRAME_ROUTE_MISSING_POINTS", "Route must have points in sequence", report.SeverityError)
	RulePatternMissingRoute       = rule("SERVICE_FRAME_JOURNEY_PATTERN_MISSING_ROUTE_REF", "Journey pattern must reference a Route", report.SeverityError)
	RulePatternTooFewStops        = rule("SERVICE_FRAME_JOURNEY_PATTERN_TOO_FEW_STOPS", "Journey pattern must have at least two stop points", report.SeverityError)
	RulePatternFirstNoBoarding    = rule("SERVICE_FRAME_JOURNEY_PATTERN_FIRST_STOP_NO_BOARDING", "First stop point of a journey pattern must allow boarding", report.SeverityError)
	RulePatternLastNoAlighting    = rule("SERVICE_FRAME_JOURNEY_PATTERN_LAST_STOP_NO_ALIGHTING", "Last stop point of a journey pattern must allow alighting", report.SeverityError)
	RuleStopPointMissingDisplay   = rule("SERVICE_FRAME_FIRST_STOP_MISSING_DESTINATION_DISPLAY", "First stop point of a journey pattern must reference a DestinationDisplay", report.SeverityError)
	RuleDisplayMissingFrontText   = rule("SERVICE_FRAME_DESTINATION_DISPLAY_MISSING_FRONT_TEXT", "DestinationDisplay must have a FrontText", report.SeverityError)
	RuleAssignmentMissingQuay     = rule("SERVICE_FRAME_PASSENGER_STOP_ASSIGNMENT_MISSING_QUAY", "PassengerStopAssignment must reference a Quay", report.SeverityError)
	RuleServiceLinkMissingPoint   = rule("SERVICE_FRAME_SERVICE_LINK_MISSING_POINT", "ServiceLink must have FromPointRef and ToPointRef", report.SeverityError)
	RuleNoticeMissingText         = rule("SERVICE_FRAME_NOTICE_MISSING_TEXT", "Notice must have a Text", report.SeverityError)
	RuleUnexpectedTimingPoints    = rule("SERVICE_FRAME_UNEXPECTED_TIMING_POINTS", "timingPoints are not expected in a ServiceFrame", report.SeverityWarning)
	RuleDayTypeNotAssigned        = rule("SERVICE_CALENDAR_FRAME_DAY_TYPE_NOT_ASSIGNED", "DayType is not used by any DayTypeAssignment", report.SeverityWarning)
	RuleAssignmentMissingDate     = rule("SERVICE_CALENDAR_FRAME_DAY_TYPE_ASSIGNMENT_MISSING_DATE", "DayTypeAssignment must have a Date, OperatingDayRef or OperatingPeriodRef", report.SeverityError)
	RuleInvalidAvailability       = rule("SERVICE_CALENDAR_FRAME_INVALID_AVAILABILITY", "isAvailable must be true or false", report.SeverityError)
	RuleOperatingPeriodInverted   = rule("SERVICE_CALENDAR_FRAME_OPERATING_PERIOD_INVERTED", "OperatingPeriod FromDate is after ToDate", report.SeverityError)
	RuleJourneyMissingPattern     = rule("TIMETABLE_FRAME_SERVICE_JOURNEY_MISSING_PATTERN", "ServiceJourney must reference a journey pattern", report.SeverityError)
	RuleJourneyMissingPassing     = rule("TIMETABLE_FRAME_SERVICE_JOURNEY_MISSING_PASSING_TIMES", "ServiceJourney must have passing times", report.SeverityError)
	RuleJourneyMissingDayTypes    = rule("TIMETABLE_FRAME_SERVICE_JOURNEY_MISSING_DAY_TYPES", "ServiceJourney should reference day types or be dated", report.SeverityWarning)
	RulePassingTimeMissingPoint   = rule("TIMETABLE_FRAME_PASSING_TIME_MISSING_STOP_POINT_REF", "TimetabledPassingTime must reference a StopPointInJourneyPattern", report.SeverityError)
	RuleInvalidTransportMode      = rule("TIMETABLE_FRAME_INVALID_TRANSPORT_MODE", "Unsupported TransportMode", report.SeverityError)
	RuleInterchangeMissingJourney = rule("TIMETABLE_FRAME_INTERCHANGE_MISSING_JOURNEY", "ServiceJourneyInterchange must have FromJourneyRef and ToJourneyRef", report.SeverityError)
	RuleBlockMissingJourneys      = rule("VEHICLE_SCHEDULE_FRAME_BLOCK_MISSING_JOURNEYS", "Block must reference at least one journey", report.SeverityError)
	RuleBlockMissingDayTypes      = rule("VEHICLE_SCHEDULE_FRAME_BLOCK_MISSING_DAY_TYPES", "Block must reference at least one day type", report.SeverityError)
	RuleStopPlaceMissingName      = rule("SITE_FRAME_STOP_PLACE_MISSING_NAME", "StopPlace must have a Name", report.SeverityError)
	RuleStopPlaceMissingMode      = rule("SITE_FRAME_STOP_PLACE_MISSING_TRANSPORT_MODE", "StopPlace must have a TransportMode", report.SeverityWarning)
	RuleFlexibleStopPlaceArea     = rule("SITE_FRAME_FLEXIBLE_STOP_PLACE_MISSING_AREA", "FlexibleStopPlace must define at least one area", report.SeverityError)
)

// transportModes are the modes accepted by the Nordic profile.
var transportModes = map[string]bool{
	"air":        true,
	"bus":        true,
	"cableway":   true,
	"coach":      true,
	"funicular":  true,
	"metro":      true,
	"rail":       true,
	"taxi":       true,
	"tram":       true,
	"water":      true,
	"unknown":    true,
	"trolleyBus": true,
}

// DefaultTree returns the shared structural rule tree for NeTEx documents.
var DefaultTree = sync.OnceValue(func() *Tree {
	return MustBuild(defaultSpec())
})

func defaultSpec() *NodeSpec {
	frames := Node("CompositeFrame/frames | .", nil,
		resourceFrame(),
		serviceFrame(),
		serviceCalendarFrame(),
		timetableFrame(),
		vehicleScheduleFrame(),
		siteFrame(),
	)

	return Node("PublicationDelivery", []Rule{
		Exist(RuleMissingParticipantRef, "ParticipantRef"),
		Exist(RuleMissingDataObjects, "dataObjects"),
	},
		Node("dataObjects", []Rule{
			NotExist(RuleMultipleCompositeFrames, "CompositeFrame[2]"),
		},
			Node("CompositeFrame", []Rule{
				Exist(RuleCompositeFrameValidity, "validityConditions | ValidBetween"),
				NotExist(RuleCompositeFrameSiteFrame, "frames/SiteFrame[../ServiceFrame/lines]"),
			}),
			frames,
		),
	)
}

func resourceFrame() *NodeSpec {
	return Node("ResourceFrame", []Rule{
		NotExist(RuleOperatorMissingName, "organisations/Operator[not(Name)]"),
		NotExist(RuleOperatorMissingContact, "organisations/Operator[not(ContactDetails) and not(CustomerServiceContactDetails)]"),
		NotExist(RuleAuthorityMissingName, "organisations/Authority[not(Name)]"),
		NotExist(RuleAuthorityMissingNumber, "organisations/Authority[not(CompanyNumber)]"),
	})
}

func serviceFrame() *NodeSpec {
	return Node("ServiceFrame", []Rule{
		NotExist(RuleUnexpectedTimingPoints, "timingPoints"),
		NotExist(RuleStopPointMissingName, "scheduledStopPoints/ScheduledStopPoint[not(Name)]"),
		NotExist(RuleDisplayMissingFrontText, "destinationDisplays/DestinationDisplay[not(FrontText)]"),
		NotExist(RuleAssignmentMissingQuay, "stopAssignments/PassengerStopAssignment[not(QuayRef)]"),
		NotExist(RuleServiceLinkMissingPoint, "serviceLinks/ServiceLink[not(FromPointRef) or not(ToPointRef)]"),
		NotExist(RuleNoticeMissingText, "notices/Notice[not(Text)]"),
	},
		Node("lines", []Rule{
			NotExist(RuleLineMissingName, "Line[not(Name)] | FlexibleLine[not(Name)]"),
			NotExist(RuleLineMissingTransportMode, "Line[not(TransportMode)] | FlexibleLine[not(TransportMode)]"),
			NotExist(RuleLineMissingOperator, "*[not(OperatorRef) and not(RepresentedByGroupRef)]"),
			NotExist(RuleFlexibleLineMissingType, "FlexibleLine[not(FlexibleLineType)]"),
		}),
		Node("routes", []Rule{
			NotExist(RuleRouteMissingLine, "Route[not(LineRef) and not(FlexibleLineRef)]"),
			NotExist(RuleRouteMissingPoints, "Route[not(pointsInSequence/PointOnRoute)]"),
		}),
		Node("journeyPatterns/JourneyPattern | journeyPatterns/ServiceJourneyPattern", []Rule{
			NotExist(RulePatternMissingRoute, ".[not(RouteRef)]"),
			Check(RulePatternTooFewStops, tooFewStops),
			NotExist(RulePatternFirstNoBoarding, "pointsInSequence/StopPointInJourneyPattern[1][ForBoarding='false']"),
			Check(RulePatternLastNoAlighting, lastStopNoAlighting),
			NotExist(RuleStopPointMissingDisplay, "pointsInSequence/StopPointInJourneyPattern[1][not(DestinationDisplayRef)]"),
		}),
	)
}

func serviceCalendarFrame() *NodeSpec {
	return Node("ServiceCalendarFrame", []Rule{
		Check(RuleDayTypeNotAssigned, unassignedDayTypes),
		NotExist(RuleAssignmentMissingDate, "dayTypeAssignments/DayTypeAssignment[not(Date) and not(OperatingDayRef) and not(OperatingPeriodRef)]"),
		NotExist(RuleInvalidAvailability, "dayTypeAssignments/DayTypeAssignment[isAvailable and isAvailable!='true' and isAvailable!='false']"),
		Check(RuleOperatingPeriodInverted, invertedOperatingPeriods),
	})
}

func timetableFrame() *NodeSpec {
	return Node("TimetableFrame", []Rule{
		NotExist(RuleInterchangeMissingJourney, "journeyInterchanges/ServiceJourneyInterchange[not(FromJourneyRef) or not(ToJourneyRef)]"),
	},
		Node("vehicleJourneys/ServiceJourney", []Rule{
			NotExist(RuleJourneyMissingPattern, ".[not(JourneyPatternRef) and not(ServiceJourneyPatternRef)]"),
			NotExist(RuleJourneyMissingPassing, ".[not(passingTimes/TimetabledPassingTime)]"),
			NotExist(RuleJourneyMissingDayTypes, ".[not(dayTypes/DayTypeRef)][not(../DatedServiceJourney)]"),
			NotExist(RulePassingTimeMissingPoint, "passingTimes/TimetabledPassingTime[not(StopPointInJourneyPatternRef)]"),
			Check(RuleInvalidTransportMode, invalidTransportModes),
		}),
	)
}

func vehicleScheduleFrame() *NodeSpec {
	return Node("VehicleScheduleFrame", []Rule{
		NotExist(RuleBlockMissingJourneys, "blocks/Block[not(journeys/*)]"),
		NotExist(RuleBlockMissingDayTypes, "blocks/Block[not(dayTypes/DayTypeRef)]"),
	})
}

func siteFrame() *NodeSpec {
	return Node("SiteFrame", []Rule{
		NotExist(RuleStopPlaceMissingName, "stopPlaces/StopPlace[not(Name)]"),
		NotExist(RuleStopPlaceMissingMode, "stopPlaces/StopPlace[not(TransportMode)]"),
		NotExist(RuleFlexibleStopPlaceArea, "flexibleStopPlaces/FlexibleStopPlace[not(areas/*)]"),
	})
}

var (
	assignedDayTypes = MustCompile("dayTypeAssignments/DayTypeAssignment/DayTypeRef")
	dayTypes         = MustCompile("dayTypes/DayType")
	operatingPeriods = MustCompile("operatingPeriods/OperatingPeriod | operatingPeriods/UicOperatingPeriod")
)

func stopPoints(pattern *xmltree.Node) []*xmltree.Node {
	seq := pattern.Child("pointsInSequence")
	if seq == nil {
		return nil
	}
	return seq.ChildrenNamed("StopPointInJourneyPattern")
}

func tooFewStops(pattern *xmltree.Node) []*xmltree.Node {
	if len(stopPoints(pattern)) < 2 {
		return []*xmltree.Node{pattern}
	}
	return nil
}

func lastStopNoAlighting(pattern *xmltree.Node) []*xmltree.Node {
	points := stopPoints(pattern)
	if len(points) == 0 {
		return nil
	}
	last := points[len(points)-1]
	if last.ChildText("ForAlighting") == "false" {
		return []*xmltree.Node{last}
	}
	return nil
}

func unassignedDayTypes(frame *xmltree.Node) []*xmltree.Node {
	used := make(map[string]bool)
	for _, a := range assignedDayTypes.Select(frame) {
		used[a.AttrOr("ref")] = true
	}
	var failing []*xmltree.Node
	for _, dt := range dayTypes.Select(frame) {
		if !used[dt.ID()] {
			failing = append(failing, dt)
		}
	}
	return failing
}

func invertedOperatingPeriods(frame *xmltree.Node) []*xmltree.Node {
	var failing []*xmltree.Node
	for _, p := range operatingPeriods.Select(frame) {
		from, to := p.ChildText("FromDate"), p.ChildText("ToDate")
		// xsd:dateTime values of equal precision order lexically
		if from != "" && to != "" && len(from) == len(to) && from > to {
			failing = append(failing, p)
		}
	}
	return failing
}

func invalidTransportModes(journey *xmltree.Node) []*xmltree.Node {
	mode := journey.Child("TransportMode")
	if mode == nil || transportModes[strings.TrimSpace(mode.Text)] {
		return nil
	}
	return []*xmltree.Node{mode}
}
