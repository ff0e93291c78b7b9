// Package netexmodel binds the subset of the NeTEx object model used by the
// object-graph validators to Go types.
//
// Element names match the NeTEx XSD; namespaces are ignored. Scalar values are
// kept as strings so that binding never fails on content the grammar pass has
// already reported.
package netexmodel

import (
	"encoding/xml"
	"fmt"

	"github.com/erraggy/netexval/internal/xmltree"
)

// Ref is a versioned reference to another NeTEx entity.
type Ref struct {
	Ref     string `xml:"ref,attr"`
	Version string `xml:"version,attr"`
}

// IsSet reports whether the reference carries an id.
func (r *Ref) IsSet() bool {
	return r != nil && r.Ref != ""
}

// ID returns the referenced id, or "" for a nil reference.
func (r *Ref) ID() string {
	if r == nil {
		return ""
	}
	return r.Ref
}

// Entity holds the identity attributes shared by all NeTEx entities.
type Entity struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

// PublicationDelivery is the document root.
type PublicationDelivery struct {
	XMLName              xml.Name    `xml:"PublicationDelivery"`
	PublicationTimestamp string      `xml:"PublicationTimestamp"`
	ParticipantRef       string      `xml:"ParticipantRef"`
	DataObjects          DataObjects `xml:"dataObjects"`
}

// Frames holds frames either directly under dataObjects or inside a
// CompositeFrame.
type Frames struct {
	ResourceFrames        []ResourceFrame        `xml:"ResourceFrame"`
	ServiceFrames         []ServiceFrame         `xml:"ServiceFrame"`
	ServiceCalendarFrames []ServiceCalendarFrame `xml:"ServiceCalendarFrame"`
	TimetableFrames       []TimetableFrame       `xml:"TimetableFrame"`
	SiteFrames            []SiteFrame            `xml:"SiteFrame"`
}

// DataObjects is the dataObjects container.
type DataObjects struct {
	Frames
	CompositeFrames []CompositeFrame `xml:"CompositeFrame"`
}

// CompositeFrame groups frames sharing validity conditions.
type CompositeFrame struct {
	Entity
	Frames Frames `xml:"frames"`
}

// ResourceFrame holds organisations.
type ResourceFrame struct {
	Entity
	Authorities []Organisation `xml:"organisations>Authority"`
	Operators   []Organisation `xml:"organisations>Operator"`
}

// Organisation is an Authority or Operator.
type Organisation struct {
	Entity
	Name string `xml:"Name"`
}

// ServiceFrame holds lines, stop points, links, assignments and journey patterns.
type ServiceFrame struct {
	Entity
	Lines                    []Line                    `xml:"lines>Line"`
	FlexibleLines            []Line                    `xml:"lines>FlexibleLine"`
	ScheduledStopPoints      []ScheduledStopPoint      `xml:"scheduledStopPoints>ScheduledStopPoint"`
	ServiceLinks             []ServiceLink             `xml:"serviceLinks>ServiceLink"`
	PassengerStopAssignments []PassengerStopAssignment `xml:"stopAssignments>PassengerStopAssignment"`
	FlexibleStopAssignments  []FlexibleStopAssignment  `xml:"stopAssignments>FlexibleStopAssignment"`
	JourneyPatterns          []JourneyPattern          `xml:"journeyPatterns>JourneyPattern"`
	ServiceJourneyPatterns   []JourneyPattern          `xml:"journeyPatterns>ServiceJourneyPattern"`
}

// Line is a Line or FlexibleLine.
type Line struct {
	Entity
	Name             string `xml:"Name"`
	TransportMode    string `xml:"TransportMode"`
	FlexibleLineType string `xml:"FlexibleLineType"`
}

// ScheduledStopPoint is a stop point used by journey patterns.
type ScheduledStopPoint struct {
	Entity
	Name string `xml:"Name"`
}

// ServiceLink links two scheduled stop points.
type ServiceLink struct {
	Entity
	FromPointRef *Ref `xml:"FromPointRef"`
	ToPointRef   *Ref `xml:"ToPointRef"`
}

// PassengerStopAssignment maps a scheduled stop point to a quay.
type PassengerStopAssignment struct {
	Entity
	ScheduledStopPointRef *Ref `xml:"ScheduledStopPointRef"`
	QuayRef               *Ref `xml:"QuayRef"`
}

// FlexibleStopAssignment maps a scheduled stop point to a flexible stop place.
type FlexibleStopAssignment struct {
	Entity
	ScheduledStopPointRef *Ref `xml:"ScheduledStopPointRef"`
	FlexibleStopPlaceRef  *Ref `xml:"FlexibleStopPlaceRef"`
}

// JourneyPattern is a JourneyPattern or ServiceJourneyPattern.
type JourneyPattern struct {
	Entity
	RouteRef          *Ref                          `xml:"RouteRef"`
	StopPoints        []StopPointInJourneyPattern   `xml:"pointsInSequence>StopPointInJourneyPattern"`
	ServiceLinksInSeq []ServiceLinkInJourneyPattern `xml:"linksInSequence>ServiceLinkInJourneyPattern"`
}

// StopPointInJourneyPattern is one stop of a journey pattern.
type StopPointInJourneyPattern struct {
	Entity
	Order                 string `xml:"order,attr"`
	ScheduledStopPointRef *Ref   `xml:"ScheduledStopPointRef"`
	ForAlighting          string `xml:"ForAlighting"`
	ForBoarding           string `xml:"ForBoarding"`
}

// ServiceLinkInJourneyPattern is one link of a journey pattern.
type ServiceLinkInJourneyPattern struct {
	Entity
	Order          string `xml:"order,attr"`
	ServiceLinkRef *Ref   `xml:"ServiceLinkRef"`
}

// ServiceCalendarFrame holds day types.
type ServiceCalendarFrame struct {
	Entity
	DayTypes []Entity `xml:"dayTypes>DayType"`
}

// TimetableFrame holds service journeys.
type TimetableFrame struct {
	Entity
	ServiceJourneys []ServiceJourney `xml:"vehicleJourneys>ServiceJourney"`
}

// ServiceJourney is a timed journey along a journey pattern.
type ServiceJourney struct {
	Entity
	TransportMode            string                  `xml:"TransportMode"`
	LineRef                  *Ref                    `xml:"LineRef"`
	FlexibleLineRef          *Ref                    `xml:"FlexibleLineRef"`
	JourneyPatternRef        *Ref                    `xml:"JourneyPatternRef"`
	ServiceJourneyPatternRef *Ref                    `xml:"ServiceJourneyPatternRef"`
	PassingTimes             []TimetabledPassingTime `xml:"passingTimes>TimetabledPassingTime"`
}

// PatternRef returns the journey pattern reference, whichever element carries it.
func (sj *ServiceJourney) PatternRef() string {
	if sj.JourneyPatternRef.IsSet() {
		return sj.JourneyPatternRef.Ref
	}
	return sj.ServiceJourneyPatternRef.ID()
}

// LineID returns the line reference, whichever element carries it.
func (sj *ServiceJourney) LineID() string {
	if sj.LineRef.IsSet() {
		return sj.LineRef.Ref
	}
	return sj.FlexibleLineRef.ID()
}

// TimetabledPassingTime is the timing of a service journey at one stop point.
type TimetabledPassingTime struct {
	Entity
	StopPointInJourneyPatternRef *Ref   `xml:"StopPointInJourneyPatternRef"`
	ArrivalTime                  string `xml:"ArrivalTime"`
	ArrivalDayOffset             string `xml:"ArrivalDayOffset"`
	DepartureTime                string `xml:"DepartureTime"`
	DepartureDayOffset           string `xml:"DepartureDayOffset"`
	EarliestDepartureTime        string `xml:"EarliestDepartureTime"`
	EarliestDepartureDayOffset   string `xml:"EarliestDepartureDayOffset"`
	LatestArrivalTime            string `xml:"LatestArrivalTime"`
	LatestArrivalDayOffset       string `xml:"LatestArrivalDayOffset"`
}

// SiteFrame holds stop places and flexible stop places.
type SiteFrame struct {
	Entity
	StopPlaces         []StopPlace         `xml:"stopPlaces>StopPlace"`
	FlexibleStopPlaces []FlexibleStopPlace `xml:"flexibleStopPlaces>FlexibleStopPlace"`
}

// StopPlace is a physical stop with quays.
type StopPlace struct {
	Entity
	Name          string   `xml:"Name"`
	TransportMode string   `xml:"TransportMode"`
	BusSubmode    string   `xml:"BusSubmode"`
	RailSubmode   string   `xml:"RailSubmode"`
	Quays         []Entity `xml:"quays>Quay"`
}

// FlexibleStopPlace is an area served on demand.
type FlexibleStopPlace struct {
	Entity
	Name          string `xml:"Name"`
	TransportMode string `xml:"TransportMode"`
}

// Parse binds content to the object model.
func Parse(content []byte) (*PublicationDelivery, error) {
	var pd PublicationDelivery
	dec := xmltree.NewDecoder(content)
	if err := dec.Decode(&pd); err != nil {
		return nil, fmt.Errorf("netexmodel: binding publication delivery: %w", err)
	}
	return &pd, nil
}

// AllFrames returns the frames found directly under dataObjects followed by the
// frames of every CompositeFrame, in document order of the containers.
func (pd *PublicationDelivery) AllFrames() []Frames {
	out := []Frames{pd.DataObjects.Frames}
	for _, cf := range pd.DataObjects.CompositeFrames {
		out = append(out, cf.Frames)
	}
	return out
}

// ServiceFrames returns every ServiceFrame of the document.
func (pd *PublicationDelivery) ServiceFrames() []ServiceFrame {
	var out []ServiceFrame
	for _, f := range pd.AllFrames() {
		out = append(out, f.ServiceFrames...)
	}
	return out
}

// TimetableFrames returns every TimetableFrame of the document.
func (pd *PublicationDelivery) TimetableFrames() []TimetableFrame {
	var out []TimetableFrame
	for _, f := range pd.AllFrames() {
		out = append(out, f.TimetableFrames...)
	}
	return out
}

// SiteFrames returns every SiteFrame of the document.
func (pd *PublicationDelivery) SiteFrames() []SiteFrame {
	var out []SiteFrame
	for _, f := range pd.AllFrames() {
		out = append(out, f.SiteFrames...)
	}
	return out
}

// ServiceJourneys returns every ServiceJourney of the document.
func (pd *PublicationDelivery) ServiceJourneys() []ServiceJourney {
	var out []ServiceJourney
	for _, tf := range pd.TimetableFrames() {
		out = append(out, tf.ServiceJourneys...)
	}
	return out
}

// AllJourneyPatterns returns every JourneyPattern and ServiceJourneyPattern in
// document order of their frames.
func (pd *PublicationDelivery) AllJourneyPatterns() []*JourneyPattern {
	var out []*JourneyPattern
	for _, sf := range pd.ServiceFrames() {
		for i := range sf.JourneyPatterns {
			out = append(out, &sf.JourneyPatterns[i])
		}
		for i := range sf.ServiceJourneyPatterns {
			out = append(out, &sf.ServiceJourneyPatterns[i])
		}
	}
	return out
}

// JourneyPatterns returns every JourneyPattern and ServiceJourneyPattern keyed by id.
func (pd *PublicationDelivery) JourneyPatterns() map[string]*JourneyPattern {
	out := make(map[string]*JourneyPattern)
	for _, jp := range pd.AllJourneyPatterns() {
		out[jp.ID] = jp
	}
	return out
}

// Lines returns every Line and FlexibleLine keyed by id.
func (pd *PublicationDelivery) Lines() map[string]*Line {
	out := make(map[string]*Line)
	for _, sf := range pd.ServiceFrames() {
		for i := range sf.Lines {
			out[sf.Lines[i].ID] = &sf.Lines[i]
		}
		for i := range sf.FlexibleLines {
			out[sf.FlexibleLines[i].ID] = &sf.FlexibleLines[i]
		}
	}
	return out
}
