// Package testutil provides NeTEx fixtures for unit tests.
//
// The fixtures form a small two-file dataset in the FLB codespace: a shared file
// with organisations, stop points, stop assignments, service links, day types
// and stop places, and a line file with one line, one journey pattern and one
// service journey whose passing times are configurable.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v4"
)

// Codespace is the codespace of every fixture id.
const Codespace = "FLB"

// Fixture file names.
const (
	SharedFileName = "_FLB_shared_data.xml"
	LineFileName   = "FLB_Line_1.xml"
)

// StopVisit holds the passing time of one stop of the fixture journey. Empty
// fields are omitted from the document.
type StopVisit struct {
	Arrival            string
	ArrivalDayOffset   string
	Departure          string
	DepartureDayOffset string
	EarliestDeparture  string
	LatestArrival      string

	// Flexible assigns the stop point to a flexible stop place instead of a quay.
	Flexible bool
}

// Departures returns regular stop visits with the given departure times.
func Departures(times ...string) []StopVisit {
	out := make([]StopVisit, len(times))
	for i, t := range times {
		out[i] = StopVisit{Departure: t}
	}
	return out
}

// StopPointID returns the scheduled stop point id of the n-th stop, counted from 1.
func StopPointID(n int) string {
	return fmt.Sprintf("%s:ScheduledStopPoint:%d", Codespace, n)
}

// SharedFile returns the shared data file for stops. Flexible stops are assigned
// to flexible stop places; the others to quays of bus stop places.
func SharedFile(stops []StopVisit) []byte {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`    <CompositeFrame id="FLB:CompositeFrame:shared" version="1">
      <validityConditions>
        <AvailabilityCondition id="FLB:AvailabilityCondition:1" version="1">
          <FromDate>2024-01-01T00:00:00</FromDate>
          <ToDate>2024-12-31T00:00:00</ToDate>
        </AvailabilityCondition>
      </validityConditions>
      <frames>
        <ResourceFrame id="FLB:ResourceFrame:1" version="1">
          <organisations>
            <Authority id="FLB:Authority:1" version="1">
              <CompanyNumber>123</CompanyNumber>
              <Name>Flåm Authority</Name>
            </Authority>
            <Operator id="FLB:Operator:1" version="1">
              <Name>Flåm Operator</Name>
              <ContactDetails><Phone>+47 00000000</Phone></ContactDetails>
            </Operator>
          </organisations>
        </ResourceFrame>
        <ServiceFrame id="FLB:ServiceFrame:shared" version="1">
`)
	b.WriteString("          <scheduledStopPoints>\n")
	for i := range stops {
		fmt.Fprintf(&b, "            <ScheduledStopPoint id=\"%s\" version=\"1\"><Name>Stop %d</Name></ScheduledStopPoint>\n", StopPointID(i+1), i+1)
	}
	b.WriteString("          </scheduledStopPoints>\n")
	b.WriteString("          <serviceLinks>\n")
	for i := 1; i < len(stops); i++ {
		fmt.Fprintf(&b, `            <ServiceLink id="FLB:ServiceLink:%d" version="1">
              <FromPointRef ref="%s" version="1"/>
              <ToPointRef ref="%s" version="1"/>
            </ServiceLink>
`, i, StopPointID(i), StopPointID(i+1))
	}
	b.WriteString("          </serviceLinks>\n")
	b.WriteString("          <stopAssignments>\n")
	for i, s := range stops {
		n := i + 1
		if s.Flexible {
			fmt.Fprintf(&b, `            <FlexibleStopAssignment id="FLB:FlexibleStopAssignment:%d" version="1" order="%d">
              <ScheduledStopPointRef ref="%s" version="1"/>
              <FlexibleStopPlaceRef ref="FLB:FlexibleStopPlace:%d" version="1"/>
            </FlexibleStopAssignment>
`, n, n, StopPointID(n), n)
			continue
		}
		fmt.Fprintf(&b, `            <PassengerStopAssignment id="FLB:PassengerStopAssignment:%d" version="1" order="%d">
              <ScheduledStopPointRef ref="%s" version="1"/>
              <QuayRef ref="NSR:Quay:%d" version="1"/>
            </PassengerStopAssignment>
`, n, n, StopPointID(n), n)
	}
	b.WriteString("          </stopAssignments>\n")
	b.WriteString(`        </ServiceFrame>
        <ServiceCalendarFrame id="FLB:ServiceCalendarFrame:1" version="1">
          <dayTypes>
            <DayType id="FLB:DayType:1" version="1"/>
          </dayTypes>
          <dayTypeAssignments>
            <DayTypeAssignment id="FLB:DayTypeAssignment:1" version="1" order="1">
              <Date>2024-05-17</Date>
              <DayTypeRef ref="FLB:DayType:1" version="1"/>
            </DayTypeAssignment>
          </dayTypeAssignments>
        </ServiceCalendarFrame>
        <SiteFrame id="FLB:SiteFrame:1" version="1">
`)
	b.WriteString("          <stopPlaces>\n")
	for i, s := range stops {
		if s.Flexible {
			continue
		}
		fmt.Fprintf(&b, `            <StopPlace id="NSR:StopPlace:%d" version="1">
              <Name>Stop place %d</Name>
              <TransportMode>bus</TransportMode>
              <quays><Quay id="NSR:Quay:%d" version="1"/></quays>
            </StopPlace>
`, i+1, i+1, i+1)
	}
	b.WriteString("          </stopPlaces>\n")
	b.WriteString("          <flexibleStopPlaces>\n")
	for i, s := range stops {
		if !s.Flexible {
			continue
		}
		fmt.Fprintf(&b, `            <FlexibleStopPlace id="FLB:FlexibleStopPlace:%d" version="1">
              <Name>Area %d</Name>
              <TransportMode>bus</TransportMode>
              <areas><FlexibleArea id="FLB:FlexibleArea:%d" version="1"/></areas>
            </FlexibleStopPlace>
`, i+1, i+1, i+1)
	}
	b.WriteString("          </flexibleStopPlaces>\n")
	b.WriteString(`        </SiteFrame>
      </frames>
    </CompositeFrame>
`)
	b.WriteString(footer)
	return []byte(b.String())
}

// LineFile returns the line file whose single service journey visits stops in
// order.
func LineFile(stops []StopVisit) []byte {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`    <CompositeFrame id="FLB:CompositeFrame:1" version="1">
      <validityConditions>
        <AvailabilityCondition id="FLB:AvailabilityCondition:2" version="1">
          <FromDate>2024-01-01T00:00:00</FromDate>
          <ToDate>2024-12-31T00:00:00</ToDate>
        </AvailabilityCondition>
      </validityConditions>
      <frames>
        <ServiceFrame id="FLB:ServiceFrame:1" version="1">
          <lines>
            <Line id="FLB:Line:1" version="1">
              <Name>Flåmsbana bus</Name>
              <TransportMode>bus</TransportMode>
              <OperatorRef ref="FLB:Operator:1" version="1"/>
            </Line>
          </lines>
          <routes>
            <Route id="FLB:Route:1" version="1">
              <LineRef ref="FLB:Line:1" version="1"/>
              <pointsInSequence>
`)
	for i := range stops {
		fmt.Fprintf(&b, "                <PointOnRoute id=\"FLB:PointOnRoute:%d\" version=\"1\" order=\"%d\"/>\n", i+1, i+1)
	}
	b.WriteString(`              </pointsInSequence>
            </Route>
          </routes>
          <destinationDisplays>
            <DestinationDisplay id="FLB:DestinationDisplay:1" version="1">
              <FrontText>Flåm</FrontText>
            </DestinationDisplay>
          </destinationDisplays>
          <journeyPatterns>
            <ServiceJourneyPattern id="FLB:ServiceJourneyPattern:1" version="1">
              <RouteRef ref="FLB:Route:1" version="1"/>
              <pointsInSequence>
`)
	for i := range stops {
		n := i + 1
		fmt.Fprintf(&b, "                <StopPointInJourneyPattern id=\"FLB:StopPointInJourneyPattern:%d\" version=\"1\" order=\"%d\">\n", n, n)
		fmt.Fprintf(&b, "                  <ScheduledStopPointRef ref=\"%s\" version=\"1\"/>\n", StopPointID(n))
		if n == 1 {
			b.WriteString("                  <DestinationDisplayRef ref=\"FLB:DestinationDisplay:1\" version=\"1\"/>\n")
		}
		b.WriteString("                </StopPointInJourneyPattern>\n")
	}
	b.WriteString("              </pointsInSequence>\n")
	b.WriteString("              <linksInSequence>\n")
	for i := 1; i < len(stops); i++ {
		fmt.Fprintf(&b, `                <ServiceLinkInJourneyPattern id="FLB:ServiceLinkInJourneyPattern:%d" version="1" order="%d">
                  <ServiceLinkRef ref="FLB:ServiceLink:%d" version="1"/>
                </ServiceLinkInJourneyPattern>
`, i, i, i)
	}
	b.WriteString(`              </linksInSequence>
            </ServiceJourneyPattern>
          </journeyPatterns>
        </ServiceFrame>
        <TimetableFrame id="FLB:TimetableFrame:1" version="1">
          <vehicleJourneys>
            <ServiceJourney id="FLB:ServiceJourney:1" version="1">
              <dayTypes>
                <DayTypeRef ref="FLB:DayType:1" version="1"/>
              </dayTypes>
              <ServiceJourneyPatternRef ref="FLB:ServiceJourneyPattern:1" version="1"/>
              <LineRef ref="FLB:Line:1" version="1"/>
              <passingTimes>
`)
	for i, s := range stops {
		n := i + 1
		fmt.Fprintf(&b, "                <TimetabledPassingTime id=\"FLB:TimetabledPassingTime:%d\" version=\"1\">\n", n)
		fmt.Fprintf(&b, "                  <StopPointInJourneyPatternRef ref=\"FLB:StopPointInJourneyPattern:%d\" version=\"1\"/>\n", n)
		element(&b, "ArrivalTime", s.Arrival)
		element(&b, "ArrivalDayOffset", s.ArrivalDayOffset)
		element(&b, "DepartureTime", s.Departure)
		element(&b, "DepartureDayOffset", s.DepartureDayOffset)
		element(&b, "EarliestDepartureTime", s.EarliestDeparture)
		element(&b, "LatestArrivalTime", s.LatestArrival)
		b.WriteString("                </TimetabledPassingTime>\n")
	}
	b.WriteString(`              </passingTimes>
            </ServiceJourney>
          </vehicleJourneys>
        </TimetableFrame>
      </frames>
    </CompositeFrame>
`)
	b.WriteString(footer)
	return []byte(b.String())
}

func element(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "                  <%s>%s</%s>\n", name, value, name)
}

const header = `<?xml version="1.0" encoding="UTF-8"?>
<PublicationDelivery xmlns="http://www.netex.org.uk/netex" version="1.15:NO-NeTEx-networktimetable:1.5">
  <PublicationTimestamp>2024-01-01T00:00:00</PublicationTimestamp>
  <ParticipantRef>RB</ParticipantRef>
  <dataObjects>
`

const footer = `  </dataObjects>
</PublicationDelivery>
`

// WriteTempFile writes content to name inside a temporary directory and returns
// the path. The directory is removed when the test completes.
func WriteTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// WriteTempYAML marshals a value to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", data)
}
