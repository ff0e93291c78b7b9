package netexmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineFile = `<PublicationDelivery xmlns="http://www.netex.org.uk/netex" version="1.15">
  <PublicationTimestamp>2024-01-01T00:00:00</PublicationTimestamp>
  <ParticipantRef>FLB</ParticipantRef>
  <dataObjects>
    <CompositeFrame id="FLB:CompositeFrame:1" version="1">
      <frames>
        <ServiceFrame id="FLB:ServiceFrame:1" version="1">
          <lines>
            <Line id="FLB:Line:1" version="1"><Name>One</Name><TransportMode>bus</TransportMode></Line>
            <FlexibleLine id="FLB:FlexibleLine:2" version="1"><Name>Flex</Name></FlexibleLine>
          </lines>
          <journeyPatterns>
            <ServiceJourneyPattern id="FLB:ServiceJourneyPattern:1" version="1">
              <pointsInSequence>
                <StopPointInJourneyPattern id="FLB:StopPointInJourneyPattern:1" version="1" order="1">
                  <ScheduledStopPointRef ref="FLB:ScheduledStopPoint:1" version="1"/>
                </StopPointInJourneyPattern>
              </pointsInSequence>
            </ServiceJourneyPattern>
          </journeyPatterns>
        </ServiceFrame>
        <TimetableFrame id="FLB:TimetableFrame:1" version="1">
          <vehicleJourneys>
            <ServiceJourney id="FLB:ServiceJourney:1" version="1">
              <ServiceJourneyPatternRef ref="FLB:ServiceJourneyPattern:1" version="1"/>
              <LineRef ref="FLB:Line:1" version="1"/>
              <passingTimes>
                <TimetabledPassingTime id="FLB:TimetabledPassingTime:1" version="1">
                  <StopPointInJourneyPatternRef ref="FLB:StopPointInJourneyPattern:1" version="1"/>
                  <DepartureTime>23:55:00</DepartureTime>
                  <ArrivalTime>00:05:00</ArrivalTime>
                  <ArrivalDayOffset>1</ArrivalDayOffset>
                </TimetabledPassingTime>
              </passingTimes>
            </ServiceJourney>
          </vehicleJourneys>
        </TimetableFrame>
      </frames>
    </CompositeFrame>
  </dataObjects>
</PublicationDelivery>`

func TestParse(t *testing.T) {
	pd, err := Parse([]byte(lineFile))
	require.NoError(t, err)

	assert.Equal(t, "FLB", pd.ParticipantRef)
	require.Len(t, pd.DataObjects.CompositeFrames, 1)
	assert.Len(t, pd.ServiceFrames(), 1)

	lines := pd.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "bus", lines["FLB:Line:1"].TransportMode)

	patterns := pd.JourneyPatterns()
	require.Contains(t, patterns, "FLB:ServiceJourneyPattern:1")
	sp := patterns["FLB:ServiceJourneyPattern:1"].StopPoints
	require.Len(t, sp, 1)
	assert.Equal(t, "1", sp[0].Order)
	assert.Equal(t, "FLB:ScheduledStopPoint:1", sp[0].ScheduledStopPointRef.ID())

	journeys := pd.ServiceJourneys()
	require.Len(t, journeys, 1)
	sj := journeys[0]
	assert.Equal(t, "FLB:ServiceJourneyPattern:1", sj.PatternRef())
	assert.Equal(t, "FLB:Line:1", sj.LineID())
	require.Len(t, sj.PassingTimes, 1)

	dep, ok := sj.PassingTimes[0].Departure()
	require.True(t, ok)
	arr, ok := sj.PassingTimes[0].Arrival()
	require.True(t, ok)
	assert.Less(t, int(dep), int(arr), "day offset moves arrival past midnight")
	assert.Equal(t, "00:05:00+1", arr.String())

	_, ok = sj.PassingTimes[0].EarliestDeparture()
	assert.False(t, ok)
}

// TestParseLatin1 tests binding a document declared as ISO-8859-1.
func TestParseLatin1(t *testing.T) {
	content := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<PublicationDelivery><dataObjects><ServiceFrame id="FLB:ServiceFrame:1" version="1">` +
		"<lines><Line id=\"FLB:Line:1\" version=\"1\"><Name>Tr\xf8ndelag</Name></Line></lines>" +
		`</ServiceFrame></dataObjects></PublicationDelivery>`)

	pd, err := Parse(content)
	require.NoError(t, err)
	frames := pd.ServiceFrames()
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Lines, 1)
	assert.Equal(t, "Trøndelag", frames[0].Lines[0].Name)
}

func TestParseRejectsOtherRoot(t *testing.T) {
	_, err := Parse([]byte(`<Other/>`))
	assert.Error(t, err)
}

func TestParseElapsed(t *testing.T) {
	tests := []struct {
		name   string
		clock  string
		offset string
		want   ElapsedTime
		ok     bool
	}{
		{"plain", "05:05:00", "", 5*3600 + 5*60, true},
		{"utc suffix", "05:05:00Z", "", 5*3600 + 5*60, true},
		{"fraction", "05:05:00.000", "", 5*3600 + 5*60, true},
		{"offset", "00:01:00", "2", 2*secondsPerDay + 60, true},
		{"empty", "", "", 0, false},
		{"garbage", "5 past 5", "", 0, false},
		{"bad offset", "05:05:00", "x", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseElapsed(tt.clock, tt.offset)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefHelpers(t *testing.T) {
	var nilRef *Ref
	assert.False(t, nilRef.IsSet())
	assert.Equal(t, "", nilRef.ID())
	assert.True(t, (&Ref{Ref: "x"}).IsSet())
}

func TestOrderedStopPoints(t *testing.T) {
	jp := &JourneyPattern{
		StopPoints: []StopPointInJourneyPattern{
			{Entity: Entity{ID: "c"}, Order: "3"},
			{Entity: Entity{ID: "x"}},
			{Entity: Entity{ID: "a"}, Order: "1"},
			{Entity: Entity{ID: "b"}, Order: "2"},
		},
		ServiceLinksInSeq: []ServiceLinkInJourneyPattern{
			{Entity: Entity{ID: "l2"}, Order: "2"},
			{Entity: Entity{ID: "l1"}, Order: "1"},
		},
	}
	var got []string
	for _, sp := range jp.OrderedStopPoints() {
		got = append(got, sp.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "x"}, got)
	assert.Equal(t, "c", jp.StopPoints[0].ID, "original order is kept")
	assert.Equal(t, 2, jp.StopPointIndex()["c"])
	assert.Equal(t, "l1", jp.OrderedServiceLinks()[0].ID)
}
