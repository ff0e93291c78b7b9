package netexmodel

import (
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// ElapsedTime is a passing time expressed as seconds since midnight of the
// operating day, day offset included.
type ElapsedTime int

// String formats the elapsed time as HH:MM:SS, with a +N day suffix.
func (e ElapsedTime) String() string {
	days := int(e) / secondsPerDay
	rem := int(e) % secondsPerDay
	s := time.Date(0, 1, 1, 0, 0, rem, 0, time.UTC).Format("15:04:05")
	if days > 0 {
		s += "+" + strconv.Itoa(days)
	}
	return s
}

// ParseElapsed combines an xsd:time value and an optional day offset. It
// returns false when clock is empty or not a valid time.
func ParseElapsed(clock, dayOffset string) (ElapsedTime, bool) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0, false
	}
	clock = strings.TrimSuffix(clock, "Z")
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return 0, false
	}
	offset := 0
	if d := strings.TrimSpace(dayOffset); d != "" {
		offset, err = strconv.Atoi(d)
		if err != nil {
			return 0, false
		}
	}
	return ElapsedTime(offset*secondsPerDay + t.Hour()*3600 + t.Minute()*60 + t.Second()), true
}

// Arrival returns the arrival time, if present.
func (tpt *TimetabledPassingTime) Arrival() (ElapsedTime, bool) {
	return ParseElapsed(tpt.ArrivalTime, tpt.ArrivalDayOffset)
}

// Departure returns the departure time, if present.
func (tpt *TimetabledPassingTime) Departure() (ElapsedTime, bool) {
	return ParseElapsed(tpt.DepartureTime, tpt.DepartureDayOffset)
}

// EarliestDeparture returns the lower bound of a flexible window, if present.
func (tpt *TimetabledPassingTime) EarliestDeparture() (ElapsedTime, bool) {
	return ParseElapsed(tpt.EarliestDepartureTime, tpt.EarliestDepartureDayOffset)
}

// LatestArrival returns the upper bound of a flexible window, if present.
func (tpt *TimetabledPassingTime) LatestArrival() (ElapsedTime, bool) {
	return ParseElapsed(tpt.LatestArrivalTime, tpt.LatestArrivalDayOffset)
}
