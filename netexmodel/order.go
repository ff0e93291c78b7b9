package netexmodel

import (
	"cmp"
	"math"
	"slices"
	"strconv"
)

// orderKey parses an order attribute. Missing or invalid values sort last.
func orderKey(order string) int {
	n, err := strconv.Atoi(order)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// OrderedStopPoints returns the stop points sorted by their order attribute.
// Stop points with equal or missing order keep document order.
func (jp *JourneyPattern) OrderedStopPoints() []StopPointInJourneyPattern {
	out := slices.Clone(jp.StopPoints)
	slices.SortStableFunc(out, func(a, b StopPointInJourneyPattern) int {
		return cmp.Compare(orderKey(a.Order), orderKey(b.Order))
	})
	return out
}

// OrderedServiceLinks returns the service links sorted by their order attribute.
func (jp *JourneyPattern) OrderedServiceLinks() []ServiceLinkInJourneyPattern {
	out := slices.Clone(jp.ServiceLinksInSeq)
	slices.SortStableFunc(out, func(a, b ServiceLinkInJourneyPattern) int {
		return cmp.Compare(orderKey(a.Order), orderKey(b.Order))
	})
	return out
}

// StopPointIndex maps stop point ids of the pattern to their position in
// OrderedStopPoints.
func (jp *JourneyPattern) StopPointIndex() map[string]int {
	ordered := jp.OrderedStopPoints()
	out := make(map[string]int, len(ordered))
	for i, sp := range ordered {
		out[sp.ID] = i
	}
	return out
}
