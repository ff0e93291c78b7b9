package reference

// substitutions lists, per referenced entity type, the reference element names
// accepted in addition to the entity type followed by "Ref".
var substitutions = map[string][]string{
	"Authority":                 {"OrganisationRef", "TransportOrganisationRef"},
	"Operator":                  {"OrganisationRef", "TransportOrganisationRef"},
	"Network":                   {"RepresentedByGroupRef"},
	"GroupOfLines":              {"RepresentedByGroupRef"},
	"FlexibleLine":              {"LineRef"},
	"JourneyPattern":            {"ServiceJourneyPatternRef"},
	"ServiceJourneyPattern":     {"JourneyPatternRef"},
	"ScheduledStopPoint":        {"FromPointRef", "ToPointRef"},
	"RoutePoint":                {"FromPointRef", "ToPointRef", "ProjectedPointRef"},
	"StopPointInJourneyPattern": {"FromPointInPatternRef", "ToPointInPatternRef", "PointInJourneyPatternRef"},
	"ServiceJourney":            {"VehicleJourneyRef", "FromJourneyRef", "ToJourneyRef"},
	"DatedServiceJourney":       {"VehicleJourneyRef"},
	"DeadRun":                   {"VehicleJourneyRef"},
	"UicOperatingPeriod":        {"OperatingPeriodRef"},
	"FareZone":                  {"TariffZoneRef"},
	"TariffZone":                {"FareZoneRef"},
	"Quay":                      {"StopPointRef"},
	"Parking":                   {"SiteRef"},
	"StopPlace":                 {"SiteRef", "ParentSiteRef"},
}

// Allowed reports whether a reference element named refElement may point to an
// entity of entityType.
func Allowed(entityType, refElement string) bool {
	if refElement == entityType+"Ref" {
		return true
	}
	for _, name := range substitutions[entityType] {
		if name == refElement {
			return true
		}
	}
	return false
}
