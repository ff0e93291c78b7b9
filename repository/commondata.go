package repository

import "github.com/erraggy/netexval/netexmodel"

// Link holds the endpoints of a service link.
type Link struct {
	From string
	To   string
}

type commonData struct {
	quays    map[string]string
	flexible map[string]string
	links    map[string]Link
}

func newCommonData() *commonData {
	return &commonData{
		quays:    make(map[string]string),
		flexible: make(map[string]string),
		links:    make(map[string]Link),
	}
}

func (d *commonData) empty() bool {
	return len(d.quays) == 0 && len(d.flexible) == 0 && len(d.links) == 0
}

// CommonData is the shared stop point and service link repository.
type CommonData struct {
	s *store[commonData]
}

// NewCommonData creates an empty repository.
func NewCommonData() *CommonData {
	return &CommonData{s: newStore(newCommonData)}
}

// Initialize creates empty state for reportID if none exists.
func (c *CommonData) Initialize(reportID string) {
	c.s.update(reportID, func(*commonData) {})
}

// Collect records the stop assignments and service links of pd. Later files
// overwrite mappings for the same stop point or link.
func (c *CommonData) Collect(reportID string, pd *netexmodel.PublicationDelivery) {
	c.s.update(reportID, func(d *commonData) {
		for _, sf := range pd.ServiceFrames() {
			for _, a := range sf.PassengerStopAssignments {
				if a.ScheduledStopPointRef.IsSet() && a.QuayRef.IsSet() {
					d.quays[a.ScheduledStopPointRef.Ref] = a.QuayRef.Ref
				}
			}
			for _, a := range sf.FlexibleStopAssignments {
				if a.ScheduledStopPointRef.IsSet() && a.FlexibleStopPlaceRef.IsSet() {
					d.flexible[a.ScheduledStopPointRef.Ref] = a.FlexibleStopPlaceRef.Ref
				}
			}
			for _, l := range sf.ServiceLinks {
				if l.ID == "" {
					continue
				}
				d.links[l.ID] = Link{From: l.FromPointRef.ID(), To: l.ToPointRef.ID()}
			}
		}
	})
}

// QuayForStopPoint returns the quay assigned to a scheduled stop point.
func (c *CommonData) QuayForStopPoint(reportID, stopPointID string) (quay string, ok bool, err error) {
	err = c.s.read("repository.QuayForStopPoint", reportID, func(d *commonData) {
		quay, ok = d.quays[stopPointID]
	})
	return quay, ok, err
}

// FlexibleStopPlaceForStopPoint returns the flexible stop place assigned to a
// scheduled stop point.
func (c *CommonData) FlexibleStopPlaceForStopPoint(reportID, stopPointID string) (place string, ok bool, err error) {
	err = c.s.read("repository.FlexibleStopPlaceForStopPoint", reportID, func(d *commonData) {
		place, ok = d.flexible[stopPointID]
	})
	return place, ok, err
}

// IsFlexibleStopPoint reports whether the scheduled stop point is served as a
// flexible area.
func (c *CommonData) IsFlexibleStopPoint(reportID, stopPointID string) (bool, error) {
	_, ok, err := c.FlexibleStopPlaceForStopPoint(reportID, stopPointID)
	return ok, err
}

// ServiceLink returns the endpoints of a service link.
func (c *CommonData) ServiceLink(reportID, linkID string) (link Link, ok bool, err error) {
	err = c.s.read("repository.ServiceLink", reportID, func(d *commonData) {
		link, ok = d.links[linkID]
	})
	return link, ok, err
}

// HasSharedData reports whether any stop assignment or service link has been
// collected for reportID. It is false for unknown and cleaned up report ids.
func (c *CommonData) HasSharedData(reportID string) bool {
	has := false
	_ = c.s.read("repository.HasSharedData", reportID, func(d *commonData) {
		has = !d.empty()
	})
	return has
}

// CleanUp releases all state for reportID.
func (c *CommonData) CleanUp(reportID string) {
	c.s.delete(reportID)
}
