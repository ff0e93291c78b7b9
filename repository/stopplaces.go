package repository

import "github.com/erraggy/netexval/netexmodel"

// StopPlace holds the attributes of a stop place relevant to validation.
type StopPlace struct {
	ID            string
	Name          string
	TransportMode string
	Submode       string
}

type stopPlaces struct {
	byQuay map[string]string
	byID   map[string]StopPlace
}

func newStopPlaces() *stopPlaces {
	return &stopPlaces{byQuay: make(map[string]string), byID: make(map[string]StopPlace)}
}

// StopPlaces is the site repository.
type StopPlaces struct {
	s *store[stopPlaces]
}

// NewStopPlaces creates an empty repository.
func NewStopPlaces() *StopPlaces {
	return &StopPlaces{s: newStore(newStopPlaces)}
}

// Initialize creates empty state for reportID if none exists.
func (p *StopPlaces) Initialize(reportID string) {
	p.s.update(reportID, func(*stopPlaces) {})
}

// Collect records the stop places, flexible stop places and quays of pd.
func (p *StopPlaces) Collect(reportID string, pd *netexmodel.PublicationDelivery) {
	p.s.update(reportID, func(d *stopPlaces) {
		for _, sf := range pd.SiteFrames() {
			for _, sp := range sf.StopPlaces {
				if sp.ID == "" {
					continue
				}
				submode := sp.BusSubmode
				if submode == "" {
					submode = sp.RailSubmode
				}
				d.byID[sp.ID] = StopPlace{ID: sp.ID, Name: sp.Name, TransportMode: sp.TransportMode, Submode: submode}
				for _, q := range sp.Quays {
					if q.ID != "" {
						d.byQuay[q.ID] = sp.ID
					}
				}
			}
			for _, fsp := range sf.FlexibleStopPlaces {
				if fsp.ID != "" {
					d.byID[fsp.ID] = StopPlace{ID: fsp.ID, Name: fsp.Name, TransportMode: fsp.TransportMode}
				}
			}
		}
	})
}

// StopPlace returns the stop place with the given id.
func (p *StopPlaces) StopPlace(reportID, id string) (sp StopPlace, ok bool, err error) {
	err = p.s.read("repository.StopPlace", reportID, func(d *stopPlaces) {
		sp, ok = d.byID[id]
	})
	return sp, ok, err
}

// StopPlaceForQuay returns the stop place owning a quay.
func (p *StopPlaces) StopPlaceForQuay(reportID, quayID string) (sp StopPlace, ok bool, err error) {
	err = p.s.read("repository.StopPlaceForQuay", reportID, func(d *stopPlaces) {
		var id string
		if id, ok = d.byQuay[quayID]; ok {
			sp, ok = d.byID[id]
		}
	})
	return sp, ok, err
}

// HasData reports whether any stop place has been collected for reportID.
func (p *StopPlaces) HasData(reportID string) bool {
	has := false
	_ = p.s.read("repository.HasData", reportID, func(d *stopPlaces) {
		has = len(d.byID) > 0
	})
	return has
}

// CleanUp releases all state for reportID.
func (p *StopPlaces) CleanUp(reportID string) {
	p.s.delete(reportID)
}
