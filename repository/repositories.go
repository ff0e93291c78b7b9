package repository

import "github.com/erraggy/netexval/netexmodel"

// Repositories bundles the repositories consulted by the object-graph validators.
type Repositories struct {
	CommonData *CommonData
	StopPlaces *StopPlaces
}

// New creates empty repositories.
func New() *Repositories {
	return &Repositories{CommonData: NewCommonData(), StopPlaces: NewStopPlaces()}
}

// Initialize creates empty state for reportID in every repository.
func (r *Repositories) Initialize(reportID string) {
	r.CommonData.Initialize(reportID)
	r.StopPlaces.Initialize(reportID)
}

// Collect feeds pd into every repository.
func (r *Repositories) Collect(reportID string, pd *netexmodel.PublicationDelivery) {
	r.CommonData.Collect(reportID, pd)
	r.StopPlaces.Collect(reportID, pd)
}

// CleanUp releases reportID in every repository.
func (r *Repositories) CleanUp(reportID string) {
	r.CommonData.CleanUp(reportID)
	r.StopPlaces.CleanUp(reportID)
}
