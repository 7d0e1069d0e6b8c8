package fleetmap

import "github.com/piresc/fleetmap/internal/pkg/models"

// MapBackend is the remote map a session draws on. Callbacks registered here
// run on the session loop.
type MapBackend interface {
	Viewport() models.Viewport
	OnViewportChange(fn func(models.Viewport)) (dispose func())
	// LoadMarkerLibrary asks the backend to load its marker library and calls
	// onLoaded once it reports ready.
	LoadMarkerLibrary(onLoaded func())
	NewMarker() Marker
	// OpenSurface shows an interaction surface. onClose must be called once
	// the viewer dismisses it.
	OpenSurface(surface string, vehicle models.VehicleRecord, onClose func())
}

// Marker is one backend marker object
type Marker interface {
	ID() string
	Place(position models.LatLng, content models.MarkerContent) error
	Detach() error
	OnClick(fn func()) (dispose func())
}
