package dispatch

import (
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/models"
)

// Opener shows a surface in the UI. onClose must be called when the viewer
// dismisses it.
type Opener interface {
	OpenSurface(surface Surface, vehicle models.VehicleRecord, onClose func())
}

// Dispatcher keeps at most one surface open. After a close the viewer's
// session is refreshed before another surface may open. It must only be
// used from the session loop.
type Dispatcher struct {
	opener  Opener
	viewer  func() models.Viewer
	pin     func() int64
	refresh func(done func())

	open       bool
	refreshing bool
	surfaceSeq uint64

	pendingDeepLink int64
}

// NewDispatcher creates a dispatcher. refresh reloads the viewer session and
// calls done on the loop when finished, successful or not.
func NewDispatcher(opener Opener, viewer func() models.Viewer, pin func() int64, refresh func(done func())) *Dispatcher {
	return &Dispatcher{opener: opener, viewer: viewer, pin: pin, refresh: refresh}
}

// Activate opens the surface for vehicle. It reports what was opened, or
// SurfaceNone when nothing was.
func (d *Dispatcher) Activate(vehicle models.VehicleRecord) Surface {
	if d.open || d.refreshing {
		logger.Debug("Surface activation ignored, another surface is active",
			logger.VehicleID(vehicle.ID))
		return SurfaceNone
	}

	surface := Resolve(d.viewer(), vehicle, d.pin())
	if surface == SurfaceNone {
		return SurfaceNone
	}

	d.open = true
	d.surfaceSeq++
	seq := d.surfaceSeq
	d.opener.OpenSurface(surface, vehicle, func() { d.closed(seq) })
	return surface
}

func (d *Dispatcher) closed(seq uint64) {
	if !d.open || seq != d.surfaceSeq {
		return
	}
	d.open = false
	d.refreshing = true
	d.refresh(func() { d.refreshing = false })
}

// Busy reports whether a surface is open or a post-close refresh is running
func (d *Dispatcher) Busy() bool {
	return d.open || d.refreshing
}

// RequestDeepLink remembers a vehicle id to open once it shows up in the loaded lists
func (d *Dispatcher) RequestDeepLink(vehicleID int64) {
	d.pendingDeepLink = vehicleID
}

// PendingDeepLink returns the waiting deep link id, zero when none
func (d *Dispatcher) PendingDeepLink() int64 {
	return d.pendingDeepLink
}

// ResolvePending dispatches the pending deep link if one of lists contains it.
// The link is consumed once it is found and either opened or resolved to no
// surface; while another surface is active it keeps waiting.
func (d *Dispatcher) ResolvePending(lists ...[]models.VehicleRecord) Surface {
	if d.pendingDeepLink == 0 || d.Busy() {
		return SurfaceNone
	}
	vehicle, ok := models.FindVehicle(d.pendingDeepLink, lists...)
	if !ok {
		return SurfaceNone
	}

	d.pendingDeepLink = 0
	surface := d.Activate(vehicle)
	logger.Debug("Deep link resolved",
		logger.VehicleID(vehicle.ID),
		logger.String("surface", surface.String()))
	return surface
}
