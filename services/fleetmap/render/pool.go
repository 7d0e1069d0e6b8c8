// Package render keeps the backend's markers in step with a culled vehicle list.
package render

import (
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// MarkerHandle is a reusable backend marker. It is either pooled (detached,
// no listener) or placed (showing exactly one vehicle with one listener).
type MarkerHandle struct {
	marker fleetmap.Marker

	vehicleID int64
	position  models.LatLng
	content   models.MarkerContent
	dispose   func()
	placed    bool
}

// ID is the backend marker id
func (h *MarkerHandle) ID() string { return h.marker.ID() }

// VehicleID is the vehicle the handle currently shows; zero when pooled
func (h *MarkerHandle) VehicleID() int64 { return h.vehicleID }

// Placed reports whether the handle is on the map
func (h *MarkerHandle) Placed() bool { return h.placed }

// Content is what the handle was last placed with
func (h *MarkerHandle) Content() models.MarkerContent { return h.content }

// Stats counts handles by state
type Stats struct {
	Placed      int
	Pooled      int
	Constructed int
}

// Pool recycles marker handles between render passes. Placed+Pooled always
// equals Constructed until Clear.
type Pool struct {
	newMarker func() fleetmap.Marker
	free      []*MarkerHandle
	placed    []*MarkerHandle

	constructed int
}

// NewPool creates an empty pool backed by newMarker
func NewPool(newMarker func() fleetmap.Marker) *Pool {
	return &Pool{newMarker: newMarker}
}

// acquire takes a pooled handle, constructing one only when the pool is empty
func (p *Pool) acquire() *MarkerHandle {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return h
	}
	p.constructed++
	return &MarkerHandle{marker: p.newMarker()}
}

// Place shows v on h. The click listener is bound fresh for this placement.
// On backend failure the handle goes back to the pool.
func (p *Pool) Place(v models.VehicleRecord, content models.MarkerContent, onClick func(vehicleID int64)) (*MarkerHandle, error) {
	h := p.acquire()
	if err := h.marker.Place(v.Position, content); err != nil {
		p.free = append(p.free, h)
		return nil, err
	}

	id := v.ID
	h.vehicleID = id
	h.position = v.Position
	h.content = content
	h.placed = true
	h.dispose = h.marker.OnClick(func() { onClick(id) })

	p.placed = append(p.placed, h)
	return h, nil
}

// ReleaseAll detaches every placed handle and returns it to the pool.
// A failing detach is logged and does not stop the rest.
func (p *Pool) ReleaseAll() {
	for i, h := range p.placed {
		p.release(h)
		p.placed[i] = nil
		p.free = append(p.free, h)
	}
	p.placed = p.placed[:0]
}

func (p *Pool) release(h *MarkerHandle) {
	if h.dispose != nil {
		h.dispose()
		h.dispose = nil
	}
	if err := h.marker.Detach(); err != nil {
		logger.Debug("Marker detach failed",
			logger.String("marker_id", h.marker.ID()),
			logger.VehicleID(h.vehicleID),
			logger.Err(err))
	}
	h.vehicleID = 0
	h.position = models.LatLng{}
	h.content = models.MarkerContent{}
	h.placed = false
}

// Clear detaches everything and drops all handles
func (p *Pool) Clear() {
	p.ReleaseAll()
	p.free = nil
	p.placed = nil
	p.constructed = 0
}

// Placed returns the placed handles in placement order
func (p *Pool) Placed() []*MarkerHandle {
	out := make([]*MarkerHandle, len(p.placed))
	copy(out, p.placed)
	return out
}

// Stats reports the handle counts
func (p *Pool) Stats() Stats {
	return Stats{Placed: len(p.placed), Pooled: len(p.free), Constructed: p.constructed}
}
