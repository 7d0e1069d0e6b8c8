package usecase

import (
	"fmt"

	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
)

type openedSurface struct {
	surface string
	vehicle models.VehicleRecord
	close   func()
}

// fakeBackend loads the marker library synchronously and records surfaces
type fakeBackend struct {
	viewport  models.Viewport
	onChange  func(models.Viewport)
	disposed  int
	markers   []*fakeMarker
	surfaces  []openedSurface
	libraries int
}

func (b *fakeBackend) Viewport() models.Viewport { return b.viewport }

func (b *fakeBackend) OnViewportChange(fn func(models.Viewport)) func() {
	b.onChange = fn
	return func() {
		b.onChange = nil
		b.disposed++
	}
}

func (b *fakeBackend) LoadMarkerLibrary(onLoaded func()) {
	b.libraries++
	onLoaded()
}

func (b *fakeBackend) NewMarker() fleetmap.Marker {
	m := &fakeMarker{id: fmt.Sprintf("m%d", len(b.markers)+1)}
	b.markers = append(b.markers, m)
	return m
}

func (b *fakeBackend) OpenSurface(surface string, vehicle models.VehicleRecord, onClose func()) {
	b.surfaces = append(b.surfaces, openedSurface{surface: surface, vehicle: vehicle, close: onClose})
}

func (b *fakeBackend) pan(vp models.Viewport) {
	b.viewport = vp
	if b.onChange != nil {
		b.onChange(vp)
	}
}

func (b *fakeBackend) marker(id string) *fakeMarker {
	for _, m := range b.markers {
		if m.id == id {
			return m
		}
	}
	return nil
}

type fakeMarker struct {
	id       string
	attached bool
	content  models.MarkerContent
	click    func()
}

func (m *fakeMarker) ID() string { return m.id }

func (m *fakeMarker) Place(_ models.LatLng, content models.MarkerContent) error {
	m.attached = true
	m.content = content
	return nil
}

func (m *fakeMarker) Detach() error {
	m.attached = false
	return nil
}

func (m *fakeMarker) OnClick(fn func()) func() {
	m.click = fn
	return func() { m.click = nil }
}
