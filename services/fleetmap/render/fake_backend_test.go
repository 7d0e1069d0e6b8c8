package render

import (
	"errors"
	"fmt"

	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
)

type fakeBackend struct {
	markers      []*fakeMarker
	ops          []string
	loadRequests int
	onLoaded     func()
	failPlace    map[string]bool
	failDetach   map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failPlace: map[string]bool{}, failDetach: map[string]bool{}}
}

func (b *fakeBackend) Viewport() models.Viewport { return models.Viewport{} }

func (b *fakeBackend) OnViewportChange(func(models.Viewport)) func() { return func() {} }

func (b *fakeBackend) LoadMarkerLibrary(onLoaded func()) {
	b.loadRequests++
	b.onLoaded = onLoaded
}

func (b *fakeBackend) loaded() { b.onLoaded() }

func (b *fakeBackend) OpenSurface(string, models.VehicleRecord, func()) {}

func (b *fakeBackend) NewMarker() fleetmap.Marker {
	m := &fakeMarker{id: fmt.Sprintf("m%d", len(b.markers)+1), backend: b}
	b.markers = append(b.markers, m)
	return m
}

func (b *fakeBackend) marker(id string) *fakeMarker {
	for _, m := range b.markers {
		if m.id == id {
			return m
		}
	}
	return nil
}

func (b *fakeBackend) attached() int {
	n := 0
	for _, m := range b.markers {
		if m.attached {
			n++
		}
	}
	return n
}

type fakeMarker struct {
	id        string
	backend   *fakeBackend
	attached  bool
	position  models.LatLng
	click     func()
	listeners int
}

func (m *fakeMarker) ID() string { return m.id }

func (m *fakeMarker) Place(p models.LatLng, _ models.MarkerContent) error {
	if m.backend.failPlace[m.id] {
		return errors.New("marker library rejected placement")
	}
	m.backend.ops = append(m.backend.ops, "place "+m.id)
	m.attached = true
	m.position = p
	return nil
}

func (m *fakeMarker) Detach() error {
	m.backend.ops = append(m.backend.ops, "detach "+m.id)
	m.attached = false
	if m.backend.failDetach[m.id] {
		return errors.New("native marker already gone")
	}
	return nil
}

func (m *fakeMarker) OnClick(fn func()) func() {
	m.click = fn
	m.listeners++
	return func() {
		m.click = nil
		m.listeners--
	}
}

func (m *fakeMarker) tap() bool {
	if m.click == nil {
		return false
	}
	m.click()
	return true
}
