package websocket

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/fleetmap/internal/pkg/constants"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// sender writes one event to the map client
type sender interface {
	Send(event string, data interface{}) error
}

// backend drives the client's map over the socket. It lives on the
// session loop; inbound client events reach it through Post.
type backend struct {
	client sender

	viewport   models.Viewport
	listeners  map[int]func(models.Viewport)
	listenerID int

	library        libraryState
	libraryWaiters []func()

	markers map[string]*marker

	surfaceOpen  bool
	surfaceClose func()
}

type libraryState int

const (
	libraryIdle libraryState = iota
	libraryRequested
	libraryReady
)

func newBackend(client sender) *backend {
	return &backend{
		client:    client,
		listeners: make(map[int]func(models.Viewport)),
		markers:   make(map[string]*marker),
	}
}

func (b *backend) Viewport() models.Viewport {
	return b.viewport
}

func (b *backend) OnViewportChange(fn func(models.Viewport)) func() {
	b.listenerID++
	id := b.listenerID
	b.listeners[id] = fn
	return func() { delete(b.listeners, id) }
}

// LoadMarkerLibrary asks the client once and queues every caller until it answers
func (b *backend) LoadMarkerLibrary(onLoaded func()) {
	switch b.library {
	case libraryReady:
		onLoaded()
		return
	case libraryIdle:
		b.library = libraryRequested
		if err := b.client.Send(constants.EventLoadLibrary, struct{}{}); err != nil {
			logger.Warn("Failed to request marker library", logger.Err(err))
		}
	}
	b.libraryWaiters = append(b.libraryWaiters, onLoaded)
}

func (b *backend) NewMarker() fleetmap.Marker {
	m := &marker{id: uuid.NewString(), backend: b}
	b.markers[m.id] = m
	return m
}

func (b *backend) OpenSurface(surface string, vehicle models.VehicleRecord, onClose func()) {
	b.surfaceOpen = true
	b.surfaceClose = onClose
	if err := b.client.Send(constants.EventSurfaceOpen, models.SurfaceOpenCommand{Surface: surface, Vehicle: vehicle}); err != nil {
		logger.Warn("Failed to open surface",
			logger.String("surface", surface),
			logger.Err(err))
	}
}

func (b *backend) setViewport(vp models.Viewport) {
	b.viewport = vp
	for _, fn := range b.listeners {
		fn(vp)
	}
}

func (b *backend) libraryLoaded() {
	if b.library == libraryReady {
		return
	}
	b.library = libraryReady
	waiting := b.libraryWaiters
	b.libraryWaiters = nil
	for _, fn := range waiting {
		fn()
	}
}

// click reports whether markerID is a live marker with a listener
func (b *backend) click(markerID string) bool {
	m, ok := b.markers[markerID]
	if !ok || !m.attached || m.onClick == nil {
		return false
	}
	m.onClick()
	return true
}

func (b *backend) surfaceClosed() {
	if !b.surfaceOpen {
		return
	}
	b.surfaceOpen = false
	onClose := b.surfaceClose
	b.surfaceClose = nil
	if onClose != nil {
		onClose()
	}
}

type marker struct {
	id       string
	backend  *backend
	attached bool
	onClick  func()
	bindings int
}

func (m *marker) ID() string { return m.id }

func (m *marker) Place(position models.LatLng, content models.MarkerContent) error {
	err := m.backend.client.Send(constants.EventMarkerPlace, models.MarkerPlaceCommand{
		MarkerID: m.id,
		Position: position,
		Content:  content,
	})
	if err != nil {
		return fmt.Errorf("failed to place marker %s: %w", m.id, err)
	}
	m.attached = true
	return nil
}

func (m *marker) Detach() error {
	if !m.attached {
		return nil
	}
	m.attached = false
	if err := m.backend.client.Send(constants.EventMarkerRemove, models.MarkerRemoveCommand{MarkerID: m.id}); err != nil {
		return fmt.Errorf("failed to remove marker %s: %w", m.id, err)
	}
	return nil
}

func (m *marker) OnClick(fn func()) func() {
	m.bindings++
	binding := m.bindings
	m.onClick = fn
	return func() {
		if m.bindings == binding {
			m.onClick = nil
		}
	}
}
