package render

import (
	"time"

	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
)

const (
	DefaultDebounce  = 100 * time.Millisecond
	DefaultBatchSize = 20
)

type libraryState int

const (
	libraryNotRequested libraryState = iota
	libraryLoading
	libraryLoaded
)

// ContentFunc styles a vehicle at placement time
type ContentFunc func(v models.VehicleRecord) models.MarkerContent

// Options tune a Renderer
type Options struct {
	Debounce  time.Duration
	BatchSize int
}

// Renderer turns vehicle lists into marker placements, a batch per frame.
// It must only be used from the session loop.
type Renderer struct {
	sched   loop.Scheduler
	backend fleetmap.MapBackend
	pool    *Pool
	content ContentFunc
	onClick func(vehicleID int64)

	debounce  time.Duration
	batchSize int

	latest         []models.VehicleRecord
	hasLatest      bool
	debounceCancel loop.CancelFunc
	frameCancel    loop.CancelFunc
	pass           uint64

	library  libraryState
	tornDown bool
}

// NewRenderer creates a renderer drawing on backend
func NewRenderer(sched loop.Scheduler, backend fleetmap.MapBackend, content ContentFunc, onClick func(vehicleID int64), opts Options) *Renderer {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Renderer{
		sched:     sched,
		backend:   backend,
		pool:      NewPool(backend.NewMarker),
		content:   content,
		onClick:   onClick,
		debounce:  opts.Debounce,
		batchSize: opts.BatchSize,
	}
}

// RenderPass schedules vehicles for drawing. Calls within the debounce
// window collapse and the latest list wins.
func (r *Renderer) RenderPass(vehicles []models.VehicleRecord) {
	if r.tornDown {
		return
	}
	r.latest = vehicles
	r.hasLatest = true

	if r.debounceCancel != nil {
		r.debounceCancel()
	}
	r.debounceCancel = r.sched.AfterFunc(r.debounce, r.flush)
}

func (r *Renderer) flush() {
	r.debounceCancel = nil
	if r.tornDown || !r.hasLatest {
		return
	}

	switch r.library {
	case libraryNotRequested:
		r.library = libraryLoading
		logger.Debug("Requesting marker library")
		r.backend.LoadMarkerLibrary(r.libraryLoaded)
		return
	case libraryLoading:
		return
	}

	vehicles := r.latest
	r.latest = nil
	r.hasLatest = false
	r.run(vehicles)
}

func (r *Renderer) libraryLoaded() {
	if r.library == libraryLoaded {
		return
	}
	r.library = libraryLoaded
	r.flush()
}

// run releases every placed handle before placing the first batch. A new
// pass cancels the previous pass's pending frame.
func (r *Renderer) run(vehicles []models.VehicleRecord) {
	r.pass++
	if r.frameCancel != nil {
		r.frameCancel()
		r.frameCancel = nil
	}

	r.pool.ReleaseAll()
	r.placeBatch(r.pass, vehicles)
}

func (r *Renderer) placeBatch(pass uint64, remaining []models.VehicleRecord) {
	r.frameCancel = nil
	if r.tornDown || pass != r.pass {
		return
	}

	n := r.batchSize
	if n > len(remaining) {
		n = len(remaining)
	}
	for _, v := range remaining[:n] {
		if _, err := r.pool.Place(v, r.content(v), r.onClick); err != nil {
			logger.Warn("Marker placement failed",
				logger.VehicleID(v.ID),
				logger.Err(err))
		}
	}

	rest := remaining[n:]
	if len(rest) == 0 {
		return
	}
	r.frameCancel = r.sched.RequestFrame(func() { r.placeBatch(pass, rest) })
}

// Teardown detaches every marker, clears the pool and cancels pending work.
// Safe to call repeatedly.
func (r *Renderer) Teardown() {
	if r.debounceCancel != nil {
		r.debounceCancel()
		r.debounceCancel = nil
	}
	if r.frameCancel != nil {
		r.frameCancel()
		r.frameCancel = nil
	}
	r.latest = nil
	r.hasLatest = false
	r.pool.Clear()
	r.tornDown = true
}

// Stats reports the pool's handle counts
func (r *Renderer) Stats() Stats {
	return r.pool.Stats()
}

// Placed returns the handles currently on the map
func (r *Renderer) Placed() []*MarkerHandle {
	return r.pool.Placed()
}

// Busy reports whether a debounced pass or a batch frame is pending
func (r *Renderer) Busy() bool {
	return r.debounceCancel != nil || r.frameCancel != nil
}
