// Package poller refreshes a session's vehicle caches on a state dependent interval.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/loop"
	"github.com/piresc/fleetmap/internal/pkg/models"
	nrpkg "github.com/piresc/fleetmap/internal/pkg/newrelic"
	"github.com/piresc/fleetmap/services/fleetmap"
	"github.com/piresc/fleetmap/services/fleetmap/cache"
)

// Poller owns the vehicle caches of one session. All methods run on the session loop.
type Poller struct {
	ctx       context.Context
	sched     loop.Scheduler
	gw        fleetmap.VehicleGW
	nrApp     *newrelic.Application
	freshness models.FreshnessConfig
	onUpdate  func()

	vehicles *cache.Cache[[]models.VehicleRecord]
	delivery *cache.Cache[*models.VehicleRecord]

	role            models.Role
	hasActiveRental bool
	tracking        bool
	scheduled       bool

	inFlight bool
	cancel   loop.CancelFunc
	gen      int
	stopped  bool
}

// New creates a poller. onUpdate runs on the loop after a fetch stored new data.
func New(ctx context.Context, sched loop.Scheduler, gw fleetmap.VehicleGW, freshness models.FreshnessConfig, nrApp *newrelic.Application, onUpdate func()) *Poller {
	return &Poller{
		ctx:       ctx,
		sched:     sched,
		gw:        gw,
		nrApp:     nrApp,
		freshness: freshness,
		onUpdate:  onUpdate,
		vehicles:  cache.New[[]models.VehicleRecord](freshness, sched.Now),
		delivery:  cache.New[*models.VehicleRecord](freshness, sched.Now),
	}
}

// Interval is the polling cadence for a viewer state, equal to the cache TTL
func Interval(freshness models.FreshnessConfig, hasActiveRental, tracking bool) time.Duration {
	return cache.TTLFor(freshness, hasActiveRental, tracking)
}

// Schedule replaces the active interval with one for the given state and
// polls immediately. There is never more than one interval per poller.
func (p *Poller) Schedule(role models.Role, hasActiveRental, tracking bool) loop.CancelFunc {
	if p.stopped {
		return func() {}
	}
	p.cancelInterval()

	if p.scheduled && role != p.role {
		p.vehicles.InvalidateAll()
		p.delivery.InvalidateAll()
	}
	p.role = role
	p.hasActiveRental = hasActiveRental
	p.tracking = tracking
	p.scheduled = true

	p.vehicles.ObserveRental(hasActiveRental)
	p.delivery.ObserveRental(hasActiveRental)
	p.vehicles.SetTracking(tracking)
	p.delivery.SetTracking(tracking)

	interval := Interval(p.freshness, hasActiveRental, tracking)
	logger.Debug("Poll interval scheduled",
		logger.String("role", string(role)),
		logger.Bool("active_rental", hasActiveRental),
		logger.Bool("tracking", tracking),
		logger.Duration("interval", interval))

	p.gen++
	gen := p.gen
	// ticks always fetch; freshness only gates reschedules
	cancel := p.sched.Every(interval, func() { p.poll(true) })
	p.cancel = cancel
	p.poll(false)

	return func() {
		cancel()
		if p.gen == gen {
			p.cancel = nil
		}
	}
}

// Kick polls now, ignoring freshness. It obeys the in-flight latch.
func (p *Poller) Kick() {
	p.poll(true)
}

// Stop cancels the interval and ignores any fetch still in flight. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.cancelInterval()
	p.stopped = true
}

// InFlight reports whether a fetch is outstanding
func (p *Poller) InFlight() bool {
	return p.inFlight
}

// Vehicles returns the last known vehicles for the current role. For mechanics
// the current delivery comes first, followed by the assigned list without it.
func (p *Poller) Vehicles() []models.VehicleRecord {
	switch p.role {
	case models.RoleCustomer:
		e, _ := p.vehicles.Peek(cache.SourceAllVehicles, p.hasActiveRental)
		return e.Data
	case models.RoleMechanic:
		var out []models.VehicleRecord
		d, _ := p.delivery.Peek(cache.SourceCurrentDelivery, p.hasActiveRental)
		if d.Data != nil {
			out = append(out, *d.Data)
		}
		m, _ := p.vehicles.Peek(cache.SourceMechanicVehicles, p.hasActiveRental)
		for _, v := range m.Data {
			if d.Data != nil && v.ID == d.Data.ID {
				continue
			}
			out = append(out, v)
		}
		return out
	default:
		return nil
	}
}

// Delivery returns the cached current delivery entry
func (p *Poller) Delivery() (cache.Entry[*models.VehicleRecord], bool) {
	return p.delivery.Peek(cache.SourceCurrentDelivery, p.hasActiveRental)
}

func (p *Poller) cancelInterval() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Poller) fresh() bool {
	switch p.role {
	case models.RoleCustomer:
		_, ok := p.vehicles.Get(cache.SourceAllVehicles, p.hasActiveRental)
		return ok
	case models.RoleMechanic:
		_, okM := p.vehicles.Get(cache.SourceMechanicVehicles, p.hasActiveRental)
		_, okD := p.delivery.Get(cache.SourceCurrentDelivery, p.hasActiveRental)
		return okM && okD
	default:
		return true
	}
}

type result struct {
	role            models.Role
	hasActiveRental bool

	vehicles    []models.VehicleRecord
	vehiclesErr error
	delivery    *models.VehicleRecord
	deliveryErr error
}

func (p *Poller) poll(force bool) {
	if p.stopped || !p.scheduled {
		return
	}
	if p.inFlight {
		logger.Debug("Poll dropped, fetch already in flight", logger.String("role", string(p.role)))
		return
	}
	if !force && p.fresh() {
		return
	}
	switch p.role {
	case models.RoleCustomer, models.RoleMechanic:
	default:
		logger.Warn("Poll skipped for unknown role", logger.String("role", string(p.role)))
		return
	}

	p.inFlight = true
	role, rental := p.role, p.hasActiveRental
	p.sched.Go(func() {
		res := p.fetch(role, rental)
		p.sched.Post(func() { p.apply(res) })
	})
}

// fetch runs off the loop and must not touch poller state
func (p *Poller) fetch(role models.Role, hasActiveRental bool) result {
	ctx, end := nrpkg.StartBackground(p.ctx, p.nrApp, "fleetmap/poll/"+string(role))
	res := result{role: role, hasActiveRental: hasActiveRental}

	if role == models.RoleCustomer {
		res.vehicles, res.vehiclesErr = p.gw.AllVehicles(ctx)
		end(res.vehiclesErr)
		return res
	}

	res.vehicles, res.vehiclesErr = p.gw.MechanicVehicles(ctx)
	res.delivery, res.deliveryErr = p.gw.CurrentDelivery(ctx)
	if errors.Is(res.deliveryErr, fleetmap.ErrNoCurrentDelivery) {
		res.delivery, res.deliveryErr = nil, nil
	}
	end(errors.Join(res.vehiclesErr, res.deliveryErr))
	return res
}

func (p *Poller) apply(res result) {
	p.inFlight = false
	if p.stopped {
		return
	}
	if res.role != p.role || res.hasActiveRental != p.hasActiveRental {
		logger.Debug("Discarding fetch for previous viewer state", logger.String("role", string(res.role)))
		p.poll(false)
		return
	}

	stored := false
	vehicleKey := cache.SourceAllVehicles
	if res.role == models.RoleMechanic {
		vehicleKey = cache.SourceMechanicVehicles
	}

	if res.vehiclesErr != nil {
		logger.Warn("Vehicle fetch failed, keeping last known data",
			logger.String("source", string(vehicleKey)),
			logger.Err(res.vehiclesErr))
	} else {
		p.vehicles.Put(vehicleKey, res.vehicles, res.hasActiveRental)
		stored = true
	}

	if res.role == models.RoleMechanic {
		if res.deliveryErr != nil {
			logger.Warn("Current delivery fetch failed, keeping last known data",
				logger.Err(res.deliveryErr))
		} else {
			p.delivery.Put(cache.SourceCurrentDelivery, res.delivery, res.hasActiveRental)
			stored = true
		}
	}

	if stored && p.onUpdate != nil {
		p.onUpdate()
	}
}
