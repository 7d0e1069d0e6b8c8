// Package cache holds fetched vehicle data under a freshness policy that
// depends on the viewer's state.
package cache

import (
	"time"

	"github.com/piresc/fleetmap/internal/pkg/models"
)

// SourceKey names one vehicle query
type SourceKey string

const (
	SourceAllVehicles      SourceKey = "all"
	SourceMechanicVehicles SourceKey = "mechanic"
	SourceCurrentDelivery  SourceKey = "delivery"
)

// Entry is one stored query result
type Entry[T any] struct {
	Data            T
	FetchedAt       time.Time
	HasActiveRental bool
}

// TTLFor picks the freshness window for a viewer state. An active rental wins
// over tracking mode.
func TTLFor(cfg models.FreshnessConfig, hasActiveRental, tracking bool) time.Duration {
	switch {
	case hasActiveRental:
		return cfg.RentalTTL
	case tracking:
		return cfg.TrackingTTL
	default:
		return cfg.DefaultTTL
	}
}

// Cache stores the latest result per source. It performs no I/O and is not
// safe for concurrent use; a session touches it only from its loop.
type Cache[T any] struct {
	cfg     models.FreshnessConfig
	now     func() time.Time
	entries map[SourceKey]Entry[T]

	hasActiveRental bool
	tracking        bool
}

// New creates an empty cache. now is the session clock.
func New[T any](cfg models.FreshnessConfig, now func() time.Time) *Cache[T] {
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{
		cfg:     cfg,
		now:     now,
		entries: make(map[SourceKey]Entry[T]),
	}
}

// TTL is the freshness window for the last observed viewer state
func (c *Cache[T]) TTL() time.Duration {
	return TTLFor(c.cfg, c.hasActiveRental, c.tracking)
}

// Get returns a fresh entry. An entry stored under a different rental flag
// is a miss no matter how young it is.
func (c *Cache[T]) Get(key SourceKey, hasActiveRental bool) (Entry[T], bool) {
	e, ok := c.Peek(key, hasActiveRental)
	if !ok {
		return e, false
	}
	if c.now().Sub(e.FetchedAt) >= TTLFor(c.cfg, hasActiveRental, c.tracking) {
		var zero Entry[T]
		return zero, false
	}
	return e, true
}

// Peek returns the stored entry regardless of age. The rental flag must still match.
func (c *Cache[T]) Peek(key SourceKey, hasActiveRental bool) (Entry[T], bool) {
	e, ok := c.entries[key]
	if !ok || e.HasActiveRental != hasActiveRental {
		var zero Entry[T]
		return zero, false
	}
	return e, true
}

// Put stores value as the newest result for key
func (c *Cache[T]) Put(key SourceKey, value T, hasActiveRental bool) {
	c.entries[key] = Entry[T]{
		Data:            value,
		FetchedAt:       c.now(),
		HasActiveRental: hasActiveRental,
	}
}

// InvalidateAll drops every entry
func (c *Cache[T]) InvalidateAll() {
	for k := range c.entries {
		delete(c.entries, k)
	}
}

// ObserveRental records the viewer's rental presence and drops every entry
// when it flips. It reports whether a transition happened.
func (c *Cache[T]) ObserveRental(hasActiveRental bool) bool {
	if c.hasActiveRental == hasActiveRental {
		return false
	}
	c.hasActiveRental = hasActiveRental
	c.InvalidateAll()
	return true
}

// SetTracking toggles tracking mode, which only changes the TTL
func (c *Cache[T]) SetTracking(on bool) {
	c.tracking = on
}

// Len reports how many entries are stored
func (c *Cache[T]) Len() int {
	return len(c.entries)
}
