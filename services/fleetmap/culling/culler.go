// Package culling reduces a fleet to the bounded set of vehicles worth drawing.
package culling

import (
	"sort"

	"github.com/piresc/fleetmap/internal/pkg/models"
)

// Rank orders vehicles when more compete for the map than the cap allows.
// Lower ranks are kept first.
type Rank int

const (
	RankFocused Rank = iota
	RankDelivering
	RankInUse
	RankFree
	RankOther
)

// RankOf returns the rank of v. Focused ids are the viewer's rented vehicle
// and a mechanic's tracking pin.
func RankOf(v models.VehicleRecord, focus ...int64) Rank {
	for _, id := range focus {
		if id != 0 && id == v.ID {
			return RankFocused
		}
	}
	switch v.Status {
	case models.VehicleStatusDeliveryReserved, models.VehicleStatusDelivering:
		return RankDelivering
	case models.VehicleStatusReserved, models.VehicleStatusInUse, models.VehicleStatusService:
		return RankInUse
	case models.VehicleStatusFree:
		return RankFree
	default:
		return RankOther
	}
}

// Culler holds the render budget and the viewport padding fraction
type Culler struct {
	Cap     int
	Padding float64
}

// New creates a culler
func New(cap int, padding float64) Culler {
	return Culler{Cap: cap, Padding: padding}
}

// Cull returns at most Cap vehicles. Fleets within the cap come back
// unchanged. Larger fleets are filtered to the padded viewport and, if still
// too many, stably sorted by rank and truncated. Focused vehicles survive the
// filter wherever they are. A zero viewport skips the geographic filter. The input slice is never modified.
func (c Culler) Cull(vehicles []models.VehicleRecord, vp models.Viewport, focus ...int64) []models.VehicleRecord {
	if len(vehicles) <= c.Cap {
		return vehicles
	}

	retained := make([]models.VehicleRecord, 0, len(vehicles))
	if vp.Bounds.IsZero() {
		retained = append(retained, vehicles...)
	} else {
		padded := vp.Bounds.Pad(c.Padding)
		for _, v := range vehicles {
			if padded.Contains(v.Position) || RankOf(v, focus...) == RankFocused {
				retained = append(retained, v)
			}
		}
	}

	if len(retained) <= c.Cap {
		return retained
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return RankOf(retained[i], focus...) < RankOf(retained[j], focus...)
	})
	return retained[:c.Cap:c.Cap]
}
