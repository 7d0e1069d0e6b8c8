// Package dispatch maps a tapped vehicle to the one interaction surface the viewer should see.
package dispatch

import "github.com/piresc/fleetmap/internal/pkg/models"

// Surface is an interaction the UI can open for a vehicle
type Surface int

const (
	SurfaceNone Surface = iota

	// customer
	SurfaceStartRental
	SurfaceWaitingForPickup
	SurfaceActiveRental

	// mechanic
	SurfaceTracking
	SurfaceVehicleFree
	SurfaceDeliveryReserved
	SurfaceDeliveryInProgress
	SurfaceStartInspection
	SurfaceInspectionInProgress
	SurfaceInUseControls
)

var surfaceNames = map[Surface]string{
	SurfaceNone:                 "none",
	SurfaceStartRental:          "start_rental",
	SurfaceWaitingForPickup:     "waiting_for_pickup",
	SurfaceActiveRental:         "active_rental",
	SurfaceTracking:             "tracking",
	SurfaceVehicleFree:          "vehicle_free",
	SurfaceDeliveryReserved:     "delivery_reserved",
	SurfaceDeliveryInProgress:   "delivery_in_progress",
	SurfaceStartInspection:      "start_inspection",
	SurfaceInspectionInProgress: "inspection_in_progress",
	SurfaceInUseControls:        "in_use_controls",
}

func (s Surface) String() string {
	if name, ok := surfaceNames[s]; ok {
		return name
	}
	return "unknown"
}

// Resolve picks the surface for a tapped vehicle. trackingPin is the
// mechanic's pinned vehicle id, zero when none. Combinations it does not
// recognise give SurfaceNone.
func Resolve(viewer models.Viewer, vehicle models.VehicleRecord, trackingPin int64) Surface {
	switch viewer.Role {
	case models.RoleCustomer:
		return resolveCustomer(viewer)
	case models.RoleMechanic:
		return resolveMechanic(viewer, vehicle, trackingPin)
	default:
		return SurfaceNone
	}
}

func resolveCustomer(viewer models.Viewer) Surface {
	if viewer.Rental == nil {
		return SurfaceStartRental
	}
	switch viewer.Rental.Status {
	case models.RentalStatusReserved:
		return SurfaceWaitingForPickup
	case models.RentalStatusInUse:
		return SurfaceActiveRental
	default:
		return SurfaceNone
	}
}

func resolveMechanic(viewer models.Viewer, vehicle models.VehicleRecord, trackingPin int64) Surface {
	if trackingPin != 0 && trackingPin == vehicle.ID {
		return SurfaceTracking
	}

	if a := viewer.Assignment; a != nil && a.VehicleID == vehicle.ID {
		switch a.Status {
		case models.AssignmentStatusService:
			return SurfaceInspectionInProgress
		case models.AssignmentStatusDelivery, models.AssignmentStatusRelocate:
			return SurfaceInUseControls
		default:
			return SurfaceNone
		}
	}

	switch vehicle.Status {
	case models.VehicleStatusFree:
		return SurfaceVehicleFree
	case models.VehicleStatusDeliveryReserved:
		return SurfaceDeliveryReserved
	case models.VehicleStatusDelivering:
		return SurfaceDeliveryInProgress
	case models.VehicleStatusReserved, models.VehicleStatusInUse,
		models.VehicleStatusService, models.VehicleStatusUnavailable:
		return SurfaceStartInspection
	default:
		return SurfaceNone
	}
}
