package models

// VehicleStatus represents the operational status of a fleet vehicle
type VehicleStatus string

const (
	VehicleStatusFree             VehicleStatus = "free"
	VehicleStatusReserved         VehicleStatus = "reserved"
	VehicleStatusInUse            VehicleStatus = "in_use"
	VehicleStatusDeliveryReserved VehicleStatus = "delivery_reserved"
	VehicleStatusDelivering       VehicleStatus = "delivering"
	VehicleStatusService          VehicleStatus = "service"
	VehicleStatusUnavailable      VehicleStatus = "unavailable"
)

// LatLng represents a geographical point
type LatLng struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// VehicleRecord is an immutable snapshot of one fleet vehicle.
// Records are replaced wholesale on every fetch and never patched in place.
type VehicleRecord struct {
	ID       int64         `json:"id"`
	Position LatLng        `json:"position"`
	Heading  float64       `json:"heading"`
	Status   VehicleStatus `json:"status"`
	Name     string        `json:"name"`
}

// FindVehicle returns the record with the given id from the first list that holds it
func FindVehicle(id int64, lists ...[]VehicleRecord) (VehicleRecord, bool) {
	for _, list := range lists {
		for _, v := range list {
			if v.ID == id {
				return v, true
			}
		}
	}
	return VehicleRecord{}, false
}
