package models

import "time"

// FleetChangedEvent announces that vehicles moved or changed status.
// Cells holds the geohashes touched by the change; an empty list means
// the whole fleet may have changed.
type FleetChangedEvent struct {
	Cells      []string  `json:"cells,omitempty"`
	VehicleIDs []int64   `json:"vehicle_ids,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}
