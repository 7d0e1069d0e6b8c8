package models

import "github.com/google/uuid"

// Role identifies which branch of the map a viewer gets
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMechanic Role = "mechanic"
)

// RentalStatus represents the lifecycle of a customer rental
type RentalStatus string

const (
	RentalStatusReserved RentalStatus = "reserved"
	RentalStatusInUse    RentalStatus = "in_use"
)

// AssignmentStatus represents the kind of job a mechanic is working on
type AssignmentStatus string

const (
	AssignmentStatusService  AssignmentStatus = "service"
	AssignmentStatusDelivery AssignmentStatus = "delivery"
	AssignmentStatusRelocate AssignmentStatus = "relocate"
)

// Rental is a customer's active rental
type Rental struct {
	ID        int64        `json:"id"`
	VehicleID int64        `json:"vehicle_id"`
	Status    RentalStatus `json:"status"`
}

// Assignment is a mechanic's active job on a vehicle
type Assignment struct {
	ID        int64            `json:"id"`
	VehicleID int64            `json:"vehicle_id"`
	Status    AssignmentStatus `json:"status"`
}

// Viewer is the session state of the person looking at the map
type Viewer struct {
	ID         uuid.UUID   `json:"id"`
	Role       Role        `json:"role"`
	Rental     *Rental     `json:"rental,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// HasActiveRental reports whether the viewer currently holds a rental
func (v Viewer) HasActiveRental() bool {
	return v.Rental != nil
}

// RentedVehicleID returns the id of the rented vehicle, if any
func (v Viewer) RentedVehicleID() (int64, bool) {
	if v.Rental == nil {
		return 0, false
	}
	return v.Rental.VehicleID, true
}
