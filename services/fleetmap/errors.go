package fleetmap

import "errors"

var (
	// ErrNoCurrentDelivery means the mechanic has no delivery. It is an expected outcome.
	ErrNoCurrentDelivery = errors.New("no current delivery")
	// ErrNoPin means the viewer has not pinned a vehicle
	ErrNoPin = errors.New("no tracking pin")
	// ErrForbidden is returned for operations the viewer's role may not perform
	ErrForbidden = errors.New("operation not allowed for role")
)
