package constants

// NATS subjects
const (
	// SubjectFleetChanged carries models.FleetChangedEvent
	SubjectFleetChanged = "fleet.vehicles.changed"
)
