package constants

import "time"

// Redis key formats
const (
	KeyTrackingPin = "fleet:tracking:%s" // Format: fleet:tracking:{viewer_id}
)

// TrackingPinTTL bounds how long a forgotten pin survives
const TrackingPinTTL = 12 * time.Hour
