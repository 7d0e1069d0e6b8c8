package models

import "encoding/json"

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ViewportEvent is sent by the map client whenever the visible region or zoom changes
type ViewportEvent struct {
	Bounds Bounds  `json:"bounds"`
	Zoom   float64 `json:"zoom" validate:"gte=0,lte=24"`
}

// MarkerClickEvent is sent by the map client when a marker is tapped
type MarkerClickEvent struct {
	MarkerID string `json:"marker_id"`
}

// DeepLinkEvent asks the session to open the interaction for a vehicle id
type DeepLinkEvent struct {
	VehicleID int64 `json:"vehicle_id"`
}

// TrackingPinEvent pins the map to one vehicle (mechanic only)
type TrackingPinEvent struct {
	VehicleID int64 `json:"vehicle_id"`
}

// MarkerPlaceCommand asks the map client to show a marker
type MarkerPlaceCommand struct {
	MarkerID string        `json:"marker_id"`
	Position LatLng        `json:"position"`
	Content  MarkerContent `json:"content"`
}

// MarkerRemoveCommand asks the map client to detach a marker
type MarkerRemoveCommand struct {
	MarkerID string `json:"marker_id"`
}

// SurfaceOpenCommand asks the client UI to open an interaction surface
type SurfaceOpenCommand struct {
	Surface string        `json:"surface"`
	Vehicle VehicleRecord `json:"vehicle"`
}
