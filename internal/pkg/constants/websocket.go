package constants

// WebSocket event types
const (
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"

	// Inbound from the map client
	EventViewport      = "viewport"
	EventMarkerClick   = "marker_click"
	EventLibraryLoaded = "library_loaded"
	EventDeepLink      = "deep_link"
	EventSurfaceClosed = "surface_closed"
	EventTrackingPin   = "tracking_pin"
	EventTrackingClear = "tracking_clear"

	// Outbound to the map client
	EventLoadLibrary  = "load_library"
	EventMarkerPlace  = "marker_place"
	EventMarkerRemove = "marker_remove"
	EventSurfaceOpen  = "surface_open"
)

// WebSocket error codes
const (
	ErrorInvalidFormat = "invalid_format"
	ErrorUnauthorized  = "unauthorized"
	ErrorForbidden     = "forbidden"
	ErrorInternalError = "internal_error"
)
