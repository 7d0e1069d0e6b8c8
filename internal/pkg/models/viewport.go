package models

// Bounds is a geographic rectangle given by its north-east and south-west corners
type Bounds struct {
	NorthEast LatLng `json:"north_east"`
	SouthWest LatLng `json:"south_west"`
}

// Viewport is the visible map region plus the current zoom level
type Viewport struct {
	Bounds Bounds  `json:"bounds"`
	Zoom   float64 `json:"zoom"`
}

// Pad expands the bounds by fraction of their span in each direction.
// Longitudes are not wrapped across the antimeridian.
func (b Bounds) Pad(fraction float64) Bounds {
	latPad := (b.NorthEast.Lat - b.SouthWest.Lat) * fraction
	lngPad := (b.NorthEast.Lng - b.SouthWest.Lng) * fraction
	return Bounds{
		NorthEast: LatLng{Lat: b.NorthEast.Lat + latPad, Lng: b.NorthEast.Lng + lngPad},
		SouthWest: LatLng{Lat: b.SouthWest.Lat - latPad, Lng: b.SouthWest.Lng - lngPad},
	}
}

// Contains reports whether p lies inside the bounds, edges included
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat >= b.SouthWest.Lat && p.Lat <= b.NorthEast.Lat &&
		p.Lng >= b.SouthWest.Lng && p.Lng <= b.NorthEast.Lng
}

// Intersects reports whether two bounds overlap, touching edges included
func (b Bounds) Intersects(o Bounds) bool {
	return b.SouthWest.Lat <= o.NorthEast.Lat && o.SouthWest.Lat <= b.NorthEast.Lat &&
		b.SouthWest.Lng <= o.NorthEast.Lng && o.SouthWest.Lng <= b.NorthEast.Lng
}

// IsZero reports whether the bounds were never set
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}
