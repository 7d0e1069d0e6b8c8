package utils

import (
	"github.com/mmcloughlin/geohash"
	"github.com/piresc/fleetmap/internal/pkg/models"
)

// CellPrecision is the geohash length used when announcing fleet changes
const CellPrecision uint = 6

// EncodeCell converts a position to a geohash cell
func EncodeCell(p models.LatLng, precision uint) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, precision)
}

// CellBounds returns the rectangle covered by a geohash cell
func CellBounds(hash string) models.Bounds {
	box := geohash.BoundingBox(hash)
	return models.Bounds{
		NorthEast: models.LatLng{Lat: box.MaxLat, Lng: box.MaxLng},
		SouthWest: models.LatLng{Lat: box.MinLat, Lng: box.MinLng},
	}
}

// AnyCellIntersects reports whether one of the cells overlaps b.
// An empty cell list matches everything.
func AnyCellIntersects(cells []string, b models.Bounds) bool {
	if len(cells) == 0 {
		return true
	}
	for _, c := range cells {
		if geohash.Validate(c) != nil {
			continue
		}
		if CellBounds(c).Intersects(b) {
			return true
		}
	}
	return false
}
