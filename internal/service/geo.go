package service

import (
	"math"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// earthRadiusKm is the Earth's mean radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// haversineKm calculates the great-circle distance (in km) between two
// lat/lng points. Zone resolution, eligibility and selection all route
// through this one function so their distance views never diverge.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLng := (lng2 - lng1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func distanceBetween(a, b models.GeoPoint) float64 {
	return haversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
}
