package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

func TestHaversineZeroDistance(t *testing.T) {
	assert.Zero(t, haversineKm(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestHaversineKnownDistance(t *testing.T) {
	// Bengaluru to Chennai is roughly 290 km.
	d := haversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290, d, 10)
}

func TestHaversineSymmetry(t *testing.T) {
	a := models.GeoPoint{Lat: 12.9716, Lng: 77.5946}
	b := models.GeoPoint{Lat: 12.9352, Lng: 77.6245}
	assert.InDelta(t, distanceBetween(a, b), distanceBetween(b, a), 1e-9)
}
