package models

import "time"

// Zone is a circular geographic service area owned by an operator.
// Zones are immutable while an assignment attempt is in flight; overlapping
// zones are legal and the nearest containing zone wins.
type Zone struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	OperatorFranchiseID *string   `db:"operator_franchise_id" json:"operator_franchise_id,omitempty"`
	CenterLat           float64   `db:"center_lat" json:"center_lat"`
	CenterLng           float64   `db:"center_lng" json:"center_lng"`
	RadiusKm            float64   `db:"radius_km" json:"radius_km"`
	IsActive            bool      `db:"is_active" json:"is_active"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// Operator returns the zone's operating entity.
func (z *Zone) Operator() Operator {
	return OperatorFromFranchiseID(z.OperatorFranchiseID)
}

// Center returns the zone center as a GeoPoint.
func (z *Zone) Center() GeoPoint {
	return GeoPoint{Lat: z.CenterLat, Lng: z.CenterLng}
}

// ResolvedZone pairs a containing zone with the distance from the query
// point to its center.
type ResolvedZone struct {
	Zone
	DistanceKm float64 `json:"distance_km"`
}
