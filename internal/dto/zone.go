package dto

// CreateZoneRequest registers a circular service area.
type CreateZoneRequest struct {
	Name        string  `json:"name" validate:"required,max=128"`
	FranchiseID *string `json:"franchiseId" validate:"omitempty,max=64"`
	CenterLat   float64 `json:"centerLat" validate:"min=-90,max=90"`
	CenterLng   float64 `json:"centerLng" validate:"min=-180,max=180"`
	RadiusKm    float64 `json:"radiusKm" validate:"required,gt=0,lte=500"`
}

// ZoneQuery filters the zone catalogue listing.
type ZoneQuery struct {
	ActiveOnly  bool    `form:"activeOnly"`
	FranchiseID *string `form:"franchiseId"`
}
