package dto

import (
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// StudentInput is one student on the incoming contract, in enrolment order.
type StudentInput struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"omitempty,max=64"`
}

// LocationInput carries the already-geocoded student coordinates.
type LocationInput struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// AssignmentRequest triggers one auto trainer assignment attempt.
type AssignmentRequest struct {
	ExternalBookingID string         `json:"externalBookingId" validate:"required"`
	CourseID          string         `json:"courseId" validate:"required"`
	ClassType         string         `json:"classType" validate:"required,oneof=ONE_ON_ONE ONE_ON_TWO ONE_ON_THREE HYBRID"`
	TotalSessions     int            `json:"totalSessions" validate:"required"`
	DeliveryMode      string         `json:"deliveryMode" validate:"required,oneof=WEEKDAY_DAILY SUNDAY_ONLY"`
	StartDate         string         `json:"startDate" validate:"required,datetime=2006-01-02"`
	PreferredTimeSlot string         `json:"preferredTimeSlot" validate:"required,datetime=15:04"`
	Students          []StudentInput `json:"students" validate:"required,min=1,max=3,dive"`
	StudentLocation   LocationInput  `json:"studentLocation" validate:"required"`
}

// AssignmentResult is the terminal outcome of one assignment attempt.
type AssignmentResult struct {
	Purchase *models.Purchase `json:"purchase"`
	Sessions []models.Session `json:"sessions,omitempty"`
	Reason   string           `json:"reason,omitempty"`
}

// PurchaseDetail aggregates a purchase with its students and sessions.
type PurchaseDetail struct {
	Purchase *models.Purchase         `json:"purchase"`
	Students []models.PurchaseStudent `json:"students"`
	Sessions []models.Session         `json:"sessions"`
}
