package models

import "time"

// ClassType enumerates the supported tutoring contract shapes.
type ClassType string

const (
	ClassOneOnOne   ClassType = "ONE_ON_ONE"
	ClassOneOnTwo   ClassType = "ONE_ON_TWO"
	ClassOneOnThree ClassType = "ONE_ON_THREE"
	ClassHybrid     ClassType = "HYBRID"
)

// StudentCount returns the exact number of students the class type implies,
// or 0 when the type has no fixed size requirement.
func (t ClassType) StudentCount() int {
	switch t {
	case ClassOneOnOne:
		return 1
	case ClassOneOnTwo:
		return 2
	case ClassOneOnThree:
		return 3
	default:
		return 0
	}
}

// DeliveryMode enumerates the session cadence of a contract.
type DeliveryMode string

const (
	DeliveryWeekdayDaily DeliveryMode = "WEEKDAY_DAILY"
	DeliverySundayOnly   DeliveryMode = "SUNDAY_ONLY"
)

// PurchaseStatus is the terminal outcome of one assignment attempt.
type PurchaseStatus string

const (
	PurchaseAssigned            PurchaseStatus = "ASSIGNED"
	PurchaseWaitlisted          PurchaseStatus = "WAITLISTED"
	PurchaseServiceNotAvailable PurchaseStatus = "SERVICE_NOT_AVAILABLE"
	PurchaseInvalid             PurchaseStatus = "INVALID_PURCHASE"
)

// GeoPoint is a resolved WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Purchase is one tutoring contract subjected to trainer assignment.
// A row is written exactly once per attempt, inside the transaction that
// finalises the outcome, and is never deleted.
type Purchase struct {
	ID                  string         `db:"id" json:"id"`
	ExternalBookingID   string         `db:"external_booking_id" json:"external_booking_id"`
	CourseID            string         `db:"course_id" json:"course_id"`
	ClassType           ClassType      `db:"class_type" json:"class_type"`
	TotalSessions       int            `db:"total_sessions" json:"total_sessions"`
	DeliveryMode        DeliveryMode   `db:"delivery_mode" json:"delivery_mode"`
	StartDate           time.Time      `db:"start_date" json:"start_date"`
	PreferredTimeSlot   string         `db:"preferred_time_slot" json:"preferred_time_slot"`
	StudentLat          float64        `db:"student_lat" json:"student_lat"`
	StudentLng          float64        `db:"student_lng" json:"student_lng"`
	OperatorFranchiseID *string        `db:"operator_franchise_id" json:"operator_franchise_id,omitempty"`
	ZoneID              *string        `db:"zone_id" json:"zone_id,omitempty"`
	AssignedTrainerID   *string        `db:"assigned_trainer_id" json:"assigned_trainer_id,omitempty"`
	Status              PurchaseStatus `db:"status" json:"status"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}

// Location returns the student coordinates as a GeoPoint.
func (p *Purchase) Location() GeoPoint {
	return GeoPoint{Lat: p.StudentLat, Lng: p.StudentLng}
}

// Operator returns the resolved operator context of the purchase.
func (p *Purchase) Operator() Operator {
	return OperatorFromFranchiseID(p.OperatorFranchiseID)
}

// PurchaseStudent is one student on the contract, in enrolment order.
type PurchaseStudent struct {
	ID         string    `db:"id" json:"id"`
	PurchaseID string    `db:"purchase_id" json:"purchase_id"`
	Position   int       `db:"position" json:"position"`
	Name       string    `db:"name" json:"name"`
	Contact    string    `db:"contact" json:"contact"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
