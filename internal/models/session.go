package models

import "time"

// SessionType distinguishes delivery channel of a single session.
type SessionType string

const (
	SessionOnline  SessionType = "online"
	SessionOffline SessionType = "offline"
)

// SessionStatus tracks a session through its lifecycle.
type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionCompleted   SessionStatus = "completed"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

// Session is one scheduled lesson occurrence belonging to a purchase.
// The batch for a purchase always contains exactly TotalSessions entries,
// numbered 1..N in chronological order.
type Session struct {
	ID              string        `db:"id" json:"id"`
	PurchaseID      string        `db:"purchase_id" json:"purchase_id"`
	BookingID       string        `db:"booking_id" json:"booking_id"`
	SessionNumber   int           `db:"session_number" json:"session_number"`
	Date            time.Time     `db:"session_date" json:"date"`
	TimeSlot        string        `db:"time_slot" json:"time_slot"`
	Type            SessionType   `db:"session_type" json:"type"`
	IsBookable      bool          `db:"is_bookable" json:"is_bookable"`
	IsFixedTime     bool          `db:"is_fixed_time" json:"is_fixed_time"`
	RequiresBooking bool          `db:"requires_booking" json:"requires_booking"`
	Status          SessionStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}
