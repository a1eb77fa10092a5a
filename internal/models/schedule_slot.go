package models

import "time"

// SlotStatus is the occupancy state of one trainer calendar cell.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// ScheduleSlot is the authoritative per-trainer calendar entry. The
// (trainer_id, slot_date, time_slot) tuple is unique at the storage layer;
// that constraint, not any in-process lock, prevents double-booking.
type ScheduleSlot struct {
	ID        string     `db:"id" json:"id"`
	TrainerID string     `db:"trainer_id" json:"trainer_id"`
	Date      time.Time  `db:"slot_date" json:"date"`
	TimeSlot  string     `db:"time_slot" json:"time_slot"`
	Status    SlotStatus `db:"status" json:"status"`
	BookingID *string    `db:"booking_id" json:"booking_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// SlotKey identifies one calendar cell for availability queries.
type SlotKey struct {
	Date     time.Time
	TimeSlot string
}

// SlotKeysForSessions projects a session batch onto the calendar cells it
// would occupy.
func SlotKeysForSessions(sessions []Session) []SlotKey {
	keys := make([]SlotKey, 0, len(sessions))
	for _, s := range sessions {
		keys = append(keys, SlotKey{Date: s.Date, TimeSlot: s.TimeSlot})
	}
	return keys
}
