package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// ScheduleSlotRepository owns the trainer calendar ledger. The unique index
// on (trainer_id, slot_date, time_slot) is the single linearizing point for
// concurrent bookings; rows are insert-only from this engine's perspective.
type ScheduleSlotRepository struct {
	db *sqlx.DB
}

// NewScheduleSlotRepository constructs the repository.
func NewScheduleSlotRepository(db *sqlx.DB) *ScheduleSlotRepository {
	return &ScheduleSlotRepository{db: db}
}

func (r *ScheduleSlotRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// FindOccupied returns the booked or blocked slots a trainer holds on any of
// the given calendar cells. Passing a transaction as exec gives the
// transaction-scoped consistent read used by the commit-time re-check.
func (r *ScheduleSlotRepository) FindOccupied(ctx context.Context, exec sqlx.ExtContext, trainerID string, keys []models.SlotKey) ([]models.ScheduleSlot, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	target := r.exec(exec)

	args := []interface{}{trainerID}
	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		args = append(args, key.Date, key.TimeSlot)
		clauses = append(clauses, fmt.Sprintf("(slot_date = $%d AND time_slot = $%d)", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(`
SELECT id, trainer_id, slot_date, time_slot, status, booking_id, created_at
FROM schedule_slots
WHERE trainer_id = $1 AND status IN ('booked', 'blocked') AND (%s)
ORDER BY slot_date ASC, time_slot ASC`, strings.Join(clauses, " OR "))

	var slots []models.ScheduleSlot
	if err := sqlx.SelectContext(ctx, target, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("find occupied slots: %w", err)
	}
	return slots, nil
}

// BulkInsertBooked claims one calendar cell per session for the trainer.
// A unique violation means another booking won the race for at least one
// cell; it is surfaced as ErrSlotTaken so the orchestrator can roll back
// and demote the outcome.
func (r *ScheduleSlotRepository) BulkInsertBooked(ctx context.Context, exec sqlx.ExtContext, trainerID, bookingID string, keys []models.SlotKey) error {
	if len(keys) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO schedule_slots (id, trainer_id, slot_date, time_slot, status, booking_id, created_at)
VALUES (:id, :trainer_id, :slot_date, :time_slot, :status, :booking_id, :created_at)`

	for _, key := range keys {
		slot := models.ScheduleSlot{
			ID:        uuid.NewString(),
			TrainerID: trainerID,
			Date:      key.Date,
			TimeSlot:  key.TimeSlot,
			Status:    models.SlotBooked,
			BookingID: &bookingID,
			CreatedAt: now,
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, slot); err != nil {
			if IsUniqueViolation(err) {
				return appErrors.Wrap(err, appErrors.ErrSlotTaken.Code, appErrors.ErrSlotTaken.Status,
					fmt.Sprintf("slot %s %s already claimed for trainer %s", key.Date.Format("2006-01-02"), key.TimeSlot, trainerID))
			}
			return fmt.Errorf("insert schedule slot: %w", err)
		}
	}
	return nil
}

// ListByTrainer returns a trainer's ledger rows in a date range. Serves the
// trainer calendar endpoint; the engine itself only reads through
// FindOccupied.
func (r *ScheduleSlotRepository) ListByTrainer(ctx context.Context, trainerID string, from, to time.Time) ([]models.ScheduleSlot, error) {
	const query = `
SELECT id, trainer_id, slot_date, time_slot, status, booking_id, created_at
FROM schedule_slots
WHERE trainer_id = $1 AND slot_date >= $2 AND slot_date <= $3
ORDER BY slot_date ASC, time_slot ASC`
	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query, trainerID, from, to); err != nil {
		return nil, fmt.Errorf("list trainer slots: %w", err)
	}
	return slots, nil
}
