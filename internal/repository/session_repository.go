package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// SessionRepository persists the per-purchase session batches.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// BulkCreate inserts the full session batch for one purchase. Always called
// with the batch produced by the schedule generator, inside the outcome
// transaction.
func (r *SessionRepository) BulkCreate(ctx context.Context, exec sqlx.ExtContext, sessions []models.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO sessions (id, purchase_id, booking_id, session_number, session_date, time_slot,
                      session_type, is_bookable, is_fixed_time, requires_booking, status, created_at)
VALUES (:id, :purchase_id, :booking_id, :session_number, :session_date, :time_slot,
        :session_type, :is_bookable, :is_fixed_time, :requires_booking, :status, :created_at)`

	for i := range sessions {
		session := &sessions[i]
		if session.ID == "" {
			session.ID = uuid.NewString()
		}
		if session.Status == "" {
			session.Status = models.SessionScheduled
		}
		if session.CreatedAt.IsZero() {
			session.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, session); err != nil {
			return fmt.Errorf("create session %d: %w", session.SessionNumber, err)
		}
	}
	return nil
}

// ListByPurchase returns sessions in session-number order.
func (r *SessionRepository) ListByPurchase(ctx context.Context, purchaseID string) ([]models.Session, error) {
	const query = `
SELECT id, purchase_id, booking_id, session_number, session_date, time_slot,
       session_type, is_bookable, is_fixed_time, requires_booking, status, created_at
FROM sessions WHERE purchase_id = $1 ORDER BY session_number ASC`
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, purchaseID); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
