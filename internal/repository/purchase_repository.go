package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// PurchaseRepository persists tutoring contracts and their students.
type PurchaseRepository struct {
	db *sqlx.DB
}

// NewPurchaseRepository constructs the repository.
func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts the purchase row with its terminal status plus the ordered
// student list. Runs on the provided executor so it can join the outcome
// transaction.
func (r *PurchaseRepository) Create(ctx context.Context, exec sqlx.ExtContext, purchase *models.Purchase, students []models.PurchaseStudent) error {
	target := r.exec(exec)
	now := time.Now().UTC()

	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = now
	}
	purchase.UpdatedAt = now

	const query = `
INSERT INTO purchases (id, external_booking_id, course_id, class_type, total_sessions, delivery_mode,
                       start_date, preferred_time_slot, student_lat, student_lng,
                       operator_franchise_id, zone_id, assigned_trainer_id, status, created_at, updated_at)
VALUES (:id, :external_booking_id, :course_id, :class_type, :total_sessions, :delivery_mode,
        :start_date, :preferred_time_slot, :student_lat, :student_lng,
        :operator_franchise_id, :zone_id, :assigned_trainer_id, :status, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, target, query, purchase); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}

	const studentQuery = `
INSERT INTO purchase_students (id, purchase_id, position, name, contact, created_at)
VALUES (:id, :purchase_id, :position, :name, :contact, :created_at)`

	for i := range students {
		student := &students[i]
		if student.ID == "" {
			student.ID = uuid.NewString()
		}
		student.PurchaseID = purchase.ID
		student.Position = i + 1
		if student.CreatedAt.IsZero() {
			student.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, studentQuery, student); err != nil {
			return fmt.Errorf("create purchase student: %w", err)
		}
	}
	return nil
}

// FindByID loads a purchase.
func (r *PurchaseRepository) FindByID(ctx context.Context, id string) (*models.Purchase, error) {
	const query = `
SELECT id, external_booking_id, course_id, class_type, total_sessions, delivery_mode,
       start_date, preferred_time_slot, student_lat, student_lng,
       operator_franchise_id, zone_id, assigned_trainer_id, status, created_at, updated_at
FROM purchases WHERE id = $1`
	var purchase models.Purchase
	if err := r.db.GetContext(ctx, &purchase, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	return &purchase, nil
}

// ListStudents returns the ordered student roster for a purchase.
func (r *PurchaseRepository) ListStudents(ctx context.Context, purchaseID string) ([]models.PurchaseStudent, error) {
	const query = `
SELECT id, purchase_id, position, name, contact, created_at
FROM purchase_students WHERE purchase_id = $1 ORDER BY position ASC`
	var students []models.PurchaseStudent
	if err := r.db.SelectContext(ctx, &students, query, purchaseID); err != nil {
		return nil, fmt.Errorf("list purchase students: %w", err)
	}
	return students, nil
}
