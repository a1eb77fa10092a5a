package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

func TestPurchaseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPurchaseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO purchases")).
		WithArgs(sqlmock.AnyArg(), "booking-1", "course-1", "ONE_ON_ONE", 10, "WEEKDAY_DAILY",
			sqlmock.AnyArg(), "09:00", 12.97, 77.59,
			nil, sqlmock.AnyArg(), nil, "WAITLISTED", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO purchase_students")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1, "Asha", "asha@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	zoneID := "zone-1"
	purchase := &models.Purchase{
		ExternalBookingID: "booking-1",
		CourseID:          "course-1",
		ClassType:         models.ClassOneOnOne,
		TotalSessions:     10,
		DeliveryMode:      models.DeliveryWeekdayDaily,
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PreferredTimeSlot: "09:00",
		StudentLat:        12.97,
		StudentLng:        77.59,
		ZoneID:            &zoneID,
		Status:            models.PurchaseWaitlisted,
	}
	students := []models.PurchaseStudent{{Name: "Asha", Contact: "asha@example.com"}}

	require.NoError(t, repo.Create(context.Background(), nil, purchase, students))
	assert.NotEmpty(t, purchase.ID)
	assert.Equal(t, purchase.ID, students[0].PurchaseID)
	assert.Equal(t, 1, students[0].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPurchaseRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "external_booking_id", "course_id", "class_type", "total_sessions", "delivery_mode",
		"start_date", "preferred_time_slot", "student_lat", "student_lng",
		"operator_franchise_id", "zone_id", "assigned_trainer_id", "status", "created_at", "updated_at",
	}).AddRow("purchase-1", "booking-1", "course-1", "HYBRID", 30, "WEEKDAY_DAILY",
		time.Now(), "09:00", 12.97, 77.59, nil, "zone-1", "trainer-1", "ASSIGNED", time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM purchases WHERE id = $1")).
		WithArgs("purchase-1").
		WillReturnRows(rows)

	purchase, err := repo.FindByID(context.Background(), "purchase-1")
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseAssigned, purchase.Status)
	require.NotNil(t, purchase.AssignedTrainerID)
	assert.Equal(t, "trainer-1", *purchase.AssignedTrainerID)
	assert.True(t, purchase.Operator().IsCompany())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepositoryListStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPurchaseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "purchase_id", "position", "name", "contact", "created_at"}).
		AddRow("student-1", "purchase-1", 1, "Asha", "asha@example.com", time.Now()).
		AddRow("student-2", "purchase-1", 2, "Ravi", "", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM purchase_students WHERE purchase_id = $1 ORDER BY position ASC")).
		WithArgs("purchase-1").
		WillReturnRows(rows)

	students, err := repo.ListStudents(context.Background(), "purchase-1")
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, 1, students[0].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}
