package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleSlotRepositoryFindOccupied(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "trainer_id", "slot_date", "time_slot", "status", "booking_id", "created_at"}).
		AddRow("slot-1", "trainer-1", day, "09:00", "booked", "booking-9", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, trainer_id, slot_date, time_slot, status, booking_id, created_at")).
		WithArgs("trainer-1", day, "09:00", day.AddDate(0, 0, 1), "09:00").
		WillReturnRows(rows)

	keys := []models.SlotKey{
		{Date: day, TimeSlot: "09:00"},
		{Date: day.AddDate(0, 0, 1), TimeSlot: "09:00"},
	}
	occupied, err := repo.FindOccupied(context.Background(), nil, "trainer-1", keys)
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, models.SlotBooked, occupied[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSlotRepositoryFindOccupiedEmptyKeys(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	occupied, err := repo.FindOccupied(context.Background(), nil, "trainer-1", nil)
	require.NoError(t, err)
	assert.Empty(t, occupied)
}

func TestScheduleSlotRepositoryBulkInsertBooked(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_slots")).
			WithArgs(sqlmock.AnyArg(), "trainer-1", sqlmock.AnyArg(), "09:00", "booked", "booking-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	keys := []models.SlotKey{
		{Date: day, TimeSlot: "09:00"},
		{Date: day.AddDate(0, 0, 1), TimeSlot: "09:00"},
	}
	require.NoError(t, repo.BulkInsertBooked(context.Background(), nil, "trainer-1", "booking-1", keys))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSlotRepositoryBulkInsertBookedRaceLost(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_slots")).
		WithArgs(sqlmock.AnyArg(), "trainer-1", sqlmock.AnyArg(), "09:00", "booked", "booking-1", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	err := repo.BulkInsertBooked(context.Background(), nil, "trainer-1", "booking-1", []models.SlotKey{{Date: day, TimeSlot: "09:00"}})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrSlotTaken.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleSlotRepositoryListByTrainer(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)
	rows := sqlmock.NewRows([]string{"id", "trainer_id", "slot_date", "time_slot", "status", "booking_id", "created_at"}).
		AddRow("slot-1", "trainer-1", from, "09:00", "booked", "booking-9", time.Now()).
		AddRow("slot-2", "trainer-1", from.AddDate(0, 0, 1), "09:00", "blocked", nil, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_slots")).
		WithArgs("trainer-1", from, to).
		WillReturnRows(rows)

	slots, err := repo.ListByTrainer(context.Background(), "trainer-1", from, to)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, models.SlotBlocked, slots[1].Status)
	assert.Nil(t, slots[1].BookingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
