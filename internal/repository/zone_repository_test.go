package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

func TestZoneRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewZoneRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "operator_franchise_id", "center_lat", "center_lng", "radius_km", "is_active", "created_at"}).
		AddRow("zone-1", "Indiranagar", nil, 12.97, 77.64, 8.0, true, time.Now()).
		AddRow("zone-2", "Koramangala", "franchise-7", 12.93, 77.62, 5.0, true, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM zones WHERE is_active = TRUE")).
		WillReturnRows(rows)

	zones, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.True(t, zones[0].Operator().IsCompany())
	assert.Equal(t, "franchise-7", zones[1].Operator().FranchiseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZoneRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewZoneRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO zones")).
		WithArgs(sqlmock.AnyArg(), "Indiranagar", nil, 12.97, 77.64, 8.0, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	zone := &models.Zone{
		Name:      "Indiranagar",
		CenterLat: 12.97,
		CenterLng: 77.64,
		RadiusKm:  8.0,
		IsActive:  true,
	}
	require.NoError(t, repo.Create(context.Background(), zone))
	assert.NotEmpty(t, zone.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestZoneRepositoryCreateDuplicateName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewZoneRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO zones")).
		WillReturnError(&pq.Error{Code: "23505"})

	zone := &models.Zone{Name: "Indiranagar", RadiusKm: 8.0, IsActive: true}
	err := repo.Create(context.Background(), zone)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
