package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

// slotLedgerStub is an in-memory stand-in for the schedule slot ledger. The
// mutex makes it safe for the concurrency scenarios.
type slotLedgerStub struct {
	mu       sync.Mutex
	occupied map[string]map[models.SlotKey]bool
}

func newSlotLedgerStub() *slotLedgerStub {
	return &slotLedgerStub{occupied: map[string]map[models.SlotKey]bool{}}
}

func (s *slotLedgerStub) book(trainerID string, keys ...models.SlotKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.occupied[trainerID] == nil {
		s.occupied[trainerID] = map[models.SlotKey]bool{}
	}
	for _, key := range keys {
		s.occupied[trainerID][key] = true
	}
}

func (s *slotLedgerStub) FindOccupied(ctx context.Context, exec sqlx.ExtContext, trainerID string, keys []models.SlotKey) ([]models.ScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []models.ScheduleSlot
	for _, key := range keys {
		if s.occupied[trainerID][key] {
			found = append(found, models.ScheduleSlot{TrainerID: trainerID, Date: key.Date, TimeSlot: key.TimeSlot, Status: models.SlotBooked})
		}
	}
	return found, nil
}

func (s *slotLedgerStub) BulkInsertBooked(ctx context.Context, exec sqlx.ExtContext, trainerID, bookingID string, keys []models.SlotKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.occupied[trainerID] == nil {
		s.occupied[trainerID] = map[models.SlotKey]bool{}
	}
	for _, key := range keys {
		if s.occupied[trainerID][key] {
			return appErrors.Clone(appErrors.ErrSlotTaken, "slot already claimed")
		}
	}
	for _, key := range keys {
		s.occupied[trainerID][key] = true
	}
	return nil
}

func companyZone(radius float64) models.Zone {
	return models.Zone{ID: "zone-1", Name: "Indiranagar", CenterLat: 12.97, CenterLng: 77.64, RadiusKm: radius, IsActive: true}
}

func fitTrainer() models.TrainerCandidate {
	return models.TrainerCandidate{
		ID:                 "t-1",
		FullName:           "A Kumar",
		IsActive:           true,
		ZoneID:             "zone-1",
		CertifiedCourseIDs: []string{"course-1"},
		Location:           &models.GeoPoint{Lat: 12.9716, Lng: 77.5946},
	}
}

func offlineContext(zone models.Zone) EligibilityContext {
	return EligibilityContext{
		CourseID:        "course-1",
		Zone:            zone,
		StudentLocation: models.GeoPoint{Lat: 12.9716, Lng: 77.5946},
		Sessions: []models.Session{
			{SessionNumber: 1, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TimeSlot: "09:00", Type: models.SessionOffline},
		},
	}
}

func TestCheckTrainerEligible(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	res, err := svc.CheckTrainer(context.Background(), nil, fitTrainer(), offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.True(t, res.Eligible)
	assert.Empty(t, res.Reasons)
}

func TestCheckTrainerInactive(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	trainer := fitTrainer()
	trainer.IsActive = false
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Contains(t, res.Reasons, "trainer is inactive")
}

func TestCheckTrainerCertificationCap(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	trainer := fitTrainer()
	trainer.CertifiedCourseIDs = []string{"course-1", "c2", "c3", "c4"}
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, offlineContext(companyZone(20)))
	require.NoError(t, err)
	// Four certifications disqualify even though one matches the course.
	assert.False(t, res.Eligible)
}

func TestCheckTrainerNotCertified(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	trainer := fitTrainer()
	trainer.CertifiedCourseIDs = []string{"other-course"}
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
}

func TestCheckTrainerOperatorMismatch(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	franchise := "franchise-7"
	trainer := fitTrainer()
	trainer.OperatorFranchiseID = &franchise
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
}

func TestCheckTrainerZoneMismatch(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	trainer := fitTrainer()
	trainer.ZoneID = "zone-2"
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
}

func TestCheckTrainerBeyondRadius(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	trainer := fitTrainer()
	trainer.Location = &models.GeoPoint{Lat: 13.0827, Lng: 80.2707}
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
}

func TestCheckTrainerOnlineOnlySkipsGeography(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	franchise := "franchise-7"
	trainer := fitTrainer()
	trainer.OperatorFranchiseID = &franchise
	trainer.ZoneID = "zone-2"
	trainer.Location = &models.GeoPoint{Lat: 13.0827, Lng: 80.2707}

	ec := offlineContext(companyZone(20))
	ec.Sessions = []models.Session{
		{SessionNumber: 1, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TimeSlot: "09:00", Type: models.SessionOnline},
	}
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, ec)
	require.NoError(t, err)
	assert.True(t, res.Eligible)
}

func TestCheckTrainerConflictingSlot(t *testing.T) {
	ledger := newSlotLedgerStub()
	ledger.book("t-1", models.SlotKey{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TimeSlot: "09:00"})
	svc := NewEligibilityService(ledger)

	res, err := svc.CheckTrainer(context.Background(), nil, fitTrainer(), offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
}

func TestCheckTrainerCollectsAllReasons(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	trainer := fitTrainer()
	trainer.IsActive = false
	trainer.ZoneID = "zone-2"
	trainer.CertifiedCourseIDs = []string{"other"}
	res, err := svc.CheckTrainer(context.Background(), nil, trainer, offlineContext(companyZone(20)))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.GreaterOrEqual(t, len(res.Reasons), 3)
}

func TestFilterEligiblePreservesOrder(t *testing.T) {
	svc := NewEligibilityService(newSlotLedgerStub())
	good1 := fitTrainer()
	good1.ID = "t-1"
	bad := fitTrainer()
	bad.ID = "t-2"
	bad.IsActive = false
	good2 := fitTrainer()
	good2.ID = "t-3"

	eligible, results, err := svc.FilterEligible(context.Background(), nil,
		[]models.TrainerCandidate{good1, bad, good2}, offlineContext(companyZone(20)))
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, "t-1", eligible[0].ID)
	assert.Equal(t, "t-3", eligible[1].ID)
	assert.Len(t, results, 3)
}
