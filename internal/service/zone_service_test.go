package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/dto"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

type zoneRepoStub struct {
	active     []models.Zone
	all        []models.Zone
	created    []*models.Zone
	listErr    error
	activeHits int
}

func (s *zoneRepoStub) ListActive(ctx context.Context) ([]models.Zone, error) {
	s.activeHits++
	return s.active, s.listErr
}

func (s *zoneRepoStub) List(ctx context.Context, activeOnly bool, franchiseID *string) ([]models.Zone, error) {
	return s.all, s.listErr
}

func (s *zoneRepoStub) FindByID(ctx context.Context, id string) (*models.Zone, error) {
	for i := range s.active {
		if s.active[i].ID == id {
			return &s.active[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *zoneRepoStub) Create(ctx context.Context, zone *models.Zone) error {
	s.created = append(s.created, zone)
	return nil
}

type cacheStub struct {
	values  map[string][]byte
	deleted []string
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: map[string][]byte{}}
}

func (s *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}

func (s *cacheStub) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.values, key)
	return nil
}

func zoneAt(id string, lat, lng, radius float64) models.Zone {
	return models.Zone{ID: id, Name: id, CenterLat: lat, CenterLng: lng, RadiusKm: radius, IsActive: true}
}

func TestZoneResolveNearestFirst(t *testing.T) {
	repo := &zoneRepoStub{active: []models.Zone{
		zoneAt("far", 12.90, 77.50, 50),
		zoneAt("near", 12.97, 77.59, 50),
	}}
	svc := NewZoneService(repo, nil, time.Minute, nil)

	resolved, err := svc.Resolve(context.Background(), models.GeoPoint{Lat: 12.9716, Lng: 77.5946})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "near", resolved[0].ID)
	assert.Less(t, resolved[0].DistanceKm, resolved[1].DistanceKm)
}

func TestZoneResolveBoundaryInclusive(t *testing.T) {
	center := models.GeoPoint{Lat: 12.9716, Lng: 77.5946}

	// Radius zero still contains its exact center.
	repo := &zoneRepoStub{active: []models.Zone{zoneAt("point", center.Lat, center.Lng, 0)}}
	svc := NewZoneService(repo, nil, time.Minute, nil)
	resolved, err := svc.Resolve(context.Background(), center)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "point", resolved[0].ID)
}

func TestZoneResolveOutsideEveryZone(t *testing.T) {
	repo := &zoneRepoStub{active: []models.Zone{zoneAt("blr", 12.97, 77.59, 5)}}
	svc := NewZoneService(repo, nil, time.Minute, nil)

	// Chennai is far outside a 5 km Bengaluru zone.
	resolved, err := svc.Resolve(context.Background(), models.GeoPoint{Lat: 13.0827, Lng: 80.2707})
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestZoneResolveUsesCache(t *testing.T) {
	repo := &zoneRepoStub{active: []models.Zone{zoneAt("blr", 12.97, 77.59, 50)}}
	cache := newCacheStub()
	svc := NewZoneService(repo, cache, time.Minute, nil)

	point := models.GeoPoint{Lat: 12.9716, Lng: 77.5946}
	_, err := svc.Resolve(context.Background(), point)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), point)
	require.NoError(t, err)

	// Second resolution is served from the cache.
	assert.Equal(t, 1, repo.activeHits)
}

func TestZoneGet(t *testing.T) {
	repo := &zoneRepoStub{active: []models.Zone{zoneAt("zone-1", 12.97, 77.59, 5)}}
	svc := NewZoneService(repo, nil, time.Minute, nil)

	zone, err := svc.Get(context.Background(), "zone-1")
	require.NoError(t, err)
	assert.Equal(t, "zone-1", zone.ID)
}

func TestZoneGetNotFound(t *testing.T) {
	svc := NewZoneService(&zoneRepoStub{}, nil, time.Minute, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestZoneCreateInvalidatesCache(t *testing.T) {
	repo := &zoneRepoStub{}
	cache := newCacheStub()
	cache.values["assignment:zones:active"] = []byte("[]")
	svc := NewZoneService(repo, cache, time.Minute, nil)

	zone, err := svc.Create(context.Background(), dto.CreateZoneRequest{
		Name:      "Indiranagar",
		CenterLat: 12.97,
		CenterLng: 77.64,
		RadiusKm:  8,
	})
	require.NoError(t, err)
	assert.True(t, zone.IsActive)
	assert.Contains(t, cache.deleted, "assignment:zones:active")
	require.Len(t, repo.created, 1)
}
