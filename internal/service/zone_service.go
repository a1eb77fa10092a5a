package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/dto"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/repository"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

type zoneRepository interface {
	ListActive(ctx context.Context) ([]models.Zone, error)
	List(ctx context.Context, activeOnly bool, franchiseID *string) ([]models.Zone, error)
	FindByID(ctx context.Context, id string) (*models.Zone, error)
	Create(ctx context.Context, zone *models.Zone) error
}

type zoneCatalogueCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ZoneService owns the zone catalogue and resolves which zones contain a
// point. Zones are immutable while an assignment attempt runs, so the active
// catalogue is served from a short-TTL cache.
type ZoneService struct {
	zones    zoneRepository
	cache    zoneCatalogueCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewZoneService wires the zone catalogue dependencies.
func NewZoneService(zones zoneRepository, cache zoneCatalogueCache, cacheTTL time.Duration, logger *zap.Logger) *ZoneService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ZoneService{zones: zones, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Resolve returns every active zone containing the point, nearest center
// first. Containment is boundary-inclusive: a point exactly radiusKm from
// the center is inside. An empty result means the location is unserved.
func (s *ZoneService) Resolve(ctx context.Context, point models.GeoPoint) ([]models.ResolvedZone, error) {
	zones, err := s.activeZones(ctx)
	if err != nil {
		return nil, err
	}

	var contained []models.ResolvedZone
	for _, zone := range zones {
		d := distanceBetween(point, zone.Center())
		if d <= zone.RadiusKm {
			contained = append(contained, models.ResolvedZone{Zone: zone, DistanceKm: d})
		}
	}
	sort.SliceStable(contained, func(i, j int) bool {
		return contained[i].DistanceKm < contained[j].DistanceKm
	})
	return contained, nil
}

// List returns the zone catalogue for admin consumption.
func (s *ZoneService) List(ctx context.Context, query dto.ZoneQuery) ([]models.Zone, error) {
	zones, err := s.zones.List(ctx, query.ActiveOnly, query.FranchiseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list zones")
	}
	return zones, nil
}

// Get loads one zone by id.
func (s *ZoneService) Get(ctx context.Context, id string) (*models.Zone, error) {
	zone, err := s.zones.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "zone not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load zone")
	}
	return zone, nil
}

// Create registers a new zone and invalidates the catalogue cache.
func (s *ZoneService) Create(ctx context.Context, req dto.CreateZoneRequest) (*models.Zone, error) {
	zone := &models.Zone{
		Name:                req.Name,
		OperatorFranchiseID: req.FranchiseID,
		CenterLat:           req.CenterLat,
		CenterLng:           req.CenterLng,
		RadiusKm:            req.RadiusKm,
		IsActive:            true,
	}
	if err := s.zones.Create(ctx, zone); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create zone")
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, repository.ZoneCacheKey); err != nil {
			s.logger.Warn("zone cache invalidation failed", zap.Error(err))
		}
	}
	return zone, nil
}

func (s *ZoneService) activeZones(ctx context.Context) ([]models.Zone, error) {
	if s.cache != nil {
		var cached []models.Zone
		err := s.cache.Get(ctx, repository.ZoneCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("zone cache read failed", zap.Error(err))
		}
	}

	zones, err := s.zones.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load zones")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, repository.ZoneCacheKey, zones, s.cacheTTL); err != nil {
			s.logger.Warn("zone cache write failed", zap.Error(err))
		}
	}
	return zones, nil
}
