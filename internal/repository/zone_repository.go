package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

// ZoneRepository persists the geographic zone catalogue.
type ZoneRepository struct {
	db *sqlx.DB
}

// NewZoneRepository constructs the repository.
func NewZoneRepository(db *sqlx.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// ListActive returns every active zone. The resolver filters geometrically
// in memory; the catalogue is small and cached upstream.
func (r *ZoneRepository) ListActive(ctx context.Context) ([]models.Zone, error) {
	const query = `
SELECT id, name, operator_franchise_id, center_lat, center_lng, radius_km, is_active, created_at
FROM zones WHERE is_active = TRUE ORDER BY created_at ASC`
	var zones []models.Zone
	if err := r.db.SelectContext(ctx, &zones, query); err != nil {
		return nil, fmt.Errorf("list active zones: %w", err)
	}
	return zones, nil
}

// List returns zones with optional operator filtering.
func (r *ZoneRepository) List(ctx context.Context, activeOnly bool, franchiseID *string) ([]models.Zone, error) {
	query := `
SELECT id, name, operator_franchise_id, center_lat, center_lng, radius_km, is_active, created_at
FROM zones WHERE 1=1`
	args := []interface{}{}
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	if franchiseID != nil {
		args = append(args, *franchiseID)
		query += fmt.Sprintf(` AND operator_franchise_id = $%d`, len(args))
	}
	query += ` ORDER BY name ASC`

	var zones []models.Zone
	if err := r.db.SelectContext(ctx, &zones, query, args...); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

// FindByID loads one zone.
func (r *ZoneRepository) FindByID(ctx context.Context, id string) (*models.Zone, error) {
	const query = `
SELECT id, name, operator_franchise_id, center_lat, center_lng, radius_km, is_active, created_at
FROM zones WHERE id = $1`
	var zone models.Zone
	if err := r.db.GetContext(ctx, &zone, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find zone: %w", err)
	}
	return &zone, nil
}

// Create registers a zone. Company and franchise zones have disjoint name
// scopes, enforced by partial unique indexes; a collision surfaces as a
// conflict error.
func (r *ZoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	if zone.ID == "" {
		zone.ID = uuid.NewString()
	}
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = time.Now().UTC()
	}
	const query = `
INSERT INTO zones (id, name, operator_franchise_id, center_lat, center_lng, radius_km, is_active, created_at)
VALUES (:id, :name, :operator_franchise_id, :center_lat, :center_lng, :radius_km, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, zone); err != nil {
		if IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("zone name %q already exists for this operator", zone.Name))
		}
		return fmt.Errorf("create zone: %w", err)
	}
	return nil
}
