package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/service"
)

const zonesCacheKey = "zones:all"

type ZoneRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewZoneRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.ZoneRepository {
	return &ZoneRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// FetchZones возвращает все зоны: сначала из кеша Redis, затем из бд
func (r *ZoneRepository) FetchZones(ctx context.Context) ([]models.Zone, error) {
	cached, err := r.getZonesFromCache(ctx)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	query := `
		SELECT
			id,
			name,
			latitude,
			longitude,
			risk_score,
			category
		FROM zones
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	zones := make([]models.Zone, 0)
	for rows.Next() {
		var z models.Zone
		var category string
		err := rows.Scan(
			&z.ID,
			&z.Name,
			&z.Coordinate.Latitude,
			&z.Coordinate.Longitude,
			&z.RiskScore,
			&category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone row: %w", err)
		}
		z.Category = models.ZoneCategory(category)
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error zone list iteration: %w", err)
	}

	if err := r.setZonesCache(ctx, zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// getZonesFromCache возвращает nil без ошибки при промахе кеша
func (r *ZoneRepository) getZonesFromCache(ctx context.Context) ([]models.Zone, error) {
	val, err := r.redisClient.Get(ctx, zonesCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get zones from cache: %w", err)
	}

	var zones []models.Zone
	if err := json.Unmarshal(val, &zones); err != nil {
		return nil, fmt.Errorf("failed to unmarshal zones from cache: %w", err)
	}
	return zones, nil
}

func (r *ZoneRepository) setZonesCache(ctx context.Context, zones []models.Zone) error {
	val, err := json.Marshal(zones)
	if err != nil {
		return fmt.Errorf("failed to marshal zones for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, zonesCacheKey, val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set zones in cache: %w", err)
	}
	return nil
}
