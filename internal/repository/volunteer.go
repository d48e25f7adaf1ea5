package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/service"
)

type VolunteerRepository struct {
	db *pgxpool.Pool
}

func NewVolunteerRepository(db *pgxpool.Pool) service.VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// FindWithinRadius возвращает волонтеров в радиусе от точки, ближайшие первыми.
// Поиск и расстояние считаются в PostGIS по geography, то есть в метрах.
func (r *VolunteerRepository) FindWithinRadius(ctx context.Context, location models.Coordinate, radiusMeters float64) ([]models.VolunteerDistance, error) {
	query := `
		SELECT
			id,
			name,
			ST_Y(location::geometry) AS latitude,
			ST_X(location::geometry) AS longitude,
			online,
			rating::float8,
			verified,
			ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) AS distance_meters
		FROM volunteers
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance_meters, id;
	`
	rows, err := r.db.Query(ctx, query, location.Longitude, location.Latitude, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to find volunteers within radius: %w", err)
	}
	defer rows.Close()

	volunteers := make([]models.VolunteerDistance, 0)
	for rows.Next() {
		var vd models.VolunteerDistance
		err := rows.Scan(
			&vd.Volunteer.ID,
			&vd.Volunteer.Name,
			&vd.Volunteer.Coordinate.Latitude,
			&vd.Volunteer.Coordinate.Longitude,
			&vd.Volunteer.Online,
			&vd.Volunteer.Rating,
			&vd.Volunteer.Verified,
			&vd.DistanceMeters,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan volunteer row: %w", err)
		}
		volunteers = append(volunteers, vd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error volunteer iteration: %w", err)
	}
	return volunteers, nil
}
