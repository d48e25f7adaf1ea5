package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shenikar/armour_safety/internal/models"
)

// ZoneRepository определяет контракт загрузки зон риска
type ZoneRepository interface {
	FetchZones(ctx context.Context) ([]models.Zone, error)
}

// VolunteerRepository определяет контракт поиска волонтеров рядом с точкой
type VolunteerRepository interface {
	FindWithinRadius(ctx context.Context, location models.Coordinate, radiusMeters float64) ([]models.VolunteerDistance, error)
}

// LocationProvider возвращает текущее местоположение пользователя
type LocationProvider interface {
	CurrentLocation(ctx context.Context, userID string) (models.Coordinate, error)
}

// RiskService определяет контракт оценки риска и поиска помощи рядом
type RiskService interface {
	AssessLocation(ctx context.Context, userID string, location models.Coordinate) (*models.RiskAssessment, error)
	ListZones(ctx context.Context) ([]models.Zone, error)
	NearbySafeZones(ctx context.Context, location models.Coordinate, radiusKm float64) ([]models.ZoneDistance, error)
	NearbyVolunteers(ctx context.Context, location models.Coordinate, radiusKm float64) ([]models.VolunteerDistance, error)
}

// AlertService определяет контракт управления SOS-сессиями пользователей
type AlertService interface {
	Trigger(ctx context.Context, userID string, location *models.Coordinate, networkStatus string) (models.AlertSession, error)
	Tick(ctx context.Context, userID string) (models.AlertSession, error)
	Cancel(ctx context.Context, userID string) (models.AlertSession, error)
	Reset(ctx context.Context, userID string) (models.AlertSession, error)
	GetSession(ctx context.Context, userID string) (models.AlertSession, error)
	OnDispatchResult(ctx context.Context, userID string, sessionID uuid.UUID, result models.DispatchResult) error
}

// TimelineService определяет контракт чтения ленты активности пользователя
type TimelineService interface {
	Events(ctx context.Context, userID string) ([]models.TimelineEvent, error)
}
