package service

import (
	"context"
	"fmt"

	"github.com/shenikar/armour_safety/internal/config"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/risk"
	"github.com/shenikar/armour_safety/internal/zone"
	"github.com/sirupsen/logrus"
)

type riskService struct {
	registry        *zone.Registry
	volunteers      VolunteerRepository
	locations       *LocationStore
	timeline        *Timeline
	logger          *logrus.Logger
	defaultRadiusKm float64
}

func NewRiskService(registry *zone.Registry, volunteers VolunteerRepository, locations *LocationStore, timeline *Timeline, logger *logrus.Logger, cfg *config.Config) RiskService {
	radius := cfg.VolunteerRadiusKm
	if radius <= 0 {
		radius = 5
	}
	return &riskService{
		registry:        registry,
		volunteers:      volunteers,
		locations:       locations,
		timeline:        timeline,
		logger:          logger,
		defaultRadiusKm: radius,
	}
}

// AssessLocation оценивает риск в точке, запоминает ее как последнее местоположение
// пользователя и отмечает смену уровня или зоны в ленте активности.
func (s *riskService) AssessLocation(ctx context.Context, userID string, location models.Coordinate) (*models.RiskAssessment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "risk",
		"method":  "AssessLocation",
		"user_id": userID,
	})

	assessment, err := risk.Assess(location, s.registry)
	if err != nil {
		log.WithError(err).Warn("Failed to assess location")
		return nil, fmt.Errorf("service: could not assess location: %w", err)
	}
	s.locations.Update(userID, location)
	s.timeline.RecordAssessment(userID, assessment)

	log.WithFields(logrus.Fields{
		"score": assessment.Score,
		"band":  assessment.Band,
	}).Info("Location assessed")
	return &assessment, nil
}

// ListZones возвращает все зоны реестра
func (s *riskService) ListZones(ctx context.Context) ([]models.Zone, error) {
	return s.registry.AllZones(), nil
}

// NearbySafeZones возвращает безопасные зоны в радиусе, ближайшие первыми
func (s *riskService) NearbySafeZones(ctx context.Context, location models.Coordinate, radiusKm float64) ([]models.ZoneDistance, error) {
	radiusKm = s.radius(radiusKm)
	zones, err := risk.WithinRadius(location, s.registry, radiusKm*1000, risk.IsSafeScore)
	if err != nil {
		return nil, fmt.Errorf("service: could not find safe zones: %w", err)
	}
	return zones, nil
}

// NearbyVolunteers возвращает волонтеров в радиусе, ближайшие первыми
func (s *riskService) NearbyVolunteers(ctx context.Context, location models.Coordinate, radiusKm float64) ([]models.VolunteerDistance, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "risk",
		"method":  "NearbyVolunteers",
	})

	if err := location.Validate(); err != nil {
		return nil, fmt.Errorf("service: could not find volunteers: %w", err)
	}
	radiusMeters := s.radius(radiusKm) * 1000

	nearby, err := s.volunteers.FindWithinRadius(ctx, location, radiusMeters)
	if err != nil {
		log.WithError(err).Error("Failed to find volunteers in repository")
		return nil, fmt.Errorf("service: could not find volunteers: %w", err)
	}
	if nearby == nil {
		nearby = make([]models.VolunteerDistance, 0)
	}

	log.WithField("count", len(nearby)).Info("Nearby volunteers found")
	return nearby, nil
}

func (s *riskService) radius(radiusKm float64) float64 {
	if radiusKm <= 0 {
		return s.defaultRadiusKm
	}
	return radiusKm
}
