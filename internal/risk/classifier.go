// Package risk классифицирует точку по реестру зон: оценка, уровень и ближайшие
// безопасная и опасная зоны.
package risk

import (
	"sort"

	"github.com/shenikar/armour_safety/internal/geo"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/zone"
)

const (
	SafeMaxScore    = 30
	CautionMaxScore = 60
)

// IsSafeScore - оценка в безопасном диапазоне (<= 30)
func IsSafeScore(score int) bool {
	return score <= SafeMaxScore
}

// IsDangerScore - оценка в опасном диапазоне (> 60)
func IsDangerScore(score int) bool {
	return score > CautionMaxScore
}

// ClassifyBand переводит оценку в уровень опасности
func ClassifyBand(score int) models.Band {
	switch {
	case IsSafeScore(score):
		return models.BandSafe
	case IsDangerScore(score):
		return models.BandDanger
	default:
		return models.BandCaution
	}
}

// Classifier оценивает точки по фиксированному реестру
type Classifier struct {
	registry *zone.Registry
}

func NewClassifier(registry *zone.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Assess оценивает точку по реестру классификатора
func (c *Classifier) Assess(location models.Coordinate) (models.RiskAssessment, error) {
	return Assess(location, c.registry)
}

// Assess оценивает точку: оценка берется у ближайшей зоны (при равенстве - с меньшим ID).
// Пустой реестр дает оценку 0 и уровень SAFE.
func Assess(location models.Coordinate, registry *zone.Registry) (models.RiskAssessment, error) {
	if err := location.Validate(); err != nil {
		return models.RiskAssessment{}, err
	}

	var nearest, nearestSafe, nearestDanger *models.ZoneDistance
	for _, z := range registry.AllZones() {
		d, err := geo.DistanceMeters(location, z.Coordinate)
		if err != nil {
			return models.RiskAssessment{}, err
		}
		// зоны упорядочены по ID, строгое сравнение оставляет меньший ID при равенстве
		if nearest == nil || d < nearest.DistanceMeters {
			nearest = zoneDistance(location, z, d)
		}
		if IsSafeScore(z.RiskScore) && (nearestSafe == nil || d < nearestSafe.DistanceMeters) {
			nearestSafe = zoneDistance(location, z, d)
		}
		if IsDangerScore(z.RiskScore) && (nearestDanger == nil || d < nearestDanger.DistanceMeters) {
			nearestDanger = zoneDistance(location, z, d)
		}
	}

	score := 0
	if nearest != nil {
		score = nearest.Zone.RiskScore
	}

	return models.RiskAssessment{
		Score:             score,
		Band:              ClassifyBand(score),
		NearestZone:       nearest,
		NearestSafeZone:   nearestSafe,
		NearestDangerZone: nearestDanger,
	}, nil
}

func zoneDistance(from models.Coordinate, z models.Zone, d float64) *models.ZoneDistance {
	// обе точки уже проверены
	bearing, _ := geo.BearingDegrees(from, z.Coordinate)
	if d == 0 {
		bearing = 0
	}
	return &models.ZoneDistance{
		Zone:           z,
		DistanceMeters: d,
		BearingDegrees: bearing,
	}
}

// WithinRadius возвращает зоны, удовлетворяющие предикату, в пределах радиуса,
// отсортированные по расстоянию (при равенстве - по ID)
func WithinRadius(location models.Coordinate, registry *zone.Registry, radiusMeters float64, predicate func(score int) bool) ([]models.ZoneDistance, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	out := make([]models.ZoneDistance, 0)
	for _, z := range registry.ZonesWithRisk(predicate) {
		d, err := geo.DistanceMeters(location, z.Coordinate)
		if err != nil {
			return nil, err
		}
		if d <= radiusMeters {
			out = append(out, *zoneDistance(location, z, d))
		}
	}
	sortByDistance(out)
	return out, nil
}

func sortByDistance(zones []models.ZoneDistance) {
	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].DistanceMeters < zones[j].DistanceMeters
	})
}
