// Package zone хранит неизменяемый набор зон риска, загруженный при старте.
package zone

import (
	"context"
	"fmt"
	"sort"

	"github.com/shenikar/armour_safety/internal/models"
)

// Source определяет контракт загрузки зон (конфигурация, БД или сеть)
type Source interface {
	FetchZones(ctx context.Context) ([]models.Zone, error)
}

// Registry - набор зон, доступный только для чтения.
// Зоны упорядочены по возрастанию ID.
type Registry struct {
	zones []models.Zone
}

// NewRegistry копирует зоны и упорядочивает их по ID
func NewRegistry(zones []models.Zone) *Registry {
	copied := make([]models.Zone, len(zones))
	copy(copied, zones)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].ID < copied[j].ID
	})
	return &Registry{zones: copied}
}

// Load загружает зоны из источника и строит реестр
func Load(ctx context.Context, src Source) (*Registry, error) {
	zones, err := src.FetchZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("zone: could not fetch zones: %w", err)
	}
	for _, z := range zones {
		if err := z.Coordinate.Validate(); err != nil {
			return nil, fmt.Errorf("zone: zone %d has invalid coordinate: %w", z.ID, err)
		}
		if z.RiskScore < 0 || z.RiskScore > 100 {
			return nil, fmt.Errorf("zone: zone %d risk score %d out of range [0, 100]", z.ID, z.RiskScore)
		}
	}
	return NewRegistry(zones), nil
}

// AllZones возвращает копию всех зон в стабильном порядке
func (r *Registry) AllZones() []models.Zone {
	out := make([]models.Zone, len(r.zones))
	copy(out, r.zones)
	return out
}

// ZonesWithRisk возвращает зоны, оценка риска которых удовлетворяет предикату
func (r *Registry) ZonesWithRisk(predicate func(score int) bool) []models.Zone {
	out := make([]models.Zone, 0)
	for _, z := range r.zones {
		if predicate(z.RiskScore) {
			out = append(out, z)
		}
	}
	return out
}

// Len возвращает количество зон
func (r *Registry) Len() int {
	return len(r.zones)
}
