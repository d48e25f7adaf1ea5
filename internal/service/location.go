package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shenikar/armour_safety/internal/models"
)

// LocationStore хранит последнее известное местоположение каждого пользователя в памяти
type LocationStore struct {
	mu        sync.RWMutex
	locations map[string]models.Coordinate
}

func NewLocationStore() *LocationStore {
	return &LocationStore{
		locations: make(map[string]models.Coordinate),
	}
}

// Update запоминает местоположение пользователя
func (s *LocationStore) Update(userID string, location models.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[userID] = location
}

// CurrentLocation возвращает последнее известное местоположение
func (s *LocationStore) CurrentLocation(_ context.Context, userID string) (models.Coordinate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	location, ok := s.locations[userID]
	if !ok {
		return models.Coordinate{}, fmt.Errorf("%w: no location reported for user %s", models.ErrLocationUnavailable, userID)
	}
	return location, nil
}
