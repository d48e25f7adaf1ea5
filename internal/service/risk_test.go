package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/armour_safety/internal/clock"
	"github.com/shenikar/armour_safety/internal/config"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/service/mocks"
	"github.com/shenikar/armour_safety/internal/zone"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var home = models.Coordinate{Latitude: 17.4268, Longitude: 78.4484}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func testConfig() *config.Config {
	return &config.Config{
		CountdownSeconds:  5,
		DefaultLatitude:   17.4268,
		DefaultLongitude:  78.4484,
		VolunteerRadiusKm: 5,
	}
}

func testRegistry() *zone.Registry {
	return zone.NewRegistry([]models.Zone{
		{ID: 1, Name: "City Center Mall", Coordinate: home, RiskScore: 12, Category: models.ZoneCategoryMarket},
		{ID: 2, Name: "Old Bus Depot", Coordinate: models.Coordinate{Latitude: 17.4400, Longitude: 78.4984}, RiskScore: 78, Category: models.ZoneCategoryTransit},
		{ID: 3, Name: "Police Station", Coordinate: models.Coordinate{Latitude: 17.4300, Longitude: 78.4500}, RiskScore: 5, Category: models.ZoneCategoryPolice},
		{ID: 4, Name: "Far Hospital", Coordinate: models.Coordinate{Latitude: 17.9000, Longitude: 78.9000}, RiskScore: 10, Category: models.ZoneCategoryHospital},
	})
}

// newTestRiskService — вспомогательная функция для создания сервиса с мок-репозиторием.
func newTestRiskService(t *testing.T) (RiskService, *mocks.MockVolunteerRepository, *LocationStore) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockVolunteerRepository(ctrl)
	locations := NewLocationStore()
	timeline := NewTimeline(0, clock.NewFixed(triggeredAt), quietLogger())
	return NewRiskService(testRegistry(), repo, locations, timeline, quietLogger(), testConfig()), repo, locations
}

func TestAssessLocation_RemembersLocation(t *testing.T) {
	svc, _, locations := newTestRiskService(t)

	assessment, err := svc.AssessLocation(context.Background(), "user-001", home)

	require.NoError(t, err)
	assert.Equal(t, 12, assessment.Score)
	assert.Equal(t, models.BandSafe, assessment.Band)
	require.NotNil(t, assessment.NearestZone)
	assert.Equal(t, int64(1), assessment.NearestZone.Zone.ID)

	loc, err := locations.CurrentLocation(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, home, loc)
}

func TestAssessLocation_InvalidCoordinate(t *testing.T) {
	svc, _, locations := newTestRiskService(t)

	_, err := svc.AssessLocation(context.Background(), "user-001", models.Coordinate{Latitude: 91, Longitude: 0})

	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
	_, err = locations.CurrentLocation(context.Background(), "user-001")
	assert.ErrorIs(t, err, models.ErrLocationUnavailable)
}

func TestListZones(t *testing.T) {
	svc, _, _ := newTestRiskService(t)

	zones, err := svc.ListZones(context.Background())

	require.NoError(t, err)
	require.Len(t, zones, 4)
	assert.Equal(t, int64(1), zones[0].ID)
}

func TestNearbySafeZones(t *testing.T) {
	svc, _, _ := newTestRiskService(t)

	zones, err := svc.NearbySafeZones(context.Background(), home, 0)

	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, int64(1), zones[0].Zone.ID)
	assert.Equal(t, int64(3), zones[1].Zone.ID)
	for _, z := range zones {
		assert.LessOrEqual(t, z.Zone.RiskScore, 30)
	}
}

func TestNearbyVolunteers(t *testing.T) {
	svc, repo, _ := newTestRiskService(t)
	found := []models.VolunteerDistance{
		{Volunteer: models.Volunteer{ID: "v1", Name: "Here", Coordinate: home, Online: true}, DistanceMeters: 0},
		{Volunteer: models.Volunteer{ID: "v3", Name: "Near", Coordinate: models.Coordinate{Latitude: 17.4300, Longitude: 78.4500}}, DistanceMeters: 390},
	}

	repo.EXPECT().FindWithinRadius(gomock.Any(), home, 5000.0).Return(found, nil).Times(1)

	nearby, err := svc.NearbyVolunteers(context.Background(), home, 5)

	require.NoError(t, err)
	assert.Equal(t, found, nearby)
}

func TestNearbyVolunteers_DefaultRadiusAndEmptyResult(t *testing.T) {
	svc, repo, _ := newTestRiskService(t)

	// Радиус 0 заменяется значением из конфигурации
	repo.EXPECT().FindWithinRadius(gomock.Any(), home, 5000.0).Return(nil, nil).Times(1)

	nearby, err := svc.NearbyVolunteers(context.Background(), home, 0)

	require.NoError(t, err)
	assert.NotNil(t, nearby)
	assert.Empty(t, nearby)
}

func TestNearbyVolunteers_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestRiskService(t)
	dbErr := errors.New("db is down")

	repo.EXPECT().FindWithinRadius(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, dbErr).Times(1)

	_, err := svc.NearbyVolunteers(context.Background(), home, 5)

	assert.ErrorIs(t, err, dbErr)
}

func TestNearbyVolunteers_InvalidCoordinate(t *testing.T) {
	svc, repo, _ := newTestRiskService(t)

	repo.EXPECT().FindWithinRadius(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.NearbyVolunteers(context.Background(), models.Coordinate{Latitude: 0, Longitude: 200}, 5)

	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
}
