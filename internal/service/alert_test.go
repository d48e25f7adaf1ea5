package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	alertmocks "github.com/shenikar/armour_safety/internal/alert/mocks"
	"github.com/shenikar/armour_safety/internal/clock"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/risk"
	"github.com/shenikar/armour_safety/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var triggeredAt = time.Date(2026, 3, 1, 21, 30, 0, 0, time.UTC)

// newTestAlertService — вспомогательная функция для создания сервиса без планировщика.
func newTestAlertService(t *testing.T) (AlertManager, *alertmocks.MockDispatcher, *mocks.MockLocationProvider) {
	ctrl := gomock.NewController(t)
	dispatcher := alertmocks.NewMockDispatcher(ctrl)
	locations := mocks.NewMockLocationProvider(ctrl)
	svc := NewAlertService(risk.NewClassifier(testRegistry()), dispatcher, locations, quietLogger(), testConfig(),
		WithTickInterval(0),
		WithAlertClock(clock.NewFixed(triggeredAt)),
	)
	t.Cleanup(svc.Stop)
	return svc, dispatcher, locations
}

func TestTrigger_ExplicitLocation(t *testing.T) {
	svc, _, locations := newTestAlertService(t)
	locations.EXPECT().CurrentLocation(gomock.Any(), gomock.Any()).Times(0)

	loc := home
	s, err := svc.Trigger(context.Background(), "user-001", &loc, models.NetworkStatusOffline)

	require.NoError(t, err)
	assert.Equal(t, models.AlertStateCountdown, s.State)
	assert.Equal(t, 5, s.CountdownRemaining)
	assert.Equal(t, home, s.Location)
	assert.Equal(t, models.NetworkStatusOffline, s.NetworkStatus)
	assert.Equal(t, triggeredAt, s.TriggeredAt)
	assert.Equal(t, models.BandSafe, s.RiskContextAtTrigger.Band)
}

func TestTrigger_LastKnownLocation(t *testing.T) {
	svc, _, locations := newTestAlertService(t)
	depot := models.Coordinate{Latitude: 17.4400, Longitude: 78.4984}
	locations.EXPECT().CurrentLocation(gomock.Any(), "user-001").Return(depot, nil).Times(1)

	s, err := svc.Trigger(context.Background(), "user-001", nil, "")

	require.NoError(t, err)
	assert.Equal(t, depot, s.Location)
	assert.Equal(t, models.BandDanger, s.RiskContextAtTrigger.Band)
}

func TestTrigger_FallsBackToDefaultLocation(t *testing.T) {
	svc, _, locations := newTestAlertService(t)
	locations.EXPECT().CurrentLocation(gomock.Any(), "user-001").Return(models.Coordinate{}, models.ErrLocationUnavailable).Times(1)

	s, err := svc.Trigger(context.Background(), "user-001", nil, "")

	require.NoError(t, err)
	assert.Equal(t, models.Coordinate{Latitude: 17.4268, Longitude: 78.4484}, s.Location)
}

func TestTrigger_InvalidExplicitLocation(t *testing.T) {
	svc, _, _ := newTestAlertService(t)

	bad := models.Coordinate{Latitude: -91, Longitude: 0}
	s, err := svc.Trigger(context.Background(), "user-001", &bad, "")

	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
	assert.Equal(t, models.AlertStateIdle, s.State)

	current, err := svc.GetSession(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateIdle, current.State)
}

func TestTrigger_AlreadyActive(t *testing.T) {
	svc, _, _ := newTestAlertService(t)
	loc := home

	first, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)

	second, err := svc.Trigger(context.Background(), "user-001", &loc, "")

	assert.ErrorIs(t, err, models.ErrAlreadyActive)
	assert.Equal(t, first.ID, second.ID)
}

func TestTrigger_UsersAreIndependent(t *testing.T) {
	svc, _, _ := newTestAlertService(t)
	loc := home

	_, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)
	_, err = svc.Trigger(context.Background(), "user-002", &loc, "")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "user-001")
	require.NoError(t, err)

	other, err := svc.GetSession(context.Background(), "user-002")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateCountdown, other.State)
}

func TestTickToSent_ThroughDispatchResult(t *testing.T) {
	svc, dispatcher, _ := newTestAlertService(t)
	loc := home
	var job models.AlertJob
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, j models.AlertJob) error {
			job = j
			return nil
		}).
		Times(1)

	s, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		s, err = svc.Tick(context.Background(), "user-001")
		require.NoError(t, err)
	}
	assert.Equal(t, models.AlertStateSending, s.State)
	assert.Equal(t, s.ID, job.SessionID)
	assert.Equal(t, "user-001", job.Payload.UserID)
	assert.Equal(t, models.AlertTypeSOS, job.Payload.AlertType)

	ack := &models.AlertAck{Success: true, AlertID: "alert-42", Message: "help is on the way"}
	err = svc.OnDispatchResult(context.Background(), "user-001", job.SessionID, models.DispatchResult{Success: true, Ack: ack})
	require.NoError(t, err)

	s, err = svc.GetSession(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateSent, s.State)
	assert.Equal(t, ack, s.Ack)

	s, err = svc.Reset(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateIdle, s.State)
}

func TestTick_WithoutSession(t *testing.T) {
	svc, _, _ := newTestAlertService(t)

	s, err := svc.Tick(context.Background(), "user-001")

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateIdle, s.State)
}

func TestCancel_NotCancellable(t *testing.T) {
	svc, _, _ := newTestAlertService(t)

	s, err := svc.Cancel(context.Background(), "user-001")

	assert.ErrorIs(t, err, models.ErrNotCancellable)
	assert.Equal(t, models.AlertStateIdle, s.State)
}

func TestReset_WhileCountingDown(t *testing.T) {
	svc, _, _ := newTestAlertService(t)
	loc := home
	_, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)

	s, err := svc.Reset(context.Background(), "user-001")

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateCountdown, s.State)
}

func TestGetSession_UnknownUser(t *testing.T) {
	svc, _, _ := newTestAlertService(t)

	s, err := svc.GetSession(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Equal(t, models.AlertStateIdle, s.State)
	assert.Equal(t, "nobody", s.UserID)
}

func TestOnDispatchResult_UnknownUser(t *testing.T) {
	svc, _, _ := newTestAlertService(t)

	err := svc.OnDispatchResult(context.Background(), "nobody", uuid.New(), models.DispatchResult{Success: true})

	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestOnDispatchResult_StaleSession(t *testing.T) {
	svc, dispatcher, _ := newTestAlertService(t)
	loc := home
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = svc.Tick(context.Background(), "user-001")
		require.NoError(t, err)
	}

	err = svc.OnDispatchResult(context.Background(), "user-001", uuid.New(), models.DispatchResult{Success: true})

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	s, _ := svc.GetSession(context.Background(), "user-001")
	assert.Equal(t, models.AlertStateSending, s.State)
}

func TestHandOffFailure_MarksFailed(t *testing.T) {
	svc, dispatcher, _ := newTestAlertService(t)
	loc := home
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(errors.New("redis unavailable")).Times(1)

	_, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)
	var s models.AlertSession
	for i := 0; i < 5; i++ {
		s, err = svc.Tick(context.Background(), "user-001")
		require.NoError(t, err)
	}

	assert.Equal(t, models.AlertStateFailed, s.State)
	assert.Contains(t, s.FailureReason, "redis unavailable")
}

// recordingDispatcher считает отправки без мока, чтобы его можно было вызывать из планировщика.
type recordingDispatcher struct {
	mu   sync.Mutex
	jobs []models.AlertJob
}

func (d *recordingDispatcher) Dispatch(_ context.Context, job models.AlertJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, job)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.jobs)
}

func TestScheduler_CountsDownAndDispatchesOnce(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	cfg := testConfig()
	cfg.CountdownSeconds = 3
	svc := NewAlertService(risk.NewClassifier(testRegistry()), dispatcher, NewLocationStore(), quietLogger(), cfg,
		WithTickInterval(5*time.Millisecond),
	)
	defer svc.Stop()
	loc := home

	_, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		s, _ := svc.GetSession(context.Background(), "user-001")
		return s.State == models.AlertStateSending
	}, time.Second, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, dispatcher.count())
}

func TestScheduler_CancelStopsCountdown(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := NewAlertService(risk.NewClassifier(testRegistry()), dispatcher, NewLocationStore(), quietLogger(), testConfig(),
		WithTickInterval(time.Hour),
	)
	defer svc.Stop()
	loc := home

	_, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)

	s, err := svc.Cancel(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateCancelled, s.State)

	svc.Stop()
	assert.Equal(t, 0, dispatcher.count())
}

func (d *recordingDispatcher) sessionIDs() []uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(d.jobs))
	for _, job := range d.jobs {
		ids = append(ids, job.SessionID)
	}
	return ids
}

func TestUnknownUser_DoesNotCreateMachine(t *testing.T) {
	svc, _, _ := newTestAlertService(t)

	s, err := svc.Tick(context.Background(), "ghost-1")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateIdle, s.State)
	assert.Equal(t, "ghost-1", s.UserID)

	s, err = svc.Cancel(context.Background(), "ghost-2")
	assert.ErrorIs(t, err, models.ErrNotCancellable)
	assert.Equal(t, models.AlertStateIdle, s.State)

	s, err = svc.Reset(context.Background(), "ghost-3")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateIdle, s.State)
	assert.Equal(t, "ghost-3", s.UserID)

	impl := svc.(*alertService)
	impl.mu.Lock()
	defer impl.mu.Unlock()
	assert.Empty(t, impl.machines)
}

// Поздняя остановка планировщика прошлой сессии не должна задеть новую
func TestScheduler_StaleStopKeepsNewSession(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	cfg := testConfig()
	cfg.CountdownSeconds = 3
	svc := NewAlertService(risk.NewClassifier(testRegistry()), dispatcher, NewLocationStore(), quietLogger(), cfg,
		WithTickInterval(5*time.Millisecond),
	)
	defer svc.Stop()
	impl := svc.(*alertService)
	loc := home

	first, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), "user-001")
	require.NoError(t, err)
	_, err = svc.Reset(context.Background(), "user-001")
	require.NoError(t, err)
	second, err := svc.Trigger(context.Background(), "user-001", &loc, "")
	require.NoError(t, err)

	impl.stopCountdown("user-001", first.ID)

	assert.Eventually(t, func() bool {
		s, _ := svc.GetSession(context.Background(), "user-001")
		return s.State == models.AlertStateSending
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []uuid.UUID{second.ID}, dispatcher.sessionIDs())

	// Завершившийся планировщик убирает свою запись
	assert.Eventually(t, func() bool {
		impl.mu.Lock()
		defer impl.mu.Unlock()
		return len(impl.countdowns) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestStopCountdown_IgnoresOtherSession(t *testing.T) {
	svc, _, _ := newTestAlertService(t)
	impl := svc.(*alertService)

	stopped := false
	current := uuid.New()
	impl.countdowns["user-001"] = countdownHandle{sessionID: current, cancel: func() { stopped = true }}

	impl.stopCountdown("user-001", uuid.New())
	assert.False(t, stopped)
	assert.Contains(t, impl.countdowns, "user-001")

	impl.stopCountdown("user-001", current)
	assert.True(t, stopped)
	assert.NotContains(t, impl.countdowns, "user-001")
}
