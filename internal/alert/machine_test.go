package alert

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/armour_safety/internal/alert/mocks"
	"github.com/shenikar/armour_safety/internal/clock"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/risk"
	"github.com/shenikar/armour_safety/internal/zone"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	home        = models.Coordinate{Latitude: 17.4268, Longitude: 78.4484}
	triggeredAt = time.Date(2026, 3, 1, 21, 30, 0, 0, time.UTC)
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func testClassifier() *risk.Classifier {
	return risk.NewClassifier(zone.NewRegistry([]models.Zone{
		{ID: 1, Name: "City Center Mall", Coordinate: home, RiskScore: 12, Category: models.ZoneCategoryMarket},
	}))
}

// newTestMachine — вспомогательная функция для создания автомата с мок-диспетчером.
func newTestMachine(t *testing.T) (*Machine, *mocks.MockDispatcher) {
	ctrl := gomock.NewController(t)
	dispatcher := mocks.NewMockDispatcher(ctrl)
	m := NewMachine("user-001", testClassifier(), dispatcher, quietLogger(), WithClock(clock.NewFixed(triggeredAt)))
	return m, dispatcher
}

func tickN(t *testing.T, m *Machine, n int) models.AlertSession {
	t.Helper()
	var s models.AlertSession
	var err error
	for i := 0; i < n; i++ {
		s, err = m.Tick(context.Background())
		require.NoError(t, err)
	}
	return s
}

func TestNewMachine_StartsIdle(t *testing.T) {
	m, _ := newTestMachine(t)

	s := m.Session()

	assert.Equal(t, models.AlertStateIdle, s.State)
	assert.Equal(t, "user-001", s.UserID)
}

func TestTrigger_StartsCountdown(t *testing.T) {
	m, _ := newTestMachine(t)

	s, err := m.Trigger(context.Background(), home, "")

	require.NoError(t, err)
	assert.Equal(t, models.AlertStateCountdown, s.State)
	assert.Equal(t, DefaultCountdownSeconds, s.CountdownRemaining)
	assert.Equal(t, triggeredAt, s.TriggeredAt)
	assert.Equal(t, home, s.Location)
	assert.Equal(t, models.NetworkStatusOnline, s.NetworkStatus)
	assert.Equal(t, 12, s.RiskContextAtTrigger.Score)
	assert.Equal(t, models.BandSafe, s.RiskContextAtTrigger.Band)
	assert.NotEmpty(t, s.ID)
}

func TestTrigger_InvalidLocation(t *testing.T) {
	m, _ := newTestMachine(t)

	s, err := m.Trigger(context.Background(), models.Coordinate{Latitude: 91}, "")

	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
	assert.Equal(t, models.AlertStateIdle, s.State)
}

func TestTrigger_AssessorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	assessor := mocks.NewMockAssessor(ctrl)
	assessor.EXPECT().Assess(home).Return(models.RiskAssessment{}, errors.New("boom")).Times(1)
	m := NewMachine("user-001", assessor, mocks.NewMockDispatcher(ctrl), quietLogger())

	_, err := m.Trigger(context.Background(), home, "")

	require.Error(t, err)
	assert.Equal(t, models.AlertStateIdle, m.Session().State)
}

// Истечение отсчета переводит сессию в Sending и вызывает Dispatch ровно один раз
func TestTick_ExpiryDispatchesOnce(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	s, err := m.Trigger(context.Background(), home, models.NetworkStatusOffline)
	require.NoError(t, err)

	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job models.AlertJob) error {
			assert.Equal(t, s.ID, job.SessionID)
			assert.Equal(t, "user-001", job.Payload.UserID)
			assert.Equal(t, models.AlertTypeSOS, job.Payload.AlertType)
			assert.Equal(t, models.NetworkStatusOffline, job.Payload.NetworkStatus)
			assert.Equal(t, home, job.Payload.Location)
			assert.Equal(t, 12, job.Payload.RiskContextAtTrigger.Score)
			return nil
		}).Times(1)

	s = tickN(t, m, 4)
	assert.Equal(t, models.AlertStateCountdown, s.State)
	assert.Equal(t, 1, s.CountdownRemaining)

	s = tickN(t, m, 1)
	assert.Equal(t, models.AlertStateSending, s.State)
	assert.Equal(t, 0, s.CountdownRemaining)

	ack := &models.AlertAck{Success: true, AlertID: "alert-1", Message: "Alert sent to 3 guardians"}
	s, err = m.OnDispatchResult(s.ID, models.DispatchResult{Success: true, Ack: ack})
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateSent, s.State)
	assert.Equal(t, ack, s.Ack)

	// Повторные тики после отправки ничего не делают
	_, err = m.Tick(context.Background())
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

// Отмена после одного тика фиксирует остаток, последующие тики отклоняются
func TestCancel_DuringCountdown(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	_, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	tickN(t, m, 1)

	s, err := m.Cancel()
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateCancelled, s.State)
	assert.Equal(t, DefaultCountdownSeconds-1, s.CountdownRemaining)

	for i := 0; i < 10; i++ {
		s, err = m.Tick(context.Background())
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
		assert.Equal(t, models.AlertStateCancelled, s.State)
		assert.Equal(t, DefaultCountdownSeconds-1, s.CountdownRemaining)
	}
}

// Повторный trigger во время отсчета возвращает текущую сессию без изменений
func TestTrigger_AlreadyActive(t *testing.T) {
	m, _ := newTestMachine(t)
	first, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	tickN(t, m, 2)

	s, err := m.Trigger(context.Background(), models.Coordinate{Latitude: 1, Longitude: 1}, "")

	assert.ErrorIs(t, err, models.ErrAlreadyActive)
	assert.Equal(t, first.ID, s.ID)
	assert.Equal(t, models.AlertStateCountdown, s.State)
	assert.Equal(t, DefaultCountdownSeconds-2, s.CountdownRemaining)
	assert.Equal(t, home, s.Location)
}

// Неудачная отправка переводит в Failed, после reset можно начать новую сессию
func TestDispatchFailure_ThenReset(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	s := tickN(t, m, DefaultCountdownSeconds)
	require.Equal(t, models.AlertStateSending, s.State)

	s, err = m.OnDispatchResult(s.ID, models.DispatchResult{Success: false, Reason: "timeout"})
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateFailed, s.State)
	assert.Equal(t, "timeout", s.FailureReason)

	s, err = m.Reset()
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateIdle, s.State)

	s, err = m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateCountdown, s.State)
}

func TestTick_HandOffErrorFailsSession(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(errors.New("redis unavailable")).Times(1)

	_, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	s := tickN(t, m, DefaultCountdownSeconds)

	assert.Equal(t, models.AlertStateFailed, s.State)
	assert.Equal(t, "redis unavailable", s.FailureReason)
}

func TestCancel_NotCancellableOutsideCountdown(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s, err := m.Cancel()
	assert.ErrorIs(t, err, models.ErrNotCancellable)
	assert.Equal(t, models.AlertStateIdle, s.State)

	_, err = m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	s = tickN(t, m, DefaultCountdownSeconds)
	require.Equal(t, models.AlertStateSending, s.State)

	s, err = m.Cancel()
	assert.ErrorIs(t, err, models.ErrNotCancellable)
	assert.Equal(t, models.AlertStateSending, s.State)

	s, err = m.OnDispatchResult(s.ID, models.DispatchResult{Success: true})
	require.NoError(t, err)

	s, err = m.Cancel()
	assert.ErrorIs(t, err, models.ErrNotCancellable)
	assert.Equal(t, models.AlertStateSent, s.State)
}

func TestOnDispatchResult_Guards(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s, err := m.OnDispatchResult(m.Session().ID, models.DispatchResult{Success: true})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateIdle, s.State)

	_, err = m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	s = tickN(t, m, DefaultCountdownSeconds)

	stale := s
	stale.ID[0] ^= 0xff
	_, err = m.OnDispatchResult(stale.ID, models.DispatchResult{Success: true})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateSending, m.Session().State)

	_, err = m.OnDispatchResult(s.ID, models.DispatchResult{Success: true})
	require.NoError(t, err)
	_, err = m.OnDispatchResult(s.ID, models.DispatchResult{Success: false})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateSent, m.Session().State)
}

func TestReset_Guards(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s, err := m.Reset()
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateIdle, s.State)

	_, err = m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	_, err = m.Reset()
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateCountdown, m.Session().State)

	tickN(t, m, DefaultCountdownSeconds)
	_, err = m.Reset()
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.AlertStateSending, m.Session().State)
}

func TestWithCountdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMachine("u", testClassifier(), mocks.NewMockDispatcher(ctrl), quietLogger(), WithCountdown(10))

	s, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	assert.Equal(t, 10, s.CountdownRemaining)

	ignored := NewMachine("u", testClassifier(), mocks.NewMockDispatcher(ctrl), quietLogger(), WithCountdown(0))
	s, err = ignored.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCountdownSeconds, s.CountdownRemaining)
}

type countingDispatcher struct {
	calls atomic.Int32
}

func (d *countingDispatcher) Dispatch(context.Context, models.AlertJob) error {
	d.calls.Add(1)
	return nil
}

// Отмена и истечение отсчета в любом порядке дают ровно один терминальный путь
func TestCancelAndExpiryRace(t *testing.T) {
	for i := 0; i < 200; i++ {
		dispatcher := &countingDispatcher{}
		m := NewMachine("user-001", testClassifier(), dispatcher, quietLogger(), WithCountdown(1))
		_, err := m.Trigger(context.Background(), home, "")
		require.NoError(t, err)

		var wg sync.WaitGroup
		var tickErr, cancelErr error
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, tickErr = m.Tick(context.Background())
		}()
		go func() {
			defer wg.Done()
			<-start
			_, cancelErr = m.Cancel()
		}()
		close(start)
		wg.Wait()

		s := m.Session()
		switch s.State {
		case models.AlertStateSending:
			assert.NoError(t, tickErr)
			assert.ErrorIs(t, cancelErr, models.ErrNotCancellable)
			assert.Equal(t, int32(1), dispatcher.calls.Load())
		case models.AlertStateCancelled:
			assert.NoError(t, cancelErr)
			assert.ErrorIs(t, tickErr, models.ErrInvalidTransition)
			assert.Equal(t, int32(0), dispatcher.calls.Load())
		default:
			t.Fatalf("unexpected state %s", s.State)
		}
	}
}

func TestTickSession_IgnoresOtherSession(t *testing.T) {
	m, dispatcher := newTestMachine(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	first, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	_, err = m.Cancel()
	require.NoError(t, err)
	_, err = m.Reset()
	require.NoError(t, err)
	second, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)

	s, err := m.TickSession(context.Background(), first.ID)

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, second.ID, s.ID)
	assert.Equal(t, DefaultCountdownSeconds, s.CountdownRemaining)

	s, err = m.TickSession(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultCountdownSeconds-1, s.CountdownRemaining)
}

func TestObserver_ReceivesEveryTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mocks.NewMockDispatcher(ctrl)
	observer := mocks.NewMockObserver(ctrl)
	m := NewMachine("user-001", testClassifier(), dispatcher, quietLogger(),
		WithCountdown(1),
		WithObserver(observer),
	)

	states := make([]models.AlertState, 0, 4)
	observer.EXPECT().OnTransition(gomock.Any()).
		Do(func(s models.AlertSession) { states = append(states, s.State) }).
		Times(4)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	s, err := m.Tick(context.Background())
	require.NoError(t, err)
	_, err = m.OnDispatchResult(s.ID, models.DispatchResult{Success: true})
	require.NoError(t, err)
	_, err = m.Reset()
	require.NoError(t, err)
	_, err = m.Trigger(context.Background(), home, "")
	require.NoError(t, err)

	// Отклоненные переходы наблюдателю не сообщаются
	_, err = m.Reset()
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	assert.Equal(t, []models.AlertState{
		models.AlertStateCountdown,
		models.AlertStateSending,
		models.AlertStateSent,
		models.AlertStateCountdown,
	}, states)
}

func TestObserver_ReceivesCancelAndFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	observer := mocks.NewMockObserver(ctrl)
	dispatcher := mocks.NewMockDispatcher(ctrl)
	m := NewMachine("user-001", testClassifier(), dispatcher, quietLogger(),
		WithCountdown(1),
		WithObserver(observer),
	)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(errors.New("redis unavailable")).Times(1)

	gomock.InOrder(
		observer.EXPECT().OnTransition(gomock.Cond(func(s models.AlertSession) bool { return s.State == models.AlertStateCountdown })),
		observer.EXPECT().OnTransition(gomock.Cond(func(s models.AlertSession) bool { return s.State == models.AlertStateCancelled })),
		observer.EXPECT().OnTransition(gomock.Cond(func(s models.AlertSession) bool { return s.State == models.AlertStateCountdown })),
		observer.EXPECT().OnTransition(gomock.Cond(func(s models.AlertSession) bool { return s.State == models.AlertStateSending })),
		observer.EXPECT().OnTransition(gomock.Cond(func(s models.AlertSession) bool {
			return s.State == models.AlertStateFailed && s.FailureReason == "redis unavailable"
		})),
	)

	_, err := m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	_, err = m.Cancel()
	require.NoError(t, err)
	_, err = m.Reset()
	require.NoError(t, err)
	_, err = m.Trigger(context.Background(), home, "")
	require.NoError(t, err)
	s, err := m.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AlertStateFailed, s.State)
}
