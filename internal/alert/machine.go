// Package alert реализует конечный автомат сессии SOS:
// Idle -> Countdown -> Sending -> Sent|Failed, Countdown -> Cancelled.
//
// Переход Countdown -> Sending и переход Countdown -> Cancelled взаимоисключающие:
// каждый обработчик первым делом проверяет текущее состояние под мьютексом
// и отбрасывает переход, если сессия уже вышла из Countdown.
package alert

//go:generate mockgen -source=machine.go -destination=mocks/mock_machine.go -package=mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/armour_safety/internal/clock"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultCountdownSeconds - окно отмены по умолчанию
const DefaultCountdownSeconds = 5

// Assessor вычисляет контекст риска в момент срабатывания
type Assessor interface {
	Assess(location models.Coordinate) (models.RiskAssessment, error)
}

// Dispatcher принимает готовое оповещение к единственной попытке отправки.
// Результат возвращается асинхронно через Machine.OnDispatchResult.
type Dispatcher interface {
	Dispatch(ctx context.Context, job models.AlertJob) error
}

// Observer получает снимок сессии после каждого перехода состояния.
// Вызывается под мьютексом автомата, поэтому не должен обращаться к Machine.
type Observer interface {
	OnTransition(session models.AlertSession)
}

// Machine управляет сессией оповещения одного пользователя
type Machine struct {
	mu         sync.Mutex
	userID     string
	countdown  int
	assessor   Assessor
	dispatcher Dispatcher
	observer   Observer
	clock      clock.Clock
	logger     *logrus.Logger
	session    models.AlertSession
}

// Option настраивает Machine
type Option func(*Machine)

// WithCountdown переопределяет окно отмены в секундах
func WithCountdown(seconds int) Option {
	return func(m *Machine) {
		if seconds > 0 {
			m.countdown = seconds
		}
	}
}

// WithClock подменяет источник времени
func WithClock(c clock.Clock) Option {
	return func(m *Machine) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithObserver подписывает наблюдателя на переходы сессии
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		m.observer = o
	}
}

func NewMachine(userID string, assessor Assessor, dispatcher Dispatcher, logger *logrus.Logger, opts ...Option) *Machine {
	m := &Machine{
		userID:     userID,
		countdown:  DefaultCountdownSeconds,
		assessor:   assessor,
		dispatcher: dispatcher,
		clock:      clock.NewSystem(),
		logger:     logger,
		session:    idleSession(userID),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func idleSession(userID string) models.AlertSession {
	return models.AlertSession{UserID: userID, State: models.AlertStateIdle}
}

func (m *Machine) notify() {
	if m.observer != nil {
		m.observer.OnTransition(m.session)
	}
}

func (m *Machine) log(method string) *logrus.Entry {
	return m.logger.WithFields(logrus.Fields{
		"component":  "alert",
		"method":     method,
		"user_id":    m.userID,
		"session_id": m.session.ID,
		"state":      m.session.State,
	})
}

// Session возвращает снимок текущей сессии
func (m *Machine) Session() models.AlertSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Trigger открывает новую сессию и запускает обратный отсчет.
// Допустим только из Idle, иначе ErrAlreadyActive и состояние не меняется.
func (m *Machine) Trigger(ctx context.Context, location models.Coordinate, networkStatus string) (models.AlertSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.log("Trigger")
	if m.session.State != models.AlertStateIdle {
		log.Warn("Trigger rejected: session already active")
		return m.session, models.ErrAlreadyActive
	}
	if err := location.Validate(); err != nil {
		log.WithError(err).Warn("Trigger rejected: invalid location")
		return m.session, err
	}

	assessment, err := m.assessor.Assess(location)
	if err != nil {
		log.WithError(err).Error("Failed to assess risk at trigger")
		return m.session, err
	}

	if networkStatus == "" {
		networkStatus = models.NetworkStatusOnline
	}

	m.session = models.AlertSession{
		ID:                   uuid.New(),
		UserID:               m.userID,
		TriggeredAt:          m.clock.Now(),
		State:                models.AlertStateCountdown,
		CountdownRemaining:   m.countdown,
		RiskContextAtTrigger: assessment,
		Location:             location,
		NetworkStatus:        networkStatus,
	}

	m.log("Trigger").WithFields(logrus.Fields{
		"countdown": m.countdown,
		"band":      assessment.Band,
	}).Info("SOS triggered, countdown started")
	m.notify()
	return m.session, nil
}

// Tick уменьшает счетчик. На нуле сессия атомарно переходит в Sending,
// и диспетчер вызывается ровно один раз. Вне Countdown - ErrInvalidTransition без эффекта.
func (m *Machine) Tick(ctx context.Context) (models.AlertSession, error) {
	return m.tick(ctx, uuid.Nil)
}

// TickSession работает как Tick, но только для сессии sessionID.
// Если текущая сессия другая, счетчик не меняется и возвращается ErrInvalidTransition.
func (m *Machine) TickSession(ctx context.Context, sessionID uuid.UUID) (models.AlertSession, error) {
	return m.tick(ctx, sessionID)
}

func (m *Machine) tick(ctx context.Context, sessionID uuid.UUID) (models.AlertSession, error) {
	m.mu.Lock()
	if m.session.State != models.AlertStateCountdown || (sessionID != uuid.Nil && m.session.ID != sessionID) {
		snapshot := m.session
		m.mu.Unlock()
		return snapshot, models.ErrInvalidTransition
	}

	if m.session.CountdownRemaining > 0 {
		m.session.CountdownRemaining--
	}
	if m.session.CountdownRemaining > 0 {
		snapshot := m.session
		m.mu.Unlock()
		return snapshot, nil
	}

	m.session.State = models.AlertStateSending
	job := models.AlertJob{
		SessionID: m.session.ID,
		Payload:   payloadFor(m.session),
	}
	m.notify()
	snapshot := m.session
	log := m.log("Tick")
	m.mu.Unlock()

	log.Info("Countdown expired, dispatching alert")
	if err := m.dispatcher.Dispatch(ctx, job); err != nil {
		log.WithError(err).Error("Failed to hand off alert for dispatch")
		return m.OnDispatchResult(job.SessionID, models.DispatchResult{
			Success: false,
			Reason:  err.Error(),
		})
	}
	return snapshot, nil
}

// Cancel отменяет оповещение во время обратного отсчета.
// В любом другом состоянии это no-op с ErrNotCancellable.
func (m *Machine) Cancel() (models.AlertSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.log("Cancel")
	if m.session.State != models.AlertStateCountdown {
		log.Warn("Cancel ignored: session is not counting down")
		return m.session, models.ErrNotCancellable
	}

	m.session.State = models.AlertStateCancelled
	log.Info("SOS cancelled by user")
	m.notify()
	return m.session, nil
}

// OnDispatchResult фиксирует итог отправки. Допустим только из Sending
// и только для текущей сессии.
func (m *Machine) OnDispatchResult(sessionID uuid.UUID, result models.DispatchResult) (models.AlertSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.log("OnDispatchResult")
	if m.session.State != models.AlertStateSending || m.session.ID != sessionID {
		log.WithField("result_session_id", sessionID).Warn("Dispatch result ignored")
		return m.session, models.ErrInvalidTransition
	}

	if result.Success {
		m.session.State = models.AlertStateSent
		m.session.Ack = result.Ack
		log.Info("Alert sent")
		m.notify()
		return m.session, nil
	}

	m.session.State = models.AlertStateFailed
	m.session.Ack = result.Ack
	m.session.FailureReason = result.Reason
	log.WithField("reason", result.Reason).Error("Alert dispatch failed")
	m.notify()
	return m.session, nil
}

// Reset возвращает завершенную сессию в Idle. Из Idle - no-op.
func (m *Machine) Reset() (models.AlertSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State == models.AlertStateIdle {
		return m.session, nil
	}
	if !m.session.State.IsTerminal() {
		m.log("Reset").Warn("Reset rejected: session still active")
		return m.session, models.ErrInvalidTransition
	}

	m.log("Reset").Info("Session dismissed")
	m.session = idleSession(m.userID)
	return m.session, nil
}

func payloadFor(s models.AlertSession) models.AlertPayload {
	return models.AlertPayload{
		UserID:               s.UserID,
		AlertType:            models.AlertTypeSOS,
		NetworkStatus:        s.NetworkStatus,
		Location:             s.Location,
		RiskContextAtTrigger: s.RiskContextAtTrigger,
	}
}
