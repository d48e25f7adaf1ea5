package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/armour_safety/internal/alert"
	"github.com/shenikar/armour_safety/internal/clock"
	"github.com/shenikar/armour_safety/internal/config"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/sirupsen/logrus"
)

type alertService struct {
	mu         sync.Mutex
	machines   map[string]*alert.Machine
	countdowns map[string]countdownHandle

	assessor        alert.Assessor
	dispatcher      alert.Dispatcher
	observer        alert.Observer
	locations       LocationProvider
	defaultLocation models.Coordinate
	countdown       int
	tickInterval    time.Duration
	clock           clock.Clock
	logger          *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// countdownHandle - планировщик отсчета, привязанный к конкретной сессии
type countdownHandle struct {
	sessionID uuid.UUID
	cancel    context.CancelFunc
}

// AlertOption настраивает alertService
type AlertOption func(*alertService)

// WithTickInterval задает шаг обратного отсчета. Ноль отключает планировщик,
// и счетчик двигается только вызовами Tick.
func WithTickInterval(d time.Duration) AlertOption {
	return func(s *alertService) {
		if d >= 0 {
			s.tickInterval = d
		}
	}
}

func WithAlertClock(c clock.Clock) AlertOption {
	return func(s *alertService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithTransitionObserver подписывает наблюдателя на переходы всех сессий
func WithTransitionObserver(o alert.Observer) AlertOption {
	return func(s *alertService) {
		s.observer = o
	}
}

// AlertManager - AlertService с управлением жизненным циклом планировщика
type AlertManager interface {
	AlertService
	Stop()
}

func NewAlertService(
	assessor alert.Assessor,
	dispatcher alert.Dispatcher,
	locations LocationProvider,
	logger *logrus.Logger,
	cfg *config.Config,
	opts ...AlertOption,
) AlertManager {
	ctx, cancel := context.WithCancel(context.Background())
	s := &alertService{
		machines:   make(map[string]*alert.Machine),
		countdowns: make(map[string]countdownHandle),
		assessor:   assessor,
		dispatcher: dispatcher,
		locations:  locations,
		defaultLocation: models.Coordinate{
			Latitude:  cfg.DefaultLatitude,
			Longitude: cfg.DefaultLongitude,
		},
		countdown:    cfg.CountdownSeconds,
		tickInterval: cfg.TickInterval,
		clock:        clock.NewSystem(),
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *alertService) machineFor(userID string) *alert.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.machines[userID]
	if !ok {
		m = alert.NewMachine(userID, s.assessor, s.dispatcher, s.logger,
			alert.WithCountdown(s.countdown),
			alert.WithClock(s.clock),
			alert.WithObserver(s.observer),
		)
		s.machines[userID] = m
	}
	return m
}

func (s *alertService) existingMachine(userID string) (*alert.Machine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.machines[userID]
	return m, ok
}

// Trigger запускает SOS. Без явной точки берется последнее известное
// местоположение, а при его отсутствии - точка по умолчанию.
func (s *alertService) Trigger(ctx context.Context, userID string, location *models.Coordinate, networkStatus string) (models.AlertSession, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "Trigger",
		"user_id": userID,
	})

	loc, err := s.resolveLocation(ctx, userID, location, log)
	if err != nil {
		return idleSession(userID), err
	}

	m := s.machineFor(userID)
	session, err := m.Trigger(ctx, loc, networkStatus)
	if err != nil {
		return session, fmt.Errorf("service: could not trigger alert: %w", err)
	}

	s.startCountdown(userID, m, session.ID)
	return session, nil
}

func (s *alertService) resolveLocation(ctx context.Context, userID string, explicit *models.Coordinate, log *logrus.Entry) (models.Coordinate, error) {
	if explicit != nil {
		if err := explicit.Validate(); err != nil {
			log.WithError(err).Warn("Trigger rejected: invalid location")
			return models.Coordinate{}, fmt.Errorf("service: could not trigger alert: %w", err)
		}
		return *explicit, nil
	}

	loc, err := s.locations.CurrentLocation(ctx, userID)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"lat": s.defaultLocation.Latitude,
			"lng": s.defaultLocation.Longitude,
		}).Warn("Location unavailable, using default location")
		return s.defaultLocation, nil
	}
	return loc, nil
}

// startCountdown запускает планировщик для новой сессии, останавливая предыдущий
func (s *alertService) startCountdown(userID string, m *alert.Machine, sessionID uuid.UUID) {
	if s.tickInterval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.mu.Lock()
	if prev, ok := s.countdowns[userID]; ok {
		prev.cancel()
	}
	s.countdowns[userID] = countdownHandle{sessionID: sessionID, cancel: cancel}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.stopCountdown(userID, sessionID)
		s.runCountdown(ctx, m, sessionID)
	}()
}

// runCountdown тикает только свою сессию и завершается, как только она вышла из Countdown
func (s *alertService) runCountdown(ctx context.Context, m *alert.Machine, sessionID uuid.UUID) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			session, err := m.TickSession(ctx, sessionID)
			if err != nil || session.State != models.AlertStateCountdown {
				return
			}
		}
	}
}

// stopCountdown останавливает планировщик пользователя, только если он принадлежит сессии sessionID
func (s *alertService) stopCountdown(userID string, sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle, ok := s.countdowns[userID]
	if !ok || handle.sessionID != sessionID {
		return
	}
	handle.cancel()
	delete(s.countdowns, userID)
}

// Tick вручную продвигает обратный отсчет на одну секунду
func (s *alertService) Tick(ctx context.Context, userID string) (models.AlertSession, error) {
	m, ok := s.existingMachine(userID)
	if !ok {
		return idleSession(userID), fmt.Errorf("service: could not tick alert: %w", models.ErrInvalidTransition)
	}
	session, err := m.Tick(ctx)
	if err != nil {
		return session, fmt.Errorf("service: could not tick alert: %w", err)
	}
	return session, nil
}

// Cancel отменяет SOS во время обратного отсчета
func (s *alertService) Cancel(ctx context.Context, userID string) (models.AlertSession, error) {
	m, ok := s.existingMachine(userID)
	if !ok {
		return idleSession(userID), fmt.Errorf("service: could not cancel alert: %w", models.ErrNotCancellable)
	}
	session, err := m.Cancel()
	if err != nil {
		return session, fmt.Errorf("service: could not cancel alert: %w", err)
	}
	s.stopCountdown(userID, session.ID)
	return session, nil
}

// Reset закрывает завершенную сессию
func (s *alertService) Reset(ctx context.Context, userID string) (models.AlertSession, error) {
	m, ok := s.existingMachine(userID)
	if !ok {
		return idleSession(userID), nil
	}
	prev := m.Session()
	session, err := m.Reset()
	if err != nil {
		return session, fmt.Errorf("service: could not reset alert: %w", err)
	}
	s.stopCountdown(userID, prev.ID)
	return session, nil
}

// GetSession возвращает текущую сессию. Для неизвестного пользователя - Idle.
func (s *alertService) GetSession(ctx context.Context, userID string) (models.AlertSession, error) {
	m, ok := s.existingMachine(userID)
	if !ok {
		return idleSession(userID), nil
	}
	return m.Session(), nil
}

// OnDispatchResult передает итог отправки автомату пользователя
func (s *alertService) OnDispatchResult(ctx context.Context, userID string, sessionID uuid.UUID, result models.DispatchResult) error {
	m, ok := s.existingMachine(userID)
	if !ok {
		return fmt.Errorf("service: dispatch result for user %s: %w", userID, models.ErrSessionNotFound)
	}
	if _, err := m.OnDispatchResult(sessionID, result); err != nil {
		return fmt.Errorf("service: dispatch result for session %s: %w", sessionID, err)
	}
	return nil
}

// Stop останавливает все планировщики и дожидается их завершения
func (s *alertService) Stop() {
	s.cancel()
	s.wg.Wait()
}

func idleSession(userID string) models.AlertSession {
	return models.AlertSession{UserID: userID, State: models.AlertStateIdle}
}
