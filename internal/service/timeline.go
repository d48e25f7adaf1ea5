package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/armour_safety/internal/clock"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/shenikar/armour_safety/internal/risk"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimelineLimit - сколько последних событий хранится на пользователя
	DefaultTimelineLimit = 50
	// zoneEnterMeters - ближе этого расстояния до центра зоны пользователь считается внутри нее
	zoneEnterMeters = 200
)

type userTimeline struct {
	events []models.TimelineEvent
	band   models.Band
	zoneID int64
	inZone bool
}

// Timeline хранит ленту активности каждого пользователя в памяти.
// Пополняется оценками местоположения и переходами SOS-сессий.
type Timeline struct {
	mu     sync.Mutex
	users  map[string]*userTimeline
	limit  int
	clock  clock.Clock
	logger *logrus.Logger
}

func NewTimeline(limit int, c clock.Clock, logger *logrus.Logger) *Timeline {
	if limit <= 0 {
		limit = DefaultTimelineLimit
	}
	if c == nil {
		c = clock.NewSystem()
	}
	return &Timeline{
		users:  make(map[string]*userTimeline),
		limit:  limit,
		clock:  c,
		logger: logger,
	}
}

func (t *Timeline) userLocked(userID string) *userTimeline {
	u, ok := t.users[userID]
	if !ok {
		u = &userTimeline{}
		t.users[userID] = u
	}
	return u
}

func (t *Timeline) appendLocked(u *userTimeline, event models.TimelineEvent) {
	event.ID = uuid.New()
	event.Timestamp = t.clock.Now()
	u.events = append(u.events, event)
	if len(u.events) > t.limit {
		u.events = u.events[len(u.events)-t.limit:]
	}
	t.logger.WithFields(logrus.Fields{
		"service": "timeline",
		"user_id": event.UserID,
		"type":    event.Type,
	}).Debug("Timeline event recorded")
}

// RecordAssessment добавляет risk_update при смене уровня опасности
// и zone_enter при входе в новую зону.
func (t *Timeline) RecordAssessment(userID string, assessment models.RiskAssessment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.userLocked(userID)
	if assessment.Band != u.band {
		u.band = assessment.Band
		t.appendLocked(u, models.TimelineEvent{
			UserID:  userID,
			Type:    models.TimelineRiskUpdate,
			Message: fmt.Sprintf("Area risk updated to %s", assessment.Band),
			Status:  statusForBand(assessment.Band),
		})
	}

	nearest := assessment.NearestZone
	if nearest == nil || nearest.DistanceMeters > zoneEnterMeters {
		u.inZone = false
		return
	}
	if u.inZone && u.zoneID == nearest.Zone.ID {
		return
	}
	u.inZone = true
	u.zoneID = nearest.Zone.ID
	t.appendLocked(u, models.TimelineEvent{
		UserID:  userID,
		Type:    models.TimelineZoneEnter,
		Message: zoneEnterMessage(nearest.Zone),
		Status:  statusForBand(risk.ClassifyBand(nearest.Zone.RiskScore)),
	})
}

// OnTransition превращает переход SOS-сессии в событие ленты
func (t *Timeline) OnTransition(session models.AlertSession) {
	event := models.TimelineEvent{UserID: session.UserID}
	switch session.State {
	case models.AlertStateCountdown:
		event.Type = models.TimelineSOSTriggered
		event.Message = fmt.Sprintf("SOS triggered, sending in %d seconds", session.CountdownRemaining)
		event.Status = models.TimelineStatusDanger
	case models.AlertStateSending:
		event.Type = models.TimelineSOSDispatching
		event.Message = "Countdown expired, sending alert"
		event.Status = models.TimelineStatusDanger
	case models.AlertStateSent:
		event.Type = models.TimelineSOSSent
		event.Message = "Alert sent"
		if session.Ack != nil && session.Ack.Message != "" {
			event.Message = session.Ack.Message
		}
		event.Status = models.TimelineStatusSafe
	case models.AlertStateFailed:
		event.Type = models.TimelineSOSFailed
		event.Message = "Alert failed"
		if session.FailureReason != "" {
			event.Message = fmt.Sprintf("Alert failed: %s", session.FailureReason)
		}
		event.Status = models.TimelineStatusDanger
	case models.AlertStateCancelled:
		event.Type = models.TimelineSOSCancelled
		event.Message = "SOS cancelled"
		event.Status = models.TimelineStatusInfo
	default:
		return
	}
	sessionID := session.ID
	event.SessionID = &sessionID

	t.mu.Lock()
	defer t.mu.Unlock()
	t.appendLocked(t.userLocked(session.UserID), event)
}

// Events возвращает ленту пользователя, новые события первыми
func (t *Timeline) Events(ctx context.Context, userID string) ([]models.TimelineEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	events := make([]models.TimelineEvent, 0)
	u, ok := t.users[userID]
	if !ok {
		return events, nil
	}
	for i := len(u.events) - 1; i >= 0; i-- {
		events = append(events, u.events[i])
	}
	return events, nil
}

func statusForBand(band models.Band) models.TimelineStatus {
	switch band {
	case models.BandSafe:
		return models.TimelineStatusSafe
	case models.BandCaution:
		return models.TimelineStatusCaution
	case models.BandDanger:
		return models.TimelineStatusDanger
	}
	return models.TimelineStatusInfo
}

func zoneEnterMessage(z models.Zone) string {
	switch {
	case risk.IsSafeScore(z.RiskScore):
		return fmt.Sprintf("Entered Safe Zone: %s", z.Name)
	case risk.IsDangerScore(z.RiskScore):
		return fmt.Sprintf("Entered Danger Zone: %s", z.Name)
	}
	return fmt.Sprintf("Entered zone: %s", z.Name)
}
