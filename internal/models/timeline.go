package models

import (
	"time"

	"github.com/google/uuid"
)

// TimelineEventType - вид события в ленте пользователя
type TimelineEventType string

const (
	TimelineRiskUpdate     TimelineEventType = "risk_update"
	TimelineZoneEnter      TimelineEventType = "zone_enter"
	TimelineSOSTriggered   TimelineEventType = "sos_triggered"
	TimelineSOSDispatching TimelineEventType = "sos_dispatching"
	TimelineSOSSent        TimelineEventType = "sos_sent"
	TimelineSOSFailed      TimelineEventType = "sos_failed"
	TimelineSOSCancelled   TimelineEventType = "sos_cancelled"
)

// TimelineStatus - цветовая метка события для клиента
type TimelineStatus string

const (
	TimelineStatusSafe    TimelineStatus = "safe"
	TimelineStatusCaution TimelineStatus = "caution"
	TimelineStatusDanger  TimelineStatus = "danger"
	TimelineStatusInfo    TimelineStatus = "info"
)

// TimelineEvent - запись в ленте активности пользователя. Хранится только в памяти.
type TimelineEvent struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"user_id"`
	Type      TimelineEventType `json:"type"`
	Message   string            `json:"message"`
	Status    TimelineStatus    `json:"status"`
	SessionID *uuid.UUID        `json:"session_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
